// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/imamik/rosterkeys/cmd/rosterkeys/handlers"
	"github.com/imamik/rosterkeys/internal/config"
)

// issueFlags holds the raw flag values of the root command.
type issueFlags struct {
	limit           string
	course          string
	section         string
	term            string
	date            string
	emailDomain     string
	output          string
	provisioningKey string
	configPath      string
	interactive     bool
	verbose         bool
	archiveBucket   string
	pushgateway     string
}

// Root returns the root command for the rosterkeys CLI.
//
// The root command issues the keys itself: it takes the roster CSV as its
// only argument. The version and completion subcommands are utilities.
//
// Required flags:
//
//	--limit, -l: Spending limit per key in US dollars
//	--course, -c: Course code
//	--section, -s: Section
//	--term, -t: Term
//
// Environment variables:
//
//	OPENROUTER_PROVISIONING_KEY: provisioning key when --provisioning-key is absent
//	ROSTERKEYS_CONFIG: config file when --config is absent
func Root() *cobra.Command {
	f := &issueFlags{}

	cmd := &cobra.Command{
		Use:   "rosterkeys <csv-file>",
		Short: "Generate OpenRouter API keys from Blackboard CSV exports",
		Long: `Generate one OpenRouter API key per student in a Blackboard roster export.

Each key is named "<email> <date> <course> <section> <term> student" and
capped at the given spending limit. The created keys are written to a
reconciliation CSV (default: <course>-<section>-<term>-<date>.csv).

Keys are created one at a time. The first failure stops the run and no
report is written; keys created before the failure stay active.

Examples:
  # Issue $10 keys for a section
  rosterkeys roster.csv -l 10 -c CCP555 -s NSA -t fall

  # Custom email domain and output file
  rosterkeys roster.csv -l 5 -c IPC144 -s NAA -t 2251 -e example.edu -o keys.csv

  # Prompt for the provisioning key and confirm before issuing
  rosterkeys roster.csv -l 10 -c CCP555 -s NSA -t fall --interactive`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Issue(cmd.Context(), f.options(cmd.Flags(), args[0]))
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.limit, "limit", "l", "", "Spending limit in US dollars")
	flags.StringVarP(&f.course, "course", "c", "", "Course code (e.g., CCP555)")
	flags.StringVarP(&f.section, "section", "s", "", "Section (e.g., NSA)")
	flags.StringVarP(&f.term, "term", "t", "", "Term (e.g., fall)")
	flags.StringVarP(&f.date, "date", "d", "", "Issue date in YYYY-MM-DD format (default: today)")
	flags.StringVarP(&f.emailDomain, "email-domain", "e", "", "Email domain used to build student addresses (default: "+config.DefaultEmailDomain+")")
	flags.StringVarP(&f.output, "output", "o", "", "Output CSV filename")
	flags.StringVar(&f.provisioningKey, "provisioning-key", "", "OpenRouter provisioning API key (or set OPENROUTER_PROVISIONING_KEY env var)")
	flags.StringVar(&f.configPath, "config", "", "Path to configuration file (default: "+config.DefaultConfigFilename+" if present)")
	flags.BoolVarP(&f.interactive, "interactive", "i", false, "Prompt for a missing provisioning key and confirm before issuing")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Log structured run events")
	flags.StringVar(&f.archiveBucket, "archive-bucket", "", "Upload the report to this S3 bucket (overrides config)")
	flags.StringVar(&f.pushgateway, "pushgateway", "", "Push run metrics to this Prometheus Pushgateway URL (overrides config)")

	for _, name := range []string{"limit", "course", "section", "term"} {
		_ = cmd.MarkFlagRequired(name)
	}

	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// options converts raw flags into handler options. Optional flags that were
// not given stay nil so "absent" and "given but empty" remain distinct.
func (f *issueFlags) options(flags *pflag.FlagSet, rosterPath string) handlers.IssueOptions {
	return handlers.IssueOptions{
		RosterPath: rosterPath,
		Params: config.RunParameters{
			ProvisioningKey: changed(flags, "provisioning-key", f.provisioningKey),
			SpendingLimit:   parseLimit(f.limit),
			CourseCode:      f.course,
			Section:         f.section,
			Term:            f.term,
			IssueDate:       changed(flags, "date", f.date),
			Output:          changed(flags, "output", f.output),
			EmailDomain:     changed(flags, "email-domain", f.emailDomain),
		},
		ConfigPath:    f.configPath,
		Interactive:   f.interactive,
		Verbose:       f.verbose,
		ArchiveBucket: changed(flags, "archive-bucket", f.archiveBucket),
		Pushgateway:   changed(flags, "pushgateway", f.pushgateway),
	}
}

func changed(flags *pflag.FlagSet, name, value string) *string {
	if !flags.Changed(name) {
		return nil
	}
	return &value
}

// parseLimit parses the limit flag; anything unparsable becomes NaN and is
// rejected by parameter validation. Out of range values keep their ±Inf so
// validation reports them as not finite.
func parseLimit(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && math.IsInf(v, 0) {
			return v
		}
		return math.NaN()
	}
	return v
}
