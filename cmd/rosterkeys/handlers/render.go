package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/rosterkeys/internal/provisioning"
	"github.com/imamik/rosterkeys/internal/util/tags"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	greenStyle = lipgloss.NewStyle().
			Foreground(colorGreen)
)

// runSummary is what the end-of-run summary shows.
type runSummary struct {
	RunID     string
	Course    string
	Keys      int
	Limit     float64
	Tags      string
	Report    string
	ArchiveTo string
}

func summaryFromRun(run *provisioning.Context, runID string) runSummary {
	p := run.Params
	s := runSummary{
		RunID:  runID,
		Course: strings.Join([]string{p.CourseCode, p.Section, p.Term}, " "),
		Keys:   len(run.State.Records),
		Limit:  p.SpendingLimit,
		Tags:   tags.Join(tags.ForCourse(p.CourseCode, p.Section, p.Term)),
		Report: run.State.ReportPath,
	}
	if run.State.ArchiveKey != "" {
		s.ArchiveTo = fmt.Sprintf("s3://%s/%s", run.Settings.Archive.Bucket, run.State.ArchiveKey)
	}
	return s
}

// printSummary writes the summary, styled when w is a terminal.
func printSummary(w io.Writer, s runSummary, styled bool) {
	if styled {
		_, _ = fmt.Fprint(w, renderSummary(s))
		return
	}
	_, _ = fmt.Fprint(w, plainSummary(s))
}

func summaryRows(s runSummary) [][2]string {
	rows := [][2]string{
		{"Keys", fmt.Sprintf("%d", s.Keys)},
		{"Limit", fmt.Sprintf("$%s USD per key", formatAmount(s.Limit))},
		{"Tags", s.Tags},
		{"Report", s.Report},
	}
	if s.ArchiveTo != "" {
		rows = append(rows, [2]string{"Archive", s.ArchiveTo})
	}
	return append(rows, [2]string{"Run ID", s.RunID})
}

// renderSummary produces a lipgloss-styled run summary string.
func renderSummary(s runSummary) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  rosterkeys: " + s.Course))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n")

	for _, row := range summaryRows(s) {
		value := row[1]
		if row[0] == "Keys" {
			value = greenStyle.Render(value)
		}
		b.WriteString("    ")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-8s", row[0])))
		b.WriteString(" ")
		b.WriteString(value)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  The report contains secrets. Store it safely."))
	b.WriteString("\n")

	return b.String()
}

// plainSummary is the summary without styling, for logs and pipes.
func plainSummary(s runSummary) string {
	var b strings.Builder
	b.WriteString("\nSummary: " + s.Course + "\n")
	for _, row := range summaryRows(s) {
		b.WriteString(fmt.Sprintf("  %-8s %s\n", row[0]+":", row[1]))
	}
	return b.String()
}
