package provisioning_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/imamik/rosterkeys/internal/apperr"
	"github.com/imamik/rosterkeys/internal/config"
	"github.com/imamik/rosterkeys/internal/platform/openrouter"
	"github.com/imamik/rosterkeys/internal/provisioning"
	"github.com/imamik/rosterkeys/internal/report"
	"github.com/imamik/rosterkeys/internal/util/ptr"
)

// TestIssuance is the entry point for the Ginkgo issuance suite.
func TestIssuance(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Issuance Suite")
}

// keyServer is an in-memory stand-in for the key provisioning API.
type keyServer struct {
	mu       sync.Mutex
	server   *httptest.Server
	names    []string
	auth     []string
	failName string
}

func newKeyServer() *keyServer {
	ks := &keyServer{}
	ks.server = httptest.NewServer(http.HandlerFunc(ks.handle))
	return ks
}

func (ks *keyServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/keys" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var body struct {
		Name  string  `json:"name"`
		Limit float64 `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ks.mu.Lock()
	ks.names = append(ks.names, body.Name)
	ks.auth = append(ks.auth, r.Header.Get("Authorization"))
	n := len(ks.names)
	ks.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if ks.failName != "" && strings.Contains(body.Name, ks.failName) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = fmt.Fprint(w, `{"error":{"code":429,"message":"Rate limit exceeded"}}`)
		return
	}
	_, _ = fmt.Fprintf(w, `{"key":"sk-or-v1-%03d","data":{"hash":"h%03d","name":%q,"limit":%v}}`, n, n, body.Name, body.Limit)
}

func (ks *keyServer) requests() []string {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	return append([]string(nil), ks.names...)
}

var _ = Describe("Issuance run", func() {
	var (
		ks      *keyServer
		dir     string
		params  config.RunParameters
		runWith func(roster string) (*provisioning.Context, error)
	)

	BeforeEach(func() {
		ks = newKeyServer()
		DeferCleanup(ks.server.Close)
		dir = GinkgoT().TempDir()

		params = config.RunParameters{
			ProvisioningKey: ptr.String("sk-or-prov-test"),
			SpendingLimit:   5,
			CourseCode:      "BTP405",
			Section:         "ZAA",
			Term:            "2254",
			IssueDate:       ptr.String("2025-05-12"),
			Output:          ptr.String(filepath.Join(dir, "keys.csv")),
		}

		runWith = func(roster string) (*provisioning.Context, error) {
			rosterPath := filepath.Join(dir, "roster.csv")
			Expect(os.WriteFile(rosterPath, []byte(roster), 0o600)).To(Succeed())

			settings := config.Default()
			settings.OpenRouter.BaseURL = ks.server.URL

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			DeferCleanup(cancel)

			run := provisioning.NewContext(ctx, rosterPath, params, settings, openrouter.NewClient(settings.OpenRouter.BaseURL))
			run.Observer = provisioning.NewConsoleObserver(GinkgoWriter, 1)
			return run, provisioning.RunPhases(run, provisioning.DefaultPhases(run, nil))
		}
	})

	Context("with a well-formed roster", func() {
		const roster = "\ufeffLast Name,First Name,Username,Student ID,Email\n" +
			"Doe,Jane,jdoe,111,ignored@example.com\n" +
			"\n" +
			"Roe,Rick,rroe,222,\n"

		It("creates one key per student in roster order", func() {
			_, err := runWith(roster)
			Expect(err).NotTo(HaveOccurred())

			Expect(ks.requests()).To(Equal([]string{
				"jdoe@myseneca.ca 2025-05-12 BTP405 ZAA 2254 student",
				"rroe@myseneca.ca 2025-05-12 BTP405 ZAA 2254 student",
			}))
			Expect(ks.auth).To(HaveEach("Bearer sk-or-prov-test"))
		})

		It("writes the reconciliation report", func() {
			run, err := runWith(roster)
			Expect(err).NotTo(HaveOccurred())

			data, err := os.ReadFile(*params.Output)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(report.Header + "\n" +
				`"jdoe@myseneca.ca 2025-05-12 BTP405 ZAA 2254 student",sk-or-v1-001,h001,jdoe,111,jdoe@myseneca.ca` + "\n" +
				`"rroe@myseneca.ca 2025-05-12 BTP405 ZAA 2254 student",sk-or-v1-002,h002,rroe,222,rroe@myseneca.ca`))
			Expect(run.State.ReportPath).To(Equal(*params.Output))
		})
	})

	Context("when the provider rejects a student", func() {
		It("stops at the failing student and writes no report", func() {
			ks.failName = "bsmith@"
			roster := "Username,Student ID\nadams,1\nbsmith,2\ncjones,3\n"

			run, err := runWith(roster)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("bsmith"))
			Expect(err.Error()).To(ContainSubstring("Rate limit exceeded"))
			Expect(ks.requests()).To(HaveLen(2))
			Expect(run.State.Records).To(BeNil())
			Expect(*params.Output).NotTo(BeAnExistingFile())
		})
	})

	Context("when a row lacks a student ID", func() {
		It("fails before contacting the provider", func() {
			roster := "Username,Student ID\nadams,1\nbsmith,\n"

			_, err := runWith(roster)

			Expect(err).To(MatchError(ContainSubstring("Missing required fields for student")))
			Expect(ks.requests()).To(BeEmpty())
		})
	})

	Context("with invalid parameters", func() {
		It("reports every problem as a validation error", func() {
			params.SpendingLimit = 0
			params.Term = ""
			params.EmailDomain = ptr.String("@myseneca.ca")

			_, err := runWith("Username,Student ID\nadams,1\n")

			ve, ok := apperr.AsValidation(err)
			Expect(ok).To(BeTrue())
			Expect(ve.Problems).To(Equal([]string{
				"limit must be greater than 0",
				"term is required",
				"emailDomain must be a valid domain (e.g., myseneca.ca) without @ symbol",
			}))
			Expect(ks.requests()).To(BeEmpty())
		})
	})
})
