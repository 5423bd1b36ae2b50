package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"

	"github.com/agencydesk/agencydesk/internal/config"
	"github.com/agencydesk/agencydesk/internal/output"
	"github.com/agencydesk/agencydesk/internal/resilience"
	"github.com/agencydesk/agencydesk/internal/version"
)

// Check is one diagnostic result.
type Check struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "pass", "fail", "warn", "skip"
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// DoctorResult holds all diagnostic results.
type DoctorResult struct {
	Checks []Check `json:"checks"`
	Passed int     `json:"passed"`
	Failed int     `json:"failed"`
	Warned int     `json:"warned"`
}

// Summary returns a one-line rollup.
func (r *DoctorResult) Summary() string {
	if r.Failed == 0 && r.Warned == 0 {
		return fmt.Sprintf("All %d checks passed", r.Passed)
	}
	return fmt.Sprintf("%d passed, %d failed, %d %s",
		r.Passed, r.Failed, r.Warned, pluralize(r.Warned, "warning", "warnings"))
}

// NewDoctorCmd creates the doctor command.
func NewDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check CLI health and diagnose issues",
		Long: `Run diagnostic checks on configuration, credentials, connectivity
and the shared circuit breaker state.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			var checks []Check

			checks = append(checks, Check{
				Name:    "version",
				Status:  "pass",
				Message: version.Version,
			})

			// Config file
			if _, err := os.Stat(config.GlobalPath()); err == nil {
				checks = append(checks, Check{Name: "config", Status: "pass", Message: config.GlobalPath()})
			} else {
				checks = append(checks, Check{
					Name:    "config",
					Status:  "warn",
					Message: "No global config file",
					Hint:    "Create one with: agencydesk config set account_id <id>",
				})
			}

			// Account
			if app.Config.AccountID != "" {
				checks = append(checks, Check{Name: "account", Status: "pass", Message: app.Config.AccountID})
			} else {
				checks = append(checks, Check{
					Name:    "account",
					Status:  "fail",
					Message: "No account configured",
					Hint:    "Set one with --account or: agencydesk config set account_id <id>",
				})
			}

			// Token
			if _, err := app.Auth.Token(cmd.Context()); err == nil {
				checks = append(checks, Check{Name: "token", Status: "pass", Message: "Token available"})
			} else {
				checks = append(checks, Check{
					Name:    "token",
					Status:  "fail",
					Message: "No API token",
					Hint:    "Run: agencydesk auth login",
				})
			}

			checks = append(checks, checkKeyring())
			checks = append(checks, checkCacheDir(app.Config.CacheDir))
			checks = append(checks, checkResilience()...)

			// Connectivity, only when auth and account are in place.
			if app.Config.AccountID != "" {
				if _, err := app.API.Employees().List(cmd.Context()); err == nil {
					checks = append(checks, Check{Name: "api", Status: "pass", Message: "Backend reachable"})
				} else {
					checks = append(checks, Check{
						Name:    "api",
						Status:  "fail",
						Message: "Backend unreachable",
						Hint:    err.Error(),
					})
				}
			} else {
				checks = append(checks, Check{Name: "api", Status: "skip", Message: "Skipped without account"})
			}

			result := DoctorResult{Checks: checks}
			for _, c := range checks {
				switch c.Status {
				case "pass":
					result.Passed++
				case "fail":
					result.Failed++
				case "warn":
					result.Warned++
				}
			}
			return app.OK(result, output.WithSummary("%s", result.Summary()))
		},
	}
}

const keyringProbeService = "agencydesk-doctor"

func checkKeyring() Check {
	if err := keyring.Set(keyringProbeService, "probe", "ok"); err != nil {
		return Check{
			Name:    "keyring",
			Status:  "warn",
			Message: "System keychain unavailable",
			Hint:    "Tokens fall back to a file under the cache dir",
		}
	}
	_ = keyring.Delete(keyringProbeService, "probe")
	return Check{Name: "keyring", Status: "pass", Message: "System keychain available"}
}

func checkCacheDir(dir string) Check {
	if dir == "" {
		return Check{Name: "cache", Status: "warn", Message: "No cache dir configured"}
	}
	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return Check{Name: "cache", Status: "fail", Message: "Cache dir not writable", Hint: err.Error()}
	}
	if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
		return Check{Name: "cache", Status: "fail", Message: "Cache dir not writable", Hint: err.Error()}
	}
	_ = os.Remove(probe)
	return Check{Name: "cache", Status: "pass", Message: dir}
}

// checkResilience reports the shared circuit breaker and token bucket.
func checkResilience() []Check {
	gate := resilience.NewGate("", resilience.Config{})

	var checks []Check
	state, err := gate.Breaker().State()
	if err != nil {
		checks = append(checks, Check{Name: "circuit", Status: "warn", Message: "State unreadable", Hint: err.Error()})
	} else if state == resilience.CircuitClosed {
		checks = append(checks, Check{Name: "circuit", Status: "pass", Message: "closed"})
	} else {
		checks = append(checks, Check{
			Name:    "circuit",
			Status:  "warn",
			Message: state,
			Hint:    "Recent requests failed; the circuit recovers on its own",
		})
	}

	tokens, err := gate.Limiter().Tokens()
	if err != nil {
		checks = append(checks, Check{Name: "rate_limit", Status: "warn", Message: "State unreadable", Hint: err.Error()})
	} else {
		checks = append(checks, Check{Name: "rate_limit", Status: "pass", Message: fmt.Sprintf("%.0f tokens", tokens)})
	}
	return checks
}
