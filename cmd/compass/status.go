package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/techtonix/compass/internal/apiclient"
	"github.com/techtonix/compass/internal/profile"
	"github.com/techtonix/compass/internal/session"
)

const healthTimeout = 2 * time.Second

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show backend, session and profile status",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(os.Stderr)
			if err != nil {
				// Still show partial status even if config or storage fails.
				printError("%v", err)
				return nil
			}
			defer e.Close()

			r := collectStatus(cmd.Context(), e)
			r.print()
			return nil
		},
	}
}

type statusReport struct {
	baseURL   string
	dataDir   string
	healthErr error
	health    string

	sess     session.Session
	loggedIn bool
	sessErr  error
	prof     profile.Profile
	hasProf  bool
	profErr  error
	keys     int
	schema   []int
	storeErr error
}

// collectStatus runs the probes concurrently. Probe failures are recorded
// in the report; none aborts the others.
func collectStatus(ctx context.Context, e *env) statusReport {
	r := statusReport{baseURL: e.api.BaseURL(), dataDir: e.cfg.Storage.DataDir}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r.health, r.healthErr = probeHealth(gCtx, e.api)
		return nil
	})
	g.Go(func() error {
		r.sess, r.loggedIn, r.sessErr = e.sessions.Load()
		r.prof, r.hasProf, r.profErr = e.profiles.Load()
		entries, err := e.store.Entries()
		if err != nil {
			r.storeErr = err
			return nil
		}
		r.keys = len(entries)
		r.schema, r.storeErr = e.store.AppliedMigrations()
		return nil
	})
	g.Wait()
	return r
}

func probeHealth(ctx context.Context, api *apiclient.Client) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	resp, err := api.Get(ctx, "/health")
	if err != nil {
		return "", err
	}
	var out struct {
		Status string `json:"status"`
	}
	if err := apiclient.DecodeJSON(resp, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

func (r statusReport) print() {
	switch {
	case r.healthErr != nil:
		printStatus("Backend", "%s (unreachable: %v)", r.baseURL, r.healthErr)
	default:
		printStatus("Backend", "%s (%s)", r.baseURL, r.health)
	}

	switch {
	case r.sessErr != nil:
		printError("reading session: %v", r.sessErr)
	case r.loggedIn:
		printStatus("Session", "logged in as %s", r.sess.UserID)
	default:
		printStatus("Session", "logged out")
	}

	switch {
	case r.profErr != nil:
		printError("reading profile: %v", r.profErr)
	case r.hasProf:
		printStatus("Profile", "%s · %s · %s (%d skills, %d interests)",
			r.prof.Name, r.prof.Education, r.prof.Industry, len(r.prof.Skills), len(r.prof.Interests))
	default:
		printStatus("Profile", "none")
	}

	if r.storeErr != nil {
		printError("reading storage: %v", r.storeErr)
	} else {
		printStatus("Stored keys", "%d", r.keys)
		printStatus("Schema", "%s", schemaLabel(r.schema))
	}
	printStatus("Data dir", "%s", r.dataDir)
}

func schemaLabel(applied []int) string {
	if len(applied) == 0 {
		return "none"
	}
	return fmt.Sprintf("v%d", applied[len(applied)-1])
}
