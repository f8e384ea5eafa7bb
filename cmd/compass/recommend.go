package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/techtonix/compass/internal/browse"
	"github.com/techtonix/compass/internal/recommend"
)

var errNoProfile = errors.New("no profile yet: run `compass profile set` or `compass dashboard`")

func newRecommendCmd() *cobra.Command {
	var (
		platform string
		page     int
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Fetch recommendations for the stored profile",
		Long: `Fetch recommendations for the stored profile and print one page.

Filtering and paging happen locally over a single fetch.

Examples:
  compass recommend
  compass recommend --platform Coursera --page 2
  compass recommend --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if page < 1 {
				return fmt.Errorf("--page must be at least 1")
			}

			e, err := openEnv(os.Stderr)
			if err != nil {
				return err
			}
			defer e.Close()

			if _, err := e.requireLogin(); err != nil {
				return err
			}

			dash := browse.NewDashboard(e.profiles, recommend.NewClient(e.api))
			if !asJSON {
				printStep("Fetching recommendations...")
			}
			v, err := dash.Load(cmd.Context())
			if err != nil {
				return err
			}
			if v.State == browse.NoProfile {
				return errNoProfile
			}

			b := dash.Browser()
			b.SetFilter(browse.ParseFilter(platform))
			for i := 1; i < page; i++ {
				if !b.Next() {
					break
				}
			}
			v = b.View()
			if v.Page != page {
				printWarning("Only %d page(s) available; showing page %d", v.TotalPages, v.Page)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(v.Visible)
			}
			printResults(cmd.OutOrStdout(), v)
			return nil
		},
	}
	cmd.Flags().StringVar(&platform, "platform", "All", "platform filter: All, Coursera, Udemy, Skillshare, Udacity or any platform name")
	cmd.Flags().IntVar(&page, "page", 1, "page to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the visible items as JSON")
	return cmd
}

func printResults(w io.Writer, v browse.View) {
	switch v.State {
	case browse.ResultsError:
		printWarning("Fetch failed: %s", recommend.KindOf(v.Err))
		fmt.Fprintln(w, browse.EmptyMessage)
		return
	case browse.ResultsEmpty:
		fmt.Fprintln(w, browse.EmptyMessage)
		return
	}

	for i, it := range v.Visible {
		fmt.Fprintf(w, "%s %s %s\n",
			colorize(colorBold, fmt.Sprintf("%2d.", v.From+i)),
			it.DisplayTitle(),
			colorize(colorGreen, "["+string(it.Platform)+"]"),
		)
		fmt.Fprintf(w, "    %s\n", colorize(colorDim, it.URL))
	}
	fmt.Fprintf(w, "\n%s  (page %s, filter %s)\n", v.Summary(), v.Pager(), v.Filter)
}
