package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/techtonix/compass/internal/auth"
	"github.com/techtonix/compass/internal/config"
	"github.com/techtonix/compass/internal/profile"
)

// --- login / register / logout ---

func newLoginCmd() *cobra.Command {
	var in auth.LoginInput
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Long: `Log in and store the session locally.

The password is read from stdin when --password is omitted.

Examples:
  compass login --email ana@example.com --password s3cret
  echo s3cret | compass login --email ana@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Password == "" {
				pw, err := readSecret(cmd.InOrStdin())
				if err != nil {
					return err
				}
				in.Password = pw
			}

			e, err := openEnv(os.Stderr)
			if err != nil {
				return err
			}
			defer e.Close()

			sess, err := auth.NewService(e.api, e.sessions).Login(cmd.Context(), in)
			if err != nil {
				return err
			}
			printSuccess("Logged in as %s", sess.UserID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "account password")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var in auth.RegisterInput
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account. Registration does not log in.

Examples:
  compass register --name Ana --email ana@example.com --password s3cret
  compass register --name Ana --email ana@example.com --password s3cret --role mentor`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("confirm") {
				in.Confirm = in.Password
			}

			e, err := openEnv(os.Stderr)
			if err != nil {
				return err
			}
			defer e.Close()

			userID, err := auth.NewService(e.api, e.sessions).Register(cmd.Context(), in)
			if err != nil {
				return err
			}
			if userID != "" {
				printSuccess("Registered %s (user %s)", in.Email, userID)
			} else {
				printSuccess("Registered %s", in.Email)
			}
			printStep("Run `compass login --email %s` to sign in", in.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "full name")
	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "account password")
	cmd.Flags().StringVar(&in.Confirm, "confirm", "", "password confirmation (defaults to --password)")
	cmd.Flags().StringVar(&in.Role, "role", "student", "student or mentor")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(os.Stderr)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := auth.NewService(e.api, e.sessions).Logout(); err != nil {
				return err
			}
			printSuccess("Logged out")
			return nil
		},
	}
}

func readSecret(r io.Reader) (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// --- profile ---

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the quick-start profile",
	}
	cmd.AddCommand(newProfileShowCmd(), newProfileSetCmd(), newProfileClearCmd(), newProfileOptionsCmd())
	return cmd
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored profile as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(os.Stderr)
			if err != nil {
				return err
			}
			defer e.Close()

			p, ok, err := e.profiles.Load()
			if err != nil {
				return err
			}
			if !ok {
				printWarning("No profile yet. Run `compass profile set` or open `compass dashboard`.")
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		},
	}
}

func newProfileSetCmd() *cobra.Command {
	var (
		name      string
		education string
		industry  string
		skills    []string
		interests []string
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Capture a new profile, replacing the stored one",
		Long: `Capture a new profile, replacing the stored one.

Tags are trimmed and de-duplicated in order; commas separate tags.
A blank name becomes "Guest".

Examples:
  compass profile set --name Ana --industry "Data Science" --skill Python,SQL
  compass profile set --education Bootcamp --interest "Cloud automation"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(os.Stderr)
			if err != nil {
				return err
			}
			defer e.Close()

			var saveErr error
			capture := profile.NewCapture(func(p profile.Profile) {
				saveErr = e.profiles.Save(p)
			})
			capture.Name = name
			if education != "" {
				if capture.Education, err = profile.ParseEducation(education); err != nil {
					return err
				}
			}
			if industry != "" {
				if capture.Industry, err = profile.ParseIndustry(industry); err != nil {
					return err
				}
			}
			for _, s := range skills {
				capture.Skills.Add(s)
			}
			for _, s := range interests {
				capture.Interests.Add(s)
			}

			p := capture.Submit()
			if saveErr != nil {
				return saveErr
			}
			printSuccess("Profile saved for %s (%s, %s)", p.Name, p.Education, p.Industry)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&education, "education", "", "education level (see `compass profile options`)")
	cmd.Flags().StringVar(&industry, "industry", "", "target industry (see `compass profile options`)")
	cmd.Flags().StringSliceVar(&skills, "skill", nil, "skill tag; repeat or separate with commas")
	cmd.Flags().StringSliceVar(&interests, "interest", nil, "interest tag; repeat or separate with commas")
	return cmd
}

func newProfileClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(os.Stderr)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.profiles.Clear(); err != nil {
				return err
			}
			printSuccess("Profile cleared")
			return nil
		},
	}
}

func newProfileOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List education levels and industries",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, colorize(colorBold, "Education"))
			for _, ed := range profile.Educations() {
				fmt.Fprintf(out, "  %s\n", ed)
			}
			fmt.Fprintln(out, colorize(colorBold, "Industry"))
			for _, in := range profile.Industries() {
				fmt.Fprintf(out, "  %s\n", in)
			}
		},
	}
}

// --- config ---

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or update configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.UI.NoColor {
				noColor = true
			}

			for _, k := range config.ShowAll(cfg) {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s = %s %s\n",
					colorize(colorBold, k.Key), k.Value, colorize(colorDim, "("+k.EnvVar+")"))
			}
			return nil
		},
	}

	set := &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Set a configuration value",
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.ValidKeys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := config.SetKey(key, value); err != nil {
				return err
			}
			printSuccess("Set %s = %s", key, value)
			return nil
		},
	}

	unset := &cobra.Command{
		Use:   "unset <key>",
		Short: "Restore a configuration value to its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.UnsetKey(args[0]); err != nil {
				return err
			}
			printSuccess("Unset %s", args[0])
			return nil
		},
	}

	cmd.AddCommand(show, set, unset)
	return cmd
}
