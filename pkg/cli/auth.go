package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/garagectl/garagectl/internal/cliconfig"
	"github.com/garagectl/garagectl/pkg/cli/internal/output"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in and store the token in the current context",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, password, err := credentials(args)
		if err != nil {
			return err
		}

		sess := newSession()
		token, err := sess.Login(username, password)
		if err != nil {
			fmt.Fprintln(os.Stderr, sess.Status())
			return err
		}

		if err := cliconfig.SaveToken(token, username); err != nil {
			return fmt.Errorf("logged in but failed to store token: %w", err)
		}

		fmt.Println(sess.Status())
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register [username]",
	Short: "Create an account, then log in with it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, password, err := credentials(args)
		if err != nil {
			return err
		}

		sess := newSession()
		token, err := sess.Register(username, password)
		if err != nil {
			fmt.Fprintln(os.Stderr, sess.Status())
			return err
		}

		if err := cliconfig.SaveToken(token, username); err != nil {
			return fmt.Errorf("registered but failed to store token: %w", err)
		}

		fmt.Println(sess.Status())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored token from the current context",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cliconfig.ClearToken(); err != nil {
			return fmt.Errorf("failed to clear token: %w", err)
		}
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := newSession()
		profile, err := sess.Profile()
		if err != nil {
			return err
		}

		if jsonOutput {
			return output.JSON(profile)
		}
		fmt.Printf("%s (id %d)\n", profile.Username, profile.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

// credentials takes the username from args when given and prompts for
// whatever is missing. The password is never accepted as an argument.
func credentials(args []string) (string, string, error) {
	var username, password string
	if len(args) > 0 {
		username = args[0]
	}

	var fields []huh.Field
	if username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(&username).
			Validate(func(s string) error {
				if s == "" {
					return errors.New("username is required")
				}
				return nil
			}))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&password).
		Validate(func(s string) error {
			if s == "" {
				return errors.New("password is required")
			}
			return nil
		}))

	form := huh.NewForm(huh.NewGroup(fields...))
	if err := form.Run(); err != nil {
		return "", "", err
	}
	return username, password, nil
}
