// Package cli implements the garagectl command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/garagectl/garagectl/internal/cliconfig"
	"github.com/garagectl/garagectl/internal/logging"
	"github.com/garagectl/garagectl/internal/state"
	"github.com/garagectl/garagectl/pkg/client"
	"github.com/garagectl/garagectl/pkg/session"
	"github.com/spf13/cobra"
)

var (
	// Persistent flags available to all subcommands
	apiURL     string
	jsonOutput bool
	logLevel   string

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "garagectl",
	Short: "garagectl is a command-line client for a vehicle catalog backend",
	Long: `garagectl manages a relational vehicle catalog (segments, brands, and the
vehicles that reference them) behind a token-authenticated REST backend.

Log in once with 'garagectl login'; the token is stored in the current
context and attached to every call. Deleting a segment or brand removes the
vehicles that referenced it from the displayed catalog.`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(logging.New(logging.ParseLevel(logLevel), os.Stderr))
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Catalog API base URL (default: "+cliconfig.DefaultAPIURL+")")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("garagectl %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		},
	})
}

// newSession builds a session over a config-resolved client and a fresh
// store in the unloaded placeholder state.
func newSession() *session.Session {
	return session.New(client.NewFromConfig(apiURL), state.NewMemoryStore())
}
