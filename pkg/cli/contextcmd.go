package cli

import (
	"fmt"
	"sort"

	"github.com/garagectl/garagectl/internal/cliconfig"
	"github.com/garagectl/garagectl/pkg/cli/internal/output"
	"github.com/spf13/cobra"
)

// contextForJSON masks the token so it never lands in command output.
type contextForJSON struct {
	APIURL      string `json:"apiUrl"`
	Username    string `json:"username,omitempty"`
	Description string `json:"description,omitempty"`
	HasToken    bool   `json:"hasToken,omitempty"`
}

func sanitizeContextForJSON(ctx *cliconfig.Context) *contextForJSON {
	return &contextForJSON{
		APIURL:      ctx.APIURL,
		Username:    ctx.Username,
		Description: ctx.Description,
		HasToken:    ctx.Token != "",
	}
}

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Manage contexts (API server + credential pairs)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runContextShow()
	},
}

var contextShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current context",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runContextShow()
	},
}

func runContextShow() error {
	cfg, err := cliconfig.LoadContextConfig()
	if err != nil {
		return fmt.Errorf("failed to load context config: %w", err)
	}

	envContext := cliconfig.GetContextFromEnv()
	effectiveContext := cfg.CurrentContext
	envOverride := false
	if envContext != "" {
		effectiveContext = envContext
		envOverride = true
	}

	ctx := cfg.Contexts[effectiveContext]
	if ctx == nil {
		if envOverride {
			return fmt.Errorf("context %q (from %s) not found", envContext, cliconfig.EnvContext)
		}
		fmt.Println("No current context set")
		fmt.Println("\nRun 'garagectl context add <name>' to create a context")
		return nil
	}

	if jsonOutput {
		return output.JSON(sanitizeContextForJSON(ctx))
	}

	fmt.Printf("Current context: %s", effectiveContext)
	if envOverride {
		fmt.Printf("  (from %s)", cliconfig.EnvContext)
	}
	fmt.Println()

	fmt.Printf("  API URL:   %s\n", ctx.APIURL)
	if ctx.Username != "" {
		fmt.Printf("  Logged in: %s\n", ctx.Username)
	} else {
		fmt.Println("  Logged in: no")
	}
	if ctx.Description != "" {
		fmt.Printf("  Description: %s\n", ctx.Description)
	}

	fmt.Println("\nRun 'garagectl context list' to see all contexts")
	return nil
}

var contextListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cliconfig.LoadContextConfig()
		if err != nil {
			return fmt.Errorf("failed to load context config: %w", err)
		}

		if jsonOutput {
			sanitized := make(map[string]*contextForJSON, len(cfg.Contexts))
			for name, ctx := range cfg.Contexts {
				sanitized[name] = sanitizeContextForJSON(ctx)
			}
			return output.JSON(sanitized)
		}

		names := make([]string, 0, len(cfg.Contexts))
		for name := range cfg.Contexts {
			names = append(names, name)
		}
		sort.Strings(names)

		w := output.Table()
		_, _ = fmt.Fprintln(w, "CURRENT\tNAME\tAPI URL\tUSER")
		for _, name := range names {
			ctx := cfg.Contexts[name]
			marker := ""
			if name == cfg.CurrentContext {
				marker = "*"
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", marker, name, ctx.APIURL, ctx.Username)
		}
		return w.Flush()
	},
}

var (
	contextAddAPIURL      string
	contextAddDescription string
)

var contextAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cliconfig.LoadContextConfig()
		if err != nil {
			return fmt.Errorf("failed to load context config: %w", err)
		}

		ctx := &cliconfig.Context{
			APIURL:      contextAddAPIURL,
			Description: contextAddDescription,
		}
		if ctx.APIURL == "" {
			ctx.APIURL = cliconfig.DefaultAPIURL
		}
		if err := cfg.AddContext(args[0], ctx); err != nil {
			return err
		}
		if err := cliconfig.SaveContextConfig(cfg); err != nil {
			return err
		}

		fmt.Printf("Added context: %s (%s)\n", args[0], ctx.APIURL)
		return nil
	},
}

var contextUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Switch to a context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cliconfig.LoadContextConfig()
		if err != nil {
			return fmt.Errorf("failed to load context config: %w", err)
		}
		if err := cfg.SetCurrentContext(args[0]); err != nil {
			return err
		}
		if err := cliconfig.SaveContextConfig(cfg); err != nil {
			return err
		}

		fmt.Printf("Switched to context: %s\n", args[0])
		return nil
	},
}

var contextRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cliconfig.LoadContextConfig()
		if err != nil {
			return fmt.Errorf("failed to load context config: %w", err)
		}
		if err := cfg.RemoveContext(args[0]); err != nil {
			return err
		}
		if err := cliconfig.SaveContextConfig(cfg); err != nil {
			return err
		}

		fmt.Printf("Removed context: %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(contextCmd)
	contextCmd.AddCommand(contextShowCmd)
	contextCmd.AddCommand(contextListCmd)
	contextCmd.AddCommand(contextAddCmd)
	contextCmd.AddCommand(contextUseCmd)
	contextCmd.AddCommand(contextRemoveCmd)

	contextAddCmd.Flags().StringVar(&contextAddAPIURL, "api-url", "", "Catalog API base URL for the context")
	contextAddCmd.Flags().StringVar(&contextAddDescription, "description", "", "Context description")
}
