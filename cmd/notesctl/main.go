package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"foldernotes/internal/browser"
	"foldernotes/internal/client"
)

var _ browser.API = (*client.Client)(nil)

func main() {
	_ = godotenv.Load()

	if err := NewRootCmd(os.Stdin).Execute(); err != nil {
		os.Exit(1)
	}
}

// cli carries the persistent flags shared by every subcommand
type cli struct {
	apiURL  string
	timeout time.Duration
	debug   bool
	in      io.Reader
	logger  *slog.Logger
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd(in io.Reader) *cobra.Command {
	app := &cli{in: in}

	rootCmd := &cobra.Command{
		Use:          "notesctl",
		Short:        "Browse and manage folders and notes",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if app.debug {
				level = slog.LevelDebug
			}
			app.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}

	rootCmd.PersistentFlags().StringVar(&app.apiURL, "api", getEnv("NOTES_API_URL", client.DefaultBaseURL), "Base URL of the folder notes API")
	rootCmd.PersistentFlags().DurationVar(&app.timeout, "timeout", 15*time.Second, "Per-request timeout")
	rootCmd.PersistentFlags().BoolVarP(&app.debug, "debug", "d", false, "Enable debug logging")

	rootCmd.AddCommand(app.newHealthCmd())
	rootCmd.AddCommand(app.newFoldersCmd())
	rootCmd.AddCommand(app.newNotesCmd())
	rootCmd.AddCommand(app.newBrowseCmd())

	return rootCmd
}

func (a *cli) client() (*client.Client, error) {
	return client.New(a.apiURL, client.WithTimeout(a.timeout))
}

func (a *cli) newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the API and its store are up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			h, err := c.Health(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), h)
		},
	}
}

func (a *cli) newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactive folder and note browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			prompter := browser.NewTerminalPrompter(a.in, out)
			controller := browser.NewController(c, prompter, browser.NewRenderer(out), a.logger)

			fmt.Fprintf(out, "Connected to %s. Type help for commands.\n", a.apiURL)
			return browser.NewSession(controller, prompter, out).Run(cmd.Context())
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
