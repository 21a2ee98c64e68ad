package cli

import (
	"context"
	"fmt"
	"os"

	"board-cli/internal/api"
	"board-cli/internal/config"
	"board-cli/internal/format"
	"board-cli/internal/store"
	"board-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	APIURL     string
	DataDir    string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "board",
		Short:        "Classifieds board client (CLI + TUI)",
		SilenceUsage: true,
		Example: `
  # Start the interactive TUI
  board

  # Scriptable commands
  board items list
  board items show 7
  board login --username test
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if app.APIURL == "" {
			app.APIURL = cfg.APIURL
		}
		if app.DataDir == "" {
			app.DataDir = cfg.DataDir
		}
		store.SetDebugLog(cfg.DebugLog)
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api", envOr("BOARD_API_URL", ""), "Base URL of the listings backend")
	cmd.PersistentFlags().StringVar(&app.DataDir, "data-dir", envOr("BOARD_DATA_DIR", ""), "Directory for local state (session, draft)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))

	return cmd
}

func runTUI(app *App) error {
	st, err := openStore(app)
	if err != nil {
		return err
	}
	defer st.Close()
	return tui.Run(api.NewClient(app.APIURL), st)
}

func openStore(app *App) (*store.Store, error) {
	return store.Open(context.Background(), app.DataDir)
}

func client(app *App) *api.Client {
	return api.NewClient(app.APIURL)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
