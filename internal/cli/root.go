package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"taskboard/internal/format"
)

type App struct {
	Dir        string
	ConfigPath string
	BoardsURL  string
	Storage    string
	RedisURL   string
	PrettyJSON bool
	Format     string
	LogLevel   string
	LogJSON    bool
	Offline    bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskboard",
		Short:        "Taskboard: boards and tasks seeded from a remote source, kept locally",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  taskboard

  # Pull boards and tasks from the remote source
  taskboard sync

  # Scriptable commands
  taskboard boards list
  taskboard tasks add --title "Write docs" --tag docs

  # Direct task lookup (shortcut for: taskboard tasks show <task-id>)
  taskboard task:42
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TASKBOARD_DIR", ""), "Path to data dir (default: nearest .taskboard, else ./.taskboard)")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("TASKBOARD_CONFIG", ""), "Config file (default: ~/.taskboard/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.BoardsURL, "boards-url", envOr("TASKBOARD_BOARDS_URL", ""), "Remote board list URL")
	cmd.PersistentFlags().StringVar(&app.Storage, "storage", envOr("TASKBOARD_STORAGE", ""), "Storage backend (sqlite|redis)")
	cmd.PersistentFlags().StringVar(&app.RedisURL, "redis-url", envOr("TASKBOARD_REDIS_URL", ""), "Redis URL for --storage redis")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TASKBOARD_FORMAT", "json"), "Output format (json|yaml)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("TASKBOARD_LOG_LEVEL", ""), "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&app.LogJSON, "log-json", false, "Emit logs as JSON")
	cmd.PersistentFlags().BoolVar(&app.Offline, "offline", false, "Never contact the remote source")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newSyncCmd(app))
	cmd.AddCommand(newBoardsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newGridCmd(app))
	cmd.AddCommand(newColumnsCmd(app))
	cmd.AddCommand(newThemeCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
