package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"task-manager/internal/api"
	"task-manager/internal/config"
	"task-manager/internal/logging"
	"task-manager/internal/validation"
	"task-manager/internal/view"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	api    api.API
	config *config.Config
	loader *config.Loader
	app    *App
	out    io.Writer
	in     io.Reader
}

// NewRootCommand creates the root command. Configuration is loaded from
// .env, the environment and flags before any subcommand runs, and the
// client is built from it.
func NewRootCommand() *RootCommand {
	return newRootCommand(nil, nil)
}

// NewRootCommandWithAPI creates a root command that uses the given client
// and configuration instead of loading them.
func NewRootCommandWithAPI(client api.API, cfg *config.Config) *RootCommand {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return newRootCommand(client, cfg)
}

func newRootCommand(client api.API, cfg *config.Config) *RootCommand {
	root := &RootCommand{
		api:    client,
		config: cfg,
		loader: config.NewLoader(),
		out:    os.Stdout,
		in:     os.Stdin,
	}

	root.cmd = &cobra.Command{
		Use:   "tm",
		Short: "A command-line client for a task backend",
		Long: `Task Manager (tm) manages tasks stored by a REST task backend.

FEATURES:
  • Add, edit, toggle and delete tasks
  • Filter by completion and sort by date, status or due date
  • Overdue and due-soon badges with Total / Active / Completed counts
  • Interactive terminal UI
  • Export to CSV or JSON
  • A reference backend on SQLite (tm serve)

EXAMPLES:
  tm add "Buy milk" --due 2025-07-01        # Create a task
  tm list --filter active --sort due        # Open tasks, earliest deadline first
  tm toggle <id>                            # Mark done, or back to TODO
  tm edit <id> --status IN_PROGRESS         # Change fields of a task
  tm delete <id>                            # Delete after confirmation
  tm ui                                     # Interactive mode
  tm export --format json > tasks.json      # Export the list
  tm serve                                  # Run the reference backend

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > .env file > defaults

    TM_API_URL                             Task collection URL (default: http://localhost:8080/api/tasks)
    TM_API_TIMEOUT                         Request timeout, 0 for none (default: 0)
    TM_VALIDATION_TITLE_MAX                Title length limit (default: 100)
    TM_VALIDATION_DESCRIPTION_MAX          Description length limit (default: 500)
    TM_DISPLAY_TIME_FORMAT                 Time format (default: Jan 2, 2006 03:04 PM)
    TM_DISPLAY_DUE_SOON_WINDOW             Due-soon window (default: 24h)
    TM_DISPLAY_COLOR, NO_COLOR             Colored output (default: true)
    TM_LIST_DEFAULT_FILTER                 all, active or completed (default: all)
    TM_LIST_DEFAULT_SORT                   date, status or due (default: date)
    TM_EXPORT_DEFAULT_FORMAT               csv or json (default: csv)
    TM_SERVER_ADDR                         Backend listen address (default: :8080)
    TM_DB_DIR, TM_DB_FILENAME              Backend database location (default: ~/.tm/tm.db)
    TM_CORS_ALLOWED_ORIGINS                Comma-separated origins allowed by the backend
    TM_ENV                                 development, testing or production
    TM_ENV_FILE                            Path of the .env file (default: .env)
    TM_DEBUG                               Print debug output`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command; commands stop when ctx is cancelled
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs sets the arguments used instead of os.Args
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetOutput redirects command output and cobra's own messages
func (r *RootCommand) SetOutput(w io.Writer) {
	r.out = w
	r.cmd.SetOut(w)
	r.cmd.SetErr(w)
}

// SetInput replaces stdin for confirmation prompts
func (r *RootCommand) SetInput(in io.Reader) {
	r.in = in
}

// Config returns the effective configuration once a command has started
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("api-url", "", "Task collection URL (overrides TM_API_URL)")
	flags.Duration("api-timeout", 0, "Request timeout (overrides TM_API_TIMEOUT)")
	flags.String("time-format", "", "Time display format (overrides TM_DISPLAY_TIME_FORMAT)")
	flags.Duration("due-soon", 0, "Due-soon window (overrides TM_DISPLAY_DUE_SOON_WINDOW)")
	flags.Bool("no-color", false, "Disable colored output (overrides TM_DISPLAY_COLOR)")
	flags.BoolP("verbose", "v", false, "Enable verbose output (overrides TM_APP_VERBOSE)")
}

// overrides collects only the flags the user actually set
func (r *RootCommand) overrides() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	o := &config.ConfigOverrides{}

	if flags.Changed("api-url") {
		v, _ := flags.GetString("api-url")
		o.APIURL = &v
	}
	if flags.Changed("api-timeout") {
		v, _ := flags.GetDuration("api-timeout")
		o.APITimeout = &v
	}
	if flags.Changed("time-format") {
		v, _ := flags.GetString("time-format")
		o.TimeFormat = &v
	}
	if flags.Changed("due-soon") {
		v, _ := flags.GetDuration("due-soon")
		o.DueSoonWindow = &v
	}
	if flags.Changed("no-color") {
		v, _ := flags.GetBool("no-color")
		color := !v
		o.Color = &color
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		o.Verbose = &v
	}
	return o
}

// setup resolves configuration and builds the app before a command runs
func (r *RootCommand) setup() error {
	if r.config == nil {
		cfg, err := r.loader.LoadWithOverrides(r.overrides())
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		r.config = cfg
	} else {
		r.overrides().Apply(r.config)
		if err := r.config.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}

	logging.SetVerbose(r.config.Application.Verbose)
	logging.Debugln("task API:", r.config.API.BaseURL, "timeout:", r.config.API.Timeout)

	client := r.api
	if client == nil {
		client = api.NewClient(r.config.API.BaseURL, api.WithTimeout(r.config.API.Timeout))
	}
	r.app = NewApp(client, r.config)
	r.app.SetOutput(r.out)
	r.app.SetInput(r.in)
	return nil
}

// viewFlags registers --filter and --sort with the configured defaults
func viewFlags(flags *pflag.FlagSet) {
	flags.StringP("filter", "f", "", "Show all, active or completed tasks (default from TM_LIST_DEFAULT_FILTER)")
	flags.StringP("sort", "s", "", "Sort by date, status or due (default from TM_LIST_DEFAULT_SORT)")
}

// viewOptions reads --filter and --sort, falling back to configuration
func (r *RootCommand) viewOptions(cmd *cobra.Command) (view.Filter, view.SortKey, error) {
	filterName, _ := cmd.Flags().GetString("filter")
	if filterName == "" {
		filterName = r.config.Commands.ListDefaultFilter
	}
	filter, err := view.ParseFilter(filterName)
	if err != nil {
		return "", "", err
	}

	sortName, _ := cmd.Flags().GetString("sort")
	if sortName == "" {
		sortName = r.config.Commands.ListDefaultSort
	}
	key, err := view.ParseSortKey(sortName)
	if err != nil {
		return "", "", err
	}
	return filter, key, nil
}

// taskFormFlags registers the editable task fields
func taskFormFlags(flags *pflag.FlagSet) {
	flags.StringP("description", "d", "", "Task description")
	flags.String("status", "", "TODO, IN_PROGRESS or DONE")
	flags.String("due", "", "Due date: YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC 3339")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks with the Total / Active / Completed stats line.

Examples:
  tm list                          # All tasks, most recently updated first
  tm list --filter completed       # Only DONE tasks
  tm list --sort status            # TODO, then IN_PROGRESS, then DONE`,
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, key, err := r.viewOptions(cmd)
			if err != nil {
				return err
			}
			return NewListCommand(r.app).Execute(cmd.Context(), filter, key)
		},
	}
	viewFlags(listCmd.Flags())

	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Long: `Add a new task. Words of the title may be given unquoted.

The title is required. Titles longer than the configured limit are
truncated, as are descriptions.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, _ := cmd.Flags().GetString("description")
			status, _ := cmd.Flags().GetString("status")
			due, _ := cmd.Flags().GetString("due")
			return NewAddCommand(r.app).Execute(cmd.Context(), validation.TaskForm{
				Title:       joinArgs(args),
				Description: description,
				Status:      status,
				DueDate:     due,
			})
		},
	}
	taskFormFlags(addCmd.Flags())

	editCmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a task",
		Long: `Change fields of a task. Fields that are not given keep their value;
the complete task is sent to the backend.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewEditCommand(r.app).Execute(cmd.Context(), args[0], editChanges(cmd.Flags()))
		},
	}
	editCmd.Flags().String("title", "", "New title")
	taskFormFlags(editCmd.Flags())
	editCmd.Flags().Bool("clear-due", false, "Remove the due date")
	editCmd.MarkFlagsMutuallyExclusive("due", "clear-due")

	toggleCmd := &cobra.Command{
		Use:   "toggle [id]",
		Short: "Mark a task done, or not done",
		Long:  "Toggle a task: DONE goes back to TODO, anything else becomes DONE.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewToggleCommand(r.app).Execute(cmd.Context(), args[0])
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task",
		Long: `Delete a task. This cannot be undone, so you are asked to confirm
unless --yes is given.`,
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			return NewDeleteCommand(r.app).Execute(cmd.Context(), args[0], yes)
		},
	}
	deleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks as CSV or JSON",
		Long: `Export the task list in the specified format. --filter and --sort
select and order the tasks as in list.

Supported formats:
  csv  - Comma-separated values with a header row
  json - The REST representation of each task`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, key, err := r.viewOptions(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			if format == "" {
				format = r.config.Commands.ExportDefaultFormat
			}
			return NewExportCommand(r.app).Execute(cmd.Context(), format, filter, key)
		},
	}
	exportCmd.Flags().String("format", "", "csv or json (default from TM_EXPORT_DEFAULT_FORMAT)")
	viewFlags(exportCmd.Flags())

	uiCmd := &cobra.Command{
		Use:   "ui",
		Short: "Interactive task list",
		Long: `Open the interactive task list.

Keys: a add, e edit, space toggle, d delete, f filter, s sort, r reload, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, key, err := r.viewOptions(cmd)
			if err != nil {
				return err
			}
			return NewUICommand(r.app).Execute(cmd.Context(), filter, key)
		},
	}
	viewFlags(uiCmd.Flags())

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reference task backend",
		Long: `Serve the task REST API at /api/tasks, stored in SQLite.

Stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				r.config.Server.Addr = addr
			}
			if dir, _ := cmd.Flags().GetString("db-dir"); dir != "" {
				r.config.Server.DBDir = dir
			}
			return NewServeCommand(r.config).Execute(cmd.Context())
		},
	}
	serveCmd.Flags().String("addr", "", "Listen address (overrides TM_SERVER_ADDR)")
	serveCmd.Flags().String("db-dir", "", "Database directory (overrides TM_DB_DIR)")

	r.cmd.AddCommand(
		listCmd,
		addCmd,
		editCmd,
		toggleCmd,
		deleteCmd,
		exportCmd,
		uiCmd,
		serveCmd,
	)
}

// editChanges reads the edit flags the user set
func editChanges(flags *pflag.FlagSet) EditChanges {
	var ch EditChanges
	for name, target := range map[string]**string{
		"title":       &ch.Title,
		"description": &ch.Description,
		"status":      &ch.Status,
		"due":         &ch.DueDate,
	} {
		if flags.Changed(name) {
			v, _ := flags.GetString(name)
			*target = &v
		}
	}
	ch.ClearDue, _ = flags.GetBool("clear-due")
	return ch
}
