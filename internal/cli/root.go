// Package cli implements taskctl, a terminal client for the task API.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/taskify-api/internal/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to taskctl's environment variables,
// e.g. TASKIFY_API_URL.
const EnvPrefix = "TASKIFY"

// DefaultRequestTimeout bounds each API request unless --timeout is set.
const DefaultRequestTimeout = 30 * time.Second

// RootCommand is the taskctl command tree plus the state its subcommands
// share once flags have been resolved.
type RootCommand struct {
	cmd        *cobra.Command
	v          *viper.Viper
	httpClient *http.Client

	logger *slog.Logger
	client *client.Client
}

// Option configures a RootCommand.
type Option func(*RootCommand)

// WithHTTPClient makes every API call go through hc. The --timeout flag is
// ignored when it is set.
func WithHTTPClient(hc *http.Client) Option {
	return func(r *RootCommand) { r.httpClient = hc }
}

// WithOutput redirects standard output and standard error.
func WithOutput(out, errOut io.Writer) Option {
	return func(r *RootCommand) {
		r.cmd.SetOut(out)
		r.cmd.SetErr(errOut)
	}
}

// NewRootCommand builds the taskctl command tree.
func NewRootCommand(opts ...Option) *RootCommand {
	root := &RootCommand{v: viper.New()}

	root.cmd = &cobra.Command{
		Use:   "taskctl",
		Short: "Manage tasks from the command line",
		Long: `taskctl lists, creates, edits and deletes tasks through the task API.

EXAMPLES:
  taskctl list                                   # All tasks
  taskctl list --status pending --priority high  # Filtered
  taskctl add --title "Write report" --description "Q1 numbers" \
      --due 2024-01-01 --priority high --status pending
  taskctl edit 65a000000000000000000001 --status completed
  taskctl delete 65a000000000000000000001

CONFIGURATION:
  TASKIFY_API_URL        API root (default: ` + client.DefaultBaseURL + `)
  TASKIFY_TIMEOUT        Per-request timeout (default: 30s)
  TASKIFY_VERBOSE        Log requests to stderr (default: false)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	for _, opt := range opts {
		opt(root)
	}

	return root
}

// Command exposes the underlying cobra command.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the command tree with args from os.Args. Errors are printed
// to standard error before being returned.
func (r *RootCommand) Execute(ctx context.Context) error {
	if err := r.cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(r.cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()
	flags.String("api-url", client.DefaultBaseURL, "API root URL (overrides TASKIFY_API_URL)")
	flags.Duration("timeout", DefaultRequestTimeout, "Per-request timeout (overrides TASKIFY_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Log API requests to stderr (overrides TASKIFY_VERBOSE)")

	r.v.SetEnvPrefix(EnvPrefix)
	r.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	r.v.AutomaticEnv()

	r.v.SetDefault("api-url", client.DefaultBaseURL)
	r.v.SetDefault("timeout", DefaultRequestTimeout)
	r.v.SetDefault("verbose", false)

	_ = r.v.BindPFlag("api-url", flags.Lookup("api-url"))
	_ = r.v.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = r.v.BindPFlag("verbose", flags.Lookup("verbose"))
}

func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		newListCommand(r),
		newShowCommand(r),
		newAddCommand(r),
		newEditCommand(r),
		newDeleteCommand(r),
	)
}

// setup resolves configuration and builds the logger and API client.
func (r *RootCommand) setup(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if r.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	r.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	hc := r.httpClient
	if hc == nil {
		timeout := r.v.GetDuration("timeout")
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", timeout)
		}
		hc = &http.Client{Timeout: timeout}
	}

	c, err := client.New(r.v.GetString("api-url"),
		client.WithHTTPClient(hc),
		client.WithLogger(r.logger))
	if err != nil {
		return err
	}
	r.client = c

	r.logger.Debug("taskctl configured", slog.String("api_url", c.BaseURL()))
	return nil
}

// newStore returns a client Store over the configured API.
func (r *RootCommand) newStore() (*client.Store, error) {
	return client.NewStore(r.client, r.logger)
}
