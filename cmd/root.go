/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/telogical/gqlx/pkg/config"
	"github.com/telogical/gqlx/pkg/dispatch"
	"github.com/telogical/gqlx/pkg/render"
)

var (
	schemaFilePath string
	outputFormat   render.Format
	cfg            config.Config
	logger         *slog.Logger
)

type connectionFlags struct {
	configPath  string
	endpoint    string
	token       string
	locale      string
	timeout     time.Duration
	concurrency int
	verbose     bool
}

func formatFlag() string {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return string(render.FormatPretty)
	}
	return string(render.FormatText)
}

// NewRootCmd creates and returns the root command with all subcommands attached.
// This function creates a fresh command tree, ensuring no state leaks between invocations.
func NewRootCmd() *cobra.Command {
	conn := &connectionFlags{}

	cmd := &cobra.Command{
		Use:   "gqlx",
		Short: "Query a GraphQL backend in parallel and explore its schema",
		Long: `gqlx sends batches of GraphQL queries to one endpoint concurrently and
reports a keyed outcome per query. A failing query never affects its siblings.

It also introspects the endpoint's schema and answers structural questions
about it: which types a root field pulls in, where a type is used, and a
full markdown reference of every query and mutation.

The endpoint is configured with --endpoint, TELOGICAL_GRAPHQL_ENDPOINT or a
YAML file passed with --config. Schema commands fetch the schema from the
endpoint unless an introspection result is given with -s.

Output can be formatted as pretty tables (default in terminals), plain text
(default when piping), markdown, or JSON for integration with other tools.`,
		Example: `  # Run two queries in parallel
  gqlx query '{ __typename }' '{ providerCount }'

  # Run a batch file of strings and {"query", "queryId", "variables"} records
  gqlx query --file batch.json -f json

  # Fetch the full schema once and explore it offline
  gqlx introspect full_schema -f json > schema.json
  gqlx refs Query.packages -s schema.json

  # Look up a single type
  gqlx introspect type_details --type Package

  # Generate the markdown reference
  gqlx docs -s schema.json > SCHEMA.md`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&schemaFilePath, "schema", "s", "", "Introspection result (JSON) to read instead of querying the endpoint")

	var formatStr string
	cmd.PersistentFlags().StringVarP(&formatStr, "format", "f", formatFlag(), "Output format: json, text, pretty, markdown (default: pretty if interactive, text otherwise)")

	cmd.PersistentFlags().StringVar(&conn.configPath, "config", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&conn.endpoint, "endpoint", "", "GraphQL endpoint URL (overrides "+config.EnvEndpoint+")")
	cmd.PersistentFlags().StringVar(&conn.token, "token", "", "Authorization header value (overrides "+config.EnvAuthToken+")")
	cmd.PersistentFlags().StringVar(&conn.locale, "locale", "", "Locale header value (overrides "+config.EnvLocale+")")
	cmd.PersistentFlags().DurationVar(&conn.timeout, "timeout", 0, "Per-query timeout (default 30s)")
	cmd.PersistentFlags().IntVar(&conn.concurrency, "concurrency", 0, "Maximum queries in flight, 0 sends the whole batch at once")
	cmd.PersistentFlags().BoolVarP(&conn.verbose, "verbose", "v", false, "Log requests to stderr")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		outputFormat, err = render.ParseFormat(formatStr)
		if err != nil {
			return err
		}

		level := slog.LevelWarn
		if conn.verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

		return conn.load(cmd)
	}

	cmd.AddCommand(NewQueryCmd(conn))
	cmd.AddCommand(NewIntrospectCmd(conn))
	cmd.AddCommand(NewDocsCmd(conn))
	cmd.AddCommand(NewSummaryCmd(conn))
	cmd.AddCommand(NewRelatedCmd(conn))
	cmd.AddCommand(NewRefsCmd(conn))
	cmd.AddCommand(NewTypesCmd(conn))
	cmd.AddCommand(NewFieldsCmd(conn))
	cmd.AddCommand(NewValuesCmd(conn))
	cmd.AddCommand(NewValidateCmd(conn))

	return cmd
}

// load layers the command line over the config file and environment.
func (c *connectionFlags) load(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(c.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Endpoint = c.endpoint
	}
	if flags.Changed("token") {
		cfg.AuthToken = c.token
	}
	if flags.Changed("locale") {
		cfg.Locale = c.locale
	}
	if flags.Changed("timeout") {
		cfg.SetTimeout(c.timeout)
	}
	logger.Debug("configuration loaded", "config", cfg.String())
	return nil
}

func (c *connectionFlags) newDispatcher(opts ...dispatch.Option) *dispatch.Dispatcher {
	opts = append([]dispatch.Option{
		dispatch.WithLogger(logger),
		dispatch.WithConcurrencyLimit(c.concurrency),
	}, opts...)
	return dispatch.New(cfg.Dispatch(), opts...)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// ExecuteWithArgs runs the CLI with the given arguments and returns stdout, stderr, and any error.
// This is useful for testing.
func ExecuteWithArgs(args []string) (stdout string, stderr string, err error) {
	return ExecuteWithArgsAndStdin(args, nil)
}

// ExecuteWithArgsAndStdin runs the CLI with the given arguments and stdin, returns stdout, stderr, and any error.
// This is useful for testing commands that read from stdin.
func ExecuteWithArgsAndStdin(args []string, stdin *bytes.Buffer) (stdout string, stderr string, err error) {
	cmd := NewRootCmd()

	stdoutBuf := new(bytes.Buffer)
	stderrBuf := new(bytes.Buffer)

	cmd.SetOut(stdoutBuf)
	cmd.SetErr(stderrBuf)
	cmd.SetArgs(args)
	if stdin != nil {
		cmd.SetIn(stdin)
	}

	err = cmd.Execute()

	return stdoutBuf.String(), stderrBuf.String(), err
}
