// Package main provides the CLI entrypoint for aynzo.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/client"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/config"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/logging"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/repl"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/server"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/tools"
)

var (
	logLevel  string
	logFormat string

	network      string
	address      string
	maxMessage   int
	readTimeout  time.Duration
	densityTop   int
	diffMaxCells int

	runInput     string
	runFile      string
	runOther     string
	runOtherFile string
	runOpts      []string
	runJSON      bool
	runRemote    bool

	pipeSteps []string
	pipeFile  string

	listCategory string
	listJSON     bool

	replLocal   bool
	replNoColor bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "aynzo",
		Short:         "Text analysis and transformation tools",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", config.DefaultLogFormat, "log format: json or text")
	flags.StringVar(&network, "network", config.DefaultNetwork, "server network: unix or tcp")
	flags.StringVar(&address, "address", "", "server socket path or host:port")
	flags.IntVar(&maxMessage, "max-message-bytes", config.DefaultMaxMessageBytes, "largest accepted frame")
	flags.IntVar(&densityTop, "density-top", config.DefaultDensityTop, "keywords ranked by keyword-density")
	flags.IntVar(&diffMaxCells, "diff-max-cells", config.DefaultDiffMaxCells, "LCS table budget for word and character diffs")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newPipeCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// loadConfig merges the config file into flags the user did not set.
func loadConfig(cmd *cobra.Command) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-format", &logFormat, fileCfg.Log.Format)
	applyStringConfig(cmd, "network", &network, fileCfg.Server.Network)
	applyStringConfig(cmd, "address", &address, fileCfg.Server.Address)
	applyIntConfig(cmd, "max-message-bytes", &maxMessage, fileCfg.Server.MaxMessageBytes)
	applyIntConfig(cmd, "density-top", &densityTop, fileCfg.Tools.DensityTop)
	applyIntConfig(cmd, "diff-max-cells", &diffMaxCells, fileCfg.Tools.DiffMaxCells)
	if d := fileCfg.Server.ReadTimeout; d != nil && !flagChanged(cmd, "read-timeout") {
		readTimeout = d.Duration
	}

	if address == "" {
		if network == "tcp" {
			return errors.New("--address is required for tcp")
		}
		address = config.DefaultSocketPath()
	}
	return nil
}

func newRegistry() *tools.Registry {
	return tools.NewRegistry(tools.WithDensityTop(densityTop), tools.WithDiffMaxCells(diffMaxCells))
}

func newLogger() *slog.Logger {
	return logging.New(os.Stderr, logLevel, logFormat)
}

func dialServer(ctx context.Context) (*client.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return client.Dial(ctx, network, address, maxMessage)
}

// ============================================================================
// run
// ============================================================================

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <tool>",
		Short: "Run a tool on text from --input, --file or stdin",
		Args:  cobra.ExactArgs(1),
		RunE:  runRunCmd,
	}
	cmd.Flags().StringVar(&runInput, "input", "", "input text")
	cmd.Flags().StringVar(&runFile, "file", "", "read input from file")
	cmd.Flags().StringVar(&runOther, "other", "", "second text for comparing tools")
	cmd.Flags().StringVar(&runOtherFile, "other-file", "", "read the second text from file")
	cmd.Flags().StringArrayVarP(&runOpts, "opt", "o", nil, "tool option key=value (repeatable)")
	cmd.Flags().BoolVar(&runJSON, "json", false, "print the tagged result as JSON")
	cmd.Flags().BoolVar(&runRemote, "remote", false, "run on the server instead of in-process")
	return cmd
}

func runRunCmd(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}
	opts, err := tools.ParseOptions(runOpts)
	if err != nil {
		return err
	}

	input, err := readText(cmd, "input", "file", runInput, runFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	other, err := readText(cmd, "other", "other-file", runOther, runOtherFile, nil)
	if err != nil {
		return err
	}
	req := tools.Request{Tool: args[0], Input: input, Other: other, Options: opts}

	var res tools.Result
	if runRemote {
		c, err := dialServer(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()
		res, err = c.Run(req)
		if err != nil {
			return err
		}
	} else {
		res, err = newRegistry().Run(req)
		if err != nil {
			return err
		}
	}

	return printResult(cmd, res)
}

// printResult writes res as text, or as its tagged envelope with --json.
func printResult(cmd *cobra.Command, res tools.Result) error {
	out := cmd.OutOrStdout()
	if runJSON {
		env, err := tools.Wrap(res)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	}
	fmt.Fprintln(out, res.Text())
	return nil
}

// readText resolves a text from its flag, its file flag, or fallback.
func readText(cmd *cobra.Command, name, fileFlag, value, file string, fallback io.Reader) (string, error) {
	switch {
	case flagChanged(cmd, name) && file != "":
		return "", fmt.Errorf("use either --%s or --%s", name, fileFlag)
	case flagChanged(cmd, name):
		return value, nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), nil
	case fallback != nil:
		data, err := io.ReadAll(fallback)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimSuffix(string(data), "\n"), nil
	}
	return "", nil
}

// ============================================================================
// pipe
// ============================================================================

func newPipeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipe",
		Short: "Chain tools, feeding each one the previous output",
		Example: `  aynzo pipe -s "trim-lines" -s "dedupe-lines ignore_case" -s "slug" < keywords.txt
  aynzo pipe --steps cleanup.yaml --file page.html`,
		Args: cobra.NoArgs,
		RunE: runPipeCmd,
	}
	cmd.Flags().StringArrayVarP(&pipeSteps, "step", "s", nil, `step as "tool key=value ..." (repeatable)`)
	cmd.Flags().StringVar(&pipeFile, "steps", "", "read steps from a YAML or JSON file")
	cmd.Flags().StringVar(&runInput, "input", "", "input text")
	cmd.Flags().StringVar(&runFile, "file", "", "read input from file")
	cmd.Flags().BoolVar(&runJSON, "json", false, "print the tagged result as JSON")
	cmd.Flags().BoolVar(&runRemote, "remote", false, "run on the server instead of in-process")
	return cmd
}

func runPipeCmd(cmd *cobra.Command, _ []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	var steps []tools.Step
	if pipeFile != "" {
		data, err := os.ReadFile(pipeFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", pipeFile, err)
		}
		if steps, err = tools.ParsePipeline(data); err != nil {
			return err
		}
	}
	for _, raw := range pipeSteps {
		parsed, err := repl.ParseCommand(raw)
		if err != nil {
			return fmt.Errorf("bad step %q: %w", raw, err)
		}
		step, err := tools.ParseStep(append([]string{parsed.Verb}, parsed.Args...))
		if err != nil {
			return fmt.Errorf("bad step %q: %w", raw, err)
		}
		steps = append(steps, step)
	}
	if len(steps) == 0 {
		return errors.New("give at least one --step or a --steps file")
	}

	input, err := readText(cmd, "input", "file", runInput, runFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	var res tools.Result
	if runRemote {
		c, err := dialServer(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()
		if res, err = c.Pipeline(input, steps); err != nil {
			return err
		}
	} else if res, err = newRegistry().Pipeline(input, steps); err != nil {
		return err
	}
	return printResult(cmd, res)
}

// ============================================================================
// list
// ============================================================================

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tool catalog",
		Args:  cobra.NoArgs,
		RunE:  runListCmd,
	}
	cmd.Flags().StringVar(&listCategory, "category", "", "only list one category")
	cmd.Flags().BoolVar(&listJSON, "json", false, "print the catalog as JSON")
	return cmd
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	var list []tools.Tool
	categories := make(map[string]bool)
	for _, t := range newRegistry().List() {
		if listCategory != "" && t.Category != listCategory {
			continue
		}
		list = append(list, t)
		categories[t.Category] = true
	}
	if len(list) == 0 {
		return fmt.Errorf("no tools in category %q", listCategory)
	}

	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	rows := make([][]string, len(list))
	for i, t := range list {
		name := t.Name
		if t.LineWise {
			name += " *"
		}
		rows[i] = []string{name, t.Category, t.Summary}
	}
	f := repl.NewFormatter(out, false)
	f.PrintTable([]string{"TOOL", "CATEGORY", "SUMMARY"}, rows)
	fmt.Fprintf(out, "\n%s tools in %s categories; * accepts line_based=true\n",
		humanize.Comma(int64(len(list))), humanize.Comma(int64(len(categories))))
	return nil
}

// ============================================================================
// serve
// ============================================================================

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve tools over a unix or TCP socket",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().DurationVar(&readTimeout, "read-timeout", 0, "close connections idle this long (0 disables)")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}
	logger := newLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Network:         network,
		Address:         address,
		MaxMessageBytes: maxMessage,
		ReadTimeout:     readTimeout,
	}, newRegistry(), logger)

	logger.Info("server_config",
		slog.String("max_message", humanize.IBytes(uint64(maxMessage))),
		slog.Duration("read_timeout", readTimeout),
		slog.Int("density_top", densityTop),
		slog.String("diff_max_cells", humanize.Comma(int64(diffMaxCells))),
	)
	return srv.Serve(ctx)
}

// ============================================================================
// repl
// ============================================================================

func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive shell connected to a running server",
		Args:  cobra.NoArgs,
		RunE:  runReplCmd,
	}
	cmd.Flags().BoolVar(&replLocal, "local", false, "run tools in-process instead of connecting")
	cmd.Flags().BoolVar(&replNoColor, "no-color", false, "disable colored output")
	return cmd
}

func runReplCmd(cmd *cobra.Command, _ []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}
	if replLocal {
		return repl.Run(repl.Local{Registry: newRegistry()}, "aynzo (in-process)", !replNoColor)
	}

	c, err := dialServer(cmd.Context())
	if err != nil {
		return err
	}
	defer c.Close()
	if err := c.Ping(); err != nil {
		return fmt.Errorf("server did not answer: %w", err)
	}
	return repl.Run(c, "Connected to "+address, !replNoColor)
}

// ============================================================================
// config
// ============================================================================

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create the config file if missing and print its path",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.DefaultTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}
