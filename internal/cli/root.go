// Package cli wires the tfocus commands together.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tfocus/internal/config"
	"tfocus/internal/interrupt"
	"tfocus/internal/logging"
	"tfocus/internal/platform"
	"tfocus/internal/ui/display"
)

// version is set at build time with -ldflags "-X tfocus/internal/cli.version=..."
var version = "dev"

// Streams are the standard streams a command uses
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// App holds what the commands share
type App struct {
	Streams  Streams
	Platform platform.Platform
	Loader   *config.Loader

	// InstallInterrupts connects process interrupts to token and returns the
	// function that disconnects them.
	InstallInterrupts func(token *interrupt.Token, logger *zap.Logger) (func(), error)

	logger *zap.Logger
	opts   options
}

type options struct {
	action     string
	verbose    bool
	logFile    string
	configPath string
	noPager    bool
}

// NewApp returns an App on the process streams and signals
func NewApp() *App {
	p := platform.Current()
	return &App{
		Streams:  Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr},
		Platform: p,
		Loader:   config.NewLoader(),
		InstallInterrupts: func(token *interrupt.Token, logger *zap.Logger) (func(), error) {
			b, err := interrupt.Install(token, p, logger)
			if err != nil {
				return nil, err
			}
			return b.Close, nil
		},
		logger: zap.NewNop(),
	}
}

// Execute runs the command line and returns the exit code
func Execute() int {
	app := NewApp()
	return app.Run(os.Args[1:])
}

// Run executes args and reports any error uniformly on the error stream
func (a *App) Run(args []string) int {
	// flag and argument errors are reported before PersistentPreRunE builds the logger
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	cmd := NewRootCommand(a)
	cmd.SetArgs(args)
	err := cmd.Execute()
	a.report(err)
	_ = a.logger.Sync()
	return ExitCode(err)
}

func (a *App) report(err error) {
	if err == nil {
		return
	}
	p := display.NewPrinter(a.Streams.Err)
	switch ExitCode(err) {
	case ExitCancelled:
		p.Warning("cancelled")
	case ExitNoResources:
		p.Warning(err.Error())
	case ExitUsage:
		p.Error(err.Error())
		fmt.Fprintln(a.Streams.Err, "Run 'tfocus --help' for usage.")
	default:
		p.Error(err.Error())
	}
	a.logger.Debug("command finished", zap.Error(err), zap.Int("exit_code", ExitCode(err)))
}

// NewRootCommand builds the command tree on app
func NewRootCommand(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tfocus [path]",
		Short: "Pick Terraform resources with a fuzzy finder and plan or apply only those",
		Long: `tfocus scans a directory for Terraform resource and module blocks, lets you
pick some of them in a fuzzy-searchable menu, and runs terraform plan or apply
with one -target per selected resource.`,
		Args:          pathArg,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(a.opts.logFile, a.opts.verbose)
			if err != nil {
				display.NewPrinter(a.Streams.Err).Warning(fmt.Sprintf("logging disabled: %v", err))
			}
			a.logger = logger.With(zap.String("command", cmd.Name()))
			a.logger.Debug("starting", zap.String("version", version), zap.Strings("args", args))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSession(cmd.Context(), rootPath(args))
		},
	}

	root.SetIn(a.Streams.In)
	root.SetOut(a.Streams.Out)
	root.SetErr(a.Streams.Err)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Msg: err.Error()}
	})

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "debug-level logging")
	flags.StringVar(&a.opts.logFile, "log-file", "", "log file path (default "+logging.DefaultPath()+")")
	flags.StringVar(&a.opts.configPath, "config", "", "config file (default <path>/"+config.ProjectFileName+" or the user config)")
	root.Flags().StringVarP(&a.opts.action, "action", "a", "", "action to run: plan or apply (asks when omitted)")

	root.AddCommand(newListCommand(a), newVersionCommand(a))
	return root
}

func newVersionCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.Streams.Out, "tfocus %s\n", version)
		},
	}
}

// pathArg accepts at most one directory argument
func pathArg(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return &UsageError{Msg: fmt.Sprintf("expected at most one path, got %d", len(args))}
	}
	return nil
}

func rootPath(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return "."
}

// loadConfig reads --config when given, otherwise looks it up from root
func (a *App) loadConfig(root string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if a.opts.configPath != "" {
		cfg, err = a.Loader.LoadFromPath(a.opts.configPath)
	} else {
		cfg, err = a.Loader.Load(root)
	}
	if err != nil {
		return nil, err
	}
	a.logger.Debug("config loaded", zap.String("source", cfg.Source), zap.String("binary", cfg.Binary))
	return cfg, nil
}
