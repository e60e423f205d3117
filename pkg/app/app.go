package app

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/kiosk404/pokedex/pkg/logger"
	"github.com/kiosk404/pokedex/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// CliOptions is implemented by every binary's option tree.
type CliOptions interface {
	AddFlags(fs *pflag.FlagSet)
	Validate() []error
}

// CompletableOptions can derive defaults after flags and config are merged.
type CompletableOptions interface {
	Complete() error
}

// RunFunc is the entrypoint invoked after options are loaded and validated.
type RunFunc func(basename string) error

// ConfigWatcher is notified whenever the config file changes on disk.
type ConfigWatcher func(v *viper.Viper, e fsnotify.Event)

type Option func(*App)

type App struct {
	basename    string
	name        string
	description string
	options     CliOptions
	runFunc     RunFunc
	noConfig    bool
	args        cobra.PositionalArgs
	commands    []*cobra.Command
	watchers    []ConfigWatcher
	cmd         *cobra.Command
}

func WithOptions(opt CliOptions) Option {
	return func(a *App) { a.options = opt }
}

func WithRunFunc(run RunFunc) Option {
	return func(a *App) { a.runFunc = run }
}

func WithDescription(desc string) Option {
	return func(a *App) { a.description = desc }
}

// WithNoConfig disables the --config flag and viper binding.
func WithNoConfig() Option {
	return func(a *App) { a.noConfig = true }
}

// WithDefaultValidArgs rejects positional arguments.
func WithDefaultValidArgs() Option {
	return func(a *App) {
		a.args = func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				if len(arg) > 0 {
					return fmt.Errorf("%q does not take any arguments, got %q", cmd.CommandPath(), args)
				}
			}
			return nil
		}
	}
}

// WithSubCommands attaches extra commands, e.g. one-shot maintenance tasks.
func WithSubCommands(cmds ...*cobra.Command) Option {
	return func(a *App) { a.commands = append(a.commands, cmds...) }
}

// WithConfigWatcher registers a callback fired on config file changes.
func WithConfigWatcher(w ConfigWatcher) Option {
	return func(a *App) { a.watchers = append(a.watchers, w) }
}

// NewApp creates an application wired to cobra and viper.
func NewApp(name, basename string, opts ...Option) *App {
	a := &App{name: name, basename: basename}
	for _, o := range opts {
		o(a)
	}
	a.buildCommand()
	return a
}

// Command exposes the root cobra command, mostly for tests.
func (a *App) Command() *cobra.Command {
	return a.cmd
}

// Run executes the root command and exits non-zero on failure.
func (a *App) Run() {
	if err := a.cmd.Execute(); err != nil {
		fmt.Printf("%v %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}

func (a *App) buildCommand() {
	cmd := &cobra.Command{
		Use:           FormatBaseName(a.basename),
		Short:         a.name,
		Long:          a.description,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          a.args,
	}
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	cmd.Flags().SortFlags = true
	cmd.AddCommand(a.commands...)

	if a.runFunc != nil {
		cmd.RunE = a.runCommand
	}

	if a.options != nil {
		a.options.AddFlags(cmd.Flags())
	}
	if !a.noConfig {
		addConfigFlag(a.basename, cmd.Flags())
	}
	cmd.Flags().Bool("version", false, "Print version information and quit.")

	a.cmd = cmd
}

func (a *App) runCommand(cmd *cobra.Command, _ []string) error {
	if v, _ := cmd.Flags().GetBool("version"); v {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		return nil
	}

	if !a.noConfig {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		if a.options != nil {
			if err := viper.Unmarshal(a.options); err != nil {
				return fmt.Errorf("unmarshal config: %w", err)
			}
		}
		a.watchConfig()
	}

	if a.options != nil {
		if c, ok := a.options.(CompletableOptions); ok {
			if err := c.Complete(); err != nil {
				return err
			}
		}
		if errs := a.options.Validate(); len(errs) != 0 {
			return errors.Join(errs...)
		}
	}

	logger.Info("[%s] starting %s", a.name, version.Get().String())
	return a.runFunc(a.basename)
}

func (a *App) watchConfig() {
	if len(a.watchers) == 0 || viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		for _, w := range a.watchers {
			w(viper.GetViper(), e)
		}
	})
	viper.WatchConfig()
}

// FormatBaseName strips the platform suffix from a binary name.
func FormatBaseName(basename string) string {
	return strings.TrimSuffix(strings.ToLower(basename), ".exe")
}
