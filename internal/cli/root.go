// Package cli wires the taskmanager commands together.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"taskmanager/internal/client"
	"taskmanager/internal/config"
	"taskmanager/internal/logging"
	"taskmanager/internal/taskstore"
)

// Version is set via ldflags at build time.
var Version = "dev"

// APIFactory builds the remote task API used by the client commands.
type APIFactory func(cfg *config.Config) taskstore.API

// App carries what every command needs once flags are parsed.
type App struct {
	Out    io.Writer
	ErrOut io.Writer
	NewAPI APIFactory

	configPath string
	logLevel   string

	cfg    *config.Config
	logger *log.Logger
}

// DefaultAPI talks HTTP to cfg.API.BaseURL.
func DefaultAPI(cfg *config.Config) taskstore.API {
	return client.New(cfg.API.BaseURL, cfg.API.Timeout)
}

// NewRootCommand builds the command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	return (&App{Out: out, ErrOut: errOut, NewAPI: DefaultAPI}).Command()
}

// Command builds the root command bound to this App.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:           "taskmanager",
		Short:         "Task service and command-line client",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(a.Out)
	root.SetErr(a.ErrOut)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(a.serveCmd())
	root.AddCommand(a.listCmd())
	root.AddCommand(a.addCmd())
	root.AddCommand(a.toggleCmd())
	root.AddCommand(a.rmCmd())

	return root
}

func (a *App) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	a.cfg = cfg
	a.logger = logging.New(a.ErrOut, logging.Options{
		Level:           cfg.Log.Level,
		Format:          cfg.Log.Format,
		Prefix:          "taskmanager",
		ReportTimestamp: true,
	})
	return nil
}

func (a *App) taskStore() *taskstore.Store {
	return taskstore.New(a.NewAPI(a.cfg), a.logger)
}
