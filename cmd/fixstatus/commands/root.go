// Package commands implements the CLI commands for fixstatus.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/gmackall/flutter-fix-status/internal/build"
	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for fixstatus.
type CLI struct {
	app        Application
	rootCmd    *cobra.Command
	serverAddr string
}

// Application represents the application logic interface.
type Application interface {
	Resolve(ctx context.Context, query string) (*domain.Resolution, error)
	Check(ctx context.Context, query string) (*domain.Report, error)
	CheckCommit(ctx context.Context, sha string) (*domain.CommitReport, error)
	ClearCache(ctx context.Context) error
	Serve(ctx context.Context, addr string) error
}

// Option configures a CLI.
type Option func(*CLI)

// WithServerAddr sets the default listen address of the serve command.
func WithServerAddr(addr string) Option {
	return func(c *CLI) {
		c.serverAddr = addr
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "fixstatus",
		Short:         "Find which Flutter releases contain a fix",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	// Global flags are read by the configuration loader before the command runs.
	rootCmd.PersistentFlags().AddFlagSet(GlobalFlags())

	c := &CLI{
		app:        a,
		rootCmd:    rootCmd,
		serverAddr: domain.DefaultServerAddr,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
