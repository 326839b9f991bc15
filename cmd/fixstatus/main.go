// Package main is the entry point for the fixstatus tool.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gmackall/flutter-fix-status/cmd/fixstatus/commands"
	"github.com/gmackall/flutter-fix-status/internal/adapters/config"
	"github.com/gmackall/flutter-fix-status/internal/adapters/credential"
	"github.com/gmackall/flutter-fix-status/internal/app"
	_ "github.com/gmackall/flutter-fix-status/internal/wiring"
	"github.com/grindlemire/graft"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	defer credential.Purge()

	// 1. Global flags feed the configuration node
	ctx = config.WithFlags(ctx, commands.ParseGlobalFlags(args))

	// 2. Initialize application components
	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()
	defer func() {
		if err := components.Close(); err != nil {
			components.Logger.Error(err)
		}
	}()

	var opts []commands.Option
	if components.Config != nil {
		opts = append(opts, commands.WithServerAddr(components.Config.Server.Addr))
	}

	// 3. Interface - CLI
	cli := commands.New(components.App, opts...)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	// 4. Execution
	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}
