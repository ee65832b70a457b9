package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/bootkernel/internal/app"
	"github.com/specialistvlad/bootkernel/internal/config"
	"github.com/specialistvlad/bootkernel/internal/ctxlog"
	"github.com/specialistvlad/bootkernel/internal/httpserver"
)

// NewRootCommand builds the built-in command tree for a. Module commands are
// not part of it until AttachConsole is called after boot.
func NewRootCommand(a *app.App) *cobra.Command {
	root := &cobra.Command{
		Use:           "kernel",
		Short:         "Boot the application kernel and dispatch requests to it",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newBootCommand(a), newPathsCommand(a), newEnvironmentsCommand(a), newServeCommand(a))
	return root
}

func newBootCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "boot",
		Short: "Boot the kernel and report its state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k := a.Kernel()
			if err := a.Boot(cmd.Context()); err != nil {
				return &ExitError{Code: 1, Message: fmt.Sprintf("boot failed: %v", err)}
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "booted environment=%s debug=%t modules=%s\n",
				k.Environment(), k.Debug(), strings.Join(k.Modules().Names(), ","))
			return err
		},
	}
}

func newPathsCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the directories the kernel derives from its root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k := a.Kernel()
			out := cmd.OutOrStdout()
			for _, row := range [][2]string{
				{"root", k.RootPath()},
				{"config", k.ConfigurationFile()},
				{"cache", k.CacheDirectory()},
				{"logs", k.LogDirectory()},
			} {
				if _, err := fmt.Fprintf(out, "%-7s%s\n", row[0], row[1]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newEnvironmentsCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "environments",
		Short: "List environments with a configuration artifact, marking the current one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k := a.Kernel()
			envs, err := config.Environments(k.ConfigurationDirectory(), k.Extension())
			if err != nil {
				return err
			}
			for _, env := range envs {
				marker := " "
				if env == k.Environment() {
					marker = "*"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, env); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newServeCommand(a *app.App) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve HTTP requests through the kernel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxlog.WithLogger(cmd.Context(), a.Logger())
			// Requests are handled concurrently; the kernel must be booted first.
			if err := a.Boot(ctx); err != nil {
				return &ExitError{Code: 1, Message: fmt.Sprintf("boot failed: %v", err)}
			}
			return httpserver.Run(ctx, httpserver.New(a.Kernel(), a.Logger()), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", a.Config().HTTPAddr, "address to listen on")
	return cmd
}

// AttachConsole moves the commands modules registered on console onto root.
// Built-in commands win over module commands of the same name.
func AttachConsole(root, console *cobra.Command) {
	if console == nil {
		return
	}
	for _, cmd := range console.Commands() {
		if existing, _, err := root.Find([]string{cmd.Name()}); err == nil && existing != root {
			continue
		}
		console.RemoveCommand(cmd)
		root.AddCommand(cmd)
	}
}

// Execute runs args against a. When args name a command that is not built
// in, the kernel is booted first so module commands can be attached.
func Execute(ctx context.Context, a *app.App, args []string, outW io.Writer) error {
	root := NewRootCommand(a)
	root.SetArgs(args)
	root.SetOut(outW)
	root.SetErr(outW)

	if needsConsole(root, args) {
		if err := a.Boot(ctx); err != nil {
			return &ExitError{Code: 1, Message: fmt.Sprintf("boot failed: %v", err)}
		}
		AttachConsole(root, a.Kernel().Console())
	}

	if err := root.ExecuteContext(ctx); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr
		}
		return &ExitError{Code: 2, Message: err.Error()}
	}
	return nil
}

func needsConsole(root *cobra.Command, args []string) bool {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") || args[0] == "help" || args[0] == "completion" {
		return false
	}
	cmd, _, err := root.Find(args)
	return err != nil || cmd == root
}
