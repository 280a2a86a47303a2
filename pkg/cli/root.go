/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/osrange/pkg/logging"
)

const name = "osrange"

// Exit codes.
const (
	ExitPass        = 0
	ExitFail        = 1
	ExitInterrupted = 2
)

var (
	// overridden during build with ldflags
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func newRootCmd(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Check that an operating system is within an allowed range",
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		Writer:                stdout,
		ErrWriter:             stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("OSRANGE_DEBUG"),
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "emit logs as JSON",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := logLevel(cmd)
			if cmd.Bool("log-json") {
				slog.SetDefault(logging.NewStructuredLogger(stderr, name, version, level))
			} else {
				slog.SetDefault(logging.NewCLILogger(stderr, level))
			}
			return ctx, nil
		},
		// errors are reported by run so every command maps to the same exit codes
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Commands: []*cli.Command{
			checkCmd(),
			nodesCmd(),
			serveCmd(),
		},
	}
}

// logLevel resolves the log level from --debug, falling back to LOG_LEVEL.
func logLevel(cmd *cli.Command) slog.Level {
	if cmd.Bool("debug") {
		return slog.LevelDebug
	}
	return logging.LevelFromEnv()
}

// Execute runs the CLI and exits the process with the resulting code.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	err := newRootCmd(stdout, stderr).Run(ctx, args)
	return exitCode(err, stderr)
}

// exitCode reports err on stderr and maps it to a process exit code.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return ExitPass
	}

	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, "interrupted")
		return ExitInterrupted
	}

	fmt.Fprintln(stderr, err.Error())

	var ec cli.ExitCoder
	if errors.As(err, &ec) && ec.ExitCode() != ExitPass {
		return ec.ExitCode()
	}
	return ExitFail
}
