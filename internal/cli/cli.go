package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	ucli "github.com/urfave/cli"

	"github.com/vk/lteval/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Command names the operation requested on the command line.
type Command string

const (
	CommandRun     Command = "run"
	CommandClear   Command = "clear"
	CommandResolve Command = "resolve"
)

// Invocation is a parsed command line.
type Invocation struct {
	Command Command
	Config  *app.Config
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments, without the program name. It
// returns the parsed invocation, a boolean indicating if the program should
// exit cleanly (help was shown), or an ExitError.
func Parse(args []string, output io.Writer) (*Invocation, bool, error) {
	slog.Debug("CLI parser started.")
	var inv *Invocation

	logFlags := []ucli.Flag{
		ucli.StringFlag{
			Name:  "log-format",
			Value: "text",
			Usage: "log output format: text or json",
		},
		ucli.StringFlag{
			Name:  "log-level",
			Value: "info",
			Usage: "logging level: debug, info, warn or error",
		},
	}
	scenesDirFlag := ucli.StringFlag{
		Name:  "scenes-dir",
		Usage: "directory holding the scenes, overrides the configuration",
	}

	cliApp := ucli.NewApp()
	cliApp.Name = "lteval"
	cliApp.Usage = "light transport evaluation: render test cases of renderer settings on a set of scenes"
	cliApp.ArgsUsage = "CONFIG"
	cliApp.HideVersion = true
	cliApp.Writer = output
	cliApp.ErrWriter = output
	cliApp.Flags = append([]ucli.Flag{
		ucli.StringFlag{
			Name:  "clear, c",
			Value: string(app.ClearOnSuccess),
			Usage: "delete generated scene-case files: n (never), y (after successful renders), fy (after every render)",
		},
		ucli.BoolFlag{
			Name:  "no-eof",
			Usage: "keep rendering after a scene-case fails",
		},
		scenesDirFlag,
	}, logFlags...)

	cliApp.Action = func(ctx *ucli.Context) error {
		if ctx.NArg() == 0 {
			slog.Debug("No configuration provided, printing usage and exiting.")
			return ucli.ShowAppHelp(ctx)
		}
		if ctx.NArg() > 1 {
			return usageError("expected a single configuration file, got %q (options go before the file)", []string(ctx.Args()))
		}
		inv = &Invocation{
			Command: CommandRun,
			Config: withLogFlags(ctx, &app.Config{
				ConfigPath:        ctx.Args().First(),
				ScenesDir:         ctx.String("scenes-dir"),
				Clear:             app.ClearPolicy(strings.ToLower(ctx.String("clear"))),
				ContinueOnFailure: ctx.Bool("no-eof"),
			}),
		}
		return nil
	}

	cliApp.Commands = []ucli.Command{
		{
			Name:  "clear",
			Usage: "delete every generated file from every scene",
			Description: `Remove scene-case files and images left by previous runs from each
scene directory, for every known renderer kind. Scene templates and
reference images are kept. No configuration file is read.`,
			Flags: []ucli.Flag{scenesDirFlag},
			Action: func(ctx *ucli.Context) error {
				if ctx.NArg() > 0 {
					return usageError("clear takes no arguments, got %q", []string(ctx.Args()))
				}
				dir := ctx.String("scenes-dir")
				if dir == "" {
					dir = ctx.GlobalString("scenes-dir")
				}
				inv = &Invocation{Command: CommandClear, Config: withLogFlags(ctx, &app.Config{ScenesDir: dir})}
				return nil
			},
		},
		{
			Name:        "resolve",
			Usage:       "print the resolved parameters of every test case",
			Description: `Load and validate the configuration, then print each test case with its fully merged parameter groups as HCL. Nothing is rendered.`,
			ArgsUsage:   "CONFIG",
			Action: func(ctx *ucli.Context) error {
				if ctx.NArg() != 1 {
					return usageError("resolve expects exactly one configuration file")
				}
				inv = &Invocation{Command: CommandResolve, Config: withLogFlags(ctx, &app.Config{ConfigPath: ctx.Args().First()})}
				return nil
			},
		},
	}

	if err := cliApp.Run(append([]string{cliApp.Name}, args...)); err != nil {
		if exitErr, ok := err.(*ExitError); ok {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if inv == nil {
		return nil, true, nil
	}
	slog.Debug("Arguments parsed successfully.", "command", inv.Command)

	config, err := app.NewConfig(*inv.Config)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	inv.Config = config

	slog.Debug("CLI parser finished successfully.", "config", config)
	return inv, false, nil
}

// withLogFlags copies the global logging flags into cfg.
func withLogFlags(ctx *ucli.Context, cfg *app.Config) *app.Config {
	cfg.LogFormat = strings.ToLower(ctx.GlobalString("log-format"))
	cfg.LogLevel = strings.ToLower(ctx.GlobalString("log-level"))
	return cfg
}
