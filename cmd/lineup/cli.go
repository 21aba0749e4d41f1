package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/lineup/internal/config"
	"github.com/hpungsan/lineup/internal/directory"
	"github.com/hpungsan/lineup/internal/errors"
	"github.com/hpungsan/lineup/internal/ops"
	"github.com/hpungsan/lineup/internal/report"
	"github.com/hpungsan/lineup/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config, dir directory.Directory) *cli.App {
	app := &cli.App{
		Name:    "lineup",
		Usage:   "Order snapshot and rollback for grouped channels",
		Version: Version,
		Commands: []*cli.Command{
			captureCmd(db, cfg, dir),
			rollbackCmd(db, cfg, dir),
			showCmd(db, cfg, dir),
			listCmd(db, cfg, dir),
			clearCmd(db, cfg, dir),
			webCmd(db, cfg, dir),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// defaultWorkspace picks the configured workspace for flag defaults.
func defaultWorkspace(cfg *config.Config) string {
	if cfg == nil || cfg.Workspace == "" {
		return "default"
	}
	return cfg.Workspace
}

// workspaceFlag is shared by every command.
func workspaceFlag(cfg *config.Config) cli.Flag {
	return &cli.StringFlag{
		Name:    "workspace",
		Aliases: []string{"w"},
		Value:   defaultWorkspace(cfg),
		Usage:   "Workspace name",
	}
}

// captureCmd creates the capture command.
func captureCmd(db *sql.DB, cfg *config.Config, dir directory.Directory) *cli.Command {
	return &cli.Command{
		Name:      "capture",
		Usage:     "Capture current item order for a group, or all groups when omitted",
		ArgsUsage: "[group]",
		Flags: []cli.Flag{
			workspaceFlag(cfg),
			&cli.BoolFlag{Name: "markdown", Aliases: []string{"m"}, Usage: "Render the result as markdown instead of JSON"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Capture(c.Context, db, dir, ops.CaptureInput{
				Workspace: c.String("workspace"),
				Group:     c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}

			if c.Bool("markdown") {
				fmt.Print(report.RenderCapture(output))
				return nil
			}
			return outputJSON(output)
		},
	}
}

// rollbackCmd creates the rollback command.
func rollbackCmd(db *sql.DB, cfg *config.Config, dir directory.Directory) *cli.Command {
	return &cli.Command{
		Name:      "rollback",
		Usage:     "Issue move requests restoring items to their stored positions",
		ArgsUsage: "[group]",
		Flags: []cli.Flag{
			workspaceFlag(cfg),
			&cli.BoolFlag{Name: "markdown", Aliases: []string{"m"}, Usage: "Render the result as markdown instead of JSON"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Rollback(c.Context, db, dir, ops.RollbackInput{
				Workspace: c.String("workspace"),
				Group:     c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}

			if c.Bool("markdown") {
				fmt.Print(report.RenderRollback(output))
				return nil
			}
			return outputJSON(output)
		},
	}
}

// showCmd creates the show command.
func showCmd(db *sql.DB, cfg *config.Config, dir directory.Directory) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show the stored snapshot for a group",
		ArgsUsage: "<group>",
		Flags: []cli.Flag{
			workspaceFlag(cfg),
			&cli.BoolFlag{Name: "markdown", Aliases: []string{"m"}, Usage: "Render the result as markdown instead of JSON"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("group is required"))
			}

			output, err := ops.Show(c.Context, db, dir, ops.ShowInput{
				Workspace: c.String("workspace"),
				Group:     c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}

			if c.Bool("markdown") {
				fmt.Print(report.RenderShow(output))
				return nil
			}
			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB, cfg *config.Config, dir directory.Directory) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List groups with stored snapshots",
		Flags: []cli.Flag{
			workspaceFlag(cfg),
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(c.Context, db, dir, ops.ListInput{
				Workspace: c.String("workspace"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// clearCmd creates the clear command.
func clearCmd(db *sql.DB, cfg *config.Config, dir directory.Directory) *cli.Command {
	return &cli.Command{
		Name:      "clear",
		Usage:     "Remove stored snapshots for a group, or all snapshots when omitted",
		ArgsUsage: "[group]",
		Flags: []cli.Flag{
			workspaceFlag(cfg),
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Clear(c.Context, db, dir, ops.ClearInput{
				Workspace: c.String("workspace"),
				Group:     c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// webCmd creates the web command.
func webCmd(db *sql.DB, cfg *config.Config, dir directory.Directory) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Serve the read-only snapshot browser",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 7451, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(db, cfg, dir, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if lErr, ok := err.(*errors.LineupError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", lErr.Code, lErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
