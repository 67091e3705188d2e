package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ironsheep/pixel-editor-mcp/internal/editor"
	"github.com/ironsheep/pixel-editor-mcp/internal/script"
	"github.com/ironsheep/pixel-editor-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

type cli struct {
	LogLevel string           `help:"Log level (${enum})." enum:"debug,info,warn,error" default:"info" env:"IMAGE_EDITOR_LOG_LEVEL"`
	Seed     uint64           `help:"Seed for mosaic sampling; 0 seeds from the clock." env:"IMAGE_EDITOR_SEED"`
	History  int              `help:"Undo depth; negative disables undo." default:"10" env:"IMAGE_EDITOR_HISTORY"`
	Version  kong.VersionFlag `short:"v" help:"Print version information and quit."`

	Serve serveCmd `cmd:"" default:"1" help:"Serve editing tools over MCP on stdin/stdout."`
	Run   runCmd   `cmd:"" help:"Apply a batch script."`
}

// app is bound into every command's Run method.
type app struct {
	ctx     context.Context
	session *editor.Session
	log     *slog.Logger
}

type serveCmd struct{}

func (c *serveCmd) Run(a *app) error {
	a.log.Debug("starting MCP server", "version", Version, "built", BuildTime, "commit", GitCommit)
	srv := server.New(server.Options{Session: a.session, Logger: a.log, Version: Version})
	return srv.Run(a.ctx)
}

type runCmd struct {
	Script string `arg:"" help:"Script file, or - for stdin."`
}

func (c *runCmd) Run(a *app) error {
	var r io.Reader = os.Stdin
	if c.Script != "-" {
		f, err := os.Open(c.Script)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		r = f
	}

	n, err := script.Run(a.ctx, r, a.session)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Script, err)
	}
	a.log.Info("script applied", "script", c.Script, "commands", n)
	return nil
}

// newLogger writes text records to stderr; stdout carries the MCP protocol.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("image-editor"),
		kong.Description("Raster image editor: an MCP server and a batch script runner."),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("image-editor %s (built %s, commit %s)", Version, BuildTime, GitCommit)},
	)

	logger, err := newLogger(os.Stderr, c.LogLevel)
	kctx.FatalIfErrorf(err)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	session := editor.New(editor.Options{Seed: c.Seed, History: c.History, Logger: logger})

	err = kctx.Run(&app{ctx: ctx, session: session, log: logger})
	stop()
	kctx.FatalIfErrorf(err)
}
