package app

import (
	"fmt"
	"io"
	"os"

	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/wifiscan/msgproc/pkg/logger"
	"github.com/wifiscan/msgproc/pkg/transcoder"
)

// App holds the state shared by a single CLI invocation.
type App struct {
	// I/O
	OutWriter    io.Writer
	ErrWriter    io.Writer
	ColorableOut io.Writer

	// Color is true when stdout is a terminal. Colored JSON is rendered by
	// prettyjson, which sorts object keys.
	Color     bool
	Formatter *prettyjson.Formatter

	LogLevel string
	Log      logger.Logger

	Transcoder *transcoder.Transcoder
}

// New creates an App writing to the process's stdout and stderr.
func New() *App {
	f := prettyjson.NewFormatter()
	f.Indent = 2

	return &App{
		OutWriter:    os.Stdout,
		ErrWriter:    os.Stderr,
		ColorableOut: colorable.NewColorableStdout(),
		Color:        isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
		Formatter:    f,
		Log:          logger.NopLogger(),
	}
}

// Init wires the writers of cmd, the logger and the transcoder. Called by
// PersistentPreRunE on the root command.
func (a *App) Init(cmd *cobra.Command) error {
	a.OutWriter = cmd.OutOrStdout()
	a.ErrWriter = cmd.ErrOrStderr()
	if a.OutWriter != os.Stdout {
		a.ColorableOut = a.OutWriter
		a.Color = false
	}
	a.Formatter.DisabledColor = !a.Color

	log, err := logger.New(a.LogLevel, a.ErrWriter)
	if err != nil {
		return err
	}
	a.Log = log

	tc, err := transcoder.New(transcoder.DefaultConfig(), transcoder.WithLogger(a.Log))
	if err != nil {
		return fmt.Errorf("unable to create transcoder: %w", err)
	}
	a.Transcoder = tc
	return nil
}
