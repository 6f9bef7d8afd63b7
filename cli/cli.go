// Package cli holds what the subcommands share: global flags and the
// failures that are reported to the user as a plain sentence.
package cli

import (
	"fmt"
	"io"
	"log/slog"
)

// Messages printed for failures the user can act on.
const (
	MsgFileNotExist     = "File does not exist."
	MsgNoMessage        = "No message specified."
	MsgNoOutput         = "No output path specified."
	MsgNotFound         = "Could not extract a message from the image."
	MsgUnsupported      = "Unsupported image format."
	MsgTooLong          = "Message too long for this image."
	MsgUnrepresentable  = "Message contains characters that cannot be hidden."
	ExtractedMessageFmt = "Extracted message: %s\n"
)

// Globals are flags accepted by every command.
type Globals struct {
	LogLevel string `help:"Diagnostics written to stderr (debug, info, warn, error)" enum:"debug,info,warn,error" default:"warn"`

	Stdout io.Writer `kong:"-"`
}

// Level maps LogLevel to its slog counterpart.
func (g *Globals) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}

// Printf writes user-facing output.
func (g *Globals) Printf(format string, args ...any) {
	fmt.Fprintf(g.Stdout, format, args...)
}

// Notice is a failure whose Text is printed verbatim instead of a log line.
type Notice struct {
	Text string
	Err  error
}

// Notify returns a Notice carrying text, keeping err as the cause.
func Notify(text string, err error) error {
	return &Notice{Text: text, Err: err}
}

func (n *Notice) Error() string {
	if n.Err != nil {
		return n.Text + " " + n.Err.Error()
	}
	return n.Text
}

func (n *Notice) Unwrap() error {
	return n.Err
}
