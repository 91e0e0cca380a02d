package app

import (
	"fmt"
	"io"
	"os"

	"cyberdl/internal/core"
)

// TerminalNotifier renders notifications as single stderr lines so they never
// mix with command output on stdout.
type TerminalNotifier struct {
	w io.Writer
}

var _ core.Notifier = (*TerminalNotifier)(nil)

// NewTerminalNotifier creates a notifier writing to stderr.
func NewTerminalNotifier() *TerminalNotifier {
	return &TerminalNotifier{w: os.Stderr}
}

func (n *TerminalNotifier) Notify(title, description string, kind core.NotifyKind) {
	if description == "" {
		fmt.Fprintf(n.w, "[%s] %s\n", kind, title)
		return
	}
	fmt.Fprintf(n.w, "[%s] %s: %s\n", kind, title, description)
}

// TerminalPrompter tells an anonymous user how to authenticate when they hit
// a gated action.
type TerminalPrompter struct {
	w io.Writer
}

var _ core.LoginPrompter = (*TerminalPrompter)(nil)

// NewTerminalPrompter creates a prompter writing to stderr.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{w: os.Stderr}
}

func (p *TerminalPrompter) RequestLogin() {
	fmt.Fprintln(p.w, "You need to be logged in for that. Run `cyberdl login` (or `cyberdl register`) first.")
}
