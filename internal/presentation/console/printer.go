// Package console prints tick progress for humans.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Printer writes one line per tick and, optionally, one per visited node.
type Printer struct {
	out     io.Writer
	profile termenv.Profile
	verbose bool
}

// NewPrinter creates a printer writing to out. Colour is used only when
// colour is true and out is a terminal.
func NewPrinter(out io.Writer, colour, verbose bool) *Printer {
	profile := termenv.Ascii
	if colour && IsTerminal(out) {
		profile = termenv.EnvColorProfile()
	}
	return &Printer{out: out, profile: profile, verbose: verbose}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Status renders s in its colour.
func (p *Printer) Status(s domain.Status) string {
	str := p.profile.String(s.String())
	switch s {
	case domain.StatusSuccess:
		return str.Foreground(p.profile.Color("#22c55e")).Bold().String()
	case domain.StatusFailure:
		return str.Foreground(p.profile.Color("#ef4444")).Bold().String()
	case domain.StatusRunning:
		return str.Foreground(p.profile.Color("#eab308")).String()
	default:
		return str.Foreground(p.profile.Color("#6b7280")).String()
	}
}

// Banner prints the tree name and version.
func (p *Printer) Banner(name, version string) {
	title := p.profile.String(fmt.Sprintf("arbor %s", version)).Foreground(p.profile.Color("#a78bfa")).Bold()
	fmt.Fprintf(p.out, "%s  %s\n", title, name)
}

// Hooks returns lifecycle hooks that print through p.
func (p *Printer) Hooks() domain.LifecycleHooks {
	hooks := domain.LifecycleHooks{
		OnTickEnd: func(_ context.Context, e *domain.TickEvent) {
			fmt.Fprintf(p.out, "tick %-4d %s  (%d visited, %s)\n", e.Tick, p.Status(e.RootStatus), e.Visited, e.Duration)
		},
	}
	if p.verbose {
		hooks.OnNodeVisit = func(_ context.Context, e *domain.NodeEvent) {
			line := fmt.Sprintf("  %-24s %s", e.NodeName, p.Status(e.Status))
			if e.Feedback != "" {
				line += "  " + e.Feedback
			}
			fmt.Fprintln(p.out, strings.TrimRight(line, " "))
		}
	}
	return hooks
}
