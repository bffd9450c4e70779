package decorators_test

import (
	"bytes"
	"iter"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/domain"
)

// spy replays a script of statuses (repeating the last one) and counts how
// often it is ticked and stopped.
type spy struct {
	*behaviour.Base
	script   []domain.Status
	message  string
	ticks    int
	stops    int
	stopLog  []domain.Status
}

func newSpy(message string, script ...domain.Status) *spy {
	s := &spy{script: script, message: message}
	s.Base = behaviour.NewBase(s, "spy")
	return s
}

func (s *spy) Update() domain.Status {
	s.ticks++
	s.SetFeedback(s.message)
	i := s.ticks - 1
	if i >= len(s.script) {
		i = len(s.script) - 1
	}
	return s.script[i]
}

func (s *spy) Stop(newStatus domain.Status) {
	s.stops++
	s.stopLog = append(s.stopLog, newStatus)
	s.Base.Stop(newStatus)
}

// fanout stands in for a subtree: it yields two extra nodes before itself.
type fanout struct {
	*behaviour.Base
	extra []behaviour.Behaviour
}

func newFanout() *fanout {
	f := &fanout{extra: []behaviour.Behaviour{newSpy("a", domain.StatusSuccess), newSpy("b", domain.StatusSuccess)}}
	f.Base = behaviour.NewBase(f, "fanout")
	return f
}

func (f *fanout) Children() []behaviour.Behaviour { return f.extra }

func (f *fanout) Tick() iter.Seq[behaviour.Behaviour] {
	return func(yield func(behaviour.Behaviour) bool) {
		for _, e := range f.extra {
			for n := range e.Tick() {
				if !yield(n) {
					return
				}
			}
		}
		f.SetStatus(domain.StatusSuccess)
		yield(f)
	}
}

// fakeClock is a manually advanced time source.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logging.NewWithWriter(&buf, slog.LevelDebug), &buf
}

func countErrors(buf *bytes.Buffer) int {
	return strings.Count(buf.String(), "level=ERROR")
}

func ids(nodes []behaviour.Behaviour) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name())
	}
	return out
}
