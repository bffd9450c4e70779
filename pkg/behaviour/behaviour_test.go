package behaviour_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// probe records hook invocations and returns a configurable status.
type probe struct {
	*behaviour.Base
	next        domain.Status
	initialised int
	terminated  []domain.Status
}

func newProbe(next domain.Status, opts ...behaviour.Option) *probe {
	p := &probe{next: next}
	p.Base = behaviour.NewBase(p, "probe", opts...)
	return p
}

func (p *probe) Update() domain.Status          { return p.next }
func (p *probe) Initialise()                    { p.initialised++ }
func (p *probe) Terminate(status domain.Status) { p.terminated = append(p.terminated, status) }

func TestBase_TickLifecycle(t *testing.T) {
	p := newProbe(domain.StatusRunning)

	behaviour.Drain(p)
	behaviour.Drain(p)
	assert.Equal(t, 1, p.initialised, "RUNNING re-entry must not re-initialise")
	assert.Empty(t, p.terminated)

	p.next = domain.StatusSuccess
	behaviour.Drain(p)
	assert.Equal(t, []domain.Status{domain.StatusSuccess}, p.terminated)
	assert.Equal(t, domain.StatusSuccess, p.Status())

	behaviour.Drain(p)
	assert.Equal(t, 2, p.initialised, "a new activation re-initialises")
}

func TestBase_InvalidStatusIsCoerced(t *testing.T) {
	var buf bytes.Buffer
	p := newProbe(domain.Status(42), behaviour.WithLogger(logging.NewWithWriter(&buf, slog.LevelDebug)))

	behaviour.Drain(p)

	assert.Equal(t, domain.StatusInvalid, p.Status())
	assert.Equal(t, 1, strings.Count(buf.String(), "level=ERROR"))
}

func TestBase_StopRunsTerminate(t *testing.T) {
	p := newProbe(domain.StatusRunning)
	behaviour.Drain(p)

	p.Stop(domain.StatusInvalid)

	assert.Equal(t, domain.StatusInvalid, p.Status())
	assert.Equal(t, []domain.Status{domain.StatusInvalid}, p.terminated)
}

func TestIterate_PostOrder(t *testing.T) {
	p := newProbe(domain.StatusSuccess)
	var seen []behaviour.Behaviour
	for n := range behaviour.Iterate(p) {
		seen = append(seen, n)
	}
	require.Len(t, seen, 1)
	assert.Equal(t, p.ID(), seen[0].ID())
}
