package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/taskedit/pkg/tuitest"
)

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Successf("saved %q", "club-race")
	p.Infof("%d points", 3)
	p.Warnf("no waypoints")
	p.Errorf("failed")
	p.Section("Tasks")
	p.Printf("plain")

	out := tuitest.StripANSI(buf.String())
	assert.Contains(t, out, `✓ saved "club-race"`)
	assert.Contains(t, out, "• 3 points")
	assert.Contains(t, out, "! no waypoints")
	assert.Contains(t, out, "✗ failed")
	assert.Contains(t, out, "Tasks")
	assert.Contains(t, out, "plain")
}

func TestCtx(t *testing.T) {
	p := New(&bytes.Buffer{})
	ctx := NewContext(context.Background(), p)

	assert.Same(t, p, Ctx(ctx))
	assert.NotNil(t, Ctx(context.Background()))
}
