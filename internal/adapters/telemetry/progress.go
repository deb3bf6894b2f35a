package telemetry

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/wheelwright/internal/ui/output"
	"go.trai.ch/wheelwright/internal/ui/style"
)

// BuildSpanName is the name of the root span of one build request.
const BuildSpanName = "build"

// Progress implements sdktrace.SpanProcessor and prints one status line per
// finished build request.
type Progress struct {
	mu  sync.Mutex
	out *termenv.Output
}

// NewProgress returns a Progress writing to w.
func NewProgress(w io.Writer) *Progress {
	return &Progress{out: output.New(w)}
}

// OnStart does nothing.
func (p *Progress) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd prints the outcome of finished build spans.
func (p *Progress) OnEnd(s sdktrace.ReadOnlySpan) {
	if s.Name() != BuildSpanName {
		return
	}

	attrs := make(map[attribute.Key]attribute.Value, len(s.Attributes()))
	for _, kv := range s.Attributes() {
		attrs[kv.Key] = kv.Value
	}

	label := fmt.Sprintf("%s %s", attrs["wheelwright.interpreter"].AsString(), attrs["wheelwright.project"].AsString())
	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)

	var line string
	var color termenv.Color
	if attrs["wheelwright.succeeded"].AsBool() {
		line = fmt.Sprintf("%s %s (%s)", style.Check, label, elapsed)
		color = termenv.RGBColor(string(style.Green))
	} else {
		line = fmt.Sprintf("%s %s: %s (%s)", style.Cross, label, attrs["wheelwright.failure"].AsString(), elapsed)
		color = termenv.RGBColor(string(style.Red))
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = p.out.WriteString(p.out.String(line).Foreground(color).String() + "\n")
}

// ForceFlush does nothing.
func (p *Progress) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (p *Progress) Shutdown(_ context.Context) error {
	return nil
}
