package telemetry_test

import (
	"bytes"
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/wheelwright/internal/adapters/telemetry"
	"go.trai.ch/wheelwright/internal/core/ports"
)

func TestProgress_PrintsFinishedBuilds(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	buf := &bytes.Buffer{}
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewProgress(buf)))
	defer func() { _ = tp.Shutdown(context.Background()) }()
	tracer := telemetry.NewOTelTracer(tp, "test")

	ctx, ok := tracer.Start(context.Background(), telemetry.BuildSpanName,
		ports.WithAttribute("wheelwright.interpreter", "python3"),
		ports.WithAttribute("wheelwright.project", "demo"),
	)
	_, stage := tracer.Start(ctx, "provision")
	stage.End()
	ok.SetAttribute("wheelwright.succeeded", true)
	ok.End()

	_, failed := tracer.Start(context.Background(), telemetry.BuildSpanName,
		ports.WithAttribute("wheelwright.interpreter", "python3.12"),
		ports.WithAttribute("wheelwright.project", "demo"),
	)
	failed.SetAttribute("wheelwright.succeeded", false)
	failed.SetAttribute("wheelwright.failure", "rejection")
	failed.End()

	lines := regexp.MustCompile(`\(\d+(\.\d+)?[µnm]?s\)`).ReplaceAllString(buf.String(), "(T)")
	assert.Equal(t, "✓ python3 demo (T)\n✗ python3.12 demo: rejection (T)\n", lines)
}
