package domain

import (
	"errors"
	"strings"

	"go.trai.ch/zerr"
)

// OutputKey is the error metadata key carrying a failed tool's raw output.
const OutputKey = "output"

// DiagnosticFor renders err for the user: the raw tool output attached
// anywhere in the chain, verbatim, followed by a single ERROR line.
func DiagnosticFor(err error) string {
	if err == nil {
		return ""
	}
	var b strings.Builder
	if out := ToolOutput(err); out != "" {
		b.WriteString(out)
		if !strings.HasSuffix(out, "\n") {
			b.WriteByte('\n')
		}
	}
	b.WriteString("ERROR: ")
	b.WriteString(err.Error())
	b.WriteByte('\n')
	return b.String()
}

// ToolOutput returns the outermost raw tool output recorded under OutputKey, if any.
func ToolOutput(err error) string {
	for e := err; e != nil; e = errors.Unwrap(e) {
		z, ok := e.(*zerr.Error)
		if !ok {
			continue
		}
		if out, ok := z.Metadata()[OutputKey].(string); ok && out != "" {
			return out
		}
	}
	return ""
}
