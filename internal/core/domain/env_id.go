package domain

import (
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// GenerateEnvID creates a deterministic key for an isolated build environment.
// Requirement order and duplicates do not change the key.
func GenerateEnvID(interpreter string, requirements []string) string {
	reqs := slices.Clone(requirements)
	slices.Sort(reqs)
	reqs = slices.Compact(reqs)

	hasher := xxhash.New()
	_, _ = hasher.WriteString(interpreter)
	_, _ = hasher.Write([]byte{0})
	for _, req := range reqs {
		_, _ = hasher.WriteString(req)
		_, _ = hasher.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", hasher.Sum64())
}
