package compiler

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/templpad/templpad/compiler/models"
	"github.com/templpad/templpad/embed_data"
)

// BaseEnvironment is the immutable, process-wide set of library references
// shared by every compilation. It is built once and never mutated afterwards.
type BaseEnvironment struct {
	References *models.ReferenceSet
	// Namespaces is the closed namespace set, sorted.
	Namespaces []string
}

type namespaceManifest struct {
	Roots      []string                  `json:"roots"`
	Namespaces map[string]namespaceEntry `json:"namespaces"`
}

type namespaceEntry struct {
	Requires []string `json:"requires"`
	Exports  []string `json:"exports"`
}

// baseEnv is the one-shot singleton. A check-then-set guard is enough here:
// the built value is immutable, so two racing first-time callers at worst
// build it twice and one build wins.
var baseEnv atomic.Pointer[BaseEnvironment]

// InitBaseEnvironment builds the base environment on first call; later calls
// return the existing one.
func InitBaseEnvironment() (*BaseEnvironment, error) {
	if env := baseEnv.Load(); env != nil {
		return env, nil
	}
	env, err := buildBaseEnvironment()
	if err != nil {
		return nil, err
	}
	baseEnv.Store(env)
	return baseEnv.Load(), nil
}

// CurrentBaseEnvironment returns the environment, or nil before the first
// successful InitBaseEnvironment.
func CurrentBaseEnvironment() *BaseEnvironment {
	return baseEnv.Load()
}

func buildBaseEnvironment() (*BaseEnvironment, error) {
	var manifest namespaceManifest
	if err := json.Unmarshal(embed_data.StdlibNamespaces, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse stdlib manifest: %w", err)
	}

	// Transitive closure of namespace requirements from the root set.
	closed := map[string]struct{}{}
	queue := append([]string{}, manifest.Roots...)
	for len(queue) > 0 {
		ns := queue[0]
		queue = queue[1:]
		if _, done := closed[ns]; done {
			continue
		}
		entry, ok := manifest.Namespaces[ns]
		if !ok {
			return nil, fmt.Errorf("stdlib manifest references unknown namespace %q", ns)
		}
		closed[ns] = struct{}{}
		queue = append(queue, entry.Requires...)
	}

	var symbols []string
	namespaces := make([]string, 0, len(closed))
	for ns := range closed {
		namespaces = append(namespaces, ns)
		for _, export := range manifest.Namespaces[ns].Exports {
			symbols = append(symbols, ns+"."+export)
		}
	}
	sort.Strings(namespaces)

	return &BaseEnvironment{
		References: models.NewReferenceSet(symbols...),
		Namespaces: namespaces,
	}, nil
}
