package compiler

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/zeebo/xxh3"

	"github.com/templpad/templpad/compiler/models"
)

// cacheSlot pairs an input fingerprint with its compiled result. Slots are
// replaced wholesale, never mutated, so a concurrent reader can never
// observe a half-updated slot.
type cacheSlot struct {
	fingerprint uint64
	result      *models.AssemblyResult
}

// CompilationCache is a single-slot memo over the full pipeline, keyed by an
// order-sensitive content fingerprint of the input file set.
type CompilationCache struct {
	slot atomic.Pointer[cacheSlot]
}

// NewCompilationCache returns an empty cache.
func NewCompilationCache() *CompilationCache {
	return &CompilationCache{}
}

// Fingerprint combines every file's path and content, in input order, with
// length framing so adjacent fields cannot run together. Reordering the same
// files yields a different fingerprint.
func (c *CompilationCache) Fingerprint(files []models.CodeFile) uint64 {
	h := xxh3.New()
	var frame [8]byte
	for _, f := range files {
		binary.LittleEndian.PutUint64(frame[:], uint64(len(f.Path)))
		_, _ = h.Write(frame[:])
		_, _ = h.WriteString(f.Path)
		binary.LittleEndian.PutUint64(frame[:], uint64(len(f.Content)))
		_, _ = h.Write(frame[:])
		_, _ = h.WriteString(f.Content)
	}
	return h.Sum64()
}

// Get returns the stored result when the fingerprint matches the slot.
func (c *CompilationCache) Get(fingerprint uint64) (*models.AssemblyResult, bool) {
	slot := c.slot.Load()
	if slot == nil || slot.fingerprint != fingerprint {
		return nil, false
	}
	return slot.result, true
}

// Put replaces the slot with a new fingerprint/result pair.
func (c *CompilationCache) Put(fingerprint uint64, result *models.AssemblyResult) {
	c.slot.Store(&cacheSlot{fingerprint: fingerprint, result: result})
}

// Reset drops the stored slot.
func (c *CompilationCache) Reset() {
	c.slot.Store(nil)
}
