package backend

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ImageSchemaVersion is bumped whenever the AssemblyImage layout changes.
const ImageSchemaVersion uint16 = 1

// ModuleImage is one linked module inside an assembly image.
type ModuleImage struct {
	Path string
	Code string
}

// AssemblyImage is the in-memory binary produced by a successful link.
type AssemblyImage struct {
	Schema  uint16
	Exports []string
	Modules []ModuleImage
}

// DecodeImage decodes an emitted assembly image, rejecting unknown schemas.
func DecodeImage(data []byte) (*AssemblyImage, error) {
	var image AssemblyImage
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&image); err != nil {
		return nil, fmt.Errorf("failed to decode assembly image: %w", err)
	}
	if image.Schema != ImageSchemaVersion {
		return nil, fmt.Errorf("unsupported assembly image schema %d", image.Schema)
	}
	return &image, nil
}
