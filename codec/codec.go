// Package codec centralizes the encoding of persisted stage tables.
//
// Snapshots record the codec name in their header, so a snapshot is always
// decoded with the codec that wrote it. Changing Default only affects newly
// written snapshots.
package codec

import (
	"errors"
	"fmt"
)

// ErrUnknownCodec is returned by ByName for unregistered names.
var ErrUnknownCodec = errors.New("unknown codec")

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, error) {
	switch name {
	case "json":
		return JSON{}, nil
	case "go-json":
		return GoJSON{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}

// MustMarshal is a helper for tests.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
