package almanac

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/remap/codec"
)

// Format selects the on-disk representation of an Almanac.
type Format int

const (
	// FormatAlmanac is the plain-text seed almanac.
	FormatAlmanac Format = iota
	// FormatYAML is a YAML definition.
	FormatYAML
	// FormatJSON is a JSON definition.
	FormatJSON
)

// ErrUnknownFormat is returned for unrecognized format names.
var ErrUnknownFormat = errors.New("unknown format")

func (f Format) String() string {
	switch f {
	case FormatAlmanac:
		return "almanac"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses "almanac", "yaml" or "json" (case-insensitive).
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "almanac", "text", "txt":
		return FormatAlmanac, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath guesses the format from a file extension.
// Unknown extensions are read as FormatAlmanac.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatAlmanac
	}
}

// LoadDefinition reads an Almanac in the given format.
func LoadDefinition(r io.Reader, format Format) (*Almanac, error) {
	switch format {
	case FormatAlmanac:
		return Parse(r)

	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)

		var a Almanac
		if err := dec.Decode(&a); err != nil {
			if errors.Is(err, io.EOF) {
				return &Almanac{}, nil
			}
			return nil, fmt.Errorf("almanac: decode yaml: %w", err)
		}
		return &a, nil

	case FormatJSON:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		var a Almanac
		if err := codec.Default.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("almanac: decode json: %w", err)
		}
		return &a, nil

	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
}

// WriteDefinition writes an Almanac in the given format.
func WriteDefinition(w io.Writer, a *Almanac, format Format) error {
	switch format {
	case FormatAlmanac:
		return writeText(w, a)

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(a); err != nil {
			return err
		}
		return enc.Close()

	case FormatJSON:
		data, err := codec.Default.Marshal(a)
		if err != nil {
			return err
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err

	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
}
