// SPDX-License-Identifier: MIT
//
// Package snapshot reads and writes core.Snapshot values as JSON or YAML files.
//
// The file extension selects the format: ".json" for JSON, ".yaml" or ".yml"
// for YAML. Both formats carry the same document:
//
//	nodes: [{id, name, title, description, content}, ...]
//	edges: [{id, start_id, end_id, title, description}, ...]
//
// Adjacency lists are never persisted; Load rebuilds them with core.Import.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/kgraph/core"
)

// Format names a snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for an unsupported Format or file extension.
var ErrUnknownFormat = errors.New("snapshot: unknown format")

// FormatFromPath picks the Format matching the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Encode writes s to w in format f.
func Encode[C any](w io.Writer, s core.Snapshot[C], f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("snapshot: encode json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("snapshot: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("snapshot: encode yaml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	return nil
}

// Decode reads a snapshot in format f from r.
// An empty YAML document decodes to an empty snapshot.
func Decode[C any](r io.Reader, f Format) (core.Snapshot[C], error) {
	var s core.Snapshot[C]
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return core.Snapshot[C]{}, fmt.Errorf("snapshot: decode json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return core.Snapshot[C]{}, fmt.Errorf("snapshot: decode yaml: %w", err)
		}
	default:
		return core.Snapshot[C]{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	return s, nil
}

// ReadFile decodes the snapshot stored at path.
func ReadFile[C any](path string) (core.Snapshot[C], error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return core.Snapshot[C]{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return core.Snapshot[C]{}, fmt.Errorf("snapshot: open: %w", err)
	}
	defer file.Close()

	return Decode[C](file, f)
}

// WriteFile encodes s to path. The data goes to a temporary file in the same
// directory first and is renamed into place, so readers never see a partial file.
func WriteFile[C any](path string, s core.Snapshot[C]) (err error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("snapshot: create temp: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("snapshot: chmod temp: %w", err)
	}
	if err = Encode(tmp, s, f); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("snapshot: close temp: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("snapshot: rename: %w", err)
	}

	return nil
}

// Load reads path and rebuilds the graph it describes.
func Load[C any](path string, opts ...core.GraphOption) (*core.Graph[C], error) {
	s, err := ReadFile[C](path)
	if err != nil {
		return nil, err
	}
	g, err := core.Import(s, opts...)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %s: %w", path, err)
	}

	return g, nil
}

// Save exports g and writes it to path.
func Save[C any](path string, g *core.Graph[C]) error {
	return WriteFile(path, g.Export())
}
