// Package input reads record and snapshot files. The encoding is chosen by
// file extension (.json, .yaml/.yml, .toml) and an outer compression suffix
// (.gz, .zst, .xz) is removed transparently, so upstream dumps such as
// "Packages.json.xz" can be fed to a run as-is.
package input

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/agentstation/pkgsync/pkg/errors"
)

// Format is a record file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Compression is an outer compression layer.
type Compression string

// Supported compressions.
const (
	CompressionNone Compression = ""
	CompressionGzip Compression = "gz"
	CompressionZstd Compression = "zst"
	CompressionXZ   Compression = "xz"
)

// RecordFile is the on-disk envelope for a batch of source records.
type RecordFile[R any] struct {
	Records []R `json:"records" yaml:"records" toml:"records"`
}

// Detect returns the encoding and compression implied by a path.
func Detect(path string) (Format, Compression, error) {
	name := strings.ToLower(filepath.Base(path))

	compression := CompressionNone
	switch ext := filepath.Ext(name); ext {
	case ".gz", ".gzip":
		compression = CompressionGzip
	case ".zst", ".zstd":
		compression = CompressionZstd
	case ".xz":
		compression = CompressionXZ
	}
	if compression != CompressionNone {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	switch filepath.Ext(name) {
	case ".json":
		return FormatJSON, compression, nil
	case ".yaml", ".yml":
		return FormatYAML, compression, nil
	case ".toml":
		return FormatTOML, compression, nil
	default:
		return "", compression, errors.NewValidationError("path", path, "unsupported file extension, expected .json, .yaml, .yml or .toml")
	}
}

// Open opens path and removes any compression layer implied by its suffix.
func Open(path string) (io.ReadCloser, error) {
	_, compression, err := Detect(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}

	r, err := Decompress(f, compression)
	if err != nil {
		_ = f.Close()
		return nil, errors.WrapIO("decompress", path, err)
	}
	return &readCloser{Reader: r, closers: []io.Closer{r, f}}, nil
}

// Decompress wraps r with a reader for the given compression.
func Decompress(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionGzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return gr, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	case CompressionXZ:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(xr), nil
	default:
		return nil, errors.NewValidationError("compression", string(c), "unsupported compression")
	}
}

// Decode decodes data in the given format into v.
func Decode(data []byte, format Format, v any) error {
	switch format {
	case FormatJSON:
		return json.Unmarshal(data, v)
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	case FormatTOML:
		_, err := toml.NewDecoder(bytes.NewReader(data)).Decode(v)
		return err
	default:
		return errors.NewValidationError("format", string(format), "unsupported format")
	}
}

// DecodeFile reads, decompresses and decodes path into v.
func DecodeFile(path string, v any) error {
	format, _, err := Detect(path)
	if err != nil {
		return err
	}

	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer rc.Close() //nolint:errcheck

	data, err := io.ReadAll(rc)
	if err != nil {
		return errors.WrapIO("read", path, err)
	}

	if err := Decode(data, format, v); err != nil {
		return errors.WrapParse(string(format), path, err)
	}
	return nil
}

// ReadRecords decodes a RecordFile from path and returns its records.
func ReadRecords[R any](path string) ([]R, error) {
	var file RecordFile[R]
	if err := DecodeFile(path, &file); err != nil {
		return nil, err
	}
	return file.Records, nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
