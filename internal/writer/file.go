package writer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/agentstation/pkgsync/internal/input"
	"github.com/agentstation/pkgsync/pkg/constants"
	"github.com/agentstation/pkgsync/pkg/errors"
	"github.com/agentstation/pkgsync/pkg/logging"
	"github.com/agentstation/pkgsync/pkg/reconcile"
)

// Format is the encoding of a result file.
type Format int

// Format constants.
const (
	FormatJSON Format = iota
	FormatYAML
)

// IsValid checks if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// FileWriter writes each result to a file. The encoding and compression
// follow the path's suffixes: "changes.yaml.zst" is zstd-compressed YAML.
type FileWriter struct {
	path        string
	format      Format
	compression input.Compression
}

var _ Writer = (*FileWriter)(nil)

// NewFileWriter creates a file writer for path.
func NewFileWriter(path string) (*FileWriter, error) {
	if path == "" {
		return nil, errors.NewValidationError("path", path, "output path is required")
	}
	format, compression, err := detect(path)
	if err != nil {
		return nil, err
	}
	return &FileWriter{path: path, format: format, compression: compression}, nil
}

// Path returns the output path.
func (w *FileWriter) Path() string {
	return w.path
}

// Format returns the output encoding.
func (w *FileWriter) Format() Format {
	return w.format
}

// Compression returns the output compression.
func (w *FileWriter) Compression() input.Compression {
	return w.compression
}

// Write implements the Writer interface.
func (w *FileWriter) Write(ctx context.Context, result *reconcile.Result) error {
	if err := ctx.Err(); err != nil {
		return errors.ErrCanceled
	}

	data, err := Encode(result, w.format)
	if err != nil {
		return errors.WrapParse(w.format.String(), w.path, err)
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("mkdir", dir, err)
		}
	}

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", w.path, err)
	}

	if err := compress(f, w.compression, data); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", w.path, err)
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("close", w.path, err)
	}

	logging.FromContext(ctx).Info().
		Str("path", w.path).
		Str("format", w.format.String()).
		Int("bytes", len(data)).
		Msg("Change-set written")
	return nil
}

// Encode serializes a result in the given format.
func Encode(result *reconcile.Result, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.MarshalWithOptions(result,
			yaml.Indent(2),
			yaml.IndentSequence(false),
		)
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

func compress(w io.Writer, c input.Compression, data []byte) error {
	switch c {
	case input.CompressionGzip:
		zw := gzip.NewWriter(w)
		if _, err := zw.Write(data); err != nil {
			return err
		}
		return zw.Close()
	case input.CompressionZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		if _, err := zw.Write(data); err != nil {
			_ = zw.Close()
			return err
		}
		return zw.Close()
	default:
		_, err := w.Write(data)
		return err
	}
}

// detect maps the path's suffixes onto an output encoding. Unknown
// extensions fall back to JSON.
func detect(path string) (Format, input.Compression, error) {
	format, compression, err := input.Detect(path)
	if compression == input.CompressionXZ {
		return 0, "", errors.NewValidationError("path", path, "xz output is not supported, use .gz or .zst")
	}
	if err != nil {
		return FormatJSON, compression, nil
	}

	switch format {
	case input.FormatJSON:
		return FormatJSON, compression, nil
	case input.FormatYAML:
		return FormatYAML, compression, nil
	default:
		return 0, "", errors.NewValidationError("path", path, "output must be .json, .yaml or .yml")
	}
}
