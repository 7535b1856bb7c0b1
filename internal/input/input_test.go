package input_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"github.com/agentstation/pkgsync/internal/input"
	"github.com/agentstation/pkgsync/pkg/errors"
)

type formula struct {
	Formula      string   `json:"formula" yaml:"formula" toml:"formula"`
	Dependencies []string `json:"dependencies" yaml:"dependencies" toml:"dependencies"`
}

const (
	jsonRecords = `{"records":[{"formula":"wget","dependencies":["openssl@3","libidn2"]},{"formula":"jq","dependencies":[]}]}`
	yamlRecords = `records:
  - formula: wget
    dependencies: [openssl@3, libidn2]
  - formula: jq
    dependencies: []
`
	tomlRecords = `[[records]]
formula = "wget"
dependencies = ["openssl@3", "libidn2"]

[[records]]
formula = "jq"
dependencies = []
`
)

func TestDetect(t *testing.T) {
	tests := []struct {
		path        string
		format      input.Format
		compression input.Compression
		wantErr     bool
	}{
		{"records.json", input.FormatJSON, input.CompressionNone, false},
		{"records.YAML", input.FormatYAML, input.CompressionNone, false},
		{"dir/records.yml.gz", input.FormatYAML, input.CompressionGzip, false},
		{"records.toml.zst", input.FormatTOML, input.CompressionZstd, false},
		{"Packages.json.xz", input.FormatJSON, input.CompressionXZ, false},
		{"records.csv", "", input.CompressionNone, true},
		{"records.gz", "", input.CompressionGzip, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, compression, err := input.Detect(tt.path)
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.compression, compression)
		})
	}
}

func TestReadRecords(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		write   func(w io.Writer) (io.WriteCloser, error)
	}{
		{"records.json", jsonRecords, nil},
		{"records.yaml", yamlRecords, nil},
		{"records.toml", tomlRecords, nil},
		{"records.json.gz", jsonRecords, func(w io.Writer) (io.WriteCloser, error) { return gzip.NewWriter(w), nil }},
		{"records.yaml.zst", yamlRecords, func(w io.Writer) (io.WriteCloser, error) { return zstd.NewWriter(w) }},
		{"records.toml.xz", tomlRecords, func(w io.Writer) (io.WriteCloser, error) { return xz.NewWriter(w) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			writeFile(t, path, tt.content, tt.write)

			records, err := input.ReadRecords[formula](path)
			require.NoError(t, err)
			require.Len(t, records, 2)
			assert.Equal(t, "wget", records[0].Formula)
			assert.Equal(t, []string{"openssl@3", "libidn2"}, records[0].Dependencies)
			assert.Equal(t, "jq", records[1].Formula)
			assert.Empty(t, records[1].Dependencies)
		})
	}
}

func TestDecodeFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := input.ReadRecords[formula](filepath.Join(dir, "missing.json"))
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"records": [`), 0o600))
	_, err = input.ReadRecords[formula](bad)
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)

	notGzip := filepath.Join(dir, "plain.json.gz")
	require.NoError(t, os.WriteFile(notGzip, []byte(jsonRecords), 0o600))
	_, err = input.ReadRecords[formula](notGzip)
	assert.ErrorAs(t, err, &ioErr)
}

func writeFile(t *testing.T, path, content string, wrap func(io.Writer) (io.WriteCloser, error)) {
	t.Helper()

	if wrap == nil {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return
	}

	var buf bytes.Buffer
	w, err := wrap(&buf)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}
