package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DateLayouts)
	assert.Equal(t, 100000, cfg.MaxRows)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	data := "date_layouts:\n  - \"02.01.2006\"\nmax_rows: 500\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"02.01.2006"}, cfg.DateLayouts)
	assert.Equal(t, 500, cfg.MaxRows)
}

func TestLoadUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	data := "max_rowz: 500\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := Load(path)
	assert.Error(t, err, "unknown fields should be rejected")
}

func TestLoadInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	data := "max_rows: -1\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	cfg := Default()

	tests := []struct {
		input string
		ok    bool
	}{
		{"2024-03-15", true},
		{"2024/03/15", true},
		{"03/15/2024", true},
		{"2024-03-15 09:30:00", true},
		{"2024-03-15T09:30:00Z", true},
		{"15th of March", false},
		{"2024-13-40", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, ok := cfg.ParseDate(tt.input)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
