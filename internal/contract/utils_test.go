package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		maxWidth int
		expected string
	}{
		{"short label", "temp", 10, "temp"},
		{"exact width", "temperature", 11, "temperature"},
		{"truncated", "cpu_utilization_percent", 10, "cpu_uti..."},
		{"multibyte", "température_moyenne", 8, "tempé..."},
		{"width too small", "temperature", 3, "temperature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateLabel(tt.label, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
