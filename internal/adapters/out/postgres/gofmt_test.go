package postgres_test

import (
	"go/format"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DTO struct tags define the schema; every file here stays gofmt-clean.
func TestAdapterSourcesAreFormatted(t *testing.T) {
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") {
			return err
		}

		src, err := os.ReadFile(path)
		require.NoError(t, err)
		formatted, err := format.Source(src)
		require.NoError(t, err, path)
		assert.Equal(t, string(formatted), string(src), "%s is not gofmt-formatted", path)
		return nil
	})
	require.NoError(t, err)
}
