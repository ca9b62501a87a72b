package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree() *cobra.Command {
	root := &cobra.Command{Use: "searchselect", Short: "root"}
	root.AddCommand(&cobra.Command{Use: "pick <type>", Short: "pick", Run: func(*cobra.Command, []string) {}})
	return root
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		file   string
		want   string
	}{
		{format: "markdown", file: "searchselect_pick.md", want: `title: "searchselect pick"`},
		{format: "man", file: "searchselect-pick.1", want: "SEARCHSELECT"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			require.NoError(t, generate(testTree(), dir, tt.format))

			data, err := os.ReadFile(filepath.Join(dir, tt.file))
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)
		})
	}
}

func TestGenerate_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := generate(testTree(), t.TempDir(), "html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestFrontMatter(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "---\ntitle: \"searchselect search\"\n---\n\n",
		frontMatter("docs/cli/searchselect_search.md"))
}
