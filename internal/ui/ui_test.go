package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/assetns/internal/filter"
	"github.com/conneroisu/assetns/internal/types"
)

func sampleTree() *types.Namespace {
	return &types.Namespace{
		Ident: "assets",
		Children: []types.Node{
			&types.Namespace{
				Ident:  "images",
				Source: "images",
				Children: []types.Node{
					&types.Constant{Ident: "logo", Kind: filter.KindBinary, SourcePath: "images/logo.png"},
				},
			},
			&types.Constant{Ident: "readme", Kind: filter.KindText, SourcePath: "readme.txt"},
		},
	}
}

func TestRenderTree(t *testing.T) {
	out := RenderTree(sampleTree())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Contains(t, lines[0], "assets")
	assert.Contains(t, lines[1], "images")
	assert.Contains(t, lines[2], "logo")
	assert.Contains(t, lines[2], "[binary]")
	assert.Contains(t, lines[2], "images/logo.png")
	assert.Contains(t, lines[3], "readme")
	assert.Contains(t, lines[3], "[text]")
}

func TestRenderTreeEmpty(t *testing.T) {
	out := RenderTree(&types.Namespace{Ident: "empty"})
	assert.Equal(t, "empty", strings.TrimSpace(out))
}

func TestRenderSummary(t *testing.T) {
	tests := []struct {
		name     string
		summary  Summary
		contains []string
	}{
		{
			name:     "written",
			summary:  Summary{Module: "assets", Output: "assets_gen.go", Constants: 3, Written: true},
			contains: []string{"written", "assets", "assets_gen.go", "3 constants"},
		},
		{
			name:     "unchanged with skipped",
			summary:  Summary{Module: "assets", Output: "a.go", Constants: 1, Skipped: 2},
			contains: []string{"unchanged", "2 skipped"},
		},
		{
			name:     "dry run",
			summary:  Summary{Module: "docs", Output: "docs.manifest.json", DryRun: true},
			contains: []string{"dry run", "docs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := RenderSummary(tt.summary)
			for _, want := range tt.contains {
				assert.Contains(t, line, want)
			}
		})
	}
}

func TestRenderError(t *testing.T) {
	assert.Contains(t, RenderError(errors.New("boom")), "error: boom")
}

func TestHighlight(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Highlight(&buf, "package assets\n", "go", ""))
	assert.Contains(t, buf.String(), "package")
	assert.Contains(t, buf.String(), "assets")

	buf.Reset()
	require.NoError(t, Highlight(&buf, "plain", "txt", ""))
	assert.Equal(t, "plain", buf.String())
}

func TestBox(t *testing.T) {
	out := Box("hello\n")
	assert.Contains(t, out, "hello")
	assert.Greater(t, len(strings.Split(out, "\n")), 1)
}
