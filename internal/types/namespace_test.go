package types

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conneroisu/assetns/internal/filter"
)

func sampleTree() *Namespace {
	return &Namespace{
		Ident: "assets",
		Children: []Node{
			&Namespace{
				Ident:  "images",
				Source: "images",
				Children: []Node{
					&Constant{Ident: "logo", Kind: filter.KindBinary, SourcePath: "images/logo.png"},
				},
			},
			&Namespace{
				Ident:  "lang",
				Source: "lang",
				Children: []Node{
					&Constant{Ident: "en_US", Kind: filter.KindText, SourcePath: "lang/en-US.toml"},
					&Constant{Ident: "zh_CN", Kind: filter.KindText, SourcePath: "lang/zh-CN.toml"},
				},
			},
		},
	}
}

func TestNodeNames(t *testing.T) {
	tree := sampleTree()
	lang := tree.Children[1].(*Namespace)

	assert.Equal(t, "", tree.Name())
	assert.Equal(t, "lang", lang.Name())
	assert.Equal(t, "en-US.toml", lang.Children[0].Name())
	assert.Equal(t, "en_US", lang.Children[0].Identifier())
	assert.Equal(t, "top.txt", (&Constant{SourcePath: "top.txt"}).Name())
}

func TestWalk(t *testing.T) {
	var visited []string
	var depths []int
	Walk(sampleTree(), func(n Node, depth int) bool {
		visited = append(visited, n.Identifier())
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []string{"assets", "images", "logo", "lang", "en_US", "zh_CN"}, visited)
	assert.Equal(t, []int{0, 1, 2, 1, 2, 2}, depths)

	visited = nil
	Walk(sampleTree(), func(n Node, _ int) bool {
		visited = append(visited, n.Identifier())
		return n.Identifier() != "lang"
	})
	assert.Equal(t, []string{"assets", "images", "logo", "lang"}, visited)
}

func TestCount(t *testing.T) {
	c := Count(sampleTree())
	assert.Equal(t, Counts{Namespaces: 3, Text: 2, Binary: 1}, c)
	assert.Equal(t, 3, c.Constants())

	consts := Constants(sampleTree())
	if assert.Len(t, consts, 3) {
		assert.Equal(t, "images/logo.png", consts[0].SourcePath)
	}
}
