// Package ui renders namespace trees, generation summaries and artifact
// previews for the terminal.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/conneroisu/assetns/internal/filter"
	"github.com/conneroisu/assetns/internal/types"
)

// Styles
var (
	Red    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	Green  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	Yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	Faint  = lipgloss.NewStyle().Faint(true)
	Bold   = lipgloss.NewStyle().Bold(true)

	NamespaceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	TextStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	BinaryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	BranchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// DefaultTheme is the chroma style used by Highlight.
const DefaultTheme = "dracula"

// RenderTree draws root as a tree: namespaces by identifier, constants by
// identifier followed by their kind and source path.
func RenderTree(root *types.Namespace) string {
	t := tree.Root(NamespaceStyle.Render(root.Ident)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(BranchStyle)
	addChildren(t, root)
	return t.String()
}

func addChildren(t *tree.Tree, ns *types.Namespace) {
	for _, child := range ns.Children {
		switch n := child.(type) {
		case *types.Namespace:
			sub := tree.Root(NamespaceStyle.Render(n.Ident)).
				Enumerator(tree.RoundedEnumerator).
				EnumeratorStyle(BranchStyle)
			addChildren(sub, n)
			t.Child(sub)
		case *types.Constant:
			t.Child(constantLabel(n))
		}
	}
}

func constantLabel(c *types.Constant) string {
	style := TextStyle
	if c.Kind == filter.KindBinary {
		style = BinaryStyle
	}
	return fmt.Sprintf("%s %s %s",
		style.Render(c.Ident),
		Faint.Render("["+c.Kind.String()+"]"),
		Faint.Render(c.SourcePath))
}

// Summary is one line of a generation report.
type Summary struct {
	Module    string
	Output    string
	Constants int
	Skipped   int
	Written   bool
	DryRun    bool
}

// RenderSummary formats s as a single status line.
func RenderSummary(s Summary) string {
	var status string
	switch {
	case s.DryRun:
		status = Yellow.Render("dry run")
	case s.Written:
		status = Green.Render("written")
	default:
		status = Faint.Render("unchanged")
	}
	line := fmt.Sprintf("%s %s → %s (%d constants", status, Bold.Render(s.Module), s.Output, s.Constants)
	if s.Skipped > 0 {
		line += fmt.Sprintf(", %d skipped", s.Skipped)
	}
	return line + ")"
}

// RenderError formats err for the terminal.
func RenderError(err error) string {
	return Red.Render("error: " + err.Error())
}

// Box draws content inside a rounded border.
func Box(content string) string {
	return BoxStyle.Render(strings.TrimRight(content, "\n"))
}

// Highlight writes src to w with syntax highlighting for format ("go",
// "json" or "yaml"). Unknown formats are written unchanged.
func Highlight(w io.Writer, src, format, theme string) error {
	if theme == "" {
		theme = DefaultTheme
	}
	switch format {
	case "go", "json", "yaml":
		return quick.Highlight(w, src, format, "terminal256", theme)
	default:
		_, err := io.WriteString(w, src)
		return err
	}
}
