package browser

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"foldernotes/internal/utils"
)

var (
	colorAccent = lipgloss.Color("#20B9B4")
	colorMuted  = lipgloss.Color("#2C4A54")
	colorError  = lipgloss.Color("#E74C3C")
)

type styles struct {
	title    lipgloss.Style
	folder   lipgloss.Style
	note     lipgloss.Style
	selected lipgloss.Style
	muted    lipgloss.Style
	err      lipgloss.Style
	detail   lipgloss.Style
}

// Renderer draws snapshots as a text tree followed by the detail pane
type Renderer struct {
	out    io.Writer
	styles styles
}

// NewRenderer creates a View writing to out.
// Colors are only emitted when out is a terminal.
func NewRenderer(out io.Writer) *Renderer {
	r := lipgloss.NewRenderer(out)
	return &Renderer{
		out: out,
		styles: styles{
			title:    r.NewStyle().Bold(true).Foreground(colorAccent),
			folder:   r.NewStyle().Bold(true),
			note:     r.NewStyle(),
			selected: r.NewStyle().Bold(true).Foreground(colorAccent),
			muted:    r.NewStyle().Foreground(colorMuted),
			err:      r.NewStyle().Foreground(colorError),
			detail: r.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorAccent).
				Padding(0, 1),
		},
	}
}

// Render implements View
func (r *Renderer) Render(s Snapshot) {
	fmt.Fprintln(r.out, r.Format(s))
}

// Format returns the rendered snapshot without writing it
func (r *Renderer) Format(s Snapshot) string {
	var b strings.Builder

	b.WriteString(r.styles.title.Render("Folders"))
	if s.Phase == PhaseLoading {
		b.WriteString(" " + r.styles.muted.Render("(loading)"))
	}
	b.WriteString("\n")

	if len(s.Folders) == 0 {
		b.WriteString(r.styles.muted.Render("  no folders yet") + "\n")
	}

	for i, node := range s.Folders {
		arrow := "▸"
		if node.Expanded {
			arrow = "▾"
		}
		fmt.Fprintf(&b, "%s [%d] %s %s\n", arrow, i+1,
			r.styles.folder.Render(node.Folder.Name),
			r.styles.muted.Render(fmt.Sprintf("(%d)", len(node.Notes))))

		if node.LoadErr != "" {
			b.WriteString("    " + r.styles.err.Render("notes unavailable: "+node.LoadErr) + "\n")
		}
		if !node.Expanded {
			continue
		}
		for j, note := range node.Notes {
			marker, style := " ", r.styles.note
			if s.IsSelected(node.Folder.ID, note.ID) {
				marker, style = "*", r.styles.selected
			}
			fmt.Fprintf(&b, "  %s %d.%d %s\n", marker, i+1, j+1, style.Render(note.Title))
		}
	}

	b.WriteString(r.detailPane(s))
	return b.String()
}

func (r *Renderer) detailPane(s Snapshot) string {
	if s.Detail == nil {
		return r.styles.detail.Render(r.styles.muted.Render(DetailPlaceholder))
	}
	body := s.Detail.Content
	if body == "" {
		body = r.styles.muted.Render("(empty)")
	}
	return r.styles.detail.Render(lipgloss.JoinVertical(lipgloss.Left,
		r.styles.title.Render(s.Detail.Title),
		"",
		body,
		"",
		r.styles.muted.Render(wordCount(s.Detail.Content)),
	))
}

func wordCount(content string) string {
	if n := utils.CountWords(content); n != 1 {
		return fmt.Sprintf("%d words", n)
	}
	return "1 word"
}
