package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/waterfall/pkg/collection"
	"github.com/matzehuels/waterfall/pkg/geom"
	"github.com/matzehuels/waterfall/pkg/pipeline"
	"github.com/matzehuels/waterfall/pkg/waterfall"
)

// defaultViewportHeight is the preview viewport height in layout points.
const defaultViewportHeight = 812

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		height float64
		opts   pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "preview [collection.toml]",
		Short: "Scroll through a layout interactively",
		Long: `Scroll through a layout interactively.

The preview lays out the collection and shows the attributes that intersect
a viewport of the given height as you scroll. Pinned headers move with the
scroll offset exactly as they would on screen.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], height, opts)
		},
	}

	cmd.Flags().Float64Var(&height, "height", defaultViewportHeight, "viewport height in layout points")
	addLayoutFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, height float64, opts pipeline.Options) error {
	if height <= 0 {
		return fmt.Errorf("viewport height must be positive, got %v", height)
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	coll, err := collection.Read(input)
	if err != nil {
		return fmt.Errorf("load collection %s: %w", input, err)
	}
	eff := opts.Apply(coll)
	l, err := pipeline.Build(eff)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	loggerFromContext(ctx).Debug("preview ready", "sections", l.SectionCount(), "height", l.ContentSize().Height)

	m := newPreviewModel(l, eff.SectionName, height)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run preview: %w", err)
	}
	return nil
}

// =============================================================================
// Key Bindings
// =============================================================================

type previewKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Quit     key.Binding
}

func defaultPreviewKeys() previewKeyMap {
	return previewKeyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("b/pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", " ", "f"), key.WithHelp("f/pgdn", "page down")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k previewKeyMap) help() string {
	bindings := []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom, k.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return StyleDim.Render(strings.Join(parts, " · "))
}

// =============================================================================
// Model
// =============================================================================

// previewModel scrolls a viewport over a computed layout.
type previewModel struct {
	layout      *waterfall.Layout
	sectionName func(int) string
	keys        previewKeyMap

	height  float64 // viewport height in layout points
	scroll  float64
	visible []waterfall.Attribute

	rows int // terminal rows available for the table
}

func newPreviewModel(l *waterfall.Layout, sectionName func(int) string, height float64) previewModel {
	m := previewModel{
		layout:      l,
		sectionName: sectionName,
		keys:        defaultPreviewKeys(),
		height:      height,
		rows:        20,
	}
	m.refresh()
	return m
}

func (m previewModel) maxScroll() float64 {
	return max(0, m.layout.ContentSize().Height-m.height)
}

func (m *previewModel) scrollTo(y float64) {
	m.scroll = min(max(y, 0), m.maxScroll())
	m.refresh()
}

func (m *previewModel) refresh() {
	width := m.layout.ContentSize().Width
	m.visible = m.layout.AttributesIntersecting(geom.NewRect(0, m.scroll, width, m.height))
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	step := m.height / 10
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.scrollTo(m.scroll - step)
		case key.Matches(msg, m.keys.Down):
			m.scrollTo(m.scroll + step)
		case key.Matches(msg, m.keys.PageUp):
			m.scrollTo(m.scroll - m.height)
		case key.Matches(msg, m.keys.PageDown):
			m.scrollTo(m.scroll + m.height)
		case key.Matches(msg, m.keys.Top):
			m.scrollTo(0)
		case key.Matches(msg, m.keys.Bottom):
			m.scrollTo(m.maxScroll())
		}
	case tea.WindowSizeMsg:
		// title, status, help and table borders
		m.rows = max(1, msg.Height-8)
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	size := m.layout.ContentSize()
	b.WriteString(StyleTitle.Render("waterfall preview"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("content %s × %s", formatFloat(size.Width), formatFloat(size.Height))))
	b.WriteString("\n")

	status := fmt.Sprintf("scroll %s / %s  ·  viewport %s  ·  %s visible",
		StyleNumber.Render(formatFloat(m.scroll)),
		formatFloat(m.maxScroll()),
		formatFloat(m.height),
		StyleNumber.Render(fmt.Sprintf("%d", len(m.visible))))
	b.WriteString(status)
	b.WriteString("\n")

	shown := m.visible
	if len(shown) > m.rows {
		shown = shown[:m.rows]
	}
	if len(shown) == 0 {
		b.WriteString(StyleDim.Render("nothing in view"))
	} else {
		b.WriteString(renderAttributeTable(shown, m.sectionName))
	}
	if hidden := len(m.visible) - len(shown); hidden > 0 {
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(fmt.Sprintf("… %d more", hidden)))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().MarginTop(1).Render(m.keys.help()))
	return b.String()
}
