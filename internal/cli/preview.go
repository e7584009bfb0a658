package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/callsheet/pkg/layout"
)

const boxKeys = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

var boxColors = []lipgloss.Color{"36", "75", "35", "220", "167", "141", "180", "109"}

var (
	previewFreeStyle  = lipgloss.NewStyle().Foreground(colorDim)
	previewLabelStyle = lipgloss.NewStyle().Foreground(colorGray)
)

// previewCommand creates the preview command, an interactive page browser.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		flags      pageFlags
		printPages bool
	)

	cmd := &cobra.Command{
		Use:   "preview [document]",
		Short: "Browse the laid-out pages in the terminal",
		Long: `Browse the laid-out pages in the terminal.

Each page shows its section grids, one letter per box, and a table of the
boxes with their origin, size and row numbers. Use ←/→ to change pages and
p to switch between logical pages and booklet print pages.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], flags, printPages)
		},
	}

	cmd.Flags().BoolVar(&printPages, "print", false, "start on the booklet print pages")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, flags pageFlags, printPages bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := flags.options(cfg, input)
	opts.Logger = c.Logger
	doc, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	plan, err := runner.ComputeLayout(ctx, doc, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	m := newPreviewModel(plan)
	m.print = printPages && len(plan.Print) > 0
	_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// previewModel - Interactive page browser
// =============================================================================

type previewModel struct {
	plan  layout.Plan
	print bool
	index int
}

func newPreviewModel(plan layout.Plan) previewModel {
	return previewModel{plan: plan}
}

func (m previewModel) pages() []layout.Page {
	if m.print {
		return m.plan.PrintPages()
	}
	return m.plan.Pages
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	last := len(m.pages()) - 1
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "right", "l", "n", "pgdown":
		if m.index < last {
			m.index++
		}
	case "left", "h", "pgup":
		if m.index > 0 {
			m.index--
		}
	case "home", "g":
		m.index = 0
	case "end", "G":
		m.index = max(last, 0)
	case "p":
		if len(m.plan.Print) > 0 {
			m.print = !m.print
			m.index = 0
		}
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	title := m.plan.Title
	if title == "" {
		title = "Call sheet"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s %s", m.plan.Format, m.plan.Orientation)))
	b.WriteString("\n")
	help := "←/→ page  q quit"
	if len(m.plan.Print) > 0 {
		help = "←/→ page  p print pages  q quit"
	}
	b.WriteString(StyleDim.Render(help))
	b.WriteString("\n\n")

	pages := m.pages()
	if len(pages) == 0 {
		b.WriteString(StyleDim.Render("no pages"))
		return b.String()
	}
	p := &pages[m.index]

	kind := "Page"
	if m.print {
		kind = "Print page"
	}
	header := fmt.Sprintf("%s %d%s · %s · %d/%d rows", kind, p.Number, p.Side, p.Orientation, p.RowsUsed, p.MaxRows)
	b.WriteString(StyleValue.Bold(true).Render(header))
	if p.Overflow {
		b.WriteString("  " + StyleWarning.Render(fmt.Sprintf("over by %d rows", -p.Free())))
	}
	b.WriteString("\n")

	for i := range p.Sections {
		sl := &p.Sections[i]
		b.WriteString("\n")
		b.WriteString(previewLabelStyle.Render(fmt.Sprintf("%s  (rows %d, numbering from %d)", sl.Title, sl.Rows, sl.StartOffset+1)))
		b.WriteString("\n")
		b.WriteString(sectionGrid(sl))
		b.WriteString(sectionTable(sl))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.index+1, len(pages))))
	return b.String()
}

// sectionGrid draws the section grid with one colored letter per box cell.
func sectionGrid(sl *layout.SectionLayout) string {
	owner := make([][]int, sl.Rows)
	for r := range owner {
		owner[r] = make([]int, sl.Columns)
		for c := range owner[r] {
			owner[r][c] = -1
		}
	}
	for i, bl := range sl.Boxes {
		pl := bl.Placement
		for r := pl.Row; r < pl.Bottom() && r < sl.Rows; r++ {
			for c := pl.Col; c < pl.Col+pl.ColSpan && c < sl.Columns; c++ {
				owner[r][c] = i
			}
		}
	}

	var b strings.Builder
	for _, row := range owner {
		b.WriteString("  ")
		for _, i := range row {
			if i < 0 {
				b.WriteString(previewFreeStyle.Render("··"))
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(boxColors[i%len(boxColors)]).Render(strings.Repeat(boxKey(i), 2)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func boxKey(i int) string {
	if i < len(boxKeys) {
		return boxKeys[i : i+1]
	}
	return "#"
}

func sectionTable(sl *layout.SectionLayout) string {
	rows := make([][]string, len(sl.Boxes))
	for i := range sl.Boxes {
		bl := &sl.Boxes[i]
		name := bl.Header
		if name == "" {
			name = string(bl.Type)
		}
		numbers := "-"
		if bl.FilledRows > 0 {
			numbers = fmt.Sprintf("%d-%d", bl.StartOffset+1, bl.StartOffset+bl.FilledRows)
		}
		flags := ""
		if bl.Locked {
			flags = "locked"
		}
		if bl.Overflow > 0 {
			flags = strings.TrimSpace(flags + fmt.Sprintf(" +%d", bl.Overflow))
		}
		pl := bl.Placement
		rows[i] = []string{boxKey(i), name, fmt.Sprintf("%d,%d", pl.Row, pl.Col), fmt.Sprintf("%dx%d", pl.ColSpan, pl.RowSpan), numbers, flags}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Box", "Origin", "Size", "Rows", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col == 0 && row >= 0 {
				return lipgloss.NewStyle().Foreground(boxColors[row%len(boxColors)])
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
