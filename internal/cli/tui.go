package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/kundli/pkg/chart"
	"github.com/matzehuels/kundli/pkg/placement"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	detailPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1).
			Width(44)
)

// HouseListModel is the bubbletea model of the inspect view: the twelve
// houses in a table and the planets of the selected house beside it.
type HouseListModel struct {
	Chart  *chart.Chart
	Model  *placement.Model
	Title  string
	Cursor int // house index, 0..11
}

// NewHouseListModel creates the inspect model with house 1 selected.
func NewHouseListModel(c *chart.Chart, m *placement.Model, title string) HouseListModel {
	return HouseListModel{Chart: c, Model: m, Title: title}
}

func (m HouseListModel) Init() tea.Cmd {
	return nil
}

func (m HouseListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.Cursor = (m.Cursor + chart.NumSigns - 1) % chart.NumSigns
		case "down", "j", "tab":
			m.Cursor = (m.Cursor + 1) % chart.NumSigns
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = chart.NumSigns - 1
		}
	}
	return m, nil
}

// House returns the selected house number.
func (m HouseListModel) House() int {
	return m.Cursor + 1
}

func (m HouseListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.houseTable(), "  ", m.detail()))
	b.WriteString("\n")
	return b.String()
}

func (m HouseListModel) houseTable() string {
	rows := make([][]string, 0, chart.NumSigns)
	for h := 1; h <= chart.NumSigns; h++ {
		s := m.Chart.SignOfHouse(h)
		cursor := "  "
		if h == m.House() {
			cursor = "▸ "
		}
		var labels []string
		for _, p := range m.Model.PlanetsInHouse(h) {
			labels = append(labels, p.Code)
		}
		planets := strings.Join(labels, " ")
		if planets == "" {
			planets = "—"
		}
		rows = append(rows, []string{cursor, fmt.Sprint(h), s.Glyph() + " " + s.Name(), s.Sanskrit(), planets})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "House", "Sign", "Rashi", "Planets").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle()
			occupied := len(m.Model.PlanetsInHouse(row+1)) > 0
			switch {
			case row+1 == m.House():
				return base.Foreground(colorCyan).Bold(true)
			case occupied:
				return base.Foreground(colorGreen)
			}
			return base.Foreground(colorDim)
		}).
		Render()
}

func (m HouseListModel) detail() string {
	h := m.House()
	s := m.Chart.SignOfHouse(h)

	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("House %d", h)))
	b.WriteString("  " + StyleHighlight.Render(s.Glyph()+" "+s.Name()) + listDimStyle.Render(" ("+s.Sanskrit()+")"))
	b.WriteString("\n")
	if h == 1 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("lagna %.2f°", m.Chart.Ascendant.Degree)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	planets := m.Chart.PlanetsInHouse(h)
	placed := m.Model.PlanetsInHouse(h)
	if len(planets) == 0 {
		b.WriteString(listDimStyle.Render("no planets"))
		return detailPaneStyle.Render(b.String())
	}
	for i, p := range planets {
		line := fmt.Sprintf("%-8s %6.2f°", p.Name, p.Degree)
		if p.Dignity != chart.DignityNone {
			line += "  " + StyleWarning.Render(p.Dignity.String())
		}
		if p.Retrograde {
			line += "  " + StyleWarning.Render("retrograde")
		}
		b.WriteString(StyleValue.Render(line))
		b.WriteString("\n")
		if i < len(placed) {
			b.WriteString(listDimStyle.Render(fmt.Sprintf("  %q at (%g, %g)", placed[i].Label, placed[i].X, placed[i].Y)))
			b.WriteString("\n")
		}
	}
	if n := len(m.Model.Dropped); n > 0 && h == 1 {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("\n%d planet(s) could not be placed", n)))
	}
	return detailPaneStyle.Render(b.String())
}
