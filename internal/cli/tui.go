package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/colign/pkg/chunk"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ShiftListModel - Interactive shift report browser
// =============================================================================

// ShiftListModel is the bubbletea model for browsing a shift report.
// It shows one row per pending shift and scrolls with the cursor.
type ShiftListModel struct {
	Source string
	Shifts []chunk.Shift
	Cursor int
	Height int
	Offset int
}

// NewShiftListModel creates a shift browser for the given source file.
func NewShiftListModel(source string, shifts []chunk.Shift) ShiftListModel {
	return ShiftListModel{
		Source: source,
		Shifts: shifts,
		Height: 15,
	}
}

func (m ShiftListModel) Init() tea.Cmd {
	return nil
}

func (m ShiftListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Shifts)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g":
			m.Cursor = 0
			m.Offset = 0
		case "G":
			m.Cursor = len(m.Shifts) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ShiftListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Pending Shifts"))
	b.WriteString(" ")
	b.WriteString(listDimStyle.Render(m.Source))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G top/bottom  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Shifts) {
		end = len(m.Shifts)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Shifts[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		move := fmt.Sprintf("%d %s %d", s.From, iconArrow, s.To)
		delta := s.To - s.From
		sign := "+"
		if delta < 0 {
			sign = ""
		}

		rows = append(rows, []string{
			cursor,
			strconv.Itoa(s.Line),
			s.Kind,
			move,
			sign + strconv.Itoa(delta),
			s.Text,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Line", "Kind", "Column", "Δ", "Token").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Shifts) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if actualIdx == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			if col == 1 || col == 4 {
				return base.Foreground(colorGray)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Shifts))))

	return b.String()
}
