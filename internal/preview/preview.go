// Package preview provides a Bubble Tea pager over a composed puzzle set.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"puzzlebook/internal/fen"
	"puzzlebook/internal/puzzle"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	boardStyle    = lipgloss.NewStyle().Padding(0, 2)
	captionStyle  = lipgloss.NewStyle().Bold(true)
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	solutionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea preview UI.
type Model struct {
	records      []puzzle.Record
	index        int
	showSolution bool

	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// NewModel constructs a preview model over a non-empty puzzle set.
func NewModel(records []puzzle.Record) *Model {
	return &Model{records: records}
}

// Run shows the preview until the user quits.
func Run(records []puzzle.Record) error {
	program := tea.NewProgram(NewModel(records), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run preview: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - 4
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.setContent()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "right", "l", "n":
			if m.index < len(m.records)-1 {
				m.index++
				m.showSolution = false
				m.setContent()
			}
			return m, nil
		case "left", "h", "p":
			if m.index > 0 {
				m.index--
				m.showSolution = false
				m.setContent()
			}
			return m, nil
		case "s":
			m.showSolution = !m.showSolution
			m.setContent()
			return m, nil
		}
	}
	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready || len(m.records) == 0 {
		return ""
	}
	title := titleStyle.Render(fmt.Sprintf("Puzzle %d/%d", m.index+1, len(m.records)))
	footer := footerStyle.Render("←/→ navigate · s solution · q quit")
	return title + "\n\n" + m.viewport.View() + "\n" + footer
}

func (m *Model) setContent() {
	if len(m.records) == 0 {
		return
	}
	rec := m.records[m.index]
	c := puzzle.Classify(rec)

	var sections []string

	board, err := fen.AfterSetupMove(rec.FEN, rec.Moves)
	if err != nil {
		sections = append(sections, metaStyle.Render("position unavailable: "+rec.FEN))
		sections = append(sections, captionStyle.Render(caption(strings.Contains(rec.FEN, " w "), c)))
	} else {
		sections = append(sections, boardStyle.Render(board.Render()))
		sections = append(sections, captionStyle.Render(caption(board.WhiteToMove(), c)))
	}

	meta := fmt.Sprintf("id %s", rec.ID)
	if rec.HasRating() {
		meta += fmt.Sprintf(" · rating %d", rec.Rating)
	}
	if len(rec.Themes) > 0 {
		meta += " · " + strings.Join(rec.Themes, " ")
	}
	sections = append(sections, metaStyle.Render(meta))

	if m.showSolution {
		solution := rec.Moves
		if len(solution) > 1 {
			solution = solution[1:]
		}
		sections = append(sections, solutionStyle.Render("solution: "+strings.Join(solution, " ")))
	} else {
		sections = append(sections, metaStyle.Render("press s to reveal the solution"))
	}

	m.viewport.SetContent(strings.Join(sections, "\n\n"))
	m.viewport.GotoTop()
}

func caption(whiteToMove bool, c puzzle.Classification) string {
	side := "Black"
	if whiteToMove {
		side = "White"
	}
	if c.IsMate && c.HasMateDepth() {
		return fmt.Sprintf("%s to move and checkmate in %d", side, c.MateDepth)
	}
	return side + " to move"
}
