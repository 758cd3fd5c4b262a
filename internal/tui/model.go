// Package tui provides the Bubble Tea front-end for a puzzle session.
package tui

import (
	"fmt"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/rooted/internal/game"
)

const barWidth = 20

// Model implements the Bubble Tea game UI. It owns no game state of its own
// beyond the typed text and what is currently on screen.
type Model struct {
	session *game.Session
	date    string

	width  int
	height int

	input     []rune
	extras    []rune
	message   string
	celebrate bool
	showHelp  bool
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	rootStyle     = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#1E1E1E")).Background(lipgloss.Color("#C89A3A"))
	extraStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#3A3A3A"))
	inputStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Underline(true)
	messageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cheerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#52C41A"))
	barFullStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	barEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	helpStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)

// NewModel constructs a UI for session. date is shown in the title.
func NewModel(session *game.Session, date string) *Model {
	return &Model{
		session: session,
		date:    date,
		extras:  session.ShuffleExtras(),
	}
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
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			if m.showHelp {
				m.showHelp = false
				return m, nil
			}
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit()
		case tea.KeyBackspace, tea.KeyDelete:
			m.handleBackspace()
		case tea.KeyTab:
			m.extras = m.session.ShuffleExtras()
		case tea.KeyRunes:
			m.handleRunes(msg.Runes)
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handleRunes(runes []rune) {
	for _, r := range runes {
		if r == '?' {
			m.showHelp = !m.showHelp
			continue
		}
		if !unicode.IsLetter(r) {
			continue
		}
		m.input = append(m.input, unicode.ToUpper(r))
	}
}

func (m *Model) handleBackspace() {
	if len(m.input) == 0 {
		return
	}
	m.input = m.input[:len(m.input)-1]
}

// submit sends the typed word to the session and clears the input,
// as the page does on Enter.
func (m *Model) submit() game.Result {
	res := m.session.Submit(string(m.input))
	m.input = m.input[:0]
	m.message = res.Message()
	m.celebrate = res.LengthCompleted || res.PuzzleCompleted
	return res
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.showHelp {
		return m.place(m.renderHelp())
	}
	p := m.session.Puzzle()

	var b strings.Builder
	b.WriteString(titleStyle.Render("ROOTED · " + m.date))
	b.WriteString("\n\n")
	b.WriteString(renderSquares(p.Root, rootStyle))
	b.WriteString("\n")
	b.WriteString(renderSquares(string(m.extras), extraStyle))
	b.WriteString("\n\n> ")
	b.WriteString(inputStyle.Render(string(m.input) + " "))
	b.WriteString("\n")
	if m.message != "" {
		style := messageStyle
		if m.celebrate {
			style = cheerStyle
		}
		b.WriteString(style.Render(m.message))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderProgress())
	b.WriteString("\n")
	b.WriteString(m.renderFound())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("enter submit · backspace delete · tab shuffle · ? help · esc quit"))
	return m.place(b.String())
}

func (m *Model) place(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func renderSquares(letters string, style lipgloss.Style) string {
	cells := make([]string, 0, len(letters))
	for _, r := range letters {
		cells = append(cells, style.Render(string(r)))
	}
	return strings.Join(cells, " ")
}

func (m *Model) renderProgress() string {
	var lines []string
	for _, lp := range m.session.Progress() {
		filled := 0
		if lp.Total > 0 {
			filled = lp.Found * barWidth / lp.Total
		}
		bar := barFullStyle.Render(strings.Repeat("█", filled)) +
			barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
		lines = append(lines, fmt.Sprintf("%2d-Letter Words %s %d/%d", lp.Length, bar, lp.Found, lp.Total))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFound() string {
	sum := m.session.Summary()
	head := fmt.Sprintf("Found %d of %d", sum.FoundCount, sum.TotalCount)
	found := m.session.FoundSorted()
	if len(found) == 0 {
		return head
	}
	return head + "\n" + strings.Join(found, "  ")
}

func (m *Model) renderHelp() string {
	root := m.session.Puzzle().Root
	text := strings.Join([]string{
		titleStyle.Render("How to play"),
		"",
		fmt.Sprintf("Make words of %d or more letters.", game.MinWordLength),
		fmt.Sprintf("Every word must contain %s.", root),
		"Use only the letters shown; letters may repeat.",
		"Fill every progress bar to finish the puzzle.",
		"A new puzzle appears every day.",
		"",
		footerStyle.Render("? or esc to close"),
	}, "\n")
	return helpStyle.Render(text)
}
