package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sigilgen/internal/form"
	"github.com/san-kum/sigilgen/internal/session"
	"github.com/san-kum/sigilgen/internal/sigil"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

type model struct {
	sess     *session.Session
	params   sigil.Params
	interval time.Duration

	cursor  int
	saving  bool
	editBuf string
	ticking bool

	status    string
	statusErr bool

	width  int
	height int
}

// New returns the bubbletea model editing and previewing sess.
func New(sess *session.Session, interval time.Duration) tea.Model {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &model{
		sess:     sess,
		params:   sess.Params(),
		interval: interval,
		width:    80,
		height:   32,
	}
}

// Run opens the terminal UI on the alternate screen.
func Run(sess *session.Session, interval time.Duration) error {
	_, err := tea.NewProgram(New(sess, interval), tea.WithAltScreen()).Run()
	return err
}

func (m *model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func (m *model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.saving {
			return m, m.saveKey(msg)
		}
		return m, m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		m.sess.Advance(time.Time(msg))
		if m.sess.Animating() {
			return m, m.tick()
		}
		m.ticking = false
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(form.Controls)-1 {
			m.cursor++
		}
	case "left", "h":
		form.Controls[m.cursor].Adjust(&m.params, -1)
	case "right", "l", " ":
		form.Controls[m.cursor].Adjust(&m.params, 1)
	case "g", "enter":
		if m.apply() {
			m.report(m.sess.Generate(), "sigil generated")
		}
	case "a":
		if m.apply() {
			err := m.sess.Animate(time.Now())
			m.report(err, "animating")
			if err == nil && !m.ticking {
				m.ticking = true
				return m.tick()
			}
		}
	case "s":
		if !m.sess.Generated() {
			m.fail("Please generate a sigil before saving.")
			return nil
		}
		m.saving = true
		m.editBuf = m.sess.DefaultName()
	case "c":
		m.sess.Clear()
		m.setStatus("cleared")
	}
	return nil
}

func (m *model) saveKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.saving = false
		path := strings.TrimSpace(m.editBuf)
		if path == "" {
			return nil
		}
		out, err := m.sess.Save(path)
		if err != nil {
			m.fail("An error occurred while saving: " + err.Error())
			return nil
		}
		m.setStatus("saved " + out)
	case tea.KeyEsc:
		m.saving = false
	case tea.KeyBackspace:
		if len(m.editBuf) > 0 {
			r := []rune(m.editBuf)
			m.editBuf = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.editBuf += string(msg.Runes)
	}
	return nil
}

func (m *model) apply() bool {
	if err := m.sess.SetParams(m.params); err != nil {
		m.fail(err.Error())
		return false
	}
	return true
}

func (m *model) report(err error, ok string) {
	if err != nil {
		m.fail(err.Error())
		return
	}
	m.setStatus(ok)
}

func (m *model) setStatus(s string) { m.status, m.statusErr = s, false }
func (m *model) fail(s string)      { m.status, m.statusErr = s, true }

func (m *model) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("   " + cyan.Render("s i g i l g e n") + "  ")
	switch {
	case m.sess.Animating():
		b.WriteString(green.Render("● animating"))
	case m.sess.HasAnimation():
		b.WriteString(yellow.Render("○ animation done"))
	case m.sess.Generated():
		b.WriteString(dim.Render("○ static"))
	default:
		b.WriteString(dimmer.Render("○ empty"))
	}
	b.WriteString("\n" + dimmer.Render("   "+strings.Repeat("─", 30)) + "\n\n")

	for i, c := range form.Controls {
		val := fmt.Sprintf("%8s", c.Value(m.params))
		if i == m.cursor {
			b.WriteString("   " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-16s", c.Name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("     " + dim.Render(fmt.Sprintf("%-16s", c.Name)) + dim.Render(val) + "\n")
		}
	}
	b.WriteString("\n")

	if m.sess.Generated() {
		canvas := NewCanvas(m.canvasSize())
		canvas.Plot(m.sess.Scene())
		for _, row := range strings.Split(strings.TrimRight(canvas.String(), "\n"), "\n") {
			b.WriteString("   " + cyan.Render(row) + "\n")
		}
		b.WriteString("\n")
	}

	switch {
	case m.saving:
		b.WriteString("   save as " + white.Render(m.editBuf+"▋") + "\n")
	case m.status != "" && m.statusErr:
		b.WriteString("   " + red.Render(m.status) + "\n")
	case m.status != "":
		b.WriteString("   " + green.Render(m.status) + "\n")
	}
	b.WriteString("\n" + dim.Render("   ↑↓ select  ←→ adjust  g render  a animate  s save  c clear  q quit") + "\n")
	return b.String()
}

func (m *model) canvasSize() (int, int) {
	w := max(m.width-6, 20)
	h := max(m.height-len(form.Controls)-10, 6)
	return w, h
}

