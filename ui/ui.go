// Package ui implements the interactive voice notification dashboard.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/dgnsrekt/finvox/voice"
)

const statusRefreshInterval = 100 * time.Millisecond

// tickMsg drives the periodic status refresh.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(statusRefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// demo values spoken by the trigger keys
var demoPayees = []struct {
	name   string
	amount float64
}{
	{"Rent", 850},
	{"Electric", 123.45},
	{"Internet", 79.99},
}

// Model is the dashboard's bubbletea model.
type Model struct {
	cfg       Config
	announcer *voice.Announcer
	queue     *voice.Queue

	keys    keyMap
	help    help.Model
	spin    spinner.Model
	showAll bool

	width  int
	height int

	lastAt   time.Time
	flash    string
	txCount  int
	reminder int

	helpView string // glamour-rendered, built lazily
}

// NewModel creates the dashboard model.
func NewModel(cfg Config, announcer *voice.Announcer, queue *voice.Queue) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = speakingStyle
	return Model{
		cfg:       cfg,
		announcer: announcer,
		queue:     queue,
		keys:      newKeyMap(),
		help:      help.New(),
		spin:      sp,
	}
}

// NewProgram returns the dashboard wired into a bubbletea program.
func NewProgram(cfg Config, announcer *voice.Announcer, queue *voice.Queue) *tea.Program {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.EnableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return tea.NewProgram(NewModel(cfg, announcer, queue), opts...)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, tick())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.announcer.StopAll()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showAll = !m.showAll
		if m.showAll && m.helpView == "" {
			m.helpView = m.renderHelp()
		}
		return m, nil

	case key.Matches(msg, m.keys.Greeting):
		m.announcer.AnnounceGreeting(m.cfg.UserName, 1234.56)
		m.lastAt = time.Now()
		m.flash = "greeting requested"
		return m, nil

	case key.Matches(msg, m.keys.Transaction):
		m.txCount++
		m.announcer.AnnounceTransaction("Deposit", float64(m.txCount)*25.50)
		m.lastAt = time.Now()
		m.flash = "transaction announced"
		return m, nil

	case key.Matches(msg, m.keys.Reminder):
		p := demoPayees[m.reminder%len(demoPayees)]
		m.reminder++
		m.announcer.AnnouncePaymentReminder(p.name, p.amount, time.Now().Add(6*time.Hour))
		m.lastAt = time.Now()
		m.flash = "reminder requested"
		return m, nil

	case key.Matches(msg, m.keys.Alert):
		m.announcer.AnnounceRoutineAlert("All accounts are up to date.")
		m.lastAt = time.Now()
		m.flash = "routine alert requested"
		return m, nil

	case key.Matches(msg, m.keys.Stop):
		m.announcer.StopAll()
		m.flash = "stopped everything"
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		on := !m.announcer.Enabled()
		m.announcer.SetEnabled(on)
		if on {
			m.flash = "voice enabled"
		} else {
			m.flash = "voice muted"
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		text := m.announcer.LastComposed()
		if text == "" {
			m.flash = "nothing to copy"
			return m, nil
		}
		if err := clipboard.WriteAll(text); err != nil {
			m.flash = "clipboard unavailable"
			return m, nil
		}
		m.flash = "copied last announcement"
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("FinVox"))
	b.WriteString("\n\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")
	b.WriteString(m.statsView())
	b.WriteString("\n")

	if last := m.announcer.LastComposed(); last != "" {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("last: "))
		b.WriteString(valueStyle.Render(last))
		if !m.lastAt.IsZero() {
			b.WriteString(labelStyle.Render(" (" + humanize.Time(m.lastAt) + ")"))
		}
		b.WriteString("\n")
	}

	if m.flash != "" {
		b.WriteString("\n")
		b.WriteString(flashStyle.Render(m.flash))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.showAll && m.helpView != "" {
		b.WriteString(m.helpView)
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}

	return docStyle.Render(b.String())
}

func (m Model) statusLine() string {
	if !m.announcer.Enabled() {
		return mutedStyle.Render("◼ voice muted")
	}
	if m.queue.IsVoicePlaying() {
		return m.spin.View() + speakingStyle.Render(" speaking")
	}
	return idleStyle.Render("○ idle")
}

func (m Model) statsView() string {
	stats := m.queue.Stats()
	row := func(label string, value int) string {
		return labelStyle.Render(fmt.Sprintf("%-9s", label)) + valueStyle.Render(fmt.Sprintf("%d", value))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		row("queued", m.queue.Len()),
		row("spoken", stats.Spoken),
		row("dropped", stats.Dropped),
		row("peak", stats.Peak),
	)
}

const helpMarkdown = `## Keys

| Key | Action |
|-----|--------|
| g | announce the dashboard greeting |
| t | announce a sample transaction |
| r | announce the next payment reminder |
| a | announce a routine alert (rate limited) |
| s | stop all voice immediately |
| v | mute / unmute voice |
| c | copy the last announcement text |
| q | quit |

Greetings and reminders announce once per session; trigger them again
after muting and unmuting to hear them re-announce.
`

func (m Model) renderHelp() string {
	if !m.cfg.GlamourEnabled {
		return helpMarkdown
	}
	width := int(m.cfg.GlamourMaxWidth)
	if width == 0 || (m.width > 0 && m.width < width) {
		width = m.width
	}
	style := glamour.WithEnvironmentConfig()
	if m.cfg.GlamourStyle != "" && m.cfg.GlamourStyle != "auto" {
		style = glamour.WithStylePath(m.cfg.GlamourStyle)
	}
	r, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
