package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/halcyon-emu/timesrv/clock"
	"github.com/halcyon-emu/timesrv/service"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	entryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type target int

const (
	targetLocal target = iota
	targetNetwork
)

func (t target) String() string {
	if t == targetLocal {
		return "local"
	}
	return "network"
}

type watchModel struct {
	svc    *service.TimeService
	input  textinput.Model
	target target
	err    error

	local        clock.SystemContext
	localCount   uint32
	network      clock.SystemContext
	networkCount uint32
	corrected    bool
	corrCount    uint32
}

type tickMsg struct{}

func newWatchModel(svc *service.TimeService) *watchModel {
	input := textinput.New()
	input.Placeholder = "offset seconds"
	input.CharLimit = 20
	input.Width = 24
	input.Focus()

	return &watchModel{svc: svc, input: input}
}

func (m *watchModel) Init() tea.Cmd {
	return tea.Batch(pollRegion(), textinput.Blink)
}

func pollRegion() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		// Lock-free snapshot through the same reader path the guest uses.
		m.local, m.localCount = m.svc.Region().LocalContext()
		m.network, m.networkCount = m.svc.Region().NetworkContext()
		m.corrected, m.corrCount = m.svc.Region().AutomaticCorrection()
		return m, pollRegion()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.target = (m.target + 1) % 2
			return m, nil
		case "ctrl+a":
			m.err = m.svc.SetAutomaticCorrection(!m.svc.UserClock().AutomaticCorrectionEnabled())
			return m, nil
		case "enter":
			m.err = m.applyOffset(m.input.Value())
			if m.err == nil {
				m.input.Reset()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *watchModel) applyOffset(value string) error {
	offset, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("offset must be an integer: %w", err)
	}
	if m.target == targetLocal {
		return publishLocal(m.svc, offset)
	}
	return publishNetwork(m.svc, offset)
}

func (m *watchModel) View() string {
	s := titleStyle.Render("timewatch — guest time region") + "\n\n"

	s += renderEntry("local", m.local, m.localCount)
	s += renderEntry("network", m.network, m.networkCount)
	s += fmt.Sprintf("%s count=%s enabled=%s\n\n",
		entryStyle.Render("correction"),
		valueStyle.Render(strconv.FormatUint(uint64(m.corrCount), 10)),
		valueStyle.Render(strconv.FormatBool(m.corrected)))

	user := "-"
	if ctx, err := m.svc.UserClock().Context(); err == nil {
		user = fmt.Sprintf("steady=%ds offset=%d", ctx.SteadyTimePoint.TimePoint, ctx.Offset)
	}
	s += fmt.Sprintf("%s %s\n\n", entryStyle.Render("user clock"), valueStyle.Render(user))

	s += "publish to " + selectedStyle.Render(m.target.String()) + ": " + m.input.View() + "\n"
	if m.err != nil {
		s += errorStyle.Render(m.err.Error()) + "\n"
	}
	s += helpStyle.Render("tab: switch target • enter: publish • ctrl+a: toggle correction • esc: quit")
	return s
}

func renderEntry(name string, ctx clock.SystemContext, count uint32) string {
	return fmt.Sprintf("%s count=%s slot=%s steady=%s offset=%s\n  source %s\n",
		entryStyle.Render(fmt.Sprintf("%-10s", name)),
		valueStyle.Render(strconv.FormatUint(uint64(count), 10)),
		valueStyle.Render(strconv.FormatUint(uint64(count&1), 10)),
		valueStyle.Render(fmt.Sprintf("%ds", ctx.SteadyTimePoint.TimePoint)),
		valueStyle.Render(strconv.FormatUint(ctx.Offset, 10)),
		helpStyle.Render(ctx.SteadyTimePoint.SourceID.String()))
}

func runInteractive(svc *service.TimeService) error {
	p := tea.NewProgram(newWatchModel(svc))
	_, err := p.Run()
	return err
}
