package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/iomux/mux"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	stdoutStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	stderrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const paneLines = 12

type interactiveModel struct {
	child   *child
	mux     *mux.Mux
	events  chan tea.Msg
	argv    []string
	stdout  []string
	stderr  []string
	outView viewport.Model
	errView viewport.Model
	width   int
	err     error
	done    bool
}

// startedMsg carries the spawned child and its multiplexer.
type startedMsg struct {
	child *child
	mux   *mux.Mux
}

// outputMsg carries bytes drained from one child stream.
type outputMsg struct {
	stream string
	data   []byte
}

// doneMsg reports the end of the poll loop.
type doneMsg struct {
	err error
}

func newInteractiveModel(argv []string) *interactiveModel {
	return &interactiveModel{
		argv:    argv,
		events:  make(chan tea.Msg, 16),
		outView: viewport.New(80, paneLines),
		errView: viewport.New(80, paneLines),
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.start
}

// start spawns the child and builds its multiplexer.
func (m *interactiveModel) start() tea.Msg {
	c, err := spawn(m.argv, nil)
	if err != nil {
		return doneMsg{err: err}
	}

	mx, err := mux.New(c.descriptors())
	if err != nil {
		c.close()
		return doneMsg{err: err}
	}

	return startedMsg{child: c, mux: mx}
}

// pollLoop drives the multiplexer to completion, relaying drained data
// through the events channel. The multiplexer stays single-threaded: only
// this command's goroutine touches it.
func (m *interactiveModel) pollLoop() tea.Msg {
	defer close(m.events)
	mx, c := m.mux, m.child
	for !mx.Done() {
		if err := mx.Poll(); err != nil {
			return doneMsg{err: err}
		}
		for _, id := range mx.IDs() {
			b := mx.Buffer(id)
			if b.Len() == 0 {
				continue
			}
			data := append([]byte(nil), b.ReadableView(0)...)
			b.Discard(b.Len())
			m.events <- outputMsg{stream: id, data: data}
		}
	}
	return doneMsg{err: c.cmd.Wait()}
}

// nextEvent relays one message from the poll goroutine into the TUI loop.
func (m *interactiveModel) nextEvent() tea.Msg {
	msg, ok := <-m.events
	if !ok {
		return nil
	}
	return msg
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.child != nil && !m.done {
				m.child.cmd.Process.Kill() //nolint:errcheck
				m.child.close()
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 6 {
			m.outView.Width = msg.Width - 6
			m.errView.Width = msg.Width - 6
		}

	case startedMsg:
		m.child = msg.child
		m.mux = msg.mux
		return m, tea.Batch(m.pollLoop, m.nextEvent)

	case outputMsg:
		lines := strings.Split(strings.TrimRight(string(msg.data), "\n"), "\n")
		if msg.stream == "stderr" {
			m.stderr = append(m.stderr, lines...)
			m.errView.SetContent(stderrStyle.Render(strings.Join(m.stderr, "\n")))
			m.errView.GotoBottom()
		} else {
			m.stdout = append(m.stdout, lines...)
			m.outView.SetContent(stdoutStyle.Render(strings.Join(m.stdout, "\n")))
			m.outView.GotoBottom()
		}
		return m, m.nextEvent

	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.outView, cmd = m.outView.Update(msg)
	cmds = append(cmds, cmd)
	m.errView, cmd = m.errView.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("muxcat: " + strings.Join(m.argv, " ")))
	b.WriteString("\n\n")

	b.WriteString(pane("stdout", m.outView.View(), m.width))
	b.WriteString("\n")
	b.WriteString(pane("stderr", m.errView.View(), m.width))
	b.WriteString("\n")

	if m.done {
		if m.err != nil {
			b.WriteString(stderrStyle.Render(fmt.Sprintf("exited: %v", m.err)))
		} else {
			b.WriteString(stdoutStyle.Render("exited cleanly"))
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("q: quit"))

	return b.String()
}

func pane(name, body string, width int) string {
	p := paneStyle
	if width > 4 {
		p = p.Width(width - 2)
	}
	return p.Render(name + "\n" + body)
}

func runInteractive(argv []string) error {
	p := tea.NewProgram(newInteractiveModel(argv))
	_, err := p.Run()
	return err
}
