package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Reading is one live measurement for the watch display.
type Reading struct {
	Temperature string  // formatted value, e.g. "24.93"
	Humidity    string  // formatted value, e.g. "22.35"
	HumidityPct float64 // 0.0 - 1.0 for the gauge
	TempC       float64 // numeric value for min/max tracking
}

// Sampler produces one live reading per call. It is invoked from the watch
// loop at the configured interval.
type Sampler func() (Reading, error)

type sampleMsg struct {
	reading Reading
	err     error
}

type tickMsg time.Time

// WatchModel is an interactive live-measurement display. It polls the
// sampler at a fixed interval and shows the current reading, a humidity
// gauge and the session min/max. Quit with q, esc or ctrl+c.
type WatchModel struct {
	title    string
	sampler  Sampler
	interval time.Duration
	gauge    progress.Model
	width    int

	current  Reading
	haveData bool
	minTemp  float64
	maxTemp  float64
	samples  int
	err      error
	quitting bool
}

// NewWatchModel creates a watch display that polls sampler every interval.
func NewWatchModel(title string, sampler Sampler, interval time.Duration) WatchModel {
	width := GetTerminalWidth()
	gauge := progress.New(
		progress.WithGradient("#5FAFFF", "#7D56F4"),
		progress.WithWidth(width-30),
	)
	return WatchModel{
		title:    title,
		sampler:  sampler,
		interval: interval,
		gauge:    gauge,
		width:    width,
	}
}

// Init implements tea.Model
func (m WatchModel) Init() tea.Cmd {
	return m.sample()
}

// sample polls the device off the UI goroutine.
func (m WatchModel) sample() tea.Cmd {
	return func() tea.Msg {
		reading, err := m.sampler()
		return sampleMsg{reading: reading, err: err}
	}
}

func (m WatchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.width > MaxContentWidth {
			m.width = MaxContentWidth
		}
		gaugeWidth := m.width - 30
		if gaugeWidth < 20 {
			gaugeWidth = 20
		}
		m.gauge.Width = gaugeWidth

	case sampleMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.current = msg.reading
		m.samples++
		if !m.haveData || msg.reading.TempC < m.minTemp {
			m.minTemp = msg.reading.TempC
		}
		if !m.haveData || msg.reading.TempC > m.maxTemp {
			m.maxTemp = msg.reading.TempC
		}
		m.haveData = true
		return m, m.tick()

	case tickMsg:
		return m, m.sample()
	}

	return m, nil
}

// Err returns the sampler error that terminated the watch, if any.
func (m WatchModel) Err() error {
	return m.err
}

// View implements tea.Model
func (m WatchModel) View() string {
	if m.quitting || m.err != nil {
		return ""
	}

	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true).
		PaddingLeft(2).
		Render(m.title)
	b.WriteString("\n" + title + "\n\n")

	if !m.haveData {
		b.WriteString(StepPendingStyle.PaddingLeft(2).Render("waiting for first reading..."))
		b.WriteString("\n")
	} else {
		tempLine := fmt.Sprintf("  Temperature  %s °C",
			TempValueStyle.Render(m.current.Temperature))
		b.WriteString(tempLine + "\n\n")

		humLine := fmt.Sprintf("  Humidity     %s %%RH",
			HumidityValueStyle.Render(m.current.Humidity))
		b.WriteString(humLine + "\n")
		b.WriteString("  " + m.gauge.ViewAs(m.current.HumidityPct) + "\n\n")

		stats := fmt.Sprintf("  min %.2f °C   max %.2f °C   %d sample(s)",
			m.minTemp, m.maxTemp, m.samples)
		b.WriteString(StepPendingStyle.Render(stats) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(StepPendingStyle.PaddingLeft(2).Render("press q to quit"))
	b.WriteString("\n")
	return b.String()
}

// RunWatch runs the live-measurement display until the user quits or the
// sampler fails. Returns the sampler error, if any.
func RunWatch(title string, sampler Sampler, interval time.Duration) error {
	model := NewWatchModel(title, sampler, interval)
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(WatchModel); ok {
		return m.Err()
	}
	return nil
}
