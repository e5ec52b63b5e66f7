package segsim

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"periph.io/x/conn/v3/physic"
)

// refreshInterval paces the terminal redraws. 20 frames per second is
// plenty for a readout that changes once a second.
const refreshInterval = 50 * time.Millisecond

// potStep is how far one keypress moves the simulated wiper.
const potStep = 50 * physic.MilliVolt

// pressHold is how long the reset key keeps its button down, past the
// debounce lockout so the poll loop cannot miss the press.
const pressHold = 250 * time.Millisecond

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3)
	ledStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// refreshMsg asks the model for a fresh snapshot of the register.
type refreshMsg time.Time

// releaseMsg ends the momentary press started by the reset key.
type releaseMsg struct{ pin *ButtonPin }

// Model is the Bubble Tea front end for the simulated board. The render
// loop runs in its own goroutine against the Register; the model only
// snapshots the latched digits and pokes the control pins.
type Model struct {
	reg   *Register
	reset *ButtonPin
	mode  *ButtonPin
	pot   *PotPin

	digits [4]byte
	modeOn bool
	potV   physic.ElectricPotential
}

// NewModel wires the front end to the simulated parts.
func NewModel(reg *Register, reset, mode *ButtonPin, pot *PotPin) Model {
	m := Model{reg: reg, reset: reset, mode: mode, pot: pot}
	m.digits = reg.Digits()
	if s, err := pot.Read(); err == nil {
		m.potV = s.V
	}
	return m
}

func refreshTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return refreshTick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		m.digits = m.reg.Digits()
		return m, refreshTick()

	case releaseMsg:
		msg.pin.Release()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.reset.Press()
			reset := m.reset
			return m, tea.Tick(pressHold, func(time.Time) tea.Msg {
				return releaseMsg{pin: reset}
			})
		case "v":
			m.modeOn = m.mode.Toggle()
			return m, nil
		case "up", "k":
			m.potV = m.pot.Nudge(potStep)
			return m, nil
		case "down", "j":
			m.potV = m.pot.Nudge(-potStep)
			return m, nil
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	mode := "time"
	if m.modeOn {
		mode = "voltage"
	}

	display := panelStyle.Render(ledStyle.Render(Art(m.digits)))
	status := labelStyle.Render(fmt.Sprintf("pot %s • mode %s", m.potV, mode))
	help := labelStyle.Render("r reset • v voltage • up/down pot • q quit")

	return display + "\n" + status + "\n" + help + "\n"
}
