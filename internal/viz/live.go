package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sphlab/internal/sph"
)

const (
	canvasWidth     = 60
	canvasHeight    = 24
	historyCapacity = 600
)

// Frame is one rendered state pushed from the run loop to the monitor.
// Points must be a copy; the run loop keeps mutating the live arrays.
type Frame struct {
	Time     float64
	Step     int
	Substeps int
	Energy   float64
	MaxSpeed float64
	Points   []sph.Vec2
}

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(38)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Live is a Bubble Tea model showing a running case: the particle cloud
// on the left, run statistics and an energy history on the right.
//
// Frames arrive through a channel the run loop sends on. Pausing stops
// draining the channel, which blocks the run until the monitor resumes;
// quitting cancels the run context.
type Live struct {
	frames <-chan Frame
	cancel func()
	title  string
	bounds sph.Region

	canvas     *Canvas
	last       Frame
	haveFrame  bool
	energyHist []float64
	paused     bool
	done       bool
}

func NewLive(frames <-chan Frame, bounds sph.Region, title string, cancel func()) *Live {
	return &Live{
		frames: frames,
		cancel: cancel,
		title:  title,
		bounds: bounds,
		canvas: NewCanvas(canvasWidth, canvasHeight),
	}
}

// Run blocks until the user quits the monitor.
func (l *Live) Run() error {
	_, err := tea.NewProgram(l).Run()
	return err
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (l *Live) Init() tea.Cmd { return tick() }

func (l *Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			l.cancel()
			return l, tea.Quit
		case " ":
			l.paused = !l.paused
		}
	case TickMsg:
		if !l.paused {
			l.drain()
		}
		return l, tick()
	}
	return l, nil
}

// drain consumes every queued frame and keeps the newest, so the monitor
// never falls behind the run loop.
func (l *Live) drain() {
	for {
		select {
		case f, ok := <-l.frames:
			if !ok {
				l.done = true
				return
			}
			l.last = f
			l.haveFrame = true
			l.energyHist = append(l.energyHist, f.Energy)
			if len(l.energyHist) > historyCapacity {
				l.energyHist = l.energyHist[1:]
			}
		default:
			return
		}
	}
}

func (l *Live) View() string {
	l.canvas.Clear()
	l.canvas.Border()
	if l.haveFrame {
		l.canvas.Scatter(l.last.Points, l.bounds)
	}
	canvasView := canvasStyle.Render(l.canvas.String())

	status := "RUNNING"
	switch {
	case l.done:
		status = "FINISHED (q to close)"
	case l.paused:
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(l.title)) + "\n")
	s.WriteString(status + "\n\n")
	if len(l.energyHist) > 1 {
		chart := asciigraph.Plot(l.energyHist,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3fs", l.last.Time)) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d", l.last.Step)) + "\n")
	s.WriteString(labelStyle.Render("Substeps") + valueStyle.Render(fmt.Sprintf("%d", l.last.Substeps)) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", len(l.last.Points))) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.3e", l.last.Energy)) + "\n")
	s.WriteString(labelStyle.Render("Max speed") + valueStyle.Render(fmt.Sprintf("%.3f", l.last.MaxSpeed)) + "\n")
	s.WriteString(helpStyle.Render("\nSP:Pause Q:Quit"))
	statsView := statsStyle.Render(s.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
