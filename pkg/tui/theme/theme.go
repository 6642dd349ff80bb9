package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Panel  PanelTheme
	Footer FooterTheme
	Timer  TimerTheme
	Modal  ModalTheme
}

// PanelTheme styles the four quadrant frames and their content.
type PanelTheme struct {
	Frame        lipgloss.Style
	FocusedFrame lipgloss.Style
	Title        lipgloss.Style
	Body         lipgloss.Style
	Faint        lipgloss.Style
	Selected     lipgloss.Style
	Marker       lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// TimerTheme styles the countdown clock and progress gauge.
type TimerTheme struct {
	Clock      lipgloss.Style
	Phase      lipgloss.Style
	Break      lipgloss.Style
	GaugeFrom  string
	GaugeTo    string
	GaugeEmpty lipgloss.Style
}

// ModalTheme styles centered overlays (help, add input).
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Default returns a plain theme that leans on the terminal palette.
func Default() Theme {
	return Theme{
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1),
			FocusedFrame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("212")).
				Padding(0, 1),
			Title:    lipgloss.NewStyle().Bold(true),
			Body:     lipgloss.NewStyle(),
			Faint:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Selected: lipgloss.NewStyle().Reverse(true),
			Marker:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Timer: TimerTheme{
			Clock:      lipgloss.NewStyle().Bold(true),
			Phase:      lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			Break:      lipgloss.NewStyle().Foreground(lipgloss.Color("84")),
			GaugeFrom:  "#ff79c6",
			GaugeTo:    "#bd93f9",
			GaugeEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
	}
}

// Dracula overrides the default palette with Dracula colors.
func Dracula() Theme {
	th := Default()

	purple := lipgloss.Color("#bd93f9")
	pink := lipgloss.Color("#ff79c6")
	green := lipgloss.Color("#50fa7b")
	comment := lipgloss.Color("#6272a4")
	fg := lipgloss.Color("#f8f8f2")
	red := lipgloss.Color("#ff5555")

	th.Panel.Frame = th.Panel.Frame.BorderForeground(comment)
	th.Panel.FocusedFrame = th.Panel.FocusedFrame.BorderForeground(purple)
	th.Panel.Title = th.Panel.Title.Foreground(purple)
	th.Panel.Body = th.Panel.Body.Foreground(fg)
	th.Panel.Faint = th.Panel.Faint.Foreground(comment)
	th.Panel.Marker = th.Panel.Marker.Foreground(pink)

	th.Footer.Help = th.Footer.Help.Foreground(comment)
	th.Footer.Status = th.Footer.Status.Foreground(comment)
	th.Footer.Error = th.Footer.Error.Foreground(red)

	th.Timer.Clock = th.Timer.Clock.Foreground(fg)
	th.Timer.Phase = th.Timer.Phase.Foreground(pink)
	th.Timer.Break = th.Timer.Break.Foreground(green)
	th.Timer.GaugeEmpty = th.Timer.GaugeEmpty.Foreground(comment)

	return th
}

// Gauge renders a progress bar with a color gradient across the filled cells.
func (t TimerTheme) Gauge(width int, ratio float64) string {
	if width < 2 {
		width = 2
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	from, errFrom := colorful.Hex(t.GaugeFrom)
	to, errTo := colorful.Hex(t.GaugeTo)
	plain := errFrom != nil || errTo != nil

	filled := int(ratio * float64(width))
	out := ""
	for i := 0; i < filled; i++ {
		if plain {
			out += "█"
			continue
		}
		step := 0.0
		if width > 1 {
			step = float64(i) / float64(width-1)
		}
		c := from.BlendLuv(to, step)
		out += lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("█")
	}
	for i := filled; i < width; i++ {
		out += t.GaugeEmpty.Render("░")
	}
	return out
}
