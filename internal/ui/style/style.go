// Package style provides shared UI styling primitives including brand colors,
// icons and the lipgloss styles used by navy's tabular output.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Navy   = lipgloss.Color("#1E3A8A")
	Slate  = lipgloss.Color("#667085")
	Mist   = lipgloss.Color("#F6F7FB")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
	Arrow   = "→"
)

// Table styles.
var (
	Header = lipgloss.NewStyle().Bold(true).Foreground(Navy).Padding(0, 1)
	Cell   = lipgloss.NewStyle().Padding(0, 1)
	Border = lipgloss.NewStyle().Foreground(Slate)
)

// StateColor returns the color used to render a runtime or environment state.
func StateColor(state string) lipgloss.Color {
	switch state {
	case "running", "launched":
		return Green
	case "exited", "dead", "stopped":
		return Red
	case "declared", "created", "paused", "restarting":
		return Yellow
	default:
		return Slate
	}
}

// StateIcon returns the icon that prefixes a state.
func StateIcon(state string) string {
	switch state {
	case "running", "launched":
		return Dot
	default:
		return Circle
	}
}
