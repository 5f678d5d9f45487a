package window

import (
	"fmt"
	"strings"
)

// Mode selects which source grids contribute to each window.
type Mode int

const (
	// Horizontal aggregates the first grid only.
	Horizontal Mode = iota
	// Vertical aggregates the second grid only.
	Vertical
	// Both aggregates both grids over their overlapping extent.
	Both
)

func (m Mode) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// AllModes lists every mode in the order a full run reports them.
var AllModes = []Mode{Both, Horizontal, Vertical}

// Title is the human-readable name used in chart titles and summaries.
func (m Mode) Title() string {
	switch m {
	case Horizontal:
		return "Horizontal Only"
	case Vertical:
		return "Vertical Only"
	case Both:
		return "Both"
	default:
		return m.String()
	}
}

func (m Mode) usesA() bool { return m == Horizontal || m == Both }
func (m Mode) usesB() bool { return m == Vertical || m == Both }

// ParseMode parses the textual mode used by flags and config files.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	case "both", "hv":
		return Both, nil
	default:
		return 0, fmt.Errorf("unknown window mode %q (want horizontal, vertical or both)", s)
	}
}
