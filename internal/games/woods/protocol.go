package woods

import (
	"fmt"

	"github.com/vovakirdan/tui-woods/internal/config"
)

// Protocol selects how an actor picks its next direction while wandering.
type Protocol int

const (
	// RandomStep draws one of the four directions uniformly.
	RandomStep Protocol = iota
	// AlternatingAxis alternates between a vertical and a horizontal draw.
	AlternatingAxis
)

// String returns the configuration name of the protocol.
func (p Protocol) String() string {
	switch p {
	case RandomStep:
		return config.ProtocolRandom
	case AlternatingAxis:
		return config.ProtocolEveryOther
	default:
		return "unknown"
	}
}

// Label returns the display name of the protocol.
func (p Protocol) Label() string {
	switch p {
	case RandomStep:
		return "Random"
	case AlternatingAxis:
		return "Every Other"
	default:
		return "Unknown"
	}
}

// ParseProtocol converts a configuration name into a Protocol.
func ParseProtocol(name string) (Protocol, error) {
	switch name {
	case config.ProtocolRandom:
		return RandomStep, nil
	case config.ProtocolEveryOther:
		return AlternatingAxis, nil
	}
	return RandomStep, fmt.Errorf("woods: unknown wandering protocol %q", name)
}

// Direction is a single-axis heading on the board. Up is toward y = 0.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

// Vertical reports whether d moves along the y axis.
func (d Direction) Vertical() bool {
	return d == DirUp || d == DirDown
}

// Sign returns -1 for up/left, +1 for down/right and 0 otherwise.
func (d Direction) Sign() float64 {
	switch d {
	case DirUp, DirLeft:
		return -1
	case DirDown, DirRight:
		return 1
	default:
		return 0
	}
}
