package services

import (
	"strings"

	"dispatch/internal/pkg/errs"
)

// Side identifies which half of the delivery area a point belongs to,
// split by the initial compass bearing from the depot.
type Side string

const (
	// SideUnknown marks points that cannot be classified (no coordinates).
	SideUnknown Side = "unknown"
	// SideA covers bearings in [0, 180): the east-bound half.
	SideA Side = "A"
	// SideB covers bearings in [180, 360): the west-bound half.
	SideB Side = "B"
)

// ParseSide parses a caller-supplied side token. An empty token parses to
// an empty Side, meaning "no side restriction". Matching is case-insensitive.
func ParseSide(token string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "":
		return "", nil
	case "A":
		return SideA, nil
	case "B":
		return SideB, nil
	default:
		return "", errs.NewValueIsInvalidError("side")
	}
}

// Label returns a human-readable description of the side for display.
func (s Side) Label() string {
	switch s {
	case SideA:
		return "Side A (east-bound)"
	case SideB:
		return "Side B (west-bound)"
	default:
		return "no coordinates"
	}
}
