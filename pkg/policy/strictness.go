package policy

import (
	"fmt"
	"strings"
)

// Strictness controls how requests for coordinates missing from the
// manifest are treated.
type Strictness int

const (
	// Strict rejects every request the manifest does not cover.
	Strict Strictness = iota
	// Loosely warns on unknown coordinates; the warning can be escalated.
	Loosely
	// Loose warns on unknown coordinates and never escalates.
	Loose
)

var strictnessNames = map[Strictness]string{
	Strict:  "strict",
	Loosely: "loosely",
	Loose:   "loose",
}

func (s Strictness) String() string {
	if name, ok := strictnessNames[s]; ok {
		return name
	}
	return fmt.Sprintf("strictness(%d)", int(s))
}

// Escalates reports whether warnings produced at this level may be turned
// into failures by the host.
func (s Strictness) Escalates() bool {
	return s != Loose
}

// ParseStrictness accepts strict, loosely or loose in any case.
func ParseStrictness(s string) (Strictness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return Strict, nil
	case "loosely":
		return Loosely, nil
	case "loose":
		return Loose, nil
	default:
		return Strict, fmt.Errorf("%w: %q (want strict, loosely or loose)", ErrInvalidStrictness, s)
	}
}

func (s Strictness) MarshalText() ([]byte, error) {
	if _, ok := strictnessNames[s]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStrictness, int(s))
	}
	return []byte(s.String()), nil
}

func (s *Strictness) UnmarshalText(text []byte) error {
	v, err := ParseStrictness(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
