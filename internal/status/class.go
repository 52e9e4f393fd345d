// internal/status/class.go
package status

import (
	"fmt"
	"strings"
)

// Class selects the bank array an operation targets.
type Class uint8

const (
	Fault   Class = 0
	Warning Class = 1
	Info    Class = 2
)

// NumClasses is the number of defined classes.
const NumClasses = 3

// Valid reports whether c is one of the defined classes.
func (c Class) Valid() bool {
	return c < NumClasses
}

func (c Class) String() string {
	switch c {
	case Fault:
		return "fault"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return fmt.Sprintf("class(%d)", uint8(c))
	}
}

// ParseClass accepts "fault", "warning" (or "warn") and "info", in any case.
func ParseClass(s string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fault":
		return Fault, nil
	case "warning", "warn":
		return Warning, nil
	case "info":
		return Info, nil
	default:
		return 0, fmt.Errorf("status: unknown class %q", s)
	}
}
