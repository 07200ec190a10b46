package ofss

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies why a configuration was rejected.
type Kind int

const (
	// MissingFile is reported when a referenced OFSS or template file does not exist.
	MissingFile Kind = iota
	// MalformedFile is reported when a file cannot be parsed as an OFSS document.
	MalformedFile
	// MissingSetting is reported when a required key is absent.
	MissingSetting
	// UnsupportedValue is reported when a value is outside of the supported set.
	UnsupportedValue
	// StructuralViolation is reported for numbering gaps and exceeded count ceilings.
	StructuralViolation
	// ExternalCommandFailure is reported when a vendor tool exits non-zero.
	ExternalCommandFailure
)

func (k Kind) String() string {
	switch k {
	case MissingFile:
		return "missing file"
	case MalformedFile:
		return "malformed file"
	case MissingSetting:
		return "missing setting"
	case UnsupportedValue:
		return "unsupported value"
	case StructuralViolation:
		return "structural violation"
	case ExternalCommandFailure:
		return "external command failure"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the error type returned by every stage of the configuration pipeline.
type Error struct {
	Kind Kind
	// IP names the IP the error was detected for; empty for loader errors.
	IP  string
	Msg string
}

func (e *Error) Error() string {
	if e.IP == "" {
		return e.Msg
	}
	return fmt.Sprintf("!!%s Config Error!! %s", e.IP, e.Msg)
}

// Errorf creates a new *Error of the given kind.
func Errorf(kind Kind, ip string, format string, a ...interface{}) error {
	return &Error{Kind: kind, IP: ip, Msg: fmt.Sprintf(format, a...)}
}

// KindOf returns the Kind of the *Error wrapped in err.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
