// internal/status/errors.go
package status

import "fmt"

// ErrorKind classifies an invalid registry call.
type ErrorKind uint8

const (
	InvalidID   ErrorKind = 0 // unrecognized class
	InvalidBank ErrorKind = 1 // decoded bank >= NumBanks
	InvalidBit  ErrorKind = 2 // decoded bit >= BitsPerBank
	NullPointer ErrorKind = 3 // nil or empty destination
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidID:
		return "invalid id"
	case InvalidBank:
		return "invalid bank"
	case InvalidBit:
		return "invalid bit"
	case NullPointer:
		return "null pointer"
	default:
		return fmt.Sprintf("error(%d)", uint8(k))
	}
}

// ErrorSink receives invalid-call reports.
// It is invoked synchronously from the failing call, outside the critical
// section, and MUST NOT call back into the registry.
type ErrorSink interface {
	ReportError(kind ErrorKind, id ID)
}

// ErrorSinkFunc adapts a function to ErrorSink.
type ErrorSinkFunc func(kind ErrorKind, id ID)

func (f ErrorSinkFunc) ReportError(kind ErrorKind, id ID) {
	f(kind, id)
}

// PanicSink traps on the first report. Use it in debug builds and tests to
// surface integration bugs early; production firmware should log instead.
var PanicSink ErrorSink = ErrorSinkFunc(func(kind ErrorKind, id ID) {
	panic(fmt.Sprintf("status: %s (id=%s)", kind, id))
})
