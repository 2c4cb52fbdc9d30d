package reqrep

import (
	"errors"
	"fmt"

	"github.com/hsiuhsiu/reqrep-go/pkg/reqrep/driver"
)

var (
	// ErrValidation classifies malformed caller input: unknown driver, invalid
	// mode, a mode that cannot exchange.
	ErrValidation = errors.New("reqrep: validation error")

	// ErrConnection classifies failures establishing or tearing down a
	// connection, and use of a null, unknown or closed handle.
	ErrConnection = errors.New("reqrep: connection error")

	// ErrTransport classifies failures sending or receiving on an established
	// connection, including interruption by the caller's context.
	ErrTransport = errors.New("reqrep: transport error")
)

var (
	ErrInvalidHandle    = errors.New("reqrep: invalid handle")
	ErrClosed           = errors.New("reqrep: connection closed")
	ErrUnknownDriver    = errors.New("reqrep: unknown driver")
	ErrBadAddress       = driver.ErrBadAddress
	ErrModeNotSupported = driver.ErrModeNotSupported
	ErrNotBuilt         = driver.ErrNotBuilt
)

// Kind is the class of a surfaced error.
type Kind uint8

const (
	KindValidation Kind = iota + 1
	KindConnection
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConnection:
		return "connection"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindConnection:
		return ErrConnection
	case KindTransport:
		return ErrTransport
	default:
		return nil
	}
}

// Error is returned by every failing operation. Err holds the underlying
// cause; for transport failures its text is the messaging library's own.
type Error struct {
	Kind Kind
	Op   string // open, exchange, close
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("reqrep.%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match the class sentinels.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func newError(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func validationErr(op string, err error) error { return newError(KindValidation, op, err) }
func connectionErr(op string, err error) error { return newError(KindConnection, op, err) }
func transportErr(op string, err error) error  { return newError(KindTransport, op, err) }
