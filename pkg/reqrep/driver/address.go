package driver

import (
	"fmt"
	"strings"
)

// Address is an endpoint of the form scheme://rest, for example
// "tcp://127.0.0.1:5555" or "inproc://echo".
type Address struct {
	Scheme string
	Rest   string
}

func (a Address) String() string { return a.Scheme + "://" + a.Rest }

// ParseAddress splits s into scheme and remainder. Both must be non-empty and
// the string must not contain whitespace.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return Address{}, fmt.Errorf("%w: empty address", ErrBadAddress)
	}
	if strings.ContainsAny(s, " \t\r\n") {
		return Address{}, fmt.Errorf("%w: %q contains whitespace", ErrBadAddress, s)
	}
	scheme, rest, ok := strings.Cut(s, "://")
	if !ok || scheme == "" || rest == "" {
		return Address{}, fmt.Errorf("%w: %q is not scheme://endpoint", ErrBadAddress, s)
	}
	return Address{Scheme: strings.ToLower(scheme), Rest: rest}, nil
}
