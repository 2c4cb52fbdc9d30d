//go:build !cgo || !zmq

package zmq

import (
	"context"

	"github.com/hsiuhsiu/reqrep-go/pkg/reqrep/driver"
)

// Stub registration for builds without cgo or the zmq tag. The driver is
// listed so callers get ErrNotBuilt instead of an unknown-driver error.

func init() { driver.Register(Driver{}) }

type Driver struct{}

var _ driver.Driver = Driver{}

func (Driver) Name() string { return Name }

func (Driver) Version() string { return "unavailable" }

func (Driver) Schemes() []string { return schemes }

func (Driver) Supports(m driver.Mode) bool { return m.Valid() }

func (Driver) Dial(context.Context, string, driver.Mode, driver.Options) (driver.Socket, error) {
	return nil, driver.ErrNotBuilt
}

func (Driver) Listen(context.Context, string, driver.Mode, driver.Options) (driver.Socket, error) {
	return nil, driver.ErrNotBuilt
}
