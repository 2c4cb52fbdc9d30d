package driver

// View is a read-only window over caller-owned request bytes. It is valid only
// for the duration of the Send call it is passed to; drivers must neither
// retain nor modify the underlying memory.
type View struct {
	b []byte
}

// Borrow wraps b without copying it.
func Borrow(b []byte) View { return View{b: b} }

// Bytes exposes the borrowed memory to a driver.
func (v View) Bytes() []byte { return v.b }

func (v View) Len() int { return len(v.b) }

// Message is an inbound message. Bytes may alias transport memory and stays
// valid until Free is called; Free must be called exactly once.
type Message interface {
	Bytes() []byte
	Free()
}

// Owned adapts a byte slice the driver already copied out of the library.
func Owned(b []byte) Message { return owned(b) }

type owned []byte

func (o owned) Bytes() []byte { return o }

func (owned) Free() {}
