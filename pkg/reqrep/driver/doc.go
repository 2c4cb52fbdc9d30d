// Package driver defines the contract between the reqrep facade and a
// messaging library.
//
// A Driver creates Sockets in a given Mode. Requests travel to the driver as a
// View, a borrowed window over caller memory that is valid only for the
// duration of one Send. Replies come back as a Message whose bytes may alias a
// transport buffer until Free is called; the facade copies them into a buffer
// the caller owns before freeing.
//
// Drivers register themselves from an init function:
//
//	func init() { driver.Register(Driver{}) }
//
// The sp subpackage is pure Go and always available. The zmq subpackage links
// libzmq and is only built with cgo and the zmq build tag; otherwise its Dial
// and Listen return ErrNotBuilt.
package driver
