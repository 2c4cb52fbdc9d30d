package reqrep

import "github.com/hsiuhsiu/reqrep-go/pkg/reqrep/driver"

// Mode selects the socket pattern. Codes match libzmq socket types.
type Mode = driver.Mode

const (
	ModePair    = driver.ModePair
	ModeRequest = driver.ModeRequest
	ModeReply   = driver.ModeReply
	ModeDealer  = driver.ModeDealer
	ModeRouter  = driver.ModeRouter
)

// ParseMode accepts a mode name ("req", "pair", ...) or its integer code.
func ParseMode(s string) (Mode, error) {
	m, err := driver.ParseMode(s)
	if err != nil {
		return 0, validationErr("parse_mode", err)
	}
	return m, nil
}
