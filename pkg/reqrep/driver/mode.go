package driver

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects the messaging pattern of a socket. Values are libzmq's socket
// type codes so integer codes from existing callers keep their meaning.
type Mode int

const (
	ModePair    Mode = 0
	ModeRequest Mode = 3
	ModeReply   Mode = 4
	ModeDealer  Mode = 5
	ModeRouter  Mode = 6
)

var modeNames = map[Mode]string{
	ModePair:    "pair",
	ModeRequest: "request",
	ModeReply:   "reply",
	ModeDealer:  "dealer",
	ModeRouter:  "router",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// CanExchange reports whether a socket of this mode may start a
// send-then-receive exchange.
func (m Mode) CanExchange() bool {
	switch m {
	case ModePair, ModeRequest, ModeDealer:
		return true
	default:
		return false
	}
}

// ParseMode accepts a mode name or its decimal code.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "pair":
		return ModePair, nil
	case "req", "request":
		return ModeRequest, nil
	case "rep", "reply":
		return ModeReply, nil
	case "dealer":
		return ModeDealer, nil
	case "router":
		return ModeRouter, nil
	}
	code, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: unknown mode %q", ErrModeNotSupported, s)
	}
	m := Mode(code)
	if !m.Valid() {
		return 0, fmt.Errorf("%w: unknown mode code %d", ErrModeNotSupported, code)
	}
	return m, nil
}
