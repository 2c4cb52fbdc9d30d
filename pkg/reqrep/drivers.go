package reqrep

import (
	// Built-in drivers. zmq registers a stub unless built with cgo and the zmq tag.
	_ "github.com/hsiuhsiu/reqrep-go/pkg/reqrep/driver/sp"
	_ "github.com/hsiuhsiu/reqrep-go/pkg/reqrep/driver/zmq"
)
