package reqrep

import "github.com/hsiuhsiu/reqrep-go/pkg/reqrep/driver"

// Version is the version of this module. Release builds override it with
// -ldflags "-X github.com/hsiuhsiu/reqrep-go/pkg/reqrep.Version=...".
var Version = "v0.1.0-dev"

// DriverVersion reports the library version behind the named driver.
func DriverVersion(name string) (string, error) {
	d, ok := driver.Lookup(name)
	if !ok {
		return "", validationErr("version", ErrUnknownDriver)
	}
	return d.Version(), nil
}

// Drivers lists the registered driver names.
func Drivers() []string { return driver.Drivers() }
