package swift

import (
	"github.com/refaktor/swiftgen/ci"
)

// Config holds the names the generated artifacts agree on. It is derived
// from the component interface.
type Config struct {
	// Swift module the wrapper compiles into.
	ModuleName string
	// Clang module declared by the module map, exposing the bridging
	// header to Swift.
	FFIModuleName string
	// Native library the wrapper links against (-l<CdylibName>).
	CdylibName string
}

func NewConfig(ci *ci.Interface) Config {
	ns := ci.Namespace()
	return Config{
		ModuleName:    ns,
		FFIModuleName: ns + "FFI",
		CdylibName:    "uniffi_" + ns,
	}
}
