// Package target holds the single build-time-injected setting that
// selects which assembly dialect cmd/tinycc emits: the Go equivalent of
// the original compiler's TARGET_LINUX/TARGET_CYGWIN/TARGET_MAC/
// TARGET_RASPI/TARGET_AMAC preprocessor macros, which picked a back end at
// compile time rather than at runtime.
//
// Name defaults to "linux" and is overridden with:
//
//	go build -ldflags "-X tinycc.dev/compiler/internal/target.Name=raspi" ./cmd/tinycc
package target

// Name selects the backend.Target and frame.Target pair cmd/tinycc
// builds against. Only "linux" (x86-64) and "raspi" (ARM64) are
// recognized; any other value falls back to "linux".
var Name = "linux"
