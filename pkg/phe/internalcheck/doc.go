// Package internalcheck holds source-policy tests for the phe packages.
//
// The tests load every package under pkg/phe with golang.org/x/tools/go/packages
// and inspect the typed syntax trees. They enforce rules that keep secret
// material out of logs and keep randomness flowing through an owned
// randstate.State:
//
//   - no %x or %X formatting in fmt, log or logrus format calls
//   - no == or != between byte slices, and no bytes.Equal
//   - no imports of math/rand or math/rand/v2
//   - no package-level variables holding a *randstate.State
//
// # Internal Use Only
//
// The package has no exported API. It exists so that `go test ./...` runs the
// policy checks alongside the unit tests.
package internalcheck
