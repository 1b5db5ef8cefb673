package internalcheck

import (
	"fmt"
	"go/types"
	"strconv"
	"strings"
	"testing"
)

const randStatePath = "github.com/hsiuhsiu/phe-go/pkg/phe/randstate"

// TestNoMathRand keeps non-cryptographic generators out of the library.
func TestNoMathRand(t *testing.T) {
	var findings []string

	for _, pkg := range loadPackages(t) {
		for _, file := range pkg.Syntax {
			for _, imp := range file.Imports {
				path, err := strconv.Unquote(imp.Path.Value)
				if err != nil {
					continue
				}
				if path == "math/rand" || path == "math/rand/v2" {
					pos := pkg.Fset.Position(imp.Pos())
					findings = append(findings, fmt.Sprintf("%s: %s is not a cryptographic source", pos, path))
				}
			}
		}
	}

	if len(findings) > 0 {
		t.Fatalf("randomness policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

// TestNoSharedRandomState rejects package-level random states. Every
// scheme instance owns its state so that seeded runs stay reproducible and
// Close can wipe it.
func TestNoSharedRandomState(t *testing.T) {
	var findings []string

	for _, pkg := range loadPackages(t) {
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			v, ok := scope.Lookup(name).(*types.Var)
			if !ok {
				continue
			}
			if holdsRandState(v.Type()) {
				pos := pkg.Fset.Position(v.Pos())
				findings = append(findings, fmt.Sprintf("%s: package-level %s holds a random state", pos, name))
			}
		}
	}

	if len(findings) > 0 {
		t.Fatalf("randomness policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

func holdsRandState(typ types.Type) bool {
	switch tt := typ.(type) {
	case *types.Pointer:
		return holdsRandState(tt.Elem())
	case *types.Slice:
		return holdsRandState(tt.Elem())
	case *types.Array:
		return holdsRandState(tt.Elem())
	case *types.Map:
		return holdsRandState(tt.Elem())
	case *types.Named:
		obj := tt.Obj()
		return obj.Pkg() != nil && obj.Pkg().Path() == randStatePath && obj.Name() == "State"
	default:
		return false
	}
}
