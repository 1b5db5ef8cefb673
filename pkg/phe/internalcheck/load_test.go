package internalcheck

import (
	"testing"

	"golang.org/x/tools/go/packages"
)

const pkgPattern = "github.com/hsiuhsiu/phe-go/pkg/phe/..."

// loadPackages loads every phe package with syntax and type information.
// Test files are excluded so fixtures may break the rules they check.
func loadPackages(t *testing.T) []*packages.Package {
	t.Helper()
	cfg := &packages.Config{
		Mode: packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo |
			packages.NeedFiles | packages.NeedName | packages.NeedImports,
	}

	pkgs, err := packages.Load(cfg, pkgPattern)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		t.Fatalf("packages matching %s have errors", pkgPattern)
	}
	if len(pkgs) == 0 {
		t.Fatalf("no packages match %s", pkgPattern)
	}
	return pkgs
}
