package internalcheck

import (
	"fmt"
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// Handles are plain integers; no memory address may cross the public API.
func TestPublicAPIHasNoRawPointers(t *testing.T) {
	cfg := &packages.Config{Mode: packages.NeedTypes | packages.NeedName}

	pkgs, err := packages.Load(cfg,
		"github.com/hsiuhsiu/reqrep-go/pkg/reqrep",
		"github.com/hsiuhsiu/reqrep-go/pkg/reqrep/driver",
	)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	var findings []string
	for _, pkg := range pkgs {
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			obj := scope.Lookup(name)
			if !obj.Exported() {
				continue
			}
			check := func(where string, typ types.Type) {
				if hasRawPointer(typ, map[types.Type]bool{}) {
					findings = append(findings, fmt.Sprintf("%s.%s: %s exposes a raw pointer", pkg.PkgPath, name, where))
				}
			}
			switch o := obj.(type) {
			case *types.Func:
				check("signature", o.Type())
			case *types.TypeName:
				named, ok := o.Type().(*types.Named)
				if !ok {
					continue
				}
				check("underlying type", named.Underlying())
				for i := 0; i < named.NumMethods(); i++ {
					if m := named.Method(i); m.Exported() {
						check("method "+m.Name(), m.Type())
					}
				}
			case *types.Var:
				check("variable", o.Type())
			}
		}
	}

	if len(findings) > 0 {
		t.Fatalf("opaque handle policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

// hasRawPointer reports unsafe.Pointer or uintptr reachable through exported
// structure. Named types from other packages are not descended into.
func hasRawPointer(typ types.Type, seen map[types.Type]bool) bool {
	if seen[typ] {
		return false
	}
	seen[typ] = true

	switch tt := typ.(type) {
	case *types.Basic:
		return tt.Kind() == types.UnsafePointer || tt.Kind() == types.Uintptr
	case *types.Pointer:
		return hasRawPointer(tt.Elem(), seen)
	case *types.Slice:
		return hasRawPointer(tt.Elem(), seen)
	case *types.Array:
		return hasRawPointer(tt.Elem(), seen)
	case *types.Map:
		return hasRawPointer(tt.Key(), seen) || hasRawPointer(tt.Elem(), seen)
	case *types.Chan:
		return hasRawPointer(tt.Elem(), seen)
	case *types.Signature:
		return hasRawPointer(tt.Params(), seen) || hasRawPointer(tt.Results(), seen)
	case *types.Tuple:
		for i := 0; i < tt.Len(); i++ {
			if hasRawPointer(tt.At(i).Type(), seen) {
				return true
			}
		}
	case *types.Struct:
		for i := 0; i < tt.NumFields(); i++ {
			if f := tt.Field(i); f.Exported() && hasRawPointer(f.Type(), seen) {
				return true
			}
		}
	case *types.Named:
		if tt.Obj().Pkg() != nil && strings.HasPrefix(tt.Obj().Pkg().Path(), "github.com/hsiuhsiu/reqrep-go/") {
			return hasRawPointer(tt.Underlying(), seen)
		}
	case *types.Alias:
		return hasRawPointer(types.Unalias(tt), seen)
	}
	return false
}
