package main

import (
	"fmt"
	"go/types"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

// TypeSource supplies type information for the package a source file
// belongs to.
type TypeSource interface {
	// Path is the import path of the package.
	Path() string

	// Interface returns the complete method set of the named interface,
	// embedded interfaces included.
	Interface(name string) (*types.Interface, error)

	// PackageName reports the declared name of an imported package.
	PackageName(importPath string) (string, bool)
}

// packageTypes loads the package of a source file on first use.
type packageTypes struct {
	source string

	loaded bool
	pkg    *packages.Package
	err    error
}

func newPackageTypes(source string) *packageTypes {
	return &packageTypes{source: source}
}

func (p *packageTypes) load() error {
	if p.loaded {
		return p.err
	}
	p.loaded = true

	abs, err := filepath.Abs(p.source)
	if err != nil {
		p.err = err
		return err
	}
	cfg := &packages.Config{
		Mode:  packages.NeedName | packages.NeedFiles | packages.NeedTypes | packages.NeedImports,
		Dir:   filepath.Dir(abs),
		Tests: strings.HasSuffix(abs, "_test.go"),
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		p.err = fmt.Errorf("load package of %s: %w", p.source, err)
		return p.err
	}

	for _, pkg := range pkgs {
		for _, f := range pkg.GoFiles {
			if f == abs && pkg.Types != nil {
				p.pkg = pkg
				return nil
			}
		}
	}
	p.err = fmt.Errorf("load package of %s: no package contains the file", p.source)
	return p.err
}

func (p *packageTypes) Path() string {
	if p.pkg == nil {
		return ""
	}
	return p.pkg.Types.Path()
}

func (p *packageTypes) Interface(name string) (*types.Interface, error) {
	if err := p.load(); err != nil {
		return nil, err
	}
	obj, ok := p.pkg.Types.Scope().Lookup(name).(*types.TypeName)
	if !ok {
		if len(p.pkg.Errors) > 0 {
			return nil, fmt.Errorf("type %s not found in %s: %v", name, p.pkg.PkgPath, p.pkg.Errors[0])
		}
		return nil, fmt.Errorf("type %s not found in %s", name, p.pkg.PkgPath)
	}
	it, ok := obj.Type().Underlying().(*types.Interface)
	if !ok {
		return nil, fmt.Errorf("%s is not an interface", name)
	}
	return it, nil
}

func (p *packageTypes) PackageName(importPath string) (string, bool) {
	if err := p.load(); err != nil {
		return "", false
	}
	for _, imp := range p.pkg.Types.Imports() {
		if imp.Path() == importPath {
			return imp.Name(), true
		}
	}
	return "", false
}
