package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"go/types"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	markerPrefix  = "intercept:log"
	interceptPath = "github.com/aalemi-dev/logproxy/intercept"
)

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// file is the template input for one generated file.
type file struct {
	Package    string
	Imports    []string
	Interfaces []iface
}

type iface struct {
	Name        string
	ProxyName   string
	Descriptors []string
	Methods     []method
}

type method struct {
	Name        string
	ParamList   string
	ResultList  string
	InvokeLHS   string
	ArgSlice    string
	CallStmt    string
	ResultSlice string
	ErrExpr     string
	ReturnStmt  string
}

type param struct {
	name     string
	typ      string
	variadic bool
}

// Generate parses src and returns the formatted proxy source for the named
// interfaces. ts supplies type information for embedded interfaces declared
// outside src and for imports whose package name differs from their path.
// It is consulted only when needed and may be nil.
func Generate(filename string, src []byte, names []string, ts TypeSource) ([]byte, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no interface names given")
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	g := &generator{
		fset:  fset,
		file:  f,
		specs: interfaceSpecs(f),
		ts:    ts,
		used:  make(map[string]struct{}),
		extra: make(map[string]string),
	}
	out := file{Package: f.Name.Name}

	for _, name := range names {
		spec, ok := g.specs[name]
		if !ok {
			return nil, fmt.Errorf("%s: interface %s not found", filename, name)
		}
		it, err := g.buildInterface(spec)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", filename, name, err)
		}
		out.Interfaces = append(out.Interfaces, it)
	}

	imports, err := g.collectImports()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	out.Imports = imports

	return render(out)
}

type generator struct {
	fset  *token.FileSet
	file  *ast.File
	specs map[string]*ast.TypeSpec
	ts    TypeSource

	// used holds the package qualifiers written in the source signatures.
	used map[string]struct{}
	// extra maps import paths to names for signatures taken from ts.
	extra map[string]string
}

func interfaceSpecs(f *ast.File) map[string]*ast.TypeSpec {
	specs := make(map[string]*ast.TypeSpec)
	ast.Inspect(f, func(n ast.Node) bool {
		ts, ok := n.(*ast.TypeSpec)
		if !ok {
			return true
		}
		if _, ok := ts.Type.(*ast.InterfaceType); ok {
			specs[ts.Name.Name] = ts
		}
		return false
	})
	return specs
}

// buildInterface flattens the method set of spec. Methods declared in the
// file, directly or through embedded interfaces of the same file, keep their
// source form and markers. The rest of the method set comes from ts.
func (g *generator) buildInterface(spec *ast.TypeSpec) (iface, error) {
	if spec.TypeParams != nil {
		return iface{}, fmt.Errorf("generic interfaces are not supported")
	}

	it := iface{
		Name:      spec.Name.Name,
		ProxyName: proxyName(spec.Name.Name),
	}
	seen := make(map[string]struct{})
	visiting := map[string]bool{spec.Name.Name: true}

	external, err := g.addMethods(&it, spec.Type.(*ast.InterfaceType), seen, visiting)
	if err != nil {
		return iface{}, err
	}
	if len(external) == 0 {
		return it, nil
	}

	if g.ts == nil {
		return iface{}, fmt.Errorf("embedded %s is declared outside this file and no type information is available", strings.Join(external, ", "))
	}
	full, err := g.ts.Interface(spec.Name.Name)
	if err != nil {
		return iface{}, err
	}
	if !full.IsMethodSet() {
		return iface{}, fmt.Errorf("type constraint interfaces are not supported")
	}
	for i := 0; i < full.NumMethods(); i++ {
		fn := full.Method(i)
		if _, ok := seen[fn.Name()]; ok {
			continue
		}
		seen[fn.Name()] = struct{}{}
		m, err := g.methodFromSignature(fn.Name(), fn.Type().(*types.Signature))
		if err != nil {
			return iface{}, fmt.Errorf("method %s: %w", fn.Name(), err)
		}
		it.Methods = append(it.Methods, m)
	}
	return it, nil
}

// addMethods appends the methods of t that the file declares and returns
// the embedded elements it could not resolve from the file alone.
func (g *generator) addMethods(it *iface, t *ast.InterfaceType, seen map[string]struct{}, visiting map[string]bool) ([]string, error) {
	var external []string

	for _, field := range t.Methods.List {
		if len(field.Names) > 0 {
			if err := g.addDeclared(it, field, seen); err != nil {
				return nil, err
			}
			continue
		}

		switch e := field.Type.(type) {
		case *ast.Ident:
			if e.Name == "error" {
				g.addErrorMethod(it, seen)
				continue
			}
			embedded, ok := g.specs[e.Name]
			if !ok {
				external = append(external, e.Name)
				continue
			}
			if embedded.TypeParams != nil {
				return nil, fmt.Errorf("embedded generic interface %s is not supported", e.Name)
			}
			if visiting[e.Name] {
				return nil, fmt.Errorf("interface %s embeds itself", e.Name)
			}
			visiting[e.Name] = true
			ext, err := g.addMethods(it, embedded.Type.(*ast.InterfaceType), seen, visiting)
			delete(visiting, e.Name)
			if err != nil {
				return nil, err
			}
			external = append(external, ext...)
		case *ast.SelectorExpr:
			name, err := exprString(g.fset, e)
			if err != nil {
				return nil, err
			}
			external = append(external, name)
		default:
			name, _ := exprString(g.fset, e)
			return nil, fmt.Errorf("embedded element %s is not supported", name)
		}
	}
	return external, nil
}

func (g *generator) addDeclared(it *iface, field *ast.Field, seen map[string]struct{}) error {
	ft := field.Type.(*ast.FuncType)
	name := field.Names[0].Name
	if _, ok := seen[name]; ok {
		return nil
	}
	seen[name] = struct{}{}

	marked, msg, err := parseMarker(field.Doc)
	if err != nil {
		return fmt.Errorf("method %s: %w", name, err)
	}
	if marked {
		it.Descriptors = append(it.Descriptors, descriptorLiteral(name, msg))
	}

	collectQualifiers(ft, g.used)
	params, err := astParams(g.fset, ft.Params)
	if err != nil {
		return fmt.Errorf("method %s: %w", name, err)
	}
	results, err := astResults(g.fset, ft.Results)
	if err != nil {
		return fmt.Errorf("method %s: %w", name, err)
	}
	it.Methods = append(it.Methods, buildMethod(name, params, results))
	return nil
}

func (g *generator) addErrorMethod(it *iface, seen map[string]struct{}) {
	if _, ok := seen["Error"]; ok {
		return
	}
	seen["Error"] = struct{}{}
	it.Methods = append(it.Methods, buildMethod("Error", nil, []string{"string"}))
}

// methodFromSignature builds a method whose signature is only known from
// type information. Packages other than the generated one are qualified by
// their declared name, or by the file's alias when it imports them.
func (g *generator) methodFromSignature(name string, sig *types.Signature) (method, error) {
	if sig.TypeParams().Len() > 0 {
		return method{}, fmt.Errorf("generic methods are not supported")
	}
	aliases := g.fileAliases()
	self := g.ts.Path()
	qualify := func(p *types.Package) string {
		if p.Path() == self {
			return ""
		}
		qual := p.Name()
		if alias, ok := aliases[p.Path()]; ok {
			qual = alias
		}
		g.extra[p.Path()] = qual
		return qual
	}

	var params []param
	for i := 0; i < sig.Params().Len(); i++ {
		v := sig.Params().At(i)
		typ := v.Type()
		variadic := sig.Variadic() && i == sig.Params().Len()-1
		if variadic {
			if s, ok := typ.(*types.Slice); ok {
				typ = s.Elem()
			}
		}
		params = append(params, param{name: v.Name(), typ: types.TypeString(typ, qualify), variadic: variadic})
	}
	var results []string
	for i := 0; i < sig.Results().Len(); i++ {
		results = append(results, types.TypeString(sig.Results().At(i).Type(), qualify))
	}
	return buildMethod(name, sanitizeParams(params), results), nil
}

// fileAliases maps import paths to their explicit names in the file.
func (g *generator) fileAliases() map[string]string {
	aliases := make(map[string]string)
	for _, spec := range g.file.Imports {
		if spec.Name == nil {
			continue
		}
		if importPath, err := strconv.Unquote(spec.Path.Value); err == nil {
			aliases[importPath] = spec.Name.Name
		}
	}
	return aliases
}

// parseMarker finds an //intercept:log line in doc and returns its optional
// quoted message.
func parseMarker(doc *ast.CommentGroup) (bool, string, error) {
	if doc == nil {
		return false, "", nil
	}
	for _, c := range doc.List {
		text := strings.TrimSpace(strings.TrimPrefix(c.Text, "//"))
		rest, ok := strings.CutPrefix(text, markerPrefix)
		if !ok {
			continue
		}
		if rest == "" {
			return true, "", nil
		}
		if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsSpace(r) {
			continue
		}
		rest = strings.TrimSpace(rest)
		msg, err := strconv.Unquote(rest)
		if err != nil {
			return false, "", fmt.Errorf("invalid %s message %s: want a quoted string", markerPrefix, rest)
		}
		return true, msg, nil
	}
	return false, "", nil
}

func descriptorLiteral(op, msg string) string {
	if msg == "" {
		return fmt.Sprintf("intercept.Descriptor{Operation: %s}", strconv.Quote(op))
	}
	return fmt.Sprintf("intercept.Descriptor{Operation: %s, Message: %s}", strconv.Quote(op), strconv.Quote(msg))
}

func astResults(fset *token.FileSet, list *ast.FieldList) ([]string, error) {
	if list == nil {
		return nil, nil
	}
	var results []string
	for _, field := range list.List {
		typ, err := exprString(fset, field.Type)
		if err != nil {
			return nil, err
		}
		n := len(field.Names)
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			results = append(results, typ)
		}
	}
	return results, nil
}

func buildMethod(name string, params []param, resultTypes []string) method {
	hasError := len(resultTypes) > 0 && resultTypes[len(resultTypes)-1] == "error"
	values := resultTypes
	if hasError {
		values = resultTypes[:len(resultTypes)-1]
	}

	var (
		paramDecls   []string
		argNames     []string
		callArgs     []string
		resultDecls  []string
		resultNames  []string
		returnValues []string
	)
	for _, p := range params {
		argNames = append(argNames, p.name)
		if p.variadic {
			paramDecls = append(paramDecls, p.name+" ..."+p.typ)
			callArgs = append(callArgs, p.name+"...")
			continue
		}
		paramDecls = append(paramDecls, p.name+" "+p.typ)
		callArgs = append(callArgs, p.name)
	}
	for i, typ := range values {
		r := fmt.Sprintf("r%d", i)
		resultDecls = append(resultDecls, r+" "+typ)
		resultNames = append(resultNames, r)
	}
	returnValues = append(returnValues, resultNames...)
	if hasError {
		resultDecls = append(resultDecls, "err error")
		returnValues = append(returnValues, "err")
	}

	m := method{
		Name:        name,
		ParamList:   strings.Join(paramDecls, ", "),
		InvokeLHS:   "_ =",
		ArgSlice:    sliceLiteral(argNames),
		ResultSlice: sliceLiteral(resultNames),
		ErrExpr:     "nil",
	}
	if len(resultDecls) > 0 {
		m.ResultList = " (" + strings.Join(resultDecls, ", ") + ")"
		m.ReturnStmt = "return " + strings.Join(returnValues, ", ")
	}
	if hasError {
		m.InvokeLHS = "err ="
		m.ErrExpr = "err"
	}

	call := fmt.Sprintf("p.target.%s(%s)", name, strings.Join(callArgs, ", "))
	if len(returnValues) > 0 {
		call = strings.Join(returnValues, ", ") + " = " + call
	}
	m.CallStmt = call
	return m
}

func astParams(fset *token.FileSet, list *ast.FieldList) ([]param, error) {
	var params []param
	if list == nil {
		return nil, nil
	}
	for _, field := range list.List {
		typExpr := field.Type
		variadic := false
		if ell, ok := typExpr.(*ast.Ellipsis); ok {
			typExpr = ell.Elt
			variadic = true
		}
		typ, err := exprString(fset, typExpr)
		if err != nil {
			return nil, err
		}
		if len(field.Names) == 0 {
			params = append(params, param{typ: typ, variadic: variadic})
			continue
		}
		for _, n := range field.Names {
			params = append(params, param{name: n.Name, typ: typ, variadic: variadic})
		}
	}
	return sanitizeParams(params), nil
}

// sanitizeParams names every parameter. Blank, missing or reserved names
// are replaced with a<index>.
func sanitizeParams(params []param) []param {
	seen := make(map[string]struct{}, len(params))
	for i := range params {
		name := params[i].name
		if name == "" || name == "_" || reserved(name) {
			name = fmt.Sprintf("a%d", i)
		}
		if _, dup := seen[name]; dup {
			name = fmt.Sprintf("a%d", i)
		}
		seen[name] = struct{}{}
		params[i].name = name
	}
	return params
}

var resultName = regexp.MustCompile(`^r[0-9]+$`)

// reserved names are used by the generated method body.
func reserved(name string) bool {
	return name == "p" || name == "err" || resultName.MatchString(name)
}

func sliceLiteral(names []string) string {
	if len(names) == 0 {
		return "nil"
	}
	return "[]interface{}{" + strings.Join(names, ", ") + "}"
}

func exprString(fset *token.FileSet, expr ast.Expr) (string, error) {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, expr); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// collectQualifiers records the package qualifiers used in a signature.
func collectQualifiers(ft *ast.FuncType, used map[string]struct{}) {
	ast.Inspect(ft, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if id, ok := sel.X.(*ast.Ident); ok {
				used[id.Name] = struct{}{}
			}
		}
		return true
	})
}

type importLine struct {
	path string
	line string
}

// collectImports returns the import lines the generated file needs, plus
// the intercept package, standard library first. Every qualifier used in a
// source signature must match an import of the file; names guessed from the
// path are checked against ts when they do not.
func (g *generator) collectImports() ([]string, error) {
	byName := make(map[string]importLine)
	var guessed []importLine

	for _, spec := range g.file.Imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			return nil, err
		}
		if importPath == interceptPath {
			continue
		}
		il := importLine{path: importPath, line: spec.Path.Value}
		if spec.Name == nil {
			byName[packageName(importPath)] = il
			guessed = append(guessed, il)
			continue
		}
		switch spec.Name.Name {
		case ".":
			return nil, fmt.Errorf("dot import of %s is not supported", importPath)
		case "_":
			continue
		}
		il.line = spec.Name.Name + " " + spec.Path.Value
		byName[spec.Name.Name] = il
	}

	selected := make(map[string]importLine) // by name
	quals := make([]string, 0, len(g.used))
	for q := range g.used {
		quals = append(quals, q)
	}
	sort.Strings(quals)
	for _, q := range quals {
		if il, ok := byName[q]; ok {
			selected[q] = il
			continue
		}
		il, ok := g.declaredImport(q, guessed)
		if !ok {
			return nil, fmt.Errorf("qualifier %s matches no import; give its import an explicit name", q)
		}
		selected[q] = il
	}

	paths := make([]string, 0, len(g.extra))
	for importPath := range g.extra {
		paths = append(paths, importPath)
	}
	sort.Strings(paths)
	for _, importPath := range paths {
		name := g.extra[importPath]
		if il, ok := selected[name]; ok {
			if il.path != importPath {
				return nil, fmt.Errorf("package name %s refers to both %s and %s", name, il.path, importPath)
			}
			continue
		}
		line := strconv.Quote(importPath)
		if name != packageName(importPath) {
			line = name + " " + line
		}
		selected[name] = importLine{path: importPath, line: line}
	}

	var std, other []string
	other = append(other, strconv.Quote(interceptPath))
	for _, il := range selected {
		if isStdlib(il.path) {
			std = append(std, il.line)
		} else {
			other = append(other, il.line)
		}
	}
	sort.Strings(std)
	sort.Strings(other)

	lines := std
	if len(std) > 0 {
		lines = append(lines, "")
	}
	return append(lines, other...), nil
}

// declaredImport finds the unnamed import whose declared package name is q.
func (g *generator) declaredImport(q string, guessed []importLine) (importLine, bool) {
	if g.ts == nil {
		return importLine{}, false
	}
	for _, il := range guessed {
		if name, ok := g.ts.PackageName(il.path); ok && name == q {
			return il, true
		}
	}
	return importLine{}, false
}

// packageName guesses the package name from the import path, skipping
// major version suffixes such as /v2 and .v3. Guesses that no qualifier
// matches are resolved through TypeSource.
func packageName(importPath string) string {
	base := path.Base(importPath)
	if majorVersion.MatchString(base) {
		base = path.Base(path.Dir(importPath))
	}
	if i := strings.Index(base, ".v"); i > 0 && majorVersion.MatchString(base[i+1:]) {
		base = base[:i]
	}
	return strings.ReplaceAll(base, "-", "_")
}

func isStdlib(importPath string) bool {
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}

func proxyName(ifaceName string) string {
	r, size := utf8.DecodeRuneInString(ifaceName)
	return string(unicode.ToLower(r)) + ifaceName[size:] + "Proxy"
}
