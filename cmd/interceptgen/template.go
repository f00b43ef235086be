package main

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"
)

var proxyTemplate = template.Must(template.New("proxy").Parse(`// Code generated by interceptgen. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	{{.}}
{{- end}}
)

func init() {
{{- range .Interfaces}}
	intercept.RegisterProxy[{{.Name}}](func(target {{.Name}}, inv *intercept.Interceptor) {{.Name}} {
		return &{{.ProxyName}}{target: target, inv: inv}
	})
{{- if .Descriptors}}
	intercept.MustDescribe[{{.Name}}](
{{- range .Descriptors}}
		{{.}},
{{- end}}
	)
{{- end}}
{{- end}}
}
{{range .Interfaces}}{{$iface := .}}
// {{.ProxyName}} forwards {{.Name}} calls through an intercept.Interceptor.
type {{.ProxyName}} struct {
	target {{.Name}}
	inv    *intercept.Interceptor
}
{{range .Methods}}
func (p *{{$iface.ProxyName}}) {{.Name}}({{.ParamList}}){{.ResultList}} {
	{{.InvokeLHS}} p.inv.Invoke({{printf "%q" .Name}}, {{.ArgSlice}}, func() ([]interface{}, error) {
		{{.CallStmt}}
		return {{.ResultSlice}}, {{.ErrExpr}}
	})
{{- if .ReturnStmt}}
	{{.ReturnStmt}}
{{- end}}
}
{{end}}{{end}}`))

func render(f file) ([]byte, error) {
	var buf bytes.Buffer
	if err := proxyTemplate.Execute(&buf, f); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	code, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w\n%s", err, buf.Bytes())
	}
	return code, nil
}
