package intercept

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

func (in *Interceptor) renderArguments(args []interface{}) []string {
	rendered := make([]string, len(args))
	for i, a := range args {
		if in.cfg.RedactArguments {
			rendered[i] = RedactedPlaceholder
			continue
		}
		rendered[i] = truncate(renderValue(a), in.cfg.MaxValueLength)
	}
	return rendered
}

func joinArguments(rendered []string) string {
	if len(rendered) == 0 {
		return NoArgsPlaceholder
	}
	return strings.Join(rendered, ", ")
}

func (in *Interceptor) renderResults(results []interface{}) string {
	if len(results) == 0 {
		return VoidPlaceholder
	}
	if in.cfg.RedactResults {
		return RedactedPlaceholder
	}
	if len(results) == 1 {
		return truncate(renderValue(results[0]), in.cfg.MaxValueLength)
	}
	rendered := make([]string, len(results))
	for i, r := range results {
		rendered[i] = truncate(renderValue(r), in.cfg.MaxValueLength)
	}
	return "(" + strings.Join(rendered, ", ") + ")"
}

// renderValue is the default textual form of v, with absent values
// rendered as NullPlaceholder.
func renderValue(v interface{}) string {
	if isNil(v) {
		return NullPlaceholder
	}
	return fmt.Sprint(v)
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := 0
	for i := range s {
		if i > max {
			break
		}
		cut = i
	}
	return s[:cut] + "..."
}

// isNil reports whether v is nil or a nil pointer, interface, map, slice,
// func, chan or unsafe pointer. Empty non-nil maps and slices are left to
// fmt.
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// contextFrom returns the first non-nil context.Context argument, or
// context.Background.
func contextFrom(args []interface{}) context.Context {
	for _, a := range args {
		if ctx, ok := a.(context.Context); ok && !isNil(ctx) {
			return ctx
		}
	}
	return context.Background()
}

// className is the concrete type name of target, without pointer
// indirection or package qualifier.
func className(target interface{}) string {
	t := reflect.TypeOf(target)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return strings.TrimPrefix(t.String(), "*")
}
