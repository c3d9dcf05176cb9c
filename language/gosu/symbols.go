package gosu

import (
	"fmt"
	"io"
	"strings"

	"github.com/dop251/goja"
)

// symbolTable is one goja runtime; its global object is the scope a
// program runs in. Tables are never shared between evaluations.
type symbolTable struct {
	vm *goja.Runtime
}

func newSymbolTable(out io.Writer) *symbolTable {
	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))
	_ = vm.Set("print", func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
		return goja.Undefined()
	})
	return &symbolTable{vm: vm}
}

// Lookup returns the exported value of a global binding.
func (t *symbolTable) Lookup(name string) (any, bool) {
	v := t.vm.GlobalObject().Get(name)
	if v == nil {
		return nil, false
	}
	return export(v), true
}

// export converts a goja value to Go; undefined and null become nil.
func export(v goja.Value) any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	return v.Export()
}
