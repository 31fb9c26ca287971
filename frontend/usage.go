// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package frontend

import (
	"github.com/gogpu/naga/ir"
)

// globalSet is a set of global variable handles.
type globalSet map[ir.GlobalVariableHandle]struct{}

func (s globalSet) has(h ir.GlobalVariableHandle) bool {
	_, ok := s[h]
	return ok
}

// contains reports whether every member of other is in s.
func (s globalSet) contains(other globalSet) bool {
	for h := range other {
		if !s.has(h) {
			return false
		}
	}
	return true
}

// usage is the part of a module an entry point reaches. Backends drop
// everything else, so only reachable globals are reflected.
type usage struct {
	globals globalSet

	// functions holds the entry function followed by every helper whose
	// global uses are covered by the entry point's.
	functions []*ir.Function
}

func entryUsage(module *ir.Module, entry *ir.EntryPoint) usage {
	u := usage{
		globals:   globalUses(module, &entry.Function),
		functions: []*ir.Function{&entry.Function},
	}
	for i := range module.Functions {
		fn := &module.Functions[i]
		if u.globals.contains(globalUses(module, fn)) {
			u.functions = append(u.functions, fn)
		}
	}
	return u
}

// globalUses returns the globals fn refers to, directly or through the
// functions it calls.
func globalUses(module *ir.Module, fn *ir.Function) globalSet {
	globals := make(globalSet)
	visited := make(map[ir.FunctionHandle]bool)
	var walk func(fn *ir.Function)
	walk = func(fn *ir.Function) {
		for _, expr := range fn.Expressions {
			if gv, ok := expr.Kind.(ir.ExprGlobalVariable); ok {
				globals[gv.Variable] = struct{}{}
			}
		}
		forEachCall(fn.Body, func(h ir.FunctionHandle) {
			if visited[h] || int(h) >= len(module.Functions) {
				return
			}
			visited[h] = true
			walk(&module.Functions[h])
		})
	}
	walk(fn)
	return globals
}

func forEachCall(block ir.Block, visit func(ir.FunctionHandle)) {
	for _, stmt := range block {
		switch k := stmt.Kind.(type) {
		case ir.StmtCall:
			visit(k.Function)
		case ir.StmtIf:
			forEachCall(k.Accept, visit)
			forEachCall(k.Reject, visit)
		case ir.StmtSwitch:
			for _, c := range k.Cases {
				forEachCall(c.Body, visit)
			}
		case ir.StmtLoop:
			forEachCall(k.Body, visit)
			forEachCall(k.Continuing, visit)
		case ir.StmtBlock:
			forEachCall(k.Block, visit)
		}
	}
}
