// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package nim

import (
	"fmt"

	"github.com/gogpu/shdc/internal/casing"
	"github.com/gogpu/shdc/refl"
)

// Identifiers are built as snake_case templates and converted with
// internal/casing, so the same resource always maps to the same name.

func (w *Writer) attrName(snippet, attr string) string {
	return casing.Camel(fmt.Sprintf("ATTR_%s_%s_%s", w.inp.ModPrefix(), snippet, attr))
}

func (w *Writer) slotName(name string) string {
	return casing.Camel(fmt.Sprintf("SLOT_%s_%s", w.inp.ModPrefix(), name))
}

func (w *Writer) structName(name string) string {
	return casing.Pascal(fmt.Sprintf("%s_%s", w.inp.ModPrefix(), name))
}

func (w *Writer) sourceName(snippet string, b refl.Backend) string {
	return casing.Camel(fmt.Sprintf("%s_%s_source_%s", w.inp.ModPrefix(), snippet, b))
}

func (w *Writer) bytecodeName(snippet string, b refl.Backend) string {
	return casing.Camel(fmt.Sprintf("%s_%s_bytecode_%s", w.inp.ModPrefix(), snippet, b))
}

func (w *Writer) descFuncName(program string) string {
	return casing.Camel(fmt.Sprintf("%s_%s_shader_desc", w.inp.ModPrefix(), program))
}

func (w *Writer) shaderLabel(program string) string {
	return casing.Camel(fmt.Sprintf("%s_%s_shader", w.inp.ModPrefix(), program))
}
