// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package nim

import (
	"fmt"

	"github.com/gogpu/shdc/internal/align"
	"github.com/gogpu/shdc/refl"
)

// blockAlign is the std140 alignment of a uniform block and of its size.
const blockAlign = 16

type fieldKind uint8

const (
	fieldPad fieldKind = iota
	fieldUniform
	fieldInvalid
)

// field is one member of a rendered uniform block object.
type field struct {
	kind   fieldKind
	name   string
	typ    string
	offset int
	size   int
}

// layoutBlock computes the object fields of a uniform block. The returned
// fields are contiguous: each field starts where the previous one ends, and
// the last one ends on a multiple of 16 bytes.
func layoutBlock(ub *refl.UniformBlock, inp *refl.Input) []field {
	if ub.Flattened {
		return []field{flattenedField(ub)}
	}

	var fields []field
	cur := 0
	for _, u := range ub.Uniforms {
		if u.Offset > cur {
			fields = append(fields, padField(cur, u.Offset-cur))
			cur = u.Offset
		}
		typ := uniformType(u, inp)
		if typ == "" {
			fields = append(fields, field{kind: fieldInvalid, name: u.Name, offset: cur})
			continue
		}
		f := field{
			kind:   fieldUniform,
			name:   u.Name,
			typ:    typ,
			offset: cur,
			size:   u.Size(),
		}
		fields = append(fields, f)
		cur += f.size
	}

	if end := align.RoundUp(cur, blockAlign); end != cur {
		fields = append(fields, padField(cur, end-cur))
	}
	return fields
}

// flattenedField renders a whole block as one array of 4-component values.
func flattenedField(ub *refl.UniformBlock) field {
	base := refl.UniformFloat4
	if len(ub.Uniforms) > 0 {
		base = flattenedUniformType(ub.Uniforms[0].Type)
	}
	size := align.RoundUp(ub.Size, blockAlign)
	count := size / blockAlign
	typ := nimType(base)
	if count != 1 {
		typ = fmt.Sprintf("array[%d, %s]", count, typ)
	}
	return field{
		kind: fieldUniform,
		name: ub.StructName,
		typ:  typ,
		size: size,
	}
}

func padField(offset, size int) field {
	return field{
		kind:   fieldPad,
		name:   fmt.Sprintf("pad_%d", offset),
		typ:    fmt.Sprintf("array[%d, uint8]", size),
		offset: offset,
		size:   size,
	}
}

// uniformType returns the Nim type of a uniform, preferring the type
// override map. It returns "" if the uniform type has no representation.
func uniformType(u refl.Uniform, inp *refl.Input) string {
	if !u.Type.Valid() {
		return ""
	}
	base, ok := inp.CType(u.Type)
	if !ok {
		base = nimType(u.Type)
	}
	if u.ArrayCount <= 1 {
		return base
	}
	return fmt.Sprintf("array[%d, %s]", u.ArrayCount, base)
}

// writeUniformBlocks writes one packed object per unique uniform block.
func (w *Writer) writeUniformBlocks(r *refl.Reflection) {
	for i := range r.UniqueUniformBlocks {
		ub := &r.UniqueUniformBlocks[i]
		w.writeLine("type %s* {.packed.} = object", w.structName(ub.StructName))
		for idx, f := range layoutBlock(ub, w.inp) {
			w.writeField(f, idx == 0)
		}
		w.writeLine("")
	}
}

func (w *Writer) writeField(f field, first bool) {
	pragma := ""
	if first {
		pragma = " {.align(16).}"
	}
	switch f.kind {
	case fieldPad:
		w.writeLine("    %s%s: %s", f.name, pragma, f.typ)
	case fieldUniform:
		w.writeLine("    %s*%s: %s", Escape(f.name), pragma, f.typ)
	default:
		w.writeLine("    %s", invalidUniformToken)
	}
}
