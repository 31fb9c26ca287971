// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package nim

import "github.com/gogpu/shdc/refl"

// writeSlots writes one exported integer constant per vertex attribute,
// image, sampler and uniform block. r must already hold deduplicated
// resources; the constants are written once, from the first enabled backend.
func (w *Writer) writeSlots(r *refl.Reflection) {
	w.writeVertexAttrs(r)

	for _, img := range r.UniqueImages {
		w.writeLine("const %s* = %d", w.slotName(img.Name), img.Slot)
	}
	w.writeLine("")

	for _, smp := range r.UniqueSamplers {
		w.writeLine("const %s* = %d", w.slotName(smp.Name), smp.Slot)
	}
	w.writeLine("")

	for _, ub := range r.UniqueUniformBlocks {
		w.writeLine("const %s* = %d", w.slotName(ub.StructName), ub.Slot)
	}
	w.writeLine("")
}

// writeVertexAttrs writes the attribute location constants of every vertex
// shader. Attributes are scoped by their snippet, so no deduplication is needed.
func (w *Writer) writeVertexAttrs(r *refl.Reflection) {
	for i := range r.Sources {
		src := &r.Sources[i]
		if src.Refl.Stage != refl.StageVertex {
			continue
		}
		snippet := &w.inp.Snippets[src.SnippetIndex]
		for _, attr := range src.Refl.Inputs {
			if attr.Used() {
				w.writeLine("const %s* = %d", w.attrName(snippet.Name, attr.Name), attr.Slot)
			}
		}
	}
	w.writeLine("")
}
