// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package nim

import "github.com/gogpu/shdc/refl"

// writeHeader writes the provenance comment, the program overview and the
// imports. r is the reflection of the first enabled backend; when no backend
// is enabled it is nil and the overview only lists the programs.
func (w *Writer) writeHeader(r *refl.Reflection) {
	w.headerWritten = true

	w.writeLine("#")
	w.writeLine("#   #version:%s# (machine generated, don't edit!)", w.options.GenVersion)
	w.writeLine("#")
	w.writeLine("#   Generated by shdc")
	w.writeLine("#")
	w.writeLine("#   Cmdline: %s", w.options.Cmdline)
	w.writeLine("#")
	w.writeLine("#   Overview:")
	w.writeLine("#")
	for i := range w.inp.Programs {
		prog := &w.inp.Programs[i]
		w.writeLine("#       Shader program '%s':", prog.Name)
		w.writeLine("#           Get shader desc: shd.%s(sg.queryBackend())", w.descFuncName(prog.Name))
		w.writeLine("#           Vertex shader: %s", prog.VS)
		if src := r.SourceByName(w.inp, prog.VS); src != nil {
			w.writeLine("#               Attribute slots:")
			for _, attr := range src.Refl.Inputs {
				if attr.Used() {
					w.writeLine("#                   %s = %d", w.attrName(prog.VS, attr.Name), attr.Slot)
				}
			}
			w.writeStageOverview(&src.Refl)
		}
		w.writeLine("#           Fragment shader: %s", prog.FS)
		if src := r.SourceByName(w.inp, prog.FS); src != nil {
			w.writeStageOverview(&src.Refl)
		}
		w.writeLine("#")
	}
	w.writeLine("#")
	w.writeLine("import sokol/gfx as sg")
	for _, header := range w.inp.Headers {
		w.writeLine("%s", header)
	}
	w.writeLine("")
}

// writeStageOverview lists the resources of one stage in the header.
func (w *Writer) writeStageOverview(r *refl.StageReflection) {
	for _, ub := range r.UniformBlocks {
		w.writeLine("#               Uniform block '%s':", ub.StructName)
		w.writeLine("#                   Nim struct: %s", w.structName(ub.StructName))
		w.writeLine("#                   Bind slot: %s = %d", w.slotName(ub.StructName), ub.Slot)
	}
	for _, img := range r.Images {
		w.writeLine("#               Image '%s':", img.Name)
		w.writeLine("#                   Image Type: %s", sokolImageType(img.Type))
		w.writeLine("#                   Sample Type: %s", sokolImageSampleType(img.SampleType))
		w.writeLine("#                   Multisampled: %t", img.Multisampled)
		w.writeLine("#                   Bind slot: %s = %d", w.slotName(img.Name), img.Slot)
	}
	for _, smp := range r.Samplers {
		w.writeLine("#               Sampler '%s':", smp.Name)
		w.writeLine("#                   Type: %s", sokolSamplerType(smp.Type))
		w.writeLine("#                   Bind slot: %s = %d", w.slotName(smp.Name), smp.Slot)
	}
	for _, pair := range r.ImageSamplers {
		w.writeLine("#               Image Sampler Pair '%s':", pair.Name)
		w.writeLine("#                   Image: %s", pair.ImageName)
		w.writeLine("#                   Sampler: %s", pair.SamplerName)
	}
}
