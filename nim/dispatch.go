// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package nim

import (
	"github.com/gogpu/shdc/internal/align"
	"github.com/gogpu/shdc/refl"
)

// branchIndent is the indentation of statements inside an "of" branch.
const branchIndent = "      "

// dispatchBackends returns the backends of set that get an "of" branch.
// Several backends share one sokol backend value; the first one wins.
func dispatchBackends(set refl.BackendSet) []refl.Backend {
	var out []refl.Backend
	seen := make(map[string]bool)
	for _, b := range set.Backends() {
		sb := b.SokolBackend()
		if seen[sb] {
			continue
		}
		seen[sb] = true
		out = append(out, b)
	}
	return out
}

// writeShaderDescs writes one <program>ShaderDesc proc per program with a
// branch for each backend of branches.
func (w *Writer) writeShaderDescs(branches []refl.Backend, refls *[refl.NumBackends]*refl.Reflection, code *[refl.NumBackends]*refl.Bytecode) {
	for i := range w.inp.Programs {
		prog := &w.inp.Programs[i]
		w.writeLine("proc %s*(backend: sg.Backend): sg.ShaderDesc =", w.descFuncName(prog.Name))
		w.writeLine("  case backend:")

		for _, b := range branches {
			w.writeLine("    of %s:", b.SokolBackend())
			w.indent = branchIndent
			w.writeShaderDescInit(prog, refls[b], code[b], b)
			w.indent = ""
		}
		w.writeLine("    else: discard")
		w.writeLine("")
	}
}

// writeShaderDescInit writes the statements filling sg.ShaderDesc for one
// program and backend.
func (w *Writer) writeShaderDescInit(prog *refl.Program, r *refl.Reflection, code *refl.Bytecode, b refl.Backend) {
	vs := r.SourceByName(w.inp, prog.VS)
	fs := r.SourceByName(w.inp, prog.FS)

	if vs != nil {
		for _, attr := range vs.Refl.Inputs {
			if !attr.Used() {
				continue
			}
			switch {
			case b.IsGLSL():
				w.writeLine("result.attrs[%d].name = \"%s\"", attr.Slot, attr.GLName())
			case b.IsHLSL():
				w.writeLine("result.attrs[%d].semName = \"%s\"", attr.Slot, attr.SemName)
				w.writeLine("result.attrs[%d].semIndex = %d", attr.Slot, attr.SemIndex)
			}
		}
	}

	w.writeStage(refl.StageVertex, prog.VS, vs, code.BlobByName(w.inp, prog.VS), b)
	w.writeStage(refl.StageFragment, prog.FS, fs, code.BlobByName(w.inp, prog.FS), b)
	w.writeLine("result.label = \"%s\"", w.shaderLabel(prog.Name))
}

// writeStage writes the code reference and the resource bindings of one
// stage. Resources are written in slot order.
func (w *Writer) writeStage(stage refl.ShaderStage, snippet string, src *refl.Source, blob *refl.BytecodeBlob, b refl.Backend) {
	if src == nil {
		return
	}
	st := stage.Field()

	if blob != nil {
		w.writeLine("result.%s.bytecode = %s", st, w.bytecodeName(snippet, b))
	} else {
		w.writeLine("result.%s.source = cast[cstring](addr(%s))", st, w.sourceName(snippet, b))
		if target := b.D3D11Target(stage); target != "" {
			w.writeLine("result.%s.d3d11Target = \"%s\"", st, target)
		}
	}
	w.writeLine("result.%s.entry = \"%s\"", st, src.Refl.EntryPoint)

	sr := &src.Refl
	for slot := 0; slot < refl.MaxUniformBlocks; slot++ {
		if ub := sr.UniformBlockBySlot(slot); ub != nil {
			w.writeUniformBlockDesc(st, slot, ub, b)
		}
	}
	for slot := 0; slot < refl.MaxImages; slot++ {
		img := sr.ImageBySlot(slot)
		if img == nil {
			continue
		}
		w.writeLine("result.%s.images[%d].used = true", st, slot)
		w.writeLine("result.%s.images[%d].multisampled = %t", st, slot, img.Multisampled)
		w.writeLine("result.%s.images[%d].imageType = %s", st, slot, sokolImageType(img.Type))
		w.writeLine("result.%s.images[%d].sampleType = %s", st, slot, sokolImageSampleType(img.SampleType))
	}
	for slot := 0; slot < refl.MaxSamplers; slot++ {
		smp := sr.SamplerBySlot(slot)
		if smp == nil {
			continue
		}
		w.writeLine("result.%s.samplers[%d].used = true", st, slot)
		w.writeLine("result.%s.samplers[%d].samplerType = %s", st, slot, sokolSamplerType(smp.Type))
	}
	for slot := 0; slot < refl.MaxImageSamplers; slot++ {
		pair := sr.ImageSamplerBySlot(slot)
		if pair == nil {
			continue
		}
		img := sr.ImageByName(pair.ImageName)
		smp := sr.SamplerByName(pair.SamplerName)
		if img == nil || smp == nil {
			continue
		}
		w.writeLine("result.%s.imageSamplerPairs[%d].used = true", st, slot)
		w.writeLine("result.%s.imageSamplerPairs[%d].imageSlot = %d", st, slot, img.Slot)
		w.writeLine("result.%s.imageSamplerPairs[%d].samplerSlot = %d", st, slot, smp.Slot)
		if b.IsGLSL() {
			w.writeLine("result.%s.imageSamplerPairs[%d].glslName = \"%s\"", st, slot, pair.GLName())
		}
	}
}

// writeUniformBlockDesc writes the size and layout of a uniform block. GLSL
// backends additionally get the uniform names, since they bind uniforms
// individually.
func (w *Writer) writeUniformBlockDesc(st string, slot int, ub *refl.UniformBlock, b refl.Backend) {
	size := align.RoundUp(ub.Size, blockAlign)
	w.writeLine("result.%s.uniformBlocks[%d].size = %d", st, slot, size)
	w.writeLine("result.%s.uniformBlocks[%d].layout = uniformLayoutStd140", st, slot)
	if !b.IsGLSL() || len(ub.Uniforms) == 0 {
		return
	}

	if ub.Flattened {
		flat := flattenedUniformType(ub.Uniforms[0].Type)
		w.writeLine("result.%s.uniformBlocks[%d].uniforms[0].name = \"%s\"", st, slot, ub.GLFlatName())
		w.writeLine("result.%s.uniformBlocks[%d].uniforms[0].type = %s", st, slot, sokolUniformType(flat))
		w.writeLine("result.%s.uniformBlocks[%d].uniforms[0].arrayCount = %d", st, slot, size/blockAlign)
		return
	}
	for j, u := range ub.Uniforms {
		w.writeLine("result.%s.uniformBlocks[%d].uniforms[%d].name = \"%s\"", st, slot, j, ub.GLUniformName(j))
		w.writeLine("result.%s.uniformBlocks[%d].uniforms[%d].type = %s", st, slot, j, sokolUniformType(u.Type))
		w.writeLine("result.%s.uniformBlocks[%d].uniforms[%d].arrayCount = %d", st, slot, j, u.ArrayCount)
	}
}
