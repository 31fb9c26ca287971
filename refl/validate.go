// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package refl

// Validate checks that the reflection of one backend can be represented by
// the binding emitters. It returns the first problem found as an *Error
// pointing at the offending snippet or program, or nil.
//
// Checks:
//   - every vs/fs snippet has a compiled source
//   - programs name existing snippets of the right kind
//   - uniform types are known, arrays only use vec4/int4/mat4, offsets
//     never overlap and flattened blocks do not mix float and int members
//   - all bind slots are inside the per-stage limits
//   - resource names map to a single slot within the backend
//   - image-sampler pairs name an existing image and sampler
func Validate(inp *Input, r *Reflection, backend Backend) error {
	v := validator{inp: inp, backend: backend}
	if err := v.check(r); err != nil {
		return err
	}
	return nil
}

type validator struct {
	inp     *Input
	backend Backend
}

func (v *validator) errorf(line int, format string, args ...any) *Error {
	return Errorf(ErrValidation, v.inp.BasePath, line, format, args...)
}

func (v *validator) check(r *Reflection) *Error {
	if r == nil {
		return v.errorf(0, "no reflection data for backend %s", v.backend)
	}

	for i := range v.inp.Snippets {
		snippet := &v.inp.Snippets[i]
		if !snippet.Kind.IsShader() {
			continue
		}
		if r.SourceBySnippet(i) == nil {
			return v.errorf(snippet.Line, "no %s source for snippet '%s'", v.backend, snippet.Name)
		}
	}

	for i := range v.inp.Programs {
		if err := v.checkProgram(&v.inp.Programs[i]); err != nil {
			return err
		}
	}

	var (
		blockSlots   = map[string]int{}
		imageSlots   = map[string]int{}
		samplerSlots = map[string]int{}
	)
	for i := range r.Sources {
		src := &r.Sources[i]
		line := 0
		if src.SnippetIndex >= 0 && src.SnippetIndex < len(v.inp.Snippets) {
			line = v.inp.Snippets[src.SnippetIndex].Line
		}
		if err := v.checkStage(&src.Refl, line); err != nil {
			return err
		}
		for _, ub := range src.Refl.UniformBlocks {
			if conflicts(blockSlots, ub.StructName, ub.Slot) {
				return v.errorf(line, "conflicting uniform block definitions found for '%s'", ub.StructName)
			}
		}
		for _, img := range src.Refl.Images {
			if conflicts(imageSlots, img.Name, img.Slot) {
				return v.errorf(line, "conflicting image definitions found for '%s'", img.Name)
			}
		}
		for _, smp := range src.Refl.Samplers {
			if conflicts(samplerSlots, smp.Name, smp.Slot) {
				return v.errorf(line, "conflicting sampler definitions found for '%s'", smp.Name)
			}
		}
	}
	return nil
}

// conflicts records name at slot and reports whether the name was already
// recorded at a different slot.
func conflicts(seen map[string]int, name string, slot int) bool {
	if prev, ok := seen[name]; ok {
		return prev != slot
	}
	seen[name] = slot
	return false
}

func (v *validator) checkProgram(prog *Program) *Error {
	vs := v.inp.FindSnippet(prog.VS)
	if vs == nil {
		return v.errorf(prog.Line, "unknown vertex shader '%s' in program '%s'", prog.VS, prog.Name)
	}
	if vs.Kind != SnippetVS {
		return v.errorf(prog.Line, "'%s' in program '%s' is not a vertex shader", prog.VS, prog.Name)
	}
	fs := v.inp.FindSnippet(prog.FS)
	if fs == nil {
		return v.errorf(prog.Line, "unknown fragment shader '%s' in program '%s'", prog.FS, prog.Name)
	}
	if fs.Kind != SnippetFS {
		return v.errorf(prog.Line, "'%s' in program '%s' is not a fragment shader", prog.FS, prog.Name)
	}
	return nil
}

//nolint:gocognit // one pass over every resource category
func (v *validator) checkStage(r *StageReflection, line int) *Error {
	for _, attr := range r.Inputs {
		if attr.Slot >= MaxVertexAttrs {
			return v.errorf(line, "vertex attribute '%s' uses location %d (max %d)", attr.Name, attr.Slot, MaxVertexAttrs-1)
		}
	}

	for i := range r.UniformBlocks {
		if err := v.checkUniformBlock(&r.UniformBlocks[i], line); err != nil {
			return err
		}
	}

	for _, img := range r.Images {
		if img.Slot < 0 || img.Slot >= MaxImages {
			return v.errorf(line, "image '%s' uses slot %d (max %d)", img.Name, img.Slot, MaxImages-1)
		}
		if img.Type == ImageTypeInvalid {
			return v.errorf(line, "image '%s' has an unsupported dimensionality", img.Name)
		}
		if img.SampleType == ImageSampleTypeInvalid {
			return v.errorf(line, "image '%s' has an unsupported sample type", img.Name)
		}
	}

	for _, smp := range r.Samplers {
		if smp.Slot < 0 || smp.Slot >= MaxSamplers {
			return v.errorf(line, "sampler '%s' uses slot %d (max %d)", smp.Name, smp.Slot, MaxSamplers-1)
		}
		if smp.Type == SamplerTypeInvalid {
			return v.errorf(line, "sampler '%s' has an unsupported type", smp.Name)
		}
	}

	for _, pair := range r.ImageSamplers {
		if pair.Slot < 0 || pair.Slot >= MaxImageSamplers {
			return v.errorf(line, "image-sampler pair '%s' uses slot %d (max %d)", pair.Name, pair.Slot, MaxImageSamplers-1)
		}
		if r.ImageByName(pair.ImageName) == nil {
			return v.errorf(line, "image-sampler pair '%s' references unknown image '%s'", pair.Name, pair.ImageName)
		}
		if r.SamplerByName(pair.SamplerName) == nil {
			return v.errorf(line, "image-sampler pair '%s' references unknown sampler '%s'", pair.Name, pair.SamplerName)
		}
	}
	return nil
}

func (v *validator) checkUniformBlock(ub *UniformBlock, line int) *Error {
	if ub.Slot < 0 || ub.Slot >= MaxUniformBlocks {
		return v.errorf(line, "uniform block '%s' uses slot %d (max %d)", ub.StructName, ub.Slot, MaxUniformBlocks-1)
	}
	if len(ub.Uniforms) > MaxUniforms {
		return v.errorf(line, "uniform block '%s' has %d members (max %d)", ub.StructName, len(ub.Uniforms), MaxUniforms)
	}

	end := 0
	hasFloat, hasInt := false, false
	for _, u := range ub.Uniforms {
		if !u.Type.Valid() {
			return v.errorf(line, "uniform '%s' in block '%s' has an unsupported type", u.Name, ub.StructName)
		}
		if u.ArrayCount < 1 {
			return v.errorf(line, "uniform '%s' in block '%s' has array count %d", u.Name, ub.StructName, u.ArrayCount)
		}
		if u.ArrayCount > 1 && !u.Type.Arrayable() {
			return v.errorf(line, "uniform '%s' in block '%s': arrays are only allowed for vec4, int4 and mat4", u.Name, ub.StructName)
		}
		if u.Offset < end {
			return v.errorf(line, "uniform '%s' in block '%s' overlaps the previous member", u.Name, ub.StructName)
		}
		end = u.Offset + u.Size()
		hasFloat = hasFloat || u.Type.IsFloat()
		hasInt = hasInt || u.Type.IsInt()
	}
	if end > ub.Size {
		return v.errorf(line, "uniform block '%s' members end at byte %d, past the block size %d", ub.StructName, end, ub.Size)
	}
	if ub.Flattened && hasFloat && hasInt {
		return v.errorf(line, "flattened uniform block '%s' mixes float and int members", ub.StructName)
	}
	return nil
}
