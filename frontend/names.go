// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package frontend

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/shdc/refl"
)

var (
	glslVertexInput = regexp.MustCompile(`(?m)^[ \t]*layout\(location = (\d+)\) in (?:\w+[ \t]+)+(\w+);`)
	glslMember      = regexp.MustCompile(`(?m)^[ \t]*(?:\w+[ \t]+)+(\w+)(?:\[\d+\])*;[ \t\r]*$`)
)

// glslStageSuffix is the stage suffix naga appends to bound globals.
func glslStageSuffix(stage refl.ShaderStage) string {
	if stage == refl.StageFragment {
		return "fs"
	}
	return "vs"
}

// glslNames fills the GLSL names of r from the code naga generated for m.
// GL looks attributes, uniforms and combined samplers up by these names.
func glslNames(m *shaderModule, r *refl.StageReflection, code string, info glsl.TranslationInfo) error {
	inputs := make(map[int]string)
	for _, match := range glslVertexInput.FindAllStringSubmatch(code, -1) {
		loc, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		inputs[loc] = match[2]
	}
	for i := range r.Inputs {
		attr := &r.Inputs[i]
		if !attr.Used() {
			continue
		}
		name, ok := inputs[attr.Slot]
		if !ok {
			return fmt.Errorf("vertex input '%s' (location %d) not found in GLSL output", attr.Name, attr.Slot)
		}
		attr.GLSLName = name
	}

	for i := range r.UniformBlocks {
		if err := glslBlockNames(m, &r.UniformBlocks[i], r.Stage, code); err != nil {
			return err
		}
	}

	for i := range r.ImageSamplers {
		pair := &r.ImageSamplers[i]
		name, ok := combinedSampler(m, pair, info.TextureMappings)
		if !ok {
			return fmt.Errorf("image-sampler pair '%s' has no combined sampler in GLSL output", pair.Name)
		}
		pair.GLSLName = name
	}
	return nil
}

// glslBlockNames resolves the instance, struct and member names naga uses
// for the uniform block ub.
func glslBlockNames(m *shaderModule, ub *refl.UniformBlock, stage refl.ShaderStage, code string) error {
	gv := m.globalByName(ub.InstName)
	if gv == nil || gv.Binding == nil {
		return fmt.Errorf("uniform block '%s' has no binding", ub.StructName)
	}
	inst := fmt.Sprintf("_group_%d_binding_%d_%s", gv.Binding.Group, gv.Binding.Binding, glslStageSuffix(stage))

	decl := regexp.MustCompile(`uniform \w+ \{ (\w+) ` + regexp.QuoteMeta(inst) + `; \};`)
	match := decl.FindStringSubmatch(code)
	if match == nil {
		return fmt.Errorf("uniform block '%s' not found in GLSL output", ub.StructName)
	}
	structName := match[1]

	def := regexp.MustCompile(`(?ms)^struct ` + regexp.QuoteMeta(structName) + ` \{\n(.*?)^\};`)
	body := def.FindStringSubmatch(code)
	if body == nil {
		return fmt.Errorf("struct '%s' not found in GLSL output", structName)
	}
	members := glslMember.FindAllStringSubmatch(body[1], -1)
	if len(members) != len(ub.Uniforms) {
		return fmt.Errorf("struct '%s' has %d members in GLSL output, want %d", structName, len(members), len(ub.Uniforms))
	}

	ub.GLSLInstName = inst
	ub.GLSLStructName = structName
	for i := range ub.Uniforms {
		ub.Uniforms[i].GLSLName = members[i][1]
	}
	return nil
}

// combinedSampler finds the sampler2D naga emitted for pair.
func combinedSampler(m *shaderModule, pair *refl.ImageSampler, mappings map[string]glsl.TextureMapping) (string, bool) {
	img := m.globalByName(pair.ImageName)
	smp := m.globalByName(pair.SamplerName)
	if img == nil || smp == nil || img.Binding == nil || smp.Binding == nil {
		return "", false
	}
	for name, tm := range mappings {
		if tm.TextureBinding == *img.Binding && tm.SamplerBinding != nil && *tm.SamplerBinding == *smp.Binding {
			return name, true
		}
	}
	return "", false
}

var (
	hlslSamplerHeap  = regexp.MustCompile(`(?m)^[ \t]*Sampler(?:Comparison)?State naga(?:Comparison)?SamplerHeap\[\d+\]\s*:\s*register\([^)]*\);\r?\n`)
	hlslSamplerIndex = regexp.MustCompile(`(?m)^[ \t]*StructuredBuffer<uint> nagaGroup\d+SamplerIndexArray\w*\s*:\s*register\([^)]*\);\r?\n`)
	hlslHeapSampler  = regexp.MustCompile(`(?m)^([ \t]*)static const (Sampler(?:Comparison)?State) (\w+) = naga(?:Comparison)?SamplerHeap\[\w+\[(\d+)\]\];`)
)

// d3d11Samplers replaces naga's sampler heap indirection with plain
// register-bound samplers. D3D11 stages have 16 sampler slots, so the
// 2048-entry heap does not compile there.
func d3d11Samplers(code string) string {
	code = hlslSamplerHeap.ReplaceAllString(code, "")
	code = hlslSamplerIndex.ReplaceAllString(code, "")
	return hlslHeapSampler.ReplaceAllString(code, "${1}${2} ${3} : register(s${4});")
}

// boundGlobals returns the globals of m that have a resource binding.
func boundGlobals(m *shaderModule) []ir.GlobalVariable {
	var out []ir.GlobalVariable
	for _, gv := range m.module.GlobalVariables {
		if gv.Binding != nil {
			out = append(out, gv)
		}
	}
	return out
}
