// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package frontend

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/shdc/refl"
)

// hlslSemantic is the semantic naga gives every @location input; the
// location becomes the semantic index.
const hlslSemantic = "LOC"

// shaderModule is a vs or fs snippet compiled to naga IR.
type shaderModule struct {
	snippetIndex int
	source       string
	module       *ir.Module
	entry        ir.EntryPoint
	usage        usage
}

// compileSnippet parses, lowers and validates one shader snippet and picks
// the entry point of the snippet's stage.
func compileSnippet(inp *refl.Input, index int) (*shaderModule, error) {
	snippet := &inp.Snippets[index]
	source := snippet.Source()
	fail := func(format string, args ...any) error {
		msg := fmt.Sprintf(format, args...)
		return refl.Errorf(refl.ErrReflection, inp.BasePath, snippet.Line, "%s '%s': %s", snippet.Kind, snippet.Name, msg)
	}

	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fail("%v", err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fail("%v", err)
	}
	errs, err := naga.Validate(module)
	if err != nil {
		return nil, fail("%v", err)
	}
	if len(errs) > 0 {
		return nil, fail("%v", &errs[0])
	}

	stage := ir.StageVertex
	if snippet.Kind == refl.SnippetFS {
		stage = ir.StageFragment
	}
	var entries []ir.EntryPoint
	for _, ep := range module.EntryPoints {
		if ep.Stage == stage {
			entries = append(entries, ep)
		}
	}
	switch len(entries) {
	case 0:
		return nil, fail("no %s entry point", snippet.Kind.Stage())
	case 1:
	default:
		return nil, fail("more than one %s entry point", snippet.Kind.Stage())
	}

	m := &shaderModule{
		snippetIndex: index,
		source:       source,
		module:       module,
		entry:        entries[0],
	}
	m.usage = entryUsage(module, &m.entry)
	return m, nil
}

// globalByName returns the first global called name.
func (m *shaderModule) globalByName(name string) *ir.GlobalVariable {
	for i := range m.module.GlobalVariables {
		if m.module.GlobalVariables[i].Name == name {
			return &m.module.GlobalVariables[i]
		}
	}
	return nil
}

// reflectStage extracts the stage interface of m. Every bound global the
// entry point reaches is reflected; the binding number becomes the slot
// within its category.
func reflectStage(m *shaderModule, stage refl.ShaderStage) (refl.StageReflection, error) {
	r := refl.StageReflection{
		Stage:      stage,
		EntryPoint: m.entry.Name,
	}
	if stage == refl.StageVertex {
		r.Inputs = vertexInputs(m.module, &m.entry.Function)
	}

	for h, gv := range m.module.GlobalVariables {
		if gv.Binding == nil || !m.usage.globals.has(ir.GlobalVariableHandle(h)) {
			continue
		}
		slot := int(gv.Binding.Binding)
		switch inner := m.module.Types[gv.Type].Inner.(type) {
		case ir.StructType:
			if gv.Space != ir.SpaceUniform {
				continue
			}
			ub, err := uniformBlock(m.module, gv, inner)
			if err != nil {
				return r, err
			}
			ub.Slot = slot
			r.UniformBlocks = append(r.UniformBlocks, ub)
		case ir.ImageType:
			r.Images = append(r.Images, refl.Image{
				Name:         gv.Name,
				Slot:         slot,
				Type:         imageType(inner),
				SampleType:   imageSampleType(inner),
				Multisampled: inner.Multisampled,
			})
		case ir.SamplerType:
			typ := refl.SamplerTypeFiltering
			if inner.Comparison {
				typ = refl.SamplerTypeComparison
			}
			r.Samplers = append(r.Samplers, refl.Sampler{Name: gv.Name, Slot: slot, Type: typ})
		}
	}

	r.ImageSamplers = imageSamplerPairs(m.module, m.usage.functions)
	return r, nil
}

// vertexInputs returns the @location inputs of a vertex entry point, either
// direct arguments or members of a struct argument.
func vertexInputs(module *ir.Module, fn *ir.Function) []refl.VertexAttr {
	var attrs []refl.VertexAttr
	add := func(name string, b ir.Binding) {
		if loc, ok := location(b); ok {
			attrs = append(attrs, refl.VertexAttr{
				Name:     name,
				Slot:     loc,
				SemName:  hlslSemantic,
				SemIndex: loc,
			})
		}
	}
	for _, arg := range fn.Arguments {
		if arg.Binding != nil {
			add(arg.Name, *arg.Binding)
			continue
		}
		if st, ok := module.Types[arg.Type].Inner.(ir.StructType); ok {
			for _, member := range st.Members {
				if member.Binding != nil {
					add(member.Name, *member.Binding)
				}
			}
		}
	}
	return attrs
}

func location(b ir.Binding) (int, bool) {
	switch lb := b.(type) {
	case ir.LocationBinding:
		return int(lb.Location), true
	case *ir.LocationBinding:
		return int(lb.Location), true
	default:
		return 0, false
	}
}

// uniformBlock maps a uniform struct to a block. Member offsets and the
// block size come from naga's layout.
func uniformBlock(module *ir.Module, gv ir.GlobalVariable, st ir.StructType) (refl.UniformBlock, error) {
	ub := refl.UniformBlock{
		Size:       int(st.Span),
		StructName: module.Types[gv.Type].Name,
		InstName:   gv.Name,
	}
	for _, member := range st.Members {
		typ, count := uniformType(module, member.Type)
		if typ == refl.UniformInvalid {
			return ub, fmt.Errorf("uniform block '%s': member '%s' has an unsupported type", ub.StructName, member.Name)
		}
		ub.Uniforms = append(ub.Uniforms, refl.Uniform{
			Name:       member.Name,
			Type:       typ,
			ArrayCount: count,
			Offset:     int(member.Offset),
		})
	}
	return ub, nil
}

// uniformType maps a naga type to a uniform type and array count.
func uniformType(module *ir.Module, h ir.TypeHandle) (refl.UniformType, int) {
	switch t := module.Types[h].Inner.(type) {
	case ir.ScalarType:
		return scalarUniform(t, 1), 1
	case ir.VectorType:
		return scalarUniform(t.Scalar, int(t.Size)), 1
	case ir.MatrixType:
		if t.Columns == ir.Vec4 && t.Rows == ir.Vec4 && t.Scalar.Kind == ir.ScalarFloat && t.Scalar.Width == 4 {
			return refl.UniformMat4, 1
		}
	case ir.ArrayType:
		if t.Size.Constant == nil {
			return refl.UniformInvalid, 0
		}
		base, count := uniformType(module, t.Base)
		if count != 1 {
			return refl.UniformInvalid, 0
		}
		return base, int(*t.Size.Constant)
	}
	return refl.UniformInvalid, 0
}

var (
	floatUniforms = [4]refl.UniformType{refl.UniformFloat, refl.UniformFloat2, refl.UniformFloat3, refl.UniformFloat4}
	intUniforms   = [4]refl.UniformType{refl.UniformInt, refl.UniformInt2, refl.UniformInt3, refl.UniformInt4}
)

// scalarUniform maps an n-component vector of s (n == 1 for scalars).
func scalarUniform(s ir.ScalarType, n int) refl.UniformType {
	if s.Width != 4 {
		return refl.UniformInvalid
	}
	if n < 1 || n > 4 {
		return refl.UniformInvalid
	}
	switch s.Kind {
	case ir.ScalarFloat:
		return floatUniforms[n-1]
	case ir.ScalarSint:
		return intUniforms[n-1]
	default:
		return refl.UniformInvalid
	}
}

func imageType(img ir.ImageType) refl.ImageType {
	switch img.Dim {
	case ir.Dim2D:
		if img.Arrayed {
			return refl.ImageTypeArray
		}
		return refl.ImageType2D
	case ir.DimCube:
		if img.Arrayed {
			return refl.ImageTypeInvalid
		}
		return refl.ImageTypeCube
	case ir.Dim3D:
		return refl.ImageType3D
	default:
		return refl.ImageTypeInvalid
	}
}

func imageSampleType(img ir.ImageType) refl.ImageSampleType {
	switch img.Class {
	case ir.ImageClassSampled:
		switch img.SampledKind {
		case ir.ScalarSint:
			return refl.ImageSampleTypeSint
		case ir.ScalarUint:
			return refl.ImageSampleTypeUint
		}
		if img.Multisampled {
			return refl.ImageSampleTypeUnfilterableFloat
		}
		return refl.ImageSampleTypeFloat
	case ir.ImageClassDepth:
		return refl.ImageSampleTypeDepth
	default:
		return refl.ImageSampleTypeInvalid
	}
}

// imageSamplerPairs finds every texture/sampler combination used by a
// textureSample* call in fns. Pairs are named "<image>_<sampler>" and
// numbered in discovery order.
func imageSamplerPairs(module *ir.Module, fns []*ir.Function) []refl.ImageSampler {
	var pairs refl.Registry[refl.ImageSampler]
	for _, fn := range fns {
		for _, expr := range fn.Expressions {
			sample, ok := expr.Kind.(ir.ExprImageSample)
			if !ok {
				continue
			}
			img, ok1 := globalName(module, fn, sample.Image)
			smp, ok2 := globalName(module, fn, sample.Sampler)
			if !ok1 || !ok2 {
				continue
			}
			name := img + "_" + smp
			pairs.Add(name, refl.ImageSampler{
				Name:        name,
				Slot:        pairs.Len(),
				ImageName:   img,
				SamplerName: smp,
			})
		}
	}
	return pairs.Items()
}

// globalName resolves an expression referring to a global variable.
func globalName(module *ir.Module, fn *ir.Function, h ir.ExpressionHandle) (string, bool) {
	if int(h) >= len(fn.Expressions) {
		return "", false
	}
	gv, ok := fn.Expressions[h].Kind.(ir.ExprGlobalVariable)
	if !ok {
		return "", false
	}
	return module.GlobalVariables[gv.Variable].Name, true
}
