// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package frontend

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/hlsl"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/msl"

	"github.com/gogpu/shdc/internal/logging"
	"github.com/gogpu/shdc/refl"
)

// Compiler turns the shader snippets of an input into per-backend sources
// and reflection data.
type Compiler struct {
	inp     *refl.Input
	log     *slog.Logger
	modules []*shaderModule
	stages  []refl.StageReflection
}

// NewCompiler compiles every vs/fs snippet of inp to naga IR and reflects
// its interface. The reflection does not depend on the backend, so it is
// computed once.
func NewCompiler(inp *refl.Input, log *slog.Logger) (*Compiler, error) {
	log = logging.OrNop(log)
	c := &Compiler{inp: inp, log: log}
	for i := range inp.Snippets {
		snippet := &inp.Snippets[i]
		if !snippet.Kind.IsShader() {
			continue
		}
		m, err := compileSnippet(inp, i)
		if err != nil {
			return nil, err
		}
		stage, err := reflectStage(m, snippet.Kind.Stage())
		if err != nil {
			return nil, refl.Errorf(refl.ErrReflection, inp.BasePath, snippet.Line,
				"%s '%s': %v", snippet.Kind, snippet.Name, err)
		}
		log.Debug("frontend: reflected snippet", "snippet", snippet.Name,
			"entry", m.entry.Name, "uniform_blocks", len(stage.UniformBlocks),
			"images", len(stage.Images), "samplers", len(stage.Samplers))
		c.modules = append(c.modules, m)
		c.stages = append(c.stages, stage)
	}
	return c, nil
}

// Reflect cross-compiles every snippet for backend b. Names that differ in
// the generated code are recorded in the returned stage reflections.
func (c *Compiler) Reflect(b refl.Backend) (*refl.Reflection, error) {
	sources := make([]refl.Source, 0, len(c.modules))
	for i, m := range c.modules {
		snippet := &c.inp.Snippets[m.snippetIndex]
		stage := cloneStage(c.stages[i])
		code, err := crossCompile(m, &stage, b)
		if err != nil {
			return nil, refl.Errorf(refl.ErrReflection, c.inp.BasePath, snippet.Line,
				"%s '%s': %s: %v", snippet.Kind, snippet.Name, b, err)
		}
		sources = append(sources, refl.Source{
			SnippetIndex: m.snippetIndex,
			Code:         code,
			Refl:         stage,
		})
	}
	c.log.Debug("frontend: cross-compiled", "backend", b.String(), "sources", len(sources))
	return refl.NewReflection(b, sources), nil
}

// ReflectAll runs Reflect for every backend in set. Entries of other
// backends stay nil.
func (c *Compiler) ReflectAll(set refl.BackendSet) ([refl.NumBackends]*refl.Reflection, error) {
	var out [refl.NumBackends]*refl.Reflection
	for _, b := range set.Backends() {
		r, err := c.Reflect(b)
		if err != nil {
			return out, err
		}
		out[b] = r
	}
	return out, nil
}

// crossCompile translates m to the language of b. It sets the entry point
// name of r to the one in the generated code.
func crossCompile(m *shaderModule, r *refl.StageReflection, b refl.Backend) (string, error) {
	name := m.entry.Name
	r.EntryPoint = name
	switch {
	case b.IsGLSL():
		opts := glsl.DefaultOptions()
		opts.LangVersion = glslVersion(b)
		opts.EntryPoint = name
		code, info, err := glsl.Compile(m.module, opts)
		if err != nil {
			return "", err
		}
		r.EntryPoint = entryName(info.EntryPointNames, name)
		if err := glslNames(m, r, code, info); err != nil {
			return "", err
		}
		return code, nil

	case b.IsHLSL():
		code, info, err := hlsl.Compile(m.module, hlslOptions(m))
		if err != nil {
			return "", err
		}
		if info != nil {
			r.EntryPoint = entryName(info.EntryPointNames, name)
		}
		return d3d11Samplers(code), nil

	case b.IsMSL():
		opts := msl.DefaultOptions()
		opts.LangVersion = mslVersion(b)
		opts.FakeMissingBindings = true
		opts.PerEntryPointMap = map[string]msl.EntryPointResources{name: mslResources(m)}
		pipeline := msl.PipelineOptions{
			EntryPoint: &msl.EntryPointSelector{Stage: m.entry.Stage, Name: name},
		}
		code, info, err := msl.CompileWithPipeline(m.module, opts, pipeline)
		if err != nil {
			return "", err
		}
		r.EntryPoint = entryName(info.EntryPointNames, name)
		return code, nil

	case b.IsWGSL():
		return m.source, nil
	}
	return "", fmt.Errorf("unsupported backend %s", b)
}

// hlslOptions binds every resource to register <binding> in space 0, the
// only space D3D11 has.
func hlslOptions(m *shaderModule) *hlsl.Options {
	opts := hlsl.DefaultOptions()
	opts.ShaderModel = hlsl.ShaderModel5_0
	opts.EntryPoint = m.entry.Name
	for _, gv := range boundGlobals(m) {
		key := hlsl.ResourceBinding{Group: gv.Binding.Group, Binding: gv.Binding.Binding}
		opts.BindingMap[key] = hlsl.BindTarget{Space: 0, Register: gv.Binding.Binding}
	}
	return opts
}

// mslResources maps every resource to the Metal slot of its @binding.
func mslResources(m *shaderModule) msl.EntryPointResources {
	res := msl.EntryPointResources{Resources: make(map[ir.ResourceBinding]msl.BindTarget)}
	for _, gv := range boundGlobals(m) {
		slot := uint8(gv.Binding.Binding)
		var target msl.BindTarget
		switch m.module.Types[gv.Type].Inner.(type) {
		case ir.ImageType:
			target.Texture = &slot
		case ir.SamplerType:
			target.Sampler = &msl.BindSamplerTarget{Slot: slot}
		default:
			target.Buffer = &slot
		}
		res.Resources[*gv.Binding] = target
	}
	return res
}

// cloneStage copies r so per-backend names do not leak between backends.
func cloneStage(r refl.StageReflection) refl.StageReflection {
	r.Inputs = slices.Clone(r.Inputs)
	r.Images = slices.Clone(r.Images)
	r.Samplers = slices.Clone(r.Samplers)
	r.ImageSamplers = slices.Clone(r.ImageSamplers)
	r.UniformBlocks = slices.Clone(r.UniformBlocks)
	for i := range r.UniformBlocks {
		r.UniformBlocks[i].Uniforms = slices.Clone(r.UniformBlocks[i].Uniforms)
	}
	return r
}

func glslVersion(b refl.Backend) glsl.Version {
	switch b {
	case refl.GLSL430:
		return glsl.Version430
	case refl.GLSL300ES:
		return glsl.VersionES300
	default:
		return glsl.Version410
	}
}

func mslVersion(b refl.Backend) msl.Version {
	if b == refl.MetalMacOS {
		return msl.Version2_1
	}
	return msl.Version2_0
}

func entryName(names map[string]string, name string) string {
	if renamed, ok := names[name]; ok && renamed != "" {
		return renamed
	}
	return name
}
