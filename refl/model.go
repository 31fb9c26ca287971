// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package refl

import "strings"

// Per-stage resource limits of the sokol-gfx runtime.
const (
	MaxVertexAttrs   = 16
	MaxUniformBlocks = 4
	MaxUniforms      = 16
	MaxImages        = 12
	MaxSamplers      = 8
	MaxImageSamplers = 12
)

// Snippet is a named piece of shader text from the input file.
type Snippet struct {
	Name string
	Kind SnippetKind

	// Lines holds the snippet text with included blocks already expanded.
	Lines []string

	// Line is the 1-based input line of the snippet's opening tag.
	Line int
}

// Source returns the snippet text as one string with a trailing newline.
func (s *Snippet) Source() string {
	if len(s.Lines) == 0 {
		return ""
	}
	return strings.Join(s.Lines, "\n") + "\n"
}

// Program pairs a vertex and a fragment snippet.
type Program struct {
	Name string
	VS   string
	FS   string
	Line int
}

// Input is the parsed content of one input file.
type Input struct {
	// BasePath is the input path used in error messages.
	BasePath string

	// Module is the optional identifier prefix of all generated names.
	Module string

	// Headers are verbatim lines injected after the sokol import.
	Headers []string

	// CTypes maps logical uniform type names ("vec4", "mat4") to target
	// language type names.
	CTypes map[string]string

	Snippets []Snippet
	Programs []Program
}

// ModPrefix returns "<module>_" or "" when no module name is set.
func (inp *Input) ModPrefix() string {
	if inp.Module == "" {
		return ""
	}
	return inp.Module + "_"
}

// SnippetIndex returns the index of the named snippet, or -1.
func (inp *Input) SnippetIndex(name string) int {
	for i := range inp.Snippets {
		if inp.Snippets[i].Name == name {
			return i
		}
	}
	return -1
}

// FindSnippet returns the named snippet, or nil.
func (inp *Input) FindSnippet(name string) *Snippet {
	if i := inp.SnippetIndex(name); i >= 0 {
		return &inp.Snippets[i]
	}
	return nil
}

// CType returns the override type name for t, if any.
func (inp *Input) CType(t UniformType) (string, bool) {
	name, ok := inp.CTypes[t.String()]
	return name, ok
}

// VertexAttr is a vertex shader input.
type VertexAttr struct {
	Name string

	// Slot is the attribute location, or -1 when the input has none.
	Slot int

	// SemName and SemIndex are the HLSL semantic of the attribute.
	SemName  string
	SemIndex int

	// GLSLName is the input's name in generated GLSL. Empty for other
	// backends.
	GLSLName string
}

// Used reports whether the attribute has a location.
func (a VertexAttr) Used() bool {
	return a.Slot >= 0
}

// GLName returns the name GL looks the attribute up by.
func (a VertexAttr) GLName() string {
	return orName(a.GLSLName, a.Name)
}

// Uniform is a member of a uniform block.
type Uniform struct {
	Name       string
	Type       UniformType
	ArrayCount int

	// Offset is the byte offset inside the block.
	Offset int

	// GLSLName is the member's name in generated GLSL.
	GLSLName string
}

// Size returns the number of bytes the uniform occupies.
func (u Uniform) Size() int {
	return u.Type.ItemSize() * u.ArrayCount
}

// UniformBlock is a uniform buffer bound to a stage.
type UniformBlock struct {
	Slot       int
	Size       int
	StructName string
	InstName   string
	Uniforms   []Uniform

	// GLSLStructName and GLSLInstName are the block's type and instance
	// names in generated GLSL. Empty for other backends.
	GLSLStructName string
	GLSLInstName   string

	// Flattened is set when the block is exposed as a single array of
	// 4-component values instead of one field per uniform.
	Flattened bool
}

// GLUniformName returns the GL name of the i-th member, "<inst>.<member>".
func (ub *UniformBlock) GLUniformName(i int) string {
	u := ub.Uniforms[i]
	return orName(ub.GLSLInstName, ub.InstName) + "." + orName(u.GLSLName, u.Name)
}

// GLFlatName returns the GL name of a flattened block.
func (ub *UniformBlock) GLFlatName() string {
	return orName(ub.GLSLStructName, ub.StructName)
}

func orName(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}

// Image is a texture bound to a stage.
type Image struct {
	Name         string
	Slot         int
	Type         ImageType
	SampleType   ImageSampleType
	Multisampled bool
}

// Sampler is a sampler object bound to a stage.
type Sampler struct {
	Name string
	Slot int
	Type SamplerType
}

// ImageSampler is an image and a sampler used together.
type ImageSampler struct {
	Name        string
	Slot        int
	ImageName   string
	SamplerName string

	// GLSLName is the combined sampler's name in generated GLSL.
	GLSLName string
}

// GLName returns the name of the combined sampler in GL.
func (p ImageSampler) GLName() string {
	return orName(p.GLSLName, p.Name)
}

// StageReflection describes the interface of one compiled shader stage.
type StageReflection struct {
	Stage         ShaderStage
	EntryPoint    string
	Inputs        []VertexAttr
	UniformBlocks []UniformBlock
	Images        []Image
	Samplers      []Sampler
	ImageSamplers []ImageSampler
}

// InputBySlot returns the vertex input at the given location, or nil.
func (r *StageReflection) InputBySlot(slot int) *VertexAttr {
	for i := range r.Inputs {
		if r.Inputs[i].Slot == slot {
			return &r.Inputs[i]
		}
	}
	return nil
}

// UniformBlockBySlot returns the uniform block bound at slot, or nil.
func (r *StageReflection) UniformBlockBySlot(slot int) *UniformBlock {
	for i := range r.UniformBlocks {
		if r.UniformBlocks[i].Slot == slot {
			return &r.UniformBlocks[i]
		}
	}
	return nil
}

// ImageBySlot returns the image bound at slot, or nil.
func (r *StageReflection) ImageBySlot(slot int) *Image {
	for i := range r.Images {
		if r.Images[i].Slot == slot {
			return &r.Images[i]
		}
	}
	return nil
}

// SamplerBySlot returns the sampler bound at slot, or nil.
func (r *StageReflection) SamplerBySlot(slot int) *Sampler {
	for i := range r.Samplers {
		if r.Samplers[i].Slot == slot {
			return &r.Samplers[i]
		}
	}
	return nil
}

// ImageSamplerBySlot returns the image-sampler pair at slot, or nil.
func (r *StageReflection) ImageSamplerBySlot(slot int) *ImageSampler {
	for i := range r.ImageSamplers {
		if r.ImageSamplers[i].Slot == slot {
			return &r.ImageSamplers[i]
		}
	}
	return nil
}

// ImageByName returns the named image, or nil.
func (r *StageReflection) ImageByName(name string) *Image {
	for i := range r.Images {
		if r.Images[i].Name == name {
			return &r.Images[i]
		}
	}
	return nil
}

// SamplerByName returns the named sampler, or nil.
func (r *StageReflection) SamplerByName(name string) *Sampler {
	for i := range r.Samplers {
		if r.Samplers[i].Name == name {
			return &r.Samplers[i]
		}
	}
	return nil
}

// Source is one snippet cross-compiled for one backend.
type Source struct {
	SnippetIndex int
	Code         string
	Refl         StageReflection
}

// Reflection holds every source of one backend and the resources shared
// between them.
type Reflection struct {
	Backend Backend
	Sources []Source

	UniqueUniformBlocks []UniformBlock
	UniqueImages        []Image
	UniqueSamplers      []Sampler
}

// NewReflection builds a Reflection and its deduplicated resource lists.
// A resource declared by several sources is kept in the form of the first
// source that declares it.
func NewReflection(backend Backend, sources []Source) *Reflection {
	var (
		blocks   Registry[UniformBlock]
		images   Registry[Image]
		samplers Registry[Sampler]
	)
	for i := range sources {
		r := &sources[i].Refl
		for _, ub := range r.UniformBlocks {
			blocks.Add(ub.StructName, ub)
		}
		for _, img := range r.Images {
			images.Add(img.Name, img)
		}
		for _, smp := range r.Samplers {
			samplers.Add(smp.Name, smp)
		}
	}
	return &Reflection{
		Backend:             backend,
		Sources:             sources,
		UniqueUniformBlocks: blocks.Items(),
		UniqueImages:        images.Items(),
		UniqueSamplers:      samplers.Items(),
	}
}

// SourceBySnippet returns the source compiled from the given snippet, or nil.
func (r *Reflection) SourceBySnippet(snippetIndex int) *Source {
	if r == nil {
		return nil
	}
	for i := range r.Sources {
		if r.Sources[i].SnippetIndex == snippetIndex {
			return &r.Sources[i]
		}
	}
	return nil
}

// SourceByName returns the source compiled from the named snippet, or nil.
func (r *Reflection) SourceByName(inp *Input, name string) *Source {
	return r.SourceBySnippet(inp.SnippetIndex(name))
}

// BytecodeBlob is a precompiled shader binary.
type BytecodeBlob struct {
	SnippetIndex int
	Data         []byte
}

// Bytecode holds the precompiled binaries of one backend.
type Bytecode struct {
	Blobs []BytecodeBlob
}

// BlobBySnippet returns the binary compiled from the given snippet, or nil.
// It is safe to call on a nil Bytecode.
func (b *Bytecode) BlobBySnippet(snippetIndex int) *BytecodeBlob {
	if b == nil {
		return nil
	}
	for i := range b.Blobs {
		if b.Blobs[i].SnippetIndex == snippetIndex {
			return &b.Blobs[i]
		}
	}
	return nil
}

// BlobByName returns the binary compiled from the named snippet, or nil.
func (b *Bytecode) BlobByName(inp *Input, name string) *BytecodeBlob {
	return b.BlobBySnippet(inp.SnippetIndex(name))
}
