// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package refl

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage uint8

const (
	// StageVertex is the vertex shader stage.
	StageVertex ShaderStage = iota

	// StageFragment is the fragment shader stage.
	StageFragment
)

// String returns "vertex" or "fragment".
func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Field returns the short stage name used by sg.ShaderDesc ("vs" or "fs").
func (s ShaderStage) Field() string {
	if s == StageVertex {
		return "vs"
	}
	return "fs"
}

// SnippetKind classifies an input snippet.
type SnippetKind uint8

const (
	// SnippetBlock is reusable text that is included into other snippets.
	SnippetBlock SnippetKind = iota

	// SnippetVS is a vertex shader.
	SnippetVS

	// SnippetFS is a fragment shader.
	SnippetFS
)

// String returns the tag name of the kind.
func (k SnippetKind) String() string {
	switch k {
	case SnippetBlock:
		return "block"
	case SnippetVS:
		return "vs"
	case SnippetFS:
		return "fs"
	default:
		return "unknown"
	}
}

// IsShader reports whether the kind produces a shader stage.
func (k SnippetKind) IsShader() bool {
	return k == SnippetVS || k == SnippetFS
}

// Stage returns the shader stage of a vs or fs snippet.
func (k SnippetKind) Stage() ShaderStage {
	if k == SnippetFS {
		return StageFragment
	}
	return StageVertex
}

// UniformType is the logical type of a uniform block member.
type UniformType uint8

const (
	// UniformInvalid marks a member type that has no binding representation.
	UniformInvalid UniformType = iota
	UniformFloat
	UniformFloat2
	UniformFloat3
	UniformFloat4
	UniformInt
	UniformInt2
	UniformInt3
	UniformInt4
	UniformMat4
)

// uniformTypes lists the valid uniform types in declaration order.
var uniformTypes = []UniformType{
	UniformFloat, UniformFloat2, UniformFloat3, UniformFloat4,
	UniformInt, UniformInt2, UniformInt3, UniformInt4,
	UniformMat4,
}

// String returns the logical type name. The names are also the keys of the
// type override map ("vec4", "mat4", "int2", ...).
func (t UniformType) String() string {
	switch t {
	case UniformFloat:
		return "float"
	case UniformFloat2:
		return "vec2"
	case UniformFloat3:
		return "vec3"
	case UniformFloat4:
		return "vec4"
	case UniformInt:
		return "int"
	case UniformInt2:
		return "int2"
	case UniformInt3:
		return "int3"
	case UniformInt4:
		return "int4"
	case UniformMat4:
		return "mat4"
	default:
		return "invalid"
	}
}

// ItemSize returns the size in bytes of a single (non-array) value.
// Invalid types have size 0.
func (t UniformType) ItemSize() int {
	switch t {
	case UniformFloat, UniformInt:
		return 4
	case UniformFloat2, UniformInt2:
		return 8
	case UniformFloat3, UniformInt3:
		return 12
	case UniformFloat4, UniformInt4:
		return 16
	case UniformMat4:
		return 64
	default:
		return 0
	}
}

// IsFloat reports whether the type is built from float components.
func (t UniformType) IsFloat() bool {
	switch t {
	case UniformFloat, UniformFloat2, UniformFloat3, UniformFloat4, UniformMat4:
		return true
	default:
		return false
	}
}

// IsInt reports whether the type is built from int components.
func (t UniformType) IsInt() bool {
	switch t {
	case UniformInt, UniformInt2, UniformInt3, UniformInt4:
		return true
	default:
		return false
	}
}

// Valid reports whether t is a known uniform type.
func (t UniformType) Valid() bool {
	return t.ItemSize() != 0
}

// Arrayable reports whether arrays of this type keep a tightly packed std140
// layout (array stride equal to the item size).
func (t UniformType) Arrayable() bool {
	return t == UniformFloat4 || t == UniformInt4 || t == UniformMat4
}

// ParseUniformType resolves a logical type name.
func ParseUniformType(name string) (UniformType, bool) {
	for _, t := range uniformTypes {
		if t.String() == name {
			return t, true
		}
	}
	return UniformInvalid, false
}

// ImageType is the dimensionality of an image.
type ImageType uint8

const (
	ImageTypeInvalid ImageType = iota
	ImageType2D
	ImageTypeCube
	ImageType3D
	ImageTypeArray
)

// String returns the dimensionality name.
func (t ImageType) String() string {
	switch t {
	case ImageType2D:
		return "2d"
	case ImageTypeCube:
		return "cube"
	case ImageType3D:
		return "3d"
	case ImageTypeArray:
		return "array"
	default:
		return "invalid"
	}
}

// ImageSampleType is the kind of value read from an image.
type ImageSampleType uint8

const (
	ImageSampleTypeInvalid ImageSampleType = iota
	ImageSampleTypeFloat
	ImageSampleTypeDepth
	ImageSampleTypeSint
	ImageSampleTypeUint
	ImageSampleTypeUnfilterableFloat
)

// String returns the sample type name.
func (t ImageSampleType) String() string {
	switch t {
	case ImageSampleTypeFloat:
		return "float"
	case ImageSampleTypeDepth:
		return "depth"
	case ImageSampleTypeSint:
		return "sint"
	case ImageSampleTypeUint:
		return "uint"
	case ImageSampleTypeUnfilterableFloat:
		return "unfilterable_float"
	default:
		return "invalid"
	}
}

// SamplerType is the filtering kind of a sampler.
type SamplerType uint8

const (
	SamplerTypeInvalid SamplerType = iota
	SamplerTypeFiltering
	SamplerTypeComparison
	SamplerTypeNonFiltering
)

// String returns the sampler type name.
func (t SamplerType) String() string {
	switch t {
	case SamplerTypeFiltering:
		return "filtering"
	case SamplerTypeComparison:
		return "comparison"
	case SamplerTypeNonFiltering:
		return "nonfiltering"
	default:
		return "invalid"
	}
}
