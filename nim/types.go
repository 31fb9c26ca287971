// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package nim

import "github.com/gogpu/shdc/refl"

// invalidUniformToken is written in place of a struct field whose type has
// no Nim representation.
const invalidUniformToken = "INVALID_UNIFORM_TYPE"

// nimType returns the default Nim type of a single uniform value, or "" for
// types that have none.
func nimType(t refl.UniformType) string {
	switch t {
	case refl.UniformFloat:
		return "float32"
	case refl.UniformFloat2:
		return "array[2, float32]"
	case refl.UniformFloat3:
		return "array[3, float32]"
	case refl.UniformFloat4:
		return "array[4, float32]"
	case refl.UniformInt:
		return "int32"
	case refl.UniformInt2:
		return "array[2, int32]"
	case refl.UniformInt3:
		return "array[3, int32]"
	case refl.UniformInt4:
		return "array[4, int32]"
	case refl.UniformMat4:
		return "array[16, float32]"
	default:
		return ""
	}
}

// sokolUniformType returns the sg.UniformType value of t.
func sokolUniformType(t refl.UniformType) string {
	switch t {
	case refl.UniformFloat:
		return "uniformTypeFloat"
	case refl.UniformFloat2:
		return "uniformTypeFloat2"
	case refl.UniformFloat3:
		return "uniformTypeFloat3"
	case refl.UniformFloat4:
		return "uniformTypeFloat4"
	case refl.UniformInt:
		return "uniformTypeInt"
	case refl.UniformInt2:
		return "uniformTypeInt2"
	case refl.UniformInt3:
		return "uniformTypeInt3"
	case refl.UniformInt4:
		return "uniformTypeInt4"
	case refl.UniformMat4:
		return "uniformTypeMat4"
	default:
		return "uniformTypeInvalid"
	}
}

// flattenedUniformType returns the 4-component type a flattened block built
// from members of type t is exposed as.
func flattenedUniformType(t refl.UniformType) refl.UniformType {
	switch t {
	case refl.UniformFloat, refl.UniformFloat2, refl.UniformFloat3, refl.UniformFloat4, refl.UniformMat4:
		return refl.UniformFloat4
	case refl.UniformInt, refl.UniformInt2, refl.UniformInt3, refl.UniformInt4:
		return refl.UniformInt4
	default:
		return refl.UniformInvalid
	}
}

// sokolImageType returns the sg.ImageType value of t.
func sokolImageType(t refl.ImageType) string {
	switch t {
	case refl.ImageType2D:
		return "imageType2d"
	case refl.ImageTypeCube:
		return "imageTypeCube"
	case refl.ImageType3D:
		return "imageType3d"
	case refl.ImageTypeArray:
		return "imageTypeArray"
	default:
		return "imageTypeDefault"
	}
}

// sokolImageSampleType returns the sg.ImageSampleType value of t.
func sokolImageSampleType(t refl.ImageSampleType) string {
	switch t {
	case refl.ImageSampleTypeFloat:
		return "imageSampleTypeFloat"
	case refl.ImageSampleTypeDepth:
		return "imageSampleTypeDepth"
	case refl.ImageSampleTypeSint:
		return "imageSampleTypeSint"
	case refl.ImageSampleTypeUint:
		return "imageSampleTypeUint"
	case refl.ImageSampleTypeUnfilterableFloat:
		return "imageSampleTypeUnfilterableFloat"
	default:
		return "imageSampleTypeDefault"
	}
}

// sokolSamplerType returns the sg.SamplerType value of t.
func sokolSamplerType(t refl.SamplerType) string {
	switch t {
	case refl.SamplerTypeFiltering:
		return "samplerTypeFiltering"
	case refl.SamplerTypeComparison:
		return "samplerTypeComparison"
	case refl.SamplerTypeNonFiltering:
		return "samplerTypeNonfiltering"
	default:
		return "samplerTypeDefault"
	}
}
