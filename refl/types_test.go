// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package refl

import "testing"

func TestUniformType_Tables(t *testing.T) {
	tests := []struct {
		typ       UniformType
		name      string
		size      int
		isFloat   bool
		isInt     bool
		arrayable bool
	}{
		{UniformFloat, "float", 4, true, false, false},
		{UniformFloat2, "vec2", 8, true, false, false},
		{UniformFloat3, "vec3", 12, true, false, false},
		{UniformFloat4, "vec4", 16, true, false, true},
		{UniformInt, "int", 4, false, true, false},
		{UniformInt2, "int2", 8, false, true, false},
		{UniformInt3, "int3", 12, false, true, false},
		{UniformInt4, "int4", 16, false, true, true},
		{UniformMat4, "mat4", 64, true, false, true},
		{UniformInvalid, "invalid", 0, false, false, false},
		{UniformType(99), "invalid", 0, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.typ.ItemSize(); got != tt.size {
				t.Errorf("ItemSize() = %d, want %d", got, tt.size)
			}
			if got := tt.typ.IsFloat(); got != tt.isFloat {
				t.Errorf("IsFloat() = %v, want %v", got, tt.isFloat)
			}
			if got := tt.typ.IsInt(); got != tt.isInt {
				t.Errorf("IsInt() = %v, want %v", got, tt.isInt)
			}
			if got := tt.typ.Arrayable(); got != tt.arrayable {
				t.Errorf("Arrayable() = %v, want %v", got, tt.arrayable)
			}
			if got := tt.typ.Valid(); got != (tt.size != 0) {
				t.Errorf("Valid() = %v", got)
			}
		})
	}
}

func TestParseUniformType(t *testing.T) {
	for _, typ := range uniformTypes {
		got, ok := ParseUniformType(typ.String())
		if !ok || got != typ {
			t.Errorf("ParseUniformType(%q) = %v, %v", typ.String(), got, ok)
		}
	}
	if _, ok := ParseUniformType("mat3"); ok {
		t.Error("mat3 is not a supported uniform type")
	}
}

func TestSnippetKind(t *testing.T) {
	if SnippetBlock.IsShader() {
		t.Error("block snippets are not shaders")
	}
	if !SnippetVS.IsShader() || !SnippetFS.IsShader() {
		t.Error("vs and fs snippets are shaders")
	}
	if SnippetVS.Stage() != StageVertex || SnippetFS.Stage() != StageFragment {
		t.Error("unexpected stage mapping")
	}
	if StageVertex.Field() != "vs" || StageFragment.Field() != "fs" {
		t.Error("unexpected stage field names")
	}
}

func TestResourceTypeNames(t *testing.T) {
	if ImageTypeCube.String() != "cube" || ImageTypeInvalid.String() != "invalid" {
		t.Error("unexpected image type names")
	}
	if ImageSampleTypeUnfilterableFloat.String() != "unfilterable_float" {
		t.Error("unexpected sample type name")
	}
	if SamplerTypeComparison.String() != "comparison" || SamplerType(9).String() != "invalid" {
		t.Error("unexpected sampler type names")
	}
}
