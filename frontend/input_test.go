// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package frontend

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shdc/refl"
)

const quadInput = `@module quad
@header import math3d
@ctype mat4 Mat4

@block common
struct vs_params { mvp: mat4x4<f32> }
@end

@vs vs
@include_block common
@group(0) @binding(0) var<uniform> params: vs_params;
@vertex fn main(@location(0) position: vec4<f32>) -> @builtin(position) vec4<f32> {
    return params.mvp * position;
}
@end

@fs fs
@fragment fn main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
@end

@program quad vs fs
`

func TestParseInput(t *testing.T) {
	inp, err := ParseInput("quad.wgsl", quadInput)
	require.NoError(t, err)

	assert.Equal(t, "quad.wgsl", inp.BasePath)
	assert.Equal(t, "quad", inp.Module)
	assert.Equal(t, "quad_", inp.ModPrefix())
	assert.Equal(t, []string{"import math3d"}, inp.Headers)
	assert.Equal(t, map[string]string{"mat4": "Mat4"}, inp.CTypes)

	require.Len(t, inp.Snippets, 3)
	assert.Equal(t, refl.SnippetBlock, inp.Snippets[0].Kind)
	assert.Equal(t, 5, inp.Snippets[0].Line)

	vs := inp.FindSnippet("vs")
	require.NotNil(t, vs)
	assert.Equal(t, refl.SnippetVS, vs.Kind)
	assert.Equal(t, 9, vs.Line)
	require.Len(t, vs.Lines, 5)
	assert.Equal(t, "struct vs_params { mvp: mat4x4<f32> }", vs.Lines[0])
	assert.Equal(t, "@group(0) @binding(0) var<uniform> params: vs_params;", vs.Lines[1])

	fs := inp.FindSnippet("fs")
	require.NotNil(t, fs)
	assert.Equal(t, refl.SnippetFS, fs.Kind)
	assert.Equal(t, "@fragment fn main() -> @location(0) vec4<f32> {\n    return vec4<f32>(1.0, 0.0, 0.0, 1.0);\n}\n", fs.Source())

	assert.Equal(t, []refl.Program{{Name: "quad", VS: "vs", FS: "fs", Line: 23}}, inp.Programs)
}

func TestParseInput_CRLF(t *testing.T) {
	inp, err := ParseInput("x.wgsl", "@vs vs\r\nline\r\n@end\r\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"line"}, inp.Snippets[0].Lines)
}

func TestParseInput_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		want string
	}{
		{"missing end", "@vs vs\nfoo\n", 1, "missing @end for vs 'vs'"},
		{"nested snippet", "@vs vs\n@fs fs\n@end\n", 2, "@fs is not allowed inside vs 'vs'"},
		{"stray end", "@end\n", 1, "@end without an open snippet"},
		{"duplicate snippet", "@vs a\n@end\n@fs a\n@end\n", 3, "snippet 'a' already defined at line 1"},
		{"unknown include", "@vs vs\n@include_block nope\n@end\n", 2, "unknown block 'nope'"},
		{"include shader", "@vs a\n@end\n@fs b\n@include_block a\n@end\n", 4, "unknown block 'a'"},
		{"include outside", "@include_block a\n", 1, "@include_block outside of a snippet"},
		{"unknown tag", "\n@vertex\n", 2, "unknown tag '@vertex'"},
		{"bad ctype type", "@ctype vec5 Vec5\n", 1, "unknown uniform type 'vec5' in @ctype"},
		{"bad ctype arity", "@ctype vec4\n", 1, "@ctype expects a uniform type and a target type"},
		{"module twice", "@module a\n@module b\n", 2, "@module already defined as 'a'"},
		{"program arity", "@program p vs\n", 1, "@program expects a name, a vertex shader and a fragment shader"},
		{"duplicate program", "@program p a b\n@program p c d\n", 2, "program 'p' already defined at line 1"},
		{"snippet without name", "@vs\n", 1, "@vs expects one name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInput("shd.wgsl", tt.src)
			require.Error(t, err)

			var rerr *refl.Error
			require.True(t, errors.As(err, &rerr))
			assert.Equal(t, refl.ErrInput, rerr.Kind)
			assert.Equal(t, "shd.wgsl", rerr.File)
			assert.Equal(t, tt.line, rerr.Line)
			assert.Equal(t, tt.want, rerr.Message)
		})
	}
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.wgsl")
	require.NoError(t, os.WriteFile(path, []byte(quadInput), 0o644))

	inp, err := ReadInput(path)
	require.NoError(t, err)
	assert.Equal(t, path, inp.BasePath)
	assert.Len(t, inp.Programs, 1)

	_, err = ReadInput(filepath.Join(t.TempDir(), "missing.wgsl"))
	var rerr *refl.Error
	require.True(t, errors.As(err, &rerr))
	assert.Contains(t, rerr.Message, "failed to open input file")
}
