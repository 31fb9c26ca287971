// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package nim

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/shdc/refl"
)

const (
	basicVSCode = "#version 410\nvoid main() { gl_Position = position; }\n"
	basicFSCode = "#version 410\nvoid main() { frag_color = p.color; }\n"
)

// basicInput is one program "basic" built from the snippets "vs" and "fs".
func basicInput() *refl.Input {
	return &refl.Input{
		BasePath: "shd.wgsl",
		Snippets: []refl.Snippet{
			{Name: "vs", Kind: refl.SnippetVS, Line: 1},
			{Name: "fs", Kind: refl.SnippetFS, Line: 8},
		},
		Programs: []refl.Program{{Name: "basic", VS: "vs", FS: "fs", Line: 15}},
	}
}

// basicReflection declares the uniform block "params" (slot 0) with a single
// vec4 "color" in the vertex stage, and a texture/sampler pair in the
// fragment stage.
func basicReflection(b refl.Backend) *refl.Reflection {
	return refl.NewReflection(b, []refl.Source{
		{
			SnippetIndex: 0,
			Code:         basicVSCode,
			Refl: refl.StageReflection{
				Stage:      refl.StageVertex,
				EntryPoint: "main",
				Inputs: []refl.VertexAttr{
					{Name: "position", Slot: 0, SemName: "LOC", SemIndex: 0},
					{Name: "unused", Slot: -1},
				},
				UniformBlocks: []refl.UniformBlock{{
					Slot:       0,
					Size:       16,
					StructName: "params",
					InstName:   "p",
					Uniforms: []refl.Uniform{
						{Name: "color", Type: refl.UniformFloat4, ArrayCount: 1, Offset: 0},
					},
				}},
			},
		},
		{
			SnippetIndex: 1,
			Code:         basicFSCode,
			Refl: refl.StageReflection{
				Stage:      refl.StageFragment,
				EntryPoint: "main",
				Images: []refl.Image{
					{Name: "tex", Slot: 0, Type: refl.ImageType2D, SampleType: refl.ImageSampleTypeFloat},
				},
				Samplers: []refl.Sampler{
					{Name: "smp", Slot: 0, Type: refl.SamplerTypeFiltering},
				},
				ImageSamplers: []refl.ImageSampler{
					{Name: "tex_smp", Slot: 0, ImageName: "tex", SamplerName: "smp"},
				},
			},
		},
	})
}

// reflectionsFor returns basicReflection for every backend of set.
func reflectionsFor(set refl.BackendSet) [refl.NumBackends]*refl.Reflection {
	var refls [refl.NumBackends]*refl.Reflection
	for _, b := range set.Backends() {
		refls[b] = basicReflection(b)
	}
	return refls
}

func renderBasic(t *testing.T, set refl.BackendSet, code [refl.NumBackends]*refl.Bytecode) string {
	t.Helper()
	out, err := Render(Options{Backends: set, GenVersion: "1", Cmdline: "shdc -i shd.wgsl"},
		basicInput(), reflectionsFor(set), code)
	require.NoError(t, err)
	return out
}

// decodeByteArray parses the Nim array constant called name out of src.
func decodeByteArray(t *testing.T, src, name string) []byte {
	t.Helper()
	lines := strings.Split(src, "\n")
	prefix := "const " + name + ": array["
	for i, line := range lines {
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(line, prefix), ", uint8] = ["))
		require.NoError(t, err, "array header %q", line)

		var data []byte
		for _, body := range lines[i+1:] {
			if body == "]" {
				require.Len(t, data, n, "array %s", name)
				return data
			}
			for _, tok := range strings.Split(body, ",") {
				tok = strings.TrimSuffix(strings.TrimSpace(tok), "'u8")
				if tok == "" {
					continue
				}
				v, err := strconv.ParseUint(tok, 0, 8)
				require.NoError(t, err, "element %q", tok)
				data = append(data, byte(v))
			}
		}
		t.Fatalf("array %s is not terminated", name)
	}
	t.Fatalf("array %s not found", name)
	return nil
}

// countLines returns how many lines of src equal line.
func countLines(src, line string) int {
	n := 0
	for _, l := range strings.Split(src, "\n") {
		if l == line {
			n++
		}
	}
	return n
}
