// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package frontend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shdc/refl"
)

func TestBytecodePath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "vs_hlsl5.bin"), BytecodePath("out", "vs", refl.HLSL5))
	assert.Equal(t, filepath.Join("out", "fs_metal_macos.bin"), BytecodePath("out", "fs", refl.MetalMacOS))
}

func TestLoadBytecode(t *testing.T) {
	inp, err := ParseInput("quad.wgsl", quadInput)
	require.NoError(t, err)

	dir := t.TempDir()
	blob := []byte{0x44, 0x58, 0x42, 0x43}
	require.NoError(t, os.WriteFile(BytecodePath(dir, "vs", refl.HLSL5), blob, 0o644))
	// Blocks never have bytecode, and disabled backends are not read.
	require.NoError(t, os.WriteFile(BytecodePath(dir, "common", refl.HLSL5), blob, 0o644))
	require.NoError(t, os.WriteFile(BytecodePath(dir, "vs", refl.MetalMacOS), blob, 0o644))

	code, err := LoadBytecode(inp, dir, refl.HLSL5.Bit()|refl.GLSL410.Bit())
	require.NoError(t, err)

	require.NotNil(t, code[refl.HLSL5])
	require.Len(t, code[refl.HLSL5].Blobs, 1)
	assert.Equal(t, inp.SnippetIndex("vs"), code[refl.HLSL5].Blobs[0].SnippetIndex)
	assert.Equal(t, blob, code[refl.HLSL5].BlobByName(inp, "vs").Data)
	assert.Nil(t, code[refl.HLSL5].BlobByName(inp, "fs"))

	require.NotNil(t, code[refl.GLSL410])
	assert.Empty(t, code[refl.GLSL410].Blobs)
	assert.Nil(t, code[refl.MetalMacOS])
}

func TestLoadBytecode_NoDir(t *testing.T) {
	inp, err := ParseInput("quad.wgsl", quadInput)
	require.NoError(t, err)

	code, err := LoadBytecode(inp, "", refl.AllBackendsSet())
	require.NoError(t, err)
	for _, c := range code {
		assert.Nil(t, c)
	}
}
