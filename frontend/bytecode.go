// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package frontend

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gogpu/shdc/refl"
)

// BytecodePath returns the file a precompiled blob of snippet for backend b
// is loaded from.
func BytecodePath(dir, snippet string, b refl.Backend) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.bin", snippet, b))
}

// LoadBytecode loads the precompiled blobs of every vs/fs snippet for the
// backends in set. Missing files are not an error; the snippet's source is
// embedded instead. An empty dir loads nothing.
func LoadBytecode(inp *refl.Input, dir string, set refl.BackendSet) ([refl.NumBackends]*refl.Bytecode, error) {
	var out [refl.NumBackends]*refl.Bytecode
	if dir == "" {
		return out, nil
	}
	for _, b := range set.Backends() {
		code := &refl.Bytecode{}
		for i := range inp.Snippets {
			snippet := &inp.Snippets[i]
			if !snippet.Kind.IsShader() {
				continue
			}
			path := BytecodePath(dir, snippet.Name, b)
			data, err := os.ReadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return out, refl.Errorf(refl.ErrInput, inp.BasePath, snippet.Line,
					"failed to read bytecode '%s': %v", path, err)
			}
			code.Blobs = append(code.Blobs, refl.BytecodeBlob{SnippetIndex: i, Data: data})
		}
		out[b] = code
	}
	return out, nil
}
