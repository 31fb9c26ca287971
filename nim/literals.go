// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package nim

import (
	"strings"

	"github.com/gogpu/shdc/refl"
)

// bytesPerLine is the number of array elements per output line.
const bytesPerLine = 16

// commentTokens defuses character pairs that would open or close a comment
// when shader source is quoted in a "#" comment block.
var commentTokens = strings.NewReplacer(
	"/*", "/_",
	"*/", "_/",
	"#[", "#_",
	"]#", "_#",
)

// writeLiterals writes the shader code of backend b for every vertex and
// fragment snippet. Snippets with a precompiled blob get the blob, all
// others the source text followed by a NUL byte.
func (w *Writer) writeLiterals(r *refl.Reflection, code *refl.Bytecode, b refl.Backend) {
	for i := range w.inp.Snippets {
		snippet := &w.inp.Snippets[i]
		if !snippet.Kind.IsShader() {
			continue
		}
		src := r.SourceBySnippet(i)
		if src == nil {
			continue
		}

		w.writeSourceComment(src.Code)
		if blob := code.BlobBySnippet(i); blob != nil {
			w.writeByteArray(w.bytecodeName(snippet.Name, b), blob.Data)
			continue
		}
		data := make([]byte, len(src.Code)+1)
		copy(data, src.Code)
		w.writeByteArray(w.sourceName(snippet.Name, b), data)
	}
}

// writeSourceComment quotes code line by line in a comment block.
func (w *Writer) writeSourceComment(code string) {
	w.writeLine("#")
	for _, line := range splitLines(code) {
		w.writeLine("#   %s", commentTokens.Replace(line))
	}
	w.writeLine("#")
}

// writeByteArray writes data as a Nim uint8 array constant.
func (w *Writer) writeByteArray(name string, data []byte) {
	w.writeLine("const %s: array[%d, uint8] = [", name, len(data))
	for i, c := range data {
		if i%bytesPerLine == 0 {
			w.write("    ")
		}
		if i == 0 {
			w.write("0x%02x'u8,", c)
		} else {
			w.write("0x%02x,", c)
		}
		if i%bytesPerLine == bytesPerLine-1 {
			w.write("\n")
		}
	}
	w.write("\n]\n")
}

// splitLines splits s at line breaks (\n, \r\n or \r). A trailing line
// break does not produce an empty last line.
func splitLines(s string) []string {
	var lines []string
	for len(s) > 0 {
		i := strings.IndexAny(s, "\r\n")
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i])
		if s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n' {
			i++
		}
		s = s[i+1:]
	}
	return lines
}
