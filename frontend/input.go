// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package frontend

import (
	"os"
	"strings"

	"github.com/gogpu/shdc/refl"
)

// Input file tags. Any other line starting with '@' (WGSL attributes such as
// @vertex or @group) is snippet content.
const (
	tagModule       = "@module"
	tagHeader       = "@header"
	tagCType        = "@ctype"
	tagBlock        = "@block"
	tagVS           = "@vs"
	tagFS           = "@fs"
	tagEnd          = "@end"
	tagIncludeBlock = "@include_block"
	tagProgram      = "@program"
)

// ReadInput reads and parses an annotated WGSL file.
func ReadInput(path string) (*refl.Input, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, refl.Errorf(refl.ErrInput, path, 0, "failed to open input file '%s': %v", path, err)
	}
	return ParseInput(path, string(src))
}

// ParseInput parses the content of an annotated WGSL file. path is only
// used in error messages.
func ParseInput(path, src string) (*refl.Input, error) {
	p := inputParser{
		inp:     &refl.Input{BasePath: path, CTypes: map[string]string{}},
		current: -1,
	}
	for i, line := range strings.Split(src, "\n") {
		if err := p.parseLine(i+1, strings.TrimRight(line, "\r")); err != nil {
			return nil, err
		}
	}
	if p.current >= 0 {
		s := &p.inp.Snippets[p.current]
		return nil, p.errorf(s.Line, "missing @end for %s '%s'", s.Kind, s.Name)
	}
	return p.inp, nil
}

type inputParser struct {
	inp *refl.Input

	// current is the index of the open snippet, or -1.
	current int
}

func (p *inputParser) errorf(line int, format string, args ...any) *refl.Error {
	return refl.Errorf(refl.ErrInput, p.inp.BasePath, line, format, args...)
}

func (p *inputParser) parseLine(lineNum int, line string) error {
	fields := strings.Fields(line)
	tag := ""
	if len(fields) > 0 && isTag(fields[0]) {
		tag = fields[0]
	}

	if p.current >= 0 {
		snippet := &p.inp.Snippets[p.current]
		switch tag {
		case "":
			snippet.Lines = append(snippet.Lines, line)
			return nil
		case tagEnd:
			p.current = -1
			return nil
		case tagIncludeBlock:
			return p.includeBlock(lineNum, snippet, fields)
		default:
			return p.errorf(lineNum, "%s is not allowed inside %s '%s'", tag, snippet.Kind, snippet.Name)
		}
	}

	switch tag {
	case "":
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "@") {
			return p.errorf(lineNum, "unknown tag '%s'", fields[0])
		}
		return nil
	case tagModule:
		if len(fields) != 2 {
			return p.errorf(lineNum, "@module expects one name")
		}
		if p.inp.Module != "" {
			return p.errorf(lineNum, "@module already defined as '%s'", p.inp.Module)
		}
		p.inp.Module = fields[1]
	case tagHeader:
		p.inp.Headers = append(p.inp.Headers, strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), tagHeader)))
	case tagCType:
		if len(fields) != 3 {
			return p.errorf(lineNum, "@ctype expects a uniform type and a target type")
		}
		if _, ok := refl.ParseUniformType(fields[1]); !ok {
			return p.errorf(lineNum, "unknown uniform type '%s' in @ctype", fields[1])
		}
		p.inp.CTypes[fields[1]] = fields[2]
	case tagBlock, tagVS, tagFS:
		return p.openSnippet(lineNum, tag, fields)
	case tagProgram:
		return p.addProgram(lineNum, fields)
	case tagEnd:
		return p.errorf(lineNum, "@end without an open snippet")
	case tagIncludeBlock:
		return p.errorf(lineNum, "@include_block outside of a snippet")
	}
	return nil
}

func isTag(word string) bool {
	switch word {
	case tagModule, tagHeader, tagCType, tagBlock, tagVS, tagFS, tagEnd, tagIncludeBlock, tagProgram:
		return true
	}
	return false
}

func (p *inputParser) openSnippet(lineNum int, tag string, fields []string) error {
	if len(fields) != 2 {
		return p.errorf(lineNum, "%s expects one name", tag)
	}
	name := fields[1]
	if prev := p.inp.FindSnippet(name); prev != nil {
		return p.errorf(lineNum, "snippet '%s' already defined at line %d", name, prev.Line)
	}

	kind := refl.SnippetBlock
	switch tag {
	case tagVS:
		kind = refl.SnippetVS
	case tagFS:
		kind = refl.SnippetFS
	}
	p.inp.Snippets = append(p.inp.Snippets, refl.Snippet{Name: name, Kind: kind, Line: lineNum})
	p.current = len(p.inp.Snippets) - 1
	return nil
}

func (p *inputParser) includeBlock(lineNum int, snippet *refl.Snippet, fields []string) error {
	if len(fields) != 2 {
		return p.errorf(lineNum, "@include_block expects one name")
	}
	block := p.inp.FindSnippet(fields[1])
	if block == nil || block.Kind != refl.SnippetBlock {
		return p.errorf(lineNum, "unknown block '%s'", fields[1])
	}
	snippet.Lines = append(snippet.Lines, block.Lines...)
	return nil
}

func (p *inputParser) addProgram(lineNum int, fields []string) error {
	if len(fields) != 4 {
		return p.errorf(lineNum, "@program expects a name, a vertex shader and a fragment shader")
	}
	for _, prog := range p.inp.Programs {
		if prog.Name == fields[1] {
			return p.errorf(lineNum, "program '%s' already defined at line %d", prog.Name, prog.Line)
		}
	}
	p.inp.Programs = append(p.inp.Programs, refl.Program{
		Name: fields[1],
		VS:   fields[2],
		FS:   fields[3],
		Line: lineNum,
	})
	return nil
}
