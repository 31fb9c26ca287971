// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package shdc

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/gogpu/shdc/refl"
)

// triangleInput is a program with a uniform block and a textured fragment
// shader.
const triangleInput = `@module tri

@vs vs
struct vs_params { mvp: mat4x4<f32> }
@group(0) @binding(0) var<uniform> params: vs_params;
@vertex
fn main(@location(0) position: vec4<f32>) -> @builtin(position) vec4<f32> {
    return params.mvp * position;
}
@end

@fs fs
@fragment
fn main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.5, 0.25, 1.0);
}
@end

@program triangle vs fs
`

// texturedInput samples a texture in the fragment shader and reads every
// member of the vertex uniform block.
const texturedInput = `@module tri

@vs vs
struct vs_params {
    color: vec4<f32>,
    mvp: mat4x4<f32>,
}
@group(0) @binding(0) var<uniform> params: vs_params;
struct vs_out {
    @builtin(position) pos: vec4<f32>,
    @location(0) uv: vec2<f32>,
}
@vertex
fn main(@location(0) position: vec4<f32>, @location(1) texcoord: vec2<f32>) -> vs_out {
    var o: vs_out;
    o.pos = params.mvp * position;
    o.uv = texcoord * params.color.xy;
    return o;
}
@end

@fs fs
@group(1) @binding(0) var tex: texture_2d<f32>;
@group(1) @binding(1) var smp: sampler;
@fragment
fn main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    return textureSample(tex, smp, uv);
}
@end

@program textured vs fs
`

var (
	nimAttrName    = regexp.MustCompile(`result\.attrs\[\d+\]\.name = "([^"]+)"`)
	nimUniformName = regexp.MustCompile(`result\.vs\.uniformBlocks\[\d+\]\.uniforms\[\d+\]\.name = "([^"]+)"`)
	nimGLSLName    = regexp.MustCompile(`result\.fs\.imageSamplerPairs\[\d+\]\.glslName = "([^"]+)"`)
	nimPairUsed    = regexp.MustCompile(`result\.fs\.imageSamplerPairs\[\d+\]\.used = true`)
)

// generate runs Generate on src for the given backends and returns the
// generated module.
func generate(t *testing.T, src string, backends refl.BackendSet) string {
	t.Helper()
	output := filepath.Join(t.TempDir(), "tri.nim")
	if err := Generate(Args{Input: writeInput(t, src), Output: output, Backends: backends}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// embeddedSource decodes the shader source array called name from a
// generated module.
func embeddedSource(t *testing.T, module, name string) string {
	t.Helper()
	lines := strings.Split(module, "\n")
	prefix := "const " + name + ": array["
	for i, line := range lines {
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(line, prefix), ", uint8] = ["))
		if err != nil {
			t.Fatalf("bad array header %q", line)
		}
		var data []byte
		for _, body := range lines[i+1:] {
			if body == "]" {
				if len(data) != n {
					t.Fatalf("array %s has %d elements, header says %d", name, len(data), n)
				}
				return strings.TrimSuffix(string(data), "\x00")
			}
			for _, tok := range strings.Split(body, ",") {
				tok = strings.TrimSuffix(strings.TrimSpace(tok), "'u8")
				if tok == "" {
					continue
				}
				v, err := strconv.ParseUint(tok, 0, 8)
				if err != nil {
					t.Fatalf("bad array element %q", tok)
				}
				data = append(data, byte(v))
			}
		}
		t.Fatalf("array %s is not terminated", name)
	}
	t.Fatalf("array %s not found", name)
	return ""
}

func submatches(re *regexp.Regexp, s string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(s, -1) {
		out = append(out, m[1])
	}
	return out
}

// TestGenerateGLSLNames checks that every name the GL runtime looks up
// exists in the embedded GLSL.
func TestGenerateGLSLNames(t *testing.T) {
	out := generate(t, texturedInput, refl.GLSL410.Bit())
	vs := embeddedSource(t, out, "triVsSourceGlsl410")
	fs := embeddedSource(t, out, "triFsSourceGlsl410")

	attrs := submatches(nimAttrName, out)
	if len(attrs) != 2 {
		t.Fatalf("got %d attribute names, want 2:\n%s", len(attrs), out)
	}
	for _, name := range attrs {
		if !strings.Contains(vs, " "+name+";") {
			t.Errorf("attribute %q is not declared in the vertex shader:\n%s", name, vs)
		}
	}

	uniforms := submatches(nimUniformName, out)
	if len(uniforms) != 2 {
		t.Fatalf("got %d uniform names, want 2:\n%s", len(uniforms), out)
	}
	for _, name := range uniforms {
		inst, member, ok := strings.Cut(name, ".")
		if !ok {
			t.Errorf("uniform name %q is not <block>.<member>", name)
			continue
		}
		if !strings.Contains(vs, " "+inst+"; };") {
			t.Errorf("uniform block instance %q is not declared:\n%s", inst, vs)
		}
		if !strings.Contains(vs, " "+member+";") {
			t.Errorf("uniform member %q is not declared:\n%s", member, vs)
		}
	}

	pairs := submatches(nimGLSLName, out)
	if len(pairs) != 1 {
		t.Fatalf("got %d combined sampler names, want 1:\n%s", len(pairs), out)
	}
	if !strings.Contains(fs, "sampler2D "+pairs[0]+";") {
		t.Errorf("combined sampler %q is not declared:\n%s", pairs[0], fs)
	}
}

// TestGenerateHLSL checks the semantics and registers of the embedded HLSL.
func TestGenerateHLSL(t *testing.T) {
	out := generate(t, texturedInput, refl.HLSL5.Bit())
	vs := embeddedSource(t, out, "triVsSourceHlsl5")
	fs := embeddedSource(t, out, "triFsSourceHlsl5")

	for _, want := range []string{
		"result.attrs[0].semName = \"LOC\"",
		"result.attrs[0].semIndex = 0",
		"result.attrs[1].semName = \"LOC\"",
		"result.attrs[1].semIndex = 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q", want)
		}
	}
	for _, want := range []string{": LOC0", ": LOC1"} {
		if !strings.Contains(vs, want) {
			t.Errorf("vertex shader has no %q semantic:\n%s", want, vs)
		}
	}
	if n := len(nimPairUsed.FindAllString(out, -1)); n != 1 {
		t.Errorf("got %d fragment image-sampler pairs, want 1", n)
	}
	if !strings.Contains(fs, "register(s1)") {
		t.Errorf("fragment sampler is not bound to s1:\n%s", fs)
	}
	for _, src := range []string{vs, fs} {
		if strings.Contains(src, "nagaSamplerHeap") {
			t.Errorf("shader still indexes the sampler heap:\n%s", src)
		}
	}
}

func writeInput(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tri.wgsl")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestGenerateWGSL runs the whole pipeline for the pass-through backend.
func TestGenerateWGSL(t *testing.T) {
	input := writeInput(t, triangleInput)
	output := filepath.Join(t.TempDir(), "tri.nim")

	err := Generate(Args{
		Input:    input,
		Output:   output,
		Backends: refl.WGSL.Bit(),
		Cmdline:  "shdc -i tri.wgsl -o tri.nim -slang wgsl",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{
		"#   #version:" + Version + "# (machine generated, don't edit!)",
		"#   Cmdline: shdc -i tri.wgsl -o tri.nim -slang wgsl",
		"const attrTriVsPosition* = 0",
		"const slotTriVsParams* = 0",
		"type TriVsParams* {.packed.} = object",
		"    mvp* {.align(16).}: array[16, float32]",
		"const triVsSourceWgsl: array[",
		"proc triTriangleShaderDesc*(backend: sg.Backend): sg.ShaderDesc =",
		"    of backendWgsl:",
		"      result.vs.uniformBlocks[0].size = 64",
		"      result.label = \"triTriangleShader\"",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q", want)
		}
	}
}

func TestGenerateBytecode(t *testing.T) {
	input := writeInput(t, triangleInput)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "fs_wgsl.bin"), []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(t.TempDir(), "tri.nim")

	err := Generate(Args{Input: input, Output: output, Backends: refl.WGSL.Bit(), BytecodeDir: dir})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	data, _ := os.ReadFile(output)
	if !strings.Contains(string(data), "      result.fs.bytecode = triFsBytecodeWgsl\n") {
		t.Errorf("fragment shader does not reference its bytecode:\n%s", data)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind refl.ErrorKind
		line int
	}{
		{"input", "@vs vs\n", refl.ErrInput, 1},
		{"reflection", "@vs vs\nfn broken( {\n@end\n", refl.ErrReflection, 1},
		{"validation", triangleInput + "@program other vs nope\n", refl.ErrValidation, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "out.nim")
			err := Generate(Args{Input: writeInput(t, tt.src), Output: output, Backends: refl.WGSL.Bit()})
			if err == nil {
				t.Fatal("expected error")
			}
			var rerr *refl.Error
			if !errors.As(err, &rerr) {
				t.Fatalf("error %v is not a *refl.Error", err)
			}
			if rerr.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", rerr.Kind, tt.kind)
			}
			if rerr.Line != tt.line {
				t.Errorf("Line = %d, want %d", rerr.Line, tt.line)
			}
			if _, err := os.Stat(output); !os.IsNotExist(err) {
				t.Error("output file written despite error")
			}
		})
	}
}

func TestArgsValidate(t *testing.T) {
	if err := (&Args{Output: "x.nim"}).Validate(); err == nil {
		t.Error("missing input accepted")
	}
	if err := (&Args{Input: "x.wgsl"}).Validate(); err == nil {
		t.Error("missing output accepted")
	}
	if err := (&Args{Input: "x.wgsl", Output: "x.nim"}).Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	output := filepath.Join(t.TempDir(), "tri.nim")
	if err := Generate(Args{Input: writeInput(t, triangleInput), Output: output, Backends: refl.WGSL.Bit()}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(buf.String(), "nim: wrote module") {
		t.Errorf("log output misses the write record:\n%s", buf.String())
	}

	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger() = nil after SetLogger(nil)")
	}
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger is not silent")
	}
}
