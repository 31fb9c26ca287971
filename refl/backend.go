// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package refl

import (
	"fmt"
	"strings"
)

// Backend identifies a target shading language and graphics API combination.
type Backend uint8

// Supported backends, in emission order.
const (
	// GLSL410 is desktop GLSL 4.10 core.
	GLSL410 Backend = iota

	// GLSL430 is desktop GLSL 4.30 core.
	GLSL430

	// GLSL300ES is GLSL ES 3.00 (WebGL 2, GLES3).
	GLSL300ES

	// HLSL4 is HLSL for D3D11 feature level 10 (shader model 4.0).
	HLSL4

	// HLSL5 is HLSL for D3D11 feature level 11 (shader model 5.0).
	HLSL5

	// MetalMacOS is Metal Shading Language for macOS.
	MetalMacOS

	// MetalIOS is Metal Shading Language for iOS devices.
	MetalIOS

	// MetalSim is Metal Shading Language for the iOS simulator.
	MetalSim

	// WGSL is the WebGPU Shading Language.
	WGSL
)

// NumBackends is the number of known backends.
const NumBackends = int(WGSL) + 1

// AllBackends lists every backend in emission order.
func AllBackends() []Backend {
	all := make([]Backend, NumBackends)
	for i := range all {
		all[i] = Backend(i)
	}
	return all
}

// String returns the short backend name used in identifiers and on the
// command line, e.g. "glsl410" or "metal_macos".
func (b Backend) String() string {
	switch b {
	case GLSL410:
		return "glsl410"
	case GLSL430:
		return "glsl430"
	case GLSL300ES:
		return "glsl300es"
	case HLSL4:
		return "hlsl4"
	case HLSL5:
		return "hlsl5"
	case MetalMacOS:
		return "metal_macos"
	case MetalIOS:
		return "metal_ios"
	case MetalSim:
		return "metal_sim"
	case WGSL:
		return "wgsl"
	default:
		return "<invalid>"
	}
}

// IsGLSL reports whether b belongs to the GLSL family.
func (b Backend) IsGLSL() bool {
	return b == GLSL410 || b == GLSL430 || b == GLSL300ES
}

// IsHLSL reports whether b belongs to the HLSL family.
func (b Backend) IsHLSL() bool {
	return b == HLSL4 || b == HLSL5
}

// IsMSL reports whether b belongs to the Metal family.
func (b Backend) IsMSL() bool {
	return b == MetalMacOS || b == MetalIOS || b == MetalSim
}

// IsWGSL reports whether b is the WGSL backend.
func (b Backend) IsWGSL() bool {
	return b == WGSL
}

// Valid reports whether b is one of the known backends.
func (b Backend) Valid() bool {
	return int(b) < NumBackends
}

// SokolBackend returns the sokol-nim sg.Backend enum value that selects
// this backend at runtime.
func (b Backend) SokolBackend() string {
	switch b {
	case GLSL410, GLSL430:
		return "backendGlcore"
	case GLSL300ES:
		return "backendGles3"
	case HLSL4, HLSL5:
		return "backendD3d11"
	case MetalMacOS:
		return "backendMetalMacos"
	case MetalIOS:
		return "backendMetalIos"
	case MetalSim:
		return "backendMetalSimulator"
	case WGSL:
		return "backendWgsl"
	default:
		return "<INVALID>"
	}
}

// D3D11Target returns the D3D shader profile ("vs_5_0", "ps_4_0") for the
// given stage. It returns "" for non-HLSL backends.
func (b Backend) D3D11Target(stage ShaderStage) string {
	var suffix string
	switch b {
	case HLSL4:
		suffix = "4_0"
	case HLSL5:
		suffix = "5_0"
	default:
		return ""
	}
	if stage == StageVertex {
		return "vs_" + suffix
	}
	return "ps_" + suffix
}

// ParseBackend resolves a backend by its String name.
func ParseBackend(name string) (Backend, error) {
	for _, b := range AllBackends() {
		if b.String() == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown backend %q", name)
}

// BackendSet is a bitmask of enabled backends.
type BackendSet uint32

// Bit returns the set containing only b.
func (b Backend) Bit() BackendSet {
	return BackendSet(1) << b
}

// Has reports whether b is in the set.
func (s BackendSet) Has(b Backend) bool {
	return b.Valid() && s&b.Bit() != 0
}

// With returns a copy of the set that also contains b.
func (s BackendSet) With(b Backend) BackendSet {
	return s | b.Bit()
}

// AllBackendsSet returns the set of every known backend.
func AllBackendsSet() BackendSet {
	return BackendSet(1)<<NumBackends - 1
}

// Empty reports whether no backend is enabled.
func (s BackendSet) Empty() bool {
	return s == 0
}

// Backends returns the enabled backends in emission order.
func (s BackendSet) Backends() []Backend {
	var out []Backend
	for _, b := range AllBackends() {
		if s.Has(b) {
			out = append(out, b)
		}
	}
	return out
}

// String returns the set as a colon separated backend list.
func (s BackendSet) String() string {
	names := make([]string, 0, NumBackends)
	for _, b := range s.Backends() {
		names = append(names, b.String())
	}
	return strings.Join(names, ":")
}

// ParseBackendSet parses a colon separated list such as "glsl410:hlsl5:wgsl".
// An empty string yields an empty set.
func ParseBackendSet(list string) (BackendSet, error) {
	var set BackendSet
	if list == "" {
		return set, nil
	}
	for _, name := range strings.Split(list, ":") {
		b, err := ParseBackend(strings.TrimSpace(name))
		if err != nil {
			return 0, err
		}
		set = set.With(b)
	}
	return set, nil
}
