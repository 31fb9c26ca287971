// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package frontend turns an annotated WGSL file into the reflection model
// consumed by the binding emitters.
//
// The input format wraps WGSL snippets in tags:
//
//	@module shd
//	@ctype mat4 Mat4
//
//	@vs vs
//	struct vs_params { mvp: mat4x4<f32> }
//	@group(0) @binding(0) var<uniform> params: vs_params;
//	@vertex fn main(@location(0) position: vec4<f32>) -> @builtin(position) vec4<f32> {
//	    return params.mvp * position;
//	}
//	@end
//
//	@fs fs
//	@fragment fn main() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }
//	@end
//
//	@program quad vs fs
//
// Every vs/fs snippet is a complete WGSL module. It is compiled with naga,
// its interface is reflected once, and the module is then translated to each
// enabled backend with naga's GLSL, HLSL and MSL writers.
package frontend
