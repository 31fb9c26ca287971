// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package refl is the reflection model shared by the shdc frontend and the
// binding emitters.
//
// A Reflection describes, for one target Backend, every vertex and fragment
// snippet of an Input: its cross-compiled source code, entry point, vertex
// inputs, uniform blocks, images, samplers and image-sampler pairs. The model
// is built once by a frontend and is read-only afterwards.
//
// # Backends
//
// Backend is a closed set enumerated in a fixed order. Family membership is
// answered by predicates (IsGLSL, IsHLSL, IsMSL, IsWGSL) instead of a type
// hierarchy, and a BackendSet bitmask selects which backends a run emits.
//
// # Deduplication
//
// Resources shared by several stages of one backend (a uniform block used by
// both the vertex and the fragment shader) appear once in the Unique* lists of
// a Reflection. The lists are built through a Registry, which keeps the first
// registration of every name and ignores the rest.
package refl
