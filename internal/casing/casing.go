// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package casing converts snake_case identifiers into the Pascal and camel
// forms used by generated Nim code.
package casing

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Pascal splits s on underscores, capitalizes every part (first letter upper,
// remaining letters lower) and joins the parts.
//
//	Pascal("ATTR_quad_vs_position") == "AttrQuadVsPosition"
func Pascal(s string) string {
	title := cases.Title(language.Und)
	var b strings.Builder
	b.Grow(len(s))
	for _, part := range strings.Split(s, "_") {
		if part == "" {
			continue
		}
		b.WriteString(title.String(part))
	}
	return b.String()
}

// Camel is Pascal with a lower-case first letter.
//
//	Camel("SLOT_quad_params") == "slotQuadParams"
func Camel(s string) string {
	p := Pascal(s)
	if p == "" {
		return p
	}
	return strings.ToLower(p[:1]) + p[1:]
}
