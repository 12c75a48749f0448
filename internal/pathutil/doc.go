// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides reference and location helpers for document
// traversal.
//
// # Reference Helpers
//
// Component references are local JSON pointers:
//
//	ref := pathutil.SchemaRef("Pet")               // "#/components/schemas/Pet"
//	name, ok := pathutil.TrimRef(ref, pathutil.RefPrefixSchemas) // "Pet", true
//	section, name, ok := pathutil.SplitComponentRef("#/components/parameters/Limit")
//
// Names are escaped and unescaped per RFC 6901 ("~0" for "~", "~1" for "/").
//
// # PointerBuilder
//
// [PointerBuilder] uses push/pop semantics so recursive walks only build a
// pointer string when they need to report one. Use [Get] and [Put] to pool
// builders:
//
//	ptr := pathutil.Get()
//	defer pathutil.Put(ptr)
//
//	ptr.Push("paths")
//	ptr.Push("/pets")   // escaped to "~1pets"
//	fmt.Println(ptr.String()) // "/paths/~1pets"
//
// # Output Path Sanitization
//
// [SanitizeOutputPath] cleans output file paths and rejects symlinks.
package pathutil
