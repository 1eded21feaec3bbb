// SPDX-License-Identifier: MPL-2.0

// Package catalog loads and models the module catalog.
//
// This package intentionally combines three related concerns:
//   - Descriptor parsing: schema-validated parsing of one JSON descriptor
//     into a typed Module record
//   - Catalog loading: the bounded parallel fan-out over a descriptor
//     directory with per-file error isolation
//   - Ignore-list expansion: resolving group macros once the complete record
//     set exists
//
// They stay together because expansion and the derived record fields are
// meaningless without the loaded corpus, and splitting them would only add
// indirection.
//
// File organization:
//   - module.go: Module/Derived/Entry types and published serialization
//   - descriptor.go: single-descriptor parsing and the round-trip self-check
//   - loader.go: directory fan-out/fan-in (Load)
//   - ignore.go: group-macro expansion (ExpandIgnoreLists)
package catalog
