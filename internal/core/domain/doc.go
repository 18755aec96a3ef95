// Package domain defines the core business entities for workmirror.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Kind: The closed set of remote resource kinds
//   - Reference: A minimal pointer to a remote resource
//   - Record: The full, annotated attribute set of one resource
//   - Summary: Per-kind materialisation counts for one crawl pass
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
