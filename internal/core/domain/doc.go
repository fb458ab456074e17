// Package domain defines the core business entities for Curio.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Plan: A learning curriculum keyed by topic, with its embedding
//   - Module: One curriculum step with curated article and videos
//   - Feedback: An append-only resource rating
//   - Note: Generated study notes for a video
//   - CuratedResource: A judged best-candidate (or sentinel) record
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
