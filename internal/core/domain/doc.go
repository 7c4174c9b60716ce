// Package domain defines the core business entities for Pulse.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - NormalizedEvent: A remote activity event mapped to a display shape
//   - CaptureEvent: A locally captured interaction event
//   - UnifiedItem: Either of the two, tagged by origin, for merged display
//   - FetchOptions / Feed / RateInfo: The activity fetch contract
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
