// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ActivitySource: Fetches and normalizes remote activity events
//   - CaptureStore: Durable persistence of the local capture log
//
// # Optional Interfaces
//
//   - InputSource: Feeds local interaction events while capture is on.
//     Without it, capture can only record heartbeats.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
