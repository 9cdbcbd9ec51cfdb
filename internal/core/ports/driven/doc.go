// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Analyzer: The external analysis service (per-file ingestion and QA)
//   - ContentStore: Ownership of raw document bytes behind opaque references
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - WorkspaceStore: Workspace persistence. Without it, the workspace is
//     purely in-memory and state is lost on exit.
//   - ConfigStore: Application configuration.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
