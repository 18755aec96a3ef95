// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the crawler to function:
//
//   - ResourceAPI: Rate-limited access to the remote resource API
//   - RecordStore: Document-store persistence, the system of record
//   - RendererRegistry: Per-kind record-to-text rendering
//
// # Optional Interfaces
//
// These can be nil - the crawler degrades gracefully:
//
//   - VectorIndex: Semantic index writes. Only enabled with EmbeddingService.
//   - EmbeddingService: Generates vector embeddings. Without it, vector
//     writes are skipped entirely.
//   - WebhookService: Subscription bookkeeping for the webhook subsystem.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
