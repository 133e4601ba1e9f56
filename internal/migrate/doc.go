// Package migrate orchestrates contact and conversation migration between two messaging tenants with real-time progress reporting.
//
// # Core Operations
//
// The [Engine] drives the pipeline:
//
//  1. [Engine.Run] : Full roster migration
//     - Resolves or creates each roster contact on the destination
//     - Copies every conversation the contact participates in
//     - Returns per-contact result rows for the registry
//
//  2. [Engine.MigrateUser] : Single contact migration
//     - Same pipeline for one roster entry, used by targeted reruns
//
// # Identity Resolution
//
// [Resolver] maps source identities onto the destination tenant:
//   - contacts by email first, then phone, creating a contact when neither matches
//   - agents by directory email match, falling back to a fixed agent
//   - channels by name match, falling back to a default channel
//
// Agent and channel directories are fetched once per run and cached. A failed
// directory fetch falls back to the configured defaults and is retried on the
// next lookup.
//
// # Message Transformation
//
// [TransformMessage] rewrites message actors for the destination tenant:
// the migrated contact keeps its new identity, every other actor collapses
// onto the configured fixed actor. Auto-generated system messages are dropped
// and the remainder is replayed in chronological order.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Throttling
//
// [Throttle] paces write traffic against the destination tenant with a
// [rate.Limiter], one conversation or contact per configured delay.
package migrate
