// Package models defines domain entities for the conversation migration service.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight values flowing through the pipeline
//   - [SourceUser] : One roster row, a migration candidate from the source platform
//   - [ResultRow] : Accumulated outcome of migrating one user's conversations
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [MigrationRun] : One invocation of the pipeline, tracked in the run ledger
//
// Persistent entities implement the Model interface providing ID generation, timestamps,
// validation, and soft delete support. The Repository[T] interface defines standard CRUD
// operations for database access.
package models
