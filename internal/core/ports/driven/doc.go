// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - PlanStore: Plan and module persistence
//   - FeedbackStore: Feedback and note persistence
//   - PlanIndex: Similarity lookup of prior plans by topic embedding
//   - EmbeddingService: Generates topic embeddings. Plan creation is
//     impossible without it, so its failures propagate as fatal.
//   - JudgeService: Text generation used for outlines, queries and
//     best-candidate judgments. Judge failures degrade to sentinels.
//   - WebSearchProvider, VideoSearchProvider: Candidate discovery.
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - TranscriptService: Video transcript fetch. Without it, note
//     taking is disabled; curation is unaffected.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
