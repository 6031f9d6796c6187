// Package classifier provides per-frame laughter probability prediction.
//
// The FrameClassifier interface decouples the analysis pipeline from the
// model backend. The HTTP client implementation sends batched feature
// matrices to an external inference service with concurrency limiting and
// retry with exponential backoff.
package classifier
