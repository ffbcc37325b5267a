// Package capture drives the detection pipeline at a fixed frame rate.
//
// A Source produces frames (browser snapshots via SnapshotSource, or still
// images on disk via FileSource), Loop processes one frame per tick using a
// fresh snapshot of the live HSL range, and a Sink consumes the result
// (LatestSink for the web UI, DirSink for files).
//
// The loop is the only goroutine involved; frames are handed over by pointer
// and never touched again by the producer.
package capture
