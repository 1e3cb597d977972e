// Package state provides filesystem-backed capture of raw event streams.
package state

import "github.com/naveenvasou/cerina-v0/internal/types"

// Compile-time interface compliance check.
var _ types.Recorder = (*TranscriptStore)(nil)
