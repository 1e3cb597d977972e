// internal/engine/versions.go
package engine

import (
	"time"

	"github.com/naveenvasou/cerina-v0/internal/types"
)

// draftLineage is the ordered draft version history plus the pointer to
// the version currently on display. Versions are never renumbered once
// assigned; browsing moves only the pointer.
type draftLineage struct {
	versions []types.DraftVersion
	current  int // version number of the displayed record, 0 = none
}

// Record appends a new version and points the display at it. When the
// event supplied no explicit version number the next sequential one is
// assigned.
func (l *draftLineage) Record(version int, content string, status types.DraftStatus, iteration int, changes string) types.DraftVersion {
	if version <= 0 {
		version = len(l.versions) + 1
	}
	v := types.DraftVersion{
		Version:   version,
		Content:   content,
		Timestamp: time.Now(),
		Status:    status,
		Iteration: iteration,
		Changes:   changes,
	}
	l.versions = append(l.versions, v)
	l.current = v.Version
	return v
}

// Select points the display at an existing version without touching the
// stored sequence. Unknown versions are ignored.
func (l *draftLineage) Select(version int) {
	for _, v := range l.versions {
		if v.Version == version {
			l.current = version
			return
		}
	}
}

// Reset discards the lineage. A fresh drafting pass invalidates prior
// draft history.
func (l *draftLineage) Reset() {
	l.versions = nil
	l.current = 0
}

// Current returns the displayed version, if any.
func (l *draftLineage) Current() (types.DraftVersion, bool) {
	for _, v := range l.versions {
		if v.Version == l.current {
			return v, true
		}
	}
	return types.DraftVersion{}, false
}

// critiqueLineage accumulates critique iterations within a session.
// Critiques always append; a new drafting pass does not reset them.
type critiqueLineage struct {
	docs    []types.CritiqueDocument
	current int // iteration number of the displayed document, 0 = none
}

// Record appends a new critique iteration and points the display at it.
func (l *critiqueLineage) Record(iteration int, content string) types.CritiqueDocument {
	if iteration <= 0 {
		iteration = len(l.docs) + 1
	}
	d := types.CritiqueDocument{
		Content:   content,
		Iteration: iteration,
		Timestamp: time.Now(),
	}
	l.docs = append(l.docs, d)
	l.current = d.Iteration
	return d
}

// Select points the display at an existing iteration; unknown iterations
// are ignored.
func (l *critiqueLineage) Select(iteration int) {
	for _, d := range l.docs {
		if d.Iteration == iteration {
			l.current = iteration
			return
		}
	}
}

// Current returns the displayed critique, if any.
func (l *critiqueLineage) Current() (types.CritiqueDocument, bool) {
	for _, d := range l.docs {
		if d.Iteration == l.current {
			return d, true
		}
	}
	return types.CritiqueDocument{}, false
}
