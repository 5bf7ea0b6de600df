// Package state provides thread-safe load status tracking for dynotable.
//
// # Overview
//
// The load pipeline runs fetches on background goroutines while the
// renderer draws on its own event loop. Store is the meeting point for the
// bookkeeping both sides care about: which stage was announced last, whether
// a fetch is in flight, when the last success happened and how many loads
// have failed in a row.
//
//	Producer (pipeline):           Consumer (renderer):
//	┌──────────────────┐          ┌──────────────────┐
//	│ trigger → Begin()│          │                  │
//	│ fetch            │          │                  │
//	│ result → Finish()│─────────→│ store.Snapshot() │
//	│ repeat...        │ (RWMutex)│ render status bar│
//	└──────────────────┘          └──────────────────┘
//
// Frames themselves never pass through the Store; they travel on the
// pipeline's stage channel.
//
// # Update Semantics
//
//	store.Begin("loadingUnderway")
//	→ Waiting = true, Attempts++
//
//	store.Finish("loadSucceeded", nil)
//	→ Waiting = false, LastSuccess = now, ConsecutiveFailures = 0
//
//	store.Finish("loadFailed", err)
//	→ Waiting = false, LastError = err, ConsecutiveFailures++
//
// Snapshot returns a copy; LastError is re-wrapped so callers never share
// the stored error value.
//
// The zero Store is ready to use.
package state
