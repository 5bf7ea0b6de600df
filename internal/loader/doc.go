// Package loader drives the fetch lifecycle of a table.
//
// A Pipeline owns one data source handle and one fetch function. Once a
// consumer attaches with Start, the pipeline announces every load on a
// single stage channel:
//
//	Start            → loadingInitialised → loadSucceeded | loadFailed
//	timer tick       → loadingUnderway    → loadSucceeded | loadFailed
//	Reload           → refreshing         → loadSucceeded | loadFailed
//
// Timer ticks that arrive while a fetch is running are skipped, so a scan
// slower than the refresh period still completes. Reload cancels the fetch
// still in flight and results of superseded attempts are dropped, so the
// consumer always sees the newest frame last.
// Reload resets the source connection before fetching; fetches hold the
// handle's read lock and resets take the write lock.
//
// Cancel stops the timer and the in-flight fetch and closes the stage
// channel. Nothing is delivered after Cancel returns.
package loader
