// Package app is the composition root of dynotable.
//
// Run loads configuration, opens the configured data source, starts the
// load pipeline and hands its stage stream to the table view:
//
//	config.Load ──> applyOptions ──> openHandle (dynamo | sqlite)
//	                                     │
//	                  loader.New(frame.LoadObjects) ──> Start ──> stages
//	                                                               │
//	                                          tableview.Run <──────┘
//	                                               │
//	                                       Reload ─┘ (pipeline)
//
// The standard logger is redirected to the configured log file for the
// lifetime of the TUI. Cancelling the context, or quitting the view, stops
// the pipeline and releases the source.
package app
