// Package views holds the stateful view models behind each page.
//
// A view is owned by one browser session and outlives a single request.
// Fetches are started through a Loader or guarded by a Sequencer so that
// only the response to the most recent input is ever applied; anything a
// superseded request returns is dropped.
package views
