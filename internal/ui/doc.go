// Package ui provides the Bubble Tea terminal interface for listsync.
//
// The screen has a status header, the current list on the left, the change
// log on the right (newest first, coloured by edit kind) and a key hint
// footer. The list pane is drawn from the state.Store replica, which is
// rebuilt from edits only, so what you see is exactly what a subscriber
// reconstructs.
//
// # Event Flow
//
//  1. Run() starts the program with the alternate screen
//  2. waitForChangeCmd blocks on state.Store.Changed() and fetches a snapshot
//     after every batch or poll outcome
//  3. A one second tick refreshes the header clock between batches
//  4. Cancelling the context passed in Options stops the program
//
// Theme and change log visibility are saved to prefs.toml when toggled.
package ui
