// Package terminal runs the engine inside a terminal through tcell.
//
// Features:
//   - Key presses become engine key events; releases are synthesized after a hold timeout
//     because terminals only report presses and auto-repeats
//   - Focus reporting drives the engine's suspend/resume cycle
//   - Ctrl-C and RequestQuit deliver a quit event instead of killing the process
//   - Frames are shown with upper half-block cells, two pixels per cell, scaled to fit
//
// The tcell screen is finalised by Close, which also unblocks a pending Wait.
package terminal
