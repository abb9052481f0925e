// Package darwin provides the macOS input and display backends using
// CoreGraphics events and display capture.
// All functionality requires CGo (Objective-C frameworks).
// On other platforms, or when CGo is disabled, the package is empty.
package darwin
