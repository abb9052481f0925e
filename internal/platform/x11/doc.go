// Package x11 provides the Linux input and display backends on top of Xlib
// and the XTest extension. Wayland sessions are only supported through
// XWayland. On other platforms, or without CGo, the package is empty.
package x11
