// Package windows provides the Win32 input and display backends through
// user32.dll, loaded with golang.org/x/sys/windows. The package is empty
// on other platforms.
package windows
