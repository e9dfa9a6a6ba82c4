// Package ui renders build progress, warnings and results to the console.
//
// A Console has one of three concrete formats. Text prints the plain lines a
// build has always printed and is what non-terminal output gets. Terminal
// styles the same lines with the embedded lipgloss styles. JSON writes one
// object per event for tooling.
package ui
