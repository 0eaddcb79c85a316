// SPDX-License-Identifier: Unlicense OR MIT

// Package tty detects whether output goes to a terminal.
package tty

import "os"

// IsTerminal reports whether f refers to a terminal. It is false for nil.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isTerminal(f.Fd())
}
