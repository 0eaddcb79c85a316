// SPDX-License-Identifier: Unlicense OR MIT

//go:build !unix && !windows

package tty

func isTerminal(fd uintptr) bool {
	return false
}
