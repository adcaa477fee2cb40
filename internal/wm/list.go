package wm

import (
	"slices"

	"github.com/1broseidon/stacker/internal/platform"
)

// Small helpers over handle slices shared by StackOrder and Tasklist.

func without(list []platform.WindowID, id platform.WindowID) ([]platform.WindowID, bool) {
	i := slices.Index(list, id)
	if i < 0 {
		return list, false
	}
	return slices.Delete(list, i, i+1), true
}

func insertAt(list []platform.WindowID, pos int, id platform.WindowID) []platform.WindowID {
	if pos < 0 {
		pos = 0
	}
	if pos > len(list) {
		pos = len(list)
	}
	return slices.Insert(list, pos, id)
}

// wrap maps i into [0, n) with wrap-around.
func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}
