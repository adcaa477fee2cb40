package wm

import (
	"slices"
	"testing"

	"github.com/1broseidon/stacker/internal/platform"
)

func TestTasklist_InsertAfter(t *testing.T) {
	tl := NewTasklist()
	tl.Append(0, 1)
	tl.Append(0, 2)
	tl.InsertAfter(0, 3, 1)
	tl.InsertAfter(0, 4, 99)
	if got := tl.Order(0); !slices.Equal(got, ids(1, 3, 2, 4)) {
		t.Fatalf("expected [1 3 2 4], got %v", got)
	}
}

func TestTasklist_Neighbor(t *testing.T) {
	tl := NewTasklist()
	if _, ok := tl.Neighbor(0, 1, 1); ok {
		t.Fatalf("empty list has no neighbor")
	}
	for _, id := range ids(1, 2, 3) {
		tl.Append(0, id)
	}
	tests := []struct {
		from  uint32
		delta int
		want  uint32
	}{
		{1, 1, 2},
		{3, 1, 1},
		{1, -1, 3},
		{0, 1, 1},
		{0, -1, 3},
	}
	for _, tt := range tests {
		got, ok := tl.Neighbor(0, platform.WindowID(tt.from), tt.delta)
		if !ok || uint32(got) != tt.want {
			t.Fatalf("neighbor(%d, %d): expected %d, got %d", tt.from, tt.delta, tt.want, got)
		}
	}
}

func TestTasklist_MoveUnknownWindow(t *testing.T) {
	tl := NewTasklist()
	tl.Append(0, 1)
	if tl.Move(0, 2, 0) || tl.Shift(0, 2, 1) {
		t.Fatalf("moving an absent window should report false")
	}
}

func TestTasklist_ShiftSwapsWithWrappedPartner(t *testing.T) {
	tests := []struct {
		name  string
		id    platform.WindowID
		delta int
		want  []platform.WindowID
	}{
		{"forward in the middle", 2, 1, []platform.WindowID{1, 3, 2, 4}},
		{"backward in the middle", 3, -1, []platform.WindowID{1, 3, 2, 4}},
		{"forward from the end", 4, 1, []platform.WindowID{4, 2, 3, 1}},
		{"backward from the start", 1, -1, []platform.WindowID{4, 2, 3, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := NewTasklist()
			for _, id := range []platform.WindowID{1, 2, 3, 4} {
				tl.Append(0, id)
			}
			if !tl.Shift(0, tt.id, tt.delta) {
				t.Fatalf("Shift(%d, %d) reported no change", tt.id, tt.delta)
			}
			if got := tl.Order(0); !slices.Equal(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
