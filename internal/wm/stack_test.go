package wm

import (
	"errors"
	"slices"
	"testing"

	"github.com/1broseidon/stacker/internal/platform"
)

func TestStackOrder_InsertPreservesArrivalOrder(t *testing.T) {
	s := NewStackOrder()
	for _, id := range ids(1, 2, 3) {
		if err := s.Insert(0, id); err != nil {
			t.Fatalf("insert %d: %v", id, err)
		}
	}
	if got := s.Order(0); !slices.Equal(got, ids(1, 2, 3)) {
		t.Fatalf("expected [1 2 3], got %v", got)
	}
	if top, ok := s.Topmost(0); !ok || top != 3 {
		t.Fatalf("expected topmost 3, got %d (%v)", top, ok)
	}
}

func TestStackOrder_InsertInvalidWorkspace(t *testing.T) {
	s := NewStackOrder()
	if err := s.Insert(NumWorkspaces, 1); !errors.Is(err, ErrInvalidWorkspace) {
		t.Fatalf("expected ErrInvalidWorkspace, got %v", err)
	}
}

func TestStackOrder_InsertMovesBetweenWorkspaces(t *testing.T) {
	s := NewStackOrder()
	_ = s.Insert(0, 1)
	_ = s.Insert(4, 1)
	if s.Contains(0, 1) {
		t.Fatalf("window still on workspace 0")
	}
	if ws, ok := s.WorkspaceOf(1); !ok || ws != 4 {
		t.Fatalf("expected workspace 4, got %d (%v)", ws, ok)
	}
}

func TestStackOrder_RemoveIsIdempotent(t *testing.T) {
	s := NewStackOrder()
	_ = s.Insert(0, 1)
	if !s.Remove(0, 1) {
		t.Fatalf("first remove should report true")
	}
	if s.Remove(0, 1) {
		t.Fatalf("second remove should report false")
	}
	if s.Len(0) != 0 {
		t.Fatalf("expected empty stack")
	}
}

func TestStackOrder_RaiseTopmostKeepsOrder(t *testing.T) {
	s := NewStackOrder()
	for _, id := range ids(1, 2, 3) {
		_ = s.Insert(0, id)
	}
	if !s.Raise(0, 3) {
		t.Fatalf("raise of present window should report true")
	}
	if got := s.Order(0); !slices.Equal(got, ids(1, 2, 3)) {
		t.Fatalf("expected unchanged order, got %v", got)
	}
	if s.Raise(0, 9) {
		t.Fatalf("raise of absent window should report false")
	}
}

func TestStackOrder_RaiseAndLower(t *testing.T) {
	tests := []struct {
		name string
		op   func(*StackOrder)
		want []uint32
	}{
		{"raise bottom", func(s *StackOrder) { s.Raise(0, 1) }, []uint32{2, 3, 1}},
		{"raise middle", func(s *StackOrder) { s.Raise(0, 2) }, []uint32{1, 3, 2}},
		{"lower top", func(s *StackOrder) { s.Lower(0, 3) }, []uint32{3, 1, 2}},
		{"lower bottom", func(s *StackOrder) { s.Lower(0, 1) }, []uint32{1, 2, 3}},
		{"raise next", func(s *StackOrder) { s.RaiseNext(0) }, []uint32{3, 1, 2}},
		{"raise prev", func(s *StackOrder) { s.RaisePrev(0) }, []uint32{2, 3, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStackOrder()
			for _, id := range ids(1, 2, 3) {
				_ = s.Insert(0, id)
			}
			tt.op(s)
			got := s.Order(0)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if uint32(got[i]) != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestStackOrder_RaiseNextPromotesWindowBelowTop(t *testing.T) {
	s := NewStackOrder()
	for _, id := range ids(1, 2, 3) {
		_ = s.Insert(0, id)
	}
	s.RaiseNext(0)
	if top, _ := s.Topmost(0); top != 2 {
		t.Fatalf("expected 2 on top after raise next, got %d", top)
	}
}

func TestStackOrder_RaiseNextThenPrevRoundTrip(t *testing.T) {
	for n := 2; n <= 5; n++ {
		s := NewStackOrder()
		for i := 1; i <= n; i++ {
			_ = s.Insert(2, platform.WindowID(i))
		}
		before := s.Order(2)
		s.RaiseNext(2)
		s.RaisePrev(2)
		if got := s.Order(2); !slices.Equal(got, before) {
			t.Fatalf("n=%d: expected %v after round trip, got %v", n, before, got)
		}
	}
}

func TestStackOrder_CycleSmallStacksAreNoops(t *testing.T) {
	s := NewStackOrder()
	if s.RaiseNext(0) || s.RaisePrev(0) {
		t.Fatalf("cycling an empty stack should be a no-op")
	}
	_ = s.Insert(0, 7)
	if s.RaiseNext(0) || s.RaisePrev(0) {
		t.Fatalf("cycling a single window should be a no-op")
	}
	if got := s.Order(0); !slices.Equal(got, ids(7)) {
		t.Fatalf("expected [7], got %v", got)
	}
}
