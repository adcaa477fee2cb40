package placement

import (
	"testing"

	"github.com/1broseidon/stacker/internal/platform"
)

func TestCenter(t *testing.T) {
	area := platform.Rect{X: 0, Y: 20, Width: 1920, Height: 1060}
	tests := []struct {
		name string
		win  platform.Rect
		want platform.Rect
	}{
		{
			name: "small window centered",
			win:  platform.Rect{Width: 400, Height: 300},
			want: platform.Rect{X: 760, Y: 400, Width: 400, Height: 300},
		},
		{
			name: "full width window gets default size",
			win:  platform.Rect{Width: 1920, Height: 1080},
			want: platform.Rect{X: 460, Y: 150, Width: 1000, Height: 800},
		},
		{
			name: "too tall window is clamped",
			win:  platform.Rect{Width: 100, Height: 5000},
			want: platform.Rect{X: 910, Y: 20, Width: 100, Height: 1060},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Center(tt.win, area); got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestCenter_DefaultSizeLargerThanArea(t *testing.T) {
	area := platform.Rect{Width: 800, Height: 600}
	got := Center(platform.Rect{Width: 800, Height: 600}, area)
	if got != area {
		t.Fatalf("expected %+v, got %+v", area, got)
	}
}

func TestWorkArea(t *testing.T) {
	screen := platform.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}
	got := WorkArea(screen, Margins{Top: 30, Bottom: 10, Left: 5, Right: 5})
	want := platform.Rect{X: 1925, Y: 30, Width: 1910, Height: 1040}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	tiny := WorkArea(platform.Rect{Width: 10, Height: 10}, Margins{Left: 20})
	if tiny.Width != 1 {
		t.Fatalf("expected width clamped to 1, got %d", tiny.Width)
	}
}

func TestClamp(t *testing.T) {
	area := platform.Rect{X: 0, Y: 30, Width: 1000, Height: 700}
	got := Clamp(platform.Rect{X: -50, Y: 900, Width: 100, Height: 100}, area)
	if got.X != 0 || got.Y != 30 {
		t.Fatalf("expected window pulled to 0,30, got %+v", got)
	}
	inside := platform.Rect{X: 10, Y: 40, Width: 100, Height: 100}
	if got := Clamp(inside, area); got != inside {
		t.Fatalf("window inside area should not move, got %+v", got)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(""); err != nil || m != ModeCenter {
		t.Fatalf("expected center default, got %q %v", m, err)
	}
	if _, err := ParseMode("tile"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if err := (Margins{Top: -1}).Validate(); err == nil {
		t.Fatalf("expected error for negative margin")
	}
}

func TestInset(t *testing.T) {
	got := Inset(platform.Rect{X: 0, Y: 0, Width: 100, Height: 50}, 2)
	if got != (platform.Rect{Width: 96, Height: 46}) {
		t.Fatalf("unexpected inset %+v", got)
	}
}
