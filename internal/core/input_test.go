package core

import (
	"testing"
	"time"
)

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionSelect)
	f.AddPointer(PointerEvent{Kind: PointerPress, X: 3, Y: 4})
	f.AddPointer(PointerEvent{Kind: PointerRelease, X: 7, Y: 4})

	if !f.Has(ActionSelect) || f.Has(ActionLeft) {
		t.Errorf("Has: select=%v left=%v", f.Has(ActionSelect), f.Has(ActionLeft))
	}
	if len(f.Pointer) != 2 || f.Pointer[1].Kind != PointerRelease {
		t.Errorf("pointer events = %+v", f.Pointer)
	}

	f.Clear()
	if !f.Empty() {
		t.Errorf("frame not empty after Clear: %+v", f)
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUp) {
		t.Error("zero frame has no actions")
	}
	f.Set(ActionUp)
	if !f.Has(ActionUp) {
		t.Error("Set on zero frame")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:    "None",
		ActionLeft:    "Left",
		ActionSelect:  "Select",
		ActionRestart: "Restart",
		Action(99):    "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", a, got, want)
		}
	}
}

func TestTickDuration(t *testing.T) {
	if got := (RuntimeConfig{TickRate: 50}).TickDuration(); got != 20*time.Millisecond {
		t.Errorf("TickDuration(50) = %v", got)
	}
	if got := (RuntimeConfig{}).TickDuration(); got != time.Second/60 {
		t.Errorf("TickDuration(0) = %v", got)
	}
}
