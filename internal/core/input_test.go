package core

import "testing"

func TestInputFrameEdges(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Press(ActionJump)
	f.Release(ActionJump)

	if !f.Pressed(ActionJump) || !f.Released(ActionJump) {
		t.Error("frame should carry both jump edges")
	}
	if f.Pressed(ActionRestart) {
		t.Error("restart was never pressed")
	}

	c := f.Clone()
	f.Clear()

	if !f.Empty() {
		t.Error("Clear should drop every edge")
	}
	if !c.Pressed(ActionJump) || !c.Released(ActionJump) {
		t.Error("Clone should be independent of the original")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Pressed(ActionJump) {
		t.Error("zero frame should report no presses")
	}
	f.Press(ActionPause)
	if !f.Pressed(ActionPause) {
		t.Error("Press on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	if ActionJump.String() != "Jump" || Action(99).String() != "Unknown" {
		t.Error("unexpected action names")
	}
}
