package cancel

import (
	"testing"

	"github.com/dshills/keycancel/internal/input/key"
)

func TestRulesTable(t *testing.T) {
	r := Rules{
		{Press: key.KeyW, Unpress: key.KeyS},
		{Press: key.KeyS, Unpress: key.KeyW},
	}

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if got := r.At(0); got.Press != key.KeyW || got.Unpress != key.KeyS {
		t.Errorf("At(0) = %+v", got)
	}
}

func TestOpposing(t *testing.T) {
	r := Opposing(key.KeyA, key.KeyD)
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if r[0] != (Rule{Press: key.KeyA, Unpress: key.KeyD}) {
		t.Errorf("r[0] = %+v", r[0])
	}
	if r[1] != (Rule{Press: key.KeyD, Unpress: key.KeyA}) {
		t.Errorf("r[1] = %+v", r[1])
	}
}

func TestHasPress(t *testing.T) {
	r := Rules{
		{Press: key.KeyW, Unpress: key.KeyS},
		{Press: key.KeyW, Unpress: key.KeyA}, // duplicate press side is allowed
	}

	if !hasPress(r, key.KeyW) {
		t.Error("hasPress(W) = false, want true")
	}
	if hasPress(r, key.KeyS) {
		t.Error("hasPress(S) = true, want false (unpress side only)")
	}
	if hasPress(r, key.KeyZ) {
		t.Error("hasPress(Z) = true, want false")
	}
}
