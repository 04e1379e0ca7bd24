package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTilesBetweenStraightLine(t *testing.T) {
	var got [][2]int
	for tile := range TilesBetween(mgl32.Vec2{0.5, 0.5}, mgl32.Vec2{3.5, 0.5}) {
		got = append(got, tile)
	}
	want := [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestTilesBetweenSamePoint(t *testing.T) {
	count := 0
	for tile := range TilesBetween(mgl32.Vec2{2.2, 7.9}, mgl32.Vec2{2.2, 7.9}) {
		if tile != [2]int{2, 7} {
			t.Fatalf("unexpected tile %v", tile)
		}
		count++
	}
	if count != 1 {
		t.Fatalf("expected exactly one tile, got %d", count)
	}
}

func TestBonusMultiplier(t *testing.T) {
	m := BonusMultipliers{Sprint: 2, Haste: 1.5, Encumbered: 0.5, Sneak: 0.25}
	if got := Bonus(0).Multiplier(m); got != 1 {
		t.Fatalf("no bonus should be 1, got %v", got)
	}
	if got := (BonusSprint | BonusHaste).Multiplier(m); !Float32ApproxEq(got, 3) {
		t.Fatalf("sprint+haste should be 3, got %v", got)
	}
	if got := (BonusSprint | BonusEncumbered).Multiplier(m); !Float32ApproxEq(got, 1) {
		t.Fatalf("sprint+encumbered should be 1, got %v", got)
	}
}
