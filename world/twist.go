package world

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
)

// twistStep is the slope represented by one step of a twist nibble.
const twistStep = float32(0.125)

var twistNormals [256]mgl32.Vec3

func init() {
	for t := 0; t < 256; t++ {
		dzdx := float32(t&0xF-7) * twistStep
		dzdy := float32(t>>4-7) * twistStep
		twistNormals[t] = mgl32.Vec3{-dzdx, -dzdy, 1}.Normalize()
	}
}

// TwistNormal returns the unit surface normal of a twist. The horizontal part points downhill.
func TwistNormal(twist uint8) mgl32.Vec3 {
	return twistNormals[twist]
}

// Twist returns the twist of the tile at index.
func (m *Mesh) Twist(index int32) uint8 {
	if index < 0 || int(index) >= len(m.twists) {
		return game.TwistFlat
	}
	return m.twists[index]
}

// TwistAt returns the twist of the tile containing (x, y).
func (m *Mesh) TwistAt(x, y float32) uint8 {
	idx, ok := m.TileIndex(x, y)
	if !ok {
		return game.TwistFlat
	}
	return m.twists[idx]
}

func (m *Mesh) computeTwist(tx, ty int) uint8 {
	h00, h10 := m.corner(tx, ty), m.corner(tx+1, ty)
	h01, h11 := m.corner(tx, ty+1), m.corner(tx+1, ty+1)
	dzdx := ((h10 - h00) + (h11 - h01)) / (2 * m.tileSize)
	dzdy := ((h01 - h00) + (h11 - h10)) / (2 * m.tileSize)
	return quantizeSlope(dzdy)<<4 | quantizeSlope(dzdx)
}

func quantizeSlope(s float32) uint8 {
	q := math32.Round(s/twistStep) + 7
	return uint8(game.ClampFloat(q, 0, 15))
}
