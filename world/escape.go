package world

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
)

const escapeRings = 4

// minEscapeSum is the shortest summed offset that still yields a direction. Shorter sums are
// rounding noise from a symmetric blockage.
const minEscapeSum = float32(1e-3)

// escapePattern is a disk of unit offsets: the centre plus escapeRings rings of 8*k samples.
// It is symmetric about both axes.
var escapePattern = func() []mgl32.Vec2 {
	pattern := []mgl32.Vec2{{}}
	for k := 1; k <= escapeRings; k++ {
		r := float32(k) / escapeRings
		n := 8 * k
		for j := 0; j < n; j++ {
			a := 2 * math32.Pi * float32(j) / float32(n)
			pattern = append(pattern, mgl32.Vec2{r * math32.Cos(a), r * math32.Sin(a)})
		}
	}
	return pattern
}()

// EscapeVector samples a disk of the given radius around pos against tiles matching stop. The
// pressure is the blocked fraction of the disk scaled by (1 + pressureBias) and clamped to
// [0, 1]. The normal points away from the blocked samples and is zero when no direction can
// be resolved.
func (m *Mesh) EscapeVector(pos mgl32.Vec2, radius, pressureBias float32, stop game.TileFlags) (mgl32.Vec2, float32) {
	var (
		blocked int
		sum     mgl32.Vec2
	)
	for _, off := range escapePattern {
		p := pos.Add(off.Mul(radius))
		if m.TileFlagsAt(p[0], p[1]).Has(stop) {
			blocked++
			sum = sum.Sub(off)
		}
	}
	if blocked == 0 {
		return mgl32.Vec2{}, 0
	}

	pressure := float32(blocked) / float32(len(escapePattern)) * (1 + pressureBias)
	pressure = game.ClampFloat(pressure, 0, 1)
	if sum.Len() < minEscapeSum {
		return mgl32.Vec2{}, pressure
	}
	return sum.Normalize(), pressure
}

// Pressure returns only the pressure part of EscapeVector.
func (m *Mesh) Pressure(pos mgl32.Vec2, radius, pressureBias float32, stop game.TileFlags) float32 {
	_, p := m.EscapeVector(pos, radius, pressureBias, stop)
	return p
}
