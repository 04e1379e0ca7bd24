package game

import (
	"iter"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// TilesBetween yields the tile coordinates crossed by the segment from start to end, in order,
// starting with the tile containing start. Coordinates are in tile units.
func TilesBetween(start, end mgl32.Vec2) iter.Seq[[2]int] {
	return func(yield func([2]int) bool) {
		current := [2]int{int(math32.Floor(start[0])), int(math32.Floor(start[1]))}
		delta := end.Sub(start)
		length := delta.Len()
		if length <= 0 {
			yield(current)
			return
		}
		dir := delta.Mul(1 / length)

		stepX, stepY := signum(dir[0]), signum(dir[1])
		tMaxX := distanceToBoundary(start[0], dir[0])
		tMaxY := distanceToBoundary(start[1], dir[1])

		tDeltaX := float32(math32.MaxFloat32)
		if dir[0] != 0 {
			tDeltaX = float32(stepX) / dir[0]
		}
		tDeltaY := float32(math32.MaxFloat32)
		if dir[1] != 0 {
			tDeltaY = float32(stepY) / dir[1]
		}

		for {
			if !yield(current) {
				return
			}
			if tMaxX < tMaxY {
				if tMaxX > length {
					return
				}
				current[0] += stepX
				tMaxX += tDeltaX
			} else {
				if tMaxY > length {
					return
				}
				current[1] += stepY
				tMaxY += tDeltaY
			}
		}
	}
}

func signum(v float32) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func distanceToBoundary(s, ds float32) float32 {
	if ds == 0 {
		return math32.MaxFloat32
	}
	if ds < 0 {
		s = -s
		ds = -ds
		if math32.Floor(s) == s {
			return 0
		}
	}
	return (1 - (s - math32.Floor(s))) / ds
}
