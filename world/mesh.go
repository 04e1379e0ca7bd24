package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/game"
)

// MeshQuery is what the motion core needs to know about the static world.
type MeshQuery interface {
	ElevationAt(x, y float32, useWater bool) float32
	TileFlags(index int32) game.TileFlags
	TileFlagsAt(x, y float32) game.TileFlags
	EscapeVector(pos mgl32.Vec2, radius, pressureBias float32, stop game.TileFlags) (mgl32.Vec2, float32)
}

// Mesh is a rectangular heightfield of square tiles. Heights are stored at tile corners and
// interpolated bilinearly. Everything outside the mesh is a wall.
type Mesh struct {
	width, height int
	tileSize      float32

	corners    []float32
	flags      []game.TileFlags
	twists     []uint8
	waterLevel float32
}

// NewMesh returns a flat, open mesh of width by height tiles at elevation 0.
func NewMesh(width, height int, tileSize float32) *Mesh {
	width, height = max(width, 1), max(height, 1)
	m := &Mesh{
		width:      width,
		height:     height,
		tileSize:   tileSize,
		corners:    make([]float32, (width+1)*(height+1)),
		flags:      make([]game.TileFlags, width*height),
		twists:     make([]uint8, width*height),
		waterLevel: entity.NoWater,
	}
	for i := range m.twists {
		m.twists[i] = game.TwistFlat
	}
	return m
}

// Width returns the mesh width in tiles.
func (m *Mesh) Width() int { return m.width }

// Height returns the mesh height in tiles.
func (m *Mesh) Height() int { return m.height }

// TileSize returns the edge length of a tile.
func (m *Mesh) TileSize() float32 { return m.tileSize }

// Extent returns the size of the mesh in world units.
func (m *Mesh) Extent() mgl32.Vec2 {
	return mgl32.Vec2{float32(m.width) * m.tileSize, float32(m.height) * m.tileSize}
}

// TileIndex returns the index of the tile containing (x, y).
func (m *Mesh) TileIndex(x, y float32) (int32, bool) {
	tx, ty := int(math32.Floor(x/m.tileSize)), int(math32.Floor(y/m.tileSize))
	if tx < 0 || ty < 0 || tx >= m.width || ty >= m.height {
		return -1, false
	}
	return int32(ty*m.width + tx), true
}

// SetTile replaces the flags of tile (tx, ty).
func (m *Mesh) SetTile(tx, ty int, flags game.TileFlags) {
	if tx < 0 || ty < 0 || tx >= m.width || ty >= m.height {
		return
	}
	m.flags[ty*m.width+tx] = flags
}

// SetCornerHeight sets the height of corner (cx, cy) and refreshes the twists of the tiles
// sharing it.
func (m *Mesh) SetCornerHeight(cx, cy int, z float32) {
	if cx < 0 || cy < 0 || cx > m.width || cy > m.height {
		return
	}
	m.corners[cy*(m.width+1)+cx] = z
	for ty := cy - 1; ty <= cy; ty++ {
		for tx := cx - 1; tx <= cx; tx++ {
			if tx >= 0 && ty >= 0 && tx < m.width && ty < m.height {
				m.twists[ty*m.width+tx] = m.computeTwist(tx, ty)
			}
		}
	}
}

// SetWaterLevel sets the height of the water surface on water tiles.
func (m *Mesh) SetWaterLevel(z float32) {
	m.waterLevel = z
}

// TileFlags returns the flags of the tile at index. Invalid indices read as off-mesh.
func (m *Mesh) TileFlags(index int32) game.TileFlags {
	if index < 0 || int(index) >= len(m.flags) {
		return game.TileOffMesh
	}
	return m.flags[index]
}

// TileFlagsAt returns the flags of the tile containing (x, y).
func (m *Mesh) TileFlagsAt(x, y float32) game.TileFlags {
	idx, ok := m.TileIndex(x, y)
	if !ok {
		return game.TileOffMesh
	}
	return m.flags[idx]
}

func (m *Mesh) corner(cx, cy int) float32 {
	cx, cy = min(max(cx, 0), m.width), min(max(cy, 0), m.height)
	return m.corners[cy*(m.width+1)+cx]
}

// ElevationAt returns the ground height at (x, y). With useWater, the water surface is
// returned instead where it lies above the ground.
func (m *Mesh) ElevationAt(x, y float32, useWater bool) float32 {
	fx, fy := x/m.tileSize, y/m.tileSize
	tx, ty := int(math32.Floor(fx)), int(math32.Floor(fy))
	u := game.ClampFloat(fx-float32(tx), 0, 1)
	v := game.ClampFloat(fy-float32(ty), 0, 1)

	bottom := game.Lerp(m.corner(tx, ty), m.corner(tx+1, ty), u)
	top := game.Lerp(m.corner(tx, ty+1), m.corner(tx+1, ty+1), u)
	z := game.Lerp(bottom, top, v)

	if useWater {
		z = math32.Max(z, m.WaterLevelAt(x, y))
	}
	return z
}

// WaterLevelAt returns the water surface at (x, y), or entity.NoWater on dry tiles.
func (m *Mesh) WaterLevelAt(x, y float32) float32 {
	if !m.TileFlagsAt(x, y).Has(game.TileWater) {
		return entity.NoWater
	}
	return m.waterLevel
}

// TilesOverlapping calls fn for every tile whose bounds intersect the horizontal extent of box.
// Off-mesh tiles are not reported.
func (m *Mesh) TilesOverlapping(box cube.BBox, fn func(index int32, flags game.TileFlags)) {
	lo, hi := box.Min(), box.Max()
	x0 := max(int(math32.Floor(lo[0]/m.tileSize)), 0)
	y0 := max(int(math32.Floor(lo[1]/m.tileSize)), 0)
	x1 := min(int(math32.Floor(hi[0]/m.tileSize)), m.width-1)
	y1 := min(int(math32.Floor(hi[1]/m.tileSize)), m.height-1)
	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			idx := int32(ty*m.width + tx)
			fn(idx, m.flags[idx])
		}
	}
}

// BlockedNear reports whether any tile in box, including off-mesh area, matches stop.
func (m *Mesh) BlockedNear(box cube.BBox, stop game.TileFlags) bool {
	lo, hi := box.Min(), box.Max()
	ext := m.Extent()
	if lo[0] < 0 || lo[1] < 0 || hi[0] >= ext[0] || hi[1] >= ext[1] {
		return game.TileOffMesh.Has(stop)
	}
	blocked := false
	m.TilesOverlapping(box, func(_ int32, flags game.TileFlags) {
		blocked = blocked || flags.Has(stop)
	})
	return blocked
}

// LineOfSight reports whether the horizontal segment between from and to crosses no tile
// matching stop. The tiles containing the end points are not tested.
func (m *Mesh) LineOfSight(from, to mgl32.Vec3, stop game.TileFlags) bool {
	inv := 1 / m.tileSize
	start := mgl32.Vec2{from[0] * inv, from[1] * inv}
	end := mgl32.Vec2{to[0] * inv, to[1] * inv}
	first := [2]int{int(math32.Floor(start[0])), int(math32.Floor(start[1]))}
	last := [2]int{int(math32.Floor(end[0])), int(math32.Floor(end[1]))}

	for tile := range game.TilesBetween(start, end) {
		if tile == first || tile == last {
			continue
		}
		if tile[0] < 0 || tile[1] < 0 || tile[0] >= m.width || tile[1] >= m.height {
			if game.TileOffMesh.Has(stop) {
				return false
			}
			continue
		}
		if m.flags[tile[1]*m.width+tile[0]].Has(stop) {
			return false
		}
	}
	return true
}
