package spatial

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/entity"
)

// Grid buckets entity handles into square cells covering the world. An entity is stored in
// every cell its box touches, so queries may report the same handle more than once. Positions
// outside the grid are clamped into the border cells.
type Grid struct {
	cellSize   float32
	cols, rows int
	maxPerCell int
	cells      [][]entity.Handle
	dropped    int
}

// NewGrid returns a grid covering width by height world units.
func NewGrid(width, height, cellSize float32, maxPerCell int) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := max(1, int(math32.Ceil(width/cellSize)))
	rows := max(1, int(math32.Ceil(height/cellSize)))
	return &Grid{
		cellSize:   cellSize,
		cols:       cols,
		rows:       rows,
		maxPerCell: maxPerCell,
		cells:      make([][]entity.Handle, cols*rows),
	}
}

func (g *Grid) cell(v float32, n int) int {
	c := int(math32.Floor(v / g.cellSize))
	return min(max(c, 0), n-1)
}

func (g *Grid) span(box cube.BBox) (x0, y0, x1, y1 int) {
	lo, hi := box.Min(), box.Max()
	return g.cell(lo[0], g.cols), g.cell(lo[1], g.rows), g.cell(hi[0], g.cols), g.cell(hi[1], g.rows)
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.dropped = 0
}

// Insert stores h in every cell box touches. Cells at capacity drop the handle; false is
// returned if that happened for any cell.
func (g *Grid) Insert(h entity.Handle, box cube.BBox) bool {
	ok := true
	x0, y0, x1, y1 := g.span(box)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			i := y*g.cols + x
			if g.maxPerCell > 0 && len(g.cells[i]) >= g.maxPerCell {
				g.dropped++
				ok = false
				continue
			}
			g.cells[i] = append(g.cells[i], h)
		}
	}
	return ok
}

// Query calls fn for every handle stored in a cell touched by box until fn returns false.
func (g *Grid) Query(box cube.BBox, fn func(h entity.Handle) bool) {
	x0, y0, x1, y1 := g.span(box)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			for _, h := range g.cells[y*g.cols+x] {
				if !fn(h) {
					return
				}
			}
		}
	}
}

// Nearby returns the distinct handles stored in cells touched by the square around center.
func (g *Grid) Nearby(center mgl32.Vec2, radius float32) []entity.Handle {
	box := cube.Box(center[0]-radius, center[1]-radius, 0, center[0]+radius, center[1]+radius, 0)
	seen := make(map[entity.Handle]struct{})
	var out []entity.Handle
	g.Query(box, func(h entity.Handle) bool {
		if _, ok := seen[h]; !ok {
			seen[h] = struct{}{}
			out = append(out, h)
		}
		return true
	})
	return out
}

// Dropped returns how many cell insertions were dropped since the last Clear.
func (g *Grid) Dropped() int {
	return g.dropped
}
