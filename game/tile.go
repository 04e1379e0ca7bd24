package game

// TileFlags is a bitset describing the properties of a single mesh tile.
type TileFlags uint32

const (
	TileWall TileFlags = 1 << iota
	TileImpassable
	TileSlippery
	TileWater
	TileAnimated
	TileDamage
)

// TileStopDefault is the stop mask used by walking entities.
const TileStopDefault = TileWall | TileImpassable

// TileOffMesh is what every position outside the mesh reports.
const TileOffMesh = TileWall | TileImpassable

// Has returns true if any of the bits in mask are set.
func (f TileFlags) Has(mask TileFlags) bool {
	return f&mask != 0
}

// TwistFlat is the twist of a tile with no slope.
const TwistFlat = uint8(0x77)
