package demo

// Palette indices used by the tiles.
const (
	colTransparent = 0
	colBlack       = 1
	colWhite       = 2
	colYellow      = 3
	colRed         = 4
)

// A Tile is a 8x8 bitmap of object palette indices, row by row.
type Tile [64]uint8

var blankTile = Tile{
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
}

// Never loaded.
var redBoxTile = Tile{
	1, 1, 1, 1, 1, 1, 1, 2,
	1, 3, 3, 3, 3, 3, 3, 2,
	1, 3, 3, 3, 3, 3, 3, 2,
	1, 3, 3, 3, 3, 3, 3, 2,
	1, 3, 3, 3, 3, 3, 3, 2,
	1, 3, 3, 3, 3, 3, 3, 2,
	1, 3, 3, 3, 3, 3, 3, 2,
	2, 2, 2, 2, 2, 2, 2, 2,
}

var smileyTile = Tile{
	0, 0, 3, 3, 3, 3, 0, 0,
	0, 3, 3, 3, 3, 3, 3, 0,
	3, 3, 1, 3, 3, 1, 3, 3,
	3, 3, 3, 3, 3, 3, 3, 3,
	3, 3, 3, 3, 3, 3, 3, 3,
	3, 1, 3, 3, 3, 3, 1, 3,
	0, 3, 1, 1, 1, 1, 3, 0,
	0, 0, 3, 3, 3, 3, 0, 0,
}

// Upward-facing arrow, in 4 quadrants.
var (
	arrowTopLeft = Tile{
		0, 0, 0, 0, 0, 0, 0, 1,
		0, 0, 0, 0, 0, 0, 1, 2,
		0, 0, 0, 0, 0, 1, 2, 2,
		0, 0, 0, 0, 1, 2, 2, 2,
		0, 0, 0, 1, 2, 2, 2, 2,
		0, 0, 1, 2, 2, 2, 2, 2,
		0, 1, 2, 2, 2, 2, 2, 2,
		1, 2, 2, 2, 2, 2, 2, 2,
	}
	arrowTopRight = Tile{
		1, 0, 0, 0, 0, 0, 0, 0,
		2, 1, 0, 0, 0, 0, 0, 0,
		2, 2, 1, 0, 0, 0, 0, 0,
		2, 2, 2, 1, 0, 0, 0, 0,
		2, 2, 2, 2, 1, 0, 0, 0,
		2, 2, 2, 2, 2, 1, 0, 0,
		2, 2, 2, 2, 2, 2, 1, 0,
		2, 2, 2, 2, 2, 2, 2, 1,
	}
	arrowBottomLeft = Tile{
		1, 1, 1, 1, 2, 2, 2, 2,
		0, 0, 0, 1, 2, 2, 2, 2,
		0, 0, 0, 1, 2, 2, 2, 2,
		0, 0, 0, 1, 2, 2, 2, 2,
		0, 0, 0, 1, 2, 2, 2, 2,
		0, 0, 0, 1, 2, 2, 2, 2,
		0, 0, 0, 1, 1, 1, 1, 1,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	arrowBottomRight = Tile{
		2, 2, 2, 2, 1, 1, 1, 1,
		2, 2, 2, 2, 1, 0, 0, 0,
		2, 2, 2, 2, 1, 0, 0, 0,
		2, 2, 2, 2, 1, 0, 0, 0,
		2, 2, 2, 2, 1, 0, 0, 0,
		2, 2, 2, 2, 1, 0, 0, 0,
		1, 1, 1, 1, 1, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// Tile slots, in 64-byte units of object tile memory.
const (
	slotSmiley = 1
	slotArrow  = 10 // 10-13: top-left, top-right, bottom-left, bottom-right
)

// NamedTile associates a tile with its name and the slot it is loaded at, -1
// if it's never loaded.
type NamedTile struct {
	Name string
	Slot int
	Tile *Tile
}

// Tiles returns all the tiles the demo defines, in declaration order.
func Tiles() []NamedTile {
	return []NamedTile{
		{"blank", -1, &blankTile},
		{"red-box", -1, &redBoxTile},
		{"smiley", slotSmiley, &smileyTile},
		{"arrow-top-left", slotArrow + 0, &arrowTopLeft},
		{"arrow-top-right", slotArrow + 1, &arrowTopRight},
		{"arrow-bottom-left", slotArrow + 2, &arrowBottomLeft},
		{"arrow-bottom-right", slotArrow + 3, &arrowBottomRight},
	}
}

// String renders the tile as 8 lines of palette indices, '.' standing for
// transparent pixels.
func (t *Tile) String() string {
	buf := make([]byte, 0, 8*9)
	for i, c := range t {
		if c == colTransparent {
			buf = append(buf, '.')
		} else {
			buf = append(buf, '0'+c)
		}
		if i%8 == 7 {
			buf = append(buf, '\n')
		}
	}
	return string(buf)
}
