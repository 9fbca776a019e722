package entity

// BoardSize is the number of sub-boards on the meta-board and of cells in each sub-board.
const BoardSize = 9

const (
	boardSize = BoardSize
	rootTile  = 0
	tileCount = 1 + boardSize + boardSize*boardSize
)

// WinCombos are the rows, columns and diagonals of a 3x3 grid stored row-major.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Tile holds the owner of one position at any of the three levels of the board.
// Composite tiles (the sub-boards and the root) keep the arena indices of their nine children.
type Tile struct {
	owner    Owner
	children []int
}

func (that *Tile) Owner() Owner {
	return that.owner
}

func (that *Tile) SetOwner(owner Owner) {
	that.owner = owner
}

func (that *Tile) IsLeaf() bool {
	return len(that.children) == 0
}

// tileTree is the arena of one game: the root at 0, the sub-boards at 1..9, the cells after them.
type tileTree [tileCount]Tile

func subBoardTile(subBoard int) int {
	return 1 + subBoard
}

func cellTile(subBoard, cell int) int {
	return 1 + boardSize + boardSize*subBoard + cell
}

func newTileTree() *tileTree {
	tree := &tileTree{}

	tree[rootTile].children = make([]int, 0, boardSize)
	for subBoard := 0; subBoard < boardSize; subBoard++ {
		tree[rootTile].children = append(tree[rootTile].children, subBoardTile(subBoard))

		parent := &tree[subBoardTile(subBoard)]
		parent.children = make([]int, 0, boardSize)
		for cell := 0; cell < boardSize; cell++ {
			parent.children = append(parent.children, cellTile(subBoard, cell))
		}
	}

	return tree
}

// computeWinner - derives the owner of the tile at index from its children. It never mutates the tree.
func (that *tileTree) computeWinner(index int) Owner {
	tile := &that[index]

	// frozen tiles and cells keep their owner
	if tile.owner != OwnerNeither || tile.IsLeaf() {
		return tile.owner
	}

	var owners [boardSize]Owner
	for i, child := range tile.children {
		owners[i] = that[child].owner
	}

	return DetermineWinner(owners)
}

// DetermineWinner - finds the winner of a 3x3 grid. A drawn child counts for both players.
func DetermineWinner(cells [boardSize]Owner) Owner {
	wonX, wonO := false, false

	for _, combo := range WinCombos {
		countX, countO := 0, 0

		for _, index := range combo {
			switch cells[index] {
			case OwnerX:
				countX++
			case OwnerO:
				countO++
			case OwnerBoth:
				countX++
				countO++
			case OwnerNeither:
			}
		}

		wonX = wonX || countX == len(combo)
		wonO = wonO || countO == len(combo)
	}

	switch {
	case wonX:
		return OwnerX
	case wonO:
		return OwnerO
	}

	// the tile stays open until every child is claimed
	for _, cell := range cells {
		if cell == OwnerNeither {
			return OwnerNeither
		}
	}

	return OwnerBoth
}
