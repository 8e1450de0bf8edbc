package render

type CellState int

const (
	Unrevealed CellState = iota - 1
	Empty
	Number1
	Number2
	Number3
	Number4
	Number5
	Number6
	Number7
	Number8
	Flag
	FlagWrong
	Mine
	MineUnrevealed
	MineLosing
)

// CellStates lists every state in spritesheet order, top to bottom
var CellStates = []CellState{
	Unrevealed,
	Empty,
	Number1,
	Number2,
	Number3,
	Number4,
	Number5,
	Number6,
	Number7,
	Number8,
	Flag,
	FlagWrong,
	Mine,
	MineUnrevealed,
	MineLosing,
}

const (
	DefaultCellWidth = 16
)

func (state CellState) frameIndex() int {
	return int(state - Unrevealed)
}

var cellChars = map[CellState]byte{
	Unrevealed:     '#',
	Empty:          '.',
	Number1:        '1',
	Number2:        '2',
	Number3:        '3',
	Number4:        '4',
	Number5:        '5',
	Number6:        '6',
	Number7:        '7',
	Number8:        '8',
	Flag:           'F',
	FlagWrong:      'x',
	Mine:           'o',
	MineUnrevealed: 'O',
	MineLosing:     '*',
}

func (state CellState) Char() byte {
	return cellChars[state]
}
