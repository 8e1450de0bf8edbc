package field

import "github.com/gammazero/deque"

// flood reveals the tile at x, y and, breadth first, every hidden tile reachable
// through tiles with no adjacent mines. Only hidden tiles are ever queued or
// revealed, so each tile is visited at most once per generation. Returns the
// number of tiles revealed.
func (field *Field) flood(x, y uint) uint {
	var visitQueue deque.Deque
	visitQueue.PushBack(field.index(x, y))

	numRevealed := uint(0)
	for visitQueue.Len() > 0 {
		idx := visitQueue.PopFront().(uint)
		if field.states[idx] != Hidden {
			continue
		}

		field.states[idx] = Revealed
		numRevealed++

		if field.adjacent[idx] != 0 {
			continue
		}

		coord := field.coord(idx)
		field.eachNeighbor(coord.X, coord.Y, func(x, y uint) {
			neighbor := field.index(x, y)
			if field.states[neighbor] == Hidden {
				visitQueue.PushBack(neighbor)
			}
		})
	}

	field.numRevealed += numRevealed
	return numRevealed
}
