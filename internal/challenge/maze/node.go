package maze

// Direction is a unit move. None marks cells with no recorded arrival.
type Direction uint8

const (
	None Direction = iota
	North
	East
	South
	West
)

// searchOrder is the neighbour order of the breadth-first search. It decides
// which of several shortest paths is found.
var searchOrder = [...]Direction{North, East, South, West}

func (d Direction) delta() (dr, dc int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	default:
		return 0, 0
	}
}

// Symbol is the path character for d.
func (d Direction) Symbol() rune {
	switch d {
	case North:
		return '^'
	case East:
		return '>'
	case South:
		return 'v'
	case West:
		return '<'
	default:
		return 0
	}
}

// opposite is the direction that undoes d.
func (d Direction) opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		return None
	}
}

// DirectionOf maps a path symbol to a move. Anything that is not '^', '>'
// or 'v' is read as west; replay stays permissive about unknown symbols.
func DirectionOf(symbol rune) Direction {
	switch symbol {
	case '^':
		return North
	case '>':
		return East
	case 'v':
		return South
	default:
		return West
	}
}

// Node is a unit of exploration: a position and the endurance left there.
// Moves return a new Node.
type Node struct {
	Pos       Position
	Endurance uint8
}

func (n Node) Move(d Direction) Node {
	return Node{Pos: n.Pos.Step(d), Endurance: n.Endurance}
}

// TakeDamage spends one unit of endurance, never going below zero.
func (n Node) TakeDamage() Node {
	if n.Endurance > 0 {
		n.Endurance--
	}
	return n
}
