package entity

// MD5HashCashInput is handed to the solver of an MD5HashCash challenge.
type MD5HashCashInput struct {
	Complexity uint32 `json:"complexity" cramberry:"1"`
	Message    string `json:"message" cramberry:"2"`
}

// MD5HashCashOutput carries the seed found by the solver. Hashcode is only a
// claim; verifiers recompute it from Seed.
type MD5HashCashOutput struct {
	Seed     uint64 `json:"seed" cramberry:"1"`
	Hashcode string `json:"hashcode" cramberry:"2"`
}

type MonstrousMazeInput struct {
	Grid      string `json:"grid" cramberry:"1"`
	Endurance uint8  `json:"endurance" cramberry:"2"`
}

// MonstrousMazeOutput is a sequence of moves: '^' north, '>' east, 'v' south, '<' west.
type MonstrousMazeOutput struct {
	Path string `json:"path" cramberry:"1"`
}
