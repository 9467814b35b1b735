package challengegrpc

// IssueRequest asks for a challenge of a given kind; an empty Name lets the
// server pick.
type IssueRequest struct {
	Name string `cramberry:"1"`
}

// Challenge is an issued challenge with a cramberry-encoded input.
type Challenge struct {
	ID    string `cramberry:"1"`
	Name  string `cramberry:"2"`
	Input []byte `cramberry:"3"`
}

// Answer carries a cramberry-encoded output for the challenge with ID.
type Answer struct {
	ID     string `cramberry:"1"`
	Name   string `cramberry:"2"`
	Output []byte `cramberry:"3"`
}

type VerifyResponse struct {
	Accepted bool   `cramberry:"1"`
	Quote    string `cramberry:"2"`
	Reason   string `cramberry:"3"`
}
