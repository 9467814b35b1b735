package entity

import "encoding/json"

// ChallengeEnvelope is what a server sends after the handshake: the kind of
// challenge and its codec-encoded input.
type ChallengeEnvelope struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input"`
}

// AnswerEnvelope is the client reply to a ChallengeEnvelope.
type AnswerEnvelope struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Output json.RawMessage `json:"output"`
}
