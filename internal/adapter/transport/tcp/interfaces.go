package tcp

import (
	"context"

	"github.com/dayanaadylkhanova/proof-of-response/internal/entity"
)

//go:generate mockgen -source=interfaces.go -destination=./server_mock.go -package=tcp

type Issuer interface {
	Issue(name string) (entity.ChallengeEnvelope, error)
}

type Verifier interface {
	Verify(name string, input, output []byte) (bool, error)
}

type Solver interface {
	Solve(ctx context.Context, name string, input []byte) ([]byte, error)
}

type Quote interface {
	Random() string
}
