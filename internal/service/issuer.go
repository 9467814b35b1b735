package service

import (
	crand "crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	mrand "math/rand/v2"

	"github.com/google/uuid"

	"github.com/dayanaadylkhanova/proof-of-response/internal/challenge/hashcash"
	"github.com/dayanaadylkhanova/proof-of-response/internal/challenge/maze"
	"github.com/dayanaadylkhanova/proof-of-response/internal/entity"
)

// Generator produces fresh inputs for one challenge kind.
type Generator interface {
	Name() string
	Generate() (any, error)
}

// HashcashGenerator issues MD5HashCash inputs with a random message.
type HashcashGenerator struct {
	Complexity   uint32
	MessageBytes int
}

func (g HashcashGenerator) Name() string { return hashcash.Name }

func (g HashcashGenerator) Generate() (any, error) {
	n := g.MessageBytes
	if n <= 0 {
		n = 16
	}
	msg := make([]byte, n)
	if _, err := crand.Read(msg); err != nil {
		return nil, fmt.Errorf("hashcash message: %w", err)
	}
	return entity.MD5HashCashInput{Complexity: g.Complexity, Message: hex.EncodeToString(msg)}, nil
}

// MazeGenerator hands out mazes from a fixed set.
type MazeGenerator struct {
	mazes []entity.MonstrousMazeInput
	r     *mrand.Rand
}

// NewMazeGenerator rejects any maze that does not parse. r may be nil.
func NewMazeGenerator(mazes []entity.MonstrousMazeInput, r *mrand.Rand) (*MazeGenerator, error) {
	if len(mazes) == 0 {
		return nil, fmt.Errorf("%s: no mazes", maze.Name)
	}
	for i, m := range mazes {
		if _, err := maze.New(m); err != nil {
			return nil, fmt.Errorf("maze %d: %w", i, err)
		}
	}
	return &MazeGenerator{mazes: mazes, r: r}, nil
}

func (g *MazeGenerator) Name() string { return maze.Name }

func (g *MazeGenerator) Generate() (any, error) {
	if g.r != nil {
		return g.mazes[g.r.IntN(len(g.mazes))], nil
	}
	return g.mazes[mrand.IntN(len(g.mazes))], nil
}

var ErrNoGenerators = errors.New("no challenge generators")

// Issuer mints challenge envelopes: a fresh id, a kind and its encoded input.
type Issuer struct {
	codec      Codec
	generators []Generator
	byName     map[string]Generator
	r          *mrand.Rand
}

func NewIssuer(codec Codec, r *mrand.Rand, generators ...Generator) (*Issuer, error) {
	if len(generators) == 0 {
		return nil, ErrNoGenerators
	}
	byName := make(map[string]Generator, len(generators))
	for _, g := range generators {
		byName[g.Name()] = g
	}
	return &Issuer{codec: codec, generators: generators, byName: byName, r: r}, nil
}

// Issue creates a challenge of the named kind, or of a random kind when name
// is empty.
func (i *Issuer) Issue(name string) (entity.ChallengeEnvelope, error) {
	g, err := i.pick(name)
	if err != nil {
		return entity.ChallengeEnvelope{}, err
	}
	in, err := g.Generate()
	if err != nil {
		return entity.ChallengeEnvelope{}, err
	}
	raw, err := i.codec.Marshal(in)
	if err != nil {
		return entity.ChallengeEnvelope{}, fmt.Errorf("encode %s input: %w", g.Name(), err)
	}
	return entity.ChallengeEnvelope{
		ID:    uuid.NewString(),
		Name:  g.Name(),
		Input: raw,
	}, nil
}

func (i *Issuer) pick(name string) (Generator, error) {
	if name != "" {
		g, ok := i.byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownChallenge, name)
		}
		return g, nil
	}
	if i.r != nil {
		return i.generators[i.r.IntN(len(i.generators))], nil
	}
	return i.generators[mrand.IntN(len(i.generators))], nil
}
