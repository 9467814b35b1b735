package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/dayanaadylkhanova/proof-of-response/internal/challenge/hashcash"
	"github.com/dayanaadylkhanova/proof-of-response/internal/challenge/maze"
	"github.com/dayanaadylkhanova/proof-of-response/internal/entity"
)

var ErrUnknownChallenge = errors.New("unknown challenge")

// Codec turns challenge inputs and outputs into bytes and back.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSONCodec is the codec of the line-oriented TCP transport.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (JSONCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Engine is the capability every challenge kind implements: a name, a
// deterministic solver and a verifier that recomputes everything it checks.
type Engine[O any] interface {
	Name() string
	SolveContext(ctx context.Context) (O, error)
	Verify(out O) bool
}

type kind struct {
	validate func(input []byte) error
	solve    func(ctx context.Context, input []byte) ([]byte, error)
	verify   func(input, output []byte) (bool, error)
}

// Registry dispatches encoded challenges to their engines by name. The set of
// kinds is fixed when the registry is built.
type Registry struct {
	codec Codec
	kinds map[string]kind
}

func NewRegistry(codec Codec) *Registry {
	return &Registry{codec: codec, kinds: make(map[string]kind)}
}

// NewDefaultRegistry knows MD5HashCash and MonstrousMaze.
func NewDefaultRegistry(codec Codec) *Registry {
	r := NewRegistry(codec)
	Register(r, hashcash.Name, func(in entity.MD5HashCashInput) (Engine[entity.MD5HashCashOutput], error) {
		return hashcash.New(in), nil
	})
	Register(r, maze.Name, func(in entity.MonstrousMazeInput) (Engine[entity.MonstrousMazeOutput], error) {
		return maze.New(in)
	})
	return r
}

// Register adds a challenge kind. Registering a name twice replaces the
// earlier kind.
func Register[I, O any](r *Registry, name string, newEngine func(I) (Engine[O], error)) {
	build := func(input []byte) (Engine[O], error) {
		var in I
		if err := r.codec.Unmarshal(input, &in); err != nil {
			return nil, fmt.Errorf("%s: %w: %v", name, entity.ErrInvalidInput, err)
		}
		return newEngine(in)
	}

	r.kinds[name] = kind{
		validate: func(input []byte) error {
			_, err := build(input)
			return err
		},
		solve: func(ctx context.Context, input []byte) ([]byte, error) {
			e, err := build(input)
			if err != nil {
				return nil, err
			}
			out, err := e.SolveContext(ctx)
			if err != nil {
				return nil, err
			}
			return r.codec.Marshal(out)
		},
		verify: func(input, output []byte) (bool, error) {
			e, err := build(input)
			if err != nil {
				return false, err
			}
			var out O
			if err := r.codec.Unmarshal(output, &out); err != nil {
				return false, nil
			}
			return e.Verify(out), nil
		},
	}
}

// Names lists the registered kinds in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Has(name string) bool {
	_, ok := r.kinds[name]
	return ok
}

func (r *Registry) lookup(name string) (kind, error) {
	k, ok := r.kinds[name]
	if !ok {
		return kind{}, fmt.Errorf("%w: %q", ErrUnknownChallenge, name)
	}
	return k, nil
}

// Validate checks that input decodes and builds a challenge of the named kind.
func (r *Registry) Validate(name string, input []byte) error {
	k, err := r.lookup(name)
	if err != nil {
		return err
	}
	return k.validate(input)
}

// Solve decodes input, solves it and returns the encoded output.
func (r *Registry) Solve(ctx context.Context, name string, input []byte) ([]byte, error) {
	k, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return k.solve(ctx, input)
}

// Verify rebuilds the challenge from input and checks output against it. A
// candidate that does not decode is rejected, not reported as an error.
func (r *Registry) Verify(name string, input, output []byte) (bool, error) {
	k, err := r.lookup(name)
	if err != nil {
		return false, err
	}
	return k.verify(input, output)
}
