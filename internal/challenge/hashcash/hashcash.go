// Package hashcash implements the MD5HashCash challenge: find the smallest
// seed whose MD5 digest of (seed as 16 uppercase hex digits ++ message) has
// at least Complexity leading zero bits.
package hashcash

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"math"
	"math/bits"
	"strings"

	"github.com/dayanaadylkhanova/proof-of-response/internal/entity"
)

// Name identifies the challenge in envelopes and registries.
const Name = "MD5HashCash"

const (
	digestBits = md5.Size * 8
	seedDigits = 16
	// how many seeds are tried between context checks
	ctxCheckEvery = 1 << 14
)

const hexUpper = "0123456789ABCDEF"

type Option func(*Challenge)

// WithMaxSeed bounds the search to seeds in [0, max].
func WithMaxSeed(max uint64) Option {
	return func(c *Challenge) { c.maxSeed = max }
}

type Challenge struct {
	input   entity.MD5HashCashInput
	maxSeed uint64
}

func New(input entity.MD5HashCashInput, opts ...Option) *Challenge {
	c := &Challenge{input: input, maxSeed: math.MaxUint64}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Challenge) Name() string { return Name }

func (c *Challenge) Input() entity.MD5HashCashInput { return c.input }

// Solve scans seeds from zero and returns the first one that meets the
// complexity. An exhausted search yields the unsolved sentinel (seed 0, empty
// hashcode), which never verifies.
func (c *Challenge) Solve() entity.MD5HashCashOutput {
	out, _ := c.SolveContext(context.Background())
	return out
}

// SolveContext is Solve with cancellation. On cancellation the unsolved
// sentinel is returned together with ctx.Err().
func (c *Challenge) SolveContext(ctx context.Context) (entity.MD5HashCashOutput, error) {
	if c.input.Complexity > digestBits {
		return unsolved(), nil
	}

	buf := newBuffer(c.input.Message)
	for seed := uint64(0); ; seed++ {
		if seed%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return unsolved(), err
			}
		}
		sum := digest(buf, seed)
		if leadingZeroBits(sum[:]) >= c.input.Complexity {
			return entity.MD5HashCashOutput{Seed: seed, Hashcode: encode(sum)}, nil
		}
		if seed == c.maxSeed {
			break
		}
	}
	return unsolved(), nil
}

// Verify recomputes the digest from the candidate seed. The reported hashcode
// must match it exactly and the recomputed digest must meet the complexity.
func (c *Challenge) Verify(out entity.MD5HashCashOutput) bool {
	if len(out.Hashcode) != hex.EncodedLen(md5.Size) {
		return false
	}
	sum := digest(newBuffer(c.input.Message), out.Seed)
	return encode(sum) == out.Hashcode && leadingZeroBits(sum[:]) >= c.input.Complexity
}

func unsolved() entity.MD5HashCashOutput {
	return entity.MD5HashCashOutput{}
}

// newBuffer lays out seedDigits placeholder bytes followed by the message.
func newBuffer(message string) []byte {
	buf := make([]byte, seedDigits+len(message))
	copy(buf[seedDigits:], message)
	return buf
}

func digest(buf []byte, seed uint64) [md5.Size]byte {
	for i := seedDigits - 1; i >= 0; i-- {
		buf[i] = hexUpper[seed&0xF]
		seed >>= 4
	}
	return md5.Sum(buf)
}

func encode(sum [md5.Size]byte) string {
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// leadingZeroBits counts zero bits from the most significant end of b.
func leadingZeroBits(b []byte) uint32 {
	var total uint32
	for _, by := range b {
		if by == 0 {
			total += 8
			continue
		}
		total += uint32(bits.LeadingZeros8(by))
		break
	}
	return total
}
