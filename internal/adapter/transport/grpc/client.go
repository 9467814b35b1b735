package challengegrpc

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc"

	"github.com/dayanaadylkhanova/proof-of-response/internal/entity"
)

var ErrUnsupportedVersion = errors.New("unsupported protocol version")

type Solver interface {
	Solve(ctx context.Context, name string, input []byte) ([]byte, error)
}

// Client talks to a remote ChallengeService using cramberry serialization.
type Client struct {
	cc *grpc.ClientConn
}

// Dial connects to a remote ChallengeService.
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append(opts, grpc.WithDefaultCallOptions(
		grpc.ForceCodec(CramberryCodec{}),
	))
	cc, err := grpc.DialContext(ctx, addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("challenge client: dial %s: %w", addr, err)
	}
	return &Client{cc: cc}, nil
}

func (c *Client) Close() error {
	return c.cc.Close()
}

// Handshake sends Hello and returns the version advertised in Welcome.
func (c *Client) Handshake(ctx context.Context) (uint8, error) {
	req := entity.NewHello()
	resp := new(entity.Message)
	if err := c.cc.Invoke(ctx, fullMethod("Handshake"), &req, resp); err != nil {
		return 0, err
	}
	version, ok := resp.Version()
	if !ok {
		return 0, fmt.Errorf("handshake: got %s", resp.Kind)
	}
	return version, nil
}

func (c *Client) Issue(ctx context.Context, name string) (*Challenge, error) {
	resp := new(Challenge)
	if err := c.cc.Invoke(ctx, fullMethod("Issue"), &IssueRequest{Name: name}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Verify(ctx context.Context, ans *Answer) (*VerifyResponse, error) {
	resp := new(VerifyResponse)
	if err := c.cc.Invoke(ctx, fullMethod("Verify"), ans, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Exchange runs the whole flow: handshake, issue a challenge of kind name
// (any kind if empty), solve it with solver and submit the answer.
func (c *Client) Exchange(ctx context.Context, solver Solver, name string) (*VerifyResponse, error) {
	version, err := c.Handshake(ctx)
	if err != nil {
		return nil, err
	}
	if version != entity.ProtocolVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	ch, err := c.Issue(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("issue: %w", err)
	}
	out, err := solver.Solve(ctx, ch.Name, ch.Input)
	if err != nil {
		return nil, fmt.Errorf("solve %s: %w", ch.Name, err)
	}
	return c.Verify(ctx, &Answer{ID: ch.ID, Name: ch.Name, Output: out})
}
