package tcp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"

	"github.com/dayanaadylkhanova/proof-of-response/internal/entity"
)

var (
	ErrHandshake          = errors.New("handshake failed")
	ErrUnsupportedVersion = errors.New("unsupported protocol version")
)

// Client answers one challenge per connection.
type Client struct {
	log    *slog.Logger
	solver Solver
}

func NewClient(log *slog.Logger, solver Solver) *Client {
	return &Client{log: log, solver: solver}
}

// Dial connects to addr and runs Exchange on the connection.
func (c *Client) Dial(ctx context.Context, addr string) (string, error) {
	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", addr)
	if err != nil {
		return "", fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()
	return c.Exchange(ctx, conn)
}

// Exchange sends Hello, waits for Welcome, solves the challenge that follows
// and returns the server's verdict line (a quote on success).
func (c *Client) Exchange(ctx context.Context, conn net.Conn) (string, error) {
	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	}
	br := bufio.NewReader(conn)
	bw := bufio.NewWriter(conn)

	if err := writeJSON(bw, entity.NewHello()); err != nil {
		return "", fmt.Errorf("write hello: %w", err)
	}
	var welcome entity.Message
	if err := readJSON(br, &welcome); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHandshake, err)
	}
	version, ok := welcome.Version()
	if !ok {
		return "", fmt.Errorf("%w: got %s", ErrHandshake, welcome.Kind)
	}
	if version != entity.ProtocolVersion {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	c.log.Debug("welcome received", "version", version)

	var env entity.ChallengeEnvelope
	if err := readJSON(br, &env); err != nil {
		return "", fmt.Errorf("read challenge: %w", err)
	}
	c.log.Debug("challenge received", "id", env.ID, "name", env.Name)

	out, err := c.solver.Solve(ctx, env.Name, env.Input)
	if err != nil {
		return "", fmt.Errorf("solve %s: %w", env.Name, err)
	}
	c.log.Debug("challenge solved", "id", env.ID, "name", env.Name)

	if err := writeJSON(bw, entity.AnswerEnvelope{ID: env.ID, Name: env.Name, Output: out}); err != nil {
		return "", fmt.Errorf("write answer: %w", err)
	}

	reply, err := br.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read verdict: %w", err)
	}
	return strings.TrimSpace(reply), nil
}
