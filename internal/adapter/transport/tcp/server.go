package tcp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/dayanaadylkhanova/proof-of-response/internal/entity"
)

type Server struct {
	log       *slog.Logger
	addr      string
	ttl       time.Duration
	issuer    Issuer
	verifier  Verifier
	quotes    Quote
	ln        net.Listener
	wg        sync.WaitGroup
	connsMu   sync.Mutex
	active    map[net.Conn]struct{}
	shutdownT time.Duration
}

func NewServer(log *slog.Logger, addr string, ttl, shutdown time.Duration, issuer Issuer, verifier Verifier, quotes Quote) *Server {
	return &Server{
		log:       log,
		addr:      addr,
		ttl:       ttl,
		shutdownT: shutdown,
		issuer:    issuer,
		verifier:  verifier,
		quotes:    quotes,
		active:    make(map[net.Conn]struct{}),
	}
}

func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.ln = ln
	s.log.Info("tcp server started", "addr", s.addr, "ttl", s.ttl.String())

	errCh := make(chan error, 1)
	go func() { errCh <- s.acceptLoop() }()

	select {
	case <-ctx.Done():
		s.log.Info("shutdown: closing listener")
		_ = s.ln.Close()

		s.connsMu.Lock()
		for c := range s.active {
			_ = c.SetDeadline(time.Now().Add(200 * time.Millisecond))
			if tc, ok := c.(*net.TCPConn); ok {
				_ = tc.CloseWrite()
			}
		}
		s.connsMu.Unlock()

		done := make(chan struct{})
		go func() { s.wg.Wait(); close(done) }()
		select {
		case <-done:
			s.log.Info("shutdown: all connections drained")
		case <-time.After(s.shutdownT):
			s.log.Warn("shutdown: force-close remaining connections")
			s.connsMu.Lock()
			for c := range s.active {
				_ = c.Close()
			}
			s.connsMu.Unlock()
		}
		return nil

	case err := <-errCh:
		return err
	}
}

func (s *Server) acceptLoop() error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				s.log.Warn("temporary accept error", "err", err)
				time.Sleep(50 * time.Millisecond)
				continue
			}
			return fmt.Errorf("accept: %w", err)
		}
		s.track(conn, true)
		s.wg.Add(1)
		go func(c net.Conn) {
			defer s.wg.Done()
			defer s.track(c, false)
			s.handle(c)
		}(conn)
	}
}

func (s *Server) track(c net.Conn, add bool) {
	s.connsMu.Lock()
	if add {
		s.active[c] = struct{}{}
	} else {
		delete(s.active, c)
	}
	s.connsMu.Unlock()
}

// handle runs one exchange: Hello/Welcome, challenge, answer, verdict.
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(2 * s.ttl))

	bw := bufio.NewWriter(conn)
	br := bufio.NewReader(conn)
	remote := conn.RemoteAddr().String()

	var hello entity.Message
	if err := readJSON(br, &hello); err != nil || !hello.IsHello() {
		_ = writeLine(bw, ReplyHandshakeFailed)
		s.log.Debug("bad handshake", "remote", remote, "err", err)
		return
	}
	if err := writeJSON(bw, entity.NewWelcome(entity.ProtocolVersion)); err != nil {
		s.log.Debug("write welcome failed", "err", err)
		return
	}

	env, err := s.issuer.Issue("")
	if err != nil {
		s.log.Error("challenge create failed", "err", err)
		return
	}
	if err := writeJSON(bw, env); err != nil {
		s.log.Error("challenge write failed", "err", err)
		return
	}
	s.log.Debug("challenge issued", "remote", remote, "id", env.ID, "name", env.Name)

	var ans entity.AnswerEnvelope
	if err := readJSON(br, &ans); err != nil || ans.ID != env.ID || ans.Name != env.Name {
		_ = writeLine(bw, ReplyInvalidAnswer)
		s.log.Debug("bad answer", "remote", remote, "id", env.ID, "err", err)
		return
	}

	ok, err := s.verifier.Verify(env.Name, env.Input, ans.Output)
	if err != nil || !ok {
		_ = writeLine(bw, ReplyVerificationFailed)
		s.log.Debug("verification failed", "remote", remote, "id", env.ID, "name", env.Name, "err", err)
		return
	}

	_ = writeLine(bw, s.quotes.Random())
	s.log.Info("success", "remote", remote, "name", env.Name)
}
