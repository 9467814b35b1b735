package challengegrpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dayanaadylkhanova/proof-of-response/internal/adapter/store"
	"github.com/dayanaadylkhanova/proof-of-response/internal/entity"
	"github.com/dayanaadylkhanova/proof-of-response/internal/service"
)

type Issuer interface {
	Issue(name string) (entity.ChallengeEnvelope, error)
}

type Verifier interface {
	Verify(name string, input, output []byte) (bool, error)
}

type Quote interface {
	Random() string
}

// Store holds issued challenges between Issue and Verify.
type Store interface {
	Put(env entity.ChallengeEnvelope)
	Take(id string) (entity.ChallengeEnvelope, error)
}

// Compile-time interface check.
var _ ChallengeServiceServer = (*Server)(nil)

// Server issues challenges and verifies answers. Unlike the TCP exchange the
// calls are independent, so issued inputs are kept in a Store until answered.
type Server struct {
	log       *slog.Logger
	addr      string
	shutdownT time.Duration
	issuer    Issuer
	verifier  Verifier
	quotes    Quote
	store     Store
}

func NewServer(log *slog.Logger, addr string, shutdown time.Duration, issuer Issuer, verifier Verifier, quotes Quote, st Store) *Server {
	return &Server{
		log:       log,
		addr:      addr,
		shutdownT: shutdown,
		issuer:    issuer,
		verifier:  verifier,
		quotes:    quotes,
		store:     st,
	}
}

// Register adds the service to a gRPC server.
func (s *Server) Register(gs *grpc.Server) {
	RegisterChallengeServiceServer(gs, s)
}

// Run serves on the configured address until ctx is cancelled, then stops
// gracefully, forcing the stop after the shutdown wait.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	gs := grpc.NewServer()
	s.Register(gs)
	s.log.Info("grpc server started", "addr", s.addr)

	errCh := make(chan error, 1)
	go func() { errCh <- gs.Serve(lis) }()

	select {
	case <-ctx.Done():
		s.log.Info("shutdown: stopping grpc server")
		stopped := make(chan struct{})
		go func() { gs.GracefulStop(); close(stopped) }()
		select {
		case <-stopped:
		case <-time.After(s.shutdownT):
			s.log.Warn("shutdown: force-stop grpc server")
			gs.Stop()
		}
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) Handshake(_ context.Context, msg *entity.Message) (*entity.Message, error) {
	if !msg.IsHello() {
		return nil, status.Errorf(codes.InvalidArgument, "expected Hello, got %s", msg.Kind)
	}
	welcome := entity.NewWelcome(entity.ProtocolVersion)
	return &welcome, nil
}

func (s *Server) Issue(_ context.Context, req *IssueRequest) (*Challenge, error) {
	env, err := s.issuer.Issue(req.Name)
	if err != nil {
		if errors.Is(err, service.ErrUnknownChallenge) {
			return nil, status.Error(codes.NotFound, err.Error())
		}
		s.log.Error("challenge create failed", "err", err)
		return nil, status.Error(codes.Internal, "challenge create failed")
	}
	s.store.Put(env)
	s.log.Debug("challenge issued", "id", env.ID, "name", env.Name)
	return &Challenge{ID: env.ID, Name: env.Name, Input: env.Input}, nil
}

func (s *Server) Verify(_ context.Context, ans *Answer) (*VerifyResponse, error) {
	env, err := s.store.Take(ans.ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, status.Errorf(codes.NotFound, "challenge %q not found", ans.ID)
	case errors.Is(err, store.ErrExpired):
		return nil, status.Errorf(codes.FailedPrecondition, "challenge %q expired", ans.ID)
	case err != nil:
		return nil, status.Error(codes.Internal, err.Error())
	}

	if ans.Name != env.Name {
		s.log.Debug("answer for other kind", "id", env.ID, "name", env.Name, "got", ans.Name)
		return &VerifyResponse{Reason: "challenge name mismatch"}, nil
	}

	ok, err := s.verifier.Verify(env.Name, env.Input, ans.Output)
	if err != nil {
		s.log.Error("verify failed", "id", env.ID, "name", env.Name, "err", err)
		return nil, status.Error(codes.Internal, "verify failed")
	}
	if !ok {
		s.log.Debug("verification failed", "id", env.ID, "name", env.Name)
		return &VerifyResponse{Reason: "challenge verification failed"}, nil
	}

	s.log.Info("success", "id", env.ID, "name", env.Name)
	return &VerifyResponse{Accepted: true, Quote: s.quotes.Random()}, nil
}
