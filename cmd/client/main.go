package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	challengegrpc "github.com/dayanaadylkhanova/proof-of-response/internal/adapter/transport/grpc"
	"github.com/dayanaadylkhanova/proof-of-response/internal/adapter/transport/tcp"
	"github.com/dayanaadylkhanova/proof-of-response/internal/service"
	"github.com/dayanaadylkhanova/proof-of-response/pkg/config"
	"github.com/dayanaadylkhanova/proof-of-response/pkg/logger"
)

func main() {
	cfg := config.ParseClient()
	log := logger.NewText(logger.LevelFromEnv(cfg.LogLevel), os.Stderr)
	log.Debug("starting client", "server_addr", cfg.ServerAddr, "transport", cfg.Transport)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.SolveTimeout)
	defer cancel()

	var (
		reply string
		err   error
	)
	switch cfg.Transport {
	case "tcp":
		reply, err = tcp.NewClient(log, service.NewDefaultRegistry(service.JSONCodec{})).Dial(ctx, cfg.ServerAddr)
	case "grpc":
		reply, err = viaGRPC(ctx, cfg)
	default:
		err = fmt.Errorf("unknown transport %q", cfg.Transport)
	}
	if err != nil {
		log.Error("exchange failed", slog.Any("err", err))
		os.Exit(1)
	}
	fmt.Println(reply)
}

func viaGRPC(ctx context.Context, cfg config.ClientConfig) (string, error) {
	client, err := challengegrpc.Dial(ctx, cfg.ServerAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return "", err
	}
	defer client.Close()

	resp, err := client.Exchange(ctx, service.NewDefaultRegistry(challengegrpc.CramberryCodec{}), cfg.Challenge)
	if err != nil {
		return "", err
	}
	if !resp.Accepted {
		return resp.Reason, nil
	}
	return resp.Quote, nil
}
