package main

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/dayanaadylkhanova/proof-of-response/internal/adapter/catalog"
	"github.com/dayanaadylkhanova/proof-of-response/internal/adapter/quote"
	"github.com/dayanaadylkhanova/proof-of-response/internal/adapter/store"
	challengegrpc "github.com/dayanaadylkhanova/proof-of-response/internal/adapter/transport/grpc"
	"github.com/dayanaadylkhanova/proof-of-response/internal/adapter/transport/tcp"
	"github.com/dayanaadylkhanova/proof-of-response/internal/app"
	"github.com/dayanaadylkhanova/proof-of-response/internal/challenge/hashcash"
	"github.com/dayanaadylkhanova/proof-of-response/internal/challenge/maze"
	"github.com/dayanaadylkhanova/proof-of-response/internal/service"
	"github.com/dayanaadylkhanova/proof-of-response/pkg/config"
	"github.com/dayanaadylkhanova/proof-of-response/pkg/logger"
)

func main() {
	cfg := config.Parse()

	log := logger.NewJSON(logger.LevelFromEnv(cfg.LogLevel))

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Error("catalog load failed", slog.Any("err", err))
		os.Exit(1)
	}
	gens, err := generators(cfg, cat)
	if err != nil {
		log.Error("challenge setup failed", slog.Any("err", err))
		os.Exit(1)
	}
	qt := quote.NewStatic(cat.Quotes, nil)

	jsonIssuer, err := service.NewIssuer(service.JSONCodec{}, nil, gens...)
	if err != nil {
		log.Error("challenge setup failed", slog.Any("err", err))
		os.Exit(1)
	}
	runners := []app.Runner{
		tcp.NewServer(log, cfg.ListenAddr, cfg.PoWTTL, cfg.ShutdownWait,
			jsonIssuer, service.NewDefaultRegistry(service.JSONCodec{}), qt),
	}

	if cfg.GRPCAddr != "" {
		codec := challengegrpc.CramberryCodec{}
		grpcIssuer, err := service.NewIssuer(codec, nil, gens...)
		if err != nil {
			log.Error("challenge setup failed", slog.Any("err", err))
			os.Exit(1)
		}
		runners = append(runners, challengegrpc.NewServer(log, cfg.GRPCAddr, cfg.ShutdownWait,
			grpcIssuer, service.NewDefaultRegistry(codec), qt, store.NewMemory(cfg.PoWTTL)))
	}

	log.Info("challenges enabled", "count", len(gens), "quotes", qt.Len())
	if err := app.New(runners...).Run(); err != nil {
		log.Error("server stopped with error", slog.Any("err", err))
		os.Exit(1)
	}
}

// generators builds one generator per enabled kind from the catalog.
func generators(cfg config.Config, cat *catalog.Catalog) ([]service.Generator, error) {
	enabled := func(name string) bool {
		return len(cfg.Challenges) == 0 || slices.Contains(cfg.Challenges, name)
	}
	for _, name := range cfg.Challenges {
		if name != hashcash.Name && name != maze.Name {
			return nil, fmt.Errorf("%w: %q", service.ErrUnknownChallenge, name)
		}
	}

	var gens []service.Generator
	if enabled(hashcash.Name) {
		hc := service.HashcashGenerator{
			Complexity:   cat.Hashcash.Complexity,
			MessageBytes: cat.Hashcash.MessageBytes,
		}
		if cfg.PoWDifficulty > 0 {
			hc.Complexity = uint32(cfg.PoWDifficulty)
		}
		gens = append(gens, hc)
	}
	if enabled(maze.Name) && len(cat.Mazes) > 0 {
		mg, err := service.NewMazeGenerator(cat.MazeInputs(), nil)
		if err != nil {
			return nil, err
		}
		gens = append(gens, mg)
	}
	return gens, nil
}
