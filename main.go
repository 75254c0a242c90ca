package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"gothello/communication/client"
	"gothello/config"
	"gothello/game"
	"gothello/player"
	"gothello/searcher"
	"gothello/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const usage = "usage: gothello [flags] black|white <host> <server> <depth>"

var errUsage = errors.New(usage)

type args struct {
	side   game.Side
	host   string
	server int
	depth  int
}

func parseArgs(positional []string) (args, error) {
	if len(positional) != 4 {
		return args{}, errUsage
	}
	side, err := game.ParseSide(positional[0])
	if err != nil {
		return args{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	server, err := strconv.Atoi(positional[2])
	if err != nil || server < 0 {
		return args{}, fmt.Errorf("%w: bad server number %q", errUsage, positional[2])
	}
	depth, err := strconv.Atoi(positional[3])
	if err != nil || depth < 0 {
		return args{}, fmt.Errorf("%w: bad depth %q", errUsage, positional[3])
	}
	return args{side: side, host: positional[1], server: server, depth: depth}, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("gothello", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "Config file, defaults to the XDG config directory")
	goroutines := flags.Int("goroutines", 0, "Goroutines for the root fan-out, overrides the config")
	seed := flags.Uint64("seed", 0, "Seed for tie-breaking, overrides the config")
	logLevel := flags.String("log-level", "", "Log level, overrides the config")
	flags.Usage = func() {
		fmt.Fprintln(stderr, usage)
		flags.PrintDefaults()
	}
	if err := flags.Parse(argv); err != nil {
		return 2
	}

	a, err := parseArgs(flags.Args())
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if *goroutines > 0 {
		cfg.Goroutines = *goroutines
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err = config.SetupLogging(stderr, cfg.LogLevel); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	winner, err := play(ctx, a, cfg)
	if err != nil {
		log.Error().Err(err).Msg("game aborted")
		return 1
	}
	fmt.Fprintln(stdout, player.Report(winner))
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func play(ctx context.Context, a args, cfg *config.Config) (game.Side, error) {
	session, err := client.Dial(ctx, a.host, a.server, a.side)
	if err != nil {
		return game.None, err
	}
	defer session.Close()

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	options := []searcher.Option{searcher.WithMetrics()}
	if cfg.Goroutines > 1 {
		options = append(options, searcher.WithGoroutines(cfg.Goroutines))
	}
	minimax := searcher.NewMinimax(options...)
	log.Info().Msgf("playing %s at depth %d with seed %d", a.side, a.depth, seed)

	p := player.NewPlayer(session, agent.NewMinimaxAgent(minimax, a.depth, rand.New(rand.NewSource(seed))))
	return p.Play(ctx)
}
