package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gothello/communication"
	"gothello/communication/server"
	"gothello/config"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "Config file, defaults to the XDG config directory")
	serverNumber := flag.Int("server", -1, "Referee number, listens on 29057+server; overrides the config")
	observerAddr := flag.String("observer", "", "Address of the HTTP observer, overrides the config")
	writeConfig := flag.Bool("write-config", false, "Save the resulting config to the XDG config directory")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *serverNumber >= 0 {
		cfg.Referee.Server = *serverNumber
	}
	if *observerAddr != "" {
		cfg.Referee.ObserverAddr = *observerAddr
	}
	if *writeConfig {
		if err = cfg.Save(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if err = config.SetupStderrLogging(cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = serve(ctx, cfg.Referee); err != nil {
		log.Fatal().Err(err).Msg("referee stopped")
	}
}

func serve(ctx context.Context, cfg config.RefereeConfig) error {
	hub := server.NewHub()
	addr := fmt.Sprintf(":%d", communication.BasePort+cfg.Server)
	referee, err := server.Listen(addr, server.WithObserver(hub))
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return referee.Serve(ctx)
	})

	if cfg.ObserverAddr != "" {
		httpServer := &http.Server{
			Addr:              cfg.ObserverAddr,
			Handler:           hub.Handler(referee.Games),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			log.Info().Msgf("observer listening on %s", cfg.ObserverAddr)
			err := httpServer.ListenAndServe()
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}
