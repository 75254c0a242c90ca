package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gothello/config"
	"gothello/experiments"

	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Config file, defaults to the XDG config directory")
	games := flag.Int("games", 0, "Games per matchup, overrides the config")
	depths := flag.String("depths", "", "Comma separated challenger depths, overrides the config")
	baseline := flag.Int("baseline", -1, "Depth of the baseline agent, overrides the config")
	seed := flag.Uint64("seed", 0, "Seed for the experiment, overrides the config")
	out := flag.String("out", "", "Directory for the CSV records, overrides the config")
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

	if *games > 0 {
		cfg.Experiments.Games = *games
	}
	if *depths != "" {
		cfg.Experiments.Depths, err = parseDepths(*depths)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	if *baseline >= 0 {
		cfg.Experiments.Baseline = *baseline
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *out != "" {
		cfg.Experiments.OutDir = *out
	}
	if err = cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
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

	result, err := experiments.RunDepthExperiment(*cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}

	for _, tally := range result.Tallies {
		fmt.Printf("depth %d vs depth %d: %d wins, %d losses, %d draws\n",
			tally.Challenger.Depth, tally.Baseline.Depth, tally.Wins, tally.Losses, tally.Draws)
	}
	fmt.Printf("records written to %s\n", result.Dir)
}

func parseDepths(s string) ([]int, error) {
	var depths []int
	for _, field := range strings.Split(s, ",") {
		depth, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("bad depth %q", field)
		}
		depths = append(depths, depth)
	}
	return depths, nil
}
