package main

import (
	"flag"
	"log"

	"github.com/Garsondee/Soft-Creatures/internal/game"
)

func main() {
	cfg := game.DefaultConfig()
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "RNG seed for the first creature")
	flag.IntVar(&cfg.Params.Count, "count", cfg.Params.Count, "number of point masses")
	flag.Float64Var(&cfg.Speed, "speed", cfg.Speed, "initial sim speed (0 starts paused)")
	flag.Parse()

	if err := game.Run(cfg); err != nil {
		log.Fatal(err)
	}
}
