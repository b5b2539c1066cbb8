package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-steering-vehicles/pkg/render"
	"github.com/lao-tseu-is-alive/go-steering-vehicles/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configFile := flag.String("config", "", "path to a JSON or TOML configuration file")
	seed := flag.Uint64("seed", 0, "random seed for the initial positions (0 picks one from the clock)")
	flag.Parse()

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		loaded, err := simulation.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("💥💥 error loading config %s: %v", *configFile, err)
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	ctx := context.Background()
	system, err := actor.NewActorSystem("SteeringWorld",
		actor.WithLogger(golog.DefaultLogger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		log.Fatalf("💥💥 error creating actor system: %v", err)
	}
	if err := system.Start(ctx); err != nil {
		log.Fatalf("💥💥 error starting actor system: %v", err)
	}
	defer func() { _ = system.Stop(ctx) }()

	game, err := render.NewGame(ctx, cfg, system)
	if err != nil {
		log.Fatalf("💥💥 error creating game: %v", err)
	}

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Steering Vehicles")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
