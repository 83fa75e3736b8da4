package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"mask-maze/internal/assets"
	"mask-maze/internal/config"
	"mask-maze/internal/game"
	"mask-maze/internal/render"
	"mask-maze/internal/window"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	configPath := flag.String("config", "config.json", "config file (defaults are used if missing)")
	assetsDir := flag.String("assets", "", "asset directory (overrides the config)")
	zoom := flag.Int("zoom", 1, "window size multiplier")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if *assetsDir != "" {
		cfg.AssetsDir = *assetsDir
	}

	world, err := game.NewWorld(assets.NewFSLoader(os.DirFS(cfg.AssetsDir)), cfg)
	if err != nil {
		log.Fatalf("Failed to load assets from %s: %v", cfg.AssetsDir, err)
	}
	g, err := game.NewGame(world)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	ebiten.SetWindowTitle("Mask Maze")
	ebiten.SetWindowSize(render.CanvasWidth*max(*zoom, 1), render.CanvasHeight*max(*zoom, 1))
	ebiten.SetTPS(cfg.TickRate)

	if err := ebiten.RunGame(window.New(g)); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("Game error: %v", err)
	}
}
