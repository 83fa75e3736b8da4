package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"mask-maze/internal/assets"
	"mask-maze/internal/config"
	"mask-maze/internal/game"
	"mask-maze/internal/terminal"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	configPath := flag.String("config", "config.json", "config file (defaults are used if missing)")
	assetsDir := flag.String("assets", "", "asset directory (overrides the config)")
	logPath := flag.String("log", "play.log", "log file; the terminal is busy drawing")
	flag.Parse()

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatalf("Open log: %v", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	if err := run(*configPath, *assetsDir); err != nil {
		log.Printf("Exit: %v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, assetsDir string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if assetsDir != "" {
		cfg.AssetsDir = assetsDir
	}

	world, err := game.NewWorld(assets.NewFSLoader(os.DirFS(cfg.AssetsDir)), cfg)
	if err != nil {
		return fmt.Errorf("load assets from %s: %w", cfg.AssetsDir, err)
	}
	g, err := game.NewGame(world)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	gl := game.NewGameLoop(g, terminal.NewDisplay(screen, cfg.Scale))
	go terminal.PumpEvents(screen, gl.InputChan(), gl.Stop)

	log.Printf("Playing %d levels from %s", len(world.Levels), cfg.AssetsDir)
	if err := gl.Run(); err != nil {
		return err
	}
	if g.Done() {
		log.Printf("All levels cleared in %d ticks", g.Status().Tick)
	}
	return nil
}
