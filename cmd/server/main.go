package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"log"
	"net"
	"os"

	"mask-maze/internal/assets"
	"mask-maze/internal/config"
	"mask-maze/internal/game"
	"mask-maze/internal/server"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	configPath := flag.String("config", "config.json", "config file (defaults are used if missing)")
	assetsDir := flag.String("assets", "", "asset directory (overrides the config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if *assetsDir != "" {
		cfg.AssetsDir = *assetsDir
	}

	// Generate host key if it doesn't exist
	if err := ensureHostKey(cfg.HostKeyPath); err != nil {
		log.Fatalf("Host key error: %v", err)
	}

	world, err := game.NewWorld(assets.NewFSLoader(os.DirFS(cfg.AssetsDir)), cfg)
	if err != nil {
		log.Fatalf("Failed to load assets from %s: %v", cfg.AssetsDir, err)
	}
	log.Printf("Atlas loaded: %d tiles, %d levels configured", world.Atlas.Len(), len(world.Levels))

	// Fail at startup rather than on the first connection.
	for i, name := range world.Levels {
		if _, err := world.LoadLevel(i); err != nil {
			log.Fatalf("Level %s: %v", name, err)
		}
		log.Printf("Level checked: %s", name)
	}
	log.Printf("%d entity descriptors cached", world.Store.Len())

	// Start SSH server (blocks)
	listenAddr := cfg.ListenAddr
	if port := os.Getenv("PORT"); port != "" {
		listenAddr = ":" + port
	}
	sshServer := server.NewSSHServer(listenAddr, cfg.HostKeyPath, world, cfg.Scale)
	if _, port, err := net.SplitHostPort(listenAddr); err == nil {
		log.Printf("Starting Mask Maze, connect with: ssh -t -p %s localhost", port)
	}
	if err := sshServer.Start(); err != nil {
		log.Fatalf("SSH server error: %v", err)
	}
}

// ensureHostKey writes a fresh ed25519 host key to path unless one exists.
func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	log.Printf("Generating new host key at %s", path)
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("generate host key: %w", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return fmt.Errorf("encode host key: %w", err)
	}
	pemData := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	if err := os.WriteFile(path, pemData, 0600); err != nil {
		return fmt.Errorf("write host key: %w", err)
	}
	return nil
}
