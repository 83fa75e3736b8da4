package game

import (
	"fmt"

	"mask-maze/internal/assets"
	"mask-maze/internal/config"
	"mask-maze/internal/maps"
	"mask-maze/internal/render"
)

// World holds the resources shared by every level and every game: the asset
// loader, the tile atlas and the entity store. Nothing in it changes after
// NewWorld returns, apart from the store's descriptor cache.
type World struct {
	Loader     assets.Loader
	Atlas      *render.Atlas
	Store      *maps.Store
	Levels     []string
	Actors     config.ActorTiles
	Speed      int
	TickRate   int
	ClearColor render.Color
}

// NewWorld loads the atlas named in cfg through loader.
func NewWorld(loader assets.Loader, cfg *config.Config) (*World, error) {
	data, err := loader.Read(cfg.AtlasFile, "")
	if err != nil {
		return nil, fmt.Errorf("read atlas: %w", err)
	}
	atlas, err := render.NewAtlas(data)
	if err != nil {
		return nil, fmt.Errorf("load atlas %s: %w", cfg.AtlasFile, err)
	}
	return NewWorldWithAtlas(loader, atlas, cfg), nil
}

// NewWorldWithAtlas builds a world around an already decoded atlas.
func NewWorldWithAtlas(loader assets.Loader, atlas *render.Atlas, cfg *config.Config) *World {
	levels := make([]string, len(cfg.Levels))
	copy(levels, cfg.Levels)
	return &World{
		Loader:     loader,
		Atlas:      atlas,
		Store:      maps.NewStore(loader),
		Levels:     levels,
		Actors:     cfg.Actors,
		Speed:      cfg.Speed,
		TickRate:   cfg.TickRate,
		ClearColor: render.RGB(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2]),
	}
}

// LevelName returns the name of level index i, or "" past the last level.
func (w *World) LevelName(i int) string {
	if i < 0 || i >= len(w.Levels) {
		return ""
	}
	return w.Levels[i]
}

// LoadLevel reads, decodes and validates level index i.
func (w *World) LoadLevel(i int) (*Level, error) {
	name := w.LevelName(i)
	if name == "" {
		return nil, fmt.Errorf("no level with index %d", i)
	}
	data, err := maps.LoadLevelData(w.Loader, name)
	if err != nil {
		return nil, err
	}
	lvl, err := NewLevel(data, w.Store, w.Atlas, w.Actors)
	if err != nil {
		return nil, err
	}
	lvl.Index = i
	return lvl, nil
}
