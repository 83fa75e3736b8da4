package maps

import (
	"errors"
	"fmt"
	"sync"

	"mask-maze/internal/assets"
)

// EntitiesDir is the asset directory holding one <symbol>.json per symbol.
const EntitiesDir = "entities"

// UnknownSymbolError is returned when a grid uses a symbol without a
// descriptor.
type UnknownSymbolError struct {
	Symbol byte
	Err    error
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown grid symbol %q: %v", e.Symbol, e.Err)
}

func (e *UnknownSymbolError) Unwrap() error {
	return e.Err
}

// Store resolves grid symbols to entities. Descriptors are loaded on first
// use and kept for the life of the process. Safe for concurrent use.
type Store struct {
	loader assets.Loader

	mu       sync.Mutex
	entities map[byte]*Entity
}

// NewStore creates an empty store reading descriptors through loader.
func NewStore(loader assets.Loader) *Store {
	return &Store{
		loader:   loader,
		entities: make(map[byte]*Entity),
	}
}

// Resolve returns the entity for symbol, loading its descriptor if needed.
func (s *Store) Resolve(symbol byte) (*Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entities[symbol]; ok {
		return e, nil
	}

	if symbol < 0x20 || symbol > 0x7E || symbol == '/' || symbol == '\\' {
		return nil, &UnknownSymbolError{Symbol: symbol, Err: errors.New("not a printable symbol")}
	}

	data, err := s.loader.Read(string(symbol)+".json", EntitiesDir)
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			return nil, &UnknownSymbolError{Symbol: symbol, Err: err}
		}
		return nil, err
	}

	e, err := ParseEntity(symbol, data)
	if err != nil {
		return nil, err
	}
	s.entities[symbol] = e
	return e, nil
}

// Len returns how many descriptors have been loaded so far.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entities)
}
