// Package entities provides in-memory lookup over the business entities of
// a fleet, backed by entities.csv in the group directory.
package entities

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/splitledger-dev/splitledger/internal/model"
)

// Filename is the fleet file inside a group directory.
const Filename = "entities.csv"

// Service provides lookup over a loaded fleet.
type Service struct {
	entities []model.Entity
	byID     map[string]model.Entity
}

// NewService creates a Service from a slice of entities.
func NewService(ents []model.Entity) *Service {
	byID := make(map[string]model.Entity, len(ents))
	for _, e := range ents {
		byID[e.ID] = e
	}
	return &Service{entities: ents, byID: byID}
}

// Load reads entities.csv from a group directory. A missing file yields an
// empty fleet.
func Load(root string) (*Service, error) {
	f, err := os.Open(filepath.Join(root, Filename))
	if errors.Is(err, fs.ErrNotExist) {
		return NewService(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening entities: %w", err)
	}
	defer f.Close()

	ents, err := ReadEntities(f)
	if err != nil {
		return nil, fmt.Errorf("reading entities: %w", err)
	}
	return NewService(ents), nil
}

// All returns all entities.
func (s *Service) All() []model.Entity {
	return s.entities
}

// Get returns an entity by ID.
func (s *Service) Get(id string) (model.Entity, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Exists reports whether an entity ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Save writes the fleet to entities.csv in a group directory.
func (s *Service) Save(root string) error {
	f, err := os.Create(filepath.Join(root, Filename))
	if err != nil {
		return fmt.Errorf("creating entities file: %w", err)
	}
	defer f.Close()

	if err := WriteEntities(f, s.entities); err != nil {
		return fmt.Errorf("writing entities: %w", err)
	}
	return nil
}
