// Package memory provides an in-process implementation of storage.Store.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/mmynk/groupwallet/internal/apperr"
	"github.com/mmynk/groupwallet/internal/models"
	"github.com/mmynk/groupwallet/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps deep copies of groups in maps keyed by ID and by code.
type Store struct {
	mu     sync.RWMutex
	groups map[string]*models.Group
	codes  map[string]string
	order  []string // group IDs in creation order
}

// New creates an empty store.
func New() *Store {
	return &Store{
		groups: make(map[string]*models.Group),
		codes:  make(map[string]string),
	}
}

func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.codes[group.Code]; taken {
		return apperr.Conflict("group code %s already exists", group.Code)
	}
	if _, exists := s.groups[group.ID]; exists {
		return apperr.Conflict("group %s already exists", group.ID)
	}
	s.groups[group.ID] = group.Clone()
	s.codes[group.Code] = group.ID
	s.order = append(s.order, group.ID)
	return nil
}

func (s *Store) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[groupID]
	if !ok {
		return nil, apperr.NotFound("group not found: %s", groupID)
	}
	return g.Clone(), nil
}

func (s *Store) GetGroupByCode(ctx context.Context, code string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.codes[code]
	if !ok {
		return nil, apperr.NotFound("no group with code %s", code)
	}
	return s.groups[id].Clone(), nil
}

func (s *Store) SaveGroup(ctx context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.groups[group.ID]
	if !ok {
		return apperr.NotFound("group not found: %s", group.ID)
	}
	if existing.Code != group.Code {
		return apperr.Validation("group code cannot change")
	}
	s.groups[group.ID] = group.Clone()
	return nil
}

func (s *Store) DeleteGroup(ctx context.Context, groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[groupID]
	if !ok {
		return apperr.NotFound("group not found: %s", groupID)
	}
	delete(s.codes, g.Code)
	delete(s.groups, groupID)
	s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == groupID })
	return nil
}

func (s *Store) ListGroupsByPhone(ctx context.Context, phone string) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Group
	for _, id := range s.order {
		if g := s.groups[id]; g.HasPhone(phone) {
			out = append(out, g.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) Close() error {
	return nil
}
