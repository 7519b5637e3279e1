package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu sync.RWMutex // protects all fields below

	groups map[string]*AttributeGroup

	// membership maps an attribute code to the code of its group
	membership map[string]string

	locales    map[string]bool
	attributes map[string]bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store that knows the given locales and attribute codes.
// The locales are registered as activated.
func NewMemoryStore(locales []string, attributes []string) *MemoryStore {
	s := &MemoryStore{
		groups:     make(map[string]*AttributeGroup),
		membership: make(map[string]string),
		locales:    make(map[string]bool),
		attributes: make(map[string]bool),
	}
	for _, l := range locales {
		if l != "" {
			s.locales[l] = true
		}
	}
	for _, a := range attributes {
		if a != "" {
			s.attributes[a] = true
		}
	}
	return s
}

func (s *MemoryStore) FindOneByIdentifier(_ context.Context, code string) (*AttributeGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groups[code]
	if !ok {
		return nil, nil
	}
	return group.clone(), nil
}

func (s *MemoryStore) Create(_ context.Context, group *AttributeGroup) error {
	if group == nil {
		return fmt.Errorf("attribute group is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.groups[group.Code]; exists {
		return ErrCodeAlreadyUsed
	}
	for _, code := range group.Attributes {
		if !s.attributes[code] {
			return fmt.Errorf("attribute %q does not exist", code)
		}
	}
	for locale := range group.Labels {
		// deactivated locales still exist
		if _, ok := s.locales[locale]; !ok {
			return fmt.Errorf("locale %q does not exist", locale)
		}
	}

	stored := group.clone()
	now := time.Now().UTC()
	stored.Created = now
	stored.Updated = now

	for _, code := range stored.Attributes {
		if previous, ok := s.membership[code]; ok {
			s.detach(previous, code, now)
		}
		s.membership[code] = stored.Code
	}

	s.groups[stored.Code] = stored

	group.Created = now
	group.Updated = now
	return nil
}

// detach removes an attribute from a group. Caller must hold s.mu write lock.
func (s *MemoryStore) detach(groupCode, attributeCode string, now time.Time) {
	g, ok := s.groups[groupCode]
	if !ok {
		return
	}
	kept := g.Attributes[:0]
	for _, code := range g.Attributes {
		if code != attributeCode {
			kept = append(kept, code)
		}
	}
	g.Attributes = kept
	g.Updated = now
}

func (s *MemoryStore) List(_ context.Context, offset, limit int) ([]AttributeGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	codes := make([]string, 0, len(s.groups))
	for code := range s.groups {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	if offset < 0 || offset >= len(codes) {
		return []AttributeGroup{}, nil
	}
	end := offset + limit
	if end > len(codes) {
		end = len(codes)
	}

	groups := make([]AttributeGroup, 0, end-offset)
	for _, code := range codes[offset:end] {
		groups = append(groups, *s.groups[code].clone())
	}
	return groups, nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.groups), nil
}

func (s *MemoryStore) LocaleExists(_ context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.locales[code]
	return ok, nil
}

func (s *MemoryStore) AttributeExists(_ context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.attributes[code], nil
}

func (s *MemoryStore) AddLocale(_ context.Context, code string, activated bool) error {
	if code == "" {
		return fmt.Errorf("locale code cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locales[code] = activated
	return nil
}

func (s *MemoryStore) AddAttribute(_ context.Context, code string) error {
	if code == "" {
		return fmt.Errorf("attribute code cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attributes[code] = true
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() {}
