package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ziplink/ziplink/pkg/core/domain"
	"github.com/ziplink/ziplink/pkg/ports"
)

// MemoryRepository provides thread-safe in-memory storage, used for
// local development and tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	links map[string]*domain.Link
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		links: make(map[string]*domain.Link),
	}
}

// Create atomically saves the link only if the short code is free.
func (r *MemoryRepository) Create(ctx context.Context, link *domain.Link) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.links[link.ShortCode]; exists {
		return domain.ErrAliasTaken
	}
	r.links[link.ShortCode] = link.Clone()
	return nil
}

func (r *MemoryRepository) GetByShortCode(ctx context.Context, code string) (*domain.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	link, exists := r.links[code]
	if !exists {
		return nil, nil
	}
	return link.Clone(), nil
}

func (r *MemoryRepository) IncrementClicks(ctx context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if link, exists := r.links[code]; exists {
		link.Clicks++
	}
	return nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID string) ([]domain.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var links []domain.Link
	for _, link := range r.links {
		if link.UserID == userID {
			links = append(links, *link.Clone())
		}
	}
	sort.Slice(links, func(i, j int) bool {
		return links[i].CreatedAt.After(links[j].CreatedAt)
	})
	return links, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.links, code)
	return nil
}

func (r *MemoryRepository) Dump(ctx context.Context) ([]domain.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var links []domain.Link
	for _, link := range r.links {
		links = append(links, *link.Clone())
	}
	sort.Slice(links, func(i, j int) bool {
		return links[i].CreatedAt.Before(links[j].CreatedAt)
	})
	return links, nil
}

// Ensure interface compliance
var _ ports.LinkRepository = (*MemoryRepository)(nil)
