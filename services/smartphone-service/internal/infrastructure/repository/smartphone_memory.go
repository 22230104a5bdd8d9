package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"smartphones/services/smartphone-service/internal/domain"

	"github.com/google/uuid"
)

// MemoryRepository keeps records in process memory. Used for STORE_DRIVER=memory
// and in tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	phones map[uuid.UUID]domain.Smartphone
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		phones: make(map[uuid.UUID]domain.Smartphone),
		now:    time.Now,
	}
}

func (r *MemoryRepository) List(_ context.Context) ([]domain.Smartphone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	phones := make([]domain.Smartphone, 0, len(r.phones))
	for _, p := range r.phones {
		phones = append(phones, p.Clone())
	}
	sort.SliceStable(phones, func(i, j int) bool {
		if phones[i].CreatedAt.Equal(phones[j].CreatedAt) {
			return phones[i].ID.String() < phones[j].ID.String()
		}
		return phones[i].CreatedAt.Before(phones[j].CreatedAt)
	})
	return phones, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Smartphone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.phones[id]
	if !ok {
		return nil, domain.ErrSmartphoneNotFound
	}
	c := p.Clone()
	return &c, nil
}

func (r *MemoryRepository) Create(_ context.Context, p *domain.Smartphone) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.phones[p.ID] = p.Clone()
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, p *domain.Smartphone) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.phones[p.ID]
	if !ok {
		return domain.ErrSmartphoneNotFound
	}

	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = r.now()
	r.phones[p.ID] = p.Clone()
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.phones[id]; !ok {
		return domain.ErrSmartphoneNotFound
	}
	delete(r.phones, id)
	return nil
}

func (r *MemoryRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.phones)), nil
}
