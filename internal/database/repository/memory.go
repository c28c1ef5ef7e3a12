package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jask/agenda/internal/database"
)

// MemoryContactRepo keeps contacts in process memory, in insertion order.
type MemoryContactRepo struct {
	mu       sync.RWMutex
	contacts []Contact
	now      func() time.Time
}

// NewMemoryContactRepo returns a store pre-filled with seed, in the order given.
// A seed whose id is already taken is skipped, as Create would reject it.
func NewMemoryContactRepo(seed ...Contact) *MemoryContactRepo {
	r := &MemoryContactRepo{now: database.Now}
	for _, c := range seed {
		if strings.TrimSpace(c.ID) == "" {
			c.ID = uuid.NewString()
		}
		if r.indexOf(c.ID) >= 0 {
			continue
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = r.now()
		}
		r.contacts = append(r.contacts, c)
	}
	return r
}

func (r *MemoryContactRepo) FindAll(_ context.Context) ([]Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Contact, len(r.contacts))
	copy(out, r.contacts)
	return out, nil
}

func (r *MemoryContactRepo) Create(_ context.Context, c Contact) (Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if strings.TrimSpace(c.ID) == "" {
		c.ID = uuid.NewString()
	}
	if r.indexOf(c.ID) >= 0 {
		return Contact{}, fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
	}
	c.CreatedAt = r.now()
	r.contacts = append(r.contacts, c)
	return c, nil
}

// Delete removes the contact with id. Unknown ids are ignored.
func (r *MemoryContactRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(id); i >= 0 {
		r.contacts = append(r.contacts[:i], r.contacts[i+1:]...)
	}
	return nil
}

func (r *MemoryContactRepo) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	r.contacts = nil
	r.mu.Unlock()
	return nil
}

func (r *MemoryContactRepo) Get(_ context.Context, id string) (*Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		c := r.contacts[i]
		return &c, nil
	}
	return nil, nil
}

func (r *MemoryContactRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.contacts), nil
}

func (r *MemoryContactRepo) indexOf(id string) int {
	for i := range r.contacts {
		if r.contacts[i].ID == id {
			return i
		}
	}
	return -1
}
