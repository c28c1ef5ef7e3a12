package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/agenda/internal/database/repository"
)

var (
	// ErrBlankField is returned when a required contact field is empty.
	ErrBlankField = errors.New("field is required")
	// ErrBlankID is returned when a delete is requested without an id.
	ErrBlankID = errors.New("contact id is required")
)

// similarityThreshold is the normalized edit distance under which two names are
// treated as a possible duplicate.
const similarityThreshold = 0.25

// ContactStore is the persistence boundary behind the contact list.
type ContactStore interface {
	FindAll(ctx context.Context) ([]repository.Contact, error)
	Create(ctx context.Context, c repository.Contact) (repository.Contact, error)
	Delete(ctx context.Context, id string) error
}

// NewContact is the user input for a contact that has not been stored yet.
type NewContact struct {
	Name  string
	Phone string
	Email string
}

// Normalize trims every field.
func (n NewContact) Normalize() NewContact {
	return NewContact{
		Name:  strings.TrimSpace(n.Name),
		Phone: strings.TrimSpace(n.Phone),
		Email: strings.TrimSpace(n.Email),
	}
}

// Validate reports the first blank field, wrapping ErrBlankField.
func (n NewContact) Validate() error {
	n = n.Normalize()
	for _, f := range []struct{ name, value string }{
		{"name", n.Name},
		{"phone", n.Phone},
		{"email", n.Email},
	} {
		if f.value == "" {
			return fmt.Errorf("%s: %w", f.name, ErrBlankField)
		}
	}
	return nil
}

// ContactController is the thin layer the views talk to. It validates input
// before any store call and logs store failures.
type ContactController struct {
	Store  ContactStore
	Logger *slog.Logger
}

// NewContactController wires a controller over store.
func NewContactController(store ContactStore, logger *slog.Logger) *ContactController {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactController{Store: store, Logger: logger}
}

// FindAll returns every contact in store order.
func (c *ContactController) FindAll(ctx context.Context) ([]repository.Contact, error) {
	list, err := c.Store.FindAll(ctx)
	if err != nil {
		c.Logger.Error("list contacts", "err", err)
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return list, nil
}

// Create validates in and persists it. The store assigns the id.
func (c *ContactController) Create(ctx context.Context, in NewContact) (repository.Contact, error) {
	if err := in.Validate(); err != nil {
		return repository.Contact{}, err
	}
	in = in.Normalize()
	saved, err := c.Store.Create(ctx, repository.Contact{Name: in.Name, Phone: in.Phone, Email: in.Email})
	if err != nil {
		c.Logger.Error("create contact", "name", in.Name, "err", err)
		return repository.Contact{}, fmt.Errorf("create contact: %w", err)
	}
	c.Logger.Info("contact created", "id", saved.ID, "name", saved.Name)
	return saved, nil
}

// Delete removes the contact with id. Deleting an unknown id succeeds.
func (c *ContactController) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrBlankID
	}
	if err := c.Store.Delete(ctx, id); err != nil {
		c.Logger.Error("delete contact", "id", id, "err", err)
		return fmt.Errorf("delete contact: %w", err)
	}
	c.Logger.Info("contact deleted", "id", id)
	return nil
}

// FindSimilar returns the stored contact whose name is closest to name, if it is
// close enough to be a likely duplicate. excludeID skips one contact, usually the
// one that was just created.
func (c *ContactController) FindSimilar(ctx context.Context, name, excludeID string) (*repository.Contact, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, nil
	}
	list, err := c.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	var best *repository.Contact
	bestScore := similarityThreshold
	for i := range list {
		if list[i].ID == excludeID {
			continue
		}
		score := nameDistance(name, strings.ToLower(list[i].Name))
		if score < bestScore {
			bestScore = score
			best = &list[i]
		}
	}
	return best, nil
}

// nameDistance is the edit distance normalized by the longer name, in [0,1].
func nameDistance(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(longest)
}
