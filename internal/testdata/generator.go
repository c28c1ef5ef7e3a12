// Package testdata generates sample contacts for tests and demos.
package testdata

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/agenda/internal/database/repository"
)

var (
	firstNames = []string{"Ana", "Bruno", "Carla", "Diego", "Elena", "Fabio", "Gala", "Hugo", "Ines", "Jorge", "Karla", "Luis"}
	lastNames  = []string{"Torres", "Diaz", "Lopez", "Quispe", "Ramos", "Vega", "Castro", "Mendoza"}
	domains    = []string{"example.com", "mail.pe", "corp.org"}
)

// Contacts returns n deterministic contacts for the given seed. Ids are
// name-based UUIDs so the same seed always yields the same rows.
func Contacts(n int, seed int64) []repository.Contact {
	r := rand.New(rand.NewSource(seed))
	out := make([]repository.Contact, 0, n)
	for i := 0; i < n; i++ {
		first := firstNames[r.Intn(len(firstNames))]
		last := lastNames[r.Intn(len(lastNames))]
		out = append(out, repository.Contact{
			ID:    uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("contact:%d:%d", seed, i))).String(),
			Name:  first + " " + last,
			Phone: fmt.Sprintf("+51 9%02d %03d %03d", r.Intn(100), r.Intn(1000), r.Intn(1000)),
			Email: fmt.Sprintf("%s.%s%d@%s", strings.ToLower(first), strings.ToLower(last), i, domains[r.Intn(len(domains))]),
		})
	}
	return out
}

// Creator is any store that can persist a contact.
type Creator interface {
	Create(ctx context.Context, c repository.Contact) (repository.Contact, error)
}

// Seed stores n generated contacts in store.
func Seed(ctx context.Context, store Creator, n int, seed int64) error {
	for _, c := range Contacts(n, seed) {
		if _, err := store.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
