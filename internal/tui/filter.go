package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/jask/agenda/internal/database/repository"
)

const shortIDLen = 8

// shortID is the id as shown in the table.
func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// rowFor renders the cells displayed for c. Search matches against exactly these.
func rowFor(c repository.Contact) table.Row {
	return table.Row(Cells(c))
}

// Cells returns the displayed columns of c: short id, name, phone, email.
func Cells(c repository.Contact) []string {
	return []string{shortID(c.ID), c.Name, c.Phone, c.Email}
}

// FilterContacts keeps the contacts where query appears, case-insensitively,
// in any displayed cell. A blank query keeps everything. The input is never modified.
func FilterContacts(all []repository.Contact, query string) []repository.Contact {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]repository.Contact, 0, len(all))
	for _, c := range all {
		if q == "" || rowMatches(rowFor(c), q) {
			out = append(out, c)
		}
	}
	return out
}

func rowMatches(row table.Row, lowerQuery string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell), lowerQuery) {
			return true
		}
	}
	return false
}

func rowsFor(cs []repository.Contact) []table.Row {
	rows := make([]table.Row, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, rowFor(c))
	}
	return rows
}
