package service

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jask/agenda/internal/database/repository"
)

// IngestService moves contacts in and out as CSV.
type IngestService struct {
	Contacts *ContactController
}

type IngestResult struct {
	Imported int
	Skipped  int
	Errors   []error
}

var csvHeader = []string{"name", "phone", "email"}

// ImportCSV reads rows of name, phone, email. A leading header row is skipped,
// as are rows identical (case-insensitive) to a stored contact.
func (s *IngestService) ImportCSV(ctx context.Context, r io.Reader) (IngestResult, error) {
	res := IngestResult{}
	existing, err := s.Contacts.FindAll(ctx)
	if err != nil {
		return res, err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		seen[contactKey(c.Name, c.Phone, c.Email)] = struct{}{}
	}

	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1
	first := true
	for {
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.ParseError already carries the line
			res.Errors = append(res.Errors, err)
			first = false
			continue
		}
		// physical line, so blank lines and multi-line quoted fields count
		line, _ := csvr.FieldPos(0)
		if first {
			first = false
			if isHeader(rec) {
				continue
			}
		}
		if len(rec) != 3 {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: expected 3 columns, got %d", line, len(rec)))
			continue
		}
		in := NewContact{Name: rec[0], Phone: rec[1], Email: rec[2]}.Normalize()
		key := contactKey(in.Name, in.Phone, in.Email)
		if _, dup := seen[key]; dup {
			res.Skipped++
			continue
		}
		if _, err := s.Contacts.Create(ctx, in); err != nil {
			if errors.Is(err, ErrBlankField) {
				res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
				continue
			}
			return res, fmt.Errorf("line %d: %w", line, err)
		}
		seen[key] = struct{}{}
		res.Imported++
	}
	return res, nil
}

// ExportCSV writes id, name, phone, email rows in store order.
func (s *IngestService) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	list, err := s.Contacts.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"id"}, csvHeader...)); err != nil {
		return 0, err
	}
	for _, c := range list {
		if err := cw.Write(exportRow(c)); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(list), cw.Error()
}

func exportRow(c repository.Contact) []string {
	return []string{c.ID, c.Name, c.Phone, c.Email}
}

func isHeader(rec []string) bool {
	if len(rec) != len(csvHeader) {
		return false
	}
	for i, h := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(rec[i]), h) {
			return false
		}
	}
	return true
}

func contactKey(name, phone, email string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "\x00" +
		strings.ToLower(strings.TrimSpace(phone)) + "\x00" +
		strings.ToLower(strings.TrimSpace(email))
}
