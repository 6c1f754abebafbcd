package store

import (
	"fmt"

	"github.com/jsamuelsen/quotes/internal/domain"
)

// databaseRecord is the on-disk layout of the quote file.
// These types never leave the store package.
type databaseRecord struct {
	Quotes []quoteRecord `json:"quotes"`
	People []string      `json:"people"`
}

type quoteRecord struct {
	Data      string `json:"data"`
	Favourite bool   `json:"favourite"`
}

// toDomain translates the file layout into a domain collection.
func (r *databaseRecord) toDomain() (*domain.Collection, error) {
	c := &domain.Collection{
		Quotes: make([]domain.Quote, 0, len(r.Quotes)),
		People: append([]string(nil), r.People...),
	}

	for i, rec := range r.Quotes {
		if rec.Data == "" {
			return nil, domain.NewValidationErrorWithValue(
				fmt.Sprintf("quotes[%d].data", i), "cannot be empty", rec.Data)
		}

		c.Quotes = append(c.Quotes, domain.Quote{
			Text:      rec.Data,
			Favourite: rec.Favourite,
		})
	}

	return c, nil
}

// fromDomain translates a domain collection into the file layout.
// Empty lists are written as [] rather than null.
func fromDomain(c *domain.Collection) *databaseRecord {
	r := &databaseRecord{
		Quotes: make([]quoteRecord, 0, len(c.Quotes)),
		People: make([]string, 0, len(c.People)),
	}

	for _, q := range c.Quotes {
		r.Quotes = append(r.Quotes, quoteRecord{Data: q.Text, Favourite: q.Favourite})
	}

	r.People = append(r.People, c.People...)

	return r
}
