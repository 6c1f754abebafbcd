// Package domain contains core business entities and rules.
package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// MaxPeople is the number of people a quote can refer to ({A} through {F}).
const MaxPeople = 6

// Quote is a stored quotation. Text carries the inline markup unparsed.
// This is a domain entity - it has no knowledge of external systems.
type Quote struct {
	// Text is the raw quote, including <emphasis>, *action* and {A} markup.
	Text string

	// Favourite marks the quote with a heart when displayed.
	Favourite bool
}

// Collection is the whole quote book: the quotes and the people their
// substitution letters refer to.
//
// Quote IDs are 1-based positions in Quotes, so deleting a quote renumbers
// every quote after it.
type Collection struct {
	Quotes []Quote
	People []string
}

// Len returns the number of quotes.
func (c *Collection) Len() int {
	return len(c.Quotes)
}

// Get returns the quote with the given ID.
func (c *Collection) Get(id int) (Quote, error) {
	if err := c.checkID(id); err != nil {
		return Quote{}, err
	}

	return c.Quotes[id-1], nil
}

// Add appends q and returns its ID.
func (c *Collection) Add(q Quote) (int, error) {
	if err := validateText(q.Text); err != nil {
		return 0, err
	}

	c.Quotes = append(c.Quotes, q)

	return len(c.Quotes), nil
}

// Replace overwrites the quote with the given ID.
func (c *Collection) Replace(id int, q Quote) error {
	if err := c.checkID(id); err != nil {
		return err
	}

	if err := validateText(q.Text); err != nil {
		return err
	}

	c.Quotes[id-1] = q

	return nil
}

// Remove deletes the quote with the given ID.
func (c *Collection) Remove(id int) (Quote, error) {
	if err := c.checkID(id); err != nil {
		return Quote{}, err
	}

	removed := c.Quotes[id-1]
	c.Quotes = slices.Delete(c.Quotes, id-1, id)

	return removed, nil
}

// AddPerson appends a person and returns their position.
func (c *Collection) AddPerson(name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, NewValidationError("name", "cannot be empty")
	}

	if len(c.People) >= MaxPeople {
		return 0, NewValidationErrorWithValue("people",
			fmt.Sprintf("at most %d people can be referenced", MaxPeople), len(c.People))
	}

	if slices.Contains(c.People, name) {
		return 0, NewConflictErrorWithDetails("person", "duplicate name", name)
	}

	c.People = append(c.People, name)

	return len(c.People) - 1, nil
}

// Favourites returns the IDs of all favourite quotes in order.
func (c *Collection) Favourites() []int {
	var ids []int
	for i, q := range c.Quotes {
		if q.Favourite {
			ids = append(ids, i+1)
		}
	}

	return ids
}

// Validate checks the collection invariants. The people list is not capped
// here: a book with more than MaxPeople names is legal, the extra names are
// just unreachable. AddPerson enforces the cap on new names.
func (c *Collection) Validate() error {
	for i, q := range c.Quotes {
		if err := validateText(q.Text); err != nil {
			return fmt.Errorf("quote %d: %w", i+1, err)
		}
	}

	return nil
}

func (c *Collection) checkID(id int) error {
	if id < 1 || id > len(c.Quotes) {
		return NewNotFoundError("quote", strconv.Itoa(id))
	}

	return nil
}

func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return NewValidationError("text", "cannot be empty")
	}

	return nil
}
