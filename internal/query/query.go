// Package query validates storefront request parameters and turns them into
// parameterised statements. Nothing here talks to the database.
package query

import (
	"strconv"
	"strings"

	"github.com/phenrril/bfguitars/internal/domain"
)

// Values is the read side of a submitted form. url.Values satisfies it.
type Values interface {
	Get(key string) string
}

const (
	selectProducts = "SELECT * FROM products"
	byProductID    = " WHERE product_id = ?"
	byCategory     = " WHERE category = ?"
	insertDIYOrder = "INSERT INTO diy_orders(type, n_material, b_material, color, engraving, engraving_text) VALUES (?, ?, ?, ?, ?, ?)"
	insertFeedback = "INSERT INTO feedbacks(name, feedback) VALUES (?, ?)"
)

// ParseProductID accepts only positive base-10 integers.
func ParseProductID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidProductID
	}
	return id, nil
}

func SelectProductByID(id int) domain.Statement {
	return domain.Statement{SQL: selectProducts + byProductID, Args: []any{id}}
}

// NormalizeCategory maps the route segment to a category filter; an empty
// result means no filter.
func NormalizeCategory(raw string) string {
	c := strings.TrimSpace(raw)
	if c == domain.CategoryAll {
		return ""
	}
	return c
}

func SelectByCategory(category string) domain.Statement {
	if category == "" {
		return domain.Statement{SQL: selectProducts}
	}
	return domain.Statement{SQL: selectProducts + byCategory, Args: []any{category}}
}
