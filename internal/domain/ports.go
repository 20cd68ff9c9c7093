package domain

import (
	"context"
)

// Statement is a parameterised SQL statement: a template with `?`
// placeholders and its ordered arguments.
type Statement struct {
	SQL  string
	Args []any
}

// CatalogStore runs statements against the relational store.
type CatalogStore interface {
	ReadProducts(ctx context.Context, st Statement) ([]Product, error)
	Write(ctx context.Context, st Statement) error
}

// FAQSource yields the FAQ entries in source order.
type FAQSource interface {
	Entries(ctx context.Context) ([]FAQEntry, error)
}

// ImageResolver turns a stored image reference into a URL the client can load.
type ImageResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// Notifier is told about accepted submissions.
type Notifier interface {
	DIYOrderReceived(ctx context.Context, o DIYOrder) error
	FeedbackReceived(ctx context.Context, f Feedback) error
}
