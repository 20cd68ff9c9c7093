// Package usecase composes the storefront endpoints out of pipeline steps.
package usecase

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/bfguitars/internal/domain"
	"github.com/phenrril/bfguitars/internal/pipeline"
)

// Catalog serves the read side of the store: products and the FAQ.
type Catalog struct {
	Store  domain.CatalogStore
	FAQ    domain.FAQSource
	Images domain.ImageResolver
}

func (c *Catalog) ProductByID() pipeline.Pipeline {
	return pipeline.Pipeline{
		Name:   "product",
		Params: []string{"id"},
		Steps: []pipeline.Step{
			ValidateProductID,
			ExecuteRead(c.Store),
			RequireRows,
			ResolveImages(c.Images),
		},
		Respond: func(w http.ResponseWriter, ex *pipeline.Exchange) { writeJSON(w, ex.Products) },
	}
}

func (c *Catalog) ByCategory() pipeline.Pipeline {
	return pipeline.Pipeline{
		Name:   "category",
		Params: []string{"category"},
		Steps: []pipeline.Step{
			NormalizeCategory,
			ExecuteRead(c.Store),
			RequireRows,
			ResolveImages(c.Images),
		},
		Respond: func(w http.ResponseWriter, ex *pipeline.Exchange) { writeJSON(w, ex.Products) },
	}
}

func (c *Catalog) FAQEntries() pipeline.Pipeline {
	return pipeline.Pipeline{
		Name:    "faq",
		Steps:   []pipeline.Step{LoadFAQ(c.FAQ)},
		Respond: func(w http.ResponseWriter, ex *pipeline.Exchange) { writeJSON(w, ex.FAQ) },
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("encode response")
		pipeline.WriteFailure(w, &pipeline.Failure{Status: http.StatusInternalServerError, Message: pipeline.ServerError})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func writeText(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(msg))
}
