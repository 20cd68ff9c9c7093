package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/bfguitars/internal/domain"
	"github.com/phenrril/bfguitars/internal/pipeline"
	"github.com/phenrril/bfguitars/internal/query"
)

// validationFailure maps a validation error onto a 400 carrying its text.
func validationFailure(err error) pipeline.Result {
	var de domain.Error
	if errors.As(err, &de) {
		return pipeline.Fail(http.StatusBadRequest, de.Error())
	}
	return pipeline.Fail(http.StatusBadRequest, domain.ErrMissingParam.Error())
}

func serverFailure(ctx context.Context, err error, step string) pipeline.Result {
	log.Ctx(ctx).Error().Err(err).Str("step", step).Msg("pipeline")
	return pipeline.Fail(http.StatusInternalServerError, pipeline.ServerError)
}

// ValidateProductID checks the id route parameter and builds the lookup.
func ValidateProductID(ctx context.Context, ex *pipeline.Exchange) pipeline.Result {
	id, err := query.ParseProductID(ex.Param("id"))
	if err != nil {
		return validationFailure(err)
	}
	ex.Statement = query.SelectProductByID(id)
	return pipeline.Next()
}

// NormalizeCategory turns the category route parameter into a listing query.
func NormalizeCategory(ctx context.Context, ex *pipeline.Exchange) pipeline.Result {
	ex.Statement = query.SelectByCategory(query.NormalizeCategory(ex.Param("category")))
	return pipeline.Next()
}

func ValidateDIY(ctx context.Context, ex *pipeline.Exchange) pipeline.Result {
	o, err := query.ParseDIYOrder(ex.Form)
	if err != nil {
		return validationFailure(err)
	}
	ex.DIYOrder = &o
	ex.Statement = query.InsertDIYOrder(o)
	return pipeline.Next()
}

func ValidateFeedback(ctx context.Context, ex *pipeline.Exchange) pipeline.Result {
	f, err := query.ParseFeedback(ex.Form)
	if err != nil {
		return validationFailure(err)
	}
	ex.Feedback = &f
	ex.Statement = query.InsertFeedback(f)
	return pipeline.Next()
}

// ExecuteRead runs the built SELECT. Any store fault becomes a generic 500.
func ExecuteRead(store domain.CatalogStore) pipeline.Step {
	return func(ctx context.Context, ex *pipeline.Exchange) pipeline.Result {
		list, err := store.ReadProducts(ctx, ex.Statement)
		if err != nil {
			return serverFailure(ctx, err, "execute-read")
		}
		ex.Products = list
		return pipeline.Next()
	}
}

func ExecuteWrite(store domain.CatalogStore) pipeline.Step {
	return func(ctx context.Context, ex *pipeline.Exchange) pipeline.Result {
		if err := store.Write(ctx, ex.Statement); err != nil {
			return serverFailure(ctx, err, "execute-write")
		}
		return pipeline.Next()
	}
}

// RequireRows rejects empty read results: no rows is reported as a 400.
func RequireRows(ctx context.Context, ex *pipeline.Exchange) pipeline.Result {
	if len(ex.Products) == 0 {
		return pipeline.Fail(http.StatusBadRequest, pipeline.ItemsNotAvail)
	}
	return pipeline.Next()
}

// ResolveImages rewrites stored image references into loadable URLs.
func ResolveImages(images domain.ImageResolver) pipeline.Step {
	return func(ctx context.Context, ex *pipeline.Exchange) pipeline.Result {
		if images == nil {
			return pipeline.Next()
		}
		for i := range ex.Products {
			u, err := images.Resolve(ctx, ex.Products[i].Img)
			if err != nil {
				return serverFailure(ctx, err, "resolve-images")
			}
			ex.Products[i].Img = u
		}
		return pipeline.Next()
	}
}

func LoadFAQ(source domain.FAQSource) pipeline.Step {
	return func(ctx context.Context, ex *pipeline.Exchange) pipeline.Result {
		entries, err := source.Entries(ctx)
		if err != nil {
			return serverFailure(ctx, err, "load-faq")
		}
		ex.FAQ = entries
		return pipeline.Next()
	}
}
