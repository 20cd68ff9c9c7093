package usecase

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/bfguitars/internal/domain"
	"github.com/phenrril/bfguitars/internal/pipeline"
)

const notifyTimeout = 15 * time.Second

// Submissions serves the write side: DIY orders and feedback.
type Submissions struct {
	Store    domain.CatalogStore
	Notifier domain.Notifier
}

func (s *Submissions) DIY() pipeline.Pipeline {
	return pipeline.Pipeline{
		Name: "diy",
		Steps: []pipeline.Step{
			ValidateDIY,
			ExecuteWrite(s.Store),
			s.announce,
		},
		Respond: func(w http.ResponseWriter, _ *pipeline.Exchange) { writeText(w, pipeline.DIYThanks) },
	}
}

func (s *Submissions) Feedback() pipeline.Pipeline {
	return pipeline.Pipeline{
		Name: "feedback",
		Steps: []pipeline.Step{
			ValidateFeedback,
			ExecuteWrite(s.Store),
			s.announce,
		},
		Respond: func(w http.ResponseWriter, _ *pipeline.Exchange) { writeText(w, pipeline.FeedbackThanks) },
	}
}

// announce hands the stored submission to the notifier in the background.
// It never fails the request.
func (s *Submissions) announce(ctx context.Context, ex *pipeline.Exchange) pipeline.Result {
	if s.Notifier == nil {
		return pipeline.Next()
	}
	logger := log.Ctx(ctx)
	bg := context.WithoutCancel(ctx)
	order, feedback := ex.DIYOrder, ex.Feedback
	go func() {
		ctx, cancel := context.WithTimeout(bg, notifyTimeout)
		defer cancel()
		var err error
		switch {
		case order != nil:
			err = s.Notifier.DIYOrderReceived(ctx, *order)
		case feedback != nil:
			err = s.Notifier.FeedbackReceived(ctx, *feedback)
		}
		if err != nil {
			logger.Warn().Err(err).Msg("notify submission")
		}
	}()
	return pipeline.Next()
}
