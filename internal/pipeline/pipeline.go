// Package pipeline runs a request through an ordered list of steps. Each step
// either lets the request advance or stops it with a status and a message;
// a single dispatcher interprets the results and writes the response.
package pipeline

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/bfguitars/internal/domain"
)

// Exchange holds the per-request values steps hand to each other.
type Exchange struct {
	Request *http.Request
	Params  map[string]string
	Form    url.Values

	Statement domain.Statement
	Products  []domain.Product
	FAQ       []domain.FAQEntry
	DIYOrder  *domain.DIYOrder
	Feedback  *domain.Feedback
}

// Param returns a route parameter.
func (ex *Exchange) Param(name string) string {
	if ex.Params == nil {
		return ""
	}
	return ex.Params[name]
}

// Result is what a step returns: either advance, or fail with a status.
type Result struct {
	failure *Failure
}

// Failure is the terminal outcome of a failed step.
type Failure struct {
	Status  int
	Message string
}

func (f *Failure) Error() string { return f.Message }

func Next() Result { return Result{} }

func Fail(status int, message string) Result {
	return Result{failure: &Failure{Status: status, Message: message}}
}

// Failed reports the failure carried by r, if any.
func (r Result) Failed() (*Failure, bool) {
	return r.failure, r.failure != nil
}

type Step func(ctx context.Context, ex *Exchange) Result

// Run executes steps in order and stops at the first failure.
func Run(ctx context.Context, ex *Exchange, steps ...Step) *Failure {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return &Failure{Status: http.StatusInternalServerError, Message: ServerError}
		}
		if f, failed := step(ctx, ex).Failed(); failed {
			return f
		}
	}
	return nil
}

// Responder writes the success response once every step has advanced.
type Responder func(w http.ResponseWriter, ex *Exchange)

// Pipeline is one endpoint: the route parameters it reads, its steps and its
// success responder.
type Pipeline struct {
	Name    string
	Params  []string
	Steps   []Step
	Respond Responder
}

// ServeHTTP fills an Exchange from the request, runs the steps and writes
// either the success response or the captured failure as plain text.
func (p Pipeline) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ex := &Exchange{Request: r, Params: routeParams(r, p.Params)}
	if r.Method == http.MethodPost {
		if err := parseForm(r); err != nil {
			log.Ctx(r.Context()).Debug().Err(err).Str("pipeline", p.Name).Msg("parse form")
		}
		ex.Form = r.Form
	}
	if f := Run(r.Context(), ex, p.Steps...); f != nil {
		WriteFailure(w, f)
		return
	}
	p.Respond(w, ex)
}

// WriteFailure sends the failure's message as plain text with its status.
func WriteFailure(w http.ResponseWriter, f *Failure) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(f.Status)
	_, _ = w.Write([]byte(f.Message))
}

const maxFormMemory = 1 << 20

func parseForm(r *http.Request) error {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && err != http.ErrNotMultipart {
		return err
	}
	return nil
}

func routeParams(r *http.Request, names []string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		if v := r.PathValue(name); v != "" {
			out[name] = v
		}
	}
	return out
}
