package httpserver

import (
	"net/http"

	"github.com/phenrril/bfguitars/internal/adapters/ratelimit"
	"github.com/phenrril/bfguitars/internal/usecase"
)

// Options are the parts of the configuration the router needs.
type Options struct {
	APIBase   string
	StaticDir string
	Limiter   ratelimit.Limiter
	Limit     int

	// Peers allowed to name the client in X-Forwarded-For or X-Real-IP.
	TrustedProxies []string
}

type Server struct {
	mux         *http.ServeMux
	opts        Options
	catalog     *usecase.Catalog
	submits     *usecase.Submissions
	limitWrites Middleware
}

func New(opts Options, c *usecase.Catalog, s *usecase.Submissions) http.Handler {
	if opts.APIBase == "" {
		opts.APIBase = "/guitar/"
	}
	srv := &Server{mux: http.NewServeMux(), opts: opts, catalog: c, submits: s}
	srv.limitWrites = passthrough
	if opts.Limiter != nil {
		srv.limitWrites = RateLimit(opts.Limiter, opts.Limit, ParseProxies(opts.TrustedProxies))
	}

	srv.routes()
	return Chain(srv.mux,
		SecurityHeaders,
		Gzip,
		Recovery,
		Logging,
		RequestID,
	)
}

func (s *Server) routes() {
	base := s.opts.APIBase

	s.mux.Handle("GET "+base+"faq", s.catalog.FAQEntries())
	s.mux.Handle("GET "+base+"product/{id}", s.catalog.ProductByID())
	s.mux.Handle("GET "+base+"{category}", s.catalog.ByCategory())

	s.mux.Handle("POST "+base+"diy", s.limitWrites(s.submits.DIY()))
	s.mux.Handle("POST "+base+"feedback", s.limitWrites(s.submits.Feedback()))

	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	if s.opts.StaticDir != "" {
		s.mux.Handle("GET /", StaticCache(http.FileServer(http.Dir(s.opts.StaticDir))))
	}
}

func passthrough(next http.Handler) http.Handler { return next }
