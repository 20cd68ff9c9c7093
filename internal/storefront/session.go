// Package storefront is the shop client: which view is showing, what the
// listing and detail panels hold, the cart, and the two submission forms.
// Rendering is left to the caller, which projects a Snapshot after every
// action.
package storefront

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/bfguitars/internal/domain"
)

// API is the storefront backend as the client sees it.
type API interface {
	Category(ctx context.Context, category string) ([]domain.Product, error)
	Product(ctx context.Context, id int) ([]domain.Product, error)
	FAQ(ctx context.Context) ([]domain.FAQEntry, error)
	PostDIY(ctx context.Context, form url.Values) (string, error)
	PostFeedback(ctx context.Context, form url.Values) (string, error)
}

const failureSuffix = ". Please refresh the page!"

type Option func(*Session)

func WithScheduler(s Scheduler) Option { return func(ss *Session) { ss.sched = s } }

func WithResetDelay(d time.Duration) Option { return func(ss *Session) { ss.delay = d } }

// Session is one visitor's page. Its methods are safe to call from several
// goroutines; a fetch result is applied only if no navigation happened
// while it was in flight.
type Session struct {
	api   API
	sched Scheduler
	delay time.Duration

	mu        sync.Mutex
	views     *Views
	cart      *Cart
	diy       *Form
	feedback  *Form
	faq       []domain.FAQEntry
	faqLoaded bool
	failure   string
}

func NewSession(api API, opts ...Option) *Session {
	s := &Session{api: api, sched: wallClock{}, delay: DefaultResetDelay}
	for _, o := range opts {
		o(s)
	}
	s.init()
	return s
}

func (s *Session) init() {
	s.views = NewViews()
	s.cart = NewCart(s.sched, s.delay)
	s.diy = NewForm(FormDIY, s.sched, s.delay)
	s.feedback = NewForm(FormFeedback, s.sched, s.delay)
	s.faq = nil
	s.faqLoaded = false
	s.failure = ""
}

// Reload starts over with an empty page, the only way out of a failure.
func (s *Session) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
}

func (s *Session) Cart() *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

func (s *Session) Form(kind FormKind) *Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	if kind == FormFeedback {
		return s.feedback
	}
	return s.diy
}

// Home shows the featured view, as clicking the title does.
func (s *Session) Home() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != "" {
		return ErrHalted
	}
	s.views.Enter(ViewFeatured)
	s.views.SelectTab(TabFeatured)
	return nil
}

func (s *Session) OpenCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != "" {
		return ErrHalted
	}
	s.views.Enter(ViewCart)
	return nil
}

func (s *Session) OpenDIY() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != "" {
		return ErrHalted
	}
	s.views.SelectTab(TabDIY)
	s.views.Enter(ViewDIY)
	return nil
}

// SelectTab dispatches a click on any nav tab.
func (s *Session) SelectTab(ctx context.Context, tab string) error {
	switch tab {
	case TabFeatured:
		return s.Home()
	case TabDIY:
		return s.OpenDIY()
	case TabFAQ:
		return s.OpenFAQ(ctx)
	}
	return s.ShowCategory(ctx, tab)
}

// ShowCategory lists a category. When the listing already shows exactly
// that category it is brought back without a fetch.
func (s *Session) ShowCategory(ctx context.Context, category string) error {
	s.mu.Lock()
	if s.failure != "" {
		s.mu.Unlock()
		return ErrHalted
	}
	s.views.SelectTab(category)
	if s.views.Active() == ViewProduct && s.views.Grid().Holds(category) {
		s.views.Begin()
		s.views.showGrid(s.views.Grid())
		s.mu.Unlock()
		return nil
	}
	gen := s.views.Begin()
	s.mu.Unlock()

	products, err := s.api.Category(ctx, category)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		return s.fail(err)
	}
	if !s.views.Current(gen) {
		log.Ctx(ctx).Debug().Str("category", category).Msg("dropping stale listing")
		return nil
	}
	s.views.Enter(ViewProduct)
	s.views.showGrid(BuildGrid(category, products, RowSize))
	return nil
}

// OpenProduct shows the detail overlay for id, fetching it unless the
// overlay already holds that product. id must be a tile of the listing on
// screen.
func (s *Session) OpenProduct(ctx context.Context, id int) error {
	s.mu.Lock()
	if s.failure != "" {
		s.mu.Unlock()
		return ErrHalted
	}
	if s.views.Active() != ViewProduct {
		s.mu.Unlock()
		return ErrNoListing
	}
	if _, ok := s.views.Grid().Tile(id); !ok {
		s.mu.Unlock()
		return ErrNoSuchTile
	}
	if d := s.views.Detail(); d != nil && d.ID == id {
		s.views.Begin()
		s.views.openDetail(d)
		s.mu.Unlock()
		return nil
	}
	gen := s.views.Begin()
	s.mu.Unlock()

	products, err := s.api.Product(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		return s.fail(err)
	}
	if !s.views.Current(gen) {
		log.Ctx(ctx).Debug().Int("product_id", id).Msg("dropping stale product")
		return nil
	}
	if len(products) == 0 {
		return s.fail(domain.ErrNotFound)
	}
	s.views.openDetail(BuildDetail(products[0]))
	return nil
}

// AddToCart adds the product the open detail panel was built from.
func (s *Session) AddToCart() (Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != "" {
		return Line{}, ErrHalted
	}
	d := s.views.Detail()
	if d == nil || !s.views.DetailOpen() {
		return Line{}, ErrNoDetail
	}
	return s.cart.Add(d.Product()), nil
}

func (s *Session) ChangeQuantity(key string, qty int) (Line, error) {
	c, err := s.liveCart()
	if err != nil {
		return Line{}, err
	}
	return c.ChangeQuantity(key, qty)
}

func (s *Session) RemoveLine(key string) error {
	c, err := s.liveCart()
	if err != nil {
		return err
	}
	return c.Remove(key)
}

func (s *Session) SubmitOrder() error {
	c, err := s.liveCart()
	if err != nil {
		return err
	}
	return c.SubmitOrder()
}

func (s *Session) liveCart() (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != "" {
		return nil, ErrHalted
	}
	return s.cart, nil
}

// OpenFAQ shows the FAQ view and fetches the entries the first time.
func (s *Session) OpenFAQ(ctx context.Context) error {
	s.mu.Lock()
	if s.failure != "" {
		s.mu.Unlock()
		return ErrHalted
	}
	s.views.SelectTab(TabFAQ)
	s.views.Enter(ViewFAQ)
	if s.faqLoaded {
		s.mu.Unlock()
		return nil
	}
	gen := s.views.Generation()
	s.mu.Unlock()

	entries, err := s.api.FAQ(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		return s.fail(err)
	}
	if !s.views.Current(gen) || s.faqLoaded {
		return nil
	}
	s.faq = entries
	s.faqLoaded = true
	return nil
}

func (s *Session) SubmitDIY(ctx context.Context) error {
	return s.submit(ctx, s.Form(FormDIY), s.api.PostDIY)
}

func (s *Session) SubmitFeedback(ctx context.Context) error {
	return s.submit(ctx, s.Form(FormFeedback), s.api.PostFeedback)
}

func (s *Session) submit(ctx context.Context, f *Form, post func(context.Context, url.Values) (string, error)) error {
	if s.halted() {
		return ErrHalted
	}
	if len(f.Missing()) > 0 {
		return ErrIncomplete
	}
	msg, err := post(ctx, f.Values())
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.fail(err)
	}
	f.succeeded(msg)
	return nil
}

func (s *Session) halted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure != ""
}

// fail puts the page in its terminal error state. Callers hold s.mu.
func (s *Session) fail(err error) error {
	if s.failure == "" {
		s.failure = err.Error() + failureSuffix
	}
	return err
}

// Snapshot is everything a renderer needs, copied out of the session. Grid
// and Detail are shared and must be treated as read-only.
type Snapshot struct {
	View       View
	Tab        string
	Grid       *Grid
	Detail     *Detail
	DetailOpen bool
	Cart       CartState
	FAQ        []domain.FAQEntry
	DIY        FormState
	Feedback   FormState
	Failure    string
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		View:       s.views.Active(),
		Tab:        s.views.Tab(),
		Grid:       s.views.Grid(),
		DetailOpen: s.views.DetailOpen(),
		Cart:       s.cart.State(),
		FAQ:        append([]domain.FAQEntry(nil), s.faq...),
		DIY:        s.diy.State(),
		Feedback:   s.feedback.State(),
		Failure:    s.failure,
	}
	if snap.DetailOpen {
		snap.Detail = s.views.Detail()
	}
	return snap
}
