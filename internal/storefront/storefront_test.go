package storefront

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/bfguitars/internal/domain"
)

func guitar(id int, cat, name, color, price string) domain.Product {
	return domain.Product{ID: id, Category: cat, Name: name, Color: color, Price: decimal.RequireFromString(price), Description: "Solid body\nSix strings"}
}

type fakeAPI struct {
	mu       sync.Mutex
	products []domain.Product
	faq      []domain.FAQEntry
	calls    map[string]int
	posted   url.Values
	err      error
	gate     chan struct{}
	entered  chan struct{}
}

func newFakeAPI(products ...domain.Product) *fakeAPI {
	return &fakeAPI{products: products, calls: map[string]int{}}
}

func (f *fakeAPI) hit(name string) error {
	f.mu.Lock()
	f.calls[name]++
	gate, entered, err := f.gate, f.entered, f.err
	f.mu.Unlock()
	if gate != nil {
		entered <- struct{}{}
		<-gate
	}
	return err
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) Category(_ context.Context, category string) ([]domain.Product, error) {
	if err := f.hit("category"); err != nil {
		return nil, err
	}
	var out []domain.Product
	for _, p := range f.products {
		if category == domain.CategoryAll || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeAPI) Product(_ context.Context, id int) ([]domain.Product, error) {
	if err := f.hit("product"); err != nil {
		return nil, err
	}
	for _, p := range f.products {
		if p.ID == id {
			return []domain.Product{p}, nil
		}
	}
	return nil, errors.New("Request error: Bad Request")
}

func (f *fakeAPI) FAQ(context.Context) ([]domain.FAQEntry, error) {
	if err := f.hit("faq"); err != nil {
		return nil, err
	}
	return f.faq, nil
}

func (f *fakeAPI) PostDIY(_ context.Context, form url.Values) (string, error) {
	if err := f.hit("diy"); err != nil {
		return "", err
	}
	f.mu.Lock()
	f.posted = form
	f.mu.Unlock()
	return "DIY request successful!", nil
}

func (f *fakeAPI) PostFeedback(_ context.Context, form url.Values) (string, error) {
	if err := f.hit("feedback"); err != nil {
		return "", err
	}
	f.mu.Lock()
	f.posted = form
	f.mu.Unlock()
	return "Thank you!", nil
}

func TestCartTotals(t *testing.T) {
	sched := NewManualScheduler()
	c := NewCart(sched, DefaultResetDelay)
	a := guitar(1, "electric", "Strat", "Red", "10")
	b := guitar(2, "bass", "Jazz", "Black", "5")

	c.Add(a)
	line := c.Add(a)
	c.Add(b)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, "25", c.State().Total.String())

	require.NoError(t, c.Remove(LineKey(a)))
	st := c.State()
	assert.Equal(t, "5", st.Total.String())
	assert.True(t, st.CheckoutEnabled)
	assert.Len(t, st.Lines, 1)

	require.NoError(t, c.Remove(LineKey(b)))
	st = c.State()
	assert.True(t, st.Total.IsZero())
	assert.False(t, st.CheckoutEnabled)
	assert.True(t, st.EmptyNotice)
}

func TestLineKey(t *testing.T) {
	assert.Equal(t, "cherryredlespaul", LineKey(guitar(1, "electric", "Les Paul", "Cherry Red", "1")))
}

func TestChangeQuantityClampsToOne(t *testing.T) {
	c := NewCart(NewManualScheduler(), DefaultResetDelay)
	p := guitar(1, "electric", "Strat", "Red", "12.50")
	c.Add(p)

	for _, qty := range []int{0, -3} {
		line, err := c.ChangeQuantity(LineKey(p), qty)
		require.NoError(t, err)
		assert.Equal(t, 1, line.Quantity)
		assert.Equal(t, "12.5", c.State().Total.String())
	}

	_, err := c.ChangeQuantity("nope", 2)
	assert.ErrorIs(t, err, ErrNoSuchLine)
}

func TestAddedNoticeClears(t *testing.T) {
	sched := NewManualScheduler()
	c := NewCart(sched, time.Second)
	c.Add(guitar(1, "electric", "Strat", "Red", "10"))
	assert.True(t, c.State().AddedNotice)

	sched.Advance(500 * time.Millisecond)
	c.Add(guitar(1, "electric", "Strat", "Red", "10"))
	sched.Advance(700 * time.Millisecond)
	assert.True(t, c.State().AddedNotice, "second add restarts the notice")

	sched.Advance(300 * time.Millisecond)
	assert.False(t, c.State().AddedNotice)
}

// lateTimer never reports a successful Stop, like a wall-clock timer whose
// callback is already running.
type lateTimer struct{}

func (lateTimer) Stop() bool { return false }

type lateScheduler struct{ fns []func() }

func (l *lateScheduler) AfterFunc(_ time.Duration, f func()) Timer {
	l.fns = append(l.fns, f)
	return lateTimer{}
}

func TestAddedNoticeIgnoresEarlierCallback(t *testing.T) {
	sched := &lateScheduler{}
	c := NewCart(sched, time.Second)
	p := guitar(1, "electric", "Strat", "Red", "10")
	c.Add(p)
	c.Add(p)
	require.Len(t, sched.fns, 2)

	sched.fns[0]()
	assert.True(t, c.State().AddedNotice)
	sched.fns[1]()
	assert.False(t, c.State().AddedNotice)
}

func TestSubmitOrderResetsAfterDelay(t *testing.T) {
	sched := NewManualScheduler()
	c := NewCart(sched, DefaultResetDelay)
	c.Add(guitar(1, "electric", "Strat", "Red", "10"))

	require.NoError(t, c.SubmitOrder())
	st := c.State()
	assert.Empty(t, st.Lines)
	assert.True(t, st.PlacedNotice)
	assert.False(t, st.SummaryShown)
	assert.True(t, st.CheckoutEnabled, "summary is not recomputed before the delay")

	sched.Advance(DefaultResetDelay)
	st = c.State()
	assert.True(t, st.Total.IsZero())
	assert.False(t, st.CheckoutEnabled)
	assert.True(t, st.EmptyNotice)
	assert.True(t, st.SummaryShown)
	assert.False(t, st.PlacedNotice)

	assert.ErrorIs(t, c.SubmitOrder(), ErrCheckoutDisabled)
}

func TestBuildGrid(t *testing.T) {
	var products []domain.Product
	for i := 1; i <= 7; i++ {
		products = append(products, guitar(i, "acoustic", "Parlor", "Natural", "100"))
	}
	g := BuildGrid("acoustic", products, RowSize)
	require.Len(t, g.Rows, 3)
	assert.Len(t, g.Rows[0], 3)
	assert.Len(t, g.Rows[2], 1)
	assert.Equal(t, 7, g.Rows[2][0].ID)
	assert.Equal(t, "Natural Parlor", g.Rows[0][0].Label)
	assert.Equal(t, "$100", g.Rows[0][0].PriceText())
	assert.True(t, g.Holds("acoustic"))
	assert.False(t, g.Holds("all"))
	assert.False(t, BuildGrid("bass", nil, RowSize).Holds("bass"))
}

func TestBuildDetail(t *testing.T) {
	d := BuildDetail(guitar(3, "electric", "Telecaster", "Butterscotch", "1099.00"))
	assert.Equal(t, "Butterscotch Telecaster", d.Title)
	assert.Equal(t, []string{"Solid body", "Six strings"}, d.Bullets)
	assert.Equal(t, "$1099", d.PriceText())
}

func TestViewsEnter(t *testing.T) {
	v := NewViews()
	assert.Equal(t, ViewFeatured, v.Active())
	v.Enter(ViewProduct)
	v.showGrid(BuildGrid("bass", []domain.Product{guitar(1, "bass", "Jazz", "Black", "5")}, RowSize))
	v.openDetail(BuildDetail(guitar(1, "bass", "Jazz", "Black", "5")))

	v.Enter(ViewCart)
	assert.Equal(t, ViewCart, v.Active())
	assert.Nil(t, v.Grid(), "leaving the listing discards it")
	assert.False(t, v.DetailOpen())
	assert.NotNil(t, v.Detail(), "the detail panel keeps its content while hidden")
}

func TestSessionBrowseAndBuy(t *testing.T) {
	api := newFakeAPI(
		guitar(1, "electric", "Strat", "Red", "10"),
		guitar(2, "electric", "Tele", "Blue", "20"),
		guitar(3, "bass", "Jazz", "Black", "5"),
	)
	sched := NewManualScheduler()
	s := NewSession(api, WithScheduler(sched))
	ctx := context.Background()

	require.NoError(t, s.SelectTab(ctx, "electric"))
	snap := s.Snapshot()
	assert.Equal(t, ViewProduct, snap.View)
	assert.Equal(t, "electric", snap.Tab)
	assert.Equal(t, 2, snap.Grid.Len())

	require.NoError(t, s.OpenProduct(ctx, 2))
	require.NoError(t, s.OpenProduct(ctx, 2))
	assert.Equal(t, 1, api.count("product"))

	require.NoError(t, s.SelectTab(ctx, "electric"))
	assert.Equal(t, 1, api.count("category"), "same listing is not fetched again")
	assert.False(t, s.Snapshot().DetailOpen)

	require.NoError(t, s.OpenProduct(ctx, 2))
	_, err := s.AddToCart()
	require.NoError(t, err)
	_, err = s.AddToCart()
	require.NoError(t, err)

	require.NoError(t, s.OpenCart())
	snap = s.Snapshot()
	assert.Equal(t, ViewCart, snap.View)
	assert.Equal(t, "electric", snap.Tab, "the cart icon is not a tab")
	assert.Nil(t, snap.Grid)
	require.Len(t, snap.Cart.Lines, 1)
	assert.Equal(t, "$40", snap.Cart.TotalText())

	_, err = s.AddToCart()
	assert.ErrorIs(t, err, ErrNoDetail)
}

func TestOpenProductNeedsListing(t *testing.T) {
	api := newFakeAPI(
		guitar(1, "electric", "Strat", "Red", "10"),
		guitar(2, "bass", "Jazz", "Black", "5"),
	)
	s := NewSession(api, WithScheduler(NewManualScheduler()))
	ctx := context.Background()

	require.NoError(t, s.OpenCart())
	assert.ErrorIs(t, s.OpenProduct(ctx, 2), ErrNoListing)
	snap := s.Snapshot()
	assert.Equal(t, ViewCart, snap.View)
	assert.False(t, snap.DetailOpen)

	require.NoError(t, s.SelectTab(ctx, "electric"))
	assert.ErrorIs(t, s.OpenProduct(ctx, 2), ErrNoSuchTile)
	assert.Zero(t, api.count("product"))
	assert.Empty(t, s.Snapshot().Failure)

	require.NoError(t, s.OpenProduct(ctx, 1))
	assert.True(t, s.Snapshot().DetailOpen)
}

func TestSessionDropsStaleListing(t *testing.T) {
	api := newFakeAPI(guitar(1, "electric", "Strat", "Red", "10"))
	api.gate = make(chan struct{})
	api.entered = make(chan struct{})
	s := NewSession(api, WithScheduler(NewManualScheduler()))

	done := make(chan error, 1)
	go func() { done <- s.ShowCategory(context.Background(), "electric") }()
	<-api.entered

	require.NoError(t, s.OpenDIY())
	close(api.gate)
	require.NoError(t, <-done)

	snap := s.Snapshot()
	assert.Equal(t, ViewDIY, snap.View)
	assert.Nil(t, snap.Grid)
}

func TestSessionFailureIsTerminal(t *testing.T) {
	api := newFakeAPI()
	api.err = errors.New("Request error: Internal Server Error")
	s := NewSession(api, WithScheduler(NewManualScheduler()))
	ctx := context.Background()

	assert.Error(t, s.ShowCategory(ctx, "all"))
	assert.Equal(t, "Request error: Internal Server Error. Please refresh the page!", s.Snapshot().Failure)
	assert.ErrorIs(t, s.OpenCart(), ErrHalted)
	assert.ErrorIs(t, s.SubmitDIY(ctx), ErrHalted)

	s.Reload()
	assert.Empty(t, s.Snapshot().Failure)
	assert.NoError(t, s.OpenCart())
}

func TestFAQFetchedOnce(t *testing.T) {
	api := newFakeAPI()
	api.faq = []domain.FAQEntry{{Q: "Ship abroad?", A: "Yes."}}
	s := NewSession(api, WithScheduler(NewManualScheduler()))
	ctx := context.Background()

	require.NoError(t, s.OpenFAQ(ctx))
	require.NoError(t, s.Home())
	require.NoError(t, s.SelectTab(ctx, TabFAQ))
	assert.Equal(t, 1, api.count("faq"))
	assert.Equal(t, api.faq, s.Snapshot().FAQ)
}

func TestDIYFormFlow(t *testing.T) {
	api := newFakeAPI()
	sched := NewManualScheduler()
	s := NewSession(api, WithScheduler(sched))
	ctx := context.Background()
	f := s.Form(FormDIY)

	for field, v := range map[string]string{"type": "electric", "neck": "maple", "body": "alder", "color": "red"} {
		require.NoError(t, f.Set(field, v))
	}
	require.NoError(t, f.Set("engrave-text", "for Sam"))
	require.NoError(t, f.Set("engrave", "1"))
	assert.True(t, f.State().EngraveTextShown)

	require.NoError(t, f.Set("engrave", "0"))
	assert.Empty(t, f.Missing())
	assert.ErrorIs(t, f.Set("price", "0"), ErrUnknownField)

	require.NoError(t, s.SubmitDIY(ctx))
	assert.NotContains(t, api.posted, "engrave-text")
	st := s.Snapshot().DIY
	assert.True(t, st.Hidden)
	assert.Equal(t, "DIY request successful!", st.Message)

	sched.Advance(DefaultResetDelay)
	st = s.Snapshot().DIY
	assert.False(t, st.Hidden)
	assert.Empty(t, st.Message)
	assert.Empty(t, st.Values)
}

func TestFormRequiresEngraveText(t *testing.T) {
	api := newFakeAPI()
	s := NewSession(api, WithScheduler(NewManualScheduler()))
	f := s.Form(FormDIY)
	for field, v := range map[string]string{"type": "bass", "neck": "maple", "body": "ash", "color": "black", "engrave": "1"} {
		require.NoError(t, f.Set(field, v))
	}
	assert.Equal(t, []string{"engrave-text"}, f.Missing())
	assert.ErrorIs(t, s.SubmitDIY(context.Background()), ErrIncomplete)
	assert.Equal(t, 0, api.count("diy"))
}
