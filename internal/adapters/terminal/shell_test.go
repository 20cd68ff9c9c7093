package terminal

import (
	"bytes"
	"context"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/bfguitars/internal/domain"
	"github.com/phenrril/bfguitars/internal/storefront"
)

type stubAPI struct{ posted url.Values }

var strat = domain.Product{ID: 1, Category: "electric", Name: "Stratocaster", Color: "Sunburst", Price: decimal.RequireFromString("1199.99"), Description: "Alder body\nMaple neck"}

func (stubAPI) Category(context.Context, string) ([]domain.Product, error) {
	return []domain.Product{strat}, nil
}

func (stubAPI) Product(context.Context, int) ([]domain.Product, error) {
	return []domain.Product{strat}, nil
}

func (stubAPI) FAQ(context.Context) ([]domain.FAQEntry, error) {
	return []domain.FAQEntry{{Q: "Do you ship?", A: "Worldwide."}}, nil
}

func (a *stubAPI) PostDIY(_ context.Context, form url.Values) (string, error) {
	a.posted = form
	return "DIY request successful!", nil
}

func (a *stubAPI) PostFeedback(_ context.Context, form url.Values) (string, error) {
	a.posted = form
	return "Thanks!", nil
}

func newShell(api storefront.API) (*Shell, *bytes.Buffer, *storefront.ManualScheduler) {
	var out bytes.Buffer
	sched := storefront.NewManualScheduler()
	s := storefront.NewSession(api, storefront.WithScheduler(sched))
	return NewShell(s, &out, []string{"electric", "bass"}), &out, sched
}

func TestShellShopping(t *testing.T) {
	sh, out, _ := newShell(&stubAPI{})
	ctx := context.Background()

	_, err := sh.Exec(ctx, "tab electric")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[electric]")
	assert.Contains(t, out.String(), "Sunburst Stratocaster")

	out.Reset()
	_, err = sh.Exec(ctx, "open 1")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "$1199.99")
	assert.Contains(t, out.String(), "* Maple neck")

	out.Reset()
	_, err = sh.Exec(ctx, "add")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Added to Cart!")

	_, err = sh.Exec(ctx, "qty sunburststratocaster 3")
	require.NoError(t, err)
	out.Reset()
	_, err = sh.Exec(ctx, "cart")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Total: $3599.97")

	out.Reset()
	_, err = sh.Exec(ctx, "checkout")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Your order has been placed!")
}

func TestShellForms(t *testing.T) {
	api := &stubAPI{}
	sh, out, sched := newShell(api)
	ctx := context.Background()

	for _, line := range []string{
		"tab faq",
		"set feedback name Ana Lopez",
		"set feedback feedback Love the tone",
		"submit feedback",
	} {
		_, err := sh.Exec(ctx, line)
		require.NoError(t, err, line)
	}
	assert.Equal(t, "Ana Lopez", api.posted.Get("name"))
	assert.Contains(t, out.String(), "Q: Do you ship?")
	assert.Contains(t, out.String(), "Thanks!")

	sched.Advance(storefront.DefaultResetDelay)
	_, err := sh.Exec(ctx, "submit feedback")
	assert.ErrorIs(t, err, storefront.ErrIncomplete)
}

func TestShellCommands(t *testing.T) {
	sh, out, _ := newShell(&stubAPI{})
	ctx := context.Background()

	quit, err := sh.Exec(ctx, "help")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Contains(t, out.String(), "Commands:")

	_, err = sh.Exec(ctx, "open x")
	assert.Error(t, err)
	_, err = sh.Exec(ctx, "dance")
	assert.Error(t, err)

	quit, err = sh.Exec(ctx, "exit")
	require.NoError(t, err)
	assert.True(t, quit)
}
