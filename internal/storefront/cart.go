package storefront

import (
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phenrril/bfguitars/internal/domain"
)

// LineKey identifies a cart line: color and name, lowercased, without spaces.
func LineKey(p domain.Product) string {
	return strings.ToLower(strings.ReplaceAll(p.Color+p.Name, " ", ""))
}

type Line struct {
	Key      string
	Product  domain.Product
	Quantity int
}

func (l Line) Label() string { return l.Product.DisplayName() }

func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart aggregates added products into keyed lines and keeps the summary the
// cart view shows. Notices clear themselves after the reset delay.
type Cart struct {
	mu    sync.Mutex
	sched Scheduler
	delay time.Duration

	lines []*Line
	total decimal.Decimal

	checkout     bool
	emptyNotice  bool
	addedNotice  bool
	placedNotice bool
	summaryShown bool

	addedTimer Timer
	addedSeq   int
}

func NewCart(sched Scheduler, delay time.Duration) *Cart {
	if sched == nil {
		sched = wallClock{}
	}
	return &Cart{sched: sched, delay: delay, emptyNotice: true, summaryShown: true}
}

// Add puts one more of p in the cart and returns the affected line.
func (c *Cart) Add(p domain.Product) Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := LineKey(p)
	line := c.find(key)
	if line != nil {
		line.Quantity++
	} else {
		line = &Line{Key: key, Product: p, Quantity: 1}
		c.lines = append(c.lines, line)
		c.emptyNotice = false
	}
	c.recompute()

	c.addedNotice = true
	if c.addedTimer != nil {
		c.addedTimer.Stop()
	}
	c.addedSeq++
	seq := c.addedSeq
	c.addedTimer = c.sched.AfterFunc(c.delay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// A callback already past Stop belongs to an earlier add.
		if seq != c.addedSeq {
			return
		}
		c.addedNotice = false
		c.addedTimer = nil
	})
	return *line
}

// ChangeQuantity sets the quantity of the keyed line. Values below one are
// stored as one.
func (c *Cart) ChangeQuantity(key string, qty int) (Line, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line := c.find(key)
	if line == nil {
		return Line{}, ErrNoSuchLine
	}
	if qty <= 0 {
		qty = 1
	}
	line.Quantity = qty
	c.recompute()
	return *line, nil
}

func (c *Cart) Remove(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, l := range c.lines {
		if l.Key == key {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.recompute()
			return nil
		}
	}
	return ErrNoSuchLine
}

func (c *Cart) RecomputeTotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recompute()
	return c.total
}

func (c *Cart) recompute() {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	c.total = total
	if total.IsZero() {
		c.checkout = false
		c.emptyNotice = true
	} else {
		c.checkout = true
	}
}

// SubmitOrder shows the placed-order notice and empties the cart. The
// summary comes back, and the total is recomputed, only after the delay.
func (c *Cart) SubmitOrder() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.checkout {
		return ErrCheckoutDisabled
	}
	c.summaryShown = false
	c.placedNotice = true
	c.lines = nil
	c.sched.AfterFunc(c.delay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.summaryShown = true
		c.placedNotice = false
		c.recompute()
	})
	return nil
}

func (c *Cart) find(key string) *Line {
	for _, l := range c.lines {
		if l.Key == key {
			return l
		}
	}
	return nil
}

// CartState is a copy of everything the cart view renders.
type CartState struct {
	Lines           []Line
	Total           decimal.Decimal
	CheckoutEnabled bool
	EmptyNotice     bool
	AddedNotice     bool
	PlacedNotice    bool
	SummaryShown    bool
}

func (s CartState) TotalText() string { return FormatPrice(s.Total) }

func (c *Cart) State() CartState {
	c.mu.Lock()
	defer c.mu.Unlock()
	lines := make([]Line, len(c.lines))
	for i, l := range c.lines {
		lines[i] = *l
	}
	return CartState{
		Lines:           lines,
		Total:           c.total,
		CheckoutEnabled: c.checkout,
		EmptyNotice:     c.emptyNotice,
		AddedNotice:     c.addedNotice,
		PlacedNotice:    c.placedNotice,
		SummaryShown:    c.summaryShown,
	}
}
