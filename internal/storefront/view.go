package storefront

// View is one of the mutually exclusive top-level panels.
type View int

const (
	ViewFeatured View = iota
	ViewProduct
	ViewCart
	ViewDIY
	ViewFAQ
)

func (v View) String() string {
	switch v {
	case ViewFeatured:
		return "featured"
	case ViewProduct:
		return "product"
	case ViewCart:
		return "cart"
	case ViewDIY:
		return "diy"
	case ViewFAQ:
		return "faq"
	}
	return "unknown"
}

// Fixed tabs. Every other tab is a product category.
const (
	TabFeatured = "featured"
	TabDIY      = "diy"
	TabFAQ      = "faq"
)

// Views is the view state machine. It also owns what the product and detail
// panels currently hold, since entering a view clears them.
type Views struct {
	active     View
	tab        string
	detailOpen bool
	grid       *Grid
	detail     *Detail
	gen        uint64
}

func NewViews() *Views {
	return &Views{active: ViewFeatured, tab: TabFeatured}
}

func (v *Views) Active() View { return v.active }

func (v *Views) Tab() string { return v.tab }

// Generation changes on every navigation. A fetch started under one
// generation must not be applied under another.
func (v *Views) Generation() uint64 { return v.gen }

// Begin records a navigation without switching views yet.
func (v *Views) Begin() uint64 {
	v.gen++
	return v.gen
}

func (v *Views) Current(gen uint64) bool { return v.gen == gen }

// SelectTab moves the active-tab marker. The cart icon is not a tab and
// leaves the marker where it was.
func (v *Views) SelectTab(tab string) {
	if tab != "" {
		v.tab = tab
	}
}

// Enter makes next the only active view. Leaving the product view discards
// its listing, and the detail overlay is always hidden.
func (v *Views) Enter(next View) {
	if v.active == ViewProduct {
		v.grid = nil
	}
	v.active = next
	v.detailOpen = false
	v.gen++
}

func (v *Views) Grid() *Grid { return v.grid }

func (v *Views) showGrid(g *Grid) {
	v.grid = g
	v.detailOpen = false
}

// Detail returns the last product shown in the overlay, open or not.
func (v *Views) Detail() *Detail { return v.detail }

func (v *Views) DetailOpen() bool { return v.detailOpen }

func (v *Views) openDetail(d *Detail) {
	v.detail = d
	v.detailOpen = true
}
