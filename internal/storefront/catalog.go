package storefront

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/phenrril/bfguitars/internal/domain"
)

// RowSize is how many tiles a listing row holds.
const RowSize = 3

// Tile is one product in a listing.
type Tile struct {
	ID       int
	Category string
	Label    string
	Img      string
	Price    decimal.Decimal
}

func (t Tile) PriceText() string { return FormatPrice(t.Price) }

// Grid is a rendered category listing.
type Grid struct {
	Category string
	Rows     [][]Tile
}

// BuildGrid lays products out in rows of perRow tiles, in the order given.
func BuildGrid(category string, products []domain.Product, perRow int) *Grid {
	if perRow <= 0 {
		perRow = RowSize
	}
	g := &Grid{Category: category}
	for i, p := range products {
		if i%perRow == 0 {
			g.Rows = append(g.Rows, make([]Tile, 0, perRow))
		}
		last := len(g.Rows) - 1
		g.Rows[last] = append(g.Rows[last], tileFor(p))
	}
	return g
}

func tileFor(p domain.Product) Tile {
	return Tile{ID: p.ID, Category: p.Category, Label: p.DisplayName(), Img: p.Img, Price: p.Price}
}

func (g *Grid) Len() int {
	if g == nil {
		return 0
	}
	n := 0
	for _, row := range g.Rows {
		n += len(row)
	}
	return n
}

// Holds reports whether the grid is non-empty and every tile is tagged with
// category, in which case fetching that category again is pointless.
func (g *Grid) Holds(category string) bool {
	if g.Len() == 0 {
		return false
	}
	for _, row := range g.Rows {
		for _, t := range row {
			if t.Category != category {
				return false
			}
		}
	}
	return true
}

func (g *Grid) Tile(id int) (Tile, bool) {
	if g == nil {
		return Tile{}, false
	}
	for _, row := range g.Rows {
		for _, t := range row {
			if t.ID == id {
				return t, true
			}
		}
	}
	return Tile{}, false
}

// Detail is the single-product panel.
type Detail struct {
	ID      int
	Title   string
	Img     string
	Price   decimal.Decimal
	Bullets []string

	product domain.Product
}

func BuildDetail(p domain.Product) *Detail {
	return &Detail{
		ID:      p.ID,
		Title:   p.DisplayName(),
		Img:     p.Img,
		Price:   p.Price,
		Bullets: strings.Split(p.Description, "\n"),
		product: p,
	}
}

func (d *Detail) PriceText() string { return FormatPrice(d.Price) }

// Product is the snapshot the add-to-cart control was bound to.
func (d *Detail) Product() domain.Product { return d.product }

func FormatPrice(p decimal.Decimal) string { return "$" + p.String() }
