package terminal

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/phenrril/bfguitars/internal/storefront"
)

const (
	msgAdded  = "Added to Cart!"
	msgEmpty  = "Your cart is empty."
	msgPlaced = "Your order has been placed!"
	featured  = "BF Guitars: hand-picked electric, acoustic and bass guitars. Pick a tab to start browsing."
)

// Render projects a snapshot as plain text.
func Render(snap storefront.Snapshot, tabs []string) string {
	var b strings.Builder
	b.WriteString(renderTabs(snap.Tab, tabs))
	b.WriteString("\n\n")

	if snap.Failure != "" {
		b.WriteString(snap.Failure)
		b.WriteString("\n")
		return b.String()
	}

	switch snap.View {
	case storefront.ViewFeatured:
		b.WriteString(featured)
		b.WriteString("\n")
	case storefront.ViewProduct:
		if snap.DetailOpen && snap.Detail != nil {
			b.WriteString(renderDetail(snap.Detail, snap.Cart.AddedNotice))
		} else {
			b.WriteString(renderGrid(snap.Grid))
		}
	case storefront.ViewCart:
		b.WriteString(renderCart(snap.Cart))
	case storefront.ViewDIY:
		b.WriteString(renderForm("Build your own guitar", snap.DIY))
	case storefront.ViewFAQ:
		for _, e := range snap.FAQ {
			fmt.Fprintf(&b, "Q: %s\nA: %s\n\n", e.Q, e.A)
		}
		b.WriteString(renderForm("Feedback", snap.Feedback))
	}
	return b.String()
}

func renderTabs(active string, tabs []string) string {
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t == active {
			parts = append(parts, "["+t+"]")
		} else {
			parts = append(parts, " "+t+" ")
		}
	}
	return strings.Join(parts, " ") + "   (cart)"
}

func renderGrid(g *storefront.Grid) string {
	if g.Len() == 0 {
		return "Loading...\n"
	}
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(g.Category)
	t.AppendHeader(table.Row{"Row", "ID", "Guitar", "Category", "Price"})
	for i, row := range g.Rows {
		for _, tile := range row {
			t.AppendRow(table.Row{i + 1, tile.ID, tile.Label, tile.Category, tile.PriceText()})
		}
		if i < len(g.Rows)-1 {
			t.AppendSeparator()
		}
	}
	return t.Render() + "\n"
}

func renderDetail(d *storefront.Detail, added bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", d.Title, d.PriceText())
	if d.Img != "" {
		fmt.Fprintf(&b, "image: %s\n", d.Img)
	}
	for _, bullet := range d.Bullets {
		fmt.Fprintf(&b, "  * %s\n", bullet)
	}
	b.WriteString("\n[add] Add to Cart\n")
	if added {
		b.WriteString(msgAdded + "\n")
	}
	return b.String()
}

func renderCart(c storefront.CartState) string {
	var b strings.Builder
	if len(c.Lines) > 0 {
		t := table.NewWriter()
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Key", "Item", "Price", "Qty", "Subtotal"})
		for _, l := range c.Lines {
			t.AppendRow(table.Row{l.Key, l.Label(), storefront.FormatPrice(l.Product.Price), l.Quantity, storefront.FormatPrice(l.Subtotal())})
		}
		b.WriteString(t.Render())
		b.WriteString("\n")
	}
	if c.PlacedNotice {
		b.WriteString(msgPlaced + "\n")
	}
	if c.SummaryShown {
		fmt.Fprintf(&b, "Total: %s\n", c.TotalText())
		if c.EmptyNotice && !c.CheckoutEnabled {
			b.WriteString(msgEmpty + "\n")
		}
		if c.CheckoutEnabled {
			b.WriteString("[checkout] Submit order\n")
		} else {
			b.WriteString("[checkout] (disabled)\n")
		}
	}
	return b.String()
}

func renderForm(title string, f storefront.FormState) string {
	var b strings.Builder
	if f.Hidden {
		b.WriteString(f.Message + "\n")
		return b.String()
	}
	b.WriteString(title + "\n")
	for _, field := range storefront.FormFields(f.Kind) {
		if field == "engrave-text" && !f.EngraveTextShown {
			continue
		}
		fmt.Fprintf(&b, "  %-13s %s\n", field+":", f.Values.Get(field))
	}
	return b.String()
}
