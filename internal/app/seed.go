package app

import (
	"github.com/shopspring/decimal"

	"github.com/phenrril/bfguitars/internal/domain"
)

func seedProducts() []domain.Product {
	p := func(cat, name, color, price, img, desc string) domain.Product {
		return domain.Product{Category: cat, Name: name, Color: color, Price: decimal.RequireFromString(price), Img: img, Description: desc}
	}
	return []domain.Product{
		p("electric", "Stratocaster", "Sunburst", "1199.99", "img/electric/strat.jpg", "Alder body\nMaple neck\nThree single-coil pickups"),
		p("electric", "Les Paul Standard", "Cherry", "2499.00", "img/electric/lespaul.jpg", "Mahogany body\nMaple top\nTwo humbuckers"),
		p("electric", "Telecaster", "Butterscotch", "1099.00", "img/electric/tele.jpg", "Ash body\nMaple fretboard\nBrass saddles"),
		p("acoustic", "Dreadnought", "Natural", "449.50", "img/acoustic/dread.jpg", "Solid spruce top\nRosewood back and sides"),
		p("acoustic", "Parlor", "Tobacco", "389.00", "img/acoustic/parlor.jpg", "Mahogany top\nShort scale"),
		p("acoustic", "Jumbo", "Black", "699.00", "img/acoustic/jumbo.jpg", "Maple back and sides\nOnboard preamp"),
		p("bass", "Jazz Bass", "Olympic White", "1299.00", "img/bass/jazz.jpg", "Alder body\nTwo single-coil pickups"),
		p("bass", "Precision Bass", "Black", "1199.00", "img/bass/precision.jpg", "Split-coil pickup\nMaple neck"),
		p("classical", "Concert Classical", "Natural", "299.00", "img/classical/concert.jpg", "Cedar top\nNylon strings"),
	}
}
