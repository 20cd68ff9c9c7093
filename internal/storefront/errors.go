package storefront

import "github.com/phenrril/bfguitars/internal/domain"

const (
	ErrNoSuchLine       domain.Error = "no such cart line"
	ErrCheckoutDisabled domain.Error = "checkout is disabled while the cart is empty"
	ErrNoDetail         domain.Error = "no product is open"
	ErrNoListing        domain.Error = "no product listing is shown"
	ErrNoSuchTile       domain.Error = "product is not in the listing"
	ErrIncomplete       domain.Error = "please fill out every required field"
	ErrHalted           domain.Error = "the page failed, reload to continue"
	ErrUnknownField     domain.Error = "unknown form field"
)
