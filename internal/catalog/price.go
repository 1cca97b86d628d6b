package catalog

import (
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/storefront/internal/commerce"
)

// NoPrice is shown for variants without a price in the current region.
const NoPrice = "—"

// FormatAmount formats an amount with two decimals and thousands
// separators, followed by the upper-case currency code.
func FormatAmount(amount float64, currency string) string {
	s := humanize.CommafWithDigits(amount, 2)
	if i := strings.IndexByte(s, '.'); i < 0 {
		s += ".00"
	} else if len(s)-i == 2 {
		s += "0"
	}
	if currency == "" {
		return s
	}
	return s + " " + strings.ToUpper(currency)
}

// FormatPrice formats the calculated amount of p.
func FormatPrice(p *commerce.Price) string {
	if p == nil {
		return NoPrice
	}
	return FormatAmount(p.Amount, p.CurrencyCode)
}

// CheapestPrice returns the lowest priced variant's price, or nil.
func CheapestPrice(p *commerce.Product) *commerce.Price {
	var cheapest *commerce.Price
	for i := range p.Variants {
		vp := p.Variants[i].Price
		if vp == nil {
			continue
		}
		if cheapest == nil || vp.Amount < cheapest.Amount {
			cheapest = vp
		}
	}
	return cheapest
}

// ListingPrice is the price shown in product listings: "From" is prefixed
// when variants are priced differently.
func ListingPrice(p *commerce.Product) string {
	cheapest := CheapestPrice(p)
	if cheapest == nil {
		return NoPrice
	}
	for i := range p.Variants {
		if vp := p.Variants[i].Price; vp != nil && vp.Amount != cheapest.Amount {
			return "From " + FormatPrice(cheapest)
		}
	}
	return FormatPrice(cheapest)
}

// SortProducts applies a price order in place. Other orders are left as
// returned by the backend. Products without a price sort last.
func SortProducts(products []commerce.Product, order string) {
	var less func(a, b float64) bool
	switch order {
	case commerce.OrderPriceAsc:
		less = func(a, b float64) bool { return a < b }
	case commerce.OrderPriceDesc:
		less = func(a, b float64) bool { return a > b }
	default:
		return
	}
	sort.SliceStable(products, func(i, j int) bool {
		pi, pj := CheapestPrice(&products[i]), CheapestPrice(&products[j])
		switch {
		case pi == nil:
			return false
		case pj == nil:
			return true
		}
		return less(pi.Amount, pj.Amount)
	})
}
