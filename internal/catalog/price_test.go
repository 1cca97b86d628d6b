package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/storefront/internal/commerce"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{10, "eur", "10.00 EUR"},
		{1234.5, "usd", "1,234.50 USD"},
		{1234567.891, "usd", "1,234,567.89 USD"},
		{0, "eur", "0.00 EUR"},
		{19.99, "", "19.99"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.amount, tt.currency))
	}
}

func TestFormatPrice_Nil(t *testing.T) {
	assert.Equal(t, NoPrice, FormatPrice(nil))
}

func TestListingPrice(t *testing.T) {
	same := &commerce.Product{Variants: []commerce.Variant{{Price: price(10)}, {Price: price(10)}}}
	assert.Equal(t, "10.00 EUR", ListingPrice(same))

	varied := &commerce.Product{Variants: []commerce.Variant{{Price: price(12)}, {Price: price(8)}, {}}}
	assert.Equal(t, "From 8.00 EUR", ListingPrice(varied))

	none := &commerce.Product{Variants: []commerce.Variant{{}}}
	assert.Equal(t, NoPrice, ListingPrice(none))
}

func TestRegionForCountry(t *testing.T) {
	regions := []commerce.Region{
		{ID: "reg_us", Name: "NA", Countries: []commerce.Country{{ISO2: "us", DisplayName: "United States"}, {ISO2: "ca"}}},
		{ID: "reg_eu", Name: "Europe", Countries: []commerce.Country{{ISO2: "de", DisplayName: "Germany"}, {ISO2: "fr"}}},
	}

	assert.Equal(t, "reg_eu", RegionForCountry(regions, "DE").ID)
	assert.Equal(t, "reg_us", RegionForCountry(regions, "ca").ID)
	assert.Equal(t, "reg_us", RegionForCountry(regions, "jp").ID, "falls back to first")
	assert.Nil(t, RegionForCountry(nil, "us"))

	assert.Equal(t, "reg_eu", RegionByID(regions, "reg_eu").ID)
	assert.Nil(t, RegionByID(regions, "reg_xx"))

	assert.Equal(t, "Germany", CountryName(&regions[1], "de"))
	assert.Equal(t, "Europe", CountryName(&regions[1], "fr"))
	assert.Empty(t, CountryName(nil, "fr"))
}
