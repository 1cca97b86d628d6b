package commerce

import (
	"math"
	"time"

	"github.com/llehouerou/storefront/internal/gallery"
)

// Product is a catalog product as returned by the Store API.
type Product struct {
	ID            string       `json:"id"`
	Handle        string       `json:"handle"`
	Title         string       `json:"title"`
	Subtitle      string       `json:"subtitle"`
	Description   string       `json:"description"`
	Thumbnail     string       `json:"thumbnail"`
	Images        []Image      `json:"images"`
	Collection    *Collection  `json:"collection"`
	CollectionID  string       `json:"collection_id"`
	Type          *ProductType `json:"type"`
	Tags          []Tag        `json:"tags"`
	Material      string       `json:"material"`
	OriginCountry string       `json:"origin_country"`
	Weight        *float64     `json:"weight"`
	Length        *float64     `json:"length"`
	Width         *float64     `json:"width"`
	Height        *float64     `json:"height"`
	Variants      []Variant    `json:"variants"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Image is a product image.
type Image struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ProductType is the product's type classification.
type ProductType struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Tag is a free-form product tag.
type Tag struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Variant is a purchasable variation of a product.
type Variant struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	SKU   string `json:"sku"`
	Price *Price `json:"calculated_price"`
}

// Price is a variant price calculated for a region.
type Price struct {
	Amount         float64 `json:"calculated_amount"`
	OriginalAmount float64 `json:"original_amount"`
	CurrencyCode   string  `json:"currency_code"`
}

// OnSale reports whether the calculated amount is below the original one.
func (p *Price) OnSale() bool {
	return p != nil && p.OriginalAmount > 0 && p.Amount < p.OriginalAmount
}

// DiscountPercent returns the rounded discount, 0 when not on sale.
func (p *Price) DiscountPercent() int {
	if !p.OnSale() {
		return 0
	}
	return int(math.Round((p.OriginalAmount - p.Amount) / p.OriginalAmount * 100))
}

// Collection groups products.
type Collection struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
}

// Region is a pricing region with its currency and countries.
type Region struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CurrencyCode string    `json:"currency_code"`
	Countries    []Country `json:"countries"`
}

// Country belongs to a region.
type Country struct {
	ISO2        string `json:"iso_2"`
	DisplayName string `json:"display_name"`
}

// Cart is a shopping cart. The client only reads it.
type Cart struct {
	ID           string     `json:"id"`
	RegionID     string     `json:"region_id"`
	CurrencyCode string     `json:"currency_code"`
	Total        float64    `json:"total"`
	Items        []CartItem `json:"items"`
}

// CartItem is a line of a cart.
type CartItem struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	ProductTitle string  `json:"product_title"`
	VariantTitle string  `json:"variant_title"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	Thumbnail    string  `json:"thumbnail"`
}

// ItemCount returns the total quantity across all lines.
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products []Product `json:"products"`
	Count    int       `json:"count"`
	Offset   int       `json:"offset"`
	Limit    int       `json:"limit"`
}

// HasNext reports whether more products follow this page.
func (p ProductPage) HasNext() bool {
	return p.Offset+len(p.Products) < p.Count
}

// ImageSet returns the product images in display order. A product without
// images but with a thumbnail shows the thumbnail alone.
func (p *Product) ImageSet() gallery.ImageSet {
	if len(p.Images) == 0 {
		if p.Thumbnail == "" {
			return nil
		}
		return gallery.ImageSet{{ID: p.ID + "-thumbnail", URL: p.Thumbnail, Alt: p.Title}}
	}
	set := make(gallery.ImageSet, 0, len(p.Images))
	for _, img := range p.Images {
		set = append(set, gallery.Image{ID: img.ID, URL: img.URL, Alt: p.Title})
	}
	return set
}

// CollectionTitle returns the collection title or empty string.
func (p *Product) CollectionTitle() string {
	if p.Collection == nil {
		return ""
	}
	return p.Collection.Title
}
