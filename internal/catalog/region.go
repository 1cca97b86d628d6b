package catalog

import (
	"strings"

	"github.com/llehouerou/storefront/internal/commerce"
)

// RegionForCountry returns the region that contains the ISO-2 country code,
// or the first region when none does. It returns nil for no regions.
func RegionForCountry(regions []commerce.Region, code string) *commerce.Region {
	if len(regions) == 0 {
		return nil
	}
	code = strings.ToLower(strings.TrimSpace(code))
	for i := range regions {
		for _, c := range regions[i].Countries {
			if strings.ToLower(c.ISO2) == code {
				return &regions[i]
			}
		}
	}
	return &regions[0]
}

// RegionByID returns the region with id, or nil.
func RegionByID(regions []commerce.Region, id string) *commerce.Region {
	for i := range regions {
		if regions[i].ID == id {
			return &regions[i]
		}
	}
	return nil
}

// CountryName returns the display name of code within r, falling back to
// the region name.
func CountryName(r *commerce.Region, code string) string {
	if r == nil {
		return ""
	}
	for _, c := range r.Countries {
		if strings.EqualFold(c.ISO2, code) && c.DisplayName != "" {
			return c.DisplayName
		}
	}
	return r.Name
}
