package producttabs

import (
	"strconv"
	"strings"

	"github.com/llehouerou/storefront/internal/commerce"
	"github.com/llehouerou/storefront/internal/ui/render"
)

// field is a labelled value of the information section.
type field struct {
	label string
	value string
}

// notice is a titled paragraph of the shipping section.
type notice struct {
	title string
	text  string
}

var shippingNotices = []notice{
	{
		"Fast delivery",
		"Your package will arrive in 3-5 business days at your pick up location or in the comfort of your home.",
	},
	{
		"Simple exchanges",
		"Is the fit not quite right? No worries - we'll exchange your product for a new one.",
	},
	{
		"Easy returns",
		"Just return your product and we'll refund your money. No questions asked - we'll do our best to make sure your return is hassle-free.",
	},
}

// paragraphs splits a description on newlines, dropping blank lines.
func paragraphs(description string) []string {
	var out []string
	for line := range strings.SplitSeq(description, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, render.Sanitize(strings.TrimSpace(line)))
	}
	return out
}

func information(p *commerce.Product) []field {
	fields := []field{
		{"Material", orDash(p.Material)},
		{"Country of origin", orDash(p.OriginCountry)},
		{"Type", "-"},
		{"Weight", "-"},
		{"Dimensions", "-"},
	}
	if p.Type != nil {
		fields[2].value = orDash(p.Type.Value)
	}
	if set(p.Weight) {
		fields[3].value = number(*p.Weight) + " g"
	}
	if set(p.Length) && set(p.Width) && set(p.Height) {
		fields[4].value = number(*p.Length) + "L x " + number(*p.Width) + "W x " + number(*p.Height) + "H"
	}
	if len(p.Tags) > 0 {
		tags := make([]string, 0, len(p.Tags))
		for _, t := range p.Tags {
			tags = append(tags, t.Value)
		}
		fields = append(fields, field{"Tags", strings.Join(tags, ", ")})
	}
	return fields
}

// set reports whether a dimension is present and non-zero.
func set(v *float64) bool {
	return v != nil && *v != 0
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return render.Sanitize(s)
}
