package pillbox

import (
	"net/url"

	"github.com/matzehuels/pillbox/pkg/errors"
)

// Query parameter names understood by the service.
const (
	paramKey        = "key"
	paramColor      = "color"
	paramShape      = "shape"
	paramIngredient = "ingredient"
	paramScore      = "score"
	paramSize       = "size"
	paramProdCode   = "prodcode"
	paramHasImage   = "has_image"
)

// SearchParams describes one search. Empty fields are not sent.
//
// Color and Shape go through the code tables; every other field is passed to
// the service unmodified. The access key is added by the [Client] and is
// never part of SearchParams.
type SearchParams struct {
	Color       Classification // SPL color, by name or code
	Shape       Classification // SPL shape, by name or code
	Ingredient  string         // active ingredient; the service accepts one per call
	Score       string         // SPL score value
	Size        string         // size in whole millimetres; the service searches +/- 2 mm
	ProductCode string         // FDA 9-digit product code in dashed form
	HasImage    string         // "1" for pills with an image, "0" for pills without

	// Extra carries additional service parameters verbatim.
	// It cannot override the access key or the named fields above.
	Extra map[string]string
}

// Values encodes p as query values, resolving Color and Shape to SPL codes.
// The access key is not included.
func (p SearchParams) Values() (url.Values, error) {
	v := url.Values{}

	for k, val := range p.Extra {
		if k == paramKey || val == "" {
			continue
		}
		if err := errors.ValidateQueryValue(k, val); err != nil {
			return nil, err
		}
		v.Set(k, val)
	}

	color, err := Colors.Resolve(p.Color)
	if err != nil {
		return nil, err
	}
	shape, err := Shapes.Resolve(p.Shape)
	if err != nil {
		return nil, err
	}

	fields := []struct {
		name  string
		value string
	}{
		{paramColor, color},
		{paramShape, shape},
		{paramIngredient, p.Ingredient},
		{paramScore, p.Score},
		{paramSize, p.Size},
		{paramProdCode, p.ProductCode},
		{paramHasImage, p.HasImage},
	}
	for _, f := range fields {
		if err := errors.ValidateQueryValue(f.name, f.value); err != nil {
			return nil, err
		}
		if f.value == "" {
			v.Del(f.name)
			continue
		}
		v.Set(f.name, f.value)
	}
	return v, nil
}
