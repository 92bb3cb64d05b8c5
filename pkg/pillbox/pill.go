package pillbox

import (
	"encoding/xml"
	stderrors "errors"
	"maps"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/matzehuels/pillbox/pkg/errors"
)

// XML tags of the fields the service returns for each pill.
const (
	TagColor       = "SPLCOLOR"
	TagShape       = "SPLSHAPE"
	TagScore       = "SPLSCORE"
	TagSize        = "SPLSIZE"
	TagImprint     = "SPLIMPRINT"
	TagSPLID       = "SPL_ID"
	TagSetID       = "SETID"
	TagProductCode = "PRODUCT_CODE"
	TagRxCUI       = "RXCUI"
	TagRxTTY       = "RXTTY"
	TagRxString    = "RXSTRING"
	TagIngredients = "INGREDIENTS"
	TagHasImage    = "HAS_IMAGE"
	TagImageID     = "image_id"
)

// ingredientSep separates active ingredients in the INGREDIENTS field.
const ingredientSep = "; "

// Pill is one search result.
//
// Known fields are held as the raw text the service sent; typed accessors
// such as [Pill.Color] and [Pill.Size] decode them and report an error when
// the text does not fit. Unknown child elements are kept in Extra.
//
// A Pill is never modified after construction and is safe for concurrent reads.
type Pill struct {
	colorCode   string
	shapeCode   string
	score       string
	size        string
	imprint     string
	splID       string
	setID       string
	productCode string
	rxcui       string
	rxtty       string
	rxstring    string
	ingredients string
	hasImage    string
	imageID     string

	extra map[string]string
}

// NewPill builds a Pill from tag/text pairs as found under one <pill> element.
func NewPill(fields map[string]string) *Pill {
	p := &Pill{}
	for tag, text := range fields {
		p.set(tag, text)
	}
	return p
}

func (p *Pill) set(tag, text string) {
	switch tag {
	case TagColor:
		p.colorCode = text
	case TagShape:
		p.shapeCode = text
	case TagScore:
		p.score = text
	case TagSize:
		p.size = text
	case TagImprint:
		p.imprint = text
	case TagSPLID:
		p.splID = text
	case TagSetID:
		p.setID = text
	case TagProductCode:
		p.productCode = text
	case TagRxCUI:
		p.rxcui = text
	case TagRxTTY:
		p.rxtty = text
	case TagRxString:
		p.rxstring = text
	case TagIngredients:
		p.ingredients = text
	case TagHasImage:
		p.hasImage = text
	case TagImageID:
		p.imageID = text
	default:
		if p.extra == nil {
			p.extra = make(map[string]string)
		}
		p.extra[tag] = text
	}
}

// UnmarshalXML decodes a <pill> element whose children are flat tag/text pairs.
func (p *Pill) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	*p = Pill{}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var text string
			if err := d.DecodeElement(&text, &t); err != nil {
				return err
			}
			p.set(t.Name.Local, text)
		case xml.EndElement:
			return nil
		}
	}
}

// Color returns the color name, e.g. "BLUE".
func (p *Pill) Color() (string, error) {
	return Colors.Name(p.colorCode)
}

// Shape returns the shape name, e.g. "ROUND".
func (p *Pill) Shape() (string, error) {
	return Shapes.Name(p.shapeCode)
}

// ColorCode returns the raw SPL color code.
func (p *Pill) ColorCode() string { return p.colorCode }

// ShapeCode returns the raw SPL shape code.
func (p *Pill) ShapeCode() string { return p.shapeCode }

// Score returns the SPL score. Surrounding whitespace is ignored.
func (p *Pill) Score() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(p.score))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeNumericField, err, "%s %q is not an integer", TagScore, p.score)
	}
	return n, nil
}

// Size returns the size in millimetres as an exact decimal. Surrounding
// whitespace is ignored.
func (p *Pill) Size() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(p.size))
	if err != nil {
		return decimal.Decimal{}, errors.Wrap(errors.ErrCodeNumericField, err, "%s %q is not a decimal", TagSize, p.size)
	}
	return d, nil
}

// Ingredients splits the ingredient list on "; ".
// Empty parts are kept, so a pill without ingredients yields [""].
func (p *Pill) Ingredients() []string {
	return strings.Split(p.ingredients, ingredientSep)
}

// HasImage reports whether the service has a photograph of the pill.
func (p *Pill) HasImage() bool {
	return p.hasImage != "" && p.hasImage != "0"
}

// Image returns the download URL of the pill photograph at the named size,
// or "" when the pill has no image id. Sizes other than super_small, small,
// medium and large yield an [errors.ErrCodeUnrecognizedImageSize] error.
func (p *Pill) Image(size string) (string, error) {
	s, err := ParseImageSize(size)
	if err != nil {
		return "", err
	}
	return ImageURL(p.imageID, s), nil
}

// Description returns the RxNorm drug description (RXSTRING).
func (p *Pill) Description() string { return p.rxstring }

// Imprint returns the text or symbols printed on the pill.
func (p *Pill) Imprint() string { return p.imprint }

// ProductCode returns the FDA product code in dashed format.
func (p *Pill) ProductCode() string { return p.productCode }

// SetID returns the SPL set id shared by all versions of a label.
func (p *Pill) SetID() string { return p.setID }

// SPLID returns the id of the SPL document version.
func (p *Pill) SPLID() string { return p.splID }

// RxCUI returns the RxNorm concept id.
func (p *Pill) RxCUI() string { return p.rxcui }

// RxTTY returns the RxNorm term type, e.g. "SCD".
func (p *Pill) RxTTY() string { return p.rxtty }

// ImageID returns the id used to build image URLs, or "" when there is none.
func (p *Pill) ImageID() string { return p.imageID }

// Field returns the raw text of any child element, known or not.
// ok is false when the element was absent or empty.
func (p *Pill) Field(tag string) (string, bool) {
	for _, f := range p.knownFields() {
		if f.tag == tag {
			return f.value, f.value != ""
		}
	}
	v, ok := p.extra[tag]
	return v, ok && v != ""
}

// Fields returns every non-empty raw field keyed by XML tag.
func (p *Pill) Fields() map[string]string {
	out := make(map[string]string, len(p.extra)+14)
	for _, f := range p.knownFields() {
		if f.value != "" {
			out[f.tag] = f.value
		}
	}
	for tag, v := range p.extra {
		if v != "" {
			out[tag] = v
		}
	}
	return out
}

// Extra returns a copy of the child elements that have no dedicated accessor.
func (p *Pill) Extra() map[string]string {
	return maps.Clone(p.extra)
}

// Validate decodes every typed field once and joins the failures.
func (p *Pill) Validate() error {
	var errs []error
	if _, err := p.Color(); err != nil {
		errs = append(errs, err)
	}
	if _, err := p.Shape(); err != nil {
		errs = append(errs, err)
	}
	if _, err := p.Score(); err != nil {
		errs = append(errs, err)
	}
	if _, err := p.Size(); err != nil {
		errs = append(errs, err)
	}
	return stderrors.Join(errs...)
}

// String returns the drug description.
func (p *Pill) String() string { return p.rxstring }

type taggedValue struct {
	tag   string
	value string
}

func (p *Pill) knownFields() []taggedValue {
	return []taggedValue{
		{TagColor, p.colorCode},
		{TagShape, p.shapeCode},
		{TagScore, p.score},
		{TagSize, p.size},
		{TagImprint, p.imprint},
		{TagSPLID, p.splID},
		{TagSetID, p.setID},
		{TagProductCode, p.productCode},
		{TagRxCUI, p.rxcui},
		{TagRxTTY, p.rxtty},
		{TagRxString, p.rxstring},
		{TagIngredients, p.ingredients},
		{TagHasImage, p.hasImage},
		{TagImageID, p.imageID},
	}
}
