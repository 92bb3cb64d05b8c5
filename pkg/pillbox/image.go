package pillbox

import (
	"fmt"

	"github.com/matzehuels/pillbox/pkg/errors"
)

// ImageBaseURL is the host serving pill photographs.
const ImageBaseURL = "http://pillbox.nlm.nih.gov/assets"

// ImageSize names one of the rendition sizes published for each pill image.
type ImageSize string

// Published image sizes, smallest first.
const (
	ImageSuperSmall ImageSize = "super_small" // 91 x 65 png
	ImageSmall      ImageSize = "small"       // 161 x 115 jpg
	ImageMedium     ImageSize = "medium"      // 448 x 320 jpg
	ImageLarge      ImageSize = "large"       // 840 x 600 jpg
)

// DefaultImageSize is used by callers that don't pick a size.
const DefaultImageSize = ImageSmall

var imageShortCodes = map[ImageSize]string{
	ImageSuperSmall: "ss",
	ImageSmall:      "sm",
	ImageMedium:     "md",
	ImageLarge:      "lg",
}

// ImageSizes returns every published size, smallest first.
func ImageSizes() []ImageSize {
	return []ImageSize{ImageSuperSmall, ImageSmall, ImageMedium, ImageLarge}
}

// ParseImageSize validates a size name.
// Anything other than the four published names yields an
// [errors.ErrCodeUnrecognizedImageSize] error.
func ParseImageSize(s string) (ImageSize, error) {
	size := ImageSize(s)
	if _, ok := imageShortCodes[size]; !ok {
		return "", errors.New(errors.ErrCodeUnrecognizedImageSize, "unknown image size %q", s)
	}
	return size, nil
}

// ShortCode returns the two-letter suffix used in image file names.
func (s ImageSize) ShortCode() string { return imageShortCodes[s] }

// Ext returns the file extension: png for super_small, jpg otherwise.
func (s ImageSize) Ext() string {
	if s == ImageSuperSmall {
		return "png"
	}
	return "jpg"
}

// ImageURL builds the download URL of imageID at the given size.
// An empty imageID yields "".
func ImageURL(imageID string, size ImageSize) string {
	if imageID == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s%s.%s", ImageBaseURL, size, imageID, size.ShortCode(), size.Ext())
}
