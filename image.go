package postcard

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageDimensions is the required pixel size of an uploaded image.
type ImageDimensions struct {
	Width  int
	Height int
}

// Required image sizes.
var (
	FrontImage    = ImageDimensions{Width: 1819, Height: 1311}
	StampImage    = ImageDimensions{Width: 343, Height: 248}
	BrandingImage = ImageDimensions{Width: 777, Height: 295}
)

// AspectRatio returns width divided by height.
func (d ImageDimensions) AspectRatio() float64 {
	if d.Height == 0 {
		return 0
	}
	return float64(d.Width) / float64(d.Height)
}

func (d ImageDimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

const lowResolutionMessage = "Image resolution is lower than optimal. Higher resolution recommended for best print quality."

// IsLowResolutionMessage reports whether msg is the low-resolution notice
// produced by ValidateImageDimensions. The provider accepts such images
// with a warning.
func IsLowResolutionMessage(msg string) bool {
	return msg == lowResolutionMessage
}

// isDimensionMessage reports whether msg is a size mismatch message.
func isDimensionMessage(msg string) bool {
	return strings.HasPrefix(msg, "Image dimensions are ")
}

// ValidateImageDimensions checks the pixel size of the image at path
// against want. It returns nil when the image matches exactly.
func ValidateImageDimensions(path string, want ImageDimensions) []string {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{"Image file does not exist"}
		}
		return []string{"Invalid image file"}
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return []string{"Invalid image file"}
	}

	var msgs []string
	if cfg.Width != want.Width || cfg.Height != want.Height {
		msgs = append(msgs, fmt.Sprintf("Image dimensions are %dx%d, but %s is required for optimal quality",
			cfg.Width, cfg.Height, want))
	}
	if cfg.Width < want.Width || cfg.Height < want.Height {
		msgs = append(msgs, lowResolutionMessage)
	}
	return msgs
}
