// Package skin loads and normalizes player skin textures.
//
// All skins are normalized to the modern 64x64 layout: legacy 64x32 skins
// get their left limbs synthesized by mirroring the right ones, and HD
// skins are downscaled so the rig's UV rects can assume a 64-texel grid.
package skin

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
)

// Skin format errors.
var (
	ErrBadSkinSize    = errors.New("unsupported skin dimensions")
	ErrUnknownVariant = errors.New("unknown model variant")
)

// Variant selects the arm geometry of the player model.
type Variant string

const (
	VariantDefault Variant = "default" // 4px wide arms
	VariantSlim    Variant = "slim"    // 3px wide arms
)

// ParseVariant parses a variant name. "auto" is not handled here; callers
// that support auto-detection should call DetectVariant on the skin.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantDefault, VariantSlim:
		return Variant(s), nil
	}
	return "", errors.Wrapf(ErrUnknownVariant, "%q", s)
}

// ArmWidth returns the arm box width in texels for the variant.
func (v Variant) ArmWidth() int {
	if v == VariantSlim {
		return 3
	}
	return 4
}

// Skin is a normalized 64x64 skin texture.
type Skin struct {
	Image *image.NRGBA
}

// Load reads and normalizes a PNG skin from disk.
func Load(path string) (*Skin, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open skin")
	}
	defer f.Close()
	s, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "skin %s", path)
	}
	return s, nil
}

// Decode reads and normalizes a PNG skin.
func Decode(r io.Reader) (*Skin, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "decode png")
	}
	return Normalize(img)
}

// Normalize converts an arbitrary-resolution skin image to the canonical
// 64x64 layout.
func Normalize(img image.Image) (*Skin, error) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	legacy := h*2 == w // 2:1 ratio, pre-1.8 layout
	if !legacy && h != w {
		return nil, errors.Wrapf(ErrBadSkinSize, "%dx%d", w, h)
	}
	if w < 64 || w%64 != 0 {
		return nil, errors.Wrapf(ErrBadSkinSize, "%dx%d", w, h)
	}

	// Downscale HD skins to the base 64-texel grid
	if w > 64 {
		dst := image.NewNRGBA(image.Rect(0, 0, 64, h*64/w))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = dst
		w, h = 64, dst.Bounds().Dy()
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	draw.Draw(canvas, image.Rect(0, 0, w, h), img, image.Point{}, draw.Src)

	if legacy {
		convertLegacy(canvas)
	}
	return &Skin{Image: canvas}, nil
}

// convertLegacy synthesizes the left-limb regions of the 64x64 layout by
// mirroring the right limbs of a legacy 64x32 skin.
func convertLegacy(img *image.NRGBA) {
	// Left leg at (16,48) from right leg at (0,16)
	copyFlipped(img, 4, 16, 4, 4, 20, 48)   // top
	copyFlipped(img, 8, 16, 4, 4, 24, 48)   // bottom
	copyFlipped(img, 0, 20, 4, 12, 24, 52)  // inside -> outside
	copyFlipped(img, 4, 20, 4, 12, 20, 52)  // front
	copyFlipped(img, 8, 20, 4, 12, 16, 52)  // outside -> inside
	copyFlipped(img, 12, 20, 4, 12, 28, 52) // back

	// Left arm at (32,48) from right arm at (40,16)
	copyFlipped(img, 44, 16, 4, 4, 36, 48)
	copyFlipped(img, 48, 16, 4, 4, 40, 48)
	copyFlipped(img, 40, 20, 4, 12, 40, 52)
	copyFlipped(img, 44, 20, 4, 12, 36, 52)
	copyFlipped(img, 48, 20, 4, 12, 32, 52)
	copyFlipped(img, 52, 20, 4, 12, 44, 52)
}

// copyFlipped copies a w*h region from (sx,sy) to (dx,dy), mirrored
// horizontally.
func copyFlipped(img *image.NRGBA, sx, sy, w, h, dx, dy int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(dx+w-1-x, dy+y, img.NRGBAAt(sx+x, sy+y))
		}
	}
}

// DetectVariant inspects arm texels to decide whether the skin was
// authored for the slim model. The rightmost column of the default
// 4px-wide right arm is unused by slim skins, so a fully transparent
// column there reads as slim.
func (s *Skin) DetectVariant() Variant {
	probes := [][2]int{
		{50, 16}, // top face, last column
		{54, 20}, // front face, last column
		{54, 31},
		{46, 48}, // left arm (modern layout), mirrored probe
	}
	for _, p := range probes {
		if s.Image.NRGBAAt(p[0], p[1]).A != 0 {
			return VariantDefault
		}
	}
	return VariantSlim
}
