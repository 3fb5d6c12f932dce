package formpdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"

	"github.com/jung-kurt/gofpdf"
	xdraw "golang.org/x/image/draw"
)

// maxLogoPixels bounds the logo's longest edge. Submissions arrive with
// arbitrary branding assets, and an oversized raster bloats every archived
// page it is repeated on.
const maxLogoPixels = 1200

// registerLogo decodes, normalizes and registers the logo image with the
// document and returns its resource name.
func registerLogo(pdf *gofpdf.Fpdf, raw []byte) (string, error) {
	norm, err := normalizeLogo(raw)
	if err != nil {
		return "", err
	}
	const name = "formpdf-logo"
	pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(norm))
	if pdf.Err() {
		return "", pdf.Error()
	}
	return name, nil
}

// normalizeLogo re-encodes the logo as PNG, downscaling sources that exceed
// maxLogoPixels on their longest edge. Re-encoding keeps the embedded bytes
// identical across compositions regardless of the source format.
func normalizeLogo(raw []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadLogo, err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrBadLogo
	}

	if w > maxLogoPixels || h > maxLogoPixels {
		scale := float64(maxLogoPixels) / float64(w)
		if h > w {
			scale = float64(maxLogoPixels) / float64(h)
		}
		dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadLogo, err)
	}
	return buf.Bytes(), nil
}
