// Package imaging implements gigarip.Compositor with the standard
// library image pipeline: decode JPEG tiles, compose on an RGBA canvas,
// encode JPEG output.
package imaging

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"os"

	"github.com/gigarip/gigarip"
)

const jpegQuality = 90

// trimFuzz is the per-channel tolerance when matching padding against
// the fill color. JPEG compression leaves near-black noise in padded
// regions, so an exact match would never trim real-world output.
const trimFuzz = 12

// fillColor is the padding color sources use for the rightmost column
// and bottom row when the true image is not an exact multiple of the
// tile size.
var fillColor = color.RGBA{A: 0xff}

// Ensure Compositor implements gigarip.Compositor at compile time.
var _ gigarip.Compositor = (*Compositor)(nil)

// Compositor joins and trims JPEG files on disk.
type Compositor struct{}

// NewCompositor creates a new Compositor.
func NewCompositor() *Compositor {
	return &Compositor{}
}

// JoinHorizontal concatenates the sources left-to-right with zero
// spacing and writes the strip to dst.
func (c *Compositor) JoinHorizontal(ctx context.Context, srcs []string, dst string) error {
	imgs, err := loadAll(ctx, srcs)
	if err != nil {
		return err
	}

	var width, height int
	for _, img := range imgs {
		width += img.Bounds().Dx()
		if h := img.Bounds().Dy(); h > height {
			height = h
		}
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	x := 0
	for _, img := range imgs {
		b := img.Bounds()
		draw.Draw(canvas, image.Rect(x, 0, x+b.Dx(), b.Dy()), img, b.Min, draw.Src)
		x += b.Dx()
	}

	return save(dst, canvas)
}

// JoinVertical concatenates the sources top-to-bottom with zero spacing
// and writes the result to dst.
func (c *Compositor) JoinVertical(ctx context.Context, srcs []string, dst string) error {
	imgs, err := loadAll(ctx, srcs)
	if err != nil {
		return err
	}

	var width, height int
	for _, img := range imgs {
		height += img.Bounds().Dy()
		if w := img.Bounds().Dx(); w > width {
			width = w
		}
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	y := 0
	for _, img := range imgs {
		b := img.Bounds()
		draw.Draw(canvas, image.Rect(0, y, b.Dx(), y+b.Dy()), img, b.Min, draw.Src)
		y += b.Dy()
	}

	return save(dst, canvas)
}

// BorderTrim adds a 1-pixel fill-color border, then trims the
// contiguous fill-colored region from all four edges. The added border
// is the trim's color reference: genuine edge content in the fill color
// leaves at least one non-uniform row or column, so it survives.
// Trimming an already-trimmed image only removes the added border.
func (c *Compositor) BorderTrim(ctx context.Context, src, dst string) error {
	img, err := load(src)
	if err != nil {
		return err
	}

	bordered := addBorder(img, 1, fillColor)
	r := trimRect(bordered, fillColor)
	if r.Empty() {
		// Uniformly fill-colored image; trimming everything would leave
		// nothing, so keep the content as-is.
		r = img.Bounds().Add(image.Pt(1, 1))
	}

	cropped := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(cropped, cropped.Bounds(), bordered, r.Min, draw.Src)

	return save(dst, cropped)
}

func load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, gigarip.Errorf(gigarip.EINTERNAL, "open image %s: %v", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, gigarip.Errorf(gigarip.EINTERNAL, "decode image %s: %v", path, err)
	}
	return img, nil
}

func loadAll(ctx context.Context, paths []string) ([]image.Image, error) {
	if len(paths) == 0 {
		return nil, gigarip.Errorf(gigarip.EINVALID, "no images to join")
	}

	imgs := make([]image.Image, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := load(p)
		if err != nil {
			return nil, err
		}
		imgs = append(imgs, img)
	}
	return imgs, nil
}

func save(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return gigarip.Errorf(gigarip.EINTERNAL, "create image %s: %v", path, err)
	}
	defer f.Close()

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return gigarip.Errorf(gigarip.EINTERNAL, "encode image %s: %v", path, err)
	}
	return nil
}

// addBorder returns img surrounded by a uniform border of the given
// width and color.
func addBorder(img image.Image, width int, fill color.Color) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()+2*width, b.Dy()+2*width))
	draw.Draw(out, out.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(width, width, width+b.Dx(), width+b.Dy()), img, b.Min, draw.Src)
	return out
}

// trimRect returns the bounds of img with contiguous fill-colored rows
// and columns peeled from each edge.
func trimRect(img image.Image, fill color.Color) image.Rectangle {
	b := img.Bounds()
	top, bottom := b.Min.Y, b.Max.Y
	left, right := b.Min.X, b.Max.X

	for top < bottom && rowMatches(img, top, left, right, fill) {
		top++
	}
	for bottom > top && rowMatches(img, bottom-1, left, right, fill) {
		bottom--
	}
	for left < right && colMatches(img, left, top, bottom, fill) {
		left++
	}
	for right > left && colMatches(img, right-1, top, bottom, fill) {
		right--
	}

	return image.Rect(left, top, right, bottom)
}

func rowMatches(img image.Image, y, x0, x1 int, fill color.Color) bool {
	for x := x0; x < x1; x++ {
		if !matches(img.At(x, y), fill) {
			return false
		}
	}
	return true
}

func colMatches(img image.Image, x, y0, y1 int, fill color.Color) bool {
	for y := y0; y < y1; y++ {
		if !matches(img.At(x, y), fill) {
			return false
		}
	}
	return true
}

// matches compares two colors within trimFuzz per channel.
func matches(c, fill color.Color) bool {
	cr, cg, cb, _ := c.RGBA()
	fr, fg, fb, _ := fill.RGBA()
	return diff(cr, fr) <= trimFuzz && diff(cg, fg) <= trimFuzz && diff(cb, fb) <= trimFuzz
}

func diff(a, b uint32) int {
	// RGBA() returns 16-bit channels; compare in 8-bit space.
	av, bv := int(a>>8), int(b>>8)
	if av > bv {
		return av - bv
	}
	return bv - av
}
