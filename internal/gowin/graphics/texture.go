package graphics

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"unsafe"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	glpkg "github.com/tinyrange/texquad/internal/gowin/gl"
)

// TextureOptions controls how decoded pixels are uploaded.
type TextureOptions struct {
	// Alpha uploads RGBA instead of RGB and flips the image vertically so the
	// first row in memory is the bottom of the picture.
	Alpha bool
}

// Texture is a 2D texture assigned to a fixed texture unit.
type Texture struct {
	gl     glpkg.OpenGL
	id     uint32
	unit   uint32
	w, h   int
	loaded bool
}

// DecodeImage decodes any registered image format into NRGBA, optionally
// flipping it vertically.
func DecodeImage(r io.Reader, flip bool) (*image.NRGBA, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	return toNRGBA(img, flip), format, nil
}

func toNRGBA(img image.Image, flip bool) *image.NRGBA {
	b := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	if flip {
		flipVertical(nrgba)
	}
	return nrgba
}

func flipVertical(img *image.NRGBA) {
	h := img.Rect.Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}

// packRGB drops the alpha channel and packs pixels with no row padding.
func packRGB(img *image.NRGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	out := make([]byte, 0, w*h*3)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			out = append(out, row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return out
}

func newTexture(gl glpkg.OpenGL, unit uint32) *Texture {
	t := &Texture{gl: gl, unit: unit}
	gl.GenTextures(1, &t.id)
	gl.ActiveTexture(glpkg.Texture0 + unit)
	gl.BindTexture(glpkg.Texture2D, t.id)

	gl.TexParameteri(glpkg.Texture2D, glpkg.TextureWrapS, glpkg.Repeat)
	gl.TexParameteri(glpkg.Texture2D, glpkg.TextureWrapT, glpkg.Repeat)
	gl.TexParameteri(glpkg.Texture2D, glpkg.TextureMinFilter, glpkg.LinearMipmapLinear)
	gl.TexParameteri(glpkg.Texture2D, glpkg.TextureMagFilter, glpkg.Linear)
	return t
}

func (t *Texture) upload(img *image.NRGBA, opts TextureOptions) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}
	if opts.Alpha {
		t.gl.TexImage2D(glpkg.Texture2D, 0, glpkg.RGBA, int32(w), int32(h), 0,
			glpkg.RGBA, glpkg.UnsignedByte, unsafe.Pointer(&img.Pix[0]))
	} else {
		pix := packRGB(img)
		// Tightly packed RGB rows are not 4-byte aligned for odd widths.
		t.gl.PixelStorei(glpkg.UnpackAlignment, 1)
		t.gl.TexImage2D(glpkg.Texture2D, 0, glpkg.RGB, int32(w), int32(h), 0,
			glpkg.RGB, glpkg.UnsignedByte, unsafe.Pointer(&pix[0]))
		t.gl.PixelStorei(glpkg.UnpackAlignment, 4)
	}
	t.gl.GenerateMipmap(glpkg.Texture2D)
	t.w, t.h = w, h
	t.loaded = true
}

// LoadTexture creates a texture on the given unit and fills it from the image
// at path. Sampling parameters are set before decoding. If the file cannot be
// decoded the failure is logged and the texture is returned without image
// data; Loaded reports false in that case.
func LoadTexture(gl glpkg.OpenGL, path string, unit uint32, opts TextureOptions) *Texture {
	t := newTexture(gl, unit)
	defer gl.BindTexture(glpkg.Texture2D, 0)

	img, format, err := decodeFile(path, opts.Alpha)
	if err != nil {
		slog.Warn("failed to load texture", "path", path, "error", err)
		return t
	}
	t.upload(img, opts)
	slog.Debug("texture loaded", "path", path, "format", format, "width", t.w, "height", t.h, "unit", unit)
	return t
}

// LoadTextureFrom is LoadTexture for an already opened image stream.
func LoadTextureFrom(gl glpkg.OpenGL, name string, r io.Reader, unit uint32, opts TextureOptions) *Texture {
	t := newTexture(gl, unit)
	defer gl.BindTexture(glpkg.Texture2D, 0)

	img, _, err := DecodeImage(r, opts.Alpha)
	if err != nil {
		slog.Warn("failed to load texture", "path", name, "error", err)
		return t
	}
	t.upload(img, opts)
	return t
}

func decodeFile(path string, flip bool) (*image.NRGBA, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	img, format, err := DecodeImage(f, flip)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return img, format, nil
}

// Bind selects the texture's unit and binds the texture to it.
func (t *Texture) Bind() {
	t.gl.ActiveTexture(glpkg.Texture0 + t.unit)
	t.gl.BindTexture(glpkg.Texture2D, t.id)
}

func (t *Texture) ID() uint32 { return t.id }

// Unit is the texture unit index the texture was created for.
func (t *Texture) Unit() uint32 { return t.unit }

// Loaded reports whether image data was uploaded.
func (t *Texture) Loaded() bool { return t.loaded }

func (t *Texture) Size() (width, height int) { return t.w, t.h }

func (t *Texture) Delete() {
	if t.id == 0 {
		return
	}
	t.gl.DeleteTextures(1, &t.id)
	t.id = 0
}
