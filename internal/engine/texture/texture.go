// Package texture loads the image files referenced by MTL texture maps.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned when no decoder recognizes a texture file.
var ErrUnsupportedFormat = errors.New("unsupported texture format")

// Texture is a decoded texture ready for upload.
type Texture struct {
	Path   string
	Width  int
	Height int
	RGBA   *image.RGBA
}

// Loader loads a texture from a file path.
type Loader interface {
	Load(path string) (*Texture, error)
}

// Options configures a FileLoader.
type Options struct {
	// FlipVertical flips rows so the first row is the bottom of the image,
	// matching OpenGL texture coordinates.
	FlipVertical bool
}

// DefaultOptions returns the loader settings used by the viewer.
func DefaultOptions() Options {
	return Options{FlipVertical: true}
}

// FileLoader decodes textures from disk and caches them by cleaned path.
// It is safe for concurrent use.
type FileLoader struct {
	opts  Options
	mu    sync.RWMutex
	items map[string]*Texture
}

// NewFileLoader creates a loader with the given options.
func NewFileLoader(opts Options) *FileLoader {
	return &FileLoader{
		opts:  opts,
		items: make(map[string]*Texture),
	}
}

// Load reads and decodes the texture at path. Decoded textures are cached,
// so a file shared by several materials is decoded once.
func (l *FileLoader) Load(path string) (*Texture, error) {
	key := filepath.Clean(path)

	l.mu.RLock()
	tex, ok := l.items[key]
	l.mu.RUnlock()
	if ok {
		return tex, nil
	}

	data, err := os.ReadFile(key)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", key, err)
	}

	img, err := Decode(data, filepath.Ext(key))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", key, err)
	}

	rgba := ToRGBA(img, l.opts.FlipVertical)
	tex = &Texture{
		Path:   key,
		Width:  rgba.Bounds().Dx(),
		Height: rgba.Bounds().Dy(),
		RGBA:   rgba,
	}

	l.mu.Lock()
	if existing, ok := l.items[key]; ok {
		tex = existing
	} else {
		l.items[key] = tex
	}
	l.mu.Unlock()

	return tex, nil
}

// Len returns the number of cached textures.
func (l *FileLoader) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// decoders maps lower-case file extensions to image decoders.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".gif":  gif.Decode,
	".bmp":  bmp.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".webp": webp.Decode,
	".tga":  tga.Decode,
}

// Decode decodes image data, choosing the decoder by extension and falling
// back to content sniffing for unknown extensions. TGA files the tga package
// rejects are retried with DecodeTGA.
func Decode(data []byte, ext string) (image.Image, error) {
	ext = strings.ToLower(ext)

	dec, ok := decoders[ext]
	if !ok {
		img, _, err := image.Decode(bytes.NewReader(data))
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w (%s)", ErrUnsupportedFormat, ext)
		}
		return img, err
	}

	img, err := dec(bytes.NewReader(data))
	if err != nil && ext == ".tga" {
		if fallback, tgaErr := DecodeTGA(data); tgaErr == nil {
			return fallback, nil
		}
	}
	return img, err
}

// ToRGBA converts any image to *image.RGBA with its origin at (0,0),
// optionally flipping it vertically.
func ToRGBA(src image.Image, flip bool) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	if flip {
		rowLen := b.Dx() * 4
		tmp := make([]byte, rowLen)
		for top, bottom := 0, b.Dy()-1; top < bottom; top, bottom = top+1, bottom-1 {
			t := dst.Pix[top*dst.Stride : top*dst.Stride+rowLen]
			btm := dst.Pix[bottom*dst.Stride : bottom*dst.Stride+rowLen]
			copy(tmp, t)
			copy(t, btm)
			copy(btm, tmp)
		}
	}
	return dst
}
