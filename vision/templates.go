package vision

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
	"github.com/rs/zerolog/log"
)

// ReferenceWidth is the screen width all template assets and layout
// coordinates were captured at.
const ReferenceWidth = 1080

// Library loads and caches PNG template assets. When the live screen is
// not at the reference resolution, templates are rescaled once at load
// time so matching stays aligned with the captured frame.
type Library struct {
	baseDir string
	scale   float64
	cache   map[string]*image.NRGBA
}

// NewLibrary creates a template library rooted at baseDir for a screen of
// the given width.
func NewLibrary(baseDir string, screenWidth int) *Library {
	scale := 1.0
	if screenWidth > 0 && screenWidth != ReferenceWidth {
		scale = float64(screenWidth) / float64(ReferenceWidth)
		log.Info().
			Int("screen_width", screenWidth).
			Float64("scale", scale).
			Msg("template assets will be rescaled to match screen")
	}
	return &Library{
		baseDir: baseDir,
		scale:   scale,
		cache:   make(map[string]*image.NRGBA),
	}
}

// Load returns the template image for a relative asset path such as
// "icons/support_card_type_spd.png".
func (l *Library) Load(name string) (*image.NRGBA, error) {
	if tpl, ok := l.cache[name]; ok {
		return tpl, nil
	}

	path := filepath.Join(l.baseDir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open template %s: %w", name, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode template %s: %w", name, err)
	}

	if l.scale != 1.0 {
		w := uint(float64(img.Bounds().Dx()) * l.scale)
		img = resize.Resize(w, 0, img, resize.Lanczos3)
	}

	tpl := toNRGBA(img)
	l.cache[name] = tpl
	return tpl, nil
}
