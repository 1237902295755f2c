package training

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/umauto/uma-agent/config"
	"github.com/umauto/uma-agent/vision"
)

type fakeDevice struct {
	frame      image.Image
	capErr     error
	swipeErr   error
	swipes     int
	screencaps int
}

func (d *fakeDevice) Screencap() (image.Image, error) {
	d.screencaps++
	if d.capErr != nil {
		return nil, d.capErr
	}
	return d.frame, nil
}

func (d *fakeDevice) Tap(x, y int) error       { return nil }
func (d *fakeDevice) TripleTap(x, y int) error { return nil }

func (d *fakeDevice) Swipe(x1, y1, x2, y2, durationMs int) error {
	d.swipes++
	return d.swipeErr
}

type fakeEngine struct {
	text       string
	confidence float64
	err        error
}

func (e *fakeEngine) Text(img image.Image) (string, error)     { return e.text, e.err }
func (e *fakeEngine) TextLine(img image.Image) (string, error) { return e.text, e.err }
func (e *fakeEngine) TextWithConfidence(img image.Image) (string, float64, error) {
	return e.text, e.confidence, e.err
}
func (e *fakeEngine) Close() error { return nil }

// writeTemplate drops a solid-color PNG asset where the library expects it.
func writeTemplate(t *testing.T, dir, name string, c color.NRGBA) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

// stamp paints a solid square onto the frame at (x, y).
func stamp(frame *image.NRGBA, x, y, size int, c color.NRGBA) {
	for dy := 0; dy < size; dy++ {
		for dx := 0; dx < size; dx++ {
			frame.SetNRGBA(x+dx, y+dy, c)
		}
	}
}

func newTestScanner(t *testing.T, dev *fakeDevice, engine *fakeEngine, assetDir string) *Scanner {
	t.Helper()
	s := NewScanner(dev, engine, vision.NewLibrary(assetDir, 1080), config.DefaultScoreWeights())
	s.sleep = func(time.Duration) {}
	return s
}

func TestScanOneReadsSupportsAndFailure(t *testing.T) {
	assets := t.TempDir()
	spdColor := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	writeTemplate(t, assets, cardTemplates[CardSPD], spdColor)

	frame := image.NewNRGBA(image.Rect(0, 0, 1080, 1920))
	// One spd icon inside the support overlay column.
	stamp(frame, 900, 300, 20, spdColor)
	// Orange bond ring patch around the sample offset from the icon
	// center, wide enough to absorb match-box jitter.
	cx, cy := 910, 310
	sx, sy := cx+bondSampleOffset.X, cy+bondSampleOffset.Y
	stamp(frame, sx-8, sy-8, 17, color.NRGBA{R: 255, G: 173, B: 30, A: 255})

	dev := &fakeDevice{frame: frame}
	engine := &fakeEngine{text: "12%", confidence: 0.95}
	s := newTestScanner(t, dev, engine, assets)

	got := s.scanOne(SPD)

	if dev.swipes != 1 {
		t.Errorf("swipes = %d, want 1 hover gesture", dev.swipes)
	}
	if got.SupportCounts[CardSPD] != 1 {
		t.Fatalf("spd support count = %d, want 1", got.SupportCounts[CardSPD])
	}
	o := got.SupportDetail[CardSPD][0]
	if o.BondLevel != 4 {
		t.Errorf("bond level = %d, want 4 (orange)", o.BondLevel)
	}
	if got.FailurePercent != 12 {
		t.Errorf("failure = %d, want 12", got.FailurePercent)
	}
	if got.FailureConfidence != 0.95 {
		t.Errorf("confidence = %v, want 0.95", got.FailureConfidence)
	}
	// One rainbow support, no hint.
	if got.Score != 1.0 {
		t.Errorf("score = %v, want 1.0", got.Score)
	}
}

func TestScanOneWorstCaseOnCaptureError(t *testing.T) {
	dev := &fakeDevice{capErr: errors.New("device gone")}
	engine := &fakeEngine{}
	s := newTestScanner(t, dev, engine, t.TempDir())

	got := s.scanOne(WIT)
	if got.FailurePercent != 100 || got.FailureConfidence != 0.0 {
		t.Errorf("got (%d, %v), want fail-safe (100, 0.0)", got.FailurePercent, got.FailureConfidence)
	}
	if got.TotalSupport != 0 || got.Score != 0 {
		t.Errorf("worst case must carry no supports or score: %+v", got)
	}
}

func TestScanOneWorstCaseOnGestureError(t *testing.T) {
	dev := &fakeDevice{swipeErr: errors.New("input rejected")}
	engine := &fakeEngine{}
	s := newTestScanner(t, dev, engine, t.TempDir())

	got := s.scanOne(SPD)
	if got.FailurePercent != 100 {
		t.Errorf("failure = %d, want fail-safe 100", got.FailurePercent)
	}
	if dev.screencaps != 0 {
		t.Errorf("screencaps = %d, gesture failure must short-circuit", dev.screencaps)
	}
}

func TestCheckFailureFailSafe(t *testing.T) {
	// Low-confidence reads across both binarization passes end at the
	// worst-case record.
	frame := image.NewNRGBA(image.Rect(0, 0, 1080, 1920))
	dev := &fakeDevice{frame: frame}
	engine := &fakeEngine{text: "12%", confidence: 0.2}
	s := newTestScanner(t, dev, engine, t.TempDir())

	rate, confidence := s.checkFailure(SPD, frame)
	if rate != 100 || confidence != 0.0 {
		t.Errorf("got (%d, %v), want (100, 0.0)", rate, confidence)
	}
	// 2 passes x 3 attempts, minus the reused first frame.
	if dev.screencaps != failureOCRAttempts*2-1 {
		t.Errorf("screencaps = %d, want %d", dev.screencaps, failureOCRAttempts*2-1)
	}
}

func TestCheckFailureAcceptsConfidentRead(t *testing.T) {
	frame := image.NewNRGBA(image.Rect(0, 0, 1080, 1920))
	dev := &fakeDevice{frame: frame}
	engine := &fakeEngine{text: "Failure 29%", confidence: 0.8}
	s := newTestScanner(t, dev, engine, t.TempDir())

	rate, confidence := s.checkFailure(GUTS, frame)
	if rate != 29 || confidence != 0.8 {
		t.Errorf("got (%d, %v), want (29, 0.8)", rate, confidence)
	}
	if dev.screencaps != 0 {
		t.Errorf("screencaps = %d, the provided frame should satisfy the first attempt", dev.screencaps)
	}
}

func TestScanAllCoversAllTypes(t *testing.T) {
	dev := &fakeDevice{frame: image.NewNRGBA(image.Rect(0, 0, 1080, 1920))}
	engine := &fakeEngine{text: "5%", confidence: 0.9}
	s := newTestScanner(t, dev, engine, t.TempDir())

	results := s.ScanAll()
	if len(results) != len(Types) {
		t.Fatalf("got %d results, want %d", len(results), len(Types))
	}
	for _, tt := range Types {
		r, ok := results[tt]
		if !ok || r == nil {
			t.Errorf("missing result for %s", tt)
		}
	}
}
