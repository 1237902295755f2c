package device

import (
	"encoding/binary"
	"fmt"
	"image"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ADB drives a device through the adb binary. Screencap uses
// `adb exec-out screencap`, which streams a raw RGBA frame with a small
// header instead of a PNG, saving an encode/decode round trip.
type ADB struct {
	exe    string
	serial string
}

// NewADB returns an ADB transport pinned to the given serial. An empty
// serial lets adb pick the only connected device.
func NewADB(serial string) *ADB {
	return &ADB{exe: "adb", serial: serial}
}

func (a *ADB) args(parts ...string) []string {
	if a.serial == "" {
		return parts
	}
	return append([]string{"-s", a.serial}, parts...)
}

func (a *ADB) run(parts ...string) ([]byte, error) {
	out, err := exec.Command(a.exe, a.args(parts...)...).Output()
	if err != nil {
		return nil, fmt.Errorf("adb %s: %w", strings.Join(parts, " "), err)
	}
	return out, nil
}

// Screencap captures the current frame as an NRGBA image.
//
// Raw screencap layout: width uint32, height uint32, pixel format uint32
// (and on newer Androids an extra colorspace uint32), then width*height*4
// bytes of RGBA.
func (a *ADB) Screencap() (image.Image, error) {
	raw, err := a.run("exec-out", "screencap")
	if err != nil {
		return nil, err
	}
	return decodeRawFrame(raw)
}

func decodeRawFrame(raw []byte) (image.Image, error) {
	if len(raw) < 12 {
		return nil, fmt.Errorf("screencap: short read (%d bytes)", len(raw))
	}

	width := int(binary.LittleEndian.Uint32(raw[0:4]))
	height := int(binary.LittleEndian.Uint32(raw[4:8]))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("screencap: bad dimensions %dx%d", width, height)
	}

	need := width * height * 4
	headerLen := len(raw) - need
	if headerLen != 12 && headerLen != 16 {
		return nil, fmt.Errorf("screencap: unexpected payload %d for %dx%d", len(raw), width, height)
	}

	return &image.NRGBA{
		Pix:    raw[headerLen:],
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

func (a *ADB) Tap(x, y int) error {
	_, err := a.run("shell", "input", "tap", itoa(x), itoa(y))
	return err
}

func (a *ADB) TripleTap(x, y int) error {
	for i := 0; i < 3; i++ {
		if err := a.Tap(x, y); err != nil {
			return err
		}
		time.Sleep(100 * time.Millisecond)
	}
	return nil
}

func (a *ADB) Swipe(x1, y1, x2, y2, durationMs int) error {
	_, err := a.run("shell", "input", "swipe",
		itoa(x1), itoa(y1), itoa(x2), itoa(y2), itoa(durationMs))
	return err
}

// Connect issues `adb connect` for TCP endpoints such as emulator ports.
// Harmless when already connected.
func (a *ADB) Connect() error {
	if a.serial == "" || !strings.Contains(a.serial, ":") {
		return nil
	}
	out, err := a.run("connect", a.serial)
	if err != nil {
		return err
	}
	log.Debug().Str("serial", a.serial).Str("out", strings.TrimSpace(string(out))).Msg("adb connect")
	return nil
}

func itoa(n int) string { return fmt.Sprintf("%d", n) }
