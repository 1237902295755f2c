package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/umauto/uma-agent/career"
	"github.com/umauto/uma-agent/config"
	"github.com/umauto/uma-agent/device"
	"github.com/umauto/uma-agent/ocr"
	"github.com/umauto/uma-agent/vision"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the config file")
	scorePath := flag.String("scores", "training_score.json", "path to the score weights file")
	flag.Parse()

	store := config.NewStore(*configPath, *scorePath)
	cfg, _ := store.Snapshot()

	logFile, err := initLogger(cfg.DebugMode)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}
	defer logFile.Close()

	log.Info().Str("version", Version).Msg("uma-agent")

	serial := cfg.DeviceSerial
	if serial == "" {
		serial = device.DiscoverEmulatorSerial()
		if serial == "" {
			log.Fatal().Msg("No emulator found; set device_serial in the config")
		}
		log.Info().Str("serial", serial).Msg("Discovered emulator")
	}

	adb := device.NewADB(serial)
	if strings.Contains(serial, ":") {
		if err := adb.Connect(); err != nil {
			log.Fatal().Err(err).Str("serial", serial).Msg("adb connect failed")
		}
	}

	frame, err := adb.Screencap()
	if err != nil {
		log.Fatal().Err(err).Msg("Initial screencap failed; is the emulator running?")
	}
	width := frame.Bounds().Dx()
	log.Info().Int("width", width).Int("height", frame.Bounds().Dy()).Msg("Screen resolution")

	engine, err := ocr.NewTesseract()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize OCR engine")
	}
	defer engine.Close()

	templates := vision.NewLibrary(cfg.AssetDir, width)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := career.NewLoop(adb, engine, templates, store)
	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("Career loop failed")
	}
}
