package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"read-frame/pkg/config"
	"read-frame/pkg/display"
	"read-frame/pkg/logging"
	"read-frame/pkg/performance"
	"read-frame/pkg/renderer"
	"read-frame/pkg/telemetry"
	"read-frame/pkg/viewsettings"
	"read-frame/screens/reader"
)

const (
	targetFPS      = 60
	fallbackWidth  = 1920
	fallbackHeight = 1080

	// Frames between frame timing reports
	reportInterval = 60 * targetFPS
)

func main() {
	// SDL must run on the main OS thread
	runtime.LockOSThread()

	cfg, cfgErr := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logging.SetLogger(logger)

	if cfgErr != nil {
		logger.Warn("failed to load config, using defaults", zap.Error(cfgErr))
	}

	if err := initializeSDL2(); err != nil {
		logger.Fatal("failed to initialize SDL2", zap.Error(err))
	}
	defer func() {
		logger.Info("shutting down SDL2")
		sdl.Quit()
	}()

	screenWidth, screenHeight := getDisplayDimensions()
	logger.Info("starting", zap.String("title", cfg.Title), zap.Int32("width", screenWidth), zap.Int32("height", screenHeight))

	window, err := sdl.CreateWindow(cfg.Title, 0, 0, screenWidth, screenHeight, sdl.WINDOW_SHOWN|sdl.WINDOW_FULLSCREEN)
	if err != nil {
		logger.Fatal("failed to create window", zap.Error(err))
	}
	defer window.Destroy()

	r, err := createRenderer(window)
	if err != nil {
		logger.Fatal("failed to create renderer", zap.Error(err))
	}
	defer r.Destroy()

	// A window exists, so this is an interactive session
	tcfg := telemetry.Config{
		Interactive: true,
		Production:  cfg.Production(),
		Key:         cfg.PostHogKey,
		Host:        cfg.PostHogHost,
	}
	if id, err := cfg.InstallID(); err != nil {
		logger.Warn("failed to read install id", zap.Error(err))
	} else {
		tcfg.DistinctID = id
	}
	client := telemetry.Bootstrap(tcfg)
	defer client.Close()

	store, err := openStore(cfg)
	if err != nil {
		logger.Fatal("failed to open view settings store", zap.Error(err))
	}

	ctx := telemetry.WithClient(context.Background(), client)
	screen := reader.NewReaderScreen(ctx, window, r, reader.Deps{
		Config:    cfg,
		Store:     store,
		Renderers: renderer.NewRegistry(),
		Surface:   display.NewSurface(),
	})
	defer screen.Close()

	runLoop(screen)

	logger.Info("read-frame shutting down")
}

// openStore picks S3 when a bucket is configured and the local file otherwise
func openStore(cfg config.Config) (viewsettings.Store, error) {
	if cfg.S3Bucket != "" {
		logging.Logger().Info("using S3 view settings", zap.String("bucket", cfg.S3Bucket), zap.String("prefix", cfg.S3Prefix))
		return viewsettings.NewS3StoreFromEnv(cfg.S3Bucket, cfg.S3Prefix)
	}
	logging.Logger().Info("using local view settings", zap.String("path", cfg.SettingsPath))
	return viewsettings.NewFileStore(cfg.SettingsPath), nil
}

// initializeSDL2 initializes SDL2, trying video drivers in order
func initializeSDL2() error {
	var drivers []string
	if env := os.Getenv("SDL_VIDEODRIVER"); env != "" {
		drivers = []string{env, "software", "dummy"}
	} else if runtime.GOOS == "darwin" {
		drivers = []string{"cocoa", "software", "dummy"}
	} else {
		drivers = []string{"kmsdrm", "wayland", "x11", "fbcon", "software", "dummy"}
	}

	for _, driver := range drivers {
		sdl.Quit()
		sdl.SetHint(sdl.HINT_VIDEODRIVER, driver)
		sdl.SetHint(sdl.HINT_VIDEO_MINIMIZE_ON_FOCUS_LOSS, "0")

		if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
			logging.Logger().Debug("SDL2 video driver failed", zap.String("driver", driver), zap.Error(err))
			continue
		}
		logging.Logger().Info("SDL2 initialized", zap.String("driver", driver))
		return nil
	}

	return fmt.Errorf("all SDL2 video drivers failed")
}

// getDisplayDimensions returns the screen dimensions or fallback values
func getDisplayDimensions() (int32, int32) {
	mode, err := sdl.GetCurrentDisplayMode(0)
	if err != nil {
		logging.Logger().Warn("failed to get display mode, using fallback", zap.Error(err))
		return fallbackWidth, fallbackHeight
	}
	return mode.W, mode.H
}

// createRenderer tries an accelerated renderer before falling back to software
func createRenderer(window *sdl.Window) (*sdl.Renderer, error) {
	r, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		logging.Logger().Warn("hardware acceleration failed, trying software", zap.Error(err))
		r, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_SOFTWARE)
		if err != nil {
			return nil, err
		}
	}
	r.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
	return r, nil
}

// runLoop executes the main SDL2 loop until the window is closed
func runLoop(screen *reader.ReaderScreen) {
	frameTime := time.Second / targetFPS
	monitor := performance.NewFrameMonitor(2*targetFPS, frameTime)

	for frame := 1; ; frame++ {
		start := time.Now()

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if _, ok := event.(*sdl.QuitEvent); ok {
				return
			}
		}

		if err := screen.Update(); err != nil {
			logging.Logger().Error("update failed", zap.Error(err))
			return
		}
		updated := time.Now()

		if err := screen.Draw(); err != nil {
			logging.Logger().Error("draw failed", zap.Error(err))
			return
		}

		monitor.RecordFrame(updated.Sub(start), time.Since(updated))
		if frame%reportInterval == 0 {
			monitor.Log()
		}

		if elapsed := time.Since(start); elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}
}
