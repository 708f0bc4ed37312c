// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package main

import (
	"embed"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

	weboverlay "github.com/YindSoft/ultralight-weboverlay"
	"github.com/YindSoft/ultralight-weboverlay/internal/config"
	"github.com/YindSoft/ultralight-weboverlay/internal/logging"
	"github.com/YindSoft/ultralight-weboverlay/stage"
	"github.com/YindSoft/ultralight-weboverlay/ultralight"
)

//go:embed ui
var uiFiles embed.FS

const (
	screenWidth  = 800
	screenHeight = 600
)

var controlPage = ultralight.AssetURL("ui/index.html")

// initControl is sent to the control page once it reports EMBED_LOADED.
type initControl struct {
	Type         string `json:"type"`
	Token        string `json:"token"`
	Device       string `json:"device"`
	ScreenWidth  int    `json:"screenWidth"`
	ScreenHeight int    `json:"screenHeight"`
}

type Game struct {
	stage   *stage.Stage
	overlay *weboverlay.Overlay
	bus     *weboverlay.Bus
	cfg     *config.Config
	log     zerolog.Logger

	urlMu sync.Mutex
	url   string // page for the O key; follows overlay.url edits

	controlSent bool
	scripts     int
	counter     int
}

func findBaseDir() string {
	// Look for the bridge in the current dir, then parent (for running from cmd/weboverlay-demo/).
	name := bridgeFile()
	if _, err := os.Stat(name); err == nil {
		return ""
	}
	if _, err := os.Stat(filepath.Join("..", "..", name)); err == nil {
		return filepath.Join("..", "..")
	}
	return ""
}

func bridgeFile() string {
	switch runtime.GOOS {
	case "windows":
		return "ul_bridge.dll"
	case "darwin":
		return "libul_bridge.dylib"
	}
	return "libul_bridge.so"
}

func newGame(cfg *config.Config, log zerolog.Logger) *Game {
	st := stage.New(stage.WithLogger(log))
	bus := weboverlay.NewBus(cfg.Overlay.Channel)

	baseDir := cfg.Bridge.BaseDir
	if baseDir == "" {
		baseDir = findBaseDir()
	}
	settings := cfg.Settings()
	dismiss := cfg.Dismiss()
	factory := ultralight.NewFactory(ultralight.Options{
		BaseDir: baseDir,
		Debug:   cfg.Bridge.Debug,
		Assets:  uiFiles,
		Logger:  &log,
	})

	g := &Game{
		stage: st,
		bus:   bus,
		cfg:   cfg,
		log:   log,
		url:   cfg.Overlay.URL,
	}
	g.overlay = weboverlay.New(weboverlay.Options{
		Host:       st,
		UI:         st,
		NewBrowser: factory,
		Notifier:   bus,
		Channel:    cfg.Overlay.Channel,
		Settings:   &settings,
		Dismiss:    &dismiss,
		Logger:     &log,
	})

	bus.Subscribe(weboverlay.MethodPageLoaded, func(url string) {
		g.log.Info().Str("url", url).Msg("page loaded")
	})
	bus.Subscribe(weboverlay.MethodClosed, func(string) {
		g.log.Info().Msg("overlay closed by user")
	})
	bus.Subscribe(weboverlay.MethodMessageReceived, g.handleMessage)
	return g
}

// handleMessage runs the control page handshake: EMBED_LOADED is answered
// with a single INIT_CONTROL, and the page replies with CONTROL_READY.
func (g *Game) handleMessage(msg string) {
	switch weboverlay.MessageType(msg) {
	case "EMBED_LOADED":
		if g.controlSent {
			return
		}
		w, h := g.stage.Size()
		err := g.overlay.Send(initControl{
			Type:         "INIT_CONTROL",
			Token:        "demo",
			Device:       runtime.GOOS,
			ScreenWidth:  w,
			ScreenHeight: h,
		})
		if err != nil {
			g.log.Error().Stack().Err(err).Msg("sending INIT_CONTROL")
			return
		}
		g.controlSent = true
		g.log.Info().Int("width", w).Int("height", h).Msg("INIT_CONTROL sent")
	case "CONTROL_READY":
		g.log.Info().Msg("CONTROL_READY")
	default:
		g.log.Debug().Str("message", msg).Msg("page message")
	}
}

func (g *Game) configuredURL() string {
	g.urlMu.Lock()
	defer g.urlMu.Unlock()
	return g.url
}

// followURL is called from the config watcher goroutine.
func (g *Game) followURL(url string) {
	g.urlMu.Lock()
	g.url = url
	g.urlMu.Unlock()
	if g.overlay.IsVisible() {
		g.log.Info().Str("url", url).Msg("config changed, reloading overlay")
		g.overlay.LoadURL(url)
	}
}

func (g *Game) showConfigured() {
	o := g.cfg.Overlay
	url := g.configuredURL()
	if o.WidthPercent > 0 && o.HeightPercent > 0 {
		g.overlay.ShowPercent(url, o.WidthPercent, o.HeightPercent)
		return
	}
	g.overlay.Show(url, o.Left, o.Top, o.Width, o.Height)
}

func (g *Game) handleKeys() {
	// While a page has keyboard focus its keys belong to the page; only Esc
	// reaches the game.
	if g.stage.HasFocus() {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.overlay.Hide()
		}
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.showConfigured()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.controlSent = false
		g.overlay.ShowFullscreen(controlPage)
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.overlay.Hide()
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.overlay.Destroy()
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		if g.overlay.CanGoBack() {
			g.overlay.GoBack()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.scripts++
		g.overlay.EvaluateScript(fmt.Sprintf("document.title='script %d';", g.scripts))
	}
}

func (g *Game) Update() error {
	g.counter++
	g.handleKeys()
	return g.stage.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{30, 30, 40, 255})

	// Animated shapes under the overlay
	t := float64(g.counter) / 60.0
	bx := float32(100 + 80*math.Sin(t*0.5))
	by := float32(200 + 60*math.Cos(t*0.7))
	vector.DrawFilledRect(screen, bx, by, 120, 120, color.RGBA{0, 200, 80, 255}, true)
	vector.DrawFilledRect(screen, bx+140, by+30, 80, 80, color.RGBA{200, 180, 0, 255}, true)

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f  overlay: %s  back: %t\nO show  F control page  H hide  D destroy  B back  R script\nEsc hides while the page has focus",
		ebiten.ActualFPS(), g.overlay.State(), g.overlay.CanGoBack()))

	g.stage.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.stage.Layout(outsideWidth, outsideHeight)
}

func run(m *config.Manager, cfg *config.Config) error {
	log := logging.New(cfg.LoggingConfig()).With().Str("app", "weboverlay-demo").Logger()

	g := newGame(cfg, log)
	defer func() {
		g.overlay.Close()
		g.stage.Flush()
		if err := ultralight.Shutdown(); err != nil {
			log.Warn().Err(err).Msg("ultralight shutdown")
		}
	}()

	// Compare edits against the file's own URL so a --url override survives
	// edits to other keys.
	m.Watch(config.FollowURL(m.Get().Overlay.URL, g.followURL), func(err error) {
		log.Warn().Err(err).Msg("ignoring config change")
	})

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("weboverlay demo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Info().Str("url", cfg.Overlay.URL).Msg("starting demo")
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
