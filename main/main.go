package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"screen-reader-solver/chord"
	"screen-reader-solver/clipboard"
	"screen-reader-solver/config"
	"screen-reader-solver/eventloop"
	"screen-reader-solver/hotkey"
	"screen-reader-solver/llm"
	"screen-reader-solver/logutil"
	"screen-reader-solver/ocr"
	"screen-reader-solver/overlay"
	"screen-reader-solver/pipeline"
	"screen-reader-solver/screenshot"
	"screen-reader-solver/tray"
	"screen-reader-solver/typer"
	"screen-reader-solver/worker"
)

// instancePort is claimed for the process lifetime; a second instance would
// double-register the global input hooks.
const instancePort = 48731

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logutil.Setup(cfg.EnableFileLogging)
	if cfg.APIKey != "" {
		log.Printf("Using API key %s", logutil.RedactKey(cfg.APIKey))
	}

	// ---------- single-instance pre-flight ----------
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", instancePort))
	if err != nil {
		fmt.Fprintf(os.Stderr, "one is already running on port %d\n", instancePort)
		os.Exit(1)
	}
	defer ln.Close()
	log.Printf("Pre-flight: port %d claimed, we are the one true resident", instancePort)
	// ------------------------------------------------

	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable: %v", err)
	}

	client, err := llm.New(llm.Config{BaseURL: cfg.BaseURL, APIKey: cfg.APIKey, Model: cfg.Model})
	if err != nil {
		log.Fatalf("LLM client: %v", err)
	}
	engine := ocr.New(cfg.TesseractLang)

	a := app.New()
	ov := overlay.New(a)

	runner := pipeline.New(pipeline.Options{
		Capture:   screenshot.CapturePrimary,
		Recognize: engine.Recognize,
		Complete:  client.Query,
		Presenter: ov,
		CopyText:  clipboard.Write,
		Settle:    cfg.Settle(),
	})

	pool := worker.New(1)
	ctx, cancel := context.WithCancel(context.Background())

	// systray needs the main OS thread on macOS and fyne already owns it;
	// the keyboard chords cover everything the menu offers.
	trayEnabled := runtime.GOOS != "darwin"

	loop := eventloop.New(ov, runner, pool, func() {
		cancel()
		hotkey.Stop()
		if trayEnabled {
			tray.Quit()
		}
		fyne.Do(a.Quit)
	})

	detector := chord.NewDetector(cfg.Debounce(), loop.Post)
	dispatcher := typer.NewDispatcher(runner.LastResponse, cfg.TypeDelay())
	hotkey.Listen(detector, dispatcher.Trigger)

	if trayEnabled {
		go tray.Run(tray.Handlers{
			OnCapture: func() { loop.Post(chord.Intent{Kind: chord.IntentCapture}) },
			OnToggle:  func() { loop.Post(chord.Intent{Kind: chord.IntentToggle}) },
			OnQuit:    func() { loop.Post(chord.Intent{Kind: chord.IntentExit}) },
		})
	}

	go func() {
		_ = loop.Run(ctx)
		pool.Close()
	}()

	log.Printf("Model %s at %s, debounce %v", cfg.Model, cfg.BaseURL, cfg.Debounce())
	ov.ShowAndRun()
}
