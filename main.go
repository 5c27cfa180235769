package main

import (
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kettleram/cookie-crunch/audio"
	"github.com/kettleram/cookie-crunch/config"
	"github.com/kettleram/cookie-crunch/events"
	"github.com/kettleram/cookie-crunch/flow"
	"github.com/kettleram/cookie-crunch/game"
	"github.com/kettleram/cookie-crunch/render"
	"github.com/kettleram/cookie-crunch/store"
)

const tickInterval = 50 * time.Millisecond

func main() {
	// The terminal belongs to tcell; route logs to a file instead
	if logFile, err := os.OpenFile("cookie-crunch.log",
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	}

	cfg, err := config.Load("cookie-crunch.yaml")
	if err != nil {
		log.Printf("config load failed, using defaults: %v", err)
	}

	saves, err := store.Open(savePath())
	if err != nil {
		log.Fatalf("save store: %v", err)
	}
	defer saves.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("terminal init: %v", err)
	}
	defer screen.Fini()

	bus := events.NewBus()

	player, err := audio.NewPlayer(bus)
	if err != nil {
		// Non-fatal, game can run without sound
		log.Printf("audio initialization failed: %v", err)
	}
	defer player.Close()

	ui := render.New(screen, bus, cfg)
	defer ui.Close()

	driver := flow.NewDriver(bus, cfg, game.SystemTime{}, saves,
		rand.New(rand.NewSource(time.Now().UnixNano())), ui)
	ui.BindDriver(driver)
	driver.Start()

	run(screen, ui, driver)
}

// savePath puts the save database under the user config dir, falling
// back to the working directory
func savePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "cookie-crunch.db"
	}
	dir = filepath.Join(dir, "cookie-crunch")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "cookie-crunch.db"
	}
	return filepath.Join(dir, "save.db")
}

func run(screen tcell.Screen, ui *render.UI, driver *flow.Driver) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case <-ticker.C:
			driver.Update()
			ui.Draw()

		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !ui.HandleKey(ev) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}
}
