package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"

	"github.com/lixenwraith/kristall/component"
	"github.com/lixenwraith/kristall/core"
	"github.com/lixenwraith/kristall/engine"
	"github.com/lixenwraith/kristall/input"
	"github.com/lixenwraith/kristall/parameter"
	"github.com/lixenwraith/kristall/prefab"
	"github.com/lixenwraith/kristall/status"
	"github.com/lixenwraith/kristall/system"
)

var (
	debugFlag   = flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
	configFlag  = flag.String("config", "", "Path to a TOML config overlaying the defaults")
	profileFlag = flag.String("profile", "", "Profile mode: cpu, mem")
	mouseFlag   = flag.Bool("mouse", false, "Orbit the camera with the mouse instead of arrow keys")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := parameter.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	switch *profileFlag {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		fmt.Fprintf(os.Stderr, "Unknown profile mode %q\n", *profileFlag)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.EnableFocus()
	core.RegisterCrashTerminal(screen)
	defer screen.Fini()

	reg := status.NewRegistry()
	renderer := newTerminalRenderer(screen, reg)

	tile := prefab.NewRandomTile(cfg, renderer.Sink)
	tile.Camera = func(target engine.Handle[component.Transform]) component.Camera {
		if *mouseFlag {
			return component.NewThirdPersonCamera(target, component.NewMouseCameraController(parameter.CameraMouseSens, false))
		}
		return component.NewThirdPersonCamera(target, component.NewKeyArrowCameraController())
	}
	world := engine.NewWorld(prefab.Instantiate(tile).Build())

	if cams := world.QueryEntityByName(prefab.CameraName, false).Collect(); len(cams) > 0 {
		renderer.SetCamera(engine.MustGet[component.Camera](cams[0]))
	}

	scheduler := engine.NewScheduler(world, engine.SchedulerConfig{
		TickInterval: cfg.Engine.TickInterval,
		FetchBackoff: cfg.Engine.FetchBackoff,
	}, reg)
	inputSystem := system.Register(scheduler, cfg.Physics.G)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	scheduler.Start(ctx)
	defer scheduler.Stop()

	run(screen, renderer, inputSystem, cfg)
	log.Println("=== kristall session ended ===")
}

// run is the main loop: forwards screen events to the input system and redraws on a fixed interval
func run(screen tcell.Screen, renderer *terminalRenderer, in *system.InputSystem, cfg parameter.Config) {
	events := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	})

	translator := input.NewTranslator()
	latch := input.NewLatch(cfg.Input.KeyHoldTimeout)

	frameTicker := time.NewTicker(cfg.Engine.FrameInterval)
	defer frameTicker.Stop()

	for {
		select {
		case raw, ok := <-events:
			if !ok {
				return
			}
			ev, ok := translator.FromTcell(raw)
			if !ok {
				continue
			}
			if quit(ev) {
				return
			}

			switch ev.Kind {
			case input.KeyPress:
				latch.Press(ev)
			case input.Resize:
				// Terminal cells are roughly twice as tall as wide
				ev.Height *= 2
				screen.Sync()
			case input.Focus:
				if !ev.Focused {
					for _, rel := range latch.ReleaseAll(ev.When) {
						in.Dispatch(rel)
					}
				}
			}
			in.Dispatch(ev)

		case now := <-frameTicker.C:
			for _, rel := range latch.Expire(now) {
				in.Dispatch(rel)
			}
			renderer.Draw()
		}
	}
}

func quit(ev input.Event) bool {
	if ev.Kind != input.KeyPress {
		return false
	}
	return ev.Key == input.KeyEscape || ev.Key == input.KeyCtrlC || ev.IsRune('q')
}
