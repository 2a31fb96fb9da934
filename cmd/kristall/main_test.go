package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/kristall/component"
	"github.com/lixenwraith/kristall/engine"
	"github.com/lixenwraith/kristall/input"
	"github.com/lixenwraith/kristall/status"
)

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	logFile := setupLogging(false)
	if logFile != nil {
		t.Error("Expected nil log file when debug=false")
		logFile.Close()
	}

	if output := log.Writer(); output != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", output)
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	defer os.RemoveAll(logDir)

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file when debug=true")
	}
	defer logFile.Close()
	defer log.SetOutput(io.Discard)

	logPath := filepath.Join(logDir, logFileName)
	log.Println("Test log message")

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
	if output := log.Writer(); output == os.Stdout || output == os.Stderr {
		t.Error("Log output should not be stdout or stderr")
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	defer os.RemoveAll(logDir)

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("Failed to create logs directory: %v", err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("Failed to write large log file: %v", err)
	}

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()
	defer log.SetOutput(io.Discard)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}
	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != logFileName && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("Expected new log file to be smaller than %d bytes, got %d", maxLogSize, info.Size())
	}
}

func TestProject(t *testing.T) {
	vp := mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100).Mul4(
		mgl32.LookAtV(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))

	x, y, _, ok := project(vp, mgl32.Vec3{}, 81, 41)
	if !ok {
		t.Fatal("Expected origin to be visible")
	}
	if x != 40 || y != 20 {
		t.Errorf("Expected origin at screen center (40,20), got (%d,%d)", x, y)
	}

	if _, _, _, ok := project(vp, mgl32.Vec3{0, 0, 20}, 81, 41); ok {
		t.Error("Expected point behind the camera to be culled")
	}
}

func TestRendererDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 40)

	r := newTerminalRenderer(screen, status.NewRegistry())
	r.Sink("cube").Publish(mgl32.Translate3D(0, 0, 0))

	target := engine.MustGet[component.Transform](
		engine.WithComponent(engine.NewEntityBuilder(), component.NewTransform()).Build())
	r.SetCamera(engine.MustGet[component.Camera](
		engine.WithComponent(engine.NewEntityBuilder(), component.NewThirdPersonCamera(target, nil)).Build()))

	r.Draw()

	found := false
	cells, width, _ := screen.GetContents()
	for i, c := range cells {
		if i >= width && len(c.Runes) > 0 && c.Runes[0] == '■' {
			found = true
		}
	}
	if !found {
		t.Error("Expected a drawn cube glyph")
	}
}

func TestQuit(t *testing.T) {
	now := time.Now()
	if !quit(input.Pressed(input.KeyEscape, now)) || !quit(input.PressedRune('Q', now)) {
		t.Error("Expected Escape and q to quit")
	}
	if quit(input.PressedRune('w', now)) || quit(input.PressedRune('q', now).Released(now)) {
		t.Error("Expected w and release events not to quit")
	}
}
