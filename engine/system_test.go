package engine

import (
	"errors"
	"testing"
	"time"
)

// incrementEnv holds write guards over every counter
type incrementEnv struct {
	Frozen
	counters []*WriteGuard[counter]
}

// incrementSystem bumps every counter by one each tick
type incrementSystem struct {
	handles []Handle[counter]
	panicOn int
}

func (s *incrementSystem) Fetch(src EntityContainer) error {
	s.handles = s.handles[:0]
	for h := range Components[counter](src, true) {
		s.handles = append(s.handles, h)
	}
	if len(s.handles) == 0 {
		return ErrNoComponents
	}
	return nil
}

func (s *incrementSystem) Freeze() (*incrementEnv, error) {
	env := &incrementEnv{}
	for _, h := range s.handles {
		g, err := FreezeWrite(&env.Frozen, h)
		if err != nil {
			return nil, err
		}
		env.counters = append(env.counters, g)
	}
	return env, nil
}

func (s *incrementSystem) Run(env *incrementEnv, dt time.Duration) {
	for _, g := range env.counters {
		g.Get().Value++
		if s.panicOn != 0 && g.Get().Value == s.panicOn {
			panic("boom")
		}
	}
}

func counterWorld(values ...int) (*World, []Handle[counter]) {
	root := NewEntityBuilder().WithName("root")
	for _, v := range values {
		root.WithChild(WithComponent(NewEntityBuilder(), counter{Value: v}))
	}
	w := NewWorld(root.Build())
	var hs []Handle[counter]
	for h := range Components[counter](w, true) {
		hs = append(hs, h)
	}
	return w, hs
}

func TestTaskFetchNoComponents(t *testing.T) {
	w := NewWorld(NewEntityBuilder().Build())
	task := NewTask[*incrementEnv]("increment", &incrementSystem{})

	err := task.Fetch(w)
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected FetchError, got %v", err)
	}
	if !errors.Is(err, ErrNoComponents) {
		t.Errorf("Expected wrapped ErrNoComponents, got %v", err)
	}
}

func TestTaskTick(t *testing.T) {
	w, hs := counterWorld(1, 10)
	task := NewTask[*incrementEnv]("increment", &incrementSystem{})
	if err := task.Fetch(w); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := task.Tick(time.Millisecond); err != nil {
			t.Fatalf("Tick %d failed: %v", i, err)
		}
	}

	for i, want := range []int{4, 13} {
		snap, err := hs[i].Snapshot()
		if err != nil {
			t.Fatalf("Snapshot failed: %v", err)
		}
		if snap.Value != want {
			t.Errorf("Expected counter %d to be %d, got %d", i, want, snap.Value)
		}
	}
}

func TestTaskPanicPoisonsAndReleases(t *testing.T) {
	w, hs := counterWorld(0)
	task := NewTask[*incrementEnv]("increment", &incrementSystem{panicOn: 1})
	if err := task.Fetch(w); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	err := task.Tick(time.Millisecond)
	var panicErr *RunPanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("Expected RunPanicError, got %v", err)
	}
	if !hs[0].Poisoned() {
		t.Fatal("Expected component to be poisoned")
	}

	// Lock must have been released: a write attempt fails fast instead of blocking
	if _, err := hs[0].Write(); !errors.Is(err, ErrPoisoned) {
		t.Errorf("Expected ErrPoisoned, got %v", err)
	}

	// The next tick cannot freeze and is skipped
	err = task.Tick(time.Millisecond)
	var freezeErr *FreezeError
	if !errors.As(err, &freezeErr) {
		t.Errorf("Expected FreezeError, got %v", err)
	}

	hs[0].ClearPoison()
	if err := task.Tick(time.Millisecond); err != nil {
		t.Errorf("Expected tick to succeed after ClearPoison, got %v", err)
	}
}

func TestFreezeReleasesOnFailure(t *testing.T) {
	_, hs := counterWorld(0, 0)
	hs[1].c.poisoned.Store(true)

	var f Frozen
	if _, err := FreezeWrite(&f, hs[0]); err != nil {
		t.Fatalf("Freeze of healthy handle failed: %v", err)
	}
	if _, err := FreezeWrite(&f, hs[1]); err == nil {
		t.Fatal("Expected poisoned handle to fail")
	}
	if f.Held() != 0 {
		t.Errorf("Expected all guards released, %d held", f.Held())
	}

	// hs[0] must be writable again
	g, err := hs[0].Write()
	if err != nil {
		t.Fatalf("Expected released handle to be writable, got %v", err)
	}
	g.Release()
}
