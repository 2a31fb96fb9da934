package engine

import "testing"

func TestEntityBuilderDefaults(t *testing.T) {
	e := NewEntityBuilder().Build()

	if e.Name() != DefaultEntityName {
		t.Errorf("Expected default name %q, got %q", DefaultEntityName, e.Name())
	}
	if !e.Enabled() {
		t.Error("Expected new entity to be enabled")
	}
	if e.Invalidated() {
		t.Error("Expected new entity not to be invalidated")
	}
	if e.ChildCount() != 0 {
		t.Errorf("Expected no children, got %d", e.ChildCount())
	}
}

func TestEntityBuilderComponents(t *testing.T) {
	b := NewEntityBuilder().WithName("thing")
	WithComponent(b, counter{Value: 1})
	WithComponent(b, label{Text: "hi"})
	// Same type replaces the previous value
	WithComponent(b, counter{Value: 2})
	e := b.Build()

	if len(e.ComponentTypes()) != 2 {
		t.Errorf("Expected 2 component types, got %d", len(e.ComponentTypes()))
	}
	snap, _ := MustGet[counter](e).Snapshot()
	if snap.Value != 2 {
		t.Errorf("Expected replaced counter value 2, got %d", snap.Value)
	}
	if !Has[label](e) {
		t.Error("Expected label component")
	}
}

func TestEntityBuilderSealed(t *testing.T) {
	b := NewEntityBuilder()
	b.Build()

	defer func() {
		if recover() == nil {
			t.Error("Expected panic when adding a component after Build")
		}
	}()
	WithComponent(b, counter{})
}

func TestEntityBuilderChildren(t *testing.T) {
	child := NewEntityBuilder().WithName("prebuilt").Build()
	e := NewEntityBuilder().
		WithChild(NewEntityBuilder().WithName("first")).
		WithChildEntity(child).
		WithChildren(NewEntityBuilder().WithName("third"), NewEntityBuilder().WithName("fourth")).
		Build()

	got := names(e.Children())
	want := []string{"first", "prebuilt", "third", "fourth"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected child %d to be %s, got %s", i, want[i], got[i])
		}
	}
}

func TestFromEntitySharesComponents(t *testing.T) {
	src := WithComponent(NewEntityBuilder().WithName("src"), counter{Value: 5}).Build()

	copyEntity := WithComponent(FromEntity(src).WithName("copy"), label{Text: "extra"}).Build()

	if copyEntity.Name() != "copy" {
		t.Errorf("Expected renamed copy, got %s", copyEntity.Name())
	}
	if !MustGet[counter](src).Same(MustGet[counter](copyEntity)) {
		t.Error("Expected reopened entity to share the component handle")
	}
	if Has[label](src) {
		t.Error("Expected source component set to stay fixed")
	}
}
