package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/blockfall/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string {
	return g.id
}

func (g *stubGame) Title() string {
	return "Stub " + g.id
}

func (g *stubGame) Reset(core.RuntimeConfig) {}

func (g *stubGame) Step(core.InputFrame) core.StepResult {
	return core.StepResult{}
}

func (g *stubGame) Render(*core.Screen) {}

func (g *stubGame) State() core.GameState {
	return core.GameState{}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub", func() Game { return &stubGame{id: "zz_stub"} })

	if !Exists("zz_stub") {
		t.Fatal("expected zz_stub to be registered")
	}
	g, err := Create("zz_stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_stub" {
		t.Errorf("ID = %q", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz_stub" {
			found = info.Title == "Stub zz_stub"
		}
	}
	if !found {
		t.Error("List() missing zz_stub with its title")
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no_such_game")
	if !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create() error = %v, want ErrUnknownGame", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
}

func TestListKeepsRegistrationOrder(t *testing.T) {
	Register("zz_order_b", func() Game { return &stubGame{id: "zz_order_b"} })
	Register("zz_order_a", func() Game { return &stubGame{id: "zz_order_a"} })

	var order []string
	for _, info := range List() {
		if info.ID == "zz_order_a" || info.ID == "zz_order_b" {
			order = append(order, info.ID)
		}
	}
	if len(order) != 2 || order[0] != "zz_order_b" || order[1] != "zz_order_a" {
		t.Errorf("List() order = %v, want [zz_order_b zz_order_a]", order)
	}
}
