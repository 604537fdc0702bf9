package assets

import (
	"strings"
	"testing"
)

func TestParseSceneErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"invalid yaml", "nodes: [", "parsing scene"},
		{"no nodes", "offset: [0, 0, 0]\n", "no nodes"},
		{"unnamed node", "nodes:\n  - { material: a }\n", "without a name"},
		{"duplicate", "nodes:\n  - { name: a }\n  - { name: a }\n", "duplicate node"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestBuiltinScene(t *testing.T) {
	s, err := NewManager().LoadScene("")
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}

	items := map[string]bool{}
	buttons := map[string]bool{}
	faces := map[string]bool{}
	for _, n := range s.Nodes {
		if n.Item != "" {
			items[n.Item] = true
		}
		if n.Button != "" {
			buttons[n.Button] = true
			if n.HoverX == nil {
				t.Errorf("button node %s has no hover_x", n.Name)
			}
		}
		if n.Face != "" {
			faces[n.Face] = true
		}
		if _, ok := s.Materials[n.Material]; !ok {
			t.Errorf("node %s uses undefined material %q", n.Name, n.Material)
		}
	}
	if len(items) != 5 {
		t.Errorf("scene binds %d items, want 5", len(items))
	}
	if len(buttons) != 7 {
		t.Errorf("scene binds %d buttons, want 7", len(buttons))
	}
	if len(faces) != 5 {
		t.Errorf("scene binds %d face parts, want 5", len(faces))
	}

	ok, found := s.Node("button_ok")
	if !found {
		t.Fatal("button_ok missing")
	}
	if ok.Position[0] != 2.083 || *ok.HoverX != 2.0 {
		t.Errorf("button_ok x = %v hover %v, want 2.083 hover 2.0", ok.Position[0], *ok.HoverX)
	}
	if off := s.RootOffset(); off.Y != -3 {
		t.Errorf("RootOffset = %+v, want y -3", off)
	}
}

func TestMaterialFallback(t *testing.T) {
	s, err := ParseScene([]byte("materials:\n  red: { color: [1, 0, 0] }\nnodes:\n  - { name: a, material: red }\n"))
	if err != nil {
		t.Fatalf("ParseScene: %v", err)
	}

	if got := s.Material("red"); got.Color != [3]float32{1, 0, 0} {
		t.Errorf("Material(red) = %+v", got)
	}
	for i := 0; i < 2; i++ {
		if got := s.Material("nope"); got != DefaultMaterial {
			t.Errorf("Material(nope) = %+v, want default", got)
		}
	}
	if !s.warned["nope"] {
		t.Error("missing material was not recorded")
	}
}

func TestWithGlow(t *testing.T) {
	base := Material{Color: [3]float32{0.2, 0.3, 0.4}}

	on := WithGlow(base, true)
	if on.Emissive != GlowColor || on.EmissiveIntensity != GlowIntensity {
		t.Errorf("glow on = %+v", on)
	}
	if on.Color != base.Color {
		t.Errorf("glow changed base color: %+v", on.Color)
	}

	off := WithGlow(on, false)
	if off.Emissive != [3]float32{} || off.EmissiveIntensity != 0 {
		t.Errorf("glow off = %+v", off)
	}
}
