package assets

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/emoji-vend/internal/logger"
	"github.com/Faultbox/emoji-vend/pkg/math"
)

// DefaultScene is the built-in scene descriptor.
const DefaultScene = "scene.yaml"

// Material is a flat-shaded surface.
type Material struct {
	Color             [3]float32 `yaml:"color"`
	Emissive          [3]float32 `yaml:"emissive"`
	EmissiveIntensity float32    `yaml:"emissive_intensity"`
}

// DefaultMaterial is used for any material key the scene does not define.
var DefaultMaterial = Material{Color: [3]float32{0.7, 0.7, 0.7}}

// GlowColor is the emissive tint of a selected button (#ffaaee).
var GlowColor = [3]float32{1, 0xaa / 255.0, 0xee / 255.0}

// GlowIntensity is the emissive strength of a selected button.
const GlowIntensity = 0.25

// WithGlow returns mat with the selection glow applied or removed.
func WithGlow(mat Material, active bool) Material {
	if active {
		mat.Emissive = GlowColor
		mat.EmissiveIntensity = GlowIntensity
	} else {
		mat.Emissive = [3]float32{}
		mat.EmissiveIntensity = 0
	}
	return mat
}

// Node is one box mesh in the scene tree. At most one of Item, Button and
// Face is set; they bind the node to the machine's state.
type Node struct {
	Name     string     `yaml:"name"`
	Material string     `yaml:"material"`
	Position [3]float32 `yaml:"position"`
	Size     [3]float32 `yaml:"size"`
	Item     string     `yaml:"item,omitempty"`
	Button   string     `yaml:"button,omitempty"`
	Face     string     `yaml:"face,omitempty"`
	HoverX   *float32   `yaml:"hover_x,omitempty"` // button x while hovered or selected
}

// Pos returns the node's position as a vector.
func (n Node) Pos() math.Vec3 {
	return math.V3(n.Position[0], n.Position[1], n.Position[2])
}

// Extent returns the node's size as a vector.
func (n Node) Extent() math.Vec3 {
	return math.V3(n.Size[0], n.Size[1], n.Size[2])
}

// Scene is the static node and material tree for the machine.
type Scene struct {
	Offset    [3]float32          `yaml:"offset"` // applied to every node
	Materials map[string]Material `yaml:"materials"`
	Nodes     []Node              `yaml:"nodes"`

	warnMu sync.Mutex
	warned map[string]bool
}

// ParseScene decodes a YAML scene descriptor.
func ParseScene(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	if len(s.Nodes) == 0 {
		return nil, fmt.Errorf("parsing scene: no nodes")
	}
	seen := make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.Name == "" {
			return nil, fmt.Errorf("parsing scene: node without a name")
		}
		if seen[n.Name] {
			return nil, fmt.Errorf("parsing scene: duplicate node %q", n.Name)
		}
		seen[n.Name] = true
	}
	return &s, nil
}

// LoadScene reads and parses the scene at path. An empty path loads DefaultScene.
func (m *Manager) LoadScene(path string) (*Scene, error) {
	if path == "" {
		path = DefaultScene
	}
	data, err := m.Load(path)
	if err != nil {
		return nil, err
	}
	return ParseScene(data)
}

// RootOffset returns the scene-wide translation.
func (s *Scene) RootOffset() math.Vec3 {
	return math.V3(s.Offset[0], s.Offset[1], s.Offset[2])
}

// Material returns the named material. Unknown names fall back to
// DefaultMaterial and are logged once.
func (s *Scene) Material(name string) Material {
	if mat, ok := s.Materials[name]; ok {
		return mat
	}

	s.warnMu.Lock()
	if s.warned == nil {
		s.warned = make(map[string]bool)
	}
	first := !s.warned[name]
	s.warned[name] = true
	s.warnMu.Unlock()

	if first {
		logger.Warn("missing material, using default", zap.String("material", name))
	}
	return DefaultMaterial
}

// Node returns the node with the given name.
func (s *Scene) Node(name string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}
