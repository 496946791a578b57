package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is the generic prefab form: a named bag of component specs
// keyed by registry name. Typed prefabs (player, camera, arena) carry their
// own loaders; this form covers the small supporting entities.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-marshals one raw component block into its typed
// spec. The round trip through yaml keeps the registry free of per-type
// decoding code.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

type PhysicsBodyComponentSpec struct {
	Radius     float64 `yaml:"radius"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	Static     bool    `yaml:"static"`
	Occluder   bool    `yaml:"occluder"`
	Target     bool    `yaml:"target"`
}

type TTLComponentSpec struct {
	Seconds float64 `yaml:"seconds"`
}

type HeadtrackComponentSpec struct {
	Radius       float64 `yaml:"radius"`
	MaxAngle     float64 `yaml:"max_angle"`
	ExtendMult   float64 `yaml:"extend_mult"`
	SmoothRate   float64 `yaml:"smooth_rate"`
	ScanInterval float64 `yaml:"scan_interval"`
}

type WeaponPropComponentSpec struct {
	Visible bool `yaml:"visible"`
}

type CombatComponentSpec struct {
	CalmDelay float64 `yaml:"calm_delay"`
}

type ReticleComponentSpec struct {
	SpreadRate float64 `yaml:"spread_rate"`
	MinSpread  float64 `yaml:"min_spread"`
	MaxSpread  float64 `yaml:"max_spread"`
}
