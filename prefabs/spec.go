package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type TransformSpec struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

type MoveProfileSpec struct {
	Speed     float64 `yaml:"speed"`
	AccelRate float64 `yaml:"accel_rate"`
	TurnRate  float64 `yaml:"turn_rate"`
}

type ColliderSpec struct {
	Radius     float64 `yaml:"radius"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
}

type HeadtrackSpec struct {
	Radius       float64 `yaml:"radius"`
	MaxAngle     float64 `yaml:"max_angle"`
	ExtendMult   float64 `yaml:"extend_mult"`
	SmoothRate   float64 `yaml:"smooth_rate"`
	ScanInterval float64 `yaml:"scan_interval"`
}

type BridgeSpec struct {
	InputSmoothRate float64  `yaml:"input_smooth_rate"`
	AimLayerRate    float64  `yaml:"aim_layer_rate"`
	FlavorPool      []string `yaml:"flavor_pool"`
}

type ClipEventSpec struct {
	Name string  `yaml:"name"`
	At   float64 `yaml:"at"`
}

type ClipSpec struct {
	Length   float64         `yaml:"length"`
	Loop     bool            `yaml:"loop"`
	Fallback string          `yaml:"fallback"`
	Events   []ClipEventSpec `yaml:"events"`
}

type ReticleSpec struct {
	SpreadRate float64 `yaml:"spread_rate"`
	MinSpread  float64 `yaml:"min_spread"`
	MaxSpread  float64 `yaml:"max_spread"`
}

type PlayerSpec struct {
	Name           string                     `yaml:"name"`
	Transform      TransformSpec              `yaml:"transform"`
	Profiles       map[string]MoveProfileSpec `yaml:"profiles"`
	MoveThreshold  float64                    `yaml:"move_threshold"`
	RunThreshold   float64                    `yaml:"run_threshold"`
	FlavorMinWait  float64                    `yaml:"flavor_min_wait"`
	FlavorMaxWait  float64                    `yaml:"flavor_max_wait"`
	CannedSequence string                     `yaml:"canned_sequence"`
	StartClip      string                     `yaml:"start_clip"`
	Collider       ColliderSpec               `yaml:"collider"`
	Headtrack      HeadtrackSpec              `yaml:"headtrack"`
	Bridge         BridgeSpec                 `yaml:"bridge"`
	Reticle        ReticleSpec                `yaml:"reticle"`
	Clips          map[string]ClipSpec        `yaml:"clips"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	data, err := Load("player.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load player.yaml: %w", err)
	}
	var spec PlayerSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal player.yaml: %w", err)
	}
	return &spec, nil
}

type CameraProfileSpec struct {
	OffsetX        float64 `yaml:"offset_x"`
	OffsetY        float64 `yaml:"offset_y"`
	OffsetZ        float64 `yaml:"offset_z"`
	ChaseRate      float64 `yaml:"chase_rate"`
	CorrectionRate float64 `yaml:"correction_rate"`
	Fov            float64 `yaml:"fov"`
}

type CameraSpec struct {
	Name       string                       `yaml:"name"`
	Profiles   map[string]CameraProfileSpec `yaml:"profiles"`
	YawSpeed   float64                      `yaml:"yaw_speed"`
	PitchSpeed float64                      `yaml:"pitch_speed"`
	PitchMin   float64                      `yaml:"pitch_min"`
	PitchMax   float64                      `yaml:"pitch_max"`
	RateBlend  float64                      `yaml:"rate_blend"`
	CannedRate float64                      `yaml:"canned_rate"`
	StartYaw   float64                      `yaml:"start_yaw"`
	StartPitch float64                      `yaml:"start_pitch"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	data, err := Load("camera.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load camera.yaml: %w", err)
	}
	var spec CameraSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal camera.yaml: %w", err)
	}
	return &spec, nil
}

type ObstacleSpec struct {
	Name   string     `yaml:"name"`
	X      float64    `yaml:"x"`
	Z      float64    `yaml:"z"`
	Width  float64    `yaml:"width"`
	Depth  float64    `yaml:"depth"`
	Height float64    `yaml:"height"`
	Color  *YAMLColor `yaml:"color"`
}

type LookTargetPlacementSpec struct {
	Name string  `yaml:"name"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Z    float64 `yaml:"z"`
}

type ArenaSpec struct {
	Name        string                    `yaml:"name"`
	GroundWidth float64                   `yaml:"ground_width"`
	GroundDepth float64                   `yaml:"ground_depth"`
	Obstacles   []ObstacleSpec            `yaml:"obstacles"`
	LookTargets []LookTargetPlacementSpec `yaml:"look_targets"`
	PlayerSpawn TransformSpec             `yaml:"player_spawn"`
}

func LoadArenaSpec() (*ArenaSpec, error) {
	data, err := Load("arena.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load arena.yaml: %w", err)
	}
	var spec ArenaSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal arena.yaml: %w", err)
	}
	return &spec, nil
}

type ProjectileSpec struct {
	Name       string  `yaml:"name"`
	Speed      float64 `yaml:"speed"`
	Radius     float64 `yaml:"radius"`
	Mass       float64 `yaml:"mass"`
	TTL        float64 `yaml:"ttl"`
	Penetrates bool    `yaml:"penetrates"`
}

type ProjectilesSpec struct {
	Default string                    `yaml:"default"`
	Types   map[string]ProjectileSpec `yaml:"types"`
}

func LoadProjectilesSpec() (*ProjectilesSpec, error) {
	data, err := Load("projectiles.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load projectiles.yaml: %w", err)
	}
	var spec ProjectilesSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal projectiles.yaml: %w", err)
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
