package config

import "sort"

var Presets = map[string]*Scenario{
	"circle": DefaultScenario(),
	"diffdrive-arc": {
		Name: "diffdrive-arc", Dt: 0.01, Ticks: 800, Integrator: "rk4",
		Map: MapConfig{Width: 10, Height: 10, Resolution: 0.05},
		Robots: []RobotConfig{{
			UID:   0,
			Model: ModelConfig{Type: ModelDiffDrive, Radius: 0.1, Width: 0.5},
			Pose:  []float64{2, 2, 0},
			Pilot: PilotConfig{Type: PilotConstant, Control: []float64{8, 10}},
		}},
	},
	"ackermann-turn": {
		Name: "ackermann-turn", Dt: 0.01, Ticks: 1000, Integrator: "rk4",
		Map: MapConfig{Width: 20, Height: 20, Resolution: 0.1},
		Robots: []RobotConfig{{
			UID:   0,
			Model: ModelConfig{Type: ModelAckermann, Width: 1, Length: 2},
			Pose:  []float64{10, 4, 0, 0.3},
			Pilot: PilotConfig{Type: PilotConstant, Control: []float64{2, 0}},
		}},
	},
	"tricycle-turn": {
		Name: "tricycle-turn", Dt: 0.01, Ticks: 1000, Integrator: "midpoint",
		Map: MapConfig{Width: 20, Height: 20, Resolution: 0.1},
		Robots: []RobotConfig{{
			UID:   0,
			Model: ModelConfig{Type: ModelTricycle, Width: 1, Length: 1.5},
			Pose:  []float64{10, 4, 0, -0.4},
			Pilot: PilotConfig{Type: PilotConstant, Control: []float64{1.5, 0}},
		}},
	},
	"heading": {
		Name: "heading", Dt: 0.01, Ticks: 600, Integrator: "rk4",
		Map: MapConfig{Width: 10, Height: 10, Resolution: 0.05},
		Robots: []RobotConfig{
			{
				UID:   0,
				Model: ModelConfig{Type: ModelDubin, Speed: 1},
				Pose:  []float64{1, 1, 0},
				Pilot: PilotConfig{Type: PilotHeading, TargetHeading: 0.785, Kp: DefaultKp, Kd: DefaultKd},
			},
			{
				UID:   1,
				Model: ModelConfig{Type: ModelDiffDrive, Radius: 0.1, Width: 0.5},
				Pose:  []float64{1, 5, -1},
				Pilot: PilotConfig{Type: PilotHeading, TargetHeading: 0.5, Speed: 8, Kp: 4, Kd: DefaultKd},
			},
		},
	},
	"fleet": {
		Name: "fleet", Dt: 0.02, Ticks: 500, Integrator: "rk4",
		Map:       MapConfig{Width: 20, Height: 20, Resolution: 0.1},
		Obstacles: []ObstacleConfig{{X0: 9, Y0: 9, X1: 11, Y1: 11}},
		Robots: []RobotConfig{
			{
				UID:   0,
				Model: ModelConfig{Type: ModelDubin, Speed: 1.5},
				Pose:  []float64{4, 4, 0},
				Pilot: PilotConfig{Type: PilotConstant, Control: []float64{0.4}},
			},
			{
				UID:        1,
				Model:      ModelConfig{Type: ModelDiffDrive, Radius: 0.1, Width: 0.6},
				Pose:       []float64{16, 4, 1.57},
				Integrator: "euler",
				Pilot:      PilotConfig{Type: PilotConstant, Control: []float64{10, 12}},
			},
			{
				UID:   2,
				Model: ModelConfig{Type: ModelAckermann, Width: 1, Length: 2},
				Pose:  []float64{16, 16, 3.14, 0.2},
				Pilot: PilotConfig{Type: PilotConstant, Control: []float64{1, 0}},
			},
			{
				UID:   3,
				Model: ModelConfig{Type: ModelTricycle, Width: 1, Length: 1.5},
				Pose:  []float64{4, 16, -1.57, 0},
				Pilot: PilotConfig{Type: PilotZero},
			},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Scenario {
	sc, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *sc
	c.Obstacles = append([]ObstacleConfig(nil), sc.Obstacles...)
	c.Robots = make([]RobotConfig, len(sc.Robots))
	for i, r := range sc.Robots {
		r.Pose = append([]float64(nil), r.Pose...)
		r.Velocity = append([]float64(nil), r.Velocity...)
		r.Pilot.Control = append([]float64(nil), r.Pilot.Control...)
		c.Robots[i] = r
	}
	return &c
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
