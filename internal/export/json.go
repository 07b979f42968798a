package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/shrenikm/Morphac/internal/sim"
)

type RobotData struct {
	UID          int                `json:"uid"`
	PoseSize     int                `json:"pose_size"`
	VelocitySize int                `json:"velocity_size"`
	States       [][]float64        `json:"states"`
	Controls     [][]float64        `json:"controls"`
	Metrics      map[string]float64 `json:"metrics,omitempty"`
}

type Data struct {
	Scenario string      `json:"scenario"`
	Dt       float64     `json:"dt"`
	Ticks    int         `json:"ticks"`
	Times    []float64   `json:"times"`
	Robots   []RobotData `json:"robots"`
}

// NewData flattens a result into plain slices, robots in ascending UID order.
func NewData(scenario string, res *sim.Result) (*Data, error) {
	d := &Data{
		Scenario: scenario,
		Dt:       res.Dt,
		Ticks:    res.Ticks,
		Times:    res.Times,
		Robots:   make([]RobotData, 0, len(res.Trajectories)),
	}
	for _, uid := range res.UIDs() {
		traj := res.Trajectories[uid]
		rd := RobotData{
			UID:          uid,
			PoseSize:     traj.PoseSize(),
			VelocitySize: traj.VelocitySize(),
			States:       make([][]float64, traj.Size()),
			Controls:     make([][]float64, len(res.Controls[uid])),
			Metrics:      res.Metrics[uid],
		}
		for k := range rd.States {
			s, err := traj.At(k)
			if err != nil {
				return nil, err
			}
			rd.States[k] = s.Data()
		}
		for k, u := range res.Controls[uid] {
			rd.Controls[k] = u.Data()
		}
		d.Robots = append(d.Robots, rd)
	}
	return d, nil
}

func WriteJSON(w io.Writer, d *Data) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(d), "encoding json")
}

func SaveJSON(path string, d *Data) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating json")
	}
	defer f.Close()
	return WriteJSON(f, d)
}
