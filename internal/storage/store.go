// Package storage keeps recorded runs on disk: one directory per run holding
// metadata.json and one robot_<uid>.csv per robot.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/shrenikm/Morphac/internal/config"
	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/sim"
)

const (
	metadataFile = "metadata.json"
	scenarioFile = "scenario.yaml"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return errors.Wrap(os.MkdirAll(s.baseDir, 0755), "creating store")
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string          `json:"id"`
	Scenario  string          `json:"scenario"`
	Timestamp time.Time       `json:"timestamp"`
	Dt        float64         `json:"dt"`
	Ticks     int             `json:"ticks"`
	Width     float64         `json:"width"`
	Height    float64         `json:"height"`
	Robots    []RobotMetadata `json:"robots"`
}

type RobotMetadata struct {
	UID          int                `json:"uid"`
	Model        string             `json:"model"`
	Integrator   string             `json:"integrator"`
	Pilot        string             `json:"pilot"`
	PoseSize     int                `json:"pose_size"`
	VelocitySize int                `json:"velocity_size"`
	ControlSize  int                `json:"control_size"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Robot returns the metadata of robot uid.
func (m *RunMetadata) Robot(uid int) (*RobotMetadata, error) {
	for i := range m.Robots {
		if m.Robots[i].UID == uid {
			return &m.Robots[i], nil
		}
	}
	return nil, errors.Wrapf(constructs.ErrNotFound, "run %s has no robot %d", m.ID, uid)
}

func robotFile(uid int) string { return fmt.Sprintf("robot_%d.csv", uid) }

// Save writes a run and returns its id.
func (s *Store) Save(sc *config.Scenario, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", sc.Name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", errors.Wrap(err, "creating run directory")
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  sc.Name,
		Timestamp: now,
		Dt:        result.Dt,
		Ticks:     result.Ticks,
		Width:     sc.Map.Width,
		Height:    sc.Map.Height,
	}
	byUID := make(map[int]config.RobotConfig, len(sc.Robots))
	for _, rc := range sc.Robots {
		byUID[rc.UID] = rc
	}

	for _, uid := range result.UIDs() {
		traj := result.Trajectories[uid]
		controls := result.Controls[uid]
		rc := byUID[uid]

		rm := RobotMetadata{
			UID:          uid,
			Model:        rc.Model.Type,
			Integrator:   sc.RobotIntegrator(rc),
			Pilot:        rc.Pilot.Type,
			PoseSize:     traj.PoseSize(),
			VelocitySize: traj.VelocitySize(),
			Metrics:      result.Metrics[uid],
		}
		if len(controls) > 0 {
			rm.ControlSize = controls[0].Size()
		}
		meta.Robots = append(meta.Robots, rm)

		if err := writeRobotCSV(filepath.Join(runDir, robotFile(uid)), result.Times, traj, controls, rm); err != nil {
			return "", errors.WithMessagef(err, "robot %d", uid)
		}
	}

	if err := config.Save(filepath.Join(runDir, scenarioFile), sc); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating metadata")
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encoding metadata")
}

// writeRobotCSV writes one row per knot point. Control columns hold the
// control applied from that time on and are empty on the last row.
func writeRobotCSV(path string, times []float64, traj *constructs.Trajectory, controls []constructs.ControlInput, rm RobotMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating csv")
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"time"}
	for i := 0; i < rm.PoseSize; i++ {
		header = append(header, fmt.Sprintf("p%d", i))
	}
	for i := 0; i < rm.VelocitySize; i++ {
		header = append(header, fmt.Sprintf("v%d", i))
	}
	for i := 0; i < rm.ControlSize; i++ {
		header = append(header, fmt.Sprintf("u%d", i))
	}
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "writing csv header")
	}

	for i := 0; i < traj.Size(); i++ {
		s, err := traj.At(i)
		if err != nil {
			return err
		}
		row := []string{formatFloat(times[i])}
		for _, val := range s.Data() {
			row = append(row, formatFloat(val))
		}
		if i < len(controls) {
			for _, val := range controls[i].Data() {
				row = append(row, formatFloat(val))
			}
		} else {
			for j := 0; j < rm.ControlSize; j++ {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return errors.Wrap(err, "writing csv row")
		}
	}

	w.Flush()
	return errors.Wrap(w.Error(), "flushing csv")
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// List returns the metadata of every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, errors.Wrap(err, "listing runs")
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(constructs.ErrNotFound, "run %s", runID)
		}
		return nil, errors.Wrap(err, "reading metadata")
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(err, "decoding metadata of %s", runID)
	}
	return &meta, nil
}

// LoadScenario returns the scenario a run was recorded from.
func (s *Store) LoadScenario(runID string) (*config.Scenario, error) {
	sc, err := config.Load(filepath.Join(s.baseDir, runID, scenarioFile))
	if err != nil {
		return nil, errors.WithMessagef(err, "run %s", runID)
	}
	return sc, nil
}

type robotRecord struct {
	times    []float64
	states   [][]float64
	controls [][]float64
}

func (s *Store) readRobot(runID string, rm *RobotMetadata) (*robotRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, robotFile(rm.UID)))
	if err != nil {
		return nil, errors.Wrap(err, "opening csv")
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading csv")
	}

	rec := &robotRecord{}
	if len(records) < 2 {
		return rec, nil
	}

	dim := rm.PoseSize + rm.VelocitySize
	width := 1 + dim + rm.ControlSize
	for i, record := range records[1:] {
		if len(record) != width {
			return nil, errors.Wrapf(constructs.ErrDimensionMismatch, "row %d has %d columns, want %d", i+1, len(record), width)
		}
		values, err := parseRow(record[:1+dim])
		if err != nil {
			return nil, errors.WithMessagef(err, "row %d", i+1)
		}
		rec.times = append(rec.times, values[0])
		rec.states = append(rec.states, values[1:])

		if rm.ControlSize == 0 || record[1+dim] == "" {
			continue
		}
		u, err := parseRow(record[1+dim:])
		if err != nil {
			return nil, errors.WithMessagef(err, "row %d", i+1)
		}
		rec.controls = append(rec.controls, u)
	}
	return rec, nil
}

func parseRow(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for j, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "column %d", j)
		}
		out[j] = v
	}
	return out, nil
}

// LoadStates returns the states and times recorded for robot uid.
func (s *Store) LoadStates(runID string, uid int) ([][]float64, []float64, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	rm, err := meta.Robot(uid)
	if err != nil {
		return nil, nil, err
	}
	rec, err := s.readRobot(runID, rm)
	if err != nil {
		return nil, nil, err
	}
	return rec.states, rec.times, nil
}

// LoadResult rebuilds the recorded result of a run.
func (s *Store) LoadResult(runID string) (*sim.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	res := &sim.Result{
		Ticks:        meta.Ticks,
		Dt:           meta.Dt,
		Trajectories: make(map[int]*constructs.Trajectory),
		Controls:     make(map[int][]constructs.ControlInput),
		Metrics:      make(map[int]map[string]float64),
	}

	for i := range meta.Robots {
		rm := &meta.Robots[i]
		rec, err := s.readRobot(runID, rm)
		if err != nil {
			return nil, errors.WithMessagef(err, "robot %d", rm.UID)
		}
		if len(rec.states) == 0 {
			return nil, errors.Wrapf(constructs.ErrNotFound, "run %s robot %d has no states", runID, rm.UID)
		}

		data := mat.NewDense(len(rec.states), rm.PoseSize+rm.VelocitySize, nil)
		for k, row := range rec.states {
			data.SetRow(k, row)
		}
		traj, err := constructs.TrajectoryFromData(data, rm.PoseSize, rm.VelocitySize)
		if err != nil {
			return nil, err
		}

		controls := make([]constructs.ControlInput, len(rec.controls))
		for k, u := range rec.controls {
			controls[k] = constructs.ControlInputFrom(u...)
		}

		res.Trajectories[rm.UID] = traj
		res.Controls[rm.UID] = controls
		res.Metrics[rm.UID] = rm.Metrics
		if res.Times == nil {
			res.Times = rec.times
		}
	}
	return res, nil
}
