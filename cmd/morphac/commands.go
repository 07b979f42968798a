package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shrenikm/Morphac/internal/config"
	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/experiment"
	"github.com/shrenikm/Morphac/internal/export"
	"github.com/shrenikm/Morphac/internal/footprint"
	"github.com/shrenikm/Morphac/internal/optim"
	"github.com/shrenikm/Morphac/internal/pilots"
	"github.com/shrenikm/Morphac/internal/sim"
	"github.com/shrenikm/Morphac/internal/storage"
	"github.com/shrenikm/Morphac/internal/viz"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// loadScenarios resolves files and presets in the order given. With neither
// the default scenario is used.
func loadScenarios(files, names []string) ([]*config.Scenario, error) {
	var out []*config.Scenario
	for _, f := range files {
		sc, err := config.Load(f)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	for _, name := range names {
		sc := config.GetPreset(name)
		if sc == nil {
			return nil, errors.Wrapf(constructs.ErrKeyNotFound,
				"unknown preset %q (available: %s)", name, strings.Join(config.ListPresets(), ", "))
		}
		out = append(out, sc)
	}
	if len(out) == 0 {
		out = append(out, config.DefaultScenario())
	}
	return out, nil
}

func runScenarios(cmd *cobra.Command, args []string) error {
	scenarios, err := loadScenarios(args, presets)
	if err != nil {
		return err
	}

	exps := make([]*experiment.Experiment, len(scenarios))
	jobs := make([]sim.Job, len(scenarios))
	for i, sc := range scenarios {
		if ticks > 0 {
			sc.Ticks = ticks
		}
		if integrator != "" {
			sc.Integrator = integrator
		}
		e, err := experiment.New(sc, experiment.WithLogger(logger))
		if err != nil {
			return err
		}
		exps[i] = e
		jobs[i] = sim.Job{Runner: e.Runner(), Ticks: sc.Ticks}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var results []*sim.Result
	if len(exps) == 1 {
		res, err := exps[0].Run(ctx)
		results = []*sim.Result{res}
		if err != nil {
			return err
		}
	} else {
		results, err = sim.RunBatch(ctx, jobs)
		if err != nil {
			return err
		}
	}

	st := storage.New(dataDir)
	for i, res := range results {
		sc := scenarios[i]
		fmt.Println(titleStyle.Render(fmt.Sprintf("%s  %d ticks, %.2fs", sc.Name, res.Ticks, sc.Duration())))
		if err := printSummary(res); err != nil {
			return err
		}
		if noSave {
			fmt.Println()
			continue
		}
		id, err := st.Save(sc, res)
		if err != nil {
			return err
		}
		logger.Info("run saved", zap.String("id", id), zap.String("dir", st.Dir()))
		fmt.Println(okStyle.Render("saved " + id))
		fmt.Println()
	}
	return nil
}

func printSummary(res *sim.Result) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	names := metricNames(res)
	fmt.Fprintf(w, "UID\tFINAL STATE\t%s\n", strings.ToUpper(strings.Join(names, "\t")))
	for _, uid := range res.UIDs() {
		final, err := res.Final(uid)
		if err != nil {
			return err
		}
		row := []string{fmt.Sprint(uid), final.String()}
		for _, n := range names {
			row = append(row, fmt.Sprintf("%.4f", res.Metrics[uid][n]))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func metricNames(res *sim.Result) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range res.Metrics {
		for n := range m {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	sort.Strings(names)
	return names
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tTICKS\tDT\tROBOTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Dt,
			len(run.Robots),
		)
	}
	return w.Flush()
}

func presetInfo(name string) string {
	sc := config.GetPreset(name)
	if sc == nil {
		return ""
	}
	var kinds []string
	for _, r := range sc.Robots {
		kinds = append(kinds, r.Model.Type)
	}
	return fmt.Sprintf("%d robot(s): %s", len(sc.Robots), strings.Join(kinds, ", "))
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTICKS\tOBSTACLES\tROBOTS")
	for _, name := range config.ListPresets() {
		sc := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", name, sc.Ticks, len(sc.Obstacles), presetInfo(name))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	rm, err := meta.Robot(uid)
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(runID, uid)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return errors.Errorf("run %s has no states for robot %d", runID, uid)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s robot %d (%s, %s)", runID, uid, rm.Model, rm.Integrator)))
	dim := len(states[0])
	for c := 0; c < dim; c++ {
		series := make([]float64, len(states))
		for i, s := range states {
			series[i] = s[c]
		}
		caption := fmt.Sprintf("p%d", c)
		if c >= rm.PoseSize {
			caption = fmt.Sprintf("v%d", c-rm.PoseSize)
		}
		graph := asciigraph.Plot(series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	res, err := st.LoadResult(runID)
	if err != nil {
		return err
	}
	sc, err := st.LoadScenario(runID)
	if err != nil {
		return err
	}

	if format == "json" {
		d, err := export.NewData(sc.Name, res)
		if err != nil {
			return err
		}
		if outPath == "" {
			return export.WriteJSON(os.Stdout, d)
		}
		if err := export.SaveJSON(outPath, d); err != nil {
			return err
		}
		fmt.Println(okStyle.Render("wrote " + outPath))
		return nil
	}

	// Rebuilding the scenario recovers the map and the robot footprints.
	e, err := experiment.New(sc)
	if err != nil {
		return err
	}
	state := e.Playground().State()
	fps := make(map[int]*footprint.Footprint)
	for _, id := range res.UIDs() {
		r, err := state.GetRobot(id)
		if err != nil {
			return err
		}
		fps[id] = r.Footprint()
	}

	path := outPath
	if path == "" {
		path = runID + "." + format
	} else if filepath.Ext(path) == "" {
		path += "." + format
	}
	opts := export.PlotOptions{
		Title:      fmt.Sprintf("%s (%d ticks)", sc.Name, res.Ticks),
		Map:        state.Map(),
		Footprints: fps,
	}
	if err := export.SavePlot(path, res, opts); err != nil {
		return err
	}
	fmt.Println(okStyle.Render("wrote " + path))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	var sc *config.Scenario
	switch {
	case len(args) == 1:
		var err error
		if sc, err = config.Load(args[0]); err != nil {
			return err
		}
	case len(presets) > 0:
		if sc = config.GetPreset(presets[0]); sc == nil {
			return errors.Wrapf(constructs.ErrKeyNotFound, "unknown preset %q", presets[0])
		}
	default:
		names := config.ListPresets()
		info := make(map[string]string, len(names))
		for _, n := range names {
			info[n] = presetInfo(n)
		}
		name, err := viz.Pick("MORPHAC PRESETS", names, info)
		if err != nil {
			return err
		}
		if name == "" {
			return nil
		}
		sc = config.GetPreset(name)
	}

	viz.SetTheme(theme)

	var (
		expOpts []experiment.Option
		vizOpts = []viz.Option{viz.WithTicksPerFrame(ticksPerFrame)}
	)
	if manualUID >= 0 {
		rc, err := robotConfig(sc, manualUID)
		if err != nil {
			return err
		}
		model, err := experiment.NewRegistry().GetModel(rc.Model)
		if err != nil {
			return err
		}
		pilot, ctrl, err := pilots.Manual(model.ControlInputSize())
		if err != nil {
			return err
		}
		expOpts = append(expOpts, experiment.WithPilot(manualUID, pilot))
		vizOpts = append(vizOpts, viz.WithManual(manualUID, ctrl, manualStep))
	}

	switch {
	case maxTicks > 0:
		vizOpts = append(vizOpts, viz.WithMaxTicks(maxTicks))
	case maxTicks == 0:
		vizOpts = append(vizOpts, viz.WithMaxTicks(sc.Ticks))
	}

	// The terminal belongs to the live view, so logging stays off.
	e, err := experiment.New(sc, expOpts...)
	if err != nil {
		return err
	}
	m := viz.NewModel(e.Playground(), vizOpts...)
	if err := viz.Run(m); err != nil {
		return err
	}
	if m.Err() != nil {
		fmt.Println(errStyle.Render("run failed: " + m.Err().Error()))
	}
	return m.Err()
}

func robotConfig(sc *config.Scenario, id int) (config.RobotConfig, error) {
	for _, r := range sc.Robots {
		if r.UID == id {
			return r, nil
		}
	}
	return config.RobotConfig{}, errors.Wrapf(constructs.ErrNotFound, "scenario %q has no robot %d", sc.Name, id)
}

func tuneGains(cmd *cobra.Command, args []string) error {
	var names []string
	if len(args) == 0 {
		names = []string{tunePreset}
	}
	scenarios, err := loadScenarios(args, names)
	if err != nil {
		return err
	}
	base := scenarios[0]
	rc, err := robotConfig(base, uid)
	if err != nil {
		return err
	}
	if rc.Pilot.Type != config.PilotHeading {
		return errors.Wrapf(constructs.ErrInvalidArgument,
			"robot %d uses the %q pilot, tuning needs %q", uid, rc.Pilot.Type, config.PilotHeading)
	}

	g, err := optim.NewGridSearch([]string{"kp", "kd"}, [][]float64{kpRange, kdRange})
	if err != nil {
		return err
	}
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		sc, err := loadScenarios(args, names)
		if err != nil {
			return nil, err
		}
		s := sc[0]
		if ticks > 0 {
			s.Ticks = ticks
		}
		for i := range s.Robots {
			if s.Robots[i].UID == uid {
				s.Robots[i].Pilot.Kp = params["kp"]
				s.Robots[i].Pilot.Kd = params["kd"]
			}
		}
		return experiment.New(s, experiment.WithLogger(logger))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("tuning", zap.String("scenario", base.Name), zap.Int("uid", uid), zap.Int("points", g.Size()))
	best, err := g.Search(ctx, build, optim.HeadingError(uid, rc.Pilot.TargetHeading))
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s robot %d, %d grid points", base.Name, uid, g.Size())))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, n := range optim.SortedNames(best.Params) {
		fmt.Fprintf(w, "%s\t%g\n", n, best.Params[n])
	}
	fmt.Fprintf(w, "mean heading error\t%.4f rad\n", best.Value)
	return w.Flush()
}
