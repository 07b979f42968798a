package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shrenikm/Morphac/internal/logging"
)

var (
	dataDir  string
	logLevel string
	logJSON  bool

	presets       []string
	ticks         int
	integrator    string
	noSave        bool
	uid           int
	format        string
	outPath       string
	manualUID     int
	manualStep    float64
	ticksPerFrame int
	maxTicks      int
	theme         string
	tunePreset    string
	kpRange       []float64
	kdRange       []float64
)

var logger = zap.NewNop()

func main() {
	rootCmd := &cobra.Command{
		Use:           "morphac",
		Short:         "kinematic robot playground",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New("morphac", logLevel, logJSON)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".morphac", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as json lines")

	runCmd := &cobra.Command{
		Use:   "run [scenario.yaml...]",
		Short: "run scenarios and store the results",
		Long: "Runs every scenario file and preset given. Several scenarios run concurrently.\n" +
			"Without arguments the default scenario runs.",
		RunE: runScenarios,
	}
	runCmd.Flags().StringSliceVar(&presets, "preset", nil, "preset scenario (repeatable)")
	runCmd.Flags().IntVar(&ticks, "ticks", 0, "override the tick count")
	runCmd.Flags().StringVar(&integrator, "integrator", "", "override the default integrator (euler, midpoint, rk4)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the results")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset scenarios",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the state of one robot in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&uid, "uid", 0, "robot uid")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as an image or json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "png", "png, svg, pdf or json")
	exportCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default <run_id>.<format>, json defaults to stdout)")

	liveCmd := &cobra.Command{
		Use:   "live [scenario.yaml]",
		Short: "run a scenario in the terminal",
		Long:  "Animates a scenario file or preset. Without either a preset picker is shown.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringSliceVar(&presets, "preset", nil, "preset scenario")
	liveCmd.Flags().IntVar(&manualUID, "manual", -1, "drive this robot with the arrow keys")
	liveCmd.Flags().Float64Var(&manualStep, "step", 0.25, "manual control change per key press")
	liveCmd.Flags().IntVar(&ticksPerFrame, "speed", 1, "ticks per frame")
	liveCmd.Flags().IntVar(&maxTicks, "ticks", 0, "stop after this many ticks (default from scenario, -1 for no limit)")
	liveCmd.Flags().StringVar(&theme, "theme", "ocean", "color theme")

	tuneCmd := &cobra.Command{
		Use:   "tune [scenario.yaml]",
		Short: "grid search the gains of a heading pilot",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tuneGains,
	}
	tuneCmd.Flags().StringVar(&tunePreset, "preset", "heading", "preset scenario, ignored when a file is given")
	tuneCmd.Flags().IntVar(&uid, "uid", 0, "robot uid")
	tuneCmd.Flags().IntVar(&ticks, "ticks", 0, "override the tick count")
	tuneCmd.Flags().Float64SliceVar(&kpRange, "kp", []float64{0.5, 1, 2, 4, 8}, "proportional gains to try")
	tuneCmd.Flags().Float64SliceVar(&kdRange, "kd", []float64{0, 0.1, 0.5}, "derivative gains to try")

	rootCmd.AddCommand(runCmd, listCmd, presetsCmd, plotCmd, exportCmd, liveCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
