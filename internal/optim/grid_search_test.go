package optim

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/shrenikm/Morphac/internal/config"
	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/experiment"
)

func headingBuilder(ticks int) Builder {
	return func(params map[string]float64) (*experiment.Experiment, error) {
		sc := config.GetPreset("heading")
		sc.Ticks = ticks
		sc.Robots[0].Pilot.Kp = params["kp"]
		sc.Robots[0].Pilot.Kd = params["kd"]
		return experiment.New(sc)
	}
}

func TestNewGridSearch(t *testing.T) {
	g, err := NewGridSearch([]string{"kp", "kd"}, [][]float64{{0, 1, 2}, {0, 0.1}})
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 6 {
		t.Errorf("expected 6 grid points, got %d", g.Size())
	}

	if _, err := NewGridSearch([]string{"kp"}, nil); !errors.Is(err, constructs.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := NewGridSearch([]string{"kp"}, [][]float64{{}}); !errors.Is(err, constructs.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSearchHeadingGains(t *testing.T) {
	g, _ := NewGridSearch([]string{"kp", "kd"}, [][]float64{{0, 2}, {0.1}})

	// kp=0 with a non-zero kd never turns, so the error stays at 0.785.
	best, err := g.Search(context.Background(), headingBuilder(200), HeadingError(0, 0.785))
	if err != nil {
		t.Fatal(err)
	}
	if best.Params["kp"] != 2 {
		t.Errorf("expected kp=2 to win, got %v", best.Params)
	}
	if best.Value <= 0 || best.Value >= 0.785 {
		t.Errorf("expected error below the initial offset, got %f", best.Value)
	}
	if names := SortedNames(best.Params); len(names) != 2 || names[0] != "kd" {
		t.Errorf("unexpected names %v", names)
	}
}

func TestSearchSkipsFailures(t *testing.T) {
	g, _ := NewGridSearch([]string{"kp"}, [][]float64{{-1, 2}})
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		if params["kp"] < 0 {
			return nil, errors.Wrap(constructs.ErrInvalidArgument, "negative gain")
		}
		return headingBuilder(50)(params)
	}

	best, err := g.Search(context.Background(), build, Metric(0, "distance"))
	if err != nil {
		t.Fatal(err)
	}
	if best.Params["kp"] != 2 {
		t.Errorf("expected the valid point, got %v", best.Params)
	}

	g, _ = NewGridSearch([]string{"kp"}, [][]float64{{-1}})
	if _, err := g.Search(context.Background(), build, Metric(0, "distance")); !errors.Is(err, constructs.ErrInvalidArgument) {
		t.Errorf("expected the build error, got %v", err)
	}
}

func TestSearchCancelled(t *testing.T) {
	g, _ := NewGridSearch([]string{"kp"}, [][]float64{{1, 2}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Search(ctx, headingBuilder(10), Metric(0, "distance")); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestObjectives(t *testing.T) {
	e, err := headingBuilder(10)(map[string]float64{"kp": 2})
	if err != nil {
		t.Fatal(err)
	}
	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Metric(0, "nope")(res); !errors.Is(err, constructs.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
	if _, err := Metric(9, "distance")(res); !errors.Is(err, constructs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := HeadingError(9, 0)(res); !errors.Is(err, constructs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
