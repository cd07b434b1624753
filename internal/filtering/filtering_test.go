package filtering

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/ats-matcher/internal/matching"
)

func sampleResults() *matching.Results {
	failure := errors.New("empty job description")
	return &matching.Results{Items: []*matching.Result{
		{JobDescription: "backend.txt", Score: 0.42, Percent: 42},
		{JobDescription: "broken.txt", Err: failure, Error: failure.Error()},
		{JobDescription: "data.txt", Score: 0.81, Percent: 81},
		{JobDescription: "frontend.txt", Score: 0.12, Percent: 12},
		{JobDescription: "devops.txt", Score: 0.65, Percent: 65},
	}}
}

func names(r *matching.Results) []string {
	out := make([]string, 0, r.Len())
	for _, item := range r.Items {
		out = append(out, item.JobDescription)
	}
	return out
}

func TestRunDefaultSteps(t *testing.T) {
	t.Parallel()

	cfg := &Config{MinimumScore: 40, Top: 2}

	got, err := Run(context.Background(), cfg, Deps{}, Default(), sampleResults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := []string{"data.txt", "devops.txt"}; !reflect.DeepEqual(names(got), want) {
		t.Fatalf("expected %v, got %v", want, names(got))
	}
}

func TestRunLogsSteps(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	deps := Deps{Logger: zap.New(core)}

	steps := Default()
	DisableByName(steps, "top", "not configured")

	if _, err := Run(context.Background(), &Config{MinimumScore: 50}, deps, steps, sampleResults()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stepEntries := observed.FilterMessage("filter step").All()
	if len(stepEntries) != 2 {
		t.Fatalf("expected 2 step entries, got %d", len(stepEntries))
	}

	minimum := stepEntries[1].ContextMap()
	if minimum["name"] != "minimum_score" || minimum["dropped"] != int64(2) || minimum["left"] != int64(2) {
		t.Fatalf("unexpected minimum_score step fields: %v", minimum)
	}

	if observed.FilterMessage("filter disabled").Len() != 1 {
		t.Fatalf("expected disabled filter to be logged")
	}
}

func TestFailedFilter(t *testing.T) {
	t.Parallel()

	got, step, err := NewFailed().Apply(context.Background(), Deps{}, sampleResults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if step != (Step{Initial: 5, Dropped: 1, Left: 4}) {
		t.Fatalf("unexpected step: %+v", step)
	}

	for _, item := range got.Items {
		if item.Failed() {
			t.Fatalf("failed result %s left in list", item.JobDescription)
		}
	}
}

func TestMinimumScoreKeepsFailedForReporting(t *testing.T) {
	t.Parallel()

	f := NewMinimumScore()
	if err := f.Validate(&Config{MinimumScore: 60}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, step, err := f.Apply(context.Background(), Deps{}, sampleResults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := []string{"broken.txt", "data.txt", "devops.txt"}; !reflect.DeepEqual(names(got), want) {
		t.Fatalf("expected %v, got %v", want, names(got))
	}

	if step.Dropped != 2 {
		t.Fatalf("expected 2 dropped, got %d", step.Dropped)
	}
}

func TestTopFilter(t *testing.T) {
	t.Parallel()

	f := NewTop()
	if err := f.Validate(&Config{Top: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, step, err := f.Apply(context.Background(), Deps{}, sampleResults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if step.Dropped != 0 || got.Len() != 5 {
		t.Fatalf("expected nothing dropped, got %+v", step)
	}

	if got.Items[0].JobDescription != "data.txt" || got.Items[4].JobDescription != "broken.txt" {
		t.Fatalf("expected results sorted by score, got %v", names(got))
	}
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]*Config{
		"minimum above range": {MinimumScore: 120},
		"negative top":        {Top: -1},
	}

	for name, cfg := range tests {
		cfg := cfg
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := Run(context.Background(), cfg, Deps{}, Default(), sampleResults()); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	steps := Default()
	if err := steps[2].Validate(&Config{Top: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	DisableByName(steps, "minimum_score", "not configured")

	statuses := Describe(steps)
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}

	if !statuses[0].Enabled || statuses[0].Name != "failed" {
		t.Fatalf("unexpected failed status: %+v", statuses[0])
	}

	if statuses[1].Enabled || statuses[1].Reason != "not configured" {
		t.Fatalf("unexpected minimum_score status: %+v", statuses[1])
	}

	if statuses[2].Details["top"] != "3" {
		t.Fatalf("unexpected top status: %+v", statuses[2])
	}
}
