package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/matching"
)

type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

type failedFilter struct {
	toggle
}

// NewFailed creates a filter that removes pairs which could not be scored.
func NewFailed() Filter {
	return &failedFilter{}
}

func (f *failedFilter) Name() string { return "failed" }

func (f *failedFilter) Validate(*Config) error { return nil }

func (f *failedFilter) Apply(_ context.Context, deps Deps, r *matching.Results) (*matching.Results, Step, error) {
	initial := r.Len()

	kept := make([]*matching.Result, 0, initial)
	var dropped []string
	for _, item := range r.Items {
		if item.Failed() {
			dropped = append(dropped, item.JobDescription)
			continue
		}
		kept = append(kept, item)
	}
	r.Items = kept

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding pairs that failed to score",
			zap.Strings("excluded_job_descriptions", dropped),
			zap.Int("pairs_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(dropped), Left: r.Len()}, nil
}

func (f *failedFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}

type minimumScoreFilter struct {
	toggle
	minimum float64
}

// NewMinimumScore creates a filter that removes pairs scoring below the configured percentage.
func NewMinimumScore() Filter {
	return &minimumScoreFilter{}
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Validate(cfg *Config) error {
	f.minimum = 0
	if cfg == nil {
		return nil
	}
	if cfg.MinimumScore < -100 || cfg.MinimumScore > 100 {
		return fmt.Errorf("minimum score must be a percentage, got %.2f", cfg.MinimumScore)
	}
	f.minimum = cfg.MinimumScore
	return nil
}

func (f *minimumScoreFilter) Apply(_ context.Context, deps Deps, r *matching.Results) (*matching.Results, Step, error) {
	initial := r.Len()

	kept := make([]*matching.Result, 0, initial)
	var dropped []string
	for _, item := range r.Items {
		if !item.Failed() && item.Percent < f.minimum {
			dropped = append(dropped, item.JobDescription)
			continue
		}
		kept = append(kept, item)
	}
	r.Items = kept

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding pairs below minimum score",
			zap.Float64("minimum_score", f.minimum),
			zap.Strings("excluded_job_descriptions", dropped),
			zap.Int("pairs_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(dropped), Left: r.Len()}, nil
}

func (f *minimumScoreFilter) Status() Status {
	details := map[string]string{
		"minimum_score": fmt.Sprintf("%.2f", f.minimum),
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type topFilter struct {
	toggle
	top int
}

// NewTop creates a filter that sorts pairs by score and keeps the best N.
func NewTop() Filter {
	return &topFilter{}
}

func (f *topFilter) Name() string { return "top" }

func (f *topFilter) Validate(cfg *Config) error {
	f.top = 0
	if cfg == nil {
		return nil
	}
	if cfg.Top < 0 {
		return fmt.Errorf("top must not be negative, got %d", cfg.Top)
	}
	f.top = cfg.Top
	return nil
}

func (f *topFilter) Apply(_ context.Context, deps Deps, r *matching.Results) (*matching.Results, Step, error) {
	initial := r.Len()

	r.Sort()
	if f.top == 0 || initial <= f.top {
		return r, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	var dropped []string
	for _, item := range r.Items[f.top:] {
		dropped = append(dropped, item.JobDescription)
	}
	r.Items = r.Items[:f.top]

	if deps.Logger != nil {
		deps.Logger.Info("keeping best pairs only",
			zap.Int("top", f.top),
			zap.Strings("excluded_job_descriptions", dropped),
		)
	}

	return r, Step{Initial: initial, Dropped: len(dropped), Left: r.Len()}, nil
}

func (f *topFilter) Status() Status {
	details := map[string]string{}
	if f.top > 0 {
		details["top"] = strconv.Itoa(f.top)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
