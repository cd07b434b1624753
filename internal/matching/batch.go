package matching

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/ats-matcher/internal/document"
)

const defaultConcurrency = 4

// Batch scores one resume against every job description in parallel.
// Results follow the order of jds. A pair that fails is recorded on its
// result and does not stop the others; cancelling ctx aborts the batch.
func Batch(ctx context.Context, m *Matcher, resume document.Document, jds []document.Document, concurrency int) (*Results, error) {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	results := &Results{Items: make([]*Result, len(jds))}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, jd := range jds {
		i, jd := i, jd
		g.Go(func() error {
			result, err := m.Match(gctx, resume, jd)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
					return err
				}

				m.logger.Warn("pair failed",
					zap.String("resume", resume.Name),
					zap.String("job_description", jd.Name),
					zap.Error(err),
				)

				result = &Result{
					Resume:         resume.Name,
					JobDescription: jd.Name,
					Mode:           m.Mode(),
					Source:         m.source,
					Error:          err.Error(),
					Err:            err,
				}
			}

			results.Items[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
