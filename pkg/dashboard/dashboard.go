// Package dashboard holds the list controllers of the console. Each
// controller owns an explicit cache replaced wholesale by a successful
// load; a failed load leaves the previous cache untouched.
package dashboard

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/integron/console/pkg/models"
)

// Confirmer gates destructive actions. Implementations prompt the user;
// tests substitute a canned answer.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to a Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Summary is the aggregate the dashboard view renders. SuccessRate is a
// sampled statistic over the most recent page of runs, not an
// authoritative figure over all runs ever executed.
type Summary struct {
	WorkflowCount int
	ActiveCount   int
	RunCount      int
	SuccessRate   int
}

// API is the slice of the gateway the dashboard aggregate needs.
type API interface {
	ListWorkflows(ctx context.Context) ([]models.Workflow, error)
	ListRuns(ctx context.Context, workflowID string, limit int) ([]models.Run, error)
}

// Dashboard loads workflows and the most recent runs in parallel and
// derives the summary figures.
type Dashboard struct {
	api       API
	runSample int
	logger    *slog.Logger

	mu        sync.RWMutex
	workflows []models.Workflow
	recent    []models.Run
	summary   Summary
}

func New(api API, runSample int, logger *slog.Logger) *Dashboard {
	return &Dashboard{
		api:       api,
		runSample: runSample,
		logger:    logger,
	}
}

// Load fetches both inputs concurrently with all-or-nothing semantics: if
// either fetch fails nothing is committed, so the view never renders a mix
// of stale and fresh data.
func (d *Dashboard) Load(ctx context.Context) error {
	var (
		workflows []models.Workflow
		recent    []models.Run
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		workflows, err = d.api.ListWorkflows(groupCtx)

		return err
	})

	group.Go(func() error {
		var err error
		recent, err = d.api.ListRuns(groupCtx, "", d.runSample)

		return err
	})

	if err := group.Wait(); err != nil {
		return err
	}

	d.mu.Lock()
	d.workflows = workflows
	d.recent = recent
	d.summary = summarize(workflows, recent)
	d.mu.Unlock()

	return nil
}

// Summary returns the figures of the last successful load.
func (d *Dashboard) Summary() Summary {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.summary
}

// RecentRuns returns a copy of the sampled run list.
func (d *Dashboard) RecentRuns() []models.Run {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]models.Run, len(d.recent))
	copy(out, d.recent)

	return out
}

func summarize(workflows []models.Workflow, runs []models.Run) Summary {
	summary := Summary{
		WorkflowCount: len(workflows),
		RunCount:      len(runs),
	}

	for _, workflow := range workflows {
		if workflow.Status == models.WorkflowStatusActive {
			summary.ActiveCount++
		}
	}

	summary.SuccessRate = successRate(runs)

	return summary
}

// successRate is round(successful / total * 100), with an empty sample
// defined as 0.
func successRate(runs []models.Run) int {
	if len(runs) == 0 {
		return 0
	}

	succeeded := 0

	for _, run := range runs {
		if run.Status == models.RunStatusSuccess {
			succeeded++
		}
	}

	return int(math.Round(float64(succeeded) / float64(len(runs)) * 100))
}
