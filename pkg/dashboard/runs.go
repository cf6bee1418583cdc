package dashboard

import (
	"context"
	"sync"

	"github.com/integron/console/pkg/models"
)

// RunsAPI is the slice of the gateway the runs controller needs.
type RunsAPI interface {
	ListRuns(ctx context.Context, workflowID string, limit int) ([]models.Run, error)
	GetRun(ctx context.Context, id string) (*models.Run, error)
	RunLogs(ctx context.Context, id string) ([]models.RunLog, error)
}

// Runs caches the execution list. Runs are read-only from the console's
// perspective: they are created by triggering execution and observed here.
type Runs struct {
	api   RunsAPI
	limit int

	mu    sync.RWMutex
	cache []models.Run
}

func NewRuns(api RunsAPI, limit int) *Runs {
	return &Runs{
		api:   api,
		limit: limit,
	}
}

// Load replaces the cache with the latest remote snapshot. There is no
// cancellation: a load that resolves after the user navigated away still
// commits, so a late response can overwrite a newer one.
func (r *Runs) Load(ctx context.Context) error {
	runs, err := r.api.ListRuns(ctx, "", r.limit)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.cache = runs
	r.mu.Unlock()

	return nil
}

// LoadForWorkflow replaces the cache with the runs of one workflow.
func (r *Runs) LoadForWorkflow(ctx context.Context, workflowID string) error {
	runs, err := r.api.ListRuns(ctx, workflowID, r.limit)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.cache = runs
	r.mu.Unlock()

	return nil
}

// Items returns a copy of the cached list.
func (r *Runs) Items() []models.Run {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Run, len(r.cache))
	copy(out, r.cache)

	return out
}

// Get fetches one run's detail record.
func (r *Runs) Get(ctx context.Context, id string) (*models.Run, error) {
	return r.api.GetRun(ctx, id)
}

// Logs fetches the log lines of one run.
func (r *Runs) Logs(ctx context.Context, id string) ([]models.RunLog, error) {
	return r.api.RunLogs(ctx, id)
}
