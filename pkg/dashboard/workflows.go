package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/integron/console/pkg/models"
)

// WorkflowsAPI is the slice of the gateway the workflows controller needs.
type WorkflowsAPI interface {
	ListWorkflows(ctx context.Context) ([]models.Workflow, error)
	GetWorkflow(ctx context.Context, id string) (*models.Workflow, error)
	UpdateWorkflow(ctx context.Context, id string, workflow *models.Workflow) (*models.Workflow, error)
	DeleteWorkflow(ctx context.Context, id string) error
	ExecuteWorkflow(ctx context.Context, id string) (*models.Run, error)
	WorkflowStats(ctx context.Context, id string) (*models.WorkflowStats, error)
}

// Workflows caches the workflow list and exposes the actions the workflows
// view triggers.
type Workflows struct {
	api     WorkflowsAPI
	runs    *Runs
	dash    *Dashboard
	confirm Confirmer
	refresh time.Duration
	logger  *slog.Logger

	mu    sync.RWMutex
	cache []models.Workflow
}

func NewWorkflows(api WorkflowsAPI, runs *Runs, dash *Dashboard, confirm Confirmer, refresh time.Duration, logger *slog.Logger) *Workflows {
	return &Workflows{
		api:     api,
		runs:    runs,
		dash:    dash,
		confirm: confirm,
		refresh: refresh,
		logger:  logger,
	}
}

// Load replaces the cache with the latest remote snapshot.
func (w *Workflows) Load(ctx context.Context) error {
	workflows, err := w.api.ListWorkflows(ctx)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.cache = workflows
	w.mu.Unlock()

	return nil
}

// Items returns a copy of the cached list.
func (w *Workflows) Items() []models.Workflow {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]models.Workflow, len(w.cache))
	copy(out, w.cache)

	return out
}

// Run triggers remote execution and schedules a best-effort refresh of the
// runs cache after a fixed delay so the new run becomes visible. The
// refreshed list may still lag behind execution state changes that happen
// after the single refresh.
func (w *Workflows) Run(ctx context.Context, id string) (*models.Run, error) {
	run, err := w.api.ExecuteWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}

	if w.runs != nil {
		time.AfterFunc(w.refresh, func() {
			if err := w.runs.Load(context.Background()); err != nil {
				w.logger.Warn("Post-execution runs refresh failed", "workflow_id", id, "error", err)
			}
		})
	}

	return run, nil
}

// Delete removes a workflow after explicit confirmation, then reloads both
// the list and the dashboard aggregate so counts stay consistent.
func (w *Workflows) Delete(ctx context.Context, id string) error {
	if !w.confirm.Confirm("Delete workflow " + id + "?") {
		return ErrDeclined
	}

	if err := w.api.DeleteWorkflow(ctx, id); err != nil {
		return err
	}

	if err := w.Load(ctx); err != nil {
		w.logger.Warn("Workflow list reload failed after delete", "error", err)
	}

	if w.dash != nil {
		if err := w.dash.Load(ctx); err != nil {
			w.logger.Warn("Dashboard reload failed after delete", "error", err)
		}
	}

	return nil
}

// Activate flips a workflow to active via update.
func (w *Workflows) Activate(ctx context.Context, id string) error {
	return w.setStatus(ctx, id, models.WorkflowStatusActive)
}

// Deactivate pauses a workflow via update.
func (w *Workflows) Deactivate(ctx context.Context, id string) error {
	return w.setStatus(ctx, id, models.WorkflowStatusPaused)
}

func (w *Workflows) setStatus(ctx context.Context, id string, status models.WorkflowStatus) error {
	workflow, err := w.api.GetWorkflow(ctx, id)
	if err != nil {
		return err
	}

	workflow.Status = status

	if _, err := w.api.UpdateWorkflow(ctx, id, workflow); err != nil {
		return err
	}

	return w.Load(ctx)
}

// Stats fetches the authoritative per-workflow execution statistics.
func (w *Workflows) Stats(ctx context.Context, id string) (*models.WorkflowStats, error) {
	return w.api.WorkflowStats(ctx, id)
}
