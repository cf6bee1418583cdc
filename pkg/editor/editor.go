// Package editor owns the in-progress workflow draft: its lifecycle, step
// operations, and the validate-then-save path to the remote store.
package editor

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"github.com/integron/console/pkg/models"
)

// API is the slice of the gateway the editor needs.
type API interface {
	GetWorkflow(ctx context.Context, id string) (*models.Workflow, error)
	CreateWorkflow(ctx context.Context, workflow *models.Workflow) (*models.Workflow, error)
	UpdateWorkflow(ctx context.Context, id string, workflow *models.Workflow) (*models.Workflow, error)
	ExecuteWorkflow(ctx context.Context, id string) (*models.Run, error)
	UseTemplate(ctx context.Context, id string) (*models.Workflow, error)
}

// SchemaSource resolves the declared config schema of a service action, if
// any. The catalog cache implements it; a nil source disables schema
// checks.
type SchemaSource interface {
	SchemaFor(service, action string) map[string]any
}

// SaveResult reports the outcome of Save. RunErr is set when the save
// succeeded but the requested execution did not; the save is never undone.
type SaveResult struct {
	Workflow *models.Workflow
	Run      *models.Run
	RunErr   error
}

// Editor mutates a single draft. Multiple independent editors can exist;
// nothing is shared between instances.
type Editor struct {
	api      API
	schemas  SchemaSource
	validate *validator.Validate
	logger   *slog.Logger

	mu    sync.Mutex
	draft models.Workflow
	ids   *stepIDs
}

func New(api API, schemas SchemaSource, logger *slog.Logger) *Editor {
	e := &Editor{
		api:      api,
		schemas:  schemas,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
	e.reset()

	return e
}

func (e *Editor) reset() {
	e.draft = models.Workflow{
		Trigger: models.Trigger{Type: models.TriggerTypeManual},
		Status:  models.WorkflowStatusDraft,
		Steps:   []models.Step{},
	}
	e.ids = newStepIDs()
}

// NewWorkflow resets the draft to an empty, id-less workflow with a manual
// trigger.
func (e *Editor) NewWorkflow() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reset()
}

// Discard drops the current draft.
func (e *Editor) Discard() {
	e.NewWorkflow()
}

// LoadForEdit fetches a workflow and copies it into the draft. The remote
// id is retained so a later Save becomes an update.
func (e *Editor) LoadForEdit(ctx context.Context, id string) error {
	workflow, err := e.api.GetWorkflow(ctx, id)
	if err != nil {
		return err
	}

	e.adopt(workflow)

	return nil
}

// FromTemplate instantiates a template on the server and loads the created
// workflow as the draft.
func (e *Editor) FromTemplate(ctx context.Context, templateID string) error {
	workflow, err := e.api.UseTemplate(ctx, templateID)
	if err != nil {
		return err
	}

	e.adopt(workflow)

	return nil
}

func (e *Editor) adopt(workflow *models.Workflow) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reset()
	e.draft = *workflow
	e.draft.Steps = make([]models.Step, len(workflow.Steps))
	copy(e.draft.Steps, workflow.Steps)

	for _, step := range e.draft.Steps {
		e.ids.claim(step.ID)
	}
}

// Draft returns a copy of the current draft.
func (e *Editor) Draft() models.Workflow {
	e.mu.Lock()
	defer e.mu.Unlock()

	draft := e.draft
	draft.Steps = make([]models.Step, len(e.draft.Steps))
	copy(draft.Steps, e.draft.Steps)

	return draft
}

func (e *Editor) SetName(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.draft.Name = name
}

func (e *Editor) SetDescription(description string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.draft.Description = description
}

func (e *Editor) SetTrigger(trigger models.Trigger) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.draft.Trigger = trigger
}

// AddStep validates service, action, and raw config, then appends a step
// with a freshly generated unique id. On any violation the draft is left
// unmodified. An empty rawConfig means an empty config.
func (e *Editor) AddStep(service, action, rawConfig string) (*models.Step, error) {
	const op = "add step"

	if service == "" {
		return nil, newValidationError(op, "service", ErrServiceRequired)
	}

	if action == "" {
		return nil, newValidationError(op, "action", ErrActionRequired)
	}

	config := map[string]any{}

	if rawConfig != "" {
		if err := json.Unmarshal([]byte(rawConfig), &config); err != nil {
			return nil, newValidationError(op, "config", ErrConfigInvalid)
		}
	}

	if err := e.checkSchema(op, service, action, config); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	step := models.Step{
		ID:      e.ids.generate(),
		Service: service,
		Action:  action,
		Config:  config,
	}
	e.draft.Steps = append(e.draft.Steps, step)

	return &step, nil
}

// checkSchema validates the parsed config against the action's declared
// schema, when one exists.
func (e *Editor) checkSchema(op, service, action string, config map[string]any) error {
	if e.schemas == nil {
		return nil
	}

	schema := e.schemas.SchemaFor(service, action)
	if schema == nil {
		return nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewGoLoader(config),
	)
	if err != nil {
		e.logger.Warn("Schema validation unavailable for action",
			"service", service, "action", action, "error", err)

		return nil
	}

	if !result.Valid() {
		return newValidationError(op, "config", ErrConfigSchema)
	}

	return nil
}

// RemoveStep deletes the step with the given id. Removing an unknown id is
// a no-op. Removed ids are never reused within the draft.
func (e *Editor) RemoveStep(stepID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, step := range e.draft.Steps {
		if step.ID == stepID {
			e.draft.Steps = append(e.draft.Steps[:i], e.draft.Steps[i+1:]...)

			return
		}
	}
}

// MoveStep shifts a step by delta positions, clamped to the list bounds.
// Unknown ids are a no-op.
func (e *Editor) MoveStep(stepID string, delta int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	from := -1

	for i, step := range e.draft.Steps {
		if step.ID == stepID {
			from = i

			break
		}
	}

	if from < 0 || delta == 0 {
		return
	}

	to := from + delta
	if to < 0 {
		to = 0
	}

	if to > len(e.draft.Steps)-1 {
		to = len(e.draft.Steps) - 1
	}

	step := e.draft.Steps[from]
	rest := append(e.draft.Steps[:from], e.draft.Steps[from+1:]...)
	e.draft.Steps = append(rest[:to], append([]models.Step{step}, rest[to:]...)...)
}

// Save validates the draft and persists it: a create when the draft has no
// id, an update otherwise. No network call happens on a validation
// failure. When andRun is set, a successful save is followed by an execute
// call whose failure is reported through SaveResult.RunErr without
// affecting the save outcome.
func (e *Editor) Save(ctx context.Context, andRun bool) (*SaveResult, error) {
	const op = "save workflow"

	e.mu.Lock()
	draft := e.draft
	draft.Steps = make([]models.Step, len(e.draft.Steps))
	copy(draft.Steps, e.draft.Steps)
	e.mu.Unlock()

	if err := e.validate.Struct(draft); err != nil {
		return nil, translateFieldError(op, err)
	}

	var (
		saved *models.Workflow
		err   error
	)

	if draft.ID == "" {
		saved, err = e.api.CreateWorkflow(ctx, &draft)
	} else {
		saved, err = e.api.UpdateWorkflow(ctx, draft.ID, &draft)
	}

	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.draft.ID = saved.ID
	e.mu.Unlock()

	result := &SaveResult{Workflow: saved}

	if andRun {
		run, runErr := e.api.ExecuteWorkflow(ctx, saved.ID)
		result.Run = run
		result.RunErr = runErr

		if runErr != nil {
			e.logger.Warn("Workflow saved but execution failed",
				"workflow_id", saved.ID, "error", runErr)
		}
	}

	return result, nil
}

// translateFieldError maps validator violations onto the package's
// sentinel errors so callers can test with errors.Is.
func translateFieldError(op string, err error) error {
	var fieldErrors validator.ValidationErrors

	if errors.As(err, &fieldErrors) {
		for _, fe := range fieldErrors {
			switch fe.StructField() {
			case "Name":
				return newValidationError(op, "name", ErrNameRequired)
			case "Steps":
				return newValidationError(op, "steps", ErrNoSteps)
			}
		}
	}

	return newValidationError(op, "", err)
}
