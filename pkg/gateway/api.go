package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/integron/console/pkg/models"
)

// AuthResponse is the payload of a successful login or signup.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// SignupRequest carries the fields of a new account.
type SignupRequest struct {
	Name         string `json:"name"         validate:"required"`
	Email        string `json:"email"        validate:"required,email"`
	Password     string `json:"password"     validate:"required,min=8"`
	Organization string `json:"organization,omitempty"`
}

func (c *Client) Signup(ctx context.Context, form SignupRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/signup", nil, form, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var out AuthResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/login", nil, body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) ListWorkflows(ctx context.Context) ([]models.Workflow, error) {
	var out struct {
		Workflows []models.Workflow `json:"workflows"`
	}

	if err := c.Do(ctx, http.MethodGet, "/workflows", nil, nil, &out); err != nil {
		return nil, err
	}

	return out.Workflows, nil
}

func (c *Client) GetWorkflow(ctx context.Context, id string) (*models.Workflow, error) {
	var out models.Workflow
	if err := c.Do(ctx, http.MethodGet, "/workflows/"+id, nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// workflowEnvelope is the create/instantiate response: the assigned id plus
// the stored representation.
type workflowEnvelope struct {
	ID       string          `json:"id"`
	Workflow models.Workflow `json:"workflow"`
}

func (c *Client) CreateWorkflow(ctx context.Context, workflow *models.Workflow) (*models.Workflow, error) {
	var out workflowEnvelope
	if err := c.Do(ctx, http.MethodPost, "/workflows", nil, workflow, &out); err != nil {
		return nil, err
	}

	created := out.Workflow
	if created.ID == "" {
		created.ID = out.ID
	}

	return &created, nil
}

func (c *Client) UpdateWorkflow(ctx context.Context, id string, workflow *models.Workflow) (*models.Workflow, error) {
	var out models.Workflow
	if err := c.Do(ctx, http.MethodPut, "/workflows/"+id, nil, workflow, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) DeleteWorkflow(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, "/workflows/"+id, nil, nil, nil)
}

func (c *Client) ExecuteWorkflow(ctx context.Context, id string) (*models.Run, error) {
	body := map[string]any{"trigger_data": map[string]any{}}

	var out models.Run
	if err := c.Do(ctx, http.MethodPost, "/workflows/"+id+"/execute", nil, body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) WorkflowStats(ctx context.Context, id string) (*models.WorkflowStats, error) {
	var out models.WorkflowStats
	if err := c.Do(ctx, http.MethodGet, "/workflows/"+id+"/stats", nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) ListCredentials(ctx context.Context, service string) ([]models.Credential, error) {
	query := url.Values{}
	if service != "" {
		query.Set("service", service)
	}

	var out struct {
		Credentials []models.Credential `json:"credentials"`
	}

	if err := c.Do(ctx, http.MethodGet, "/credentials", query, nil, &out); err != nil {
		return nil, err
	}

	return out.Credentials, nil
}

func (c *Client) CreateCredential(ctx context.Context, credential *models.Credential) (*models.Credential, error) {
	var out models.Credential
	if err := c.Do(ctx, http.MethodPost, "/credentials", nil, credential, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) DeleteCredential(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, "/credentials/"+id, nil, nil, nil)
}

func (c *Client) ListServices(ctx context.Context, category, search string) ([]models.Service, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}

	if search != "" {
		query.Set("search", search)
	}

	var out struct {
		Services []models.Service `json:"services"`
	}

	if err := c.Do(ctx, http.MethodGet, "/services", query, nil, &out); err != nil {
		return nil, err
	}

	return out.Services, nil
}

func (c *Client) GetService(ctx context.Context, name string) (*models.Service, error) {
	var out models.Service
	if err := c.Do(ctx, http.MethodGet, "/services/"+name, nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) ListConnectors(ctx context.Context) ([]models.Connector, error) {
	var out struct {
		Connectors []models.Connector `json:"connectors"`
	}

	if err := c.Do(ctx, http.MethodGet, "/api/connectors", nil, nil, &out); err != nil {
		return nil, err
	}

	return out.Connectors, nil
}

func (c *Client) GetConnector(ctx context.Context, service string) (*models.Connector, error) {
	var out models.Connector
	if err := c.Do(ctx, http.MethodGet, "/api/connectors/"+service, nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) ListTemplates(ctx context.Context, category string) ([]models.Template, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}

	var out struct {
		Templates []models.Template `json:"templates"`
	}

	if err := c.Do(ctx, http.MethodGet, "/templates", query, nil, &out); err != nil {
		return nil, err
	}

	return out.Templates, nil
}

func (c *Client) GetTemplate(ctx context.Context, id string) (*models.Template, error) {
	var out models.Template
	if err := c.Do(ctx, http.MethodGet, "/templates/"+id, nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// UseTemplate instantiates a template as a new workflow on the server and
// returns the created workflow.
func (c *Client) UseTemplate(ctx context.Context, id string) (*models.Workflow, error) {
	var out workflowEnvelope
	if err := c.Do(ctx, http.MethodPost, "/templates/"+id+"/create", nil, nil, &out); err != nil {
		return nil, err
	}

	created := out.Workflow
	if created.ID == "" {
		created.ID = out.ID
	}

	return &created, nil
}

func (c *Client) ListRuns(ctx context.Context, workflowID string, limit int) ([]models.Run, error) {
	query := url.Values{}
	if workflowID != "" {
		query.Set("workflow_id", workflowID)
	}

	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var out struct {
		Runs []models.Run `json:"runs"`
	}

	if err := c.Do(ctx, http.MethodGet, "/runs", query, nil, &out); err != nil {
		return nil, err
	}

	return out.Runs, nil
}

func (c *Client) GetRun(ctx context.Context, id string) (*models.Run, error) {
	var out models.Run
	if err := c.Do(ctx, http.MethodGet, "/runs/"+id, nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) RunLogs(ctx context.Context, id string) ([]models.RunLog, error) {
	var out struct {
		Logs []models.RunLog `json:"logs"`
	}

	if err := c.Do(ctx, http.MethodGet, "/runs/"+id+"/logs", nil, nil, &out); err != nil {
		return nil, err
	}

	return out.Logs, nil
}

// HealthInfo is the liveness payload of GET /health.
type HealthInfo struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (c *Client) Health(ctx context.Context) (*HealthInfo, error) {
	var out HealthInfo
	if err := c.Do(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) SystemStatus(ctx context.Context) (*models.SystemStatus, error) {
	var out models.SystemStatus
	if err := c.Do(ctx, http.MethodGet, "/status", nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
