package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"lifeos/internal/models"
)

// ListTasks fetches every task of the user.
func (c *Client) ListTasks(ctx context.Context, userID uint) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.GetJSON(ctx, fmt.Sprintf("/tasks/%d", userID), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask adds a task.
func (c *Client) CreateTask(ctx context.Context, req models.TaskCreate) (*models.Task, error) {
	var task models.Task
	if err := c.PostJSON(ctx, "/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask replaces the editable fields of the task with the given id.
func (c *Client) UpdateTask(ctx context.Context, id uint, req models.TaskUpdate) (*models.Task, error) {
	var task models.Task
	if err := c.PutJSON(ctx, fmt.Sprintf("/tasks/%d", id), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id uint) error {
	return c.Delete(ctx, fmt.Sprintf("/tasks/%d", id))
}

// ListFinances fetches every finance entry of the user.
func (c *Client) ListFinances(ctx context.Context, userID uint) ([]models.FinanceEntry, error) {
	var entries []models.FinanceEntry
	if err := c.GetJSON(ctx, fmt.Sprintf("/finances/%d", userID), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateFinance logs an income or expense.
func (c *Client) CreateFinance(ctx context.Context, req models.FinanceCreate) (*models.FinanceEntry, error) {
	var entry models.FinanceEntry
	if err := c.PostJSON(ctx, "/finances", req, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteFinance removes a finance entry.
func (c *Client) DeleteFinance(ctx context.Context, id uint) error {
	return c.Delete(ctx, fmt.Sprintf("/finances/%d", id))
}

// ListResources fetches every resource of the user, planner entries included.
func (c *Client) ListResources(ctx context.Context, userID uint) ([]models.Resource, error) {
	var resources []models.Resource
	if err := c.GetJSON(ctx, fmt.Sprintf("/resources/%d", userID), &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// CreateResource adds a resource.
func (c *Client) CreateResource(ctx context.Context, req models.ResourceCreate) (*models.Resource, error) {
	var res models.Resource
	if err := c.PostJSON(ctx, "/resources", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateResource replaces the editable fields of a resource.
func (c *Client) UpdateResource(ctx context.Context, id uint, req models.ResourceUpdate) (*models.Resource, error) {
	var res models.Resource
	if err := c.PutJSON(ctx, fmt.Sprintf("/resources/%d", id), req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteResource removes a resource.
func (c *Client) DeleteResource(ctx context.Context, id uint) error {
	return c.Delete(ctx, fmt.Sprintf("/resources/%d", id))
}

// ListPlans fetches the planner entries of the user.
func (c *Client) ListPlans(ctx context.Context, userID uint) ([]models.Resource, error) {
	var plans []models.Resource
	if err := c.GetJSON(ctx, fmt.Sprintf("/planner/%d", userID), &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// UpsertPlan creates or updates the planner entry keyed by (user, day).
func (c *Client) UpsertPlan(ctx context.Context, userID uint, day, note string) (*models.Resource, error) {
	var plan models.Resource
	path := fmt.Sprintf("/planner/%d/%s", userID, url.PathEscape(day))
	if err := c.PutJSON(ctx, path, models.PlanUpsert{Note: note}, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// CreateUser creates a profile without going through registration.
func (c *Client) CreateUser(ctx context.Context, req models.UserCreate) (*models.User, error) {
	var user models.User
	if err := c.PostJSON(ctx, "/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser fetches a profile by id.
func (c *Client) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := c.GetJSON(ctx, fmt.Sprintf("/users/%d", id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser replaces the budget fields of a profile and returns the result.
func (c *Client) UpdateUser(ctx context.Context, id uint, req models.ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := c.PutJSON(ctx, fmt.Sprintf("/users/%d", id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CompleteSetup submits the setup wizard for the authenticated user.
func (c *Client) CompleteSetup(ctx context.Context, req models.SetupRequest) (*models.User, error) {
	var user models.User
	if err := c.PutJSON(ctx, "/users/setup", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
