package models

// Request and response bodies of the REST contract. The binding tags drive
// both gin binding on the server and the client's presence checks.

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email,max=255"`
	Password        string `json:"password" binding:"required,max=128"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	FirstName       string `json:"first_name,omitempty" binding:"max=100"`
	LastName        string `json:"last_name,omitempty" binding:"max=100"`
}

// RegisterResponse is returned by POST /auth/register
type RegisterResponse struct {
	Msg    string `json:"msg"`
	UserID uint   `json:"user_id"`
}

// LoginForm is the form-encoded body of POST /auth/login
type LoginForm struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// TokenResponse is returned by POST /auth/login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ChangePasswordRequest is the body of POST /auth/change-password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,max=128"`
}

// MessageResponse is the body of endpoints that only acknowledge.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// TaskCreate is the body of POST /tasks
type TaskCreate struct {
	UserID   uint         `json:"user_id" binding:"required"`
	Title    string       `json:"title" binding:"required,max=255"`
	Type     TaskType     `json:"type" binding:"omitempty,task_type"`
	Priority TaskPriority `json:"priority,omitempty" binding:"omitempty,task_priority"`
	DueDate  *string      `json:"due_date,omitempty"`
}

// TaskUpdate is the body of PUT /tasks/{id}; it replaces the editable fields.
type TaskUpdate struct {
	Title    string       `json:"title" binding:"required,max=255"`
	Type     TaskType     `json:"type" binding:"required,task_type"`
	Done     bool         `json:"done"`
	Priority TaskPriority `json:"priority,omitempty" binding:"omitempty,task_priority"`
	DueDate  *string      `json:"due_date,omitempty"`
}

// UpdateFromTask copies the editable fields of t.
func UpdateFromTask(t Task) TaskUpdate {
	return TaskUpdate{Title: t.Title, Type: t.Type, Done: t.Done, Priority: t.Priority, DueDate: t.DueDate}
}

// FinanceCreate is the body of POST /finances
type FinanceCreate struct {
	UserID   uint        `json:"user_id" binding:"required"`
	Type     FinanceType `json:"type" binding:"required,finance_type"`
	Category string      `json:"category" binding:"max=100"`
	Amount   float64     `json:"amount" binding:"gte=0"`
	Note     string      `json:"note,omitempty" binding:"max=500"`
}

// ResourceCreate is the body of POST /resources
type ResourceCreate struct {
	UserID uint           `json:"user_id" binding:"required"`
	Label  string         `json:"label" binding:"required,max=255"`
	Type   ResourceType   `json:"type" binding:"omitempty,resource_type"`
	URL    string         `json:"url" binding:"required"`
	Status ResourceStatus `json:"status,omitempty" binding:"omitempty,resource_status"`
}

// ResourceUpdate is the body of PUT /resources/{id}
type ResourceUpdate struct {
	Label    string         `json:"label" binding:"required,max=255"`
	Type     ResourceType   `json:"type" binding:"required,resource_type"`
	URL      string         `json:"url"`
	Status   ResourceStatus `json:"status" binding:"required,resource_status"`
	Category string         `json:"category,omitempty"`
	Note     string         `json:"note,omitempty"`
}

// UpdateFromResource copies the editable fields of r.
func UpdateFromResource(r Resource) ResourceUpdate {
	return ResourceUpdate{Label: r.Label, Type: r.Type, URL: r.URL, Status: r.Status, Category: r.Category, Note: r.Note}
}

// PlanUpsert is the body of PUT /planner/{user_id}/{day}. An empty note
// clears the plan but keeps the entry.
type PlanUpsert struct {
	Note string `json:"note" binding:"max=5000"`
}

// UserCreate is the body of POST /users
type UserCreate struct {
	Email         string        `json:"email" binding:"required,email,max=255"`
	Password      string        `json:"password" binding:"required"`
	MonthlyIncome Income        `json:"monthly_income"`
	FixedExpenses FixedExpenses `json:"fixed_expenses"`
	Currency      string        `json:"currency,omitempty" binding:"omitempty,iso4217"`
	DarkMode      bool          `json:"dark_mode"`
}

// ProfileUpdate is the body of PUT /users/{id}; it replaces the budget fields.
type ProfileUpdate struct {
	MonthlyIncome Income        `json:"monthly_income"`
	Currency      string        `json:"currency" binding:"required,iso4217"`
	DarkMode      bool          `json:"dark_mode"`
	FixedExpenses FixedExpenses `json:"fixed_expenses"`
}

// SetupRequest is the body of PUT /users/setup; it completes the profile.
type SetupRequest struct {
	FirstName     string        `json:"first_name" binding:"required,max=100"`
	LastName      string        `json:"last_name" binding:"max=100"`
	MonthlyIncome Income        `json:"monthly_income"`
	FixedExpenses FixedExpenses `json:"fixed_expenses"`
	Currency      string        `json:"currency" binding:"required,iso4217"`
	DarkMode      bool          `json:"dark_mode"`
	Goal          string        `json:"goal,omitempty" binding:"max=255"`
}
