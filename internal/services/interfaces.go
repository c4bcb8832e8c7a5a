package services

import (
	"lifeos/internal/models"
)

// UserServicer defines the contract for user and profile business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	CreateUserWithProfile(req models.UserCreate) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	ChangePassword(userID uint, currentPassword, newPassword string) error
	UpdateProfile(userID uint, req models.ProfileUpdate) (*models.User, error)
	CompleteSetup(userID uint, req models.SetupRequest) (*models.User, error)
	DeleteUser(userID uint) error
}

// TaskServicer defines the contract for task business logic.
type TaskServicer interface {
	GetUserTasks(userID uint) ([]models.Task, error)
	GetTaskByID(userID, taskID uint) (*models.Task, error)
	CreateTask(userID uint, req models.TaskCreate) (*models.Task, error)
	UpdateTask(userID, taskID uint, req models.TaskUpdate) (*models.Task, error)
	DeleteTask(userID, taskID uint) error
}

// FinanceServicer defines the contract for finance entry business logic.
type FinanceServicer interface {
	GetUserFinances(userID uint) ([]models.FinanceEntry, error)
	CreateFinance(userID uint, req models.FinanceCreate) (*models.FinanceEntry, error)
	DeleteFinance(userID, entryID uint) error
}

// ResourceServicer defines the contract for resource and planner business
// logic. Planner entries are resources of type planner keyed by weekday.
type ResourceServicer interface {
	GetUserResources(userID uint) ([]models.Resource, error)
	GetResourceByID(userID, resourceID uint) (*models.Resource, error)
	CreateResource(userID uint, req models.ResourceCreate) (*models.Resource, error)
	UpdateResource(userID, resourceID uint, req models.ResourceUpdate) (*models.Resource, error)
	DeleteResource(userID, resourceID uint) error
	GetUserPlans(userID uint) ([]models.Resource, error)
	UpsertPlan(userID uint, day, note string) (*models.Resource, error)
}
