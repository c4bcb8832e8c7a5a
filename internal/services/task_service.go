package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "lifeos/internal/errors"
	"lifeos/internal/models"
)

// taskService handles task-related business logic.
type taskService struct {
	db *gorm.DB
}

// NewTaskService creates a new TaskServicer.
func NewTaskService(db *gorm.DB) TaskServicer {
	return &taskService{db: db}
}

// GetUserTasks returns every task of the user in insertion order.
func (s *taskService) GetUserTasks(userID uint) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&tasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tasks, nil
}

// GetTaskByID retrieves a task by ID for a specific user
func (s *taskService) GetTaskByID(userID, taskID uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &task, nil
}

// CreateTask adds an open task. Type defaults to personal and priority to
// normal.
func (s *taskService) CreateTask(userID uint, req models.TaskCreate) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "task title is required")
	}

	task := &models.Task{
		UserID:   userID,
		Title:    title,
		Type:     req.Type,
		Priority: req.Priority,
		DueDate:  req.DueDate,
	}
	if task.Type == "" {
		task.Type = models.TaskTypePersonal
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityNormal
	}

	if err := s.db.Create(task).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return task, nil
}

// UpdateTask replaces the editable fields of a task.
func (s *taskService) UpdateTask(userID, taskID uint, req models.TaskUpdate) (*models.Task, error) {
	task, err := s.GetTaskByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	task.Title = strings.TrimSpace(req.Title)
	task.Type = req.Type
	task.Done = req.Done
	if req.Priority != "" {
		task.Priority = req.Priority
	}
	task.DueDate = req.DueDate

	if err := s.db.Save(task).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return task, nil
}

// DeleteTask removes a task of the user.
func (s *taskService) DeleteTask(userID, taskID uint) error {
	task, err := s.GetTaskByID(userID, taskID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(task).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
