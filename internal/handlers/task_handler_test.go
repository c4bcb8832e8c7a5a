package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "lifeos/internal/errors"
	"lifeos/internal/models"
)

type mockTaskService struct {
	getUserTasksFn func(userID uint) ([]models.Task, error)
	createTaskFn   func(userID uint, req models.TaskCreate) (*models.Task, error)
	updateTaskFn   func(userID, taskID uint, req models.TaskUpdate) (*models.Task, error)
	deleteTaskFn   func(userID, taskID uint) error
}

func (m *mockTaskService) GetUserTasks(userID uint) ([]models.Task, error) {
	if m.getUserTasksFn != nil {
		return m.getUserTasksFn(userID)
	}
	return []models.Task{}, nil
}

func (m *mockTaskService) GetTaskByID(userID, taskID uint) (*models.Task, error) {
	return &models.Task{Base: models.Base{ID: taskID}, UserID: userID}, nil
}

func (m *mockTaskService) CreateTask(userID uint, req models.TaskCreate) (*models.Task, error) {
	if m.createTaskFn != nil {
		return m.createTaskFn(userID, req)
	}
	return &models.Task{Base: models.Base{ID: 1}, UserID: userID, Title: req.Title, Type: req.Type}, nil
}

func (m *mockTaskService) UpdateTask(userID, taskID uint, req models.TaskUpdate) (*models.Task, error) {
	if m.updateTaskFn != nil {
		return m.updateTaskFn(userID, taskID, req)
	}
	return &models.Task{Base: models.Base{ID: taskID}, UserID: userID, Title: req.Title, Done: req.Done}, nil
}

func (m *mockTaskService) DeleteTask(userID, taskID uint) error {
	if m.deleteTaskFn != nil {
		return m.deleteTaskFn(userID, taskID)
	}
	return nil
}

func setupTaskRouter(handler *TaskHandler) *gin.Engine {
	r := gin.New()
	r.Use(injectUserID(1))
	r.POST("/tasks", handler.CreateTask)
	r.GET("/tasks/:id", handler.GetUserTasks)
	r.PUT("/tasks/:id", handler.UpdateTask)
	r.DELETE("/tasks/:id", handler.DeleteTask)
	return r
}

func TestTaskHandler_GetUserTasks(t *testing.T) {
	t.Run("returns the caller's tasks", func(t *testing.T) {
		svc := &mockTaskService{
			getUserTasksFn: func(userID uint) ([]models.Task, error) {
				return []models.Task{{Base: models.Base{ID: 4}, UserID: userID, Title: "Write report", Type: models.TaskTypeWork}}, nil
			},
		}
		r := setupTaskRouter(NewTaskHandler(svc))

		rec := doRequest(r, "GET", "/tasks/1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if body := rec.Body.String(); body[0] != '[' {
			t.Errorf("expected a JSON array, got %s", body)
		}
	})

	t.Run("returns empty array when no tasks", func(t *testing.T) {
		r := setupTaskRouter(NewTaskHandler(&mockTaskService{}))

		rec := doRequest(r, "GET", "/tasks/1", "")

		if rec.Body.String() != "[]" {
			t.Errorf("expected [], got %s", rec.Body.String())
		}
	})

	t.Run("returns 403 for another user's tasks", func(t *testing.T) {
		called := false
		svc := &mockTaskService{
			getUserTasksFn: func(uint) ([]models.Task, error) {
				called = true
				return nil, nil
			},
		}
		r := setupTaskRouter(NewTaskHandler(svc))

		rec := doRequest(r, "GET", "/tasks/2", "")

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "FORBIDDEN")
		if called {
			t.Error("service must not be reached for a foreign user id")
		}
	})

	t.Run("returns 400 for a non-numeric id", func(t *testing.T) {
		r := setupTaskRouter(NewTaskHandler(&mockTaskService{}))

		rec := doRequest(r, "GET", "/tasks/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTaskHandler_CreateTask(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		r := setupTaskRouter(NewTaskHandler(&mockTaskService{}))

		rec := doRequest(r, "POST", "/tasks", `{"user_id":1,"title":"Buy milk","type":"personal"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["title"] != "Buy milk" {
			t.Errorf("expected title 'Buy milk', got %v", result["title"])
		}
	})

	t.Run("returns 403 when user_id is someone else", func(t *testing.T) {
		r := setupTaskRouter(NewTaskHandler(&mockTaskService{}))

		rec := doRequest(r, "POST", "/tasks", `{"user_id":9,"title":"Buy milk"}`)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unknown type", func(t *testing.T) {
		r := setupTaskRouter(NewTaskHandler(&mockTaskService{}))

		rec := doRequest(r, "POST", "/tasks", `{"user_id":1,"title":"Buy milk","type":"chores"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on missing title", func(t *testing.T) {
		r := setupTaskRouter(NewTaskHandler(&mockTaskService{}))

		rec := doRequest(r, "POST", "/tasks", `{"user_id":1}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	t.Run("returns the updated task", func(t *testing.T) {
		svc := &mockTaskService{
			updateTaskFn: func(userID, taskID uint, req models.TaskUpdate) (*models.Task, error) {
				if userID != 1 || taskID != 7 || !req.Done {
					t.Errorf("unexpected update %d %d %+v", userID, taskID, req)
				}
				return &models.Task{Base: models.Base{ID: taskID}, UserID: userID, Title: req.Title, Done: true}, nil
			},
		}
		r := setupTaskRouter(NewTaskHandler(svc))

		rec := doRequest(r, "PUT", "/tasks/7", `{"title":"Ship","type":"work","done":true}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["done"] != true {
			t.Error("expected done task")
		}
	})

	t.Run("returns 404 for a task the caller does not own", func(t *testing.T) {
		svc := &mockTaskService{
			updateTaskFn: func(uint, uint, models.TaskUpdate) (*models.Task, error) {
				return nil, apperrors.ErrTaskNotFound
			},
		}
		r := setupTaskRouter(NewTaskHandler(svc))

		rec := doRequest(r, "PUT", "/tasks/99", `{"title":"Ship","type":"work"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TASK_NOT_FOUND")
	})
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		r := setupTaskRouter(NewTaskHandler(&mockTaskService{}))

		rec := doRequest(r, "DELETE", "/tasks/3", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockTaskService{
			deleteTaskFn: func(uint, uint) error { return apperrors.ErrTaskNotFound },
		}
		r := setupTaskRouter(NewTaskHandler(svc))

		rec := doRequest(r, "DELETE", "/tasks/3", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
