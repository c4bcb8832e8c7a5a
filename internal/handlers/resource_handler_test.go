package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "lifeos/internal/errors"
	"lifeos/internal/models"
)

type mockResourceService struct {
	getUserResourcesFn func(userID uint) ([]models.Resource, error)
	createResourceFn   func(userID uint, req models.ResourceCreate) (*models.Resource, error)
	updateResourceFn   func(userID, resourceID uint, req models.ResourceUpdate) (*models.Resource, error)
	deleteResourceFn   func(userID, resourceID uint) error
	getUserPlansFn     func(userID uint) ([]models.Resource, error)
	upsertPlanFn       func(userID uint, day, note string) (*models.Resource, error)
}

func (m *mockResourceService) GetUserResources(userID uint) ([]models.Resource, error) {
	if m.getUserResourcesFn != nil {
		return m.getUserResourcesFn(userID)
	}
	return []models.Resource{}, nil
}

func (m *mockResourceService) GetResourceByID(userID, resourceID uint) (*models.Resource, error) {
	return &models.Resource{Base: models.Base{ID: resourceID}, UserID: userID}, nil
}

func (m *mockResourceService) CreateResource(userID uint, req models.ResourceCreate) (*models.Resource, error) {
	if m.createResourceFn != nil {
		return m.createResourceFn(userID, req)
	}
	return &models.Resource{Base: models.Base{ID: 1}, UserID: userID, Label: req.Label, URL: req.URL}, nil
}

func (m *mockResourceService) UpdateResource(userID, resourceID uint, req models.ResourceUpdate) (*models.Resource, error) {
	if m.updateResourceFn != nil {
		return m.updateResourceFn(userID, resourceID, req)
	}
	return &models.Resource{Base: models.Base{ID: resourceID}, UserID: userID, Label: req.Label, Status: req.Status}, nil
}

func (m *mockResourceService) DeleteResource(userID, resourceID uint) error {
	if m.deleteResourceFn != nil {
		return m.deleteResourceFn(userID, resourceID)
	}
	return nil
}

func (m *mockResourceService) GetUserPlans(userID uint) ([]models.Resource, error) {
	if m.getUserPlansFn != nil {
		return m.getUserPlansFn(userID)
	}
	return []models.Resource{}, nil
}

func (m *mockResourceService) UpsertPlan(userID uint, day, note string) (*models.Resource, error) {
	if m.upsertPlanFn != nil {
		return m.upsertPlanFn(userID, day, note)
	}
	return &models.Resource{UserID: userID, Type: models.ResourceTypePlanner, Category: day, Note: note}, nil
}

func setupResourceRouter(handler *ResourceHandler) *gin.Engine {
	r := gin.New()
	r.Use(injectUserID(1))
	r.POST("/resources", handler.CreateResource)
	r.GET("/resources/:id", handler.GetUserResources)
	r.PUT("/resources/:id", handler.UpdateResource)
	r.DELETE("/resources/:id", handler.DeleteResource)
	r.GET("/planner/:id", handler.GetUserPlans)
	r.PUT("/planner/:id/:day", handler.UpsertPlan)
	return r
}

func TestResourceHandler_CreateResource(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		r := setupResourceRouter(NewResourceHandler(&mockResourceService{}))

		rec := doRequest(r, "POST", "/resources", `{"user_id":1,"label":"Go blog","url":"https://go.dev/blog","type":"article"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 without url", func(t *testing.T) {
		r := setupResourceRouter(NewResourceHandler(&mockResourceService{}))

		rec := doRequest(r, "POST", "/resources", `{"user_id":1,"label":"Go blog"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unknown status", func(t *testing.T) {
		r := setupResourceRouter(NewResourceHandler(&mockResourceService{}))

		rec := doRequest(r, "POST", "/resources", `{"user_id":1,"label":"Go blog","url":"u","status":"skimmed"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestResourceHandler_UpdateResource(t *testing.T) {
	t.Run("moves a resource to reading", func(t *testing.T) {
		r := setupResourceRouter(NewResourceHandler(&mockResourceService{}))

		rec := doRequest(r, "PUT", "/resources/4", `{"label":"Go blog","type":"article","url":"u","status":"reading"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["status"] != "reading" {
			t.Error("expected status reading")
		}
	})

	t.Run("returns 404 for a foreign resource", func(t *testing.T) {
		svc := &mockResourceService{
			updateResourceFn: func(uint, uint, models.ResourceUpdate) (*models.Resource, error) {
				return nil, apperrors.ErrResourceNotFound
			},
		}
		r := setupResourceRouter(NewResourceHandler(svc))

		rec := doRequest(r, "PUT", "/resources/4", `{"label":"Go blog","type":"article","status":"done"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestResourceHandler_DeleteResource(t *testing.T) {
	r := setupResourceRouter(NewResourceHandler(&mockResourceService{}))

	rec := doRequest(r, "DELETE", "/resources/4", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestResourceHandler_Scoping(t *testing.T) {
	r := setupResourceRouter(NewResourceHandler(&mockResourceService{}))

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"list resources", "GET", "/resources/2", ""},
		{"list plans", "GET", "/planner/2", ""},
		{"save plan", "PUT", "/planner/2/Mon", `{"note":"x"}`},
		{"create resource", "POST", "/resources", `{"user_id":2,"label":"l","url":"u"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(r, tt.method, tt.path, tt.body)
			if rec.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", rec.Code)
			}
		})
	}
}

func TestResourceHandler_UpsertPlan(t *testing.T) {
	t.Run("passes day and note to the service", func(t *testing.T) {
		var gotDay, gotNote string
		svc := &mockResourceService{
			upsertPlanFn: func(userID uint, day, note string) (*models.Resource, error) {
				gotDay, gotNote = day, note
				return &models.Resource{Base: models.Base{ID: 11}, UserID: userID, Type: models.ResourceTypePlanner, Category: day, Note: note}, nil
			},
		}
		r := setupResourceRouter(NewResourceHandler(svc))

		rec := doRequest(r, "PUT", "/planner/1/Wed", `{"note":"gym"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotDay != "Wed" || gotNote != "gym" {
			t.Errorf("expected Wed/gym, got %q/%q", gotDay, gotNote)
		}
	})

	t.Run("returns 400 for an unknown day", func(t *testing.T) {
		svc := &mockResourceService{
			upsertPlanFn: func(uint, string, string) (*models.Resource, error) {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown day")
			},
		}
		r := setupResourceRouter(NewResourceHandler(svc))

		rec := doRequest(r, "PUT", "/planner/1/Funday", `{"note":"x"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("lists plans", func(t *testing.T) {
		svc := &mockResourceService{
			getUserPlansFn: func(userID uint) ([]models.Resource, error) {
				return []models.Resource{{UserID: userID, Type: models.ResourceTypePlanner, Category: "Mon", Note: "focus"}}, nil
			},
		}
		r := setupResourceRouter(NewResourceHandler(svc))

		rec := doRequest(r, "GET", "/planner/1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
