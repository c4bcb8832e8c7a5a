package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "lifeos/internal/errors"
	"lifeos/internal/models"
)

func setupUserRouter(handler *UserHandler) *gin.Engine {
	r := gin.New()
	r.POST("/users", handler.CreateUser)
	authed := r.Group("", injectUserID(1))
	authed.GET("/users/:id", handler.GetUser)
	authed.PUT("/users/:id", handler.UpdateUser)
	return r
}

func TestUserHandler_CreateUser(t *testing.T) {
	t.Run("returns 201 with the profile", func(t *testing.T) {
		var got models.UserCreate
		svc := &mockUserService{
			createUserWithProfileFn: func(req models.UserCreate) (*models.User, error) {
				got = req
				return &models.User{Base: models.Base{ID: 2}, Email: req.Email, MonthlyIncome: req.MonthlyIncome}, nil
			},
		}
		r := setupUserRouter(NewUserHandler(svc))

		rec := doRequest(r, "POST", "/users", `{"email":"a@b.com","password":"x","monthly_income":2500,"fixed_expenses":{"rent":900}}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.MonthlyIncome.Total() != 2500 || got.FixedExpenses["rent"] != 900 {
			t.Errorf("unexpected request: %+v", got)
		}
	})

	t.Run("returns 409 on duplicate", func(t *testing.T) {
		svc := &mockUserService{
			createUserWithProfileFn: func(models.UserCreate) (*models.User, error) {
				return nil, apperrors.ErrDuplicateEmail
			},
		}
		r := setupUserRouter(NewUserHandler(svc))

		rec := doRequest(r, "POST", "/users", `{"email":"a@b.com","password":"x"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestUserHandler_GetUser(t *testing.T) {
	r := setupUserRouter(NewUserHandler(&mockUserService{}))

	if rec := doRequest(r, "GET", "/users/1", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for own profile, got %d", rec.Code)
	}
	if rec := doRequest(r, "GET", "/users/2", ""); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign profile, got %d", rec.Code)
	}
}

func TestUserHandler_UpdateUser(t *testing.T) {
	t.Run("replaces budget fields", func(t *testing.T) {
		var got models.ProfileUpdate
		svc := &mockUserService{
			updateProfileFn: func(userID uint, req models.ProfileUpdate) (*models.User, error) {
				got = req
				return &models.User{Base: models.Base{ID: userID}, Currency: req.Currency}, nil
			},
		}
		r := setupUserRouter(NewUserHandler(svc))

		rec := doRequest(r, "PUT", "/users/1", `{"monthly_income":1000,"currency":"EUR","dark_mode":true,"fixed_expenses":{"rent":500}}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Currency != "EUR" || !got.DarkMode || got.FixedExpenses.Total() != 500 {
			t.Errorf("unexpected update: %+v", got)
		}
	})

	t.Run("rejects unknown currency", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockUserService{}))

		rec := doRequest(r, "PUT", "/users/1", `{"monthly_income":1000,"currency":"XXX"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("dispatches setup", func(t *testing.T) {
		var got models.SetupRequest
		updated := false
		svc := &mockUserService{
			completeSetupFn: func(userID uint, req models.SetupRequest) (*models.User, error) {
				got = req
				return &models.User{Base: models.Base{ID: userID}, FirstName: req.FirstName, SetupComplete: true}, nil
			},
			updateProfileFn: func(uint, models.ProfileUpdate) (*models.User, error) {
				updated = true
				return nil, nil
			},
		}
		r := setupUserRouter(NewUserHandler(svc))

		rec := doRequest(r, "PUT", "/users/setup", `{"first_name":"Ann","monthly_income":[{"source":"Salary","amount":3000}],"currency":"USD","fixed_expenses":{}}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if updated {
			t.Error("setup must not be routed to the profile update")
		}
		if got.FirstName != "Ann" || got.MonthlyIncome.Total() != 3000 {
			t.Errorf("unexpected setup request: %+v", got)
		}
		if parseJSON(t, rec)["setup_complete"] != true {
			t.Error("expected setup_complete in response")
		}
	})

	t.Run("setup requires first name", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockUserService{}))

		rec := doRequest(r, "PUT", "/users/setup", `{"currency":"USD"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
