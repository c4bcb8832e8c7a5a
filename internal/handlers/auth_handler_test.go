package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"lifeos/internal/config"
	apperrors "lifeos/internal/errors"
	"lifeos/internal/logger"
	"lifeos/internal/middleware"
	"lifeos/internal/models"
	"lifeos/internal/validator"
)

// --- mock services ---

type mockUserService struct {
	createUserFn            func(email, password, firstName, lastName string) (*models.User, error)
	createUserWithProfileFn func(req models.UserCreate) (*models.User, error)
	getUserByIDFn           func(id uint) (*models.User, error)
	attemptLoginFn          func(email, password string) (*models.User, error)
	changePasswordFn        func(userID uint, current, next string) error
	updateProfileFn         func(userID uint, req models.ProfileUpdate) (*models.User, error)
	completeSetupFn         func(userID uint, req models.SetupRequest) (*models.User, error)
	deleteUserFn            func(userID uint) error
}

func (m *mockUserService) CreateUser(email, password, firstName, lastName string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(email, password, firstName, lastName)
	}
	return &models.User{Base: models.Base{ID: 1}, Email: email}, nil
}

func (m *mockUserService) CreateUserWithProfile(req models.UserCreate) (*models.User, error) {
	if m.createUserWithProfileFn != nil {
		return m.createUserWithProfileFn(req)
	}
	return &models.User{Base: models.Base{ID: 1}, Email: req.Email}, nil
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	return &models.User{Email: email}, nil
}

func (m *mockUserService) GetUserByID(id uint) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{Base: models.Base{ID: id}}, nil
}

func (m *mockUserService) VerifyPassword(_ *models.User, _ string) bool {
	return true
}

func (m *mockUserService) AttemptLogin(email, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(email, password)
	}
	return &models.User{Base: models.Base{ID: 1}, Email: email}, nil
}

func (m *mockUserService) ChangePassword(userID uint, current, next string) error {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(userID, current, next)
	}
	return nil
}

func (m *mockUserService) UpdateProfile(userID uint, req models.ProfileUpdate) (*models.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(userID, req)
	}
	return &models.User{Base: models.Base{ID: userID}}, nil
}

func (m *mockUserService) CompleteSetup(userID uint, req models.SetupRequest) (*models.User, error) {
	if m.completeSetupFn != nil {
		return m.completeSetupFn(userID, req)
	}
	return &models.User{Base: models.Base{ID: userID}, SetupComplete: true}, nil
}

func (m *mockUserService) DeleteUser(userID uint) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(userID)
	}
	return nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
	config.Set(&config.Config{Env: "test", JWTSecret: "handler-test-secret", JWTExpirationDur: time.Hour})
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.GET("/auth/me", injectUserID(1), handler.Me)
	r.POST("/auth/change-password", injectUserID(1), handler.ChangePassword)
	r.DELETE("/auth/delete", injectUserID(1), handler.DeleteAccount)
	r.GET("/anonymous/me", handler.Me)
	return r
}

func injectUserID(uid uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func doForm(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestAuthHandler_Register(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(email, _, firstName, _ string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: 5}, Email: email, FirstName: firstName}, nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, "POST", "/auth/register",
			`{"email":"a@b.com","password":"x","confirm_password":"x","first_name":"Ann"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["user_id"] != float64(5) {
			t.Errorf("expected user_id 5, got %v", result["user_id"])
		}
		if result["msg"] == "" {
			t.Error("expected a message")
		}
	})

	t.Run("returns 400 on password mismatch", func(t *testing.T) {
		called := false
		userSvc := &mockUserService{
			createUserFn: func(_, _, _, _ string) (*models.User, error) {
				called = true
				return nil, nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, "POST", "/auth/register", `{"email":"a@b.com","password":"x","confirm_password":"y"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PASSWORD_MISMATCH")
		if called {
			t.Error("user must not be created when passwords differ")
		}
	})

	t.Run("returns 400 on missing email", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}))

		rec := doRequest(r, "POST", "/auth/register", `{"password":"x","confirm_password":"x"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 409 on duplicate email", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(_, _, _, _ string) (*models.User, error) {
				return nil, apperrors.ErrDuplicateEmail
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, "POST", "/auth/register", `{"email":"dup@example.com","password":"x","confirm_password":"x"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_EMAIL")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns bearer token", func(t *testing.T) {
		userSvc := &mockUserService{
			attemptLoginFn: func(email, password string) (*models.User, error) {
				if email != "a@b.com" || password != "x" {
					t.Errorf("unexpected credentials %q/%q", email, password)
				}
				return &models.User{Base: models.Base{ID: 3}, Email: email}, nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doForm(r, "/auth/login", "username=a%40b.com&password=x")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["token_type"] != "bearer" {
			t.Errorf("expected bearer token type, got %v", result["token_type"])
		}
		token, _ := result["access_token"].(string)
		claims, err := middleware.ParseToken(token)
		if err != nil {
			t.Fatalf("token should parse: %v", err)
		}
		if claims.UserID != 3 {
			t.Errorf("expected user 3 in token, got %d", claims.UserID)
		}
	})

	t.Run("returns 401 on bad credentials", func(t *testing.T) {
		userSvc := &mockUserService{
			attemptLoginFn: func(_, _ string) (*models.User, error) {
				return nil, apperrors.ErrInvalidCredentials
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doForm(r, "/auth/login", "username=a%40b.com&password=wrong")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})

	t.Run("returns 400 on missing password", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}))

		rec := doForm(r, "/auth/login", "username=a%40b.com")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("returns full profile", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByIDFn: func(id uint) (*models.User, error) {
				return &models.User{
					Base:          models.Base{ID: id},
					Email:         "a@b.com",
					MonthlyIncome: models.FixedIncome(1000),
					Currency:      "USD",
					FixedExpenses: models.FixedExpenses{"rent": 500},
				}, nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, "GET", "/auth/me", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["monthly_income"] != float64(1000) || result["setup_complete"] != false {
			t.Errorf("unexpected profile: %v", result)
		}
		if _, leaked := result["password"]; leaked {
			t.Error("password hash must never be serialized")
		}
	})

	t.Run("returns 401 when the user no longer exists", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByIDFn: func(uint) (*models.User, error) { return nil, apperrors.ErrUserNotFound },
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, "GET", "/auth/me", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UNAUTHORIZED")
	})

	t.Run("returns 401 without user in context", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}))

		rec := doRequest(r, "GET", "/anonymous/me", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		userSvc := &mockUserService{
			changePasswordFn: func(userID uint, current, next string) error {
				if userID != 1 || current != "old" || next != "new" {
					t.Errorf("unexpected args %d %q %q", userID, current, next)
				}
				return nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, "POST", "/auth/change-password", `{"current_password":"old","new_password":"new"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on wrong current password", func(t *testing.T) {
		userSvc := &mockUserService{
			changePasswordFn: func(uint, string, string) error { return apperrors.ErrWrongPassword },
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, "POST", "/auth/change-password", `{"current_password":"bad","new_password":"new"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "WRONG_PASSWORD")
	})
}

func TestAuthHandler_DeleteAccount(t *testing.T) {
	deleted := uint(0)
	userSvc := &mockUserService{
		deleteUserFn: func(userID uint) error {
			deleted = userID
			return nil
		},
	}
	r := setupAuthRouter(NewAuthHandler(userSvc))

	rec := doRequest(r, "DELETE", "/auth/delete", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != 1 {
		t.Errorf("expected user 1 to be deleted, got %d", deleted)
	}
}
