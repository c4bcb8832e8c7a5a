package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "lifeos/internal/errors"
	"lifeos/internal/models"
)

// userService handles user-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateUser registers a new user. The profile starts empty and setup is
// not complete.
func (s *userService) CreateUser(email, password, firstName, lastName string) (*models.User, error) {
	return s.create(&models.User{
		Email:         email,
		Password:      password,
		FirstName:     firstName,
		LastName:      lastName,
		MonthlyIncome: models.FixedIncome(0),
		FixedExpenses: models.FixedExpenses{},
	})
}

// CreateUserWithProfile creates a user together with budget fields, as
// POST /users does.
func (s *userService) CreateUserWithProfile(req models.UserCreate) (*models.User, error) {
	return s.create(&models.User{
		Email:         req.Email,
		Password:      req.Password,
		MonthlyIncome: req.MonthlyIncome,
		Currency:      req.Currency,
		DarkMode:      req.DarkMode,
		FixedExpenses: req.FixedExpenses,
	})
}

// create hashes the plaintext password in user and inserts it.
func (s *userService) create(user *models.User) (*models.User, error) {
	if user.Email == "" || user.Password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	user.Password = string(hashedPassword)

	if user.Currency == "" {
		user.Currency = models.DefaultCurrency
	}
	if user.FixedExpenses == nil {
		user.FixedExpenses = models.FixedExpenses{}
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// VerifyPassword checks if the provided password matches the stored hash
func (s *userService) VerifyPassword(user *models.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	return err == nil
}

// AttemptLogin returns the user for valid credentials. Unknown emails and
// wrong passwords both yield ErrInvalidCredentials.
func (s *userService) AttemptLogin(email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.VerifyPassword(user, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// ChangePassword replaces the password after checking the current one.
func (s *userService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	if newPassword == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "new password is required")
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if !s.VerifyPassword(user, currentPassword) {
		return apperrors.ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Model(user).Update("password", string(hashedPassword)).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UpdateProfile replaces the budget fields of the profile.
func (s *userService) UpdateProfile(userID uint, req models.ProfileUpdate) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	user.MonthlyIncome = req.MonthlyIncome
	user.Currency = req.Currency
	user.DarkMode = req.DarkMode
	user.FixedExpenses = req.FixedExpenses
	if user.FixedExpenses == nil {
		user.FixedExpenses = models.FixedExpenses{}
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// CompleteSetup fills in the profile from the setup wizard and marks the
// setup complete.
func (s *userService) CompleteSetup(userID uint, req models.SetupRequest) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.MonthlyIncome = req.MonthlyIncome
	user.FixedExpenses = req.FixedExpenses
	if user.FixedExpenses == nil {
		user.FixedExpenses = models.FixedExpenses{}
	}
	user.Currency = req.Currency
	user.DarkMode = req.DarkMode
	user.Goal = req.Goal
	user.SetupComplete = true

	if err := s.db.Save(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// DeleteUser removes the user and everything they own in one transaction.
func (s *userService) DeleteUser(userID uint) error {
	if _, err := s.GetUserByID(userID); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, owned := range []interface{}{&models.Task{}, &models.FinanceEntry{}, &models.Resource{}} {
			if err := tx.Where("user_id = ?", userID).Delete(owned).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
