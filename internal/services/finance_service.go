package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "lifeos/internal/errors"
	"lifeos/internal/models"
)

// financeService handles finance entry business logic.
type financeService struct {
	db *gorm.DB
}

// NewFinanceService creates a new FinanceServicer.
func NewFinanceService(db *gorm.DB) FinanceServicer {
	return &financeService{db: db}
}

// GetUserFinances returns every entry of the user, oldest first.
func (s *financeService) GetUserFinances(userID uint) ([]models.FinanceEntry, error) {
	entries := []models.FinanceEntry{}
	if err := s.db.Where("user_id = ?", userID).Order("created_at, id").Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

// CreateFinance logs an income or expense.
func (s *financeService) CreateFinance(userID uint, req models.FinanceCreate) (*models.FinanceEntry, error) {
	if !req.Type.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}
	if req.Amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}

	entry := &models.FinanceEntry{
		UserID:   userID,
		Type:     req.Type,
		Category: strings.TrimSpace(req.Category),
		Amount:   req.Amount,
		Note:     req.Note,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entry, nil
}

// DeleteFinance removes an entry of the user.
func (s *financeService) DeleteFinance(userID, entryID uint) error {
	var entry models.FinanceEntry
	if err := s.db.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrFinanceNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Delete(&entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
