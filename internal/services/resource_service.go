package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "lifeos/internal/errors"
	"lifeos/internal/models"
)

// resourceService handles resource and planner business logic.
type resourceService struct {
	db *gorm.DB
}

// NewResourceService creates a new ResourceServicer.
func NewResourceService(db *gorm.DB) ResourceServicer {
	return &resourceService{db: db}
}

// GetUserResources returns every resource of the user, planner entries
// included.
func (s *resourceService) GetUserResources(userID uint) ([]models.Resource, error) {
	resources := []models.Resource{}
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&resources).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return resources, nil
}

// GetResourceByID retrieves a resource by ID for a specific user
func (s *resourceService) GetResourceByID(userID, resourceID uint) (*models.Resource, error) {
	var res models.Resource
	if err := s.db.Where("id = ? AND user_id = ?", resourceID, userID).First(&res).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &res, nil
}

// CreateResource adds a resource. Type defaults to article and status to
// to_read.
func (s *resourceService) CreateResource(userID uint, req models.ResourceCreate) (*models.Resource, error) {
	label := strings.TrimSpace(req.Label)
	url := strings.TrimSpace(req.URL)
	if label == "" || url == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "label and url are required")
	}

	res := &models.Resource{
		UserID: userID,
		Label:  label,
		Type:   req.Type,
		URL:    url,
		Status: req.Status,
	}
	if res.Type == "" {
		res.Type = models.ResourceTypeArticle
	}
	if res.Status == "" {
		res.Status = models.ResourceStatusToRead
	}

	if err := s.db.Create(res).Error; err != nil {
		return nil, writeError(err)
	}
	return res, nil
}

// UpdateResource replaces the editable fields of a resource.
func (s *resourceService) UpdateResource(userID, resourceID uint, req models.ResourceUpdate) (*models.Resource, error) {
	res, err := s.GetResourceByID(userID, resourceID)
	if err != nil {
		return nil, err
	}

	res.Label = strings.TrimSpace(req.Label)
	res.Type = req.Type
	res.URL = strings.TrimSpace(req.URL)
	res.Status = req.Status
	res.Category = req.Category
	res.Note = req.Note

	if err := s.db.Save(res).Error; err != nil {
		return nil, writeError(err)
	}
	return res, nil
}

// DeleteResource removes a resource of the user.
func (s *resourceService) DeleteResource(userID, resourceID uint) error {
	res, err := s.GetResourceByID(userID, resourceID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(res).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetUserPlans returns the planner entries of the user.
func (s *resourceService) GetUserPlans(userID uint) ([]models.Resource, error) {
	plans := []models.Resource{}
	err := s.db.Where("user_id = ? AND type = ?", userID, models.ResourceTypePlanner).
		Order("id").
		Find(&plans).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return plans, nil
}

// UpsertPlan sets the note of the (user, day) planner entry, creating the
// entry on first save. The write is a single insert that updates the note on
// conflict with idx_resources_planner_day, so concurrent saves for the same
// day leave exactly one entry.
func (s *resourceService) UpsertPlan(userID uint, day, note string) (*models.Resource, error) {
	if !models.IsWeekday(day) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "day must be one of Mon, Tue, Wed, Thu, Fri, Sat, Sun")
	}

	plan := models.Resource{
		UserID:   userID,
		Label:    day,
		Type:     models.ResourceTypePlanner,
		Status:   models.ResourceStatusActive,
		Category: day,
		Note:     note,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:     []clause.Column{{Name: "user_id"}, {Name: "category"}},
		TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "type = 'planner'"}}},
		DoUpdates:   clause.AssignmentColumns([]string{"note", "updated_at"}),
	}).Create(&plan).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// The returned id is unreliable on the update path, so read the row back.
	var saved models.Resource
	err = s.db.Where("user_id = ? AND type = ? AND category = ?", userID, models.ResourceTypePlanner, day).
		First(&saved).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &saved, nil
}

// writeError maps a failed resource write. A second planner entry for the
// same day violates idx_resources_planner_day.
func writeError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.WithMessage(apperrors.ErrConflict, "a plan for that day already exists")
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
