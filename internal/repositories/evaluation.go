package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"resumatch/resume-matcher/internal/errs"
	"resumatch/resume-matcher/internal/models"
)

type EvaluationRepository interface {
	Save(eval *models.Evaluation) (uint, error)
	List(limit, offset int) ([]models.Evaluation, error)
	Count() (int64, error)
	FindByID(id uint) (*models.Evaluation, error)
	Delete(id uint) error
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) Save(eval *models.Evaluation) (uint, error) {
	if err := r.db.Create(eval).Error; err != nil {
		return 0, fmt.Errorf("failed to save evaluation: %w", err)
	}
	return eval.ID, nil
}

// List returns evaluations most recent first. The id is the tiebreaker so
// rows inserted within the same timestamp keep a stable order across pages.
func (r *evaluationRepository) List(limit, offset int) ([]models.Evaluation, error) {
	var evals []models.Evaluation
	err := r.db.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&evals).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}

	return evals, nil
}

func (r *evaluationRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Evaluation{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count evaluations: %w", err)
	}
	return count, nil
}

func (r *evaluationRepository) FindByID(id uint) (*models.Evaluation, error) {
	var eval models.Evaluation
	if err := r.db.Where("id = ?", id).First(&eval).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("evaluation %d: %w", id, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find evaluation: %w", err)
	}
	return &eval, nil
}

// Delete removes the row if it exists. A missing id is not an error.
func (r *evaluationRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Evaluation{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete evaluation: %w", err)
	}
	return nil
}
