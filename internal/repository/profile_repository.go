package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vibealong/internal/model"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Create inserts a bare profile, used by the OAuth callback for first sign-ins.
func (r *ProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// CreateDeveloperAccount stores the user, profile and developer profile of a
// completed developer signup in one transaction.
func (r *ProfileRepository) CreateDeveloperAccount(ctx context.Context, user *model.User, dev *model.DeveloperProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrEmailTaken
			}
			return fmt.Errorf("create user: %w", err)
		}

		profile := model.Profile{
			ID:                  user.ID,
			Email:               user.Email,
			FullName:            user.Name,
			Role:                model.RoleDeveloper,
			OnboardingCompleted: true,
			AvatarURL:           dev.AvatarURL,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("create profile: %w", err)
		}

		dev.ProfileID = user.ID
		if err := tx.Create(dev).Error; err != nil {
			return fmt.Errorf("create developer profile: %w", err)
		}
		return nil
	})
}

// SaveDeveloperProfile upserts the developer details and marks onboarding done.
func (r *ProfileRepository) SaveDeveloperProfile(ctx context.Context, dev *model.DeveloperProfile) error {
	return r.completeOnboarding(ctx, dev.ProfileID, func(tx *gorm.DB) error {
		return upsert(tx, dev)
	})
}

// SaveVibeCoderProfile upserts the coder details, makes sure a vibe_coders row
// exists and records the first project when one was given.
func (r *ProfileRepository) SaveVibeCoderProfile(ctx context.Context, vc *model.VibeCoderProfile, coder *model.VibeCoder, project *model.Project) error {
	return r.completeOnboarding(ctx, vc.ProfileID, func(tx *gorm.DB) error {
		if err := upsert(tx, vc); err != nil {
			return err
		}
		if coder == nil {
			return nil
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email"}),
		}).Create(coder).Error
		if err != nil {
			return fmt.Errorf("save vibe coder: %w", err)
		}
		if project == nil {
			return nil
		}
		if coder.ID == uuid.Nil {
			if err := tx.Where("user_id = ?", coder.UserID).First(coder).Error; err != nil {
				return fmt.Errorf("load vibe coder: %w", err)
			}
		}
		project.VibeCoderID = coder.ID
		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("create project: %w", err)
		}
		return nil
	})
}

func (r *ProfileRepository) SaveAgencyProfile(ctx context.Context, agency *model.AgencyProfile) error {
	return r.completeOnboarding(ctx, agency.ProfileID, func(tx *gorm.DB) error {
		return upsert(tx, agency)
	})
}

func (r *ProfileRepository) completeOnboarding(ctx context.Context, profileID uuid.UUID, save func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := save(tx); err != nil {
			return err
		}
		result := tx.Model(&model.Profile{}).
			Where("id = ?", profileID).
			Update("onboarding_completed", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProfileNotFound
		}
		return nil
	})
}

func upsert(tx *gorm.DB, value any) error {
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}},
		UpdateAll: true,
	}).Create(value).Error
	if err != nil {
		return fmt.Errorf("save profile details: %w", err)
	}
	return nil
}
