package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"vibealong/internal/authflow"
	"vibealong/internal/model"
	"vibealong/internal/repository"
	"vibealong/internal/wizard"
)

// OnboardingHandler serves the role wizards that complete a profile after
// the first sign-in.
type OnboardingHandler struct {
	profiles ProfileStore
	log      *zap.Logger
}

func NewOnboardingHandler(profiles ProfileStore, log *zap.Logger) *OnboardingHandler {
	return &OnboardingHandler{profiles: profiles, log: log}
}

// roleFromPath maps /onboarding/vibe-coder to model.RoleVibeCoder.
func roleFromPath(c *gin.Context) (string, bool) {
	role := strings.ReplaceAll(c.Param("role"), "-", "_")
	if !model.ValidRole(role) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Unknown role"})
		return "", false
	}
	return role, true
}

func onboardingForm(role string) (*wizard.Schema, any) {
	switch role {
	case model.RoleDeveloper:
		return wizard.DeveloperOnboardingSchema, &wizard.DeveloperOnboarding{}
	case model.RoleAgency:
		return wizard.AgencyOnboardingSchema, &wizard.AgencyOnboarding{}
	default:
		return wizard.VibeCoderOnboardingSchema, &wizard.VibeCoderOnboarding{}
	}
}

// Step godoc
// @Summary   Validate one onboarding step
// @Tags      Onboarding
// @Accept    json
// @Produce   json
// @Param     role  path      string  true  "developer, vibe-coder or agency"
// @Param     step  path      int     true  "Current step (1-based)"
// @Success   200   {object}  StepResponse
// @Failure   422   {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /api/onboarding/{role}/steps/{step} [post]
func (h *OnboardingHandler) Step(c *gin.Context) {
	role, ok := roleFromPath(c)
	if !ok {
		return
	}
	schema, form := onboardingForm(role)
	if !bindJSON(c, form) {
		return
	}
	advanceStep(c, schema, form)
}

// Submit godoc
// @Summary   Complete onboarding
// @Tags      Onboarding
// @Accept    json
// @Produce   json
// @Param     role  path      string  true  "developer, vibe-coder or agency"
// @Success   200   {object}  map[string]string
// @Failure   403   {object}  ErrorResponse
// @Failure   422   {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /api/onboarding/{role} [post]
func (h *OnboardingHandler) Submit(c *gin.Context) {
	role, ok := roleFromPath(c)
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	schema, form := onboardingForm(role)
	if !bindJSON(c, form) {
		return
	}
	if err := wizard.New(schema).Submit(form); err != nil {
		if !validationFailed(c, err) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid input"})
		}
		return
	}

	ctx := c.Request.Context()
	profile, err := h.profiles.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Profile not found"})
		return
	}
	if err != nil {
		h.log.Error("onboarding profile lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "DB error"})
		return
	}
	if profile.Role != role {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Profile has a different role"})
		return
	}

	switch f := form.(type) {
	case *wizard.DeveloperOnboarding:
		err = h.profiles.SaveDeveloperProfile(ctx, &model.DeveloperProfile{
			ProfileID:       userID,
			Skills:          pq.StringArray(f.Skills),
			ExperienceYears: f.ExperienceYears,
			HourlyRate:      f.HourlyRate,
			Availability:    f.Availability,
			Bio:             f.Bio,
			AvatarURL:       f.AvatarURL,
		})
	case *wizard.VibeCoderOnboarding:
		err = h.profiles.SaveVibeCoderProfile(ctx,
			&model.VibeCoderProfile{
				ProfileID: userID,
				Platforms: pq.StringArray{f.Platform},
				Goals:     f.Goals,
				Budget:    f.Budget,
			},
			&model.VibeCoder{UserID: userID, Name: f.FullName, Email: profile.Email},
			&model.Project{
				Name:        f.ProjectName,
				Platform:    f.Platform,
				Description: f.ProjectDescription,
				Stage:       f.ProjectStage,
			},
		)
	case *wizard.AgencyOnboarding:
		err = h.profiles.SaveAgencyProfile(ctx, &model.AgencyProfile{
			ProfileID:   userID,
			CompanyName: f.CompanyName,
			Website:     f.Website,
			TeamSize:    f.TeamSize,
			Services:    pq.StringArray(f.Services),
		})
	}
	if err != nil {
		h.log.Error("save onboarding failed", zap.Error(err), zap.String("role", role))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save profile"})
		return
	}
	h.log.Info("✅ Onboarding completed", zap.String("user_id", userID.String()), zap.String("role", role))

	c.JSON(http.StatusOK, gin.H{"state": authflow.Complete, "redirect": authflow.DashboardPath})
}
