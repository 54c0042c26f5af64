package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"vibealong/internal/auth"
	"vibealong/internal/authflow"
	"vibealong/internal/middleware"
	"vibealong/internal/model"
	"vibealong/internal/repository"
	"vibealong/internal/wizard"
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type ProfileStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	CreateDeveloperAccount(ctx context.Context, user *model.User, dev *model.DeveloperProfile) error
	SaveDeveloperProfile(ctx context.Context, dev *model.DeveloperProfile) error
	SaveVibeCoderProfile(ctx context.Context, vc *model.VibeCoderProfile, coder *model.VibeCoder, project *model.Project) error
	SaveAgencyProfile(ctx context.Context, agency *model.AgencyProfile) error
}

// UserHandler serves developer signup and password login.
type UserHandler struct {
	users    UserStore
	profiles ProfileStore
	tokens   *auth.TokenManager
	cookies  Cookies
	log      *zap.Logger
}

func NewUserHandler(users UserStore, profiles ProfileStore, tokens *auth.TokenManager, cookies Cookies, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, profiles: profiles, tokens: tokens, cookies: cookies, log: log}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
}

type AuthResponse struct {
	Token    string         `json:"token"`
	User     UserResponse   `json:"user"`
	State    authflow.State `json:"state"`
	Redirect string         `json:"redirect"`
}

type StepResponse struct {
	CurrentStep int  `json:"current_step"`
	TotalSteps  int  `json:"total_steps"`
	IsLast      bool `json:"is_last"`
}

// SignupStep godoc
// @Summary  Validate one step of the developer signup
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    step  path      int                     true  "Current step (1-based)"
// @Param    form  body      wizard.DeveloperSignup  true  "Signup form"
// @Success  200   {object}  StepResponse
// @Failure  422   {object}  ErrorResponse
// @Router   /api/signup/developer/steps/{step} [post]
func (h *UserHandler) SignupStep(c *gin.Context) {
	var form wizard.DeveloperSignup
	if !bindJSON(c, &form) {
		return
	}
	advanceStep(c, wizard.DeveloperSignupSchema, &form)
}

// Signup godoc
// @Summary  Complete the developer signup
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    form  body      wizard.DeveloperSignup  true  "Signup form"
// @Success  201   {object}  AuthResponse
// @Failure  409   {object}  ErrorResponse
// @Failure  422   {object}  ErrorResponse
// @Router   /api/signup/developer [post]
func (h *UserHandler) Signup(c *gin.Context) {
	var form wizard.DeveloperSignup
	if !bindJSON(c, &form) {
		return
	}
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))
	if err := wizard.New(wizard.DeveloperSignupSchema).Submit(&form); err != nil {
		if !validationFailed(c, err) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid input"})
		}
		return
	}

	existing, err := h.users.FindByEmail(c.Request.Context(), form.Email)
	if err != nil {
		h.log.Error("signup lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "DB error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "User with this email already exists"})
		return
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Hash error"})
		return
	}

	user := &model.User{
		ID:             uuid.New(),
		Email:          form.Email,
		Name:           strings.TrimSpace(form.FullName),
		HashedPassword: hash,
		Provider:       model.ProviderPassword,
	}
	dev := &model.DeveloperProfile{
		Skills:          pq.StringArray(form.Skills),
		ExperienceYears: form.ExperienceYears,
		HourlyRate:      form.HourlyRate,
		Availability:    form.Availability,
		Bio:             form.Bio,
		AvatarURL:       form.AvatarURL,
	}
	if err := h.profiles.CreateDeveloperAccount(c.Request.Context(), user, dev); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "User with this email already exists"})
			return
		}
		h.log.Error("create developer account failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Create failed"})
		return
	}
	h.log.Info("👤 Developer signed up", zap.String("user_id", user.ID.String()))

	h.issueSession(c, http.StatusCreated, user, model.RoleDeveloper, authflow.Outcome{State: authflow.Complete, Redirect: authflow.DashboardPath})
}

// Login godoc
// @Summary  Log in with email and password
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    credentials  body      LoginRequest  true  "Credentials"
// @Param    next         query     string        false "Relative path to land on"
// @Success  200          {object}  AuthResponse
// @Failure  401          {object}  ErrorResponse
// @Router   /api/auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid input"})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		h.log.Error("login lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "DB error"})
		return
	}
	if user == nil || !auth.CheckPassword(user.HashedPassword, req.Password) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
		return
	}

	profile, err := h.profiles.GetByID(c.Request.Context(), user.ID)
	if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
		h.log.Error("login profile lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "DB error"})
		return
	}

	role := ""
	outcome := authflow.Outcome{State: authflow.ProfileIncomplete, Redirect: authflow.OnboardingPath("")}
	if profile != nil {
		role = profile.Role
		outcome = authflow.Resolve(profile, c.Query("next"))
	}
	h.issueSession(c, http.StatusOK, user, role, outcome)
}

// Logout godoc
// @Summary  Clear the session cookie
// @Tags     Users
// @Success  204
// @Router   /api/auth/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	h.cookies.ClearSession(c)
	c.Status(http.StatusNoContent)
}

// Session godoc
// @Summary  Where the current visitor belongs
// @Tags     Users
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /api/auth/session [get]
func (h *UserHandler) Session(c *gin.Context) {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"state": authflow.Unauthenticated, "redirect": authflow.LoginPath})
		return
	}

	profile, err := h.profiles.GetByID(c.Request.Context(), userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		c.JSON(http.StatusOK, gin.H{
			"state":    authflow.ProfileIncomplete,
			"redirect": authflow.OnboardingPath(c.GetString(middleware.RoleKey)),
			"user_id":  userID,
		})
		return
	}
	if err != nil {
		h.log.Error("session profile lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "DB error"})
		return
	}

	out := authflow.Resolve(profile, c.Query("next"))
	c.JSON(http.StatusOK, gin.H{
		"state":    out.State,
		"redirect": out.Redirect,
		"user_id":  userID,
		"role":     profile.Role,
	})
}

func (h *UserHandler) issueSession(c *gin.Context, status int, user *model.User, role string, out authflow.Outcome) {
	token, err := h.tokens.GenerateToken(user.ID.String(), role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Token error"})
		return
	}
	h.cookies.SetSession(c, token, h.tokens.Expiry())

	c.JSON(status, AuthResponse{
		Token: token,
		User: UserResponse{
			ID:    user.ID.String(),
			Email: user.Email,
			Name:  user.Name,
			Role:  role,
		},
		State:    out.State,
		Redirect: out.Redirect,
	})
}

// advanceStep validates the step named in the path and answers with the
// step the wizard moved to.
func advanceStep(c *gin.Context, schema *wizard.Schema, form any) {
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid step"})
		return
	}
	w, err := wizard.At(schema, step)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Unknown step"})
		return
	}
	if err := w.Next(form); err != nil {
		if !validationFailed(c, err) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid input"})
		}
		return
	}
	c.JSON(http.StatusOK, StepResponse{CurrentStep: w.CurrentStep, TotalSteps: schema.TotalSteps(), IsLast: w.IsLast()})
}
