// Package authflow resolves where a visitor goes after the OAuth callback.
//
// The callback walks a small state machine:
//
//	unauthenticated -> code_pending -> profile_incomplete -> complete
//
// A request without a code stays unauthenticated and is sent to /login. A
// code is exchanged for an identity, the account and its profile are looked
// up or created, and the visitor lands on the onboarding wizard of their role
// until the profile is complete, then on the dashboard.
package authflow

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vibealong/internal/model"
	"vibealong/internal/repository"
)

type State string

const (
	Unauthenticated   State = "unauthenticated"
	CodePending       State = "code_pending"
	ProfileIncomplete State = "profile_incomplete"
	Complete          State = "complete"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

var (
	ErrStateMismatch   = errors.New("oauth state mismatch")
	ErrEmailUnverified = errors.New("provider email is not verified")
)

type Users interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindBySubject(ctx context.Context, subject string) (*model.User, error)
}

type Profiles interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	Create(ctx context.Context, profile *model.Profile) error
}

// CallbackInput carries the callback query and the state saved at login.
type CallbackInput struct {
	Code          string
	State         string
	ExpectedState string
	Next          string
	Role          string
}

type Outcome struct {
	State    State
	Redirect string
	User     *model.User
	Profile  *model.Profile
}

type Flow struct {
	exchanger CodeExchanger
	users     Users
	profiles  Profiles
	log       *zap.Logger
}

func NewFlow(exchanger CodeExchanger, users Users, profiles Profiles, log *zap.Logger) *Flow {
	return &Flow{exchanger: exchanger, users: users, profiles: profiles, log: log}
}

func (f *Flow) AuthCodeURL(state string) string {
	return f.exchanger.AuthCodeURL(state)
}

// Callback runs the state machine for one /auth/callback request. On error
// the returned outcome still carries the redirect to show the visitor.
func (f *Flow) Callback(ctx context.Context, in CallbackInput) (Outcome, error) {
	if in.Code == "" {
		return Outcome{State: Unauthenticated, Redirect: LoginPath}, nil
	}
	if in.ExpectedState == "" || in.State != in.ExpectedState {
		return loginError("invalid_state"), ErrStateMismatch
	}

	f.log.Debug("exchanging auth code", zap.String("state", string(CodePending)))
	identity, err := f.exchanger.Exchange(ctx, in.Code)
	if err != nil {
		return loginError("exchange_failed"), err
	}

	user, err := f.findOrCreateUser(ctx, identity)
	if errors.Is(err, ErrEmailUnverified) {
		return loginError("email_unverified"), err
	}
	if err != nil {
		return loginError("account_failed"), err
	}

	profile, err := f.ensureProfile(ctx, user, identity, in.Role)
	if err != nil {
		return loginError("profile_failed"), err
	}

	out := Resolve(profile, in.Next)
	out.User = user
	out.Profile = profile
	return out, nil
}

// Resolve maps an existing profile to its state and landing page. next is
// only honored for complete profiles and only when it is a relative path.
func Resolve(profile *model.Profile, next string) Outcome {
	if profile == nil {
		return Outcome{State: Unauthenticated, Redirect: LoginPath}
	}
	if !profile.OnboardingCompleted {
		return Outcome{State: ProfileIncomplete, Redirect: OnboardingPath(profile.Role), Profile: profile}
	}
	redirect := DashboardPath
	if SafeNext(next) {
		redirect = next
	}
	return Outcome{State: Complete, Redirect: redirect, Profile: profile}
}

// OnboardingPath is the wizard URL of a role, e.g. /onboarding/vibe-coder.
func OnboardingPath(role string) string {
	if !model.ValidRole(role) {
		role = model.RoleVibeCoder
	}
	return "/onboarding/" + strings.ReplaceAll(role, "_", "-")
}

// SafeNext accepts only same-site relative paths.
func SafeNext(next string) bool {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return false
	}
	u, err := url.Parse(next)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

func (f *Flow) findOrCreateUser(ctx context.Context, id Identity) (*model.User, error) {
	user, err := f.users.FindBySubject(ctx, id.Subject)
	if err != nil {
		return nil, fmt.Errorf("find user by subject: %w", err)
	}
	if user != nil {
		return user, nil
	}

	// An email already registered with a password keeps its account, but
	// only a provider-verified email may sign into it.
	user, err = f.users.FindByEmail(ctx, id.Email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if user != nil {
		if !id.EmailVerified {
			f.log.Warn("OAuth sign-in with unverified email matches an existing account",
				zap.String("user_id", user.ID.String()))
			return nil, ErrEmailUnverified
		}
		return user, nil
	}

	name := id.Name
	if name == "" {
		name = strings.SplitN(id.Email, "@", 2)[0]
	}
	user = &model.User{
		Email:    id.Email,
		Name:     name,
		Provider: model.ProviderOAuth,
		Subject:  id.Subject,
	}
	if err := f.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	f.log.Info("👤 New account from OAuth sign-in", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (f *Flow) ensureProfile(ctx context.Context, user *model.User, id Identity, role string) (*model.Profile, error) {
	profile, err := f.profiles.GetByID(ctx, user.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	if !model.ValidRole(role) {
		role = model.RoleVibeCoder
	}
	profile = &model.Profile{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.Name,
		Role:      role,
		AvatarURL: id.Picture,
	}
	if err := f.profiles.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}

func loginError(code string) Outcome {
	return Outcome{State: Unauthenticated, Redirect: LoginPath + "?error=" + url.QueryEscape(code)}
}
