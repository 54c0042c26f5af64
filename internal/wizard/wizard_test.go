package wizard_test

import (
	"testing"

	"vibealong/internal/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSignup() *wizard.DeveloperSignup {
	return &wizard.DeveloperSignup{
		FullName:        "Ada Lovelace",
		Email:           "ada@example.com",
		Password:        "correct-horse",
		Skills:          []string{"Go", "React"},
		ExperienceYears: 7,
		HourlyRate:      95,
		Availability:    "part_time",
		Bio:             "I help vibe coders ship their prototypes to production.",
	}
}

func TestNext_InvalidEmailDoesNotAdvance(t *testing.T) {
	// Arrange
	w := wizard.New(wizard.DeveloperSignupSchema)
	form := &wizard.DeveloperSignup{FullName: "Ada", Email: "not-an-email", Password: "correct-horse"}

	// Act
	err := w.Next(form)

	// Assert
	var verr *wizard.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Step)
	assert.Contains(t, verr.Fields, "email")
	assert.Equal(t, "must be a valid email address", verr.Fields["email"])
	assert.Equal(t, 1, w.CurrentStep)
}

func TestNext_ValidStepAdvances(t *testing.T) {
	// Arrange: later steps are still empty.
	w := wizard.New(wizard.DeveloperSignupSchema)
	form := &wizard.DeveloperSignup{FullName: "Ada", Email: "ada@example.com", Password: "correct-horse"}

	// Act
	err := w.Next(form)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, w.CurrentStep)
}

func TestNext_ReportsOnlyCurrentStepFields(t *testing.T) {
	w := wizard.New(wizard.DeveloperSignupSchema)

	err := w.Next(&wizard.DeveloperSignup{})

	var verr *wizard.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"full_name", "email", "password"}, keys(verr.Fields))
}

func TestNext_LastStepDoesNotOverflow(t *testing.T) {
	w, err := wizard.At(wizard.DeveloperSignupSchema, 3)
	require.NoError(t, err)

	require.NoError(t, w.Next(validSignup()))

	assert.Equal(t, 3, w.CurrentStep)
	assert.True(t, w.IsLast())
}

func TestBack_StopsAtFirstStep(t *testing.T) {
	w, err := wizard.At(wizard.VibeCoderOnboardingSchema, 2)
	require.NoError(t, err)

	w.Back()
	w.Back()

	assert.Equal(t, 1, w.CurrentStep)
}

func TestAt_RejectsOutOfRangeStep(t *testing.T) {
	_, err := wizard.At(wizard.AgencyOnboardingSchema, 3)
	assert.ErrorIs(t, err, wizard.ErrInvalidStep)

	_, err = wizard.At(wizard.AgencyOnboardingSchema, 0)
	assert.ErrorIs(t, err, wizard.ErrInvalidStep)
}

func TestSubmit_ValidatesWholeForm(t *testing.T) {
	w := wizard.New(wizard.DeveloperSignupSchema)
	form := validSignup()
	require.NoError(t, w.Submit(form))

	form.Skills = nil
	form.HourlyRate = 2
	err := w.Submit(form)

	var verr *wizard.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, verr.Step)
	assert.Contains(t, verr.Fields, "skills")
	assert.Contains(t, verr.Fields, "hourly_rate")
}

func TestVibeCoderOnboarding_PlatformMustBeKnown(t *testing.T) {
	w := wizard.New(wizard.VibeCoderOnboardingSchema)

	err := w.Next(&wizard.VibeCoderOnboarding{FullName: "Sam", Platform: "notepad"})

	var verr *wizard.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["platform"], "must be one of")
	assert.Equal(t, 1, w.CurrentStep)
}

func TestAgencyOnboarding_Steps(t *testing.T) {
	w := wizard.New(wizard.AgencyOnboardingSchema)
	form := &wizard.AgencyOnboarding{CompanyName: "Pixel & Co", Website: "https://pixel.example"}

	require.NoError(t, w.Next(form))
	assert.Equal(t, 2, w.CurrentStep)

	form.TeamSize = 12
	form.Services = []string{"design", "backend"}
	assert.NoError(t, w.Next(form))
	assert.NoError(t, w.Submit(form))
}

func keys(m wizard.FieldErrors) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
