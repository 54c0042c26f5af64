package wizard

// DeveloperSignup is the developer signup form.
type DeveloperSignup struct {
	FullName        string   `json:"full_name" validate:"required,min=2,max=100"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=8,max=72"`
	Skills          []string `json:"skills" validate:"min=1,dive,required"`
	ExperienceYears int      `json:"experience_years" validate:"gte=0,lte=60"`
	HourlyRate      float64  `json:"hourly_rate" validate:"gte=10,lte=1000"`
	Availability    string   `json:"availability" validate:"required,oneof=full_time part_time weekends as_needed"`
	Bio             string   `json:"bio" validate:"required,min=20,max=1000"`
	AvatarURL       string   `json:"avatar_url" validate:"omitempty,url"`
}

var DeveloperSignupSchema = &Schema{
	Name: "developer-signup",
	Steps: [][]string{
		{"FullName", "Email", "Password"},
		{"Skills", "ExperienceYears", "HourlyRate"},
		{"Availability", "Bio", "AvatarURL"},
	},
}

// DeveloperOnboarding completes the profile of a developer who signed in
// through the OAuth provider and therefore skipped the signup form.
type DeveloperOnboarding struct {
	Skills          []string `json:"skills" validate:"min=1,dive,required"`
	ExperienceYears int      `json:"experience_years" validate:"gte=0,lte=60"`
	HourlyRate      float64  `json:"hourly_rate" validate:"gte=10,lte=1000"`
	Availability    string   `json:"availability" validate:"required,oneof=full_time part_time weekends as_needed"`
	Bio             string   `json:"bio" validate:"required,min=20,max=1000"`
	AvatarURL       string   `json:"avatar_url" validate:"omitempty,url"`
}

var DeveloperOnboardingSchema = &Schema{
	Name: "developer-onboarding",
	Steps: [][]string{
		{"Skills", "ExperienceYears", "HourlyRate"},
		{"Availability", "Bio", "AvatarURL"},
	},
}

type VibeCoderOnboarding struct {
	FullName           string `json:"full_name" validate:"required,min=2,max=100"`
	Platform           string `json:"platform" validate:"required,oneof=lovable bolt v0 replit cursor windsurf other"`
	ProjectName        string `json:"project_name" validate:"required,min=2,max=120"`
	ProjectDescription string `json:"project_description" validate:"required,min=10,max=2000"`
	ProjectStage       string `json:"project_stage" validate:"omitempty,oneof=idea prototype mvp launched"`
	Goals              string `json:"goals" validate:"required,min=10,max=1000"`
	Budget             string `json:"budget" validate:"required,oneof=under_500 500_2000 2000_5000 over_5000"`
}

var VibeCoderOnboardingSchema = &Schema{
	Name: "vibe-coder-onboarding",
	Steps: [][]string{
		{"FullName", "Platform"},
		{"ProjectName", "ProjectDescription", "ProjectStage"},
		{"Goals", "Budget"},
	},
}

type AgencyOnboarding struct {
	CompanyName string   `json:"company_name" validate:"required,min=2,max=120"`
	Website     string   `json:"website" validate:"omitempty,url"`
	TeamSize    int      `json:"team_size" validate:"gte=1,lte=10000"`
	Services    []string `json:"services" validate:"min=1,dive,required"`
}

var AgencyOnboardingSchema = &Schema{
	Name: "agency-onboarding",
	Steps: [][]string{
		{"CompanyName", "Website"},
		{"TeamSize", "Services"},
	},
}
