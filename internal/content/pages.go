// Package content serves the hardcoded marketing pages and the mocked
// dashboard numbers.
package content

import (
	"errors"
	"sort"
)

var ErrPageNotFound = errors.New("page not found")

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Testimonial struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Quote  string `json:"quote"`
	Avatar string `json:"avatar,omitempty"`
}

type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type CTA struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type Page struct {
	Slug         string         `json:"slug"`
	Title        string         `json:"title"`
	Headline     string         `json:"headline"`
	Subheadline  string         `json:"subheadline"`
	Features     []Feature      `json:"features,omitempty"`
	Stats        []Stat         `json:"stats,omitempty"`
	Testimonials []Testimonial  `json:"testimonials,omitempty"`
	Showcase     []ShowcaseItem `json:"showcase,omitempty"`
	DemoSteps    []DemoStep     `json:"demo_steps,omitempty"`
	CTAs         []CTA          `json:"ctas"`
}

type ShowcaseItem struct {
	Title       string   `json:"title"`
	Platform    string   `json:"platform"`
	Description string   `json:"description"`
	Outcome     string   `json:"outcome"`
	TechStack   []string `json:"tech_stack"`
}

// DemoStep is one slide of the product tour.
type DemoStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

var demoSteps = []DemoStep{
	{"Describe your project", "Tell us what you built with your AI coding tool and where you are stuck.", "/demo/step-1.png"},
	{"Get an instant estimate", "See the expected hours and cost before anyone starts working.", "/demo/step-2.png"},
	{"Match with a developer", "We suggest vetted developers who know your stack.", "/demo/step-3.png"},
	{"Follow a step-by-step plan", "Every task comes with a checklist you can track together.", "/demo/step-4.png"},
	{"Collaborate in one place", "Chat, share files and pin decisions next to the task.", "/demo/step-5.png"},
	{"Ship it", "Your developer hands over working code and you keep vibing.", "/demo/step-6.png"},
}

// DemoSteps returns the product tour slides.
func DemoSteps() []DemoStep {
	out := make([]DemoStep, len(demoSteps))
	copy(out, demoSteps)
	return out
}

var pages = map[string]Page{
	"landing": {
		Slug:        "landing",
		Title:       "VibeAlong",
		Headline:    "Turn your vibe-coded prototype into a real product",
		Subheadline: "Professional developers pick up where your AI coding tool left off.",
		Features: []Feature{
			{"Built for vibe coders", "Bring projects from Lovable, Bolt, v0, Replit, Cursor or Windsurf.", "sparkles"},
			{"Transparent pricing", "Every task gets an estimate before work begins.", "receipt"},
			{"Work together", "Task checklists and chat keep everyone on the same page.", "users"},
		},
		Stats: []Stat{
			{"Vibe coders helped", "1,200+"},
			{"Vetted developers", "350+"},
			{"Median time to first response", "2h"},
		},
		Testimonials: []Testimonial{
			{Name: "Priya S.", Role: "Founder", Quote: "My Lovable app finally has working payments."},
			{Name: "Marco D.", Role: "Developer", Quote: "Clear tasks, clear scope, happy clients."},
		},
		CTAs: []CTA{{"Get help with my project", "/onboarding/vibe-coder"}, {"Join as a developer", "/signup/developer"}},
	},
	"for-developers": {
		Slug:        "for-developers",
		Title:       "For developers",
		Headline:    "Get paid to finish what AI started",
		Subheadline: "Pick well-scoped tasks from founders who already have a working prototype.",
		Features: []Feature{
			{"Scoped tasks", "Each task has requirements, a tech stack and an estimate.", "list-checks"},
			{"Set your rate", "You choose your hourly rate and availability.", "wallet"},
			{"Track earnings", "See what you earned per week and per project.", "chart"},
		},
		Stats: []Stat{
			{"Average hourly rate", "$85"},
			{"Tasks completed last month", "640"},
		},
		CTAs: []CTA{{"Apply as a developer", "/signup/developer"}},
	},
	"vibe-coders": {
		Slug:        "vibe-coders",
		Title:       "For vibe coders",
		Headline:    "Stuck on the last 20%?",
		Subheadline: "Authentication, payments, deployment: get a developer to handle the hard parts.",
		Features: []Feature{
			{"Keep your tools", "We work with the platform you already use.", "wrench"},
			{"Know the cost upfront", "Instant estimates for every task.", "calculator"},
			{"Learn as you go", "Follow the step-by-step plan for each task.", "graduation-cap"},
		},
		CTAs: []CTA{{"Start onboarding", "/onboarding/vibe-coder"}},
	},
	"showcase": {
		Slug:        "showcase",
		Title:       "Showcase",
		Headline:    "Shipped with VibeAlong",
		Subheadline: "Prototypes that became products.",
		Showcase: []ShowcaseItem{
			{"Recipe Roulette", "lovable", "Meal planner built in a weekend.", "Added Stripe subscriptions and auth", []string{"React", "Supabase", "Stripe"}},
			{"TutorMatch", "bolt", "Marketplace for local tutors.", "Moved to a real database and fixed booking race conditions", []string{"Next.js", "Postgres"}},
			{"FieldNotes", "cursor", "Offline-first notes for researchers.", "Shipped sync and a mobile build", []string{"Expo", "SQLite"}},
		},
		CTAs: []CTA{{"Start your project", "/onboarding/vibe-coder"}},
	},
	"demo": {
		Slug:        "demo",
		Title:       "How it works",
		Headline:    "From prototype to production in six steps",
		Subheadline: "Watch the tour or click through at your own pace.",
		DemoSteps:   demoSteps,
		CTAs:        []CTA{{"Try it with my project", "/onboarding/vibe-coder"}},
	},
}

// Get returns the page with the given slug. "/" and "" map to the landing page.
func Get(slug string) (Page, error) {
	if slug == "" || slug == "/" {
		slug = "landing"
	}
	p, ok := pages[slug]
	if !ok {
		return Page{}, ErrPageNotFound
	}
	return p, nil
}

func Slugs() []string {
	out := make([]string, 0, len(pages))
	for slug := range pages {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}
