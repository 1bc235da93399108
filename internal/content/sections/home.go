package sections

import (
	"github.com/globalsolutions/website/backend/internal/content/schema"
	"github.com/globalsolutions/website/backend/internal/validation"
)

type AnimationSettings struct {
	CycleDuration      float64 `json:"cycleDuration" validate:"gt=0"`
	TransitionDuration float64 `json:"transitionDuration" validate:"gte=0"`
	AutoPlay           bool    `json:"autoPlay"`
}

type Hero struct {
	Tag               string            `json:"tag"`
	Title             string            `json:"title" validate:"required"`
	Description       string            `json:"description" validate:"required"`
	ButtonName        string            `json:"buttonName" validate:"required"`
	ButtonLink        string            `json:"buttonLink" validate:"required"`
	AnimationSettings AnimationSettings `json:"animationSettings"`
	Images            []Image           `json:"images" validate:"min=1,dive"`
}

const PlaceholderImage = "/placeholder.svg"

func hero() schema.Section {
	def := Hero{
		Tag:         "GLOBAL SOLUTIONS",
		Title:       "Connecting Markets, Delivering Excellence",
		Description: "Import, export and business services that move your company forward.",
		ButtonName:  "Get in touch",
		ButtonLink:  "/contact",
		AnimationSettings: AnimationSettings{
			CycleDuration:      5,
			TransitionDuration: 1,
			AutoPlay:           true,
		},
		Images: []Image{{Src: PlaceholderImage, Alt: "Hero image"}},
	}
	return schema.Define("hero", AreaHome, def, validation.Messages{
		"title.required":                       "Title is required",
		"description.required":                 "Description is required",
		"buttonName.required":                  "Button name is required",
		"buttonLink.required":                  "Button link is required",
		"animationSettings.cycleDuration":      "Cycle duration must be greater than 0",
		"animationSettings.transitionDuration": "Transition duration cannot be negative",
		"images.min":                           "At least one image is required",
		"images[].src":                         "Every image needs a source",
	})
}

type Stat struct {
	Label  string  `json:"label" validate:"required"`
	Value  float64 `json:"value" validate:"gte=0"`
	Suffix string  `json:"suffix"`
}

type About struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	HeroImage   string `json:"heroImage"`
	Mission     string `json:"mission"`
	Vision      string `json:"vision"`
	Stats       []Stat `json:"stats" validate:"dive"`
}

func about() schema.Section {
	def := About{
		Title:       "About Us",
		Description: "We are a trading and services company with partners across several continents.",
		HeroImage:   PlaceholderImage,
		Mission:     "Make cross-border trade simple and reliable.",
		Vision:      "Be the partner of choice for growing businesses.",
		Stats: []Stat{
			{Label: "Years of experience", Value: 10, Suffix: "+"},
			{Label: "Countries served", Value: 25, Suffix: "+"},
		},
	}
	return schema.Define("about", AreaHome, def, validation.Messages{
		"title.required":       "Title is required",
		"description.required": "Description is required",
		"stats[].label":        "Every stat needs a label",
		"stats[].value":        "Stat values must be positive",
	})
}

type Service struct {
	ID          string   `json:"id" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Icon        string   `json:"icon"`
	Image       string   `json:"image"`
	Features    []string `json:"features"`
}

type Services struct {
	Heading    string    `json:"heading" validate:"required"`
	Subheading string    `json:"subheading"`
	Items      []Service `json:"items" validate:"min=1,dive"`
}

func services() schema.Section {
	def := Services{
		Heading:    "Our Services",
		Subheading: "What we can do for you",
		Items: []Service{
			{ID: "import-export", Title: "Import & Export", Description: "End-to-end handling of international shipments.", Icon: "ship"},
		},
	}
	return schema.Define("services", AreaHome, def, validation.Messages{
		"heading.required":    "Heading is required",
		"items.min":           "At least one service is required",
		"items[].id":          "Every service needs an id",
		"items[].title":       "Every service needs a title",
		"items[].description": "Every service needs a description",
	})
}

type FAQ struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type FAQs struct {
	Heading string `json:"heading" validate:"required"`
	Items   []FAQ  `json:"items" validate:"min=1,dive"`
}

func faqs() schema.Section {
	def := FAQs{
		Heading: "Frequently Asked Questions",
		Items: []FAQ{
			{Question: "Which countries do you ship to?", Answer: "We work with partners worldwide. Contact us for a quote."},
		},
	}
	return schema.Define("faqs", AreaHome, def, validation.Messages{
		"heading.required": "Heading is required",
		"items.min":        "At least one FAQ is required",
		"items[].question": "Every FAQ needs a question",
		"items[].answer":   "Every FAQ needs an answer",
	})
}

type Testimonial struct {
	Name    string `json:"name" validate:"required"`
	Role    string `json:"role"`
	Company string `json:"company"`
	Quote   string `json:"quote" validate:"required"`
	Avatar  string `json:"avatar"`
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
}

type Testimonials struct {
	Heading string        `json:"heading"`
	Items   []Testimonial `json:"items" validate:"min=1,dive"`
}

func testimonials() schema.Section {
	def := Testimonials{
		Heading: "What our clients say",
		Items: []Testimonial{
			{Name: "A. Client", Company: "Trading Co.", Quote: "Reliable and fast.", Rating: 5},
		},
	}
	return schema.Define("testimonials", AreaHome, def, validation.Messages{
		"items.min":      "At least one testimonial is required",
		"items[].name":   "Every testimonial needs a name",
		"items[].quote":  "Every testimonial needs a quote",
		"items[].rating": "Rating must be between 1 and 5",
	})
}
