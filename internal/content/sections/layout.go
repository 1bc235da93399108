package sections

import (
	"github.com/globalsolutions/website/backend/internal/content/schema"
	"github.com/globalsolutions/website/backend/internal/validation"
)

type Navbar struct {
	Logo     string `json:"logo" validate:"required"`
	LogoAlt  string `json:"logoAlt"`
	Links    []Link `json:"links" validate:"min=1,dive"`
	CTALabel string `json:"ctaLabel"`
	CTAHref  string `json:"ctaHref"`
}

func navbar() schema.Section {
	def := Navbar{
		Logo:    "/logo.svg",
		LogoAlt: "Global Solutions",
		Links: []Link{
			{Label: "Home", Href: "/"},
			{Label: "About", Href: "/about"},
			{Label: "Services", Href: "/services"},
			{Label: "Careers", Href: "/careers"},
			{Label: "Contact", Href: "/contact"},
		},
		CTALabel: "Get a quote",
		CTAHref:  "/contact",
	}
	return schema.Define("navbar", AreaLayout, def, validation.Messages{
		"logo.required": "Logo is required",
		"links.min":     "At least one link is required",
		"links[].label": "Every link needs a label",
		"links[].href":  "Every link needs a URL",
	})
}

type FooterContact struct {
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type SocialLink struct {
	Platform string `json:"platform" validate:"required"`
	URL      string `json:"url" validate:"required,url"`
}

type Footer struct {
	CompanyName string        `json:"companyName" validate:"required"`
	Tagline     string        `json:"tagline"`
	Contact     FooterContact `json:"contact"`
	QuickLinks  []Link        `json:"quickLinks" validate:"dive"`
	SocialLinks []SocialLink  `json:"socialLinks" validate:"dive"`
	Copyright   string        `json:"copyright"`
}

func footer() schema.Section {
	def := Footer{
		CompanyName: "Global Solutions",
		Tagline:     "Import, export and business services.",
		Contact: FooterContact{
			Email: "info@example.com",
		},
		QuickLinks: []Link{
			{Label: "About", Href: "/about"},
			{Label: "Careers", Href: "/careers"},
		},
		SocialLinks: []SocialLink{},
		Copyright:   "All rights reserved.",
	}
	return schema.Define("footer", AreaLayout, def, validation.Messages{
		"companyName.required":   "Company name is required",
		"contact.email.required": "Contact email is required",
		"contact.email.email":    "Contact email must be a valid email address",
		"quickLinks[].label":     "Every link needs a label",
		"quickLinks[].href":      "Every link needs a URL",
		"socialLinks[].platform": "Every social link needs a platform",
		"socialLinks[].url":      "Social links must be valid URLs",
	})
}
