package sections

import (
	"github.com/globalsolutions/website/backend/internal/content/schema"
	"github.com/globalsolutions/website/backend/internal/validation"
)

type Contact struct {
	Heading     string `json:"heading" validate:"required"`
	Description string `json:"description"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	Address     string `json:"address" validate:"required"`
	Hours       string `json:"hours"`
	MapEmbedURL string `json:"mapEmbedURL" validate:"omitempty,url"`
}

func contact() schema.Section {
	def := Contact{
		Heading:     "Contact Us",
		Description: "Tell us about your project and we will get back to you.",
		Email:       "info@example.com",
		Phone:       "+1 555 0100",
		Address:     "1 Harbour Road",
		Hours:       "Mon-Fri 9:00-17:00",
	}
	return schema.Define("contact", AreaPages, def, validation.Messages{
		"heading.required": "Heading is required",
		"email.required":   "Email is required",
		"email.email":      "Email must be a valid email address",
		"phone.required":   "Phone is required",
		"address.required": "Address is required",
		"mapEmbedURL.url":  "Map embed URL must be a valid URL",
	})
}
