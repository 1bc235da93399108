// Package sections defines the editable blocks of the marketing site.
package sections

import "github.com/globalsolutions/website/backend/internal/content/schema"

const (
	AreaHome   = "home"
	AreaLayout = "layout"
	AreaPages  = "pages"
)

// Image is an image reference plus its alt text.
type Image struct {
	Src string `json:"src" validate:"required"`
	Alt string `json:"alt"`
}

// Link is a navigation entry.
type Link struct {
	Label string `json:"label" validate:"required"`
	Href  string `json:"href" validate:"required"`
}

// All returns every site section in the order the admin UI lists them.
func All() []schema.Section {
	return []schema.Section{
		hero(),
		about(),
		services(),
		faqs(),
		testimonials(),
		navbar(),
		footer(),
		schema.Raw("announcement", AreaLayout),
		contact(),
	}
}

// NewRegistry returns a registry holding All.
func NewRegistry() *schema.Registry {
	r := schema.NewRegistry()
	r.MustRegister(All()...)
	return r
}
