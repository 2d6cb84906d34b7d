package entity

import "time"

// LandingContent contenido configurable de una landing page. Se persiste como JSONB.
type LandingContent struct {
	Title       string            `json:"title,omitempty"`
	Subtitle    string            `json:"subtitle,omitempty"`
	Description string            `json:"description,omitempty"`
	Contact     ContactInfo       `json:"contact,omitempty"`
	Social      map[string]string `json:"social,omitempty"` // red -> URL
}

// ContactInfo datos de contacto mostrados en la landing.
type ContactInfo struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// LandingPage página pública configurable por organización, ruteada por slug.
// Máquina de estados: draft -> published -> draft (solo toggle, sin historial).
// Solo las páginas publicadas se sirven por la ruta pública.
// ViewCount se muta únicamente con incrementos atómicos en persistencia.
type LandingPage struct {
	ID             string
	OrganizationID string
	Title          string
	Slug           string // único, clave de ruteo público
	Content        LandingContent
	IsPublished    bool
	ViewCount      int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
