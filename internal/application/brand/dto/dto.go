package dto

import (
	"time"

	"github.com/creatorhub/creatorhub/internal/domain/brand"
)

type CreateBrandProfileRequest struct {
	Name   string   `json:"name" binding:"required,min=1,max=100"`
	Niche  string   `json:"niche,omitempty" binding:"max=100"`
	Tone   string   `json:"tone,omitempty" binding:"max=100"`
	Colors []string `json:"colors,omitempty" binding:"max=6,dive,hexcolor"`
}

type BrandProfileResponse struct {
	SID       string    `json:"sid"`
	Name      string    `json:"name"`
	Niche     string    `json:"niche,omitempty"`
	Tone      string    `json:"tone,omitempty"`
	Colors    []string  `json:"colors"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BrandProfileListResponse includes the plan allowance so clients can
// disable the create button without a second call.
type BrandProfileListResponse struct {
	Items []*BrandProfileResponse `json:"items"`
	Limit int                     `json:"limit"`
}

func ToBrandProfileResponse(p *brand.BrandProfile) *BrandProfileResponse {
	colors := p.Colors()
	if colors == nil {
		colors = []string{}
	}
	return &BrandProfileResponse{
		SID:       p.SID(),
		Name:      p.Name(),
		Niche:     p.Niche(),
		Tone:      p.Tone(),
		Colors:    colors,
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}
