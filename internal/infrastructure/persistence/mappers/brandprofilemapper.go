package mappers

import (
	"github.com/creatorhub/creatorhub/internal/domain/brand"
	"github.com/creatorhub/creatorhub/internal/infrastructure/persistence/models"
)

func BrandProfileToModel(p *brand.BrandProfile) (*models.BrandProfileModel, error) {
	colors, err := ToJSON(p.Colors())
	if err != nil {
		return nil, err
	}
	return &models.BrandProfileModel{
		ID:        p.ID(),
		SID:       p.SID(),
		UserID:    p.UserID(),
		Name:      p.Name(),
		Niche:     p.Niche(),
		Tone:      p.Tone(),
		Colors:    colors,
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}, nil
}

func BrandProfileToEntity(m *models.BrandProfileModel) (*brand.BrandProfile, error) {
	var colors []string
	if err := FromJSON(m.Colors, &colors); err != nil {
		return nil, err
	}
	return brand.ReconstructBrandProfile(m.ID, m.SID, m.UserID, m.Name, m.Niche, m.Tone, colors, m.CreatedAt, m.UpdatedAt), nil
}
