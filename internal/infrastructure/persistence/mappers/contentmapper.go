package mappers

import (
	"github.com/creatorhub/creatorhub/internal/domain/content"
	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/infrastructure/persistence/models"
)

func ContentToModel(c *content.GeneratedContent) (*models.GeneratedContentModel, error) {
	var meta map[string]any
	if len(c.Metadata) > 0 {
		meta = c.Metadata
	}
	raw, err := ToJSON(meta)
	if err != nil {
		return nil, err
	}
	return &models.GeneratedContentModel{
		ID:        c.ID,
		SID:       c.SID,
		UserID:    c.UserID,
		Feature:   c.Feature.String(),
		Title:     c.Title,
		Body:      c.Body,
		Metadata:  raw,
		CreatedAt: c.CreatedAt,
	}, nil
}

func ContentToEntity(m *models.GeneratedContentModel) (*content.GeneratedContent, error) {
	var meta map[string]any
	if err := FromJSON(m.Metadata, &meta); err != nil {
		return nil, err
	}
	return &content.GeneratedContent{
		ID:        m.ID,
		SID:       m.SID,
		UserID:    m.UserID,
		Feature:   entitlement.FeatureID(m.Feature),
		Title:     m.Title,
		Body:      m.Body,
		Metadata:  meta,
		CreatedAt: m.CreatedAt,
	}, nil
}
