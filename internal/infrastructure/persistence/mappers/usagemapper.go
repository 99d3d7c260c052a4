package mappers

import (
	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/usage"
	"github.com/creatorhub/creatorhub/internal/infrastructure/persistence/models"
)

func UsageEntryToModel(e *usage.Entry) (*models.UsageLogModel, error) {
	var meta map[string]any
	if len(e.Metadata) > 0 {
		meta = e.Metadata
	}
	raw, err := ToJSON(meta)
	if err != nil {
		return nil, err
	}
	return &models.UsageLogModel{
		ID:         e.ID,
		UserID:     e.UserID,
		Action:     e.Action,
		Feature:    e.Feature.String(),
		TokensUsed: e.TokensUsed,
		Metadata:   raw,
		CreatedAt:  e.CreatedAt,
	}, nil
}

func UsageEntryToEntity(m *models.UsageLogModel) (*usage.Entry, error) {
	var meta map[string]any
	if err := FromJSON(m.Metadata, &meta); err != nil {
		return nil, err
	}
	return &usage.Entry{
		ID:         m.ID,
		UserID:     m.UserID,
		Action:     m.Action,
		Feature:    entitlement.FeatureID(m.Feature),
		TokensUsed: m.TokensUsed,
		Metadata:   meta,
		CreatedAt:  m.CreatedAt,
	}, nil
}
