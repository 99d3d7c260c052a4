package entitlement

// FeatureID identifies a billable capability.
type FeatureID string

const (
	FeatureThumbnail        FeatureID = "thumbnail_generation"
	FeatureVideoIdeas       FeatureID = "video_ideas"
	FeatureBrandingKit      FeatureID = "branding_kit"
	FeatureNicheAnalysis    FeatureID = "niche_analysis"
	FeatureChatAssistant    FeatureID = "chat_assistant"
	FeatureChannelAnalytics FeatureID = "channel_analytics"
)

func (f FeatureID) String() string {
	return string(f)
}

// Feature is a catalog entry. DefaultTokenCost applies until an admin
// overrides the cost.
type Feature struct {
	ID               FeatureID
	Name             string
	DefaultTokenCost int
}
