package models

// All lists every persisted model, in creation order, for AutoMigrate and
// test fixtures.
func All() []any {
	return []any{
		&SubscriptionModel{},
		&UsageLogModel{},
		&FeatureCostModel{},
		&BrandProfileModel{},
		&GeneratedContentModel{},
		&ProcessedBillingEventModel{},
	}
}
