package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// ToJSON encodes v for a datatypes.JSON column; nil stays NULL.
func ToJSON(v any) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json column: %w", err)
	}
	return datatypes.JSON(b), nil
}

// FromJSON decodes a datatypes.JSON column into out; NULL leaves out untouched.
func FromJSON(data datatypes.JSON, out any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal json column: %w", err)
	}
	return nil
}
