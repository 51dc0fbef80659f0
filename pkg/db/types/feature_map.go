package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// FeatureMap stores a chapter's feature toggles as a jsonb column.
type FeatureMap map[string]bool

// Value implements driver.Valuer.
func (m FeatureMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *FeatureMap) Scan(src any) error {
	if src == nil {
		*m = FeatureMap{}
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported feature map source %T", src)
	}

	if len(raw) == 0 {
		*m = FeatureMap{}
		return nil
	}
	return json.Unmarshal(raw, m)
}

// Enabled reports whether the named feature is switched on.
func (m FeatureMap) Enabled(name string) bool {
	return m[name]
}
