package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Categories an item can be filed under. The list is advisory: the store
// accepts whatever the service layer lets through, and "all" is a filter
// sentinel, never a stored value.
const (
	CategoryElectronics = "Electronics"
	CategoryFurniture   = "Furniture"
	CategoryClothing    = "Clothing"
	CategoryBooks       = "Books"
	CategoryFood        = "Food"
	CategorySports      = "Sports"
	CategoryOther       = "Other"

	CategoryAll = "all"
)

// MaxImageBytes caps the inline data-URI image payload.
const MaxImageBytes = 2 * 1024 * 1024

// CustomFields is the schemaless key/value bag attached to an item. Each item
// may carry a different key set. Stored as a single JSONB document; an update
// that supplies custom fields replaces the whole bag.
type CustomFields map[string]string

// Value serializes the bag for a JSONB column. A string, not []byte: pq
// would encode raw bytes as bytea, which jsonb rejects.
func (c CustomFields) Value() (driver.Value, error) {
	if c == nil {
		return "{}", nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (c *CustomFields) Scan(src any) error {
	if src == nil {
		*c = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("custom fields: cannot scan %T", src)
	}

	return json.Unmarshal(data, c)
}

type Item struct {
	ID           string       `db:"id" json:"_id"`
	Name         string       `db:"name" json:"name"`
	Description  string       `db:"description" json:"description"`
	Category     string       `db:"category" json:"category"`
	Image        string       `db:"image" json:"image,omitempty"`
	CustomFields CustomFields `db:"custom_fields" json:"customFields,omitempty"`
	CreatedAt    time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updatedAt"`
}
