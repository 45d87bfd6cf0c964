package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// LayoutAddon is an optional extra sold with a layout. Prices live here, on
// the server side; submissions reference addons by name only.
type LayoutAddon struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// LayoutAddons is stored as a JSONB column.
type LayoutAddons []LayoutAddon

// Value implements driver.Valuer.
func (a LayoutAddons) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *LayoutAddons) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into LayoutAddons", src)
	}
	return json.Unmarshal(raw, a)
}

// StudioLayout is a bookable room/setup belonging to a studio. A booking
// reserves one layout for one minute package.
type StudioLayout struct {
	ID       int64
	StudioID int64

	Name        string
	Description string
	Capacity    int

	// Price of one minute package.
	Price         float64
	MinutePackage int

	Photos    StringList
	Amenities StringList
	Addons    LayoutAddons

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AddonByName returns the addon with the given name, if the layout sells it.
func (l *StudioLayout) AddonByName(name string) (*LayoutAddon, bool) {
	for i := range l.Addons {
		if l.Addons[i].Name == name {
			return &l.Addons[i], true
		}
	}
	return nil, false
}

// StringList is a text array stored as JSONB (photos, amenities).
type StringList []string

// Value implements driver.Valuer.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *StringList) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	return json.Unmarshal(raw, s)
}
