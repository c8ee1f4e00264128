package models

import (
	"database/sql/driver"
	"fmt"

	"github.com/goccy/go-json"
)

// Coordinates is a latitude/longitude pair stored as a JSON object
type Coordinates struct {
	Lat  float64 `json:"lat" validate:"latitude"`
	Long float64 `json:"long" validate:"longitude"`
}

// Value implements driver.Valuer
func (c Coordinates) Value() (driver.Value, error) {
	return jsonValue(c)
}

// Scan implements sql.Scanner
func (c *Coordinates) Scan(src interface{}) error {
	return jsonScan(src, c)
}

// BoundingBox is the [southwest, northeast] pair enclosing a tour's POIs
type BoundingBox [2]Coordinates

// SouthWest returns the minimum corner
func (b BoundingBox) SouthWest() Coordinates { return b[0] }

// NorthEast returns the maximum corner
func (b BoundingBox) NorthEast() Coordinates { return b[1] }

// Value implements driver.Valuer
func (b BoundingBox) Value() (driver.Value, error) {
	return jsonValue(b)
}

// Scan implements sql.Scanner
func (b *BoundingBox) Scan(src interface{}) error {
	return jsonScan(src, b)
}

// jsonValue encodes v as a string so that both TEXT (SQLite) and JSONB
// (PostgreSQL) columns accept it
func jsonValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(src interface{}, dest interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("cannot scan %T into %T", src, dest)
	}
}
