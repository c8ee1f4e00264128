package models

import "database/sql/driver"

// Multilingual is a locale-keyed JSON document, e.g. {"locales": {"en": "Old town"}}.
// Its inner structure is not interpreted here.
type Multilingual map[string]interface{}

// Value implements driver.Valuer
func (m Multilingual) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return jsonValue(m)
}

// Scan implements sql.Scanner
func (m *Multilingual) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	return jsonScan(src, m)
}

// ExternalLinks holds multilingual quiz/blog links of a POI
type ExternalLinks map[string]interface{}

// Value implements driver.Valuer
func (l ExternalLinks) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return jsonValue(l)
}

// Scan implements sql.Scanner
func (l *ExternalLinks) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	return jsonScan(src, l)
}

// Locales is a list of language codes
type Locales []string

// Value implements driver.Valuer
func (l Locales) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return jsonValue(l)
}

// Scan implements sql.Scanner
func (l *Locales) Scan(src interface{}) error {
	*l = Locales{}
	return jsonScan(src, l)
}
