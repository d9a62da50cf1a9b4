package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// ErrScanValueNotBytes indicates the database value cannot be decoded as JSON.
var ErrScanValueNotBytes = errors.New("valueobject: jsonmap scan value is not []byte")

// JSONMap is a JSON object column, stored as jsonb.
type JSONMap map[string]any

// Value encodes the map; a nil map is stored as an empty object.
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(j)
}

// Scan decodes a jsonb column. NULL becomes an empty map.
func (j *JSONMap) Scan(value any) error {
	var raw []byte

	switch v := value.(type) {
	case nil:
		*j = JSONMap{}
		return nil
	case map[string]any:
		// pgx decodes jsonb into a map already
		*j = JSONMap(v)
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return ErrScanValueNotBytes
	}

	out := JSONMap{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}

	*j = out
	return nil
}

// Set stores value under key, allocating the map when needed.
func (j *JSONMap) Set(key string, value any) {
	if *j == nil {
		*j = JSONMap{}
	}
	(*j)[key] = value
}

// GetString returns "" when key is missing or not a string.
func (j JSONMap) GetString(key string) string {
	v, _ := j[key].(string)
	return v
}

// GetBool returns false when key is missing or not a bool.
func (j JSONMap) GetBool(key string) bool {
	v, _ := j[key].(bool)
	return v
}
