package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// JSON stores an opaque structured blob in a MySQL json column. The
// provider response audit blob and the nested capture/link snapshots go
// through this type; they are never parsed back out except by the
// translator.
type JSON []byte

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		buf := make([]byte, len(v))
		copy(buf, v)
		*j = buf
	case string:
		*j = JSON(v)
	default:
		return fmt.Errorf("JSON scan failed: unsupported type %T", value)
	}
	return nil
}

func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return []byte(j), nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return errors.New("JSON unmarshal on nil pointer")
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	*j = buf
	return nil
}
