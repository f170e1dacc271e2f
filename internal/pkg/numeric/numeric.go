package numeric

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Meters is a vessel/berth dimension normalized to a plain number at the
// system boundary. Client payloads and imported registries deliver lengths
// and widths either as JSON numbers or as numeric strings ("7.0"); comparing
// those as strings orders lexicographically, so the value is parsed to a
// float exactly once here and every downstream comparison is numeric.
type Meters float64

func (m Meters) Float64() float64 { return float64(m) }

// Parse accepts "7", "7.0", " 7.50 " and the like.
func Parse(s string) (Meters, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid dimension %q", s)
	}
	return Meters(v), nil
}

func (m *Meters) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*m = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		v, err := Parse(raw)
		if err != nil {
			return err
		}
		*m = v
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid dimension %s", s)
	}
	*m = Meters(v)
	return nil
}

func (m Meters) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(m))
}

// Scan tolerates float, integer, string and []byte column representations:
// sqlite and imported dumps are not consistent about the column type.
func (m *Meters) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = 0
		return nil
	case float64:
		*m = Meters(v)
		return nil
	case int64:
		*m = Meters(v)
		return nil
	case string:
		p, err := Parse(v)
		if err != nil {
			return err
		}
		*m = p
		return nil
	case []byte:
		p, err := Parse(string(v))
		if err != nil {
			return err
		}
		*m = p
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Meters", src)
	}
}

func (m Meters) Value() (driver.Value, error) {
	return float64(m), nil
}
