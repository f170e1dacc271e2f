package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// MonthList is a set of calendar months (1..12) stored as a JSON array
// column. Clubs use it for active rental months, tariffs and booking rules
// for the months they cover.
type MonthList []int

func (m MonthList) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]int(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *MonthList) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into MonthList", src)
	}
	if len(data) == 0 {
		*m = nil
		return nil
	}
	var out []int
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

func (m MonthList) Contains(month int) bool {
	for _, v := range m {
		if v == month {
			return true
		}
	}
	return false
}

// Normalized returns the months sorted, deduplicated and restricted to 1..12.
func (m MonthList) Normalized() MonthList {
	seen := map[int]bool{}
	out := make(MonthList, 0, len(m))
	for _, v := range m {
		if v < 1 || v > 12 || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

func (m MonthList) Intersect(other MonthList) MonthList {
	out := make(MonthList, 0, len(m))
	for _, v := range m.Normalized() {
		if other.Contains(v) {
			out = append(out, v)
		}
	}
	return out
}

// SpanInYear resolves the list to a concrete date range within the given
// year: the first day of the earliest month through the last day of the
// latest month. The list must be non-empty.
func (m MonthList) SpanInYear(year int) (start, end time.Time) {
	n := m.Normalized()
	first := n[0]
	last := n[len(n)-1]
	start = time.Date(year, time.Month(first), 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(year, time.Month(last)+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return start, end
}
