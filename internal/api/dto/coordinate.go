package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Coordinate accepts either a JSON number or a numeric string, since clients
// submit form values as strings. Non-numeric input is rejected at decode time
// rather than producing NaN downstream.
type Coordinate float64

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	s := string(data)
	if strings.HasPrefix(s, `"`) {
		var quoted string
		if err := json.Unmarshal(data, &quoted); err != nil {
			return err
		}
		s = strings.TrimSpace(quoted)
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid coordinate %q", s)
	}
	*c = Coordinate(value)
	return nil
}

// Float returns the parsed value.
func (c Coordinate) Float() float64 {
	return float64(c)
}
