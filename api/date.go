package api

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const DateLayout = "2006-01-02"

// Date is a calendar date, encoded as YYYY-MM-DD on the wire.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, errors.Wrapf(err, "Invalid date %q", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var buf string
	if err := json.Unmarshal(data, &buf); err != nil {
		return errors.Wrap(err, "Date must be a string")
	}
	if buf == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(buf)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
