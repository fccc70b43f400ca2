package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrMalformedTimestamp = errors.New("malformed timestamp")

type dateAndTimeAPI struct {
	Date      *string `json:"date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

// DateAndTime is the event schedule block. Start preceding end is advisory,
// parsing does not enforce it.
type DateAndTime struct {
	Date      time.Time
	StartTime time.Time
	EndTime   *time.Time
}

func parseWireTimestamp(name string, value *string) (time.Time, error) {
	if value == nil {
		return time.Time{}, fmt.Errorf("%w: %s is missing", ErrMalformedTimestamp, name)
	}

	result, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q", ErrMalformedTimestamp, name, *value)
	}

	return result, nil
}

func (d *DateAndTime) UnmarshalJSON(raw []byte) error {
	var wire dateAndTimeAPI

	if err := json.Unmarshal(raw, &wire); err != nil {
		return fmt.Errorf("%w: date_and_time: %w", ErrMalformedTimestamp, err)
	}

	date, err := parseWireTimestamp("date", wire.Date)
	if err != nil {
		return err
	}

	startTime, err := parseWireTimestamp("start_time", wire.StartTime)
	if err != nil {
		return err
	}

	var endTime *time.Time
	if wire.EndTime != nil {
		endTimeValue, err := parseWireTimestamp("end_time", wire.EndTime)
		if err != nil {
			return err
		}

		endTime = &endTimeValue
	}

	d.Date = date
	d.StartTime = startTime
	d.EndTime = endTime

	return nil
}

func (d DateAndTime) MarshalJSON() ([]byte, error) {
	date := d.Date.Format(time.RFC3339)
	startTime := d.StartTime.Format(time.RFC3339)

	var endTime *string
	if d.EndTime != nil {
		endTimeValue := d.EndTime.Format(time.RFC3339)
		endTime = &endTimeValue
	}

	return json.Marshal(dateAndTimeAPI{
		Date:      &date,
		StartTime: &startTime,
		EndTime:   endTime,
	})
}
