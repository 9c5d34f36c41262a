package models

import (
	"fmt"
	"time"
)

// Status is the lifecycle stage of an order. It is never stored; it is
// derived from the order and shipped dates on every read.
type Status int

const (
	StatusCreated Status = iota
	StatusInWork
	StatusFinished
)

func DeriveStatus(orderDate, shippedDate *time.Time) Status {
	if orderDate == nil {
		return StatusCreated
	}
	if shippedDate == nil {
		return StatusInWork
	}
	return StatusFinished
}

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusInWork:
		return "in_work"
	case StatusFinished:
		return "finished"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case StatusCreated, StatusInWork, StatusFinished:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("invalid order status %d", int(s))
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "created":
		*s = StatusCreated
	case "in_work":
		*s = StatusInWork
	case "finished":
		*s = StatusFinished
	default:
		return fmt.Errorf("invalid order status %q", text)
	}
	return nil
}
