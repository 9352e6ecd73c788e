package model

import "github.com/google/uuid"

// NewScanID creates an identifier for one analyzer run.
func NewScanID() string {
	return uuid.New().String()
}
