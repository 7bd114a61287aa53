package service

import (
	"strings"

	"github.com/google/uuid"
)

// NewGuideNumber returns a short, human-typable guide number.
func NewGuideNumber() string {
	return "GD-" + shortID()
}

// NewTrackingNumber returns a short, human-typable package tracking number.
func NewTrackingNumber() string {
	return "PKG-" + shortID()
}

func shortID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}
