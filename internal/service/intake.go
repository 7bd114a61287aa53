package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"

	"github.com/jask/rushcargo/internal/database/repository"
)

// Intake is a package registered at a branch counter by an admin.
type Intake struct {
	FromBranch    int64
	ToBranch      int64
	Recipient     string
	Weight        decimal.Decimal
	Content       string
	RouteDistance int64
}

// Receipt identifies what an intake created.
type Receipt struct {
	GuideNumber    string
	TrackingNumber string
}

// UnknownRecipientError is returned when no client has the given username.
// Suggestion is the closest existing username, if any is close enough.
type UnknownRecipientError struct {
	Name       string
	Suggestion string
}

func (e *UnknownRecipientError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown recipient %q, did you mean %q?", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown recipient %q", e.Name)
}

// IntakeService registers counter packages.
type IntakeService struct {
	Users  *repository.UserRepo
	Guides *repository.GuideRepo
}

func (s *IntakeService) Register(ctx context.Context, in Intake) (Receipt, error) {
	name := strings.TrimSpace(in.Recipient)
	if _, err := s.Users.ClientByUsername(ctx, name); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return Receipt{}, fmt.Errorf("lookup recipient: %w", err)
		}
		known, err := s.Users.ClientUsernames(ctx)
		if err != nil {
			return Receipt{}, fmt.Errorf("list clients: %w", err)
		}
		return Receipt{}, &UnknownRecipientError{Name: name, Suggestion: closest(name, known)}
	}

	from, to, dist := in.FromBranch, in.ToBranch, in.RouteDistance
	rec := Receipt{GuideNumber: NewGuideNumber(), TrackingNumber: NewTrackingNumber()}
	err := s.Guides.CreateShipment(ctx, repository.Shipment{
		Guide: repository.ShippingGuide{
			Number:        rec.GuideNumber,
			Recipient:     name,
			FromBranch:    &from,
			ToBranch:      &to,
			PackageCount:  1,
			RouteDistance: &dist,
		},
		New: []repository.Package{{
			TrackingNumber: rec.TrackingNumber,
			Client:         name,
			BranchID:       &from,
			Weight:         in.Weight.Round(2),
			Content:        strings.TrimSpace(in.Content),
		}},
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("register package: %w", err)
	}
	return rec, nil
}

// closest returns the candidate within a third of name's length in edits.
func closest(name string, candidates []string) string {
	best, bestDist := "", len(name)/3+1
	lower := strings.ToLower(name)
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
