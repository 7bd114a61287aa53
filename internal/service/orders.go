package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jask/rushcargo/internal/database/repository"
)

// Order is a client's paid request to move packages out of a locker.
// Exactly one of ToLocker, ToBranch and Delivery is set.
type Order struct {
	Sender        string
	FromLocker    int64
	Packages      []repository.Package
	ToLocker      *int64
	ToBranch      *int64
	Delivery      *int64
	Amount        decimal.Decimal
	Bank          string
	TransactionID string
}

// OrderService issues guides for client orders.
type OrderService struct {
	Guides *repository.GuideRepo
}

// Place records the guide, the payment and the package moves in one
// transaction and returns the new guide.
func (s *OrderService) Place(ctx context.Context, o Order) (repository.ShippingGuide, error) {
	if len(o.Packages) == 0 {
		return repository.ShippingGuide{}, fmt.Errorf("place order: no packages")
	}
	targets := 0
	for _, t := range []*int64{o.ToLocker, o.ToBranch, o.Delivery} {
		if t != nil {
			targets++
		}
	}
	if targets != 1 {
		return repository.ShippingGuide{}, fmt.Errorf("place order: need exactly one destination, got %d", targets)
	}

	sender := o.Sender
	from := o.FromLocker
	g := repository.ShippingGuide{
		Number:         NewGuideNumber(),
		Sender:         &sender,
		Recipient:      o.Sender,
		FromLocker:     &from,
		ToLocker:       o.ToLocker,
		ToBranch:       o.ToBranch,
		DeliveryBranch: o.Delivery,
		PackageCount:   int64(len(o.Packages)),
	}
	move := make([]string, 0, len(o.Packages))
	for _, p := range o.Packages {
		move = append(move, p.TrackingNumber)
	}
	err := s.Guides.CreateShipment(ctx, repository.Shipment{
		Guide: g,
		Payment: &repository.Payment{
			TransactionID: strings.TrimSpace(o.TransactionID),
			Amount:        o.Amount,
			Bank:          o.Bank,
		},
		Move: move,
	})
	if err != nil {
		return repository.ShippingGuide{}, fmt.Errorf("place order: %w", err)
	}
	return g, nil
}
