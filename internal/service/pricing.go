package service

import (
	"github.com/shopspring/decimal"

	"github.com/jask/rushcargo/internal/database/repository"
)

// Locker and delivery limits.
const (
	LockerMaxPackages   = 5
	DeliveryMaxPackages = 3
)

var (
	LockerMaxWeight   = decimal.RequireFromString("50.00")
	DeliverySurcharge = decimal.RequireFromString("10.00")

	baseFee = decimal.RequireFromString("5.00")
	perKilo = decimal.RequireFromString("1.50")
)

// Quote prices a shipment: a base fee plus a per-kilo rate for every
// package, and a flat surcharge for home delivery.
func Quote(packages []repository.Package, delivery bool) decimal.Decimal {
	total := decimal.Zero
	for _, p := range packages {
		total = total.Add(baseFee).Add(perKilo.Mul(p.Weight))
	}
	if delivery {
		total = total.Add(DeliverySurcharge)
	}
	return total.Round(2)
}

// TotalWeight sums package weights.
func TotalWeight(packages []repository.Package) decimal.Decimal {
	total := decimal.Zero
	for _, p := range packages {
		total = total.Add(p.Weight)
	}
	return total
}

// LockerCapacity reports whether adding packages to l would break the
// package count limit, and by how much it would exceed the weight limit
// (zero when it fits).
func LockerCapacity(l repository.Locker, packages []repository.Package) (tooMany bool, excess decimal.Decimal) {
	tooMany = l.PackageCount+int64(len(packages)) > LockerMaxPackages
	after := l.PackageWeight.Add(TotalWeight(packages))
	if after.GreaterThan(LockerMaxWeight) {
		excess = after.Sub(LockerMaxWeight)
	}
	return tooMany, excess
}
