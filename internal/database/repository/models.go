package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// Country represents a country row.
type Country struct {
	ID   int64
	Name string
}

// Warehouse represents a warehouse row. Warehouses are the nodes of the
// route-planning graph.
type Warehouse struct {
	ID        int64
	Building  string
	City      string
	Region    string
	CountryID int64
}

// Branch represents a branch row. RouteDistance is the local connector
// distance between the branch and its warehouse.
type Branch struct {
	ID            int64
	Name          string
	City          string
	WarehouseID   int64
	CountryID     int64
	RouteDistance int64
	Delivery      bool
}

// Client represents a customer account.
type Client struct {
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	CountryID    int64
	BranchID     int64
}

// PkgAdmin represents a warehouse package administrator.
type PkgAdmin struct {
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	BranchID     int64
}

// Locker is a locker joined with its country and warehouse, carrying the
// derived package count and total weight of the packages it holds.
type Locker struct {
	ID            int64
	Client        string
	Country       Country
	Warehouse     Warehouse
	PackageCount  int64
	PackageWeight decimal.Decimal
}

// Package represents a package row.
type Package struct {
	TrackingNumber string
	Client         string
	LockerID       *int64
	BranchID       *int64
	GuideNumber    *string
	Weight         decimal.Decimal
	Content        string
	CreatedAt      time.Time
}

// ShippingGuide represents a shipment of one or more packages.
type ShippingGuide struct {
	Number         string
	Sender         *string
	Recipient      string
	FromBranch     *int64
	FromLocker     *int64
	ToBranch       *int64
	ToLocker       *int64
	DeliveryBranch *int64
	PackageCount   int64
	RouteDistance  *int64
	CreatedAt      time.Time
}

// Payment represents the payment recorded for a guide.
type Payment struct {
	TransactionID string
	GuideNumber   string
	Amount        decimal.Decimal
	Bank          string
	CreatedAt     time.Time
}
