package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/rushcargo/internal/database"
)

// GuideRepo handles shipping guides and their payments.
type GuideRepo struct {
	db *sql.DB
}

func NewGuideRepo(db *sql.DB) *GuideRepo {
	return &GuideRepo{db: db}
}

const guideSelect = `
	SELECT guide_number, sender, recipient, from_branch, from_locker, to_branch, to_locker,
	 delivery_branch, package_count, route_distance, created_at
	FROM shipping_guide `

// GuidesBySender lists the guides a client has sent, newest first.
func (r *GuideRepo) GuidesBySender(ctx context.Context, username string) ([]ShippingGuide, error) {
	return queryAll(ctx, r.db, GuideFromRow,
		guideSelect+`WHERE sender = $1 ORDER BY created_at DESC, guide_number`, username)
}

// GuidesByBranch lists every guide leaving, reaching or delivered from branchID.
func (r *GuideRepo) GuidesByBranch(ctx context.Context, branchID int64) ([]ShippingGuide, error) {
	return queryAll(ctx, r.db, GuideFromRow,
		guideSelect+`WHERE from_branch = $1 OR to_branch = $1 OR delivery_branch = $1
	ORDER BY created_at DESC, guide_number`, branchID)
}

func (r *GuideRepo) GuideByNumber(ctx context.Context, number string) (ShippingGuide, error) {
	return queryOne(ctx, r.db, GuideFromRow, guideSelect+`WHERE guide_number = $1`, number)
}

// PaymentByGuide returns ErrNotFound for guides nobody paid for, such as
// packages registered at a branch counter.
func (r *GuideRepo) PaymentByGuide(ctx context.Context, number string) (Payment, error) {
	return queryOne(ctx, r.db, PaymentFromRow, `
	SELECT transaction_id, guide_number, amount, bank, created_at
	FROM payment WHERE guide_number = $1`, number)
}

// Shipment is everything written when a guide is issued.
type Shipment struct {
	Guide   ShippingGuide
	Payment *Payment
	// Move lists tracking numbers of existing packages owned by the guide's
	// sender; they are reassigned to the guide's destination.
	Move []string
	// New lists packages created under the guide.
	New []Package
}

// CreateShipment writes the guide, its payment and its packages in one transaction.
func (r *GuideRepo) CreateShipment(ctx context.Context, s Shipment) error {
	g := s.Guide
	if g.Number == "" {
		return fmt.Errorf("create shipment: guide number required")
	}
	destBranch := g.ToBranch
	if destBranch == nil {
		destBranch = g.DeliveryBranch
	}
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO shipping_guide(guide_number, sender, recipient, from_branch, from_locker,
		 to_branch, to_locker, delivery_branch, package_count, route_distance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			g.Number, g.Sender, g.Recipient, g.FromBranch, g.FromLocker,
			g.ToBranch, g.ToLocker, g.DeliveryBranch, g.PackageCount, g.RouteDistance,
		); err != nil {
			return fmt.Errorf("insert guide: %w", err)
		}

		if p := s.Payment; p != nil {
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO payment(transaction_id, guide_number, amount, bank)
			VALUES ($1, $2, $3, $4)`,
				p.TransactionID, g.Number, p.Amount, p.Bank,
			); err != nil {
				return fmt.Errorf("insert payment: %w", err)
			}
		}

		for _, tn := range s.Move {
			res, err := tx.ExecContext(ctx, `
			UPDATE package SET guide_number = $1, locker_id = $2, branch_id = $3
			WHERE tracking_number = $4 AND client = $5`,
				g.Number, g.ToLocker, destBranch, tn, g.Sender,
			)
			if err != nil {
				return fmt.Errorf("move package %s: %w", tn, err)
			}
			if n, err := res.RowsAffected(); err != nil {
				return err
			} else if n != 1 {
				return fmt.Errorf("move package %s: %w", tn, ErrNotFound)
			}
		}

		for _, p := range s.New {
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO package(tracking_number, client, locker_id, branch_id, guide_number, weight, content)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				p.TrackingNumber, p.Client, p.LockerID, p.BranchID, g.Number, p.Weight, p.Content,
			); err != nil {
				return fmt.Errorf("insert package: %w", err)
			}
		}
		return nil
	})
}
