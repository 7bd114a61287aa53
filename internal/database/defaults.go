package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/rushcargo/internal/auth"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "cargo123"

type seedPackage struct {
	client  string
	locker  int64
	weight  string
	content string
	guide   string
}

// DemoTrackingNumber derives the stable tracking number of the n-th seeded
// package of a locker.
func DemoTrackingNumber(locker int64, n int) string {
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("pkg:%d:%d", locker, n)))
	return "PKG-" + strings.ToUpper(id.String()[:8])
}

// DemoGuideNumber is the guide seeded as already sent by alice.
var DemoGuideNumber = "GD-" + strings.ToUpper(uuid.NewSHA1(uuid.NameSpaceOID, []byte("guide:demo")).String()[:8])

// SeedDemo fills an empty store with a small network of countries,
// warehouses, branches and accounts. It is idempotent: a store that already
// has countries is left alone.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	var n int64
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM country`).Scan(&n); err != nil {
		return fmt.Errorf("check seed: %w", err)
	}
	if n > 0 {
		return nil
	}
	hash, err := auth.Hash(DemoPassword)
	if err != nil {
		return err
	}

	return WithTx(ctx, db, func(tx *sql.Tx) error {
		exec := func(query string, args ...any) error {
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			return nil
		}

		for _, c := range []struct {
			id   int64
			name string
		}{{1, "Venezuela"}, {2, "Colombia"}} {
			if err := exec(`INSERT INTO country(country_id, name) VALUES ($1, $2)`, c.id, c.name); err != nil {
				return err
			}
		}

		for _, w := range []struct {
			id                     int64
			building, city, region string
			country                int64
		}{
			{1, "Central Depot", "Caracas", "Capital", 1},
			{2, "North Yard", "Valencia", "Carabobo", 1},
			{3, "Andes Hub", "Bogota", "Cundinamarca", 2},
		} {
			if err := exec(`INSERT INTO warehouse(warehouse_id, building, city, region, country_id) VALUES ($1, $2, $3, $4, $5)`,
				w.id, w.building, w.city, w.region, w.country); err != nil {
				return err
			}
		}

		for _, b := range []struct {
			id         int64
			name, city string
			warehouse  int64
			country    int64
			distance   int64
			delivery   bool
		}{
			{1, "Caracas Centro", "Caracas", 1, 1, 5, true},
			{2, "Valencia Este", "Valencia", 2, 1, 7, false},
			{3, "Bogota Norte", "Bogota", 3, 2, 4, true},
			{4, "Caracas Oeste", "Caracas", 1, 1, 3, false},
		} {
			if err := exec(`INSERT INTO branch(branch_id, name, city, warehouse_id, country_id, route_distance, delivery)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				b.id, b.name, b.city, b.warehouse, b.country, b.distance, b.delivery); err != nil {
				return err
			}
		}

		for _, c := range []struct {
			username, first, last string
			country, branch       int64
		}{
			{"alice", "Alice", "Moreno", 1, 1},
			{"bob", "Bob", "Perez", 1, 2},
			{"carla", "Carla", "Rojas", 2, 3},
		} {
			if err := exec(`INSERT INTO client(username, first_name, last_name, password_hash, country_id, branch_id)
			VALUES ($1, $2, $3, $4, $5, $6)`,
				c.username, c.first, c.last, hash, c.country, c.branch); err != nil {
				return err
			}
		}
		if err := exec(`INSERT INTO pkgadmin(username, first_name, last_name, password_hash, branch_id)
		VALUES ($1, $2, $3, $4, $5)`, "admin", "Ana", "Silva", hash, 1); err != nil {
			return err
		}

		for _, l := range []struct {
			id                 int64
			client             string
			country, warehouse int64
		}{
			{101, "alice", 1, 1},
			{102, "alice", 1, 2},
			{103, "bob", 1, 1},
			{201, "carla", 2, 3},
		} {
			if err := exec(`INSERT INTO locker(locker_id, client, country_id, warehouse_id) VALUES ($1, $2, $3, $4)`,
				l.id, l.client, l.country, l.warehouse); err != nil {
				return err
			}
		}

		if err := exec(`INSERT INTO shipping_guide(guide_number, sender, recipient, from_locker, to_locker, package_count)
		VALUES ($1, $2, $3, $4, $5, $6)`, DemoGuideNumber, "alice", "carla", 102, 201, 1); err != nil {
			return err
		}
		if err := exec(`INSERT INTO payment(transaction_id, guide_number, amount, bank) VALUES ($1, $2, $3, $4)`,
			"TX-DEMO-0001", DemoGuideNumber, "6.20", "PayPal"); err != nil {
			return err
		}

		packages := []seedPackage{
			{"alice", 101, "2.50", "Books", ""},
			{"alice", 101, "1.20", "Headphones", ""},
			{"alice", 101, "12.00", "Monitor", ""},
			{"alice", 102, "0.80", "Phone case", ""},
			{"carla", 201, "0.80", "Scarf", DemoGuideNumber},
			{"carla", 201, "3.40", "Coffee beans", ""},
		}
		for i := 1; i <= 5; i++ {
			packages = append(packages, seedPackage{"bob", 103, "1.00", fmt.Sprintf("Parcel %d", i), ""})
		}
		count := map[int64]int{}
		for _, p := range packages {
			count[p.locker]++
			var guide any
			if p.guide != "" {
				guide = p.guide
			}
			if err := exec(`INSERT INTO package(tracking_number, client, locker_id, guide_number, weight, content)
			VALUES ($1, $2, $3, $4, $5, $6)`,
				DemoTrackingNumber(p.locker, count[p.locker]), p.client, p.locker, guide, p.weight, p.content); err != nil {
				return err
			}
		}
		return nil
	})
}
