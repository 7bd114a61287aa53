package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by lookups that require exactly one row.
var ErrNotFound = errors.New("not found")

// Row is a result row keyed by column name. Every entity in this package can
// be built from one, whichever driver produced it.
type Row map[string]any

// scanRows drains rows into column-keyed maps.
func scanRows(rows *sql.Rows) ([]Row, error) {
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []Row
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			row[strings.ToLower(c)] = vals[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// rowReader converts column values and keeps the first conversion error.
type rowReader struct {
	row Row
	err error
}

func (r *rowReader) fail(col string, format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf("column %s: %s", col, fmt.Sprintf(format, args...))
	}
}

func (r *rowReader) value(col string) (any, bool) {
	v, ok := r.row[col]
	if !ok {
		r.fail(col, "missing")
		return nil, false
	}
	return v, v != nil
}

func (r *rowReader) int64(col string) int64 {
	v, ok := r.value(col)
	if !ok {
		if r.err == nil {
			r.fail(col, "unexpected NULL")
		}
		return 0
	}
	return r.toInt64(col, v)
}

func (r *rowReader) nullInt64(col string) *int64 {
	v, ok := r.value(col)
	if !ok {
		return nil
	}
	n := r.toInt64(col, v)
	return &n
}

func (r *rowReader) toInt64(col string, v any) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case int32:
		return int64(x)
	case int:
		return int64(x)
	case float64:
		return int64(x)
	case []byte:
		return r.parseInt(col, string(x))
	case string:
		return r.parseInt(col, x)
	}
	r.fail(col, "cannot read %T as integer", v)
	return 0
}

func (r *rowReader) parseInt(col, s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		r.fail(col, "%v", err)
	}
	return n
}

func (r *rowReader) string(col string) string {
	v, ok := r.value(col)
	if !ok {
		if r.err == nil {
			r.fail(col, "unexpected NULL")
		}
		return ""
	}
	return r.toString(col, v)
}

func (r *rowReader) nullString(col string) *string {
	v, ok := r.value(col)
	if !ok {
		return nil
	}
	s := r.toString(col, v)
	return &s
}

func (r *rowReader) toString(col string, v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	}
	r.fail(col, "cannot read %T as text", v)
	return ""
}

func (r *rowReader) bool(col string) bool {
	v, ok := r.value(col)
	if !ok {
		return false
	}
	switch x := v.(type) {
	case bool:
		return x
	case int64:
		return x != 0
	case []byte:
		return parseBool(string(x))
	case string:
		return parseBool(x)
	}
	r.fail(col, "cannot read %T as boolean", v)
	return false
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true":
		return true
	}
	return false
}

func (r *rowReader) decimal(col string) decimal.Decimal {
	v, ok := r.value(col)
	if !ok {
		return decimal.Zero
	}
	switch x := v.(type) {
	case int64:
		return decimal.New(x, 0)
	case float64:
		return decimal.NewFromFloat(x).Round(2)
	case []byte:
		return r.parseDecimal(col, string(x))
	case string:
		return r.parseDecimal(col, x)
	}
	r.fail(col, "cannot read %T as decimal", v)
	return decimal.Zero
}

func (r *rowReader) parseDecimal(col, s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		r.fail(col, "%v", err)
	}
	return d
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

func (r *rowReader) time(col string) time.Time {
	v, ok := r.value(col)
	if !ok {
		return time.Time{}
	}
	var s string
	switch x := v.(type) {
	case time.Time:
		return x
	case string:
		s = x
	case []byte:
		s = string(x)
	default:
		r.fail(col, "cannot read %T as time", v)
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	r.fail(col, "unrecognised time %q", s)
	return time.Time{}
}

// BranchFromRow builds a Branch from a branch row.
func BranchFromRow(row Row) (Branch, error) {
	r := &rowReader{row: row}
	b := Branch{
		ID:            r.int64("branch_id"),
		Name:          r.string("name"),
		City:          r.string("city"),
		WarehouseID:   r.int64("warehouse_id"),
		CountryID:     r.int64("country_id"),
		RouteDistance: r.int64("route_distance"),
		Delivery:      r.bool("delivery"),
	}
	return b, r.err
}

// ClientFromRow builds a Client from a client row.
func ClientFromRow(row Row) (Client, error) {
	r := &rowReader{row: row}
	c := Client{
		Username:     r.string("username"),
		FirstName:    r.string("first_name"),
		LastName:     r.string("last_name"),
		PasswordHash: r.string("password_hash"),
		CountryID:    r.int64("country_id"),
		BranchID:     r.int64("branch_id"),
	}
	return c, r.err
}

// PkgAdminFromRow builds a PkgAdmin from a pkgadmin row.
func PkgAdminFromRow(row Row) (PkgAdmin, error) {
	r := &rowReader{row: row}
	a := PkgAdmin{
		Username:     r.string("username"),
		FirstName:    r.string("first_name"),
		LastName:     r.string("last_name"),
		PasswordHash: r.string("password_hash"),
		BranchID:     r.int64("branch_id"),
	}
	return a, r.err
}

// LockerFromRow builds a Locker from the locker/country/warehouse join.
func LockerFromRow(row Row) (Locker, error) {
	r := &rowReader{row: row}
	countryID := r.int64("country_id")
	l := Locker{
		ID:     r.int64("locker_id"),
		Client: r.string("client"),
		Country: Country{
			ID:   countryID,
			Name: r.string("country_name"),
		},
		Warehouse: Warehouse{
			ID:        r.int64("warehouse_id"),
			Building:  r.string("building"),
			City:      r.string("warehouse_city"),
			Region:    r.string("region"),
			CountryID: countryID,
		},
		PackageCount:  r.int64("package_count"),
		PackageWeight: r.decimal("package_weight"),
	}
	return l, r.err
}

// PackageFromRow builds a Package from a package row.
func PackageFromRow(row Row) (Package, error) {
	r := &rowReader{row: row}
	p := Package{
		TrackingNumber: r.string("tracking_number"),
		Client:         r.string("client"),
		LockerID:       r.nullInt64("locker_id"),
		BranchID:       r.nullInt64("branch_id"),
		GuideNumber:    r.nullString("guide_number"),
		Weight:         r.decimal("weight"),
		Content:        r.string("content"),
		CreatedAt:      r.time("created_at"),
	}
	return p, r.err
}

// GuideFromRow builds a ShippingGuide from a shipping_guide row.
func GuideFromRow(row Row) (ShippingGuide, error) {
	r := &rowReader{row: row}
	g := ShippingGuide{
		Number:         r.string("guide_number"),
		Sender:         r.nullString("sender"),
		Recipient:      r.string("recipient"),
		FromBranch:     r.nullInt64("from_branch"),
		FromLocker:     r.nullInt64("from_locker"),
		ToBranch:       r.nullInt64("to_branch"),
		ToLocker:       r.nullInt64("to_locker"),
		DeliveryBranch: r.nullInt64("delivery_branch"),
		PackageCount:   r.int64("package_count"),
		RouteDistance:  r.nullInt64("route_distance"),
		CreatedAt:      r.time("created_at"),
	}
	return g, r.err
}

// PaymentFromRow builds a Payment from a payment row.
func PaymentFromRow(row Row) (Payment, error) {
	r := &rowReader{row: row}
	p := Payment{
		TransactionID: r.string("transaction_id"),
		GuideNumber:   r.string("guide_number"),
		Amount:        r.decimal("amount"),
		Bank:          r.string("bank"),
		CreatedAt:     r.time("created_at"),
	}
	return p, r.err
}
