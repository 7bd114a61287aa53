package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/rushcargo/internal/database"
	"github.com/jask/rushcargo/internal/database/dbtest"
	"github.com/jask/rushcargo/internal/database/repository"
)

func pkg(weight string) repository.Package {
	return repository.Package{Weight: decimal.RequireFromString(weight)}
}

func TestQuote(t *testing.T) {
	got := Quote([]repository.Package{pkg("2.50"), pkg("1.20")}, false)
	require.Equal(t, "15.55", got.StringFixed(2))

	got = Quote([]repository.Package{pkg("1.00")}, true)
	require.Equal(t, "16.50", got.StringFixed(2))
}

func TestLockerCapacity(t *testing.T) {
	l := repository.Locker{PackageCount: 4, PackageWeight: decimal.RequireFromString("45.00")}

	tooMany, excess := LockerCapacity(l, []repository.Package{pkg("3.00")})
	require.False(t, tooMany)
	require.True(t, excess.IsZero())

	tooMany, excess = LockerCapacity(l, []repository.Package{pkg("3.00"), pkg("4.50")})
	require.True(t, tooMany)
	require.Equal(t, "2.50", excess.StringFixed(2))
}

func TestLogin(t *testing.T) {
	store := dbtest.Store(t)
	svc := &AuthService{Users: store.Users}
	ctx := context.Background()

	acct, err := svc.Login(ctx, "alice", database.DemoPassword)
	require.NoError(t, err)
	require.NotNil(t, acct.Client)
	require.Nil(t, acct.PkgAdmin)

	acct, err = svc.Login(ctx, "admin", database.DemoPassword)
	require.NoError(t, err)
	require.NotNil(t, acct.PkgAdmin)

	_, err = svc.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody", database.DemoPassword)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPlaceOrderToBranch(t *testing.T) {
	store := dbtest.Store(t)
	svc := &OrderService{Guides: store.Guides}
	ctx := context.Background()

	pkgs, err := store.Packages.PackagesByLocker(ctx, 101)
	require.NoError(t, err)
	branch := int64(3)
	g, err := svc.Place(ctx, Order{
		Sender:        "alice",
		FromLocker:    101,
		Packages:      pkgs[:2],
		ToBranch:      &branch,
		Amount:        Quote(pkgs[:2], false),
		Bank:          "AmazonPay",
		TransactionID: " TX-99 ",
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), g.PackageCount)

	left, err := store.Packages.PackagesByLocker(ctx, 101)
	require.NoError(t, err)
	require.Len(t, left, 1)

	p, err := store.Guides.PaymentByGuide(ctx, g.Number)
	require.NoError(t, err)
	require.Equal(t, "TX-99", p.TransactionID)
}

func TestPlaceOrderNeedsOneDestination(t *testing.T) {
	svc := &OrderService{}
	_, err := svc.Place(context.Background(), Order{Packages: []repository.Package{pkg("1")}})
	require.ErrorContains(t, err, "exactly one destination")
}

func TestIntakeSuggestsRecipient(t *testing.T) {
	store := dbtest.Store(t)
	svc := &IntakeService{Users: store.Users, Guides: store.Guides}

	_, err := svc.Register(context.Background(), Intake{Recipient: "alise", FromBranch: 1, ToBranch: 3, Weight: decimal.NewFromInt(1), Content: "x"})
	var unknown *UnknownRecipientError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, "alice", unknown.Suggestion)
	require.Contains(t, err.Error(), `did you mean "alice"`)

	_, err = svc.Register(context.Background(), Intake{Recipient: "zzzzzzzz", FromBranch: 1, ToBranch: 3, Weight: decimal.NewFromInt(1), Content: "x"})
	require.True(t, errors.As(err, &unknown))
	require.Empty(t, unknown.Suggestion)
}

func TestIntakeRegisters(t *testing.T) {
	store := dbtest.Store(t)
	svc := &IntakeService{Users: store.Users, Guides: store.Guides}
	ctx := context.Background()

	rec, err := svc.Register(ctx, Intake{
		Recipient: "carla", FromBranch: 1, ToBranch: 3,
		Weight: decimal.RequireFromString("2.345"), Content: " Lamp ", RouteDistance: 112,
	})
	require.NoError(t, err)

	pkgs, err := store.Packages.PackagesByGuide(ctx, rec.GuideNumber)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	require.Equal(t, rec.TrackingNumber, pkgs[0].TrackingNumber)
	require.Equal(t, "Lamp", pkgs[0].Content)
	require.Equal(t, "carla", pkgs[0].Client)
}
