package appointment

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/topcardetailing/booking-api/internal/audit"
	dbpkg "github.com/topcardetailing/booking-api/internal/db"
	domain "github.com/topcardetailing/booking-api/internal/domain/appointment"
	"github.com/topcardetailing/booking-api/internal/httperr"
	infraRepo "github.com/topcardetailing/booking-api/internal/infra/repository"
	"github.com/topcardetailing/booking-api/internal/models"
	"github.com/topcardetailing/booking-api/internal/notify"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := dbpkg.SeedServicePackages(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	return db
}

func newCreateUC(t *testing.T, db *gorm.DB) *CreateAppointment {
	t.Helper()

	log := zap.NewNop()
	dispatcher := audit.NewDispatcher(audit.New(db), log)

	return NewCreateAppointment(
		infraRepo.NewAppointmentGormRepository(db),
		dispatcher,
		notify.NewLogNotifier(log),
		"UTC",
	)
}

func booking(pkg, vehicle string) CreateAppointmentInput {
	return CreateAppointmentInput{
		CustomerName:     "Jane Doe",
		CustomerEmail:    "jane@example.com",
		CustomerPhone:    "0412 345 678",
		ServicePackageID: pkg,
		VehicleType:      vehicle,
		Date:             "2026-09-01",
		Time:             "09:30",
		Address:          "1 Example Street, Sydney NSW 2000",
		PaymentMethod:    "online",
	}
}

func TestCreate_PricesLargeVehicleAtPremiumTier(t *testing.T) {
	db := newTestDB(t)
	uc := newCreateUC(t, db)

	ap, err := uc.Execute(context.Background(), booking("full-detail", "large"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if ap.TotalPrice != 300 {
		t.Fatalf("expected totalPrice 300, got %v", ap.TotalPrice)
	}
	if ap.ServicePackageName != "Full Detail" {
		t.Fatalf("expected snapshotted package name, got %q", ap.ServicePackageName)
	}
}

func TestCreate_PricesStandardVehicleAtBaseTier(t *testing.T) {
	db := newTestDB(t)
	uc := newCreateUC(t, db)

	ap, err := uc.Execute(context.Background(), booking("full-detail", "standard"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if ap.TotalPrice != 199 {
		t.Fatalf("expected totalPrice 199, got %v", ap.TotalPrice)
	}
}

func TestCreate_Defaults(t *testing.T) {
	db := newTestDB(t)
	uc := newCreateUC(t, db)

	ap, err := uc.Execute(context.Background(), booking("basic-detail", "standard"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if ap.Status != "pending" {
		t.Fatalf("expected status pending, got %s", ap.Status)
	}
	if ap.PaymentStatus != "pending" {
		t.Fatalf("expected paymentStatus pending, got %s", ap.PaymentStatus)
	}
	if ap.ID == "" || ap.CustomerID == "" {
		t.Fatal("expected generated ids")
	}
}

func TestCreate_UnknownPackageWritesNothing(t *testing.T) {
	db := newTestDB(t)
	uc := newCreateUC(t, db)

	_, err := uc.Execute(context.Background(), booking("no-such-package", "standard"))
	if !httperr.IsBusiness(err, "invalid_service_package") {
		t.Fatalf("expected invalid_service_package, got %v", err)
	}

	var count int64
	db.Model(&models.Appointment{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected empty collection after failed booking, got %d rows", count)
	}
}

func TestCreate_RejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	uc := newCreateUC(t, db)

	cases := []struct {
		name   string
		mutate func(*CreateAppointmentInput)
		code   string
	}{
		{"bad date", func(in *CreateAppointmentInput) { in.Date = "01/09/2026" }, "invalid_date"},
		{"bad time", func(in *CreateAppointmentInput) { in.Time = "9am" }, "invalid_time"},
		{"bad vehicle", func(in *CreateAppointmentInput) { in.VehicleType = "truck" }, "invalid_vehicle_type"},
		{"bad method", func(in *CreateAppointmentInput) { in.PaymentMethod = "crypto" }, "invalid_payment_method"},
	}

	for _, tc := range cases {
		in := booking("basic-detail", "standard")
		tc.mutate(&in)

		_, err := uc.Execute(context.Background(), in)
		if !httperr.IsBusiness(err, tc.code) {
			t.Errorf("%s: expected %s, got %v", tc.name, tc.code, err)
		}
	}
}

func TestList_Filters(t *testing.T) {
	db := newTestDB(t)
	uc := newCreateUC(t, db)
	repo := infraRepo.NewAppointmentGormRepository(db)
	listUC := NewListAppointments(repo)

	first, err := uc.Execute(context.Background(), booking("basic-detail", "standard"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := uc.Execute(context.Background(), booking("full-detail", "large")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	all, err := listUC.Execute(context.Background(), domain.Filter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(all))
	}

	byCustomer, err := listUC.Execute(context.Background(), domain.Filter{CustomerID: &first.CustomerID})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(byCustomer) != 1 || byCustomer[0].ID != first.ID {
		t.Fatalf("customer filter: expected exactly the first booking, got %d rows", len(byCustomer))
	}

	status := "completed"
	none, err := listUC.Execute(context.Background(), domain.Filter{Status: &status})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("status filter: expected no completed appointments, got %d", len(none))
	}
}
