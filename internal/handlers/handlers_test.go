package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/topcardetailing/booking-api/internal/audit"
	"github.com/topcardetailing/booking-api/internal/config"
	dbpkg "github.com/topcardetailing/booking-api/internal/db"
	"github.com/topcardetailing/booking-api/internal/handlers"
	"github.com/topcardetailing/booking-api/internal/models"
	"github.com/topcardetailing/booking-api/internal/notify"
	"github.com/topcardetailing/booking-api/internal/payment"
	"github.com/topcardetailing/booking-api/internal/routes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Env:                "test",
		JWTSecret:          "test-secret",
		Timezone:           "UTC",
		PaymentProvider:    "mock",
		PaymentSuccessRate: 1.0,
		PaymentLatencyMs:   1,
	}
}

func newServer(t *testing.T) (*gin.Engine, *gorm.DB) {
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

	r := gin.New()
	routes.RegisterRoutes(r, db, testConfig(), zap.NewNop())
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w.Code, envelope
}

func data(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()
	d, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %v", envelope)
	}
	return d
}

// ======================================================
// CATALOG
// ======================================================

func TestServices_SeededCatalog(t *testing.T) {
	r, _ := newServer(t)

	code, env := doJSON(t, r, http.MethodGet, "/api/services", nil)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if env["success"] != true {
		t.Fatalf("expected success envelope, got %v", env)
	}

	pkgs, ok := env["data"].([]any)
	if !ok || len(pkgs) != 6 {
		t.Fatalf("expected 6 seeded packages, got %v", env["data"])
	}
}

func TestServices_CreateDefaultsAndDeleteTwice(t *testing.T) {
	r, _ := newServer(t)

	code, env := doJSON(t, r, http.MethodPost, "/api/services", gin.H{
		"name":        "Engine Bay Detail",
		"description": "Degrease and dress the engine bay",
		"basePrice":   100.0,
	})
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", code, env)
	}

	pkg := data(t, env)
	if pkg["premiumPrice"] != 130.0 {
		t.Fatalf("expected premiumPrice defaulted to 130, got %v", pkg["premiumPrice"])
	}
	if pkg["duration"] != 120.0 {
		t.Fatalf("expected duration defaulted to 120, got %v", pkg["duration"])
	}

	path := "/api/services?id=" + url.QueryEscape(pkg["id"].(string))

	code, _ = doJSON(t, r, http.MethodDelete, path, nil)
	if code != http.StatusOK {
		t.Fatalf("first delete: expected 200, got %d", code)
	}

	code, env = doJSON(t, r, http.MethodDelete, path, nil)
	if code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", code)
	}
	if env["error"] != "service_not_found" {
		t.Fatalf("expected service_not_found, got %v", env["error"])
	}
}

// ======================================================
// BOOKINGS
// ======================================================

func bookingBody() gin.H {
	return gin.H{
		"customerName":     "Jane Doe",
		"customerEmail":    "jane@example.com",
		"customerPhone":    "0412 345 678",
		"servicePackageId": "basic-detail",
		"vehicleType":      "standard",
		"appointmentDate":  "2026-09-01",
		"appointmentTime":  "09:30",
		"address":          "1 Example Street, Sydney NSW 2000",
		"paymentMethod":    "online",
	}
}

func TestBooking_Lifecycle(t *testing.T) {
	r, _ := newServer(t)

	code, env := doJSON(t, r, http.MethodPost, "/api/appointments", bookingBody())
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", code, env)
	}

	ap := data(t, env)
	if ap["totalPrice"] != 79.0 {
		t.Fatalf("expected totalPrice 79, got %v", ap["totalPrice"])
	}
	if ap["status"] != "pending" || ap["paymentStatus"] != "pending" {
		t.Fatalf("expected pending/pending, got %v/%v", ap["status"], ap["paymentStatus"])
	}

	id := ap["id"].(string)
	path := "/api/appointments?id=" + url.QueryEscape(id)

	code, env = doJSON(t, r, http.MethodPut, path, gin.H{"status": "confirmed"})
	if code != http.StatusOK {
		t.Fatalf("confirm: expected 200, got %d: %v", code, env)
	}

	code, env = doJSON(t, r, http.MethodPut, path, gin.H{
		"status":             "assigned",
		"assignedWorkerId":   "W1",
		"assignedWorkerName": "Mike",
	})
	if code != http.StatusOK {
		t.Fatalf("assign: expected 200, got %d: %v", code, env)
	}
	if data(t, env)["assignedWorkerId"] != "W1" {
		t.Fatalf("expected worker W1, got %v", data(t, env)["assignedWorkerId"])
	}

	code, env = doJSON(t, r, http.MethodGet, "/api/appointments?workerId=W1", nil)
	if code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", code)
	}
	if rows, ok := env["data"].([]any); !ok || len(rows) != 1 {
		t.Fatalf("expected 1 appointment for W1, got %v", env["data"])
	}
}

func TestBooking_UnknownPackage(t *testing.T) {
	r, db := newServer(t)

	body := bookingBody()
	body["servicePackageId"] = "no-such-package"

	code, env := doJSON(t, r, http.MethodPost, "/api/appointments", body)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if env["error"] != "invalid_service_package" {
		t.Fatalf("expected invalid_service_package, got %v", env["error"])
	}

	var count int64
	db.Model(&models.Appointment{}).Count(&count)
	if count != 0 {
		t.Fatalf("failed booking must not persist, found %d rows", count)
	}
}

func TestBooking_RejectsSkippedStage(t *testing.T) {
	r, _ := newServer(t)

	_, env := doJSON(t, r, http.MethodPost, "/api/appointments", bookingBody())
	id := data(t, env)["id"].(string)

	code, env := doJSON(t, r, http.MethodPut,
		"/api/appointments?id="+url.QueryEscape(id),
		gin.H{"status": "completed"})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if env["error"] != "invalid_transition" {
		t.Fatalf("expected invalid_transition, got %v", env["error"])
	}
}

// ======================================================
// PAYMENTS
// ======================================================

func TestPayments_SuccessAndHistory(t *testing.T) {
	r, _ := newServer(t)

	code, env := doJSON(t, r, http.MethodPost, "/api/payments", gin.H{
		"appointmentId": "apt-1",
		"amount":        79.0,
		"paymentMethod": "online",
		"customerEmail": "jane@example.com",
	})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", code, env)
	}
	if data(t, env)["status"] != payment.StatusSuccess {
		t.Fatalf("expected success, got %v", data(t, env)["status"])
	}

	code, env = doJSON(t, r, http.MethodGet, "/api/payments?appointmentId=apt-1", nil)
	if code != http.StatusOK {
		t.Fatalf("history: expected 200, got %d", code)
	}
	rows, ok := env["data"].([]any)
	if !ok || len(rows) != 1 {
		t.Fatalf("expected 1 payment record, got %v", env["data"])
	}
}

type decliningProcessor struct{}

func (decliningProcessor) Process(_ context.Context, req payment.Request) (*payment.Result, error) {
	return &payment.Result{
		PaymentID:     "PAY_TEST",
		Status:        payment.StatusFailed,
		TransactionID: "",
		Amount:        req.Amount,
		Message:       "Payment declined. Please try a different payment method.",
	}, nil
}

func TestPayments_DeclinedIs402AndStillRecorded(t *testing.T) {
	_, db := newServer(t)

	log := zap.NewNop()
	h := handlers.NewPaymentHandler(
		db,
		decliningProcessor{},
		notify.NewLogNotifier(log),
		audit.NewDispatcher(audit.New(db), log),
		"UTC",
	)

	r := gin.New()
	r.POST("/api/payments", h.Process)

	code, env := doJSON(t, r, http.MethodPost, "/api/payments", gin.H{
		"appointmentId": "apt-2",
		"amount":        300.0,
		"paymentMethod": "online",
		"customerEmail": "jane@example.com",
	})
	if code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d: %v", code, env)
	}
	if env["error"] != "payment_failed" {
		t.Fatalf("expected payment_failed, got %v", env["error"])
	}

	// Declined attempts still land in the ledger.
	var count int64
	db.Model(&models.Payment{}).Where("appointment_id = ?", "apt-2").Count(&count)
	if count != 1 {
		t.Fatalf("expected declined attempt recorded, found %d rows", count)
	}
}

// ======================================================
// UPLOADS
// ======================================================

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < 8; i++ {
		img.Set(i, i, color.RGBA{R: 255, A: 255})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func multipartUpload(t *testing.T, r *gin.Engine, file []byte, fields map[string]string) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", "photo.png")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := fw.Write(file); err != nil {
		t.Fatalf("write file: %v", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w.Code, envelope
}

func TestUploads_ValidImage(t *testing.T) {
	r, db := newServer(t)

	code, env := multipartUpload(t, r, pngBytes(t), map[string]string{
		"appointmentId": "apt-1",
		"workerId":      "W1",
		"type":          "before",
	})
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", code, env)
	}

	rec := data(t, env)
	if rec["contentType"] != "image/png" {
		t.Fatalf("expected image/png, got %v", rec["contentType"])
	}
	if rec["url"] == "" {
		t.Fatal("expected a stored URL")
	}

	var count int64
	db.Model(&models.JobImage{}).Where("appointment_id = ?", "apt-1").Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 job image row, got %d", count)
	}
}

func TestUploads_RejectsNonImageAndBadType(t *testing.T) {
	r, _ := newServer(t)

	code, env := multipartUpload(t, r, []byte("#!/bin/sh\necho pwned\n"), map[string]string{
		"appointmentId": "apt-1",
		"workerId":      "W1",
		"type":          "before",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-image payload, got %d", code)
	}
	if env["error"] != "invalid_file_type" {
		t.Fatalf("expected invalid_file_type, got %v", env["error"])
	}

	code, env = multipartUpload(t, r, pngBytes(t), map[string]string{
		"appointmentId": "apt-1",
		"type":          "during",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad image type, got %d", code)
	}
	if env["error"] != "invalid_image_type" {
		t.Fatalf("expected invalid_image_type, got %v", env["error"])
	}
}

// ======================================================
// AUTH
// ======================================================

func loginToken(t *testing.T, r *gin.Engine, email string) (string, string) {
	t.Helper()

	code, env := doJSON(t, r, http.MethodPost, "/api/auth?action=login", gin.H{
		"email":    email,
		"password": "whatever",
	})
	if code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %v", email, code, env)
	}

	d := data(t, env)
	user := d["user"].(map[string]any)
	return d["token"].(string), user["role"].(string)
}

func TestAuth_RoleFromEmail(t *testing.T) {
	r, _ := newServer(t)

	cases := map[string]string{
		"admin@topcardetailing.com.au": "admin",
		"worker1@topcardetailing.com":  "worker",
		"jane.customer@example.com":    "customer",
		"someone.else@big-company.org": "customer",
	}
	for email, want := range cases {
		if _, role := loginToken(t, r, email); role != want {
			t.Errorf("%s: expected role %s, got %s", email, want, role)
		}
	}
}

func TestAuth_SecuredRoutes(t *testing.T) {
	r, _ := newServer(t)

	adminToken, _ := loginToken(t, r, "admin@topcardetailing.com.au")
	customerToken, _ := loginToken(t, r, "jane@example.com")

	get := func(path, token string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := get("/api/me", ""); code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", code)
	}
	if code := get("/api/me", customerToken); code != http.StatusOK {
		t.Fatalf("customer /me: expected 200, got %d", code)
	}
	if code := get("/api/me/audit-logs", customerToken); code != http.StatusForbidden {
		t.Fatalf("customer audit-logs: expected 403, got %d", code)
	}
	if code := get("/api/me/audit-logs", adminToken); code != http.StatusOK {
		t.Fatalf("admin audit-logs: expected 200, got %d", code)
	}
}

func TestAuth_SignupThenLoginKeepsIdentity(t *testing.T) {
	r, _ := newServer(t)

	code, env := doJSON(t, r, http.MethodPost, "/api/auth?action=signup", gin.H{
		"name":     "Sam Customer",
		"email":    "sam@example.com",
		"password": "hunter22",
	})
	if code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %v", code, env)
	}
	signedUp := data(t, env)["user"].(map[string]any)

	code, env = doJSON(t, r, http.MethodPost, "/api/auth?action=login", gin.H{
		"email":    "sam@example.com",
		"password": "anything-at-all",
	})
	if code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", code)
	}
	loggedIn := data(t, env)["user"].(map[string]any)

	if loggedIn["id"] != signedUp["id"] || loggedIn["name"] != "Sam Customer" {
		t.Fatalf("expected stored identity on login, got %v", loggedIn)
	}
}

// ======================================================
// EXPENSES
// ======================================================

func TestExpenses_ValidationAndDeleteTwice(t *testing.T) {
	r, _ := newServer(t)

	code, _ := doJSON(t, r, http.MethodPost, "/api/expenses", gin.H{
		"workerId":    "W1",
		"type":        "fuel",
		"amount":      0.0,
		"description": "servo run",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("zero amount: expected 400, got %d", code)
	}

	code, env := doJSON(t, r, http.MethodPost, "/api/expenses", gin.H{
		"workerId":    "W1",
		"workerName":  "Mike",
		"type":        "fuel",
		"amount":      45.50,
		"description": "servo run",
	})
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", code, env)
	}

	path := "/api/expenses?id=" + url.QueryEscape(data(t, env)["id"].(string))

	if code, _ := doJSON(t, r, http.MethodDelete, path, nil); code != http.StatusOK {
		t.Fatalf("first delete: expected 200, got %d", code)
	}
	code, env = doJSON(t, r, http.MethodDelete, path, nil)
	if code != http.StatusNotFound || env["error"] != "expense_not_found" {
		t.Fatalf("second delete: expected 404 expense_not_found, got %d %v", code, env["error"])
	}
}

// ======================================================
// SALES
// ======================================================

func TestSales_SummaryOverLiveData(t *testing.T) {
	r, _ := newServer(t)

	_, env := doJSON(t, r, http.MethodPost, "/api/appointments", bookingBody())
	id := data(t, env)["id"].(string)
	path := "/api/appointments?id=" + url.QueryEscape(id)

	for _, status := range []string{"confirmed", "assigned", "in-progress", "completed"} {
		body := gin.H{"status": status}
		if status == "assigned" {
			body["assignedWorkerId"] = "W1"
			body["assignedWorkerName"] = "Mike"
		}
		if code, e := doJSON(t, r, http.MethodPut, path, body); code != http.StatusOK {
			t.Fatalf("to %s: expected 200, got %d: %v", status, code, e)
		}
	}
	if code, _ := doJSON(t, r, http.MethodPut, path, gin.H{"paymentStatus": "paid"}); code != http.StatusOK {
		t.Fatalf("mark paid failed")
	}

	code, env := doJSON(t, r, http.MethodGet, "/api/sales/summary", nil)
	if code != http.StatusOK {
		t.Fatalf("summary: expected 200, got %d", code)
	}

	s := data(t, env)
	if s["completedJobs"] != 1.0 {
		t.Fatalf("expected 1 completed job, got %v", s["completedJobs"])
	}
	if s["pendingPayments"] != 0.0 {
		t.Fatalf("expected no pending payments, got %v", s["pendingPayments"])
	}
	// The booking is dated 2026-09-01, so it never lands in the live
	// today/week windows; month revenue depends on the wall clock and is
	// not asserted here.
	if _, ok := s["netProfit"]; !ok {
		t.Fatal("expected netProfit in summary")
	}
}
