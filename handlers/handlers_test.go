package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingSessionRepo "pathlab/database/repository/bookingsession"
	localRepo "pathlab/database/repository/local"
	"pathlab/handlers"
	"pathlab/models"
	"pathlab/routes"
	"pathlab/services/admin"
	"pathlab/services/booking"
	ai "pathlab/services/intelligence"
	"pathlab/services/lab"
	"pathlab/services/report"
	"pathlab/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.RegisterValidators()
}

type stubGenerator struct{ out string }

func (g stubGenerator) GenerateContent(context.Context, string) (string, error) {
	return g.out, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.NotificationPayload
}

func (n *recordingNotifier) Notify(_ context.Context, p models.NotificationPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, p)
	return nil
}

func (n *recordingNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.sent))
	for i, p := range n.sent {
		out[i] = p.Kind
	}
	return out
}

type testServer struct {
	router   *gin.Engine
	store    *lab.Store
	notifier *recordingNotifier
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	kv, err := localRepo.NewFileStore("")
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	logger := zap.NewNop()

	store := lab.NewStore(nil, localRepo.NewAppointmentArchive(kv), time.Second, logger)
	store.Init(context.Background())

	notifier := &recordingNotifier{}
	bookingSvc := &booking.DefaultBookingService{
		Sessions: bookingSessionRepo.NewMemoryStore(time.Hour),
		Catalog:  store,
		Payments: booking.NewSimulatedProvider(0, logger),
		Notifier: notifier,
		Logger:   logger,
		Location: time.UTC,
	}

	credential := admin.NewStoredCredential(kv, "admin123")
	auth := admin.NewAuthenticator(credential, kv, "test-secret", time.Hour, logger)
	renderer := report.NewRenderer(report.NewRegistry(nil), report.DefaultLab, time.UTC)

	hb := handlers.NewHandlerBundle(handlers.Deps{
		Store:         store,
		Booking:       bookingSvc,
		Authenticator: auth,
		Passwords:     credential,
		Recommender:   ai.NewRecommender(stubGenerator{out: `["t2","unknown","t2"]`}, nil, 0, logger),
		Renderer:      renderer,
		Reports:       &report.Service{Renderer: renderer, Publisher: report.LinkPublisher{BaseURL: "http://lab.test"}},
		Notifier:      notifier,
		Location:      time.UTC,
		LoginPerMin:   100,
	})

	r := gin.New()
	routes.RegisterRoutes(r, hb)
	return &testServer{router: r, store: store, notifier: notifier}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{"password": "admin123"})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", w.Code, w.Body.String())
	}
	return decode[admin.Session](t, w).Token
}

type sessionBody struct {
	models.BookingSession
	StepNumber int `json:"stepNumber"`
}

func TestCatalogEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/tests?category=Urine", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	list := decode[struct {
		Tests []models.LabTest `json:"tests"`
	}](t, w)
	if len(list.Tests) != 1 || list.Tests[0].ID != "t6" {
		t.Fatalf("urine tests = %+v", list.Tests)
	}

	w = s.do(t, http.MethodGet, "/api/tests?recommended=t4", "", nil)
	ranked := decode[struct {
		Tests []models.LabTest `json:"tests"`
	}](t, w)
	if ranked.Tests[0].ID != "t4" {
		t.Fatalf("recommended test not first: %s", ranked.Tests[0].ID)
	}

	w = s.do(t, http.MethodGet, "/api/tests/categories", "", nil)
	cats := decode[struct {
		Categories []string `json:"categories"`
	}](t, w)
	if len(cats.Categories) == 0 || cats.Categories[0] != "All" {
		t.Fatalf("categories = %v", cats.Categories)
	}

	if w := s.do(t, http.MethodGet, "/api/tests/t1", "", nil); w.Code != http.StatusOK {
		t.Fatalf("get t1 status = %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/api/tests/nope", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("get unknown status = %d", w.Code)
	}

	w = s.do(t, http.MethodGet, "/api/booking/dates", "", nil)
	dates := decode[struct {
		Dates []string `json:"dates"`
	}](t, w)
	if len(dates.Dates) != booking.BookingWindowDays {
		t.Fatalf("dates = %v", dates.Dates)
	}
}

func TestBookingToReportFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/booking/sessions", "", map[string]string{"testId": "t1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("start status = %d: %s", w.Code, w.Body.String())
	}
	session := decode[sessionBody](t, w)
	if session.StepNumber != 1 || session.Price != 499 {
		t.Fatalf("unexpected session %+v", session)
	}
	base := "/api/booking/sessions/" + session.SessionID

	if w := s.do(t, http.MethodPost, base+"/next", "", nil); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("next without schedule status = %d", w.Code)
	}
	if w := s.do(t, http.MethodPut, base+"/schedule", "", map[string]string{"date": "not-a-date"}); w.Code != http.StatusBadRequest {
		t.Fatalf("bad date status = %d", w.Code)
	}

	date := booking.BookableDates(time.Now(), time.UTC)[1]
	w = s.do(t, http.MethodPut, base+"/schedule", "", map[string]string{"date": date, "timeSlot": "09:00 AM - 10:00 AM"})
	if w.Code != http.StatusOK {
		t.Fatalf("schedule status = %d: %s", w.Code, w.Body.String())
	}
	if w := s.do(t, http.MethodPost, base+"/next", "", nil); w.Code != http.StatusOK {
		t.Fatalf("next to patient status = %d", w.Code)
	}
	if w := s.do(t, http.MethodPost, base+"/next", "", nil); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("next with empty patient status = %d", w.Code)
	}

	patient := models.PatientDetails{Name: "Asha", Age: "34", Phone: "9876543210", Email: "asha@example.com", Address: "MG Road"}
	if w := s.do(t, http.MethodPut, base+"/patient", "", patient); w.Code != http.StatusOK {
		t.Fatalf("patient status = %d", w.Code)
	}
	w = s.do(t, http.MethodPost, base+"/next", "", nil)
	if got := decode[sessionBody](t, w); got.Step != models.StepPayment || got.StepNumber != 3 {
		t.Fatalf("expected payment step, got %+v", got)
	}

	w = s.do(t, http.MethodPost, base+"/confirm", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("confirm status = %d: %s", w.Code, w.Body.String())
	}
	confirmed := decode[struct {
		Appointment models.Appointment `json:"appointment"`
	}](t, w)
	appt := confirmed.Appointment
	if appt.Status != models.StatusConfirmed || appt.User.ID != appt.ID || appt.Date != date {
		t.Fatalf("unexpected appointment %+v", appt)
	}

	// Confirming twice returns the same appointment.
	w = s.do(t, http.MethodPost, base+"/confirm", "", nil)
	again := decode[struct {
		Appointment models.Appointment `json:"appointment"`
	}](t, w)
	if again.Appointment.ID != appt.ID || len(s.store.Appointments()) != 1 {
		t.Fatalf("second confirm created a new appointment")
	}

	if w := s.do(t, http.MethodGet, "/api/appointments/"+appt.ID+"/report", "", nil); w.Code != http.StatusConflict {
		t.Fatalf("early report status = %d", w.Code)
	}

	token := s.login(t)
	w = s.do(t, http.MethodPatch, "/api/admin/appointments/"+appt.ID+"/status", token, map[string]string{"status": "Report Ready"})
	if w.Code != http.StatusOK {
		t.Fatalf("status update = %d: %s", w.Code, w.Body.String())
	}
	updated := decode[struct {
		models.Appointment
		ReportViewable bool `json:"reportViewable"`
	}](t, w)
	wantURL := "http://lab.test/api/appointments/" + appt.ID + "/report"
	if updated.ReportURL != wantURL || !updated.ReportViewable {
		t.Fatalf("report url = %q viewable = %v", updated.ReportURL, updated.ReportViewable)
	}

	w = s.do(t, http.MethodGet, "/api/appointments/"+appt.ID+"/report", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Hemoglobin") {
		t.Fatalf("report status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}

	kinds := s.notifier.kinds()
	if len(kinds) != 2 || kinds[0] != models.NotifyBookingConfirmed || kinds[1] != models.NotifyReportReady {
		t.Fatalf("notifications = %v", kinds)
	}
}

func TestAdminAuth(t *testing.T) {
	s := newTestServer(t)

	if w := s.do(t, http.MethodGet, "/api/admin/appointments", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token status = %d", w.Code)
	}
	if w := s.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{"password": "wrong"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d", w.Code)
	}

	token := s.login(t)
	if w := s.do(t, http.MethodGet, "/api/admin/appointments", token, nil); w.Code != http.StatusOK {
		t.Fatalf("admin list status = %d", w.Code)
	}

	w := s.do(t, http.MethodPut, "/api/admin/password", token, map[string]string{"newPassword": "a", "confirmPassword": "b"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("mismatched password status = %d", w.Code)
	}
	w = s.do(t, http.MethodPut, "/api/admin/password", token, map[string]string{"newPassword": "s3cret", "confirmPassword": "s3cret"})
	if w.Code != http.StatusOK {
		t.Fatalf("change password status = %d", w.Code)
	}

	if w := s.do(t, http.MethodPost, "/api/admin/logout", token, nil); w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/api/admin/appointments", token, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("revoked token status = %d", w.Code)
	}
	if w := s.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{"password": "s3cret"}); w.Code != http.StatusOK {
		t.Fatalf("login with new password status = %d", w.Code)
	}
}

func TestAdminTestManagement(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	invalid := map[string]any{"name": "X", "price": 0, "category": "Blood"}
	if w := s.do(t, http.MethodPost, "/api/admin/tests", token, invalid); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid test status = %d", w.Code)
	}

	newTest := map[string]any{"name": "Vitamin D", "price": 900, "category": "Blood", "turnaroundTime": "24 Hours"}
	w := s.do(t, http.MethodPost, "/api/admin/tests", token, newTest)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}
	created := decode[models.LabTest](t, w)
	if created.ID == "" {
		t.Fatal("created test has no id")
	}

	w = s.do(t, http.MethodGet, "/api/admin/sync/test/"+created.ID, token, nil)
	state := decode[models.SyncState](t, w)
	if state.Status != models.SyncSucceeded || !state.Local {
		t.Fatalf("sync state = %+v", state)
	}

	newTest["price"] = 950
	if w := s.do(t, http.MethodPut, "/api/admin/tests/"+created.ID, token, newTest); w.Code != http.StatusOK {
		t.Fatalf("update status = %d", w.Code)
	}
	if got, _ := s.store.GetTestByID(created.ID); got.Price != 950 {
		t.Fatalf("price = %d", got.Price)
	}
	if w := s.do(t, http.MethodPut, "/api/admin/tests/missing", token, newTest); w.Code != http.StatusNotFound {
		t.Fatalf("update unknown status = %d", w.Code)
	}

	if w := s.do(t, http.MethodDelete, "/api/admin/tests/"+created.ID, token, nil); w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	if _, ok := s.store.GetTestByID(created.ID); ok {
		t.Fatal("test still present after delete")
	}
	if w := s.do(t, http.MethodGet, "/api/admin/sync/widget/x", token, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown kind status = %d", w.Code)
	}
}

func TestAdminCreateTestDuplicateID(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)
	before := len(s.store.Tests())

	dup := map[string]any{"id": "t1", "name": "CBC again", "price": 100, "category": "Blood"}
	w := s.do(t, http.MethodPost, "/api/admin/tests", token, dup)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate id status = %d: %s", w.Code, w.Body.String())
	}
	if got := len(s.store.Tests()); got != before {
		t.Fatalf("catalog size = %d, want %d", got, before)
	}
	if got, _ := s.store.GetTestByID("t1"); got.Name == "CBC again" {
		t.Fatal("existing entry was overwritten")
	}
}

func TestRecommendEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/ai/recommend", "", map[string]string{"symptoms": "tired all the time"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	got := decode[models.RecommendResponse](t, w)
	if len(got.TestIDs) != 1 || got.TestIDs[0] != "t2" || len(got.Tests) != 1 {
		t.Fatalf("response = %+v", got)
	}

	w = s.do(t, http.MethodPost, "/api/ai/recommend", "", map[string]string{"symptoms": "  "})
	empty := decode[models.RecommendResponse](t, w)
	if empty.TestIDs == nil || len(empty.TestIDs) != 0 {
		t.Fatalf("blank symptoms = %+v", empty)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", "", nil)
	body := decode[map[string]any](t, w)
	if body["fallbackMode"] != true || body["isLoading"] != false {
		t.Fatalf("health = %v", body)
	}
}
