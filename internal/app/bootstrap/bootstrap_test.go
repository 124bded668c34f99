package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	notificationports "estatehub/contexts/engagement/notification-service/ports"
	"estatehub/contexts/identity-access/account-service/adapters/security"
	"estatehub/internal/platform/httpserver"
	"estatehub/internal/platform/messaging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type harness struct {
	t       *testing.T
	server  *httptest.Server
	storage *Storage
	bus     *messaging.Bus
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	tokens, err := security.NewJWT("test-secret", time.Hour, "estatehub-test")
	require.NoError(t, err)
	storage := NewMemoryStorage()
	bus := messaging.NewBus(16, nil)
	modules := BuildModules(Wiring{
		Storage:           storage,
		Bus:               bus,
		Tokens:            tokens,
		FanoutConcurrency: 2,
		BcryptCost:        bcrypt.MinCost,
	})
	srv := httptest.NewServer(httpserver.New(modules, nil, "", httpserver.Options{}).Handler())
	t.Cleanup(srv.Close)
	return &harness{t: t, server: srv, storage: storage, bus: bus}
}

func (h *harness) do(method, path, token string, body any) (int, map[string]any) {
	h.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, h.server.URL+path, reader)
	require.NoError(h.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

// account signs up and logs in, returning the user id and bearer token.
func (h *harness) account(name, email, role string) (string, string) {
	h.t.Helper()
	status, body := h.do(http.MethodPost, "/auth/signup", "", map[string]string{
		"fullName": name,
		"email":    email,
		"phone":    "5551234567",
		"password": "correct-horse",
		"role":     role,
	})
	require.Equal(h.t, http.StatusCreated, status, body)
	status, body = h.do(http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": "correct-horse",
	})
	require.Equal(h.t, http.StatusOK, status, body)
	return body["id"].(string), body["token"].(string)
}

func cottage() map[string]any {
	return map[string]any{
		"title":       "Lakeview Cottage",
		"description": "Two bedroom cottage by the lake",
		"type":        "House",
		"price":       250000,
		"location":    "Lake Town",
		"size":        1200,
		"sizeUnit":    "sqft",
		"bedrooms":    2,
		"amenities":   []string{"Garden", "Parking"},
	}
}

func property(body map[string]any) map[string]any {
	return body["property"].(map[string]any)
}

func TestSubmissionNotifiesEveryAdmin(t *testing.T) {
	h := newHarness(t)
	admin1, admin1Token := h.account("Ada Admin", "ada@example.com", "admin")
	admin2, _ := h.account("Alan Admin", "alan@example.com", "admin")
	_, sellerToken := h.account("Sam Seller", "sam@example.com", "seller")

	status, body := h.do(http.MethodPost, "/properties", sellerToken, cottage())
	require.Equal(t, http.StatusCreated, status, body)
	created := property(body)
	assert.Equal(t, "Pending", created["status"])

	notifications := h.storage.Notifications
	for _, adminID := range []string{admin1, admin2} {
		items, err := notifications.ListByRecipient(context.Background(), adminID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, `A new property "Lakeview Cottage" requires your approval.`, items[0].Message)
		assert.Equal(t, created["id"], items[0].RelatedPropertyID)
	}

	status, body = h.do(http.MethodGet, "/notifications", admin1Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["unread"])

	status, _ = h.do(http.MethodGet, "/notifications", sellerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestQuickToggleLifecycle(t *testing.T) {
	h := newHarness(t)
	_, adminToken := h.account("Ada Admin", "ada@example.com", "admin")
	_, sellerToken := h.account("Sam Seller", "sam@example.com", "seller")

	_, body := h.do(http.MethodPost, "/properties", sellerToken, cottage())
	id := property(body)["id"].(string)
	path := "/properties/" + id + "/status"

	status, body := h.do(http.MethodPatch, path, adminToken, map[string]string{"status": "Active"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Active", property(body)["status"])

	status, body = h.do(http.MethodPatch, path, adminToken, map[string]string{"status": "Sold"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_status", body["code"])

	status, _ = h.do(http.MethodPatch, path, sellerToken, map[string]string{"status": "Pending"})
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = h.do(http.MethodPatch, path, "", map[string]string{"status": "Pending"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = h.do(http.MethodGet, "/properties/"+id, "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Active", property(body)["status"])
	owner := property(body)["ownerContact"].(map[string]any)
	assert.Equal(t, "sam@example.com", owner["email"])

	status, body = h.do(http.MethodGet, "/properties/public", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"], 1)
}

func TestScopedListsAndSummary(t *testing.T) {
	h := newHarness(t)
	_, adminToken := h.account("Ada Admin", "ada@example.com", "admin")
	_, sellerToken := h.account("Sam Seller", "sam@example.com", "seller")
	_, otherToken := h.account("Olga Other", "olga@example.com", "seller")

	h.do(http.MethodPost, "/properties", sellerToken, cottage())
	h.do(http.MethodPost, "/properties", otherToken, cottage())

	_, body := h.do(http.MethodGet, "/properties", sellerToken, nil)
	assert.Len(t, body["items"], 1)
	_, body = h.do(http.MethodGet, "/properties", adminToken, nil)
	assert.Len(t, body["items"], 2)
	status, body := h.do(http.MethodGet, "/properties", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["items"])

	_, body = h.do(http.MethodGet, "/properties/summary", adminToken, nil)
	assert.EqualValues(t, 2, body["total"])
	assert.EqualValues(t, 2, body["pending"])
}

func TestDeleteUserCascadesListings(t *testing.T) {
	h := newHarness(t)
	_, adminToken := h.account("Ada Admin", "ada@example.com", "admin")
	sellerID, sellerToken := h.account("Sam Seller", "sam@example.com", "seller")

	_, body := h.do(http.MethodPost, "/properties", sellerToken, cottage())
	id := property(body)["id"].(string)

	status, _ := h.do(http.MethodDelete, "/users/"+sellerID, sellerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = h.do(http.MethodDelete, "/users/"+sellerID, adminToken, nil)
	require.Equal(t, http.StatusOK, status, body)

	status, _ = h.do(http.MethodGet, "/properties/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	// The deleted seller's token no longer resolves to a principal.
	status, _ = h.do(http.MethodPost, "/properties", sellerToken, cottage())
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestContactSubmissionNotifiesAdmins(t *testing.T) {
	h := newHarness(t)
	adminID, adminToken := h.account("Ada Admin", "ada@example.com", "admin")

	status, body := h.do(http.MethodPost, "/contacts", "", map[string]string{
		"name":    "Jane Visitor",
		"email":   "jane@example.com",
		"message": "Is the cottage still available?",
	})
	require.Equal(t, http.StatusCreated, status, body)

	items, err := h.storage.Notifications.ListByRecipient(context.Background(), adminID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "New contact submission from Jane Visitor", items[0].Message)

	status, _ = h.do(http.MethodGet, "/contacts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, body = h.do(http.MethodGet, "/contacts", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"], 1)
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []notificationports.Email
}

func (m *recordingMailer) Send(_ context.Context, email notificationports.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, email)
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func TestEmailRelayMailsAdminsOverTheBus(t *testing.T) {
	h := newHarness(t)
	h.account("Ada Admin", "ada@example.com", "admin")
	_, sellerToken := h.account("Sam Seller", "sam@example.com", "seller")

	mail := &recordingMailer{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	relay := NewEmailRelay(h.storage, h.bus, mail, nil)
	require.NoError(t, relay.Start(ctx))

	h.do(http.MethodPost, "/properties", sellerToken, cottage())

	assert.Eventually(t, func() bool { return mail.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	mail.mu.Lock()
	defer mail.mu.Unlock()
	assert.Equal(t, "ada@example.com", mail.sent[0].To)
}

var _ EventBus = (*messaging.Bus)(nil)
var _ EventBus = (*messaging.AMQP)(nil)
