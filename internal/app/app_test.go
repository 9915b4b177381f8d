package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bloodbank/internal/config"
	"bloodbank/internal/db/dbtest"
	"bloodbank/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	user    string
	pass    string
}

func newTestServer(t *testing.T, authRequired bool) *testServer {
	t.Helper()
	cfg := config.Config{
		CORSOrigins: []string{"http://localhost:5173"},
		Auth: config.AuthConfig{
			Required:          authRequired,
			MinPasswordLength: 6,
			BcryptCost:        bcrypt.MinCost,
			LoginRedirectURL:  "/dashboard",
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}

	router, err := NewRouter(cfg, dbtest.Open(t), logger.Nop())
	require.NoError(t, err)
	return &testServer{t: t, handler: router}
}

func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	switch value := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(value))
	default:
		encoded, err := json.Marshal(value)
		require.NoError(s.t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.user != "" {
		req.SetBasicAuth(s.user, s.pass)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), rec.Body.String())
	return payload
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	envelope, ok := decode(t, rec)["error"].(map[string]interface{})
	require.True(t, ok, rec.Body.String())
	return envelope["code"].(string)
}

func (s *testServer) createHospital(name string) int64 {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/hospitals", map[string]interface{}{"name": name})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return int64(decode(s.t, rec)["id"].(float64))
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, false)

	rec := srv.do(http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func TestSignupAndLogin(t *testing.T) {
	srv := newTestServer(t, false)

	rec := srv.do(http.MethodPost, "/signup", map[string]interface{}{"name": "Ann", "email": "ann@example.com", "password": "12345"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "password_too_short", errorCode(t, rec))

	rec = srv.do(http.MethodPost, "/signup", map[string]interface{}{"name": "Ann", "email": "Ann@Example.com", "password": "123456"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Signup successful", decode(t, rec)["message"])

	rec = srv.do(http.MethodPost, "/signup", map[string]interface{}{"name": "Ann", "email": "ann@example.com", "password": "abcdef"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email_taken", errorCode(t, rec))

	rec = srv.do(http.MethodPost, "/signup", map[string]interface{}{"name": "Ann"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", errorCode(t, rec))

	rec = srv.do(http.MethodPost, "/login", map[string]interface{}{"email": "ann@example.com", "password": "wrong-pass"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_credentials", errorCode(t, rec))

	rec = srv.do(http.MethodPost, "/login", map[string]interface{}{"email": "nobody@example.com", "password": "123456"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(http.MethodPost, "/login", map[string]interface{}{"email": "ann@example.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodPost, "/login", map[string]interface{}{"email": "ann@example.com", "password": "123456"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/dashboard", decode(t, rec)["redirect_url"])
}

func TestHospitalEndpoints(t *testing.T) {
	srv := newTestServer(t, false)

	rec := srv.do(http.MethodPost, "/hospitals", map[string]interface{}{"name": "   "})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", errorCode(t, rec))

	id := srv.createHospital("General")

	rec = srv.do(http.MethodGet, "/hospitals", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "General", list[0]["name"])
	assert.Nil(t, list[0]["location"])

	rec = srv.do(http.MethodGet, "/hospitals/999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "hospital_not_found", errorCode(t, rec))

	rec = srv.do(http.MethodGet, "/hospitals/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodPost, "/inventory", map[string]interface{}{"blood_type": "O+", "units": 3, "hospital_id": id})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(http.MethodDelete, "/hospitals/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.do(http.MethodGet, "/inventory", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = srv.do(http.MethodDelete, "/hospitals/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInventoryCreditAndDebit(t *testing.T) {
	srv := newTestServer(t, false)
	id := srv.createHospital("General")

	rec := srv.do(http.MethodPost, "/inventory", map[string]interface{}{"blood_type": "o+", "units": 5, "hospital_id": id})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, float64(5), decode(t, rec)["units"])

	rec = srv.do(http.MethodPost, "/inventory", map[string]interface{}{"blood_type": "O+", "units": 3, "hospital_id": id})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(8), decode(t, rec)["units"])

	rec = srv.do(http.MethodPost, "/inventory/withdraw", map[string]interface{}{"blood_type": "O+", "units": 10, "hospital_id": id})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "insufficient_stock", errorCode(t, rec))

	rec = srv.do(http.MethodGet, "/hospitals/1/inventory", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, float64(8), rows[0]["units"])

	rec = srv.do(http.MethodPost, "/inventory/withdraw", map[string]interface{}{"blood_type": "O+", "units": 8, "hospital_id": id})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["units"])

	cases := []struct {
		name string
		body interface{}
		code string
	}{
		{name: "zero units", body: map[string]interface{}{"blood_type": "O+", "units": 0, "hospital_id": id}, code: "invalid_request"},
		{name: "negative units", body: map[string]interface{}{"blood_type": "O+", "units": -2, "hospital_id": id}, code: "invalid_request"},
		{name: "missing hospital", body: map[string]interface{}{"blood_type": "O+", "units": 1}, code: "invalid_request"},
		{name: "bad blood type", body: map[string]interface{}{"blood_type": "C+", "units": 1, "hospital_id": id}, code: "invalid_request"},
		{name: "units as string", body: `{"blood_type":"O+","units":"five","hospital_id":1}`, code: "invalid_json"},
		{name: "unknown field", body: `{"blood_type":"O+","units":1,"hospital_id":1,"extra":true}`, code: "invalid_json"},
		{name: "unknown hospital", body: map[string]interface{}{"blood_type": "O+", "units": 1, "hospital_id": 999}, code: "unknown_reference"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := srv.do(http.MethodPost, "/inventory", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, tc.code, errorCode(t, rec))
		})
	}

	rec = srv.do(http.MethodGet, "/inventory?blood_type=XX", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInventoryUnitsLimit(t *testing.T) {
	srv := newTestServer(t, false)
	id := srv.createHospital("General")
	other := srv.createHospital("Other")

	oversized := []struct {
		path string
		body string
	}{
		{path: "/inventory", body: `{"blood_type":"O+","units":9223372036854775807,"hospital_id":1}`},
		{path: "/inventory", body: `{"blood_type":"O+","units":2147483648,"hospital_id":1}`},
		{path: "/inventory/withdraw", body: `{"blood_type":"O+","units":2147483648,"hospital_id":1}`},
		{path: "/transfers", body: `{"from_hospital_id":1,"to_hospital_id":2,"blood_type":"O+","units_transferred":2147483648}`},
	}
	for _, tc := range oversized {
		rec := srv.do(http.MethodPost, tc.path, tc.body)
		require.Equal(t, http.StatusBadRequest, rec.Code, tc.path+" "+rec.Body.String())
		assert.Equal(t, "invalid_request", errorCode(t, rec))
	}

	rec := srv.do(http.MethodPost, "/inventory", map[string]interface{}{"blood_type": "O+", "units": 2147483647, "hospital_id": id})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.do(http.MethodPost, "/inventory", map[string]interface{}{"blood_type": "O+", "units": 1, "hospital_id": id})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Equal(t, "stock_overflow", errorCode(t, rec))

	rec = srv.do(http.MethodPost, "/inventory", map[string]interface{}{"blood_type": "O+", "units": 1, "hospital_id": other})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.do(http.MethodPost, "/transfers", map[string]interface{}{"from_hospital_id": other, "to_hospital_id": id, "blood_type": "O+", "units_transferred": 1})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Equal(t, "stock_overflow", errorCode(t, rec))

	rec = srv.do(http.MethodGet, "/inventory?blood_type=O%2B", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, float64(2147483647), rows[0]["units"])
	assert.Equal(t, float64(1), rows[1]["units"])
}

func TestTransfers(t *testing.T) {
	srv := newTestServer(t, false)
	from := srv.createHospital("From")
	to := srv.createHospital("To")

	rec := srv.do(http.MethodPost, "/inventory", map[string]interface{}{"blood_type": "A+", "units": 4, "hospital_id": from})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(http.MethodPost, "/transfers", map[string]interface{}{"from_hospital_id": from, "to_hospital_id": from, "blood_type": "A+", "units_transferred": 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", errorCode(t, rec))

	rec = srv.do(http.MethodPost, "/transfers", map[string]interface{}{"from_hospital_id": from, "to_hospital_id": to, "blood_type": "A+", "units_transferred": 4, "transfer_date": "2024-05-01"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.do(http.MethodPost, "/transfers", map[string]interface{}{"from_hospital_id": from, "to_hospital_id": to, "blood_type": "A+", "units_transferred": 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "insufficient_stock", errorCode(t, rec))

	rec = srv.do(http.MethodGet, "/inventory?blood_type=A%2B", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, float64(0), rows[0]["units"])
	assert.Equal(t, float64(4), rows[1]["units"])

	rec = srv.do(http.MethodGet, "/transfers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var transfers []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &transfers))
	require.Len(t, transfers, 1)
	assert.Equal(t, "2024-05-01", transfers[0]["transfer_date"])
}

func TestDonorsDonationsAndRequests(t *testing.T) {
	srv := newTestServer(t, false)
	hospitalID := srv.createHospital("General")

	rec := srv.do(http.MethodPost, "/donors", map[string]interface{}{"name": "Dee", "blood_type": "Z"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodPost, "/donors", map[string]interface{}{"name": "Dee", "blood_type": "b-"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	donor := decode(t, rec)["donor"].(map[string]interface{})
	assert.Equal(t, "B-", donor["blood_type"])
	assert.Nil(t, donor["last_donation_date"])
	donorID := donor["id"]

	rec = srv.do(http.MethodPost, "/donations", map[string]interface{}{"donor_id": donorID, "hospital_id": hospitalID, "units": 2, "date": "2024-06-10"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.do(http.MethodPost, "/donations", map[string]interface{}{"donor_id": donorID, "hospital_id": hospitalID, "units": 1, "blood_type": "A+"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", errorCode(t, rec))

	rec = srv.do(http.MethodPost, "/donations", map[string]interface{}{"donor_id": 999, "hospital_id": hospitalID, "units": 1})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "donor_not_found", errorCode(t, rec))

	rec = srv.do(http.MethodGet, "/donors", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var donors []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &donors))
	require.Len(t, donors, 1)
	assert.Equal(t, "2024-06-10", donors[0]["last_donation_date"])

	rec = srv.do(http.MethodPost, "/recipients", map[string]interface{}{"name": "Rae", "blood_type": "B-"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodPost, "/recipients", map[string]interface{}{"name": "Rae", "blood_type": "B-", "hospital_id": 999})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unknown_reference", errorCode(t, rec))

	rec = srv.do(http.MethodPost, "/recipients", map[string]interface{}{"name": "Rae", "blood_type": "B-", "hospital_id": hospitalID, "request_date": "2024-06-11"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	recipientID := decode(t, rec)["id"]

	rec = srv.do(http.MethodPost, "/requests", map[string]interface{}{"recipient_id": recipientID, "hospital_id": hospitalID, "units_requested": 2})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	request := decode(t, rec)
	assert.Equal(t, "pending", request["status"])
	assert.Equal(t, "B-", request["blood_type"])

	rec = srv.do(http.MethodPost, "/requests/1/fulfill", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "fulfilled", decode(t, rec)["status"])

	rec = srv.do(http.MethodPost, "/requests/1/reject", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "request_not_pending", errorCode(t, rec))

	rec = srv.do(http.MethodPost, "/requests/99/fulfill", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(http.MethodGet, "/requests?status=bogus", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodGet, "/inventory?hospital_id=1&blood_type=B-", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, float64(0), rows[0]["units"])
}

func TestAuthRequiredGate(t *testing.T) {
	srv := newTestServer(t, true)

	rec := srv.do(http.MethodPost, "/signup", map[string]interface{}{"name": "Ann", "email": "ann@example.com", "password": "123456"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(http.MethodGet, "/donors", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	srv.user, srv.pass = "ann@example.com", "123456"
	rec = srv.do(http.MethodGet, "/donors", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = srv.do(http.MethodGet, "/me", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	me := decode(t, rec)
	assert.Equal(t, "ann@example.com", me["email"])
	assert.Equal(t, "Ann", me["name"])
	assert.Nil(t, me["hospital_id"])
}

func TestMeWithoutGate(t *testing.T) {
	srv := newTestServer(t, false)

	rec := srv.do(http.MethodGet, "/me", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_credentials", errorCode(t, rec))
}

func TestGetDonorAndRecipient(t *testing.T) {
	srv := newTestServer(t, false)
	hospitalID := srv.createHospital("General")

	rec := srv.do(http.MethodPost, "/donors", map[string]interface{}{"name": "Dee", "blood_type": "O-", "last_donation_date": "2024-01-02"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	donorID := int64(decode(t, rec)["donor"].(map[string]interface{})["id"].(float64))

	rec = srv.do(http.MethodGet, fmt.Sprintf("/donors/%d", donorID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	donor := decode(t, rec)
	assert.Equal(t, "Dee", donor["name"])
	assert.Equal(t, "O-", donor["blood_type"])
	assert.Equal(t, "2024-01-02", donor["last_donation_date"])

	rec = srv.do(http.MethodGet, "/donors/999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "donor_not_found", errorCode(t, rec))

	rec = srv.do(http.MethodGet, "/donors/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodPost, "/recipients", map[string]interface{}{"name": "Rae", "blood_type": "ab+", "hospital_id": hospitalID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	recipientID := int64(decode(t, rec)["id"].(float64))

	rec = srv.do(http.MethodGet, fmt.Sprintf("/recipients/%d", recipientID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	recipient := decode(t, rec)
	assert.Equal(t, "AB+", recipient["blood_type"])
	assert.Equal(t, float64(hospitalID), recipient["hospital_id"])

	rec = srv.do(http.MethodGet, "/recipients/999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "recipient_not_found", errorCode(t, rec))

	rec = srv.do(http.MethodPost, "/donors", map[string]interface{}{"name": "Dee", "blood_type": "C+"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["error"].(map[string]interface{})["message"], "A+, A-, B+, B-, AB+, AB-, O+, O-")
}

func TestMetricsExposition(t *testing.T) {
	srv := newTestServer(t, false)
	srv.createHospital("General")

	rec := srv.do(http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `bloodbank_http_requests_total{method="POST",route="/hospitals",status="201"} 1`)
}
