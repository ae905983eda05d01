package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

func decodeBody(t *testing.T, res *http.Response) map[string]interface{} {
	t.Helper()
	defer res.Body.Close()
	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body
}

func TestHandleRegister(t *testing.T) {
	repo := newMockRepository()
	handler := NewHandler(NewUserService(repo), respondJSON, respondError)

	payload, _ := json.Marshal(map[string]string{"email": "jane@example.com", "password": "password123"})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(payload))
	w := httptest.NewRecorder()

	handler.HandleRegister(w, req)

	res := w.Result()
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	body := decodeBody(t, res)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, map[string]interface{}{"user_id": float64(1)}, body["data"])
}

func TestHandleRegister_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		failRepo   bool
		wantStatus int
	}{
		{"invalid json", "{", false, http.StatusBadRequest},
		{"invalid email", `{"email":"not-an-email","password":"password123"}`, false, http.StatusBadRequest},
		{"short password", `{"email":"jane@example.com","password":"short"}`, false, http.StatusBadRequest},
		{"duplicate email", `{"email":"taken@example.com","password":"password123"}`, false, http.StatusConflict},
		{"repository error", `{"email":"jane@example.com","password":"password123"}`, true, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepository()
			repo.users[1] = &User{ID: 1, Email: "taken@example.com"}
			repo.nextID = 2
			repo.shouldFail = tt.failRepo
			handler := NewHandler(NewUserService(repo), respondJSON, respondError)

			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handler.HandleRegister(w, req)

			res := w.Result()
			assert.Equal(t, tt.wantStatus, res.StatusCode)
			assert.Equal(t, "error", decodeBody(t, res)["status"])
		})
	}
}

func TestHandleGetUserProfile(t *testing.T) {
	handler := NewHandler(NewUserService(newMockRepository()), respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	w := httptest.NewRecorder()
	handler.HandleGetUserProfile(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)

	u := &User{ID: 3, Email: "jane@example.com"}
	req = req.WithContext(NewContext(context.Background(), u))
	w = httptest.NewRecorder()
	handler.HandleGetUserProfile(w, req)

	res := w.Result()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	data := decodeBody(t, res)["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["user_id"])
	assert.Equal(t, "jane@example.com", data["email"])
	assert.NotContains(t, data, "password_hash")
}
