package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskapi/internal/api/shared"
	"taskapi/internal/domain"
	"taskapi/internal/mocks"
)

func newAuthHandlerForTest(
	userStore *mocks.MockUserStore,
	jwtService *mocks.MockJWTService,
	verifier *mocks.MockPasswordVerifier,
) *AuthHandler {
	return NewAuthHandler(userStore, jwtService, &mocks.MockPasswordHasher{}, verifier)
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler(recorder, req)
	return recorder
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

func TestRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
	}{
		{
			name: "valid registration",
			payload: map[string]interface{}{
				"email":    "test@example.com",
				"name":     "Test User",
				"password": "password123",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "invalid email",
			payload: map[string]interface{}{
				"email":    "invalid-email",
				"name":     "Test User",
				"password": "password123",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "password too short",
			payload: map[string]interface{}{
				"email":    "test@example.com",
				"name":     "Test User",
				"password": "short",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing name",
			payload: map[string]interface{}{
				"email":    "test@example.com",
				"password": "password123",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStore := mocks.NewMockUserStore()
			handler := newAuthHandlerForTest(
				userStore,
				&mocks.MockJWTService{Token: "test-token"},
				&mocks.MockPasswordVerifier{ShouldSucceed: true},
			)

			recorder := postJSON(t, handler.Register, "/auth/register", tt.payload)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			envelope := decodeEnvelope(t, recorder)
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, true, envelope["success"])
				data, ok := envelope["data"].(map[string]interface{})
				require.True(t, ok)
				assert.Equal(t, "test@example.com", data["email"])
				assert.Equal(t, "Test User", data["name"])
				assert.NotContains(t, data, "password")
				assert.NotContains(t, recorder.Body.String(), "hashed")
			} else {
				assert.Equal(t, false, envelope["success"])
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	handler := newAuthHandlerForTest(
		userStore,
		&mocks.MockJWTService{Token: "test-token"},
		&mocks.MockPasswordVerifier{ShouldSucceed: true},
	)

	payload := map[string]interface{}{
		"email":    "dup@example.com",
		"name":     "First",
		"password": "password123",
	}

	first := postJSON(t, handler.Register, "/auth/register", payload)
	require.Equal(t, http.StatusCreated, first.Code)

	second := postJSON(t, handler.Register, "/auth/register", payload)
	assert.Equal(t, http.StatusConflict, second.Code)

	envelope := decodeEnvelope(t, second)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "Email already exists", envelope["message"])
}

func TestRegisterStoresHashNotPlaintext(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	handler := newAuthHandlerForTest(
		userStore,
		&mocks.MockJWTService{Token: "test-token"},
		&mocks.MockPasswordVerifier{ShouldSucceed: true},
	)

	recorder := postJSON(t, handler.Register, "/auth/register", map[string]interface{}{
		"email":    "hash@example.com",
		"name":     "Hash",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	stored, ok := userStore.Users["hash@example.com"]
	require.True(t, ok)
	assert.Empty(t, stored.Password)
	assert.NotEmpty(t, stored.HashedPassword)
	assert.NotEqual(t, "password123", stored.HashedPassword)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	makeStore := func() *mocks.MockUserStore {
		userStore := mocks.NewMockUserStore()
		userStore.Users["known@example.com"] = &domain.User{
			ID:             userID,
			Email:          "known@example.com",
			Name:           "Known",
			HashedPassword: "stored-hash",
		}
		return userStore
	}

	tests := []struct {
		name        string
		payload     map[string]interface{}
		verifierOK  bool
		wantStatus  int
		wantToken   bool
		wantMessage string
	}{
		{
			name: "valid credentials",
			payload: map[string]interface{}{
				"email":    "known@example.com",
				"password": "password123",
			},
			verifierOK: true,
			wantStatus: http.StatusOK,
			wantToken:  true,
		},
		{
			name: "unknown email",
			payload: map[string]interface{}{
				"email":    "unknown@example.com",
				"password": "password123",
			},
			verifierOK:  true,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid credentials",
		},
		{
			name: "wrong password",
			payload: map[string]interface{}{
				"email":    "known@example.com",
				"password": "wrong-password",
			},
			verifierOK:  false,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid credentials",
		},
		{
			name: "missing password",
			payload: map[string]interface{}{
				"email": "known@example.com",
			},
			verifierOK: true,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newAuthHandlerForTest(
				makeStore(),
				&mocks.MockJWTService{Token: "issued-token"},
				&mocks.MockPasswordVerifier{ShouldSucceed: tt.verifierOK},
			)

			recorder := postJSON(t, handler.Login, "/auth/login", tt.payload)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			envelope := decodeEnvelope(t, recorder)
			if tt.wantToken {
				data, ok := envelope["data"].(map[string]interface{})
				require.True(t, ok)
				assert.Equal(t, "issued-token", data["token"])
			}
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, envelope["message"])
			}
		})
	}
}

func TestLoginStoreFailure(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	userStore.GetByEmailError = errors.New("connection refused")

	handler := newAuthHandlerForTest(
		userStore,
		&mocks.MockJWTService{Token: "issued-token"},
		&mocks.MockPasswordVerifier{ShouldSucceed: true},
	)

	recorder := postJSON(t, handler.Login, "/auth/login", map[string]interface{}{
		"email":    "any@example.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "connection refused")
}

func TestMe(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	userStore := mocks.NewMockUserStore()
	userStore.Users["me@example.com"] = &domain.User{
		ID:    userID,
		Email: "me@example.com",
		Name:  "Me",
	}

	handler := newAuthHandlerForTest(
		userStore,
		&mocks.MockJWTService{},
		&mocks.MockPasswordVerifier{ShouldSucceed: true},
	)

	t.Run("authenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
		req = req.WithContext(ctx)
		recorder := httptest.NewRecorder()

		handler.Me(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		data, ok := envelope["data"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "me@example.com", data["email"])
	})

	t.Run("no identity in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		recorder := httptest.NewRecorder()

		handler.Me(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
