package shared_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskapi/internal/api/shared"
)

type samplePayload struct {
	Email string `json:"email" validate:"required,email"`
	Title string `json:"title" validate:"required,min=1"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"email":"a@b.co","title":"x"}`))

	var payload samplePayload
	require.NoError(t, shared.DecodeJSON(req, &payload))
	assert.Equal(t, "a@b.co", payload.Email)
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"email":"a@b.co","title":"x","bogus":true}`))

	var payload samplePayload
	assert.Error(t, shared.DecodeJSON(req, &payload))
}

func TestDecodeJSONRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))

	var payload samplePayload
	assert.Error(t, shared.DecodeJSON(req, &payload))
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.Nil(t, shared.ValidateRequest(samplePayload{Email: "a@b.co", Title: "x"}))

	errs := shared.ValidateRequest(samplePayload{Email: "not-an-email"})
	require.Len(t, errs, 2)

	fields := []string{errs[0].Field, errs[1].Field}
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Title")
}
