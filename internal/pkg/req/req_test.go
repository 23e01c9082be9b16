package req

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragwall/internal/pkg/errs"
)

type payload struct {
	Name string `json:"name"`
}

func bind(body, contentType string) (*payload, *errs.CustomError) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	var dst payload
	return &dst, BindJSON(w, r, &dst)
}

func TestBindJSON_Success(t *testing.T) {
	dst, customErr := bind(`{"name":"x"}`, "application/json")
	require.Nil(t, customErr)
	assert.Equal(t, "x", dst.Name)
}

func TestBindJSON_UnknownFieldsTolerated(t *testing.T) {
	dst, customErr := bind(`{"name":"x","extra":true}`, "application/json")
	require.Nil(t, customErr)
	assert.Equal(t, "x", dst.Name)
}

func TestBindJSON_WrongContentType(t *testing.T) {
	_, customErr := bind(`{"name":"x"}`, "text/plain")
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrUnsupportedMediaType, customErr.Code)
}

func TestBindJSON_MalformedBody(t *testing.T) {
	_, customErr := bind(`{"name":`, "application/json")
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrInvalidJSONFormat, customErr.Code)
}

func TestBindJSON_TrailingContentRejected(t *testing.T) {
	_, customErr := bind(`{"name":"x"}{"name":"y"}`, "application/json")
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrExtraContentInBody, customErr.Code)
}
