package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "rentalspot/pkg/errors"
)

type payload struct {
	Name string `json:"name"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"name":"Summer"}`},
		{name: "empty", body: ``, wantErr: "empty"},
		{name: "unknown field", body: `{"name":"x","extra":1}`, wantErr: "unknown field"},
		{name: "two objects", body: `{"name":"a"}{"name":"b"}`, wantErr: "single JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(r, &p)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Summer", p.Name)
				return
			}
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?months=6&bad=x", nil)

	v, err := QueryInt(r, "months", 12)
	require.NoError(t, err)
	assert.Equal(t, 6, v)

	v, err = QueryInt(r, "missing", 12)
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	_, err = QueryInt(r, "bad", 12)
	assert.Error(t, err)
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteSuccess(rec, map[string]int{"nights": 3}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"nights":3}}`, rec.Body.String())
}
