package request

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"starwars-catalog/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type planetBody struct {
	Name string `json:"name"`
}

func TestDecodeJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/planets", strings.NewReader(`{"name":"Tatooine"}`))
	w := httptest.NewRecorder()

	var body planetBody
	require.NoError(t, DecodeJSON(w, req, &body))
	assert.Equal(t, "Tatooine", body.Name)
}

func TestDecodeJSONRejectsBadInput(t *testing.T) {
	for name, payload := range map[string]string{
		"malformed":     `{"name":`,
		"unknown field": `{"name":"Hoth","password":"x"}`,
		"trailing":      `{"name":"Hoth"}{"name":"Endor"}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/planets", strings.NewReader(payload))
			w := httptest.NewRecorder()

			var body planetBody
			err := DecodeJSON(w, req, &body)
			require.Error(t, err)
			assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))
		})
	}
}

func TestPathID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/planets/12", nil)
	req.SetPathValue("id", "12")

	id, err := PathID(req, "id")
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	for _, raw := range []string{"", "abc", "0", "-3"} {
		req := httptest.NewRequest(http.MethodGet, "/api/planets/x", nil)
		req.SetPathValue("id", raw)

		_, err := PathID(req, "id")
		assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err), raw)
	}
}
