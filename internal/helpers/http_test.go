package helpers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/isometry/line-alert-relay/internal/helpers"
	"github.com/isometry/line-alert-relay/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRespondHTTP(t *testing.T) {
	testCases := []struct {
		Name           string
		Response       models.Response
		Error          error
		ExpectedStatus int
		ExpectedBody   string
	}{
		{
			Name:           "acknowledged",
			Response:       models.Response{StatusCode: http.StatusOK, Body: "OK"},
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   `{"message":"OK"}`,
		},
		{
			Name:           "rejected_with_error",
			Response:       models.Response{StatusCode: http.StatusUnauthorized},
			Error:          errors.New("invalid signature"),
			ExpectedStatus: http.StatusUnauthorized,
			ExpectedBody:   `{"error":"invalid signature"}`,
		},
		{
			Name:           "zero_status_defaults_to_ok",
			Response:       models.Response{},
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   `{}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			rw := httptest.NewRecorder()

			helpers.RespondHTTP(tc.Response, tc.Error, rw)

			assert.Equal(t, tc.ExpectedStatus, rw.Code)
			assert.Equal(t, "application/json", rw.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.ExpectedBody, rw.Body.String())
		})
	}
}

func TestRespondHTTPCustomHeaders(t *testing.T) {
	rw := httptest.NewRecorder()
	helpers.RespondHTTP(models.Response{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"X-Request-Id": "abc"},
	}, nil, rw)

	assert.Equal(t, "abc", rw.Result().Header.Get("X-Request-Id"))
}
