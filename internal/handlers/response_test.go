package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/services"
)

func TestRespondServiceError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing data",
			err:        &services.DataUnavailableError{What: "project", Err: fmt.Errorf("not found")},
			wantStatus: http.StatusNotFound,
			wantCode:   "DATA_UNAVAILABLE",
		},
		{
			name:       "conversion failure",
			err:        &services.ConversionFailedError{Filename: "photo.png", Err: fmt.Errorf("bad image")},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "CONVERSION_FAILED",
		},
		{
			name:       "binary unavailable",
			err:        &services.BinaryUnavailableError{Filename: "photo.png", Err: fmt.Errorf("gone")},
			wantStatus: http.StatusBadGateway,
			wantCode:   "BINARY_UNAVAILABLE",
		},
		{
			name: "merge aborted wrapping binary failure",
			err: &services.MergeAbortedError{
				DisplayName: "photo",
				Stage:       "download",
				Err:         &services.BinaryUnavailableError{Filename: "photo.png", Err: fmt.Errorf("gone")},
			},
			wantStatus: http.StatusBadGateway,
			wantCode:   "BINARY_UNAVAILABLE",
		},
		{
			name:       "unclassified",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			RespondServiceError(c, tt.err)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: want=%d got=%d", tt.wantStatus, rec.Code)
			}
			var envelope ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if envelope.Error.Code != tt.wantCode {
				t.Fatalf("code: want=%q got=%q", tt.wantCode, envelope.Error.Code)
			}
			if envelope.Error.Message == "" {
				t.Fatalf("message must not be empty")
			}
		})
	}
}
