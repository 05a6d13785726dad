package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"vato-reader/internal/catalog"
	catalogmocks "vato-reader/internal/catalog/mocks"
)

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		mockSetup   func(m *catalogmocks.MockLoader)
		wantStatus  int
		wantCatalog string
	}{
		{
			name:   "healthy",
			method: http.MethodGet,
			mockSetup: func(m *catalogmocks.MockLoader) {
				m.EXPECT().Load(gomock.Any()).Return([]catalog.VatRecord{vatA}, nil)
			},
			wantStatus:  http.StatusOK,
			wantCatalog: "ok",
		},
		{
			name:   "empty catalog",
			method: http.MethodGet,
			mockSetup: func(m *catalogmocks.MockLoader) {
				m.EXPECT().Load(gomock.Any()).Return([]catalog.VatRecord{}, nil)
			},
			wantStatus:  http.StatusOK,
			wantCatalog: "empty",
		},
		{
			name:   "catalog unavailable",
			method: http.MethodGet,
			mockSetup: func(m *catalogmocks.MockLoader) {
				m.EXPECT().Load(gomock.Any()).Return(nil, catalog.ErrUnavailable)
			},
			wantStatus:  http.StatusServiceUnavailable,
			wantCatalog: "error",
		},
		{
			name:       "method not allowed",
			method:     http.MethodPost,
			mockSetup:  func(m *catalogmocks.MockLoader) {},
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			loader := catalogmocks.NewMockLoader(ctrl)
			tt.mockSetup(loader)

			w := httptest.NewRecorder()
			NewHealthHandler(loader, true).ServeHTTP(w, httptest.NewRequest(tt.method, "/api/health", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantCatalog == "" {
				return
			}
			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Checks["catalog"] != tt.wantCatalog {
				t.Errorf("catalog check = %q, want %q", resp.Checks["catalog"], tt.wantCatalog)
			}
			if resp.Checks["last_read"] != "enabled" {
				t.Errorf("last_read check = %q, want enabled", resp.Checks["last_read"])
			}
		})
	}
}
