package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestDomainValidator(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		host     string
		expected int
	}{
		{"exact match", "panel.example.com", http.StatusOK},
		{"match with port", "panel.example.com:3080", http.StatusOK},
		{"case insensitive", "Panel.Example.COM", http.StatusOK},
		{"wrong domain", "evil.example.com", http.StatusForbidden},
		{"wrong domain with port", "evil.example.com:3080", http.StatusForbidden},
	}

	engine := gin.New()
	engine.Use(DomainValidatorMiddleware("panel.example.com"))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			if w.Code != tt.expected {
				t.Errorf("host %q: status = %d, expected %d", tt.host, w.Code, tt.expected)
			}
		})
	}
}
