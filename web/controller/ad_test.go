package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/netpesa/netpesa/billing"
	"github.com/netpesa/netpesa/web/service"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
)

func newAdTestRouter(t *testing.T, upstream http.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)
	t.Cleanup(service.ResetBillingAPI)
	service.SetBillingAPI(billing.NewClient(billing.Config{BaseURL: srv.URL}, billing.StaticToken("t")))

	engine := gin.New()
	NewAdController(engine.Group("/"))
	return engine
}

func decodeMsg(t *testing.T, w *httptest.ResponseRecorder) (success bool, msg string) {
	t.Helper()
	var resp struct {
		Success bool   `json:"success"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response not json: %v: %s", err, w.Body.String())
	}
	return resp.Success, resp.Msg
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	deleted := false
	engine := newAdTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deleted = true
		}
		w.Write([]byte(`{}`))
	})

	// No confirm flag: the upstream must never see the delete.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ads/del/9", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	if success, _ := decodeMsg(t, w); success {
		t.Error("unconfirmed delete reported success")
	}
	if deleted {
		t.Fatal("unconfirmed delete reached the upstream")
	}

	// Confirmed: the delete goes through.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/ads/del/9", strings.NewReader(`{"confirm":true}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	if success, msg := decodeMsg(t, w); !success {
		t.Errorf("confirmed delete failed: %s", msg)
	}
	if !deleted {
		t.Error("confirmed delete never reached the upstream")
	}
}

func TestUpdateWithoutChangesIsNotAnError(t *testing.T) {
	engine := newAdTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			t.Error("no-change edit must not patch the upstream")
		}
		w.Write([]byte(`{"id":9,"title":"Same","active":true}`))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ads/update/9", strings.NewReader(`{"id":9,"title":"Same","active":true}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	if success, _ := decodeMsg(t, w); !success {
		t.Error("no-change edit should resolve successfully")
	}
}
