package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/netpesa/netpesa/billing"
)

const adFixture = `{"id":9,"title":"Fibre launch","description":"desc","price":1500,"seller_name":"Acme","badge":"hot","active":true}`

func setupAdAPI(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Cleanup(ResetBillingAPI)
	SetBillingAPI(billing.NewClient(billing.Config{BaseURL: srv.URL}, billing.StaticToken("t")))
}

func TestUpdatePatchesOnlyChangedFields(t *testing.T) {
	var patchBody map[string]any
	setupAdAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(adFixture))
		case http.MethodPatch:
			body, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(body, &patchBody); err != nil {
				t.Errorf("patch body not json: %v", err)
			}
			w.Write([]byte(`{"id":9,"title":"Fibre relaunch","price":1500}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})

	svc := &AdService{}
	edited := billing.Ad{Id: 9, Title: "Fibre relaunch", Description: "desc", Price: 1500, SellerName: "Acme", Badge: "hot", Active: true}

	updated, err := svc.Update(context.Background(), edited)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "Fibre relaunch" {
		t.Errorf("updated title = %q", updated.Title)
	}

	if len(patchBody) != 1 {
		t.Fatalf("patch carried %d fields: %v", len(patchBody), patchBody)
	}
	if patchBody["title"] != "Fibre relaunch" {
		t.Errorf("patch title = %v", patchBody["title"])
	}
}

func TestUpdateUnchangedAdSkipsUpstreamWrite(t *testing.T) {
	patched := false
	setupAdAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			patched = true
		}
		w.Write([]byte(adFixture))
	})

	svc := &AdService{}
	unchanged := billing.Ad{Id: 9, Title: "Fibre launch", Description: "desc", Price: 1500, SellerName: "Acme", Badge: "hot", Active: true}

	_, err := svc.Update(context.Background(), unchanged)
	if !errors.Is(err, ErrNoChanges) {
		t.Fatalf("err = %v, expected ErrNoChanges", err)
	}
	if patched {
		t.Error("unchanged ad must not reach the upstream")
	}
}
