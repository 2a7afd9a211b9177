package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/netpesa/netpesa/billing"
)

func setupTransactionAPI(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Cleanup(ResetBillingAPI)
	SetBillingAPI(billing.NewClient(billing.Config{BaseURL: srv.URL}, billing.StaticToken("t")))
}

func TestListCancelsStaleRequest(t *testing.T) {
	firstArrived := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	setupTransactionAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("status") == "pending" {
			once.Do(func() { close(firstArrived) })
			select {
			case <-release:
			case <-r.Context().Done():
				return
			}
		}
		w.Write([]byte(`{"data":[{"id":2,"phone":"254700000002","status":"completed"}],"page":1,"total":1}`))
	})

	svc := &TransactionService{}

	firstErr := make(chan error, 1)
	go func() {
		_, _, err := svc.List(context.Background(), billing.TransactionParams{Status: "pending"})
		firstErr <- err
	}()

	<-firstArrived
	// The newer filter supersedes the hung request.
	txs, _, err := svc.List(context.Background(), billing.TransactionParams{Status: "completed"})
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 1 || txs[0].Status != "completed" {
		t.Fatalf("fresh page = %+v", txs)
	}

	if err := <-firstErr; err == nil {
		t.Error("stale request should have been cancelled")
	} else if !errors.Is(err, context.Canceled) {
		// The error is wrapped by the transport; canceled must be in the chain.
		t.Errorf("stale request error = %v", err)
	}
	close(release)

	// The cached page belongs to the newest filter.
	if page := svc.SearchLocal(""); len(page) != 1 || page[0].Status != "completed" {
		t.Errorf("cached page = %+v", page)
	}
}

func TestSearchLocalIsNonDestructive(t *testing.T) {
	setupTransactionAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"id":1,"phone":"254711000001","mpesa_receipt":"QAB1","customer_name":"Alice Wanjiku"},
			{"id":2,"phone":"254722000002","mpesa_receipt":"QAB2","customer_name":"Bob Otieno"},
			{"id":3,"phone":"254733000003","mpesa_receipt":"XYZ9","customer_name":"Carol Achieng"}
		],"page":1,"total":3}`))
	})

	svc := &TransactionService{}
	if _, _, err := svc.List(context.Background(), billing.TransactionParams{}); err != nil {
		t.Fatal(err)
	}

	if got := svc.SearchLocal("qab"); len(got) != 2 {
		t.Errorf("receipt search hits = %d, expected 2", len(got))
	}
	if got := svc.SearchLocal("otieno"); len(got) != 1 || got[0].Id != 2 {
		t.Errorf("name search = %+v", got)
	}
	if got := svc.SearchLocal("254733"); len(got) != 1 || got[0].Id != 3 {
		t.Errorf("phone search = %+v", got)
	}
	if got := svc.SearchLocal("nothing-matches"); len(got) != 0 {
		t.Errorf("miss returned %d rows", len(got))
	}

	// Clearing the query restores the full page untouched.
	if got := svc.SearchLocal(""); len(got) != 3 {
		t.Errorf("full page = %d rows after searches, expected 3", len(got))
	}
}
