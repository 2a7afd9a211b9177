package service

import (
	"sync"

	"github.com/netpesa/netpesa/billing"
)

var (
	apiClientMu sync.Mutex
	apiClient   *billing.Client
)

// BillingAPI returns the shared billing client, building it lazily from
// the stored settings. The client re-reads the API token per request, so
// only a base URL change requires ResetBillingAPI.
func BillingAPI() (*billing.Client, error) {
	apiClientMu.Lock()
	defer apiClientMu.Unlock()

	if apiClient != nil {
		return apiClient, nil
	}
	settingService := SettingService{}
	client, err := settingService.BillingClient()
	if err != nil {
		return nil, err
	}
	apiClient = client
	return apiClient, nil
}

// ResetBillingAPI drops the cached client so the next call rebuilds it
// from current settings.
func ResetBillingAPI() {
	apiClientMu.Lock()
	defer apiClientMu.Unlock()
	apiClient = nil
}

// SetBillingAPI overrides the shared client. Tests point it at a stub
// server; the CLI points it at a flag-provided base URL.
func SetBillingAPI(client *billing.Client) {
	apiClientMu.Lock()
	defer apiClientMu.Unlock()
	apiClient = client
}
