package billing

import (
	"github.com/netpesa/netpesa/util/common"
	"github.com/netpesa/netpesa/util/datetime"

	json "github.com/goccy/go-json"
)

// The billing API speaks snake_case. Every response is decoded into an
// explicit wire struct here and remapped to the camelCase view models, so a
// shape change upstream surfaces as a decode error at this boundary instead
// of leaking zero values into the UI.

type listEnvelope struct {
	Data    json.RawMessage `json:"data"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
	Total   int             `json:"total"`
}

type customerWire struct {
	Id         int    `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	MacAddress string `json:"mac_address"`
	Status     string `json:"status"`
	ExpiresAt  string `json:"expires_at"`
	PlanId     int    `json:"plan_id"`
	PlanName   string `json:"plan_name"`
	RouterId   int    `json:"router_id"`
	RouterName string `json:"router_name"`
}

func (w customerWire) toView() Customer {
	return Customer{
		Id:            w.Id,
		Name:          w.Name,
		Phone:         w.Phone,
		Mac:           w.MacAddress,
		Status:        w.Status,
		ExpiresAt:     w.ExpiresAt,
		ExpiresAtText: datetime.Display(w.ExpiresAt),
		PlanId:        w.PlanId,
		PlanName:      w.PlanName,
		RouterId:      w.RouterId,
		RouterName:    w.RouterName,
	}
}

type planWire struct {
	Id             int     `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	DurationValue  int     `json:"duration_value"`
	DurationUnit   string  `json:"duration_unit"`
	SpeedMbps      int     `json:"speed_mbps"`
	ConnectionType string  `json:"connection_type"`
}

func (w planWire) toView() Plan {
	return Plan{
		Id:             w.Id,
		Name:           w.Name,
		Price:          w.Price,
		DurationValue:  w.DurationValue,
		DurationUnit:   w.DurationUnit,
		SpeedMbps:      w.SpeedMbps,
		ConnectionType: w.ConnectionType,
	}
}

type adWire struct {
	Id           int     `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	SellerName   string  `json:"seller_name"`
	SellerPhone  string  `json:"seller_phone"`
	Badge        string  `json:"badge"`
	Active       bool    `json:"active"`
	Views        int64   `json:"views"`
	Clicks       int64   `json:"clicks"`
	ExpiresAt    string  `json:"expires_at"`
	AdvertiserId int     `json:"advertiser_id"`
}

func (w adWire) toView() Ad {
	return Ad{
		Id:           w.Id,
		Title:        w.Title,
		Description:  w.Description,
		Price:        w.Price,
		SellerName:   w.SellerName,
		SellerPhone:  w.SellerPhone,
		Badge:        w.Badge,
		Active:       w.Active,
		Views:        w.Views,
		Clicks:       w.Clicks,
		ExpiresAt:    w.ExpiresAt,
		AdvertiserId: w.AdvertiserId,
	}
}

type advertiserWire struct {
	Id           int    `json:"id"`
	Name         string `json:"name"`
	BusinessName string `json:"business_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Active       bool   `json:"active"`
}

func (w advertiserWire) toView() Advertiser {
	return Advertiser{
		Id:           w.Id,
		Name:         w.Name,
		BusinessName: w.BusinessName,
		Phone:        w.Phone,
		Email:        w.Email,
		Active:       w.Active,
	}
}

type transactionWire struct {
	Id            int     `json:"id"`
	Phone         string  `json:"phone"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	MpesaReceipt  string  `json:"mpesa_receipt"`
	FailureReason string  `json:"failure_reason"`
	CustomerId    int     `json:"customer_id"`
	CustomerName  string  `json:"customer_name"`
	PlanId        int     `json:"plan_id"`
	PlanName      string  `json:"plan_name"`
	RouterId      int     `json:"router_id"`
	RouterName    string  `json:"router_name"`
	CreatedAt     string  `json:"created_at"`
}

func (w transactionWire) toView() Transaction {
	return Transaction{
		Id:            w.Id,
		Phone:         w.Phone,
		Amount:        w.Amount,
		Status:        w.Status,
		Receipt:       w.MpesaReceipt,
		FailureReason: w.FailureReason,
		CustomerId:    w.CustomerId,
		CustomerName:  w.CustomerName,
		PlanId:        w.PlanId,
		PlanName:      w.PlanName,
		RouterId:      w.RouterId,
		RouterName:    w.RouterName,
		CreatedAt:     w.CreatedAt,
		CreatedAtText: datetime.Display(w.CreatedAt),
	}
}

type routerWire struct {
	Id      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Port    int    `json:"port"`
}

func (w routerWire) toView() Router {
	return Router{Id: w.Id, Name: w.Name, Address: w.Address, Port: w.Port}
}

type routerInterfaceWire struct {
	Name    string   `json:"name"`
	RxMbps  *float64 `json:"rx_mbps"`
	TxMbps  *float64 `json:"tx_mbps"`
	Running *bool    `json:"running"`
}

type routerStatusWire struct {
	CpuPercent     *float64              `json:"cpu_percent"`
	MemoryPercent  *float64              `json:"memory_percent"`
	StoragePercent *float64              `json:"storage_percent"`
	Uptime         *string               `json:"uptime"`
	RxMbps         *float64              `json:"rx_mbps"`
	TxMbps         *float64              `json:"tx_mbps"`
	ActiveSessions *int                  `json:"active_sessions"`
	Interfaces     []routerInterfaceWire `json:"interfaces"`
}

// toView validates the telemetry shape. CPU and memory are the fields every
// supported router firmware reports; if they are absent the payload is not a
// telemetry snapshot and the caller gets an error instead of silent zeros.
// Everything else is optional and defaults to zero/empty.
func (w routerStatusWire) toView() (*RouterStatus, error) {
	if w.CpuPercent == nil || w.MemoryPercent == nil {
		return nil, common.NewError("telemetry payload missing cpu_percent or memory_percent")
	}

	status := &RouterStatus{
		CpuPercent:     *w.CpuPercent,
		MemoryPercent:  *w.MemoryPercent,
		StoragePercent: derefFloat(w.StoragePercent),
		Uptime:         derefString(w.Uptime),
		RxMbps:         derefFloat(w.RxMbps),
		TxMbps:         derefFloat(w.TxMbps),
		ActiveSessions: derefInt(w.ActiveSessions),
		Interfaces:     make([]RouterInterface, 0, len(w.Interfaces)),
	}
	for _, iface := range w.Interfaces {
		status.Interfaces = append(status.Interfaces, RouterInterface{
			Name:    iface.Name,
			RxMbps:  derefFloat(iface.RxMbps),
			TxMbps:  derefFloat(iface.TxMbps),
			Running: derefBool(iface.Running),
		})
	}
	return status, nil
}

type bandwidthPointWire struct {
	Timestamp      string  `json:"timestamp"`
	AvgUpMbps      float64 `json:"avg_up_mbps"`
	AvgDownMbps    float64 `json:"avg_down_mbps"`
	TotalUpMbps    float64 `json:"total_up_mbps"`
	TotalDownMbps  float64 `json:"total_down_mbps"`
	ActiveQueues   int     `json:"active_queues"`
	ActiveSessions int     `json:"active_sessions"`
}

func (w bandwidthPointWire) toView() BandwidthPoint {
	return BandwidthPoint{
		Timestamp:      w.Timestamp,
		AvgUpMbps:      w.AvgUpMbps,
		AvgDownMbps:    w.AvgDownMbps,
		TotalUpMbps:    w.TotalUpMbps,
		TotalDownMbps:  w.TotalDownMbps,
		ActiveQueues:   w.ActiveQueues,
		ActiveSessions: w.ActiveSessions,
	}
}

type topUserWire struct {
	MacAddress    string  `json:"mac_address"`
	CustomerId    int     `json:"customer_id"`
	CustomerName  string  `json:"customer_name"`
	UploadBytes   int64   `json:"upload_bytes"`
	DownloadBytes int64   `json:"download_bytes"`
	RateMbps      float64 `json:"rate_mbps"`
}

func (w topUserWire) toView() TopUser {
	return TopUser{
		Mac:           w.MacAddress,
		CustomerId:    w.CustomerId,
		CustomerName:  w.CustomerName,
		UploadBytes:   w.UploadBytes,
		DownloadBytes: w.DownloadBytes,
		UploadText:    common.FormatBytes(w.UploadBytes),
		DownloadText:  common.FormatBytes(w.DownloadBytes),
		RateMbps:      w.RateMbps,
		RateText:      common.FormatMbps(w.RateMbps),
	}
}

type ratingWire struct {
	Id        int      `json:"id"`
	Phone     string   `json:"phone"`
	Stars     int      `json:"stars"`
	Comment   string   `json:"comment"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	CreatedAt string   `json:"created_at"`
}

func (w ratingWire) toView() Rating {
	return Rating{
		Id:            w.Id,
		Phone:         w.Phone,
		Stars:         w.Stars,
		Comment:       w.Comment,
		Latitude:      w.Latitude,
		Longitude:     w.Longitude,
		CreatedAt:     w.CreatedAt,
		CreatedAtText: datetime.Display(w.CreatedAt),
	}
}

type analyticsDayWire struct {
	Date          string  `json:"date"`
	Revenue       float64 `json:"revenue"`
	Transactions  int     `json:"transactions"`
	NewCustomers  int     `json:"new_customers"`
	DataUsedBytes int64   `json:"data_used_bytes"`
}

type analyticsWire struct {
	TotalRevenue     float64            `json:"total_revenue"`
	TransactionCount int                `json:"transaction_count"`
	NewCustomers     int                `json:"new_customers"`
	ActiveSessions   int                `json:"active_sessions"`
	AdImpressions    int64              `json:"ad_impressions"`
	AdClicks         int64              `json:"ad_clicks"`
	Ctr              float64            `json:"ctr"`
	Days             []analyticsDayWire `json:"days"`
}

func (w analyticsWire) toView() *Analytics {
	out := &Analytics{
		TotalRevenue:     w.TotalRevenue,
		TransactionCount: w.TransactionCount,
		NewCustomers:     w.NewCustomers,
		ActiveSessions:   w.ActiveSessions,
		AdImpressions:    w.AdImpressions,
		AdClicks:         w.AdClicks,
		Ctr:              w.Ctr,
		CtrText:          common.FormatPercent(w.Ctr, 2),
		Days:             make([]AnalyticsDay, 0, len(w.Days)),
	}
	for _, d := range w.Days {
		out.Days = append(out.Days, AnalyticsDay{
			Date:          d.Date,
			Revenue:       d.Revenue,
			Transactions:  d.Transactions,
			NewCustomers:  d.NewCustomers,
			DataUsedBytes: d.DataUsedBytes,
		})
	}
	return out
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefBool(v *bool) bool {
	if v == nil {
		return false
	}
	return *v
}
