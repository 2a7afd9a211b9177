package billing

// View models returned to the panel UI. Wire payloads are snake_case and
// are remapped in decode.go; everything here carries camelCase JSON tags.

// Customer is a subscriber account, read-mostly in the panel.
type Customer struct {
	Id            int    `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Mac           string `json:"mac"`
	Status        string `json:"status"` // active | inactive | expired
	ExpiresAt     string `json:"expiresAt"`
	ExpiresAtText string `json:"expiresAtText"`
	PlanId        int    `json:"planId"`
	PlanName      string `json:"planName"`
	RouterId      int    `json:"routerId"`
	RouterName    string `json:"routerName"`
}

// Plan is a priced service tier.
type Plan struct {
	Id             int     `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	DurationValue  int     `json:"durationValue"`
	DurationUnit   string  `json:"durationUnit"` // minutes | hours | days | months
	SpeedMbps      int     `json:"speedMbps"`
	ConnectionType string  `json:"connectionType"` // hotspot | pppoe
}

// Ad is one advertising inventory item.
type Ad struct {
	Id           int     `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	SellerName   string  `json:"sellerName"`
	SellerPhone  string  `json:"sellerPhone"`
	Badge        string  `json:"badge"`
	Active       bool    `json:"active"`
	Views        int64   `json:"views"`
	Clicks       int64   `json:"clicks"`
	ExpiresAt    string  `json:"expiresAt"`
	AdvertiserId int     `json:"advertiserId"`
}

// Advertiser is a business placing ads; create-only in the panel.
type Advertiser struct {
	Id           int    `json:"id"`
	Name         string `json:"name"`
	BusinessName string `json:"businessName"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Active       bool   `json:"active"`
}

// Transaction is an M-Pesa payment record.
type Transaction struct {
	Id            int     `json:"id"`
	Phone         string  `json:"phone"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"` // pending | completed | failed | expired
	Receipt       string  `json:"receipt"`
	FailureReason string  `json:"failureReason"`
	CustomerId    int     `json:"customerId"`
	CustomerName  string  `json:"customerName"`
	PlanId        int     `json:"planId"`
	PlanName      string  `json:"planName"`
	RouterId      int     `json:"routerId"`
	RouterName    string  `json:"routerName"`
	CreatedAt     string  `json:"createdAt"`
	CreatedAtText string  `json:"createdAtText"`
}

// Router is an access point the billing platform manages.
type Router struct {
	Id      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Port    int    `json:"port"`
}

// RouterInterface is one NIC in a telemetry snapshot.
type RouterInterface struct {
	Name    string  `json:"name"`
	RxMbps  float64 `json:"rxMbps"`
	TxMbps  float64 `json:"txMbps"`
	Running bool    `json:"running"`
}

// RouterStatus is a telemetry snapshot, fully replaced on every poll.
type RouterStatus struct {
	CpuPercent     float64           `json:"cpuPercent"`
	MemoryPercent  float64           `json:"memoryPercent"`
	StoragePercent float64           `json:"storagePercent"`
	Uptime         string            `json:"uptime"`
	RxMbps         float64           `json:"rxMbps"`
	TxMbps         float64           `json:"txMbps"`
	ActiveSessions int               `json:"activeSessions"`
	Interfaces     []RouterInterface `json:"interfaces"`
}

// BandwidthPoint is one sample in the bandwidth history series.
type BandwidthPoint struct {
	Timestamp      string  `json:"timestamp"`
	AvgUpMbps      float64 `json:"avgUpMbps"`
	AvgDownMbps    float64 `json:"avgDownMbps"`
	TotalUpMbps    float64 `json:"totalUpMbps"`
	TotalDownMbps  float64 `json:"totalDownMbps"`
	ActiveQueues   int     `json:"activeQueues"`
	ActiveSessions int     `json:"activeSessions"`
}

// TopUser is one entry in the heaviest-users table.
type TopUser struct {
	Mac           string  `json:"mac"`
	CustomerId    int     `json:"customerId"`
	CustomerName  string  `json:"customerName"`
	UploadBytes   int64   `json:"uploadBytes"`
	DownloadBytes int64   `json:"downloadBytes"`
	UploadText    string  `json:"uploadText"`
	DownloadText  string  `json:"downloadText"`
	RateMbps      float64 `json:"rateMbps"`
	RateText      string  `json:"rateText"`
}

// Rating is a customer satisfaction entry, optionally geotagged for the map
// view.
type Rating struct {
	Id            int      `json:"id"`
	Phone         string   `json:"phone"`
	Stars         int      `json:"stars"`
	Comment       string   `json:"comment"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	CreatedAt     string   `json:"createdAt"`
	CreatedAtText string   `json:"createdAtText"`
}

// AnalyticsDay is the per-day breakdown of the analytics report. Days are
// ordered oldest first so the most recent day is last.
type AnalyticsDay struct {
	Date          string  `json:"date"`
	Revenue       float64 `json:"revenue"`
	Transactions  int     `json:"transactions"`
	NewCustomers  int     `json:"newCustomers"`
	DataUsedBytes int64   `json:"dataUsedBytes"`
}

// Analytics is the aggregate dashboard report for one filter window.
type Analytics struct {
	TotalRevenue     float64        `json:"totalRevenue"`
	TransactionCount int            `json:"transactionCount"`
	NewCustomers     int            `json:"newCustomers"`
	ActiveSessions   int            `json:"activeSessions"`
	AdImpressions    int64          `json:"adImpressions"`
	AdClicks         int64          `json:"adClicks"`
	Ctr              float64        `json:"ctr"`
	CtrText          string         `json:"ctrText"`
	Days             []AnalyticsDay `json:"days"`
}

// Pagination describes a server-driven page of results.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
	Total   int `json:"total"`
}
