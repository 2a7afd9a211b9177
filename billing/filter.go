package billing

import (
	"fmt"
	"net/url"
	"strconv"
)

// DateFilterKind tags the three shapes the dashboard date filter can take.
type DateFilterKind string

const (
	FilterPreset  DateFilterKind = "preset"
	FilterRolling DateFilterKind = "rolling"
	FilterRange   DateFilterKind = "range"
)

// Preset names accepted by the analytics endpoint.
const (
	PresetToday     = "today"
	PresetThisMonth = "this_month"
)

// DateFilter is the tagged union selecting the analytics window: a named
// preset, a rolling N-day window, or an explicit start/end pair. Only the
// fields for the active Kind are meaningful.
type DateFilter struct {
	Kind      DateFilterKind `json:"kind" form:"kind"`
	Preset    string         `json:"preset" form:"preset"`
	Days      int            `json:"days" form:"days"`
	StartDate string         `json:"startDate" form:"startDate"` // 2006-01-02
	EndDate   string         `json:"endDate" form:"endDate"`
}

// DefaultDateFilter is the window shown before the operator picks one.
func DefaultDateFilter() DateFilter {
	return DateFilter{Kind: FilterPreset, Preset: PresetToday}
}

// Valid reports whether the filter's active arm is populated sensibly.
func (f DateFilter) Valid() bool {
	switch f.Kind {
	case FilterPreset:
		return f.Preset == PresetToday || f.Preset == PresetThisMonth
	case FilterRolling:
		return f.Days > 0
	case FilterRange:
		return f.StartDate != "" && f.EndDate != ""
	}
	return false
}

// Key is a stable cache key for this window.
func (f DateFilter) Key() string {
	switch f.Kind {
	case FilterPreset:
		return "preset:" + f.Preset
	case FilterRolling:
		return fmt.Sprintf("rolling:%d", f.Days)
	case FilterRange:
		return "range:" + f.StartDate + ":" + f.EndDate
	}
	return "invalid"
}

func (f DateFilter) encode(v url.Values) {
	switch f.Kind {
	case FilterPreset:
		v.Set("period", f.Preset)
	case FilterRolling:
		v.Set("days", strconv.Itoa(f.Days))
	case FilterRange:
		v.Set("start_date", f.StartDate)
		v.Set("end_date", f.EndDate)
	}
}

// AnalyticsParams selects the analytics report window and optional router
// scope.
type AnalyticsParams struct {
	Filter   DateFilter
	RouterId int
}

// Key is the cache key covering both the window and the router scope.
func (p AnalyticsParams) Key() string {
	return fmt.Sprintf("%s|router:%d", p.Filter.Key(), p.RouterId)
}

func (p AnalyticsParams) encode(v url.Values) {
	p.Filter.encode(v)
	if p.RouterId > 0 {
		v.Set("router_id", strconv.Itoa(p.RouterId))
	}
}

// CustomerParams filters the customer list.
type CustomerParams struct {
	Page     int
	PerPage  int
	Status   string
	RouterId int
}

func (p CustomerParams) encode(v url.Values) {
	encodePage(v, p.Page, p.PerPage)
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	if p.RouterId > 0 {
		v.Set("router_id", strconv.Itoa(p.RouterId))
	}
}

// TransactionParams filters the M-Pesa transaction list.
type TransactionParams struct {
	Page    int
	PerPage int
	Status  string
	Phone   string
}

func (p TransactionParams) encode(v url.Values) {
	encodePage(v, p.Page, p.PerPage)
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	if p.Phone != "" {
		v.Set("phone", p.Phone)
	}
}

func encodePage(v url.Values, page, perPage int) {
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		v.Set("per_page", strconv.Itoa(perPage))
	}
}
