// Package entity defines data structures shared by the web layer of the
// NetPesa panel.
package entity

import (
	"math"
	"net"
	"strings"
	"time"

	"github.com/netpesa/netpesa/util/common"
)

// Msg is the standard API response envelope.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// AllSetting carries every panel configuration value exposed to the
// settings screen.
type AllSetting struct {
	// Web server settings
	WebListen     string `json:"webListen" form:"webListen"`
	WebDomain     string `json:"webDomain" form:"webDomain"`
	WebPort       int    `json:"webPort" form:"webPort"`
	WebBasePath   string `json:"webBasePath" form:"webBasePath"`
	WebCertFile   string `json:"webCertFile" form:"webCertFile"`
	WebKeyFile    string `json:"webKeyFile" form:"webKeyFile"`
	SessionMaxAge int    `json:"sessionMaxAge" form:"sessionMaxAge"` // minutes

	// Upstream billing API
	ApiBaseURL string `json:"apiBaseURL" form:"apiBaseURL"`
	ApiToken   string `json:"apiToken" form:"apiToken"`

	// UI settings
	PageSize         int    `json:"pageSize" form:"pageSize"`
	SidebarCollapsed bool   `json:"sidebarCollapsed" form:"sidebarCollapsed"`
	TimeLocation     string `json:"timeLocation" form:"timeLocation"`

	// Security settings
	TwoFactorEnable bool   `json:"twoFactorEnable" form:"twoFactorEnable"`
	TwoFactorToken  string `json:"twoFactorToken" form:"twoFactorToken"`
}

// CheckValid validates the settings before they are persisted.
func (s *AllSetting) CheckValid() error {
	if s.WebListen != "" {
		ip := net.ParseIP(s.WebListen)
		if ip == nil {
			return common.NewError("web listen is not valid ip:", s.WebListen)
		}
	}

	if s.WebPort <= 0 || s.WebPort > math.MaxUint16 {
		return common.NewError("web port is not a valid port:", s.WebPort)
	}

	if s.ApiBaseURL != "" && !strings.HasPrefix(s.ApiBaseURL, "http://") && !strings.HasPrefix(s.ApiBaseURL, "https://") {
		return common.NewError("api base url must be http(s):", s.ApiBaseURL)
	}
	s.ApiBaseURL = strings.TrimSuffix(s.ApiBaseURL, "/")

	if !strings.HasPrefix(s.WebBasePath, "/") {
		s.WebBasePath = "/" + s.WebBasePath
	}
	if !strings.HasSuffix(s.WebBasePath, "/") {
		s.WebBasePath += "/"
	}

	if s.SessionMaxAge < 0 {
		return common.NewError("session max age can not be negative:", s.SessionMaxAge)
	}

	_, err := time.LoadLocation(s.TimeLocation)
	if err != nil {
		return common.NewError("time location not exist:", s.TimeLocation)
	}

	return nil
}
