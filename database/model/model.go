// Package model defines the panel-local database entities. Domain entities
// (customers, plans, ads, transactions) are owned by the billing API and
// never persisted here.
package model

// User is a panel administrator account.
type User struct {
	Id          int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	LoginSecret string `json:"loginSecret"`
}

// Setting is one key/value pair of panel configuration.
type Setting struct {
	Id    int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" form:"key"`
	Value string `json:"value" form:"value"`
}
