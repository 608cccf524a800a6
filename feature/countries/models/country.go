package models

import (
	"time"

	"country-api/core/reconcile"
)

// Country is the persisted row of the 'countries' table.
type Country struct {
	ID              uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"column:name;size:255;not null;uniqueIndex" json:"name"`
	Capital         *string   `gorm:"column:capital;size:255" json:"capital"`
	Region          *string   `gorm:"column:region;size:255;index" json:"region"`
	Population      int64     `gorm:"column:population;not null" json:"population"`
	CurrencyCode    *string   `gorm:"column:currency_code;size:10;index" json:"currency_code"`
	ExchangeRate    *float64  `gorm:"column:exchange_rate" json:"exchange_rate"`
	EstimatedGDP    float64   `gorm:"column:estimated_gdp;not null;index" json:"estimated_gdp"`
	FlagURL         *string   `gorm:"column:flag_url;type:text" json:"flag_url"`
	LastRefreshedAt time.Time `gorm:"column:last_refreshed_at;not null" json:"last_refreshed_at"`
}

// TableName overrides the table name.
func (Country) TableName() string {
	return "countries"
}

// Columns lists the columns the service depends on.
var Columns = []string{
	"id", "name", "capital", "region", "population", "currency_code",
	"exchange_rate", "estimated_gdp", "flag_url", "last_refreshed_at",
}

// FromReconciled converts a reconciled record into a row. ID is left zero.
func FromReconciled(c reconcile.Country) Country {
	return Country{
		Name:            c.Name,
		Capital:         c.Capital,
		Region:          c.Region,
		Population:      c.Population,
		CurrencyCode:    c.CurrencyCode,
		ExchangeRate:    c.ExchangeRate,
		EstimatedGDP:    c.EstimatedGDP,
		FlagURL:         c.FlagURL,
		LastRefreshedAt: c.LastRefreshedAt,
	}
}

// Stats is the aggregate view served by the status endpoint.
type Stats struct {
	TotalCountries  int64      `json:"total_countries"`
	LastRefreshedAt *time.Time `json:"last_refreshed_at"`
}

// Query narrows and orders a country listing.
type Query struct {
	// Region matches the region exactly (case-sensitive). Empty means any.
	Region string
	// Currency matches the currency code exactly (case-sensitive). Empty means any.
	Currency string
	// SortByGDPDesc orders by estimated GDP, highest first.
	SortByGDPDesc bool
}
