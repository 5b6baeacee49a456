package dto

import (
	"github.com/shopspring/decimal"
)

// Request DTOs

type MedicineSearchRequest struct {
	Query      string `json:"q" validate:"max=100"`
	CategoryID int    `json:"category_id" validate:"gte=0"`
	Limit      int    `json:"limit" validate:"gte=0,lte=200"`
}

// Response DTOs

type MedicineResponse struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Concentration string          `json:"concentration,omitempty"`
	Unit          string          `json:"unit,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Categories    []string        `json:"categories"`
}

type MedicineListResponse struct {
	Medicines []MedicineResponse `json:"medicines"`
	Total     int                `json:"total"`
}
