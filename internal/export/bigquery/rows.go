// Package bigquery loads a generated dataset into BigQuery tables so the
// downstream analytics layer can query it without touching the JSON files.
// Sessions are flattened for warehousing: page views stay in the JSON
// output only, which is where the original pipeline consumed them.
package bigquery

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/dvloznov/shopstream/internal/dataset"
	"github.com/dvloznov/shopstream/internal/engine"
)

type UserRow struct {
	UserID           string    `bigquery:"user_id"`
	City             string    `bigquery:"city"`
	State            string    `bigquery:"state"`
	Country          string    `bigquery:"country"`
	RegistrationDate time.Time `bigquery:"registration_date"`
	LastActive       time.Time `bigquery:"last_active"`
}

type SubcategoryRow struct {
	SubcategoryID string  `bigquery:"subcategory_id"`
	Name          string  `bigquery:"name"`
	ProfitMargin  float64 `bigquery:"profit_margin"`
}

type CategoryRow struct {
	CategoryID    string           `bigquery:"category_id"`
	Name          string           `bigquery:"name"`
	Subcategories []SubcategoryRow `bigquery:"subcategories"` // REPEATED RECORD
}

type PricePointRow struct {
	Price float64   `bigquery:"price"`
	Date  time.Time `bigquery:"date"`
}

type ProductRow struct {
	ProductID    string          `bigquery:"product_id"`
	Name         string          `bigquery:"name"`
	CategoryID   string          `bigquery:"category_id"`
	BasePrice    float64         `bigquery:"base_price"`
	CurrentStock int64           `bigquery:"current_stock"`
	IsActive     bool            `bigquery:"is_active"`
	PriceHistory []PricePointRow `bigquery:"price_history"` // REPEATED RECORD
	CreationDate time.Time       `bigquery:"creation_date"`
}

type SessionRow struct {
	SessionID        string     `bigquery:"session_id"`
	UserID           string     `bigquery:"user_id"`
	SessionDate      civil.Date `bigquery:"session_date"` // partition column
	StartTime        time.Time  `bigquery:"start_time"`
	EndTime          time.Time  `bigquery:"end_time"`
	DurationSeconds  int64      `bigquery:"duration_seconds"`
	City             string     `bigquery:"city"`
	State            string     `bigquery:"state"`
	Country          string     `bigquery:"country"`
	IPAddress        string     `bigquery:"ip_address"`
	DeviceType       string     `bigquery:"device_type"`
	DeviceOS         string     `bigquery:"device_os"`
	DeviceBrowser    string     `bigquery:"device_browser"`
	ViewedProducts   []string   `bigquery:"viewed_products"` // REPEATED STRING
	PageViewCount    int64      `bigquery:"page_view_count"`
	CartSize         int64      `bigquery:"cart_size"`
	ConversionStatus string     `bigquery:"conversion_status"`
	Referrer         string     `bigquery:"referrer"`
}

type TransactionItemRow struct {
	ProductID string  `bigquery:"product_id"`
	Quantity  int64   `bigquery:"quantity"`
	UnitPrice float64 `bigquery:"unit_price"`
	Subtotal  float64 `bigquery:"subtotal"`
}

type TransactionRow struct {
	TransactionID   string               `bigquery:"transaction_id"`
	SessionID       string               `bigquery:"session_id"`
	UserID          string               `bigquery:"user_id"`
	TransactionDate civil.Date           `bigquery:"transaction_date"` // partition column
	Timestamp       time.Time            `bigquery:"ts"`
	Items           []TransactionItemRow `bigquery:"items"` // REPEATED RECORD
	Subtotal        float64              `bigquery:"subtotal"`
	Discount        float64              `bigquery:"discount"`
	Total           float64              `bigquery:"total"`
	PaymentMethod   string               `bigquery:"payment_method"`
	Status          string               `bigquery:"status"`
}

// Rows maps a dataset into the per-table row batches.
type Rows struct {
	Users        []*UserRow
	Categories   []*CategoryRow
	Products     []*ProductRow
	Sessions     []*SessionRow
	Transactions []*TransactionRow
}

// RowsFromDataset converts every collection into its table rows.
func RowsFromDataset(ds *engine.Dataset) *Rows {
	rows := &Rows{
		Users:        make([]*UserRow, 0, len(ds.Users)),
		Categories:   make([]*CategoryRow, 0, len(ds.Categories)),
		Products:     make([]*ProductRow, 0, len(ds.Products)),
		Sessions:     make([]*SessionRow, 0, len(ds.Sessions)),
		Transactions: make([]*TransactionRow, 0, len(ds.Transactions)),
	}

	for _, u := range ds.Users {
		rows.Users = append(rows.Users, &UserRow{
			UserID:           u.UserID,
			City:             u.GeoData.City,
			State:            u.GeoData.State,
			Country:          u.GeoData.Country,
			RegistrationDate: u.RegistrationDate,
			LastActive:       u.LastActive,
		})
	}

	for _, c := range ds.Categories {
		row := &CategoryRow{CategoryID: c.CategoryID, Name: c.Name}
		for _, sub := range c.Subcategories {
			row.Subcategories = append(row.Subcategories, SubcategoryRow{
				SubcategoryID: sub.SubcategoryID,
				Name:          sub.Name,
				ProfitMargin:  sub.ProfitMargin,
			})
		}
		rows.Categories = append(rows.Categories, row)
	}

	for _, p := range ds.Products {
		row := &ProductRow{
			ProductID:    p.ProductID,
			Name:         p.Name,
			CategoryID:   p.CategoryID,
			BasePrice:    p.BasePrice,
			CurrentStock: int64(p.CurrentStock),
			IsActive:     p.IsActive,
			CreationDate: p.CreationDate,
		}
		for _, point := range p.PriceHistory {
			row.PriceHistory = append(row.PriceHistory, PricePointRow{Price: point.Price, Date: point.Date})
		}
		rows.Products = append(rows.Products, row)
	}

	for _, s := range ds.Sessions {
		rows.Sessions = append(rows.Sessions, sessionRow(s))
	}

	for _, t := range ds.Transactions {
		row := &TransactionRow{
			TransactionID:   t.TransactionID,
			SessionID:       t.SessionID,
			UserID:          t.UserID,
			TransactionDate: civil.DateOf(t.Timestamp),
			Timestamp:       t.Timestamp,
			Subtotal:        t.Subtotal,
			Discount:        t.Discount,
			Total:           t.Total,
			PaymentMethod:   t.PaymentMethod,
			Status:          t.Status,
		}
		for _, item := range t.Items {
			row.Items = append(row.Items, TransactionItemRow{
				ProductID: item.ProductID,
				Quantity:  int64(item.Quantity),
				UnitPrice: item.UnitPrice,
				Subtotal:  item.Subtotal,
			})
		}
		rows.Transactions = append(rows.Transactions, row)
	}

	return rows
}

func sessionRow(s *dataset.Session) *SessionRow {
	return &SessionRow{
		SessionID:        s.SessionID,
		UserID:           s.UserID,
		SessionDate:      civil.DateOf(s.StartTime),
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		DurationSeconds:  int64(s.DurationSeconds),
		City:             s.GeoData.City,
		State:            s.GeoData.State,
		Country:          s.GeoData.Country,
		IPAddress:        s.GeoData.IPAddress,
		DeviceType:       s.DeviceProfile.Type,
		DeviceOS:         s.DeviceProfile.OS,
		DeviceBrowser:    s.DeviceProfile.Browser,
		ViewedProducts:   s.ViewedProducts,
		PageViewCount:    int64(len(s.PageViews)),
		CartSize:         int64(len(s.CartContents)),
		ConversionStatus: s.ConversionStatus,
		Referrer:         s.Referrer,
	}
}
