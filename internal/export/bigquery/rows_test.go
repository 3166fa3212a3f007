package bigquery

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvloznov/shopstream/internal/dataset"
	"github.com/dvloznov/shopstream/internal/engine"
)

func TestRowsFromDataset(t *testing.T) {
	start := time.Date(2026, 2, 3, 22, 15, 0, 0, time.UTC)
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	session := &dataset.Session{
		SessionID:       "sess_1234567890",
		UserID:          "user_000042",
		StartTime:       start,
		EndTime:         start.Add(90 * time.Second),
		DurationSeconds: 90,
		GeoData: dataset.SessionGeo{
			City: "Riverbend", State: "OR", Country: "US", IPAddress: "10.1.2.3",
		},
		DeviceProfile: dataset.DeviceProfile{Type: "mobile", OS: "iOS", Browser: "Safari"},
		ViewedProducts: []string{"prod_00001", "prod_00002"},
		PageViews: []dataset.PageView{
			{PageType: "home"}, {PageType: "product_detail"}, {PageType: "cart"},
		},
		CartContents: map[string]dataset.CartItem{
			"prod_00001": {Quantity: 2, Price: 12.50},
		},
		ConversionStatus: dataset.StatusConverted,
		Referrer:         "email",
	}

	ds := &engine.Dataset{
		Categories: []dataset.Category{
			{
				CategoryID: "cat_001",
				Name:       "Outdoor Gear",
				Subcategories: []dataset.Subcategory{
					{SubcategoryID: "sub_001_00", Name: "Tents", ProfitMargin: 0.22},
				},
			},
		},
		Products: []dataset.Product{
			{
				ProductID:    "prod_00001",
				Name:         "Summit Tent",
				CategoryID:   "cat_001",
				BasePrice:    12.50,
				CurrentStock: 98,
				IsActive:     true,
				CreationDate: created,
				PriceHistory: []dataset.PricePoint{{Price: 11.80, Date: created}},
			},
		},
		Users: []dataset.User{
			{
				UserID:           "user_000042",
				GeoData:          dataset.GeoData{City: "Riverbend", State: "OR", Country: "US"},
				RegistrationDate: created,
				LastActive:       start,
			},
		},
		Sessions: []*dataset.Session{session},
		Transactions: []*dataset.Transaction{
			{
				TransactionID: "txn_abcdefabcdef",
				SessionID:     "sess_1234567890",
				UserID:        "user_000042",
				Timestamp:     start,
				Items: []dataset.TransactionItem{
					{ProductID: "prod_00001", Quantity: 2, UnitPrice: 12.50, Subtotal: 25},
				},
				Subtotal:      25,
				Discount:      1.25,
				Total:         23.75,
				PaymentMethod: "apple_pay",
				Status:        "completed",
			},
		},
	}

	rows := RowsFromDataset(ds)

	require.Len(t, rows.Users, 1)
	assert.Equal(t, &UserRow{
		UserID:           "user_000042",
		City:             "Riverbend",
		State:            "OR",
		Country:          "US",
		RegistrationDate: created,
		LastActive:       start,
	}, rows.Users[0])

	require.Len(t, rows.Categories, 1)
	require.Len(t, rows.Categories[0].Subcategories, 1)
	assert.Equal(t, SubcategoryRow{SubcategoryID: "sub_001_00", Name: "Tents", ProfitMargin: 0.22},
		rows.Categories[0].Subcategories[0])

	require.Len(t, rows.Products, 1)
	p := rows.Products[0]
	assert.Equal(t, int64(98), p.CurrentStock)
	assert.True(t, p.IsActive)
	require.Len(t, p.PriceHistory, 1)
	assert.Equal(t, 11.80, p.PriceHistory[0].Price)

	require.Len(t, rows.Sessions, 1)
	s := rows.Sessions[0]
	assert.Equal(t, civil.Date{Year: 2026, Month: time.February, Day: 3}, s.SessionDate)
	assert.Equal(t, int64(3), s.PageViewCount)
	assert.Equal(t, int64(1), s.CartSize)
	assert.Equal(t, []string{"prod_00001", "prod_00002"}, s.ViewedProducts)
	assert.Equal(t, "mobile", s.DeviceType)
	assert.Equal(t, "10.1.2.3", s.IPAddress)

	require.Len(t, rows.Transactions, 1)
	txn := rows.Transactions[0]
	assert.Equal(t, civil.Date{Year: 2026, Month: time.February, Day: 3}, txn.TransactionDate)
	require.Len(t, txn.Items, 1)
	assert.Equal(t, TransactionItemRow{ProductID: "prod_00001", Quantity: 2, UnitPrice: 12.50, Subtotal: 25},
		txn.Items[0])
	assert.Equal(t, 23.75, txn.Total)
}

func TestRowsFromDataset_Empty(t *testing.T) {
	rows := RowsFromDataset(&engine.Dataset{})
	assert.Empty(t, rows.Users)
	assert.Empty(t, rows.Categories)
	assert.Empty(t, rows.Products)
	assert.Empty(t, rows.Sessions)
	assert.Empty(t, rows.Transactions)
}
