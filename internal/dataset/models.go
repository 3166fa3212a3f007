// Package dataset defines the record types for the five generated
// collections. Field names mirror the JSON schema consumed by the
// downstream analytics pipelines, so renaming a tag here is a breaking
// change for every consumer.
package dataset

import "time"

// Subcategory belongs to exactly one Category.
type Subcategory struct {
	SubcategoryID string  `json:"subcategory_id"`
	Name          string  `json:"name"`
	ProfitMargin  float64 `json:"profit_margin"`
}

// Category is part of the immutable catalog reference data.
type Category struct {
	CategoryID    string        `json:"category_id"`
	Name          string        `json:"name"`
	Subcategories []Subcategory `json:"subcategories"`
}

// PricePoint is one entry of a product's price history. Timestamps are
// non-decreasing within a history.
type PricePoint struct {
	Price float64   `json:"price"`
	Date  time.Time `json:"date"`
}

// Product is catalog reference data. CurrentStock is the only field that
// changes after creation, and only the inventory ledger writes it.
type Product struct {
	ProductID    string       `json:"product_id"`
	Name         string       `json:"name"`
	CategoryID   string       `json:"category_id"`
	BasePrice    float64      `json:"base_price"`
	CurrentStock int          `json:"current_stock"`
	IsActive     bool         `json:"is_active"`
	PriceHistory []PricePoint `json:"price_history"`
	CreationDate time.Time    `json:"creation_date"`
}

// GeoData locates a user.
type GeoData struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// User is catalog reference data. LastActive is never before RegistrationDate.
type User struct {
	UserID           string    `json:"user_id"`
	GeoData          GeoData   `json:"geo_data"`
	RegistrationDate time.Time `json:"registration_date"`
	LastActive       time.Time `json:"last_active"`
}

// SessionGeo is the owning user's geo data plus the session's IP address.
type SessionGeo struct {
	City      string `json:"city"`
	State     string `json:"state"`
	Country   string `json:"country"`
	IPAddress string `json:"ip_address"`
}

// DeviceProfile describes the client a session ran on.
type DeviceProfile struct {
	Type    string `json:"type"`
	OS      string `json:"os"`
	Browser string `json:"browser"`
}

// PageView is one browsing event within a session.
type PageView struct {
	Timestamp    time.Time `json:"timestamp"`
	PageType     string    `json:"page_type"`
	ProductID    string    `json:"product_id"`
	CategoryID   string    `json:"category_id"`
	ViewDuration int       `json:"view_duration"`
}

// CartItem is one cart line: quantity plus the price captured at view time.
// The price is a snapshot of the product's base price when the item was
// added, not the price at reservation time.
type CartItem struct {
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Conversion status values.
const (
	StatusConverted = "converted"
	StatusBrowsed   = "browsed"
)

// Session is one browsing session. Sessions are immutable once built.
type Session struct {
	SessionID        string              `json:"session_id"`
	UserID           string              `json:"user_id"`
	StartTime        time.Time           `json:"start_time"`
	EndTime          time.Time           `json:"end_time"`
	DurationSeconds  int                 `json:"duration_seconds"`
	GeoData          SessionGeo          `json:"geo_data"`
	DeviceProfile    DeviceProfile       `json:"device_profile"`
	ViewedProducts   []string            `json:"viewed_products"`
	PageViews        []PageView          `json:"page_views"`
	CartContents     map[string]CartItem `json:"cart_contents"`
	ConversionStatus string              `json:"conversion_status"`
	Referrer         string              `json:"referrer"`

	// cartOrder records first-insertion order of cart product ids. JSON
	// object keys carry no order, but stock reservation must walk the cart
	// in a reproducible sequence.
	cartOrder []string
}

// AddToCart puts an item in the cart. Re-adding a product overwrites the
// line but keeps its original position in the insertion order.
func (s *Session) AddToCart(productID string, item CartItem) {
	if s.CartContents == nil {
		s.CartContents = make(map[string]CartItem)
	}
	if _, seen := s.CartContents[productID]; !seen {
		s.cartOrder = append(s.cartOrder, productID)
	}
	s.CartContents[productID] = item
}

// CartOrder returns cart product ids in insertion order.
func (s *Session) CartOrder() []string {
	return s.cartOrder
}

// TransactionItem is one fulfilled line of a transaction.
type TransactionItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// Transaction is a completed purchase. Items is never empty; a session
// whose whole cart failed reservation produces no transaction at all.
type Transaction struct {
	TransactionID string            `json:"transaction_id"`
	SessionID     string            `json:"session_id"`
	UserID        string            `json:"user_id"`
	Timestamp     time.Time         `json:"timestamp"`
	Items         []TransactionItem `json:"items"`
	Subtotal      float64           `json:"subtotal"`
	Discount      float64           `json:"discount"`
	Total         float64           `json:"total"`
	PaymentMethod string            `json:"payment_method"`
	Status        string            `json:"status"`
}
