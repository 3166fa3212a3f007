package engine

import (
	"encoding/hex"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/dvloznov/shopstream/internal/catalog"
	"github.com/dvloznov/shopstream/internal/dataset"
	"github.com/dvloznov/shopstream/internal/rng"
	"github.com/dvloznov/shopstream/internal/synth"
)

// Fixed enums a session draws from.
var (
	pageTypes      = []string{"home", "category_listing", "product_detail", "cart"}
	deviceTypes    = []string{"mobile", "desktop", "tablet"}
	operatingSys   = []string{"iOS", "Android", "Windows", "macOS"}
	browsers       = []string{"Chrome", "Safari", "Firefox", "Edge"}
	referrers      = []string{"direct", "email", "social", "search_engine"}
	paymentMethods = []string{"credit_card", "paypal", "apple_pay"}
)

// Session behavior constants.
const (
	minViews        = 3
	maxViews        = 15
	minDurationSecs = 30
	maxDurationSecs = 3600
	minViewSecs     = 10
	maxViewSecs     = 120
	cartAddProb     = 0.3
	maxCartQty      = 3
	conversionProb  = 0.4
)

var discountTiers = []float64{0, 0.05, 0.10}

// sessionDraw is everything one loop iteration draws from its random
// stream: the session itself plus the values the transaction phase would
// need. Pre-drawing them keeps the merge phase free of randomness, so
// reservation order alone decides transaction outcomes.
type sessionDraw struct {
	session       *dataset.Session
	discount      float64
	transactionID string
	paymentMethod string
}

// buildSession derives one session for the given user. It is a pure
// function of its inputs and the stream's state: no shared mutable data is
// read or written.
func buildSession(user dataset.User, cat *catalog.Catalog, r *rand.Rand, anchor time.Time, timespan time.Duration) *sessionDraw {
	text := synth.New(r)

	start := anchor.Add(-time.Duration(r.Int64N(int64(timespan))))
	duration := minDurationSecs + r.IntN(maxDurationSecs-minDurationSecs+1)

	session := &dataset.Session{
		SessionID:       newID("sess_", r),
		UserID:          user.UserID,
		StartTime:       start,
		EndTime:         start.Add(time.Duration(duration) * time.Second),
		DurationSeconds: duration,
		GeoData: dataset.SessionGeo{
			City:      user.GeoData.City,
			State:     user.GeoData.State,
			Country:   user.GeoData.Country,
			IPAddress: text.IPv4(),
		},
		DeviceProfile: dataset.DeviceProfile{
			Type:    pick(r, deviceTypes),
			OS:      pick(r, operatingSys),
			Browser: pick(r, browsers),
		},
		Referrer: pick(r, referrers),
	}

	seen := make(map[string]bool)
	numViews := minViews + r.IntN(maxViews-minViews+1)
	for v := 0; v < numViews; v++ {
		product := cat.Products[r.IntN(len(cat.Products))]

		if !seen[product.ProductID] {
			seen[product.ProductID] = true
			session.ViewedProducts = append(session.ViewedProducts, product.ProductID)
		}

		if r.Float64() < cartAddProb {
			session.AddToCart(product.ProductID, dataset.CartItem{
				Quantity: 1 + r.IntN(maxCartQty),
				// Price snapshot at view time; later history entries are
				// deliberately not consulted.
				Price: product.BasePrice,
			})
		}

		session.PageViews = append(session.PageViews, dataset.PageView{
			Timestamp:    start,
			PageType:     pick(r, pageTypes),
			ProductID:    product.ProductID,
			CategoryID:   product.CategoryID,
			ViewDuration: minViewSecs + r.IntN(maxViewSecs-minViewSecs+1),
		})
	}

	converted := len(session.CartContents) > 0 && r.Float64() < conversionProb
	if converted {
		session.ConversionStatus = dataset.StatusConverted
	} else {
		session.ConversionStatus = dataset.StatusBrowsed
	}

	return &sessionDraw{
		session:       session,
		discount:      pickFloat(r, discountTiers),
		transactionID: newID("txn_", r),
		paymentMethod: pick(r, paymentMethods),
	}
}

// newID formats a prefixed id from a UUID drawn off the iteration stream.
// Uniqueness comes from the UUID; determinism from the stream. All 32 hex
// chars are kept: a 10-char suffix is only 40 bits, which starts colliding
// within a single default-sized run of two million sessions.
func newID(prefix string, r *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(rng.NewReader(r))
	if err != nil {
		// The stream reader cannot fail.
		panic(err)
	}
	return prefix + hex.EncodeToString(id[:])
}

func pick(r *rand.Rand, values []string) string {
	return values[r.IntN(len(values))]
}

func pickFloat(r *rand.Rand, values []float64) float64 {
	return values[r.IntN(len(values))]
}
