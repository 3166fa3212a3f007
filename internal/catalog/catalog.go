// Package catalog builds the immutable reference data (categories,
// products, users) that generation runs against. Once Generate returns,
// nothing in the catalog changes; stock mutation happens only inside the
// inventory ledger, which takes its starting counters from here.
package catalog

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/dvloznov/shopstream/internal/config"
	"github.com/dvloznov/shopstream/internal/dataset"
	"github.com/dvloznov/shopstream/internal/rng"
	"github.com/dvloznov/shopstream/internal/synth"
)

// Catalog is the generated reference data set.
type Catalog struct {
	Categories []dataset.Category
	Products   []dataset.Product
	Users      []dataset.User
}

// Generate builds a catalog from the configured counts and seed. Each
// collection draws from its own seed-derived stream.
func Generate(cfg config.Config) (*Catalog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	anchor := cfg.Anchor()
	timespan := time.Duration(cfg.TimespanDays) * 24 * time.Hour

	categories := generateCategories(cfg.NumCategories, rng.New(cfg.Seed, rng.StreamCategories))
	products := generateProducts(cfg.NumProducts, categories, anchor, timespan, rng.New(cfg.Seed, rng.StreamProducts))
	users := generateUsers(cfg.NumUsers, anchor, timespan, rng.New(cfg.Seed, rng.StreamUsers))

	return &Catalog{
		Categories: categories,
		Products:   products,
		Users:      users,
	}, nil
}

func generateCategories(n int, r *rand.Rand) []dataset.Category {
	text := synth.New(r)
	categories := make([]dataset.Category, 0, n)

	for i := 0; i < n; i++ {
		cat := dataset.Category{
			CategoryID: fmt.Sprintf("cat_%03d", i),
			Name:       text.CompanyName(),
		}
		numSubs := 3 + r.IntN(3)
		for j := 0; j < numSubs; j++ {
			cat.Subcategories = append(cat.Subcategories, dataset.Subcategory{
				SubcategoryID: fmt.Sprintf("sub_%03d_%02d", i, j),
				Name:          text.BuzzPhrase(),
				ProfitMargin:  round2(0.1 + r.Float64()*0.3),
			})
		}
		categories = append(categories, cat)
	}
	return categories
}

func generateProducts(n int, categories []dataset.Category, anchor time.Time, timespan time.Duration, r *rand.Rand) []dataset.Product {
	text := synth.New(r)
	products := make([]dataset.Product, 0, n)
	creationStart := anchor.Add(-2 * timespan)

	for i := 0; i < n; i++ {
		category := categories[r.IntN(len(categories))]
		initialPrice := round2(5 + r.Float64()*495)

		dateCursor := timeBetween(r, creationStart, anchor)
		history := []dataset.PricePoint{{Price: initialPrice, Date: dateCursor}}
		for k := r.IntN(3); k > 0; k-- {
			dateCursor = dateCursor.Add(time.Duration(10+r.IntN(21)) * 24 * time.Hour)
			history = append(history, dataset.PricePoint{
				Price: round2(initialPrice * (0.8 + r.Float64()*0.4)),
				Date:  dateCursor,
			})
		}

		products = append(products, dataset.Product{
			ProductID:    fmt.Sprintf("prod_%05d", i),
			Name:         text.CatchPhrase(),
			CategoryID:   category.CategoryID,
			BasePrice:    history[len(history)-1].Price,
			CurrentStock: 100 + r.IntN(1901),
			IsActive:     r.Float64() < 0.95,
			PriceHistory: history,
			CreationDate: history[0].Date,
		})
	}
	return products
}

func generateUsers(n int, anchor time.Time, timespan time.Duration, r *rand.Rand) []dataset.User {
	text := synth.New(r)
	users := make([]dataset.User, 0, n)

	for i := 0; i < n; i++ {
		registered := timeBetween(r, anchor.Add(-3*timespan), anchor.Add(-timespan))
		users = append(users, dataset.User{
			UserID: fmt.Sprintf("user_%06d", i),
			GeoData: dataset.GeoData{
				City:    text.City(),
				State:   text.StateAbbr(),
				Country: text.CountryCode(),
			},
			RegistrationDate: registered,
			LastActive:       timeBetween(r, registered, anchor),
		})
	}
	return users
}

// timeBetween draws a uniform instant in [start, end).
func timeBetween(r *rand.Rand, start, end time.Time) time.Time {
	span := end.Sub(start)
	if span <= 0 {
		return start
	}
	return start.Add(time.Duration(r.Int64N(int64(span))))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
