// Package dbtest opens isolated in-memory databases for tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/franciscosanchezn/pizza-restaurants-api/internal/database"
	"github.com/franciscosanchezn/pizza-restaurants-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// New returns a migrated, empty in-memory SQLite database that is closed when the test ends
func New(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := database.InitDatabase(database.DatabaseConfig{
		Driver: database.DriverSQLite,
		Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	})
	require.NoError(tb, err)
	require.NoError(tb, database.Migrate(db))

	tb.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// CreateRestaurant inserts a restaurant and returns it with its id
func CreateRestaurant(tb testing.TB, db *gorm.DB, name, address string) models.Restaurant {
	tb.Helper()
	restaurant := models.Restaurant{Name: name, Address: address}
	require.NoError(tb, db.Create(&restaurant).Error)
	return restaurant
}

// CreatePizza inserts a pizza and returns it with its id
func CreatePizza(tb testing.TB, db *gorm.DB, name, ingredients string) models.Pizza {
	tb.Helper()
	pizza := models.Pizza{Name: name, Ingredients: ingredients}
	require.NoError(tb, db.Create(&pizza).Error)
	return pizza
}

// CreateRestaurantPizza inserts a priced join row directly
func CreateRestaurantPizza(tb testing.TB, db *gorm.DB, restaurantID, pizzaID, price int) models.RestaurantPizza {
	tb.Helper()
	rp := models.RestaurantPizza{RestaurantID: restaurantID, PizzaID: pizzaID, Price: price}
	require.NoError(tb, db.Omit(clause.Associations).Create(&rp).Error)
	return rp
}

// CountRestaurantPizzas returns the number of join rows, optionally filtered by a where clause
func CountRestaurantPizzas(tb testing.TB, db *gorm.DB, conds ...any) int64 {
	tb.Helper()
	var count int64
	query := db.Model(&models.RestaurantPizza{})
	if len(conds) > 0 {
		query = query.Where(conds[0], conds[1:]...)
	}
	require.NoError(tb, query.Count(&count).Error)
	return count
}
