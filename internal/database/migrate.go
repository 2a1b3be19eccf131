package database

import (
	"fmt"

	"github.com/franciscosanchezn/pizza-restaurants-api/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migrate creates or updates the restaurants, pizzas and restaurant_pizzas tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Restaurant{}, &models.Pizza{}, &models.RestaurantPizza{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

type seedPrice struct {
	restaurant int
	pizza      int
	price      int
}

// seed data inserted into an empty database
var (
	seedRestaurants = []models.Restaurant{
		{Name: "Karen's Pizza Shack", Address: "address1"},
		{Name: "Sanjay's Pizza", Address: "address2"},
		{Name: "Kiki's Pizza", Address: "address3"},
	}
	seedPizzas = []models.Pizza{
		{Name: "Emma", Ingredients: "Dough, Tomato Sauce, Cheese"},
		{Name: "Geri", Ingredients: "Dough, Tomato Sauce, Cheese, Pepperoni"},
		{Name: "Melanie", Ingredients: "Dough, Sauce, Ricotta, Red peppers, Mustard"},
	}
	seedPrices = []seedPrice{
		{restaurant: 0, pizza: 0, price: 1},
		{restaurant: 1, pizza: 1, price: 4},
		{restaurant: 2, pizza: 2, price: 5},
	}
)

// SeedDatabase inserts the sample data when the restaurants table is empty.
// It reports whether anything was written.
func SeedDatabase(db *gorm.DB) (bool, error) {
	var count int64
	if err := db.Model(&models.Restaurant{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count restaurants: %w", err)
	}
	if count > 0 {
		log.WithField("restaurants", count).Info("Database already seeded with initial data")
		return false, nil
	}

	log.Info("Database is empty, seeding initial data")
	err := db.Transaction(func(tx *gorm.DB) error {
		restaurants := append([]models.Restaurant(nil), seedRestaurants...)
		if err := tx.Create(&restaurants).Error; err != nil {
			return err
		}
		pizzas := append([]models.Pizza(nil), seedPizzas...)
		if err := tx.Create(&pizzas).Error; err != nil {
			return err
		}
		for _, sp := range seedPrices {
			rp := models.RestaurantPizza{
				Price:        sp.price,
				RestaurantID: restaurants[sp.restaurant].ID,
				PizzaID:      pizzas[sp.pizza].ID,
			}
			if err := tx.Omit(clause.Associations).Create(&rp).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seed database: %w", err)
	}

	log.WithFields(logrus.Fields{
		"restaurants":       len(seedRestaurants),
		"pizzas":            len(seedPizzas),
		"restaurant_pizzas": len(seedPrices),
	}).Info("Database seeded successfully")
	return true, nil
}

// ResetDatabase removes every row, join rows first
func ResetDatabase(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.RestaurantPizza{}, &models.Restaurant{}, &models.Pizza{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("reset database: %w", err)
			}
		}
		return nil
	})
}
