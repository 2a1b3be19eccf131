package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/franciscosanchezn/pizza-restaurants-api/internal/models"
	"gorm.io/gorm"
)

// PizzaService provides methods to interact with the pizza database
type PizzaService interface {
	// GetAllPizzas retrieves all pizzas from the database
	GetAllPizzas(ctx context.Context) ([]models.Pizza, error)
	// GetPizzaRestaurants retrieves the distinct restaurants serving a pizza
	GetPizzaRestaurants(ctx context.Context, id int) ([]models.Restaurant, error)
}

// pizzaService is the implementation of the PizzaService interface
type pizzaService struct {
	db *gorm.DB
}

// NewPizzaService creates a new instance of PizzaService
func NewPizzaService(db *gorm.DB) PizzaService {
	return &pizzaService{db: db}
}

func (s *pizzaService) GetAllPizzas(ctx context.Context) ([]models.Pizza, error) {
	var pizzas []models.Pizza
	if err := s.db.WithContext(ctx).Order("id").Find(&pizzas).Error; err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (s *pizzaService) GetPizzaRestaurants(ctx context.Context, id int) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pizza models.Pizza
		if err := findPizza(tx, id, &pizza); err != nil {
			return err
		}
		restaurantIDs := tx.Model(&models.RestaurantPizza{}).Select("restaurant_id").Where("pizza_id = ?", id)
		return tx.Where("id IN (?)", restaurantIDs).Order("id").Find(&restaurants).Error
	})
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

// findPizza loads a pizza, translating a missing row to models.ErrNotFound
func findPizza(tx *gorm.DB, id int, pizza *models.Pizza) error {
	if err := tx.First(pizza, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("pizza %d: %w", id, models.ErrNotFound)
		}
		return err
	}
	return nil
}
