package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/franciscosanchezn/pizza-restaurants-api/internal/models"
	"gorm.io/gorm"
)

// RestaurantService provides methods to interact with the restaurant tables
type RestaurantService interface {
	// GetAllRestaurants retrieves all restaurants without their pizzas
	GetAllRestaurants(ctx context.Context) ([]models.Restaurant, error)
	// GetRestaurantByID retrieves a restaurant with its priced pizzas
	GetRestaurantByID(ctx context.Context, id int) (models.Restaurant, error)
	// DeleteRestaurant deletes a restaurant and its restaurant_pizzas rows,
	// returning how many join rows went with it
	DeleteRestaurant(ctx context.Context, id int) (int64, error)
	// GetRestaurantPizzas retrieves the distinct pizzas a restaurant serves
	GetRestaurantPizzas(ctx context.Context, id int) ([]models.Pizza, error)
}

// restaurantService is the implementation of the RestaurantService interface
type restaurantService struct {
	db *gorm.DB
}

// NewRestaurantService creates a new instance of RestaurantService
func NewRestaurantService(db *gorm.DB) RestaurantService {
	return &restaurantService{db: db}
}

func (s *restaurantService) GetAllRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if err := s.db.WithContext(ctx).Order("id").Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (s *restaurantService) GetRestaurantByID(ctx context.Context, id int) (models.Restaurant, error) {
	var restaurant models.Restaurant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findRestaurant(tx, id, &restaurant); err != nil {
			return err
		}
		var rps []models.RestaurantPizza
		if err := tx.Preload("Pizza").Where("restaurant_id = ?", id).Order("id").Find(&rps).Error; err != nil {
			return err
		}
		restaurant.RestaurantPizzas = rps
		return nil
	})
	if err != nil {
		return models.Restaurant{}, err
	}
	return restaurant, nil
}

func (s *restaurantService) DeleteRestaurant(ctx context.Context, id int) (int64, error) {
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := findRestaurant(tx, id, &restaurant); err != nil {
			return err
		}
		result := tx.Where("restaurant_id = ?", id).Delete(&models.RestaurantPizza{})
		if result.Error != nil {
			return fmt.Errorf("delete restaurant_pizzas of restaurant %d: %w", id, result.Error)
		}
		removed = result.RowsAffected
		if err := tx.Delete(&restaurant).Error; err != nil {
			return fmt.Errorf("delete restaurant %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *restaurantService) GetRestaurantPizzas(ctx context.Context, id int) ([]models.Pizza, error) {
	var pizzas []models.Pizza
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := findRestaurant(tx, id, &restaurant); err != nil {
			return err
		}
		pizzaIDs := tx.Model(&models.RestaurantPizza{}).Select("pizza_id").Where("restaurant_id = ?", id)
		return tx.Where("id IN (?)", pizzaIDs).Order("id").Find(&pizzas).Error
	})
	if err != nil {
		return nil, err
	}
	return pizzas, nil
}

// findRestaurant loads a restaurant, translating a missing row to models.ErrNotFound
func findRestaurant(tx *gorm.DB, id int, restaurant *models.Restaurant) error {
	if err := tx.First(restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("restaurant %d: %w", id, models.ErrNotFound)
		}
		return err
	}
	return nil
}
