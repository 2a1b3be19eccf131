package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/franciscosanchezn/pizza-restaurants-api/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateRestaurantPizzaInput carries the fields of a new restaurant_pizzas row
type CreateRestaurantPizzaInput struct {
	Price        int
	PizzaID      int
	RestaurantID int
}

// RestaurantPizzaService provides methods to price pizzas at restaurants
type RestaurantPizzaService interface {
	// CreateRestaurantPizza validates and stores a new row, returning it with
	// its pizza and restaurant loaded. Every failure wraps models.ErrValidation.
	CreateRestaurantPizza(ctx context.Context, input CreateRestaurantPizzaInput) (models.RestaurantPizza, error)
}

type restaurantPizzaService struct {
	db *gorm.DB
}

// NewRestaurantPizzaService creates a new instance of RestaurantPizzaService
func NewRestaurantPizzaService(db *gorm.DB) RestaurantPizzaService {
	return &restaurantPizzaService{db: db}
}

func (s *restaurantPizzaService) CreateRestaurantPizza(ctx context.Context, input CreateRestaurantPizzaInput) (models.RestaurantPizza, error) {
	rp := models.RestaurantPizza{
		Price:        input.Price,
		PizzaID:      input.PizzaID,
		RestaurantID: input.RestaurantID,
	}
	if err := rp.Validate(); err != nil {
		return models.RestaurantPizza{}, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findPizza(tx, rp.PizzaID, &rp.Pizza); err != nil {
			return err
		}
		if err := findRestaurant(tx, rp.RestaurantID, &rp.Restaurant); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(&rp).Error
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"pizza_id":      input.PizzaID,
			"restaurant_id": input.RestaurantID,
			"price":         input.Price,
		}).WithError(err).Warn("Rejected restaurant pizza")
		if errors.Is(err, models.ErrValidation) {
			return models.RestaurantPizza{}, err
		}
		return models.RestaurantPizza{}, fmt.Errorf("%w: %w", models.ErrValidation, err)
	}
	return rp, nil
}
