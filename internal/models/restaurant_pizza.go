package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Price bounds for a pizza on a restaurant menu, both inclusive
const (
	MinPrice = 1
	MaxPrice = 30
)

// RestaurantPizza links a pizza to a restaurant and carries its price there.
// Rows are removed together with either parent.
type RestaurantPizza struct {
	ID           int        `json:"id" gorm:"primaryKey"`
	Price        int        `json:"price" gorm:"not null"`
	PizzaID      int        `json:"pizza_id" gorm:"not null;index"`
	RestaurantID int        `json:"restaurant_id" gorm:"not null;index"`
	Pizza        Pizza      `json:"pizza" gorm:"foreignKey:PizzaID;constraint:OnDelete:CASCADE"`
	Restaurant   Restaurant `json:"restaurant" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}

func (RestaurantPizza) TableName() string {
	return "restaurant_pizzas"
}

// ValidatePrice reports whether price is within [MinPrice, MaxPrice]
func ValidatePrice(price int) error {
	if price < MinPrice || price > MaxPrice {
		return fmt.Errorf("%w: price must be between %d and %d, got %d", ErrValidation, MinPrice, MaxPrice, price)
	}
	return nil
}

// Validate checks the row before it is written
func (rp *RestaurantPizza) Validate() error {
	if err := ValidatePrice(rp.Price); err != nil {
		return err
	}
	if rp.PizzaID <= 0 {
		return fmt.Errorf("%w: pizza_id is required", ErrValidation)
	}
	if rp.RestaurantID <= 0 {
		return fmt.Errorf("%w: restaurant_id is required", ErrValidation)
	}
	return nil
}

// BeforeSave runs on every create and update issued through gorm
func (rp *RestaurantPizza) BeforeSave(tx *gorm.DB) error {
	return rp.Validate()
}
