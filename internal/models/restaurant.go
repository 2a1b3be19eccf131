package models

// Restaurant represents a restaurant and, when loaded through the restaurant
// service, the priced pizzas it serves.
type Restaurant struct {
	ID      int    `json:"id" gorm:"primaryKey"`
	Name    string `json:"name"`
	Address string `json:"address"`

	// RestaurantPizzas is filled explicitly by the service layer, it is not a
	// gorm association so that deletes never depend on an implicit object graph.
	RestaurantPizzas []RestaurantPizza `json:"restaurant_pizzas,omitempty" gorm:"-"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}
