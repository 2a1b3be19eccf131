package controllers

import (
	"strconv"

	"github.com/franciscosanchezn/pizza-restaurants-api/internal/models"
	"github.com/gin-gonic/gin"
)

// Response shapes. Nested objects never carry a back-reference to their
// parent, so a pizza inside restaurant_pizzas has no restaurant_pizzas of its own.

// RestaurantResponse is a restaurant without its pizzas
type RestaurantResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// PizzaResponse is a pizza without its restaurants
type PizzaResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Ingredients string `json:"ingredients"`
}

// RestaurantPizzaItem is a join row as listed under a restaurant
type RestaurantPizzaItem struct {
	ID           int           `json:"id"`
	Price        int           `json:"price"`
	PizzaID      int           `json:"pizza_id"`
	RestaurantID int           `json:"restaurant_id"`
	Pizza        PizzaResponse `json:"pizza"`
}

// RestaurantDetailResponse is a restaurant with its priced pizzas
type RestaurantDetailResponse struct {
	ID               int                   `json:"id"`
	Name             string                `json:"name"`
	Address          string                `json:"address"`
	RestaurantPizzas []RestaurantPizzaItem `json:"restaurant_pizzas"`
}

// RestaurantPizzaResponse is a newly created join row with both ends embedded
type RestaurantPizzaResponse struct {
	ID           int                `json:"id"`
	Price        int                `json:"price"`
	PizzaID      int                `json:"pizza_id"`
	RestaurantID int                `json:"restaurant_id"`
	Pizza        PizzaResponse      `json:"pizza"`
	Restaurant   RestaurantResponse `json:"restaurant"`
}

func newRestaurantResponse(r models.Restaurant) RestaurantResponse {
	return RestaurantResponse{ID: r.ID, Name: r.Name, Address: r.Address}
}

func newRestaurantListResponse(restaurants []models.Restaurant) []RestaurantResponse {
	resp := make([]RestaurantResponse, 0, len(restaurants))
	for _, r := range restaurants {
		resp = append(resp, newRestaurantResponse(r))
	}
	return resp
}

func newPizzaResponse(p models.Pizza) PizzaResponse {
	return PizzaResponse{ID: p.ID, Name: p.Name, Ingredients: p.Ingredients}
}

func newPizzaListResponse(pizzas []models.Pizza) []PizzaResponse {
	resp := make([]PizzaResponse, 0, len(pizzas))
	for _, p := range pizzas {
		resp = append(resp, newPizzaResponse(p))
	}
	return resp
}

func newRestaurantDetailResponse(r models.Restaurant) RestaurantDetailResponse {
	items := make([]RestaurantPizzaItem, 0, len(r.RestaurantPizzas))
	for _, rp := range r.RestaurantPizzas {
		items = append(items, RestaurantPizzaItem{
			ID:           rp.ID,
			Price:        rp.Price,
			PizzaID:      rp.PizzaID,
			RestaurantID: rp.RestaurantID,
			Pizza:        newPizzaResponse(rp.Pizza),
		})
	}
	return RestaurantDetailResponse{
		ID:               r.ID,
		Name:             r.Name,
		Address:          r.Address,
		RestaurantPizzas: items,
	}
}

func newRestaurantPizzaResponse(rp models.RestaurantPizza) RestaurantPizzaResponse {
	return RestaurantPizzaResponse{
		ID:           rp.ID,
		Price:        rp.Price,
		PizzaID:      rp.PizzaID,
		RestaurantID: rp.RestaurantID,
		Pizza:        newPizzaResponse(rp.Pizza),
		Restaurant:   newRestaurantResponse(rp.Restaurant),
	}
}

// pathID parses the :id parameter. Anything but a positive integer is
// reported as not ok, which callers treat like an unknown id.
func pathID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
