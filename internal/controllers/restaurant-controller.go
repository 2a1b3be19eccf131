package controllers

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/pizza-restaurants-api/internal/models"
	"github.com/franciscosanchezn/pizza-restaurants-api/internal/services"
	"github.com/franciscosanchezn/pizza-restaurants-api/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// RestaurantController handles HTTP requests related to restaurants
type RestaurantController interface {
	// GetAllRestaurants retrieves all restaurants
	GetAllRestaurants(c *gin.Context)
	// GetRestaurantByID retrieves a restaurant with its priced pizzas
	GetRestaurantByID(c *gin.Context)
	// DeleteRestaurant deletes a restaurant and its restaurant pizzas
	DeleteRestaurant(c *gin.Context)
	// GetRestaurantPizzas retrieves the pizzas a restaurant serves
	GetRestaurantPizzas(c *gin.Context)
}

type restaurantController struct {
	service services.RestaurantService
	metrics *metrics.Manager
}

// NewRestaurantController creates a new instance of RestaurantController recording on manager
func NewRestaurantController(service services.RestaurantService, manager *metrics.Manager) RestaurantController {
	return &restaurantController{service: service, metrics: manager}
}

// GetAllRestaurants godoc
// @Summary Get all restaurants
// @Description Get a list of all restaurants
// @Tags restaurants
// @Produce json
// @Success 200 {array} controllers.RestaurantResponse
// @Failure 500 {object} models.APIError
// @Router /restaurants [get]
func (c *restaurantController) GetAllRestaurants(ctx *gin.Context) {
	restaurants, err := c.service.GetAllRestaurants(ctx.Request.Context())
	if err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError("Failed to retrieve restaurants"))
		return
	}
	ctx.JSON(http.StatusOK, newRestaurantListResponse(restaurants))
}

// GetRestaurantByID godoc
// @Summary Get restaurant by ID
// @Description Get a restaurant with the pizzas it serves and their prices
// @Tags restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {object} controllers.RestaurantDetailResponse
// @Failure 404 {object} models.APIError
// @Router /restaurants/{id} [get]
func (c *restaurantController) GetRestaurantByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.MsgRestaurantNotFound))
		return
	}

	restaurant, err := c.service.GetRestaurantByID(ctx.Request.Context(), id)
	if err != nil {
		c.respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newRestaurantDetailResponse(restaurant))
}

// DeleteRestaurant godoc
// @Summary Delete a restaurant
// @Description Delete a restaurant together with its restaurant pizzas
// @Tags restaurants
// @Param id path int true "Restaurant ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /restaurants/{id} [delete]
func (c *restaurantController) DeleteRestaurant(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.MsgRestaurantNotFound))
		return
	}

	removed, err := c.service.DeleteRestaurant(ctx.Request.Context(), id)
	if err != nil {
		c.respondWithError(ctx, err)
		return
	}
	c.metrics.RecordRestaurantDeleted(removed)
	ctx.Status(http.StatusNoContent)
}

// GetRestaurantPizzas godoc
// @Summary Get pizzas of a restaurant
// @Description Get the distinct pizzas a restaurant serves
// @Tags restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {array} controllers.PizzaResponse
// @Failure 404 {object} models.APIError
// @Router /restaurants/{id}/pizzas [get]
func (c *restaurantController) GetRestaurantPizzas(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.MsgRestaurantNotFound))
		return
	}

	pizzas, err := c.service.GetRestaurantPizzas(ctx.Request.Context(), id)
	if err != nil {
		c.respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newPizzaListResponse(pizzas))
}

func (c *restaurantController) respondWithError(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
	if errors.Is(err, models.ErrNotFound) {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.MsgRestaurantNotFound))
		return
	}
	ctx.JSON(http.StatusInternalServerError, models.NewAPIError("Failed to process restaurant"))
}
