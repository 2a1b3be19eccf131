package controllers

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/pizza-restaurants-api/internal/models"
	"github.com/franciscosanchezn/pizza-restaurants-api/internal/services"
	"github.com/gin-gonic/gin"
)

// PizzaController handles HTTP requests related to pizzas
type PizzaController interface {
	// GetAllPizzas retrieves all pizzas
	GetAllPizzas(c *gin.Context)
	// GetPizzaRestaurants retrieves the restaurants serving a pizza
	GetPizzaRestaurants(c *gin.Context)
}

type pizzaController struct {
	service services.PizzaService
}

// NewPizzaController creates a new instance of PizzaController
func NewPizzaController(service services.PizzaService) PizzaController {
	return &pizzaController{service: service}
}

// GetAllPizzas godoc
// @Summary Get all pizzas
// @Description Get a list of all pizzas
// @Tags pizzas
// @Produce json
// @Success 200 {array} controllers.PizzaResponse
// @Failure 500 {object} models.APIError
// @Router /pizzas [get]
func (c *pizzaController) GetAllPizzas(ctx *gin.Context) {
	pizzas, err := c.service.GetAllPizzas(ctx.Request.Context())
	if err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError("Failed to retrieve pizzas"))
		return
	}
	ctx.JSON(http.StatusOK, newPizzaListResponse(pizzas))
}

// GetPizzaRestaurants godoc
// @Summary Get restaurants serving a pizza
// @Description Get the distinct restaurants that have the pizza on their menu
// @Tags pizzas
// @Produce json
// @Param id path int true "Pizza ID"
// @Success 200 {array} controllers.RestaurantResponse
// @Failure 404 {object} models.APIError
// @Router /pizzas/{id}/restaurants [get]
func (c *pizzaController) GetPizzaRestaurants(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.MsgPizzaNotFound))
		return
	}

	restaurants, err := c.service.GetPizzaRestaurants(ctx.Request.Context(), id)
	if err != nil {
		_ = ctx.Error(err)
		if errors.Is(err, models.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.MsgPizzaNotFound))
			return
		}
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError("Failed to retrieve restaurants"))
		return
	}
	ctx.JSON(http.StatusOK, newRestaurantListResponse(restaurants))
}
