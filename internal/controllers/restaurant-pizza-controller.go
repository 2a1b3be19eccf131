package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/pizza-restaurants-api/internal/models"
	"github.com/franciscosanchezn/pizza-restaurants-api/internal/services"
	"github.com/franciscosanchezn/pizza-restaurants-api/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// RestaurantPizzaController handles HTTP requests related to restaurant pizzas
type RestaurantPizzaController interface {
	// CreateRestaurantPizza puts a pizza on a restaurant's menu at a price
	CreateRestaurantPizza(c *gin.Context)
}

type restaurantPizzaController struct {
	service services.RestaurantPizzaService
	metrics *metrics.Manager
}

// NewRestaurantPizzaController creates a new instance of RestaurantPizzaController recording on manager
func NewRestaurantPizzaController(service services.RestaurantPizzaService, manager *metrics.Manager) RestaurantPizzaController {
	return &restaurantPizzaController{service: service, metrics: manager}
}

// CreateRestaurantPizzaRequest is the body of POST /restaurant_pizzas.
// Pointers tell a missing field apart from a zero value.
type CreateRestaurantPizzaRequest struct {
	Price        *int `json:"price" binding:"required"`
	PizzaID      *int `json:"pizza_id" binding:"required"`
	RestaurantID *int `json:"restaurant_id" binding:"required"`
}

// CreateRestaurantPizza godoc
// @Summary Create a restaurant pizza
// @Description Put a pizza on a restaurant's menu. Price must be between 1 and 30.
// @Tags restaurant_pizzas
// @Accept json
// @Produce json
// @Param restaurant_pizza body controllers.CreateRestaurantPizzaRequest true "Restaurant pizza"
// @Success 201 {object} controllers.RestaurantPizzaResponse
// @Failure 400 {object} models.ValidationErrors
// @Router /restaurant_pizzas [post]
func (c *restaurantPizzaController) CreateRestaurantPizza(ctx *gin.Context) {
	var req CreateRestaurantPizzaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.rejectWithValidationErrors(ctx, err)
		return
	}

	created, err := c.service.CreateRestaurantPizza(ctx.Request.Context(), services.CreateRestaurantPizzaInput{
		Price:        *req.Price,
		PizzaID:      *req.PizzaID,
		RestaurantID: *req.RestaurantID,
	})
	if err != nil {
		// Validation and store failures look the same to the caller
		c.rejectWithValidationErrors(ctx, err)
		return
	}

	c.metrics.RecordRestaurantPizzaCreated()
	ctx.JSON(http.StatusCreated, newRestaurantPizzaResponse(created))
}

func (c *restaurantPizzaController) rejectWithValidationErrors(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
	c.metrics.RecordValidationFailure()
	ctx.JSON(http.StatusBadRequest, models.NewValidationErrors())
}
