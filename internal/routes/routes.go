package routes

import (
	"net/http"
	"time"

	"github.com/franciscosanchezn/pizza-restaurants-api/internal/controllers"
	"github.com/franciscosanchezn/pizza-restaurants-api/internal/middleware"
	"github.com/franciscosanchezn/pizza-restaurants-api/internal/services"
	"github.com/franciscosanchezn/pizza-restaurants-api/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// ServiceName identifies this API in health responses
const ServiceName = "pizza-restaurants-api"

const indexHTML = "<h1>Pizza Restaurants API</h1>"

// Options tunes the router built by NewRouter
type Options struct {
	// AllowedOrigins feeds the CORS middleware, "*" allows any origin
	AllowedOrigins []string
	// Logger receives one entry per request, defaults to the logrus standard logger
	Logger *logrus.Logger
	// Metrics records request and domain metrics, defaults to the process wide manager
	Metrics *metrics.Manager
}

// NewRouter wires services and controllers over db and registers every route
func NewRouter(db *gorm.DB, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Default()
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(opts.Logger),
		middleware.Metrics(opts.Metrics),
		middleware.CORS(opts.AllowedOrigins),
	)

	restaurantController := controllers.NewRestaurantController(services.NewRestaurantService(db), opts.Metrics)
	pizzaController := controllers.NewPizzaController(services.NewPizzaService(db))
	restaurantPizzaController := controllers.NewRestaurantPizzaController(services.NewRestaurantPizzaService(db), opts.Metrics)

	router.GET("/", indexHandler)
	router.GET("/health", healthCheckHandler)
	router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	restaurants := router.Group("/restaurants")
	{
		restaurants.GET("", restaurantController.GetAllRestaurants)
		restaurants.GET("/:id", restaurantController.GetRestaurantByID)
		restaurants.DELETE("/:id", restaurantController.DeleteRestaurant)
		restaurants.GET("/:id/pizzas", restaurantController.GetRestaurantPizzas)
	}

	pizzas := router.Group("/pizzas")
	{
		pizzas.GET("", pizzaController.GetAllPizzas)
		pizzas.GET("/:id/restaurants", pizzaController.GetPizzaRestaurants)
	}

	router.POST("/restaurant_pizzas", restaurantPizzaController.CreateRestaurantPizza)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}

func indexHandler(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   ServiceName,
	})
}
