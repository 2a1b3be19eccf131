package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/franciscosanchezn/pizza-restaurants-api/docs"
	"github.com/franciscosanchezn/pizza-restaurants-api/internal/database/dbtest"
	"github.com/franciscosanchezn/pizza-restaurants-api/internal/models"
	"github.com/franciscosanchezn/pizza-restaurants-api/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	db      *gorm.DB
	router  *gin.Engine
	metrics *metrics.Manager
	shack   models.Restaurant
	kiki    models.Restaurant
	emma    models.Pizza
	geri    models.Pizza
}

func setupFixture(t *testing.T) fixture {
	t.Helper()
	db := dbtest.New(t)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	manager := metrics.NewManager(metrics.WithRegistry(prometheus.NewRegistry()))
	f := fixture{
		db:      db,
		metrics: manager,
		router: NewRouter(db, Options{
			AllowedOrigins: []string{"*"},
			Logger:         logger,
			Metrics:        manager,
		}),
	}
	f.shack = dbtest.CreateRestaurant(t, db, "Karen's Pizza Shack", "address1")
	f.kiki = dbtest.CreateRestaurant(t, db, "Kiki's Pizza", "address3")
	f.emma = dbtest.CreatePizza(t, db, "Emma", "Dough, Tomato Sauce, Cheese")
	f.geri = dbtest.CreatePizza(t, db, "Geri", "Dough, Tomato Sauce, Cheese, Pepperoni")
	return f
}

func (f fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestListEndpoints(t *testing.T) {
	f := setupFixture(t)

	w := f.do(t, http.MethodGet, "/restaurants", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	restaurants := decode[[]map[string]any](t, w)
	require.Len(t, restaurants, 2)
	assert.Equal(t, map[string]any{"id": float64(f.shack.ID), "name": "Karen's Pizza Shack", "address": "address1"}, restaurants[0])

	w = f.do(t, http.MethodGet, "/pizzas", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	pizzas := decode[[]map[string]any](t, w)
	require.Len(t, pizzas, 2)
	assert.Equal(t, map[string]any{"id": float64(f.geri.ID), "name": "Geri", "ingredients": "Dough, Tomato Sauce, Cheese, Pepperoni"}, pizzas[1])
}

func TestUnknownRestaurantIsNotFound(t *testing.T) {
	f := setupFixture(t)

	for _, id := range []string{"0", "999", "123456", "not-a-number"} {
		for _, method := range []string{http.MethodGet, http.MethodDelete} {
			t.Run(method+" "+id, func(t *testing.T) {
				w := f.do(t, method, "/restaurants/"+id, nil)
				assert.Equal(t, http.StatusNotFound, w.Code)
				assert.JSONEq(t, `{"error": "Restaurant not found"}`, w.Body.String())
			})
		}
	}
}

func TestCreateRestaurantPizza(t *testing.T) {
	f := setupFixture(t)

	t.Run("boundary prices succeed", func(t *testing.T) {
		for _, price := range []int{1, 30} {
			w := f.do(t, http.MethodPost, "/restaurant_pizzas", map[string]int{
				"price": price, "pizza_id": f.emma.ID, "restaurant_id": f.shack.ID,
			})
			assert.Equal(t, http.StatusCreated, w.Code, "price %d", price)
		}
	})

	t.Run("valid request embeds stored pizza and restaurant", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/restaurant_pizzas", map[string]int{
			"price": 5, "pizza_id": f.emma.ID, "restaurant_id": f.shack.ID,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		body := decode[map[string]any](t, w)
		assert.NotZero(t, body["id"])
		assert.Equal(t, float64(5), body["price"])
		assert.Equal(t, float64(f.emma.ID), body["pizza_id"])
		assert.Equal(t, float64(f.shack.ID), body["restaurant_id"])
		assert.Equal(t, map[string]any{"id": float64(f.emma.ID), "name": "Emma", "ingredients": "Dough, Tomato Sauce, Cheese"}, body["pizza"])
		assert.Equal(t, map[string]any{"id": float64(f.shack.ID), "name": "Karen's Pizza Shack", "address": "address1"}, body["restaurant"])
	})

	invalid := []struct {
		name string
		body any
	}{
		{name: "price 0", body: map[string]int{"price": 0, "pizza_id": f.emma.ID, "restaurant_id": f.shack.ID}},
		{name: "price 31", body: map[string]int{"price": 31, "pizza_id": f.emma.ID, "restaurant_id": f.shack.ID}},
		{name: "price 50", body: map[string]int{"price": 50, "pizza_id": f.emma.ID, "restaurant_id": f.shack.ID}},
		{name: "missing price", body: map[string]int{"pizza_id": f.emma.ID, "restaurant_id": f.shack.ID}},
		{name: "unknown pizza", body: map[string]int{"price": 5, "pizza_id": 999, "restaurant_id": f.shack.ID}},
		{name: "unknown restaurant", body: map[string]int{"price": 5, "pizza_id": f.emma.ID, "restaurant_id": 999}},
	}
	for _, tt := range invalid {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			before := dbtest.CountRestaurantPizzas(t, f.db)

			w := f.do(t, http.MethodPost, "/restaurant_pizzas", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"errors": ["validation errors"]}`, w.Body.String())
			assert.Equal(t, before, dbtest.CountRestaurantPizzas(t, f.db))
		})
	}
}

func TestGetRestaurantShapesNestedPizzas(t *testing.T) {
	f := setupFixture(t)
	rp := dbtest.CreateRestaurantPizza(t, f.db, f.shack.ID, f.geri.ID, 12)

	w := f.do(t, http.MethodGet, fmt.Sprintf("/restaurants/%d", f.shack.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[map[string]any](t, w)
	assert.Equal(t, "Karen's Pizza Shack", body["name"])
	items, ok := body["restaurant_pizzas"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)

	item := items[0].(map[string]any)
	assert.Equal(t, float64(rp.ID), item["id"])
	assert.Equal(t, float64(12), item["price"])
	assert.NotContains(t, item, "restaurant")

	pizza := item["pizza"].(map[string]any)
	assert.Equal(t, "Geri", pizza["name"])
	assert.NotContains(t, pizza, "restaurant_pizzas")
	assert.Len(t, pizza, 3)

	t.Run("restaurant without pizzas has an empty list", func(t *testing.T) {
		w := f.do(t, http.MethodGet, fmt.Sprintf("/restaurants/%d", f.kiki.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"restaurant_pizzas":[]`)
	})
}

func TestDeleteRestaurantCascades(t *testing.T) {
	f := setupFixture(t)
	for _, price := range []int{5, 6, 7} {
		dbtest.CreateRestaurantPizza(t, f.db, f.shack.ID, f.emma.ID, price)
	}
	dbtest.CreateRestaurantPizza(t, f.db, f.kiki.ID, f.geri.ID, 9)

	w := f.do(t, http.MethodDelete, fmt.Sprintf("/restaurants/%d", f.shack.ID), nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Zero(t, dbtest.CountRestaurantPizzas(t, f.db, "restaurant_id = ?", f.shack.ID))
	assert.Equal(t, int64(1), dbtest.CountRestaurantPizzas(t, f.db))

	var pizzas int64
	require.NoError(t, f.db.Model(&models.Pizza{}).Count(&pizzas).Error)
	assert.Equal(t, int64(2), pizzas)

	w = f.do(t, http.MethodGet, fmt.Sprintf("/restaurants/%d", f.shack.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDerivedViews(t *testing.T) {
	f := setupFixture(t)
	dbtest.CreateRestaurantPizza(t, f.db, f.shack.ID, f.emma.ID, 5)
	dbtest.CreateRestaurantPizza(t, f.db, f.shack.ID, f.emma.ID, 6)
	dbtest.CreateRestaurantPizza(t, f.db, f.kiki.ID, f.emma.ID, 7)

	w := f.do(t, http.MethodGet, fmt.Sprintf("/restaurants/%d/pizzas", f.shack.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = f.do(t, http.MethodGet, fmt.Sprintf("/pizzas/%d/restaurants", f.emma.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 2)

	w = f.do(t, http.MethodGet, "/pizzas/999/restaurants", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Pizza not found"}`, w.Body.String())
}

func TestAmbientEndpoints(t *testing.T) {
	f := setupFixture(t)

	w := f.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>")

	w = f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	health := decode[map[string]any](t, w)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, ServiceName, health["service"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	f.do(t, http.MethodGet, "/pizzas", nil)
	w = f.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `pizzeria_api_http_requests_total{endpoint="/pizzas",method="GET",status_code="200"} 1`)

	w = f.do(t, http.MethodGet, "/swagger/doc.json", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/restaurant_pizzas")
}

func TestDomainMetricsShareTheRouterRegistry(t *testing.T) {
	f := setupFixture(t)

	f.do(t, http.MethodPost, "/restaurant_pizzas", map[string]int{"price": 5, "pizza_id": f.emma.ID, "restaurant_id": f.shack.ID})
	f.do(t, http.MethodPost, "/restaurant_pizzas", map[string]int{"price": 31, "pizza_id": f.emma.ID, "restaurant_id": f.shack.ID})
	f.do(t, http.MethodDelete, fmt.Sprintf("/restaurants/%d", f.shack.ID), nil)

	w := f.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "pizzeria_api_restaurant_pizzas_created_total 1")
	assert.Contains(t, body, "pizzeria_api_validation_failures_total 1")
	assert.Contains(t, body, "pizzeria_api_restaurants_deleted_total 1")
	assert.Contains(t, body, "pizzeria_api_restaurant_pizzas_cascaded_total 1")

	count, err := testutil.GatherAndCount(f.metrics.Registry(), "pizzeria_api_http_requests_total")
	require.NoError(t, err)
	// two POSTs, the DELETE and the scrape itself
	assert.Equal(t, 4, count)
}
