package services

import (
	"context"
	"testing"

	"github.com/franciscosanchezn/pizza-restaurants-api/internal/database/dbtest"
	"github.com/franciscosanchezn/pizza-restaurants-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPizzaService(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	service := NewPizzaService(db)

	t.Run("empty table yields no pizzas", func(t *testing.T) {
		pizzas, err := service.GetAllPizzas(ctx)
		require.NoError(t, err)
		assert.Empty(t, pizzas)
	})

	shack := dbtest.CreateRestaurant(t, db, "Karen's Pizza Shack", "address1")
	sanjay := dbtest.CreateRestaurant(t, db, "Sanjay's Pizza", "address2")
	emma := dbtest.CreatePizza(t, db, "Emma", "Dough, Tomato Sauce, Cheese")
	melanie := dbtest.CreatePizza(t, db, "Melanie", "Dough, Sauce, Ricotta, Red peppers, Mustard")
	dbtest.CreateRestaurantPizza(t, db, shack.ID, emma.ID, 10)
	dbtest.CreateRestaurantPizza(t, db, sanjay.ID, emma.ID, 9)
	dbtest.CreateRestaurantPizza(t, db, sanjay.ID, emma.ID, 8)

	t.Run("lists all pizzas", func(t *testing.T) {
		pizzas, err := service.GetAllPizzas(ctx)
		require.NoError(t, err)
		require.Len(t, pizzas, 2)
		assert.Equal(t, "Emma", pizzas[0].Name)
		assert.Equal(t, "Dough, Sauce, Ricotta, Red peppers, Mustard", pizzas[1].Ingredients)
	})

	t.Run("derived restaurants view is distinct", func(t *testing.T) {
		restaurants, err := service.GetPizzaRestaurants(ctx, emma.ID)
		require.NoError(t, err)
		require.Len(t, restaurants, 2)
		assert.Equal(t, shack.ID, restaurants[0].ID)
		assert.Equal(t, sanjay.ID, restaurants[1].ID)

		restaurants, err = service.GetPizzaRestaurants(ctx, melanie.ID)
		require.NoError(t, err)
		assert.Empty(t, restaurants)

		_, err = service.GetPizzaRestaurants(ctx, 999)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
