package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/franciscosanchezn/pizza-restaurants-api/internal/config"
	"github.com/franciscosanchezn/pizza-restaurants-api/internal/database"
	"github.com/franciscosanchezn/pizza-restaurants-api/internal/models"
	"gorm.io/gorm"
)

func main() {
	// Parse command line flags
	dbURI := flag.String("db", config.GetEnvWithDefault("DB_URI", config.DefaultDatabaseURI), "Database URI")
	reset := flag.Bool("reset", config.GetEnvAsType("SEED_RESET", false), "Remove existing rows before seeding")
	flag.Parse()

	dbConfig, err := database.ParseDatabaseURI(*dbURI)
	if err != nil {
		log.Fatal("Invalid database URI:", err)
	}

	db, err := database.InitDatabase(dbConfig)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	if *reset {
		if err := database.ResetDatabase(db); err != nil {
			log.Fatal("Failed to reset database:", err)
		}
		fmt.Println("Existing data removed")
	}

	seeded, err := database.SeedDatabase(db)
	if err != nil {
		log.Fatal("Failed to seed database:", err)
	}
	if !seeded {
		fmt.Println("Database already has data, nothing seeded. Use -reset to start over.")
	} else {
		fmt.Println("✓ Sample data created!")
	}

	printSummary(db)
	fmt.Println("\nTry it out:")
	fmt.Printf("curl http://localhost:%d/restaurants\n", config.DefaultPort)
	fmt.Printf("curl -X POST http://localhost:%d/restaurant_pizzas \\\n", config.DefaultPort)
	fmt.Printf("  -H 'Content-Type: application/json' \\\n")
	fmt.Printf("  -d '{\"price\": 5, \"pizza_id\": 1, \"restaurant_id\": 3}'\n")
}

// printSummary prints the row count of each table
func printSummary(db *gorm.DB) {
	tables := []struct {
		name  string
		model any
	}{
		{"restaurants", &models.Restaurant{}},
		{"pizzas", &models.Pizza{}},
		{"restaurant_pizzas", &models.RestaurantPizza{}},
	}
	for _, table := range tables {
		var count int64
		if err := db.Model(table.model).Count(&count).Error; err != nil {
			log.Printf("Failed to count %s: %v", table.name, err)
			continue
		}
		fmt.Printf("%s: %d\n", table.name, count)
	}
}
