package models

// Pizza represents a pizza that restaurants can put on their menu
type Pizza struct {
	ID          int    `json:"id" gorm:"primaryKey"`
	Name        string `json:"name"`
	Ingredients string `json:"ingredients"`
}

func (Pizza) TableName() string {
	return "pizzas"
}
