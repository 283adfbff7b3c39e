// internal/storage/seed.go
package storage

import (
	"calee/internal/models"
)

// SeedCatalog is the built-in food catalog loaded into an empty database.
// Values are per serving as listed.
var SeedCatalog = []models.Food{
	{Name: "White rice (cooked)", ServingSize: 150, ServingUnit: "g", CaloriesPerServing: 195, Carbohydrates: 43, Protein: 4, Fat: 0.4, Fiber: 0.6, Category: models.CategoryMain},
	{Name: "Whole wheat bread", ServingSize: 1, ServingUnit: "slice", CaloriesPerServing: 80, Carbohydrates: 14, Protein: 4, Fat: 1, Fiber: 2, Sugar: 1.4, Category: models.CategoryMain},
	{Name: "Spaghetti (cooked)", ServingSize: 140, ServingUnit: "g", CaloriesPerServing: 221, Carbohydrates: 43, Protein: 8, Fat: 1.3, Fiber: 2.5, Sugar: 0.8, Category: models.CategoryMain},
	{Name: "Grilled chicken breast", ServingSize: 100, ServingUnit: "g", CaloriesPerServing: 165, Protein: 31, Fat: 3.6, Category: models.CategoryMain},
	{Name: "Boiled egg", ServingSize: 1, ServingUnit: "piece", CaloriesPerServing: 78, Carbohydrates: 0.6, Protein: 6.3, Fat: 5.3, Sugar: 0.6, Category: models.CategorySide},
	{Name: "Tofu", ServingSize: 100, ServingUnit: "g", CaloriesPerServing: 76, Carbohydrates: 1.9, Protein: 8, Fat: 4.8, Fiber: 0.3, Category: models.CategorySide},
	{Name: "Green salad", ServingSize: 100, ServingUnit: "g", CaloriesPerServing: 20, Carbohydrates: 3.5, Protein: 1.5, Fat: 0.2, Fiber: 2, Sugar: 1.5, Category: models.CategoryVegetable},
	{Name: "Broccoli (steamed)", ServingSize: 100, ServingUnit: "g", CaloriesPerServing: 35, Carbohydrates: 7, Protein: 2.4, Fat: 0.4, Fiber: 3.3, Sugar: 1.4, Category: models.CategoryVegetable},
	{Name: "Apple", ServingSize: 1, ServingUnit: "medium", CaloriesPerServing: 95, Carbohydrates: 25, Protein: 0.5, Fat: 0.3, Fiber: 4.4, Sugar: 19, Category: models.CategoryFruit},
	{Name: "Banana", ServingSize: 1, ServingUnit: "medium", CaloriesPerServing: 105, Carbohydrates: 27, Protein: 1.3, Fat: 0.4, Fiber: 3.1, Sugar: 14, Category: models.CategoryFruit},
	{Name: "Milk", ServingSize: 250, ServingUnit: "ml", CaloriesPerServing: 122, Carbohydrates: 12, Protein: 8, Fat: 4.8, Sugar: 12, Category: models.CategoryDrink},
	{Name: "Orange juice", ServingSize: 250, ServingUnit: "ml", CaloriesPerServing: 112, Carbohydrates: 26, Protein: 1.7, Fat: 0.5, Fiber: 0.5, Sugar: 21, Category: models.CategoryDrink},
	{Name: "Black coffee", ServingSize: 240, ServingUnit: "ml", CaloriesPerServing: 2, Category: models.CategoryDrink},
	{Name: "Potato chips", ServingSize: 28, ServingUnit: "g", CaloriesPerServing: 152, Carbohydrates: 15, Protein: 2, Fat: 10, Fiber: 1.2, Sugar: 0.1, Category: models.CategorySnack},
	{Name: "Dark chocolate", ServingSize: 20, ServingUnit: "g", CaloriesPerServing: 120, Carbohydrates: 9, Protein: 1.6, Fat: 8.5, Fiber: 2.2, Sugar: 4.8, Category: models.CategorySnack},
}
