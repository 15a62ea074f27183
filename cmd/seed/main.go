package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/tabletap/tabletap-backend/config"
	"github.com/tabletap/tabletap-backend/internal/app/model"
	"github.com/tabletap/tabletap-backend/internal/app/repository"
	"github.com/tabletap/tabletap-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports a menu workbook into an existing store. Each row is one menu
// item: category | name | description | price | image_url. Categories
// are created on first sight, in the order they appear.
func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path> <store_id>")
	}

	filePath := os.Args[1]
	storeID, err := strconv.ParseUint(os.Args[2], 10, 32)
	if err != nil || storeID == 0 {
		log.Fatal("store_id must be a positive integer")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	storeRepo := repository.NewStoreRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	menuRepo := repository.NewMenuRepository(db.GetDB())

	store, err := storeRepo.FindByID(uint(storeID))
	if err != nil {
		log.Fatal("Store not found:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	rows, err := readMenuRows(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Importing %d rows into store %q (id=%d)\n", len(rows), store.Name, store.ID)
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	categories := make(map[string]*model.Category)
	imported := 0
	skipped := 0

	for _, row := range rows {
		category, ok := categories[row.category]
		if !ok {
			category = &model.Category{
				StoreID:   store.ID,
				Name:      row.category,
				SortOrder: len(categories),
				IsActive:  true,
			}
			if err := categoryRepo.Create(category); err != nil {
				log.Fatal("Failed to create category:", err)
			}
			categories[row.category] = category
		}

		item := &model.MenuItem{
			StoreID:     store.ID,
			CategoryID:  category.ID,
			Name:        row.name,
			Description: row.description,
			BasePrice:   row.price,
			ImageURL:    row.imageURL,
			IsAvailable: true,
			SortOrder:   imported,
		}
		if err := menuRepo.Create(item); err != nil {
			fmt.Printf("Skipping %q: %v\n", row.name, err)
			skipped++
			continue
		}
		imported++
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Categories created: %d, items imported: %d, skipped: %d\n", len(categories), imported, skipped)
}

type menuRow struct {
	category    string
	name        string
	description string
	price       int64
	imageURL    string
}

func readMenuRows(filePath string) ([]menuRow, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var result []menuRow
	for i, row := range rows {
		// Header row
		if i == 0 {
			continue
		}
		if len(row) < 4 {
			continue
		}

		category := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		description := strings.TrimSpace(row[2])
		priceStr := strings.TrimSpace(row[3])

		if category == "" || name == "" || priceStr == "" {
			continue
		}

		price, err := strconv.ParseInt(priceStr, 10, 64)
		if err != nil || price < 0 {
			continue
		}

		imageURL := ""
		if len(row) > 4 {
			imageURL = strings.TrimSpace(row[4])
		}

		result = append(result, menuRow{
			category:    category,
			name:        name,
			description: description,
			price:       price,
			imageURL:    imageURL,
		})
	}

	return result, nil
}
