package main

import (
	"coursehub/config"
	"coursehub/database"
	courseModels "coursehub/models/course"
	"encoding/csv"
	"log"
	"os"
	"strings"
)

// Seeds the subjects table from subjects.csv (title,slug per row).
// Existing slugs are skipped so the script can be re-run safely.
func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	// Open CSV file
	file, err := os.Open("subjects.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Create CSV reader
	reader := csv.NewReader(file)

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	inserted := 0
	skipped := 0

	// Skip header row
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}

		title := strings.TrimSpace(record[0])
		slug := strings.TrimSpace(record[1])
		if title == "" || slug == "" {
			continue
		}

		var existing courseModels.Subject
		if err := database.Database.Db.Where("slug = ?", slug).First(&existing).Error; err == nil {
			skipped++
			continue
		}

		subject := courseModels.Subject{
			Title: title,
			Slug:  slug,
		}
		if err := database.Database.Db.Create(&subject).Error; err != nil {
			log.Printf("Failed to insert subject %s: %v", slug, err)
			continue
		}
		inserted++
	}

	log.Printf("Subjects seeded: %d inserted, %d skipped", inserted, skipped)
}
