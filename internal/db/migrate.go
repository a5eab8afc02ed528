package db

import (
	"log"

	"meeting-summaries-backend/internal/directory"
	"meeting-summaries-backend/internal/store"
)

// Migrate runs database migrations
func Migrate() {
	err := AppDb.AutoMigrate(
		&store.WorkPackageRecord{},
		&store.PhaseRecord{},
		&store.DesignStageRecord{},
		&store.ElementRecord{},
		&store.SubDisciplineRecord{},
		&store.DocumentStatusRecord{},
		&store.CompanyRecord{},
		&store.MeetingSummaryRecord{},
		&store.LabelingPathRecord{},
		&directory.Contact{},
	)

	if err != nil {
		log.Fatal(err)
	}

	log.Println("Database schema migrated successfully")
}

// SeedData seeds the vocabulary lists with initial data (for development
// only). The "NR" sentinel rows are mandatory: catalog loading refuses a
// vocabulary set without them.
func SeedData() {
	seedWorkPackages()
	seedPhases()
	seedDesignStages()
	seedSentinels()
	seedDocumentStatuses()
}

func seedWorkPackages() {
	titles := []string{
		"Wp1", "Wp2", "Wp2.1", "Wp3", "Wp4", "Wp4.1", "Wp5", "Wp6", "Wp7",
		"Infra 2", "Alignment", "General",
	}
	for _, title := range titles {
		record := store.WorkPackageRecord{Title: title}
		err := AppDb.Where(store.WorkPackageRecord{Title: title}).FirstOrCreate(&record).Error
		if err != nil {
			log.Printf("Error seeding work package %q: %v", title, err)
		}
	}
}

func seedPhases() {
	phases := []store.PhaseRecord{
		{Title: "Tender", WPType: "ALL-WP"},
		{Title: "Design", WPType: "ALL-WP"},
		{Title: "Construction", WPType: "ALL-WP"},
		{Title: "General", WPType: "General"},
	}
	for _, phase := range phases {
		record := phase
		err := AppDb.Where(store.PhaseRecord{Title: phase.Title}).FirstOrCreate(&record).Error
		if err != nil {
			log.Printf("Error seeding phase %q: %v", phase.Title, err)
		}
	}
}

func seedDesignStages() {
	stages := []store.DesignStageRecord{
		{Title: "Preliminary Design", WPType: "ALL-WP", Phases: "Tender;Design"},
		{Title: "Detailed Design", WPType: "ALL-WP", Phases: "Design"},
		{Title: "Shop Drawings", WPType: "ALL-WP", Phases: "Construction"},
		{Title: "As Made", WPType: "ALL-WP", Phases: "Construction"},
		{Title: "General", WPType: "General", Phases: "General"},
	}
	for _, stage := range stages {
		record := stage
		err := AppDb.Where(store.DesignStageRecord{Title: stage.Title}).FirstOrCreate(&record).Error
		if err != nil {
			log.Printf("Error seeding design stage %q: %v", stage.Title, err)
		}
	}
}

func seedSentinels() {
	element := store.ElementRecord{Title: "NR", ElementNameAndCode: "NR"}
	err := AppDb.Where(store.ElementRecord{Title: "NR"}).FirstOrCreate(&element).Error
	if err != nil {
		log.Printf("Error seeding element sentinel: %v", err)
	}

	subDiscipline := store.SubDisciplineRecord{Title: "NR", SubDiscipline: "NR"}
	err = AppDb.Where(store.SubDisciplineRecord{Title: "NR"}).FirstOrCreate(&subDiscipline).Error
	if err != nil {
		log.Printf("Error seeding sub-discipline sentinel: %v", err)
	}
}

func seedDocumentStatuses() {
	titles := []string{"Draft", "For Approval", "Approved", "Superseded"}
	for _, title := range titles {
		record := store.DocumentStatusRecord{Title: title}
		err := AppDb.Where(store.DocumentStatusRecord{Title: title}).FirstOrCreate(&record).Error
		if err != nil {
			log.Printf("Error seeding document status %q: %v", title, err)
		}
	}
}
