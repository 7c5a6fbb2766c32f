package database

import (
	"fmt"
	"log"
	"time"

	"api/config"
	"api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection and migrates the models and populates the database with default values if needed
func InitDB() {
    dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable TimeZone=Europe/Paris", config.PostgresHost, config.PostgresPort, config.PostgresUser, config.PostgresDB, config.PostgresPassword)

    var err error
    DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
    if err != nil {
        log.Fatal("failed to connect database: ", err)
    }

    if err := Migrate(DB); err != nil {
        log.Fatal("failed to migrate database: ", err)
    }

    Populate()
}

// Migrate runs the schema migration for all models
func Migrate(db *gorm.DB) error {
    return db.AutoMigrate(
        &models.Experiment{},
        &models.Condition{},
        &models.Puzzle{},
        &models.Advice{},
        &models.PlayerSession{},
        &models.SessionExperimentOrder{},
        &models.PlayerResponse{},
        &models.MoveRecord{},
    )
}

// Populate creates a demo experiment with three conditions when SEED_DEMO is
// set and the database holds no experiment yet
func Populate() {
    if config.SeedDemo != "true" {
        return
    }

    var countExperiment int64
    DB.Model(&models.Experiment{}).Count(&countExperiment)
    if countExperiment > 0 {
        return
    }

    experiment := models.Experiment{
        Name:             "Demo experiment",
        Description:      "Three-condition demo with advice reliability levels",
        AdviceFormat:     "text",
        TimerEnabled:     true,
        TimeLimitSeconds: 60,
    }
    if err := DB.Create(&experiment).Error; err != nil {
        log.Println("Error while creating demo experiment: ", err)
        return
    }

    reliabilities := []string{models.ReliabilityHigh, models.ReliabilityModerate, models.ReliabilityPoor}
    for i, reliability := range reliabilities {
        condition := models.Condition{
            ExperimentID: experiment.ID,
            Name:         fmt.Sprintf("Set %d", i+1),
            Order:        i + 1,
        }
        if err := DB.Create(&condition).Error; err != nil {
            log.Println("Error while creating demo condition: ", err)
            continue
        }

        confidence := 90 - 30*i
        puzzle := models.Puzzle{
            ConditionID: condition.ID,
            FEN:         "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
            CorrectMove: "e2e4",
            Order:       1,
        }
        if err := DB.Create(&puzzle).Error; err != nil {
            log.Println("Error while creating demo puzzle: ", err)
            continue
        }

        advice := models.Advice{
            PuzzleID:    puzzle.ID,
            Text:        "e2e4",
            Confidence:  &confidence,
            Reliability: reliability,
        }
        if err := DB.Create(&advice).Error; err != nil {
            log.Println("Error while creating demo advice: ", err)
        }
    }

    log.Println("Demo experiment created at ", time.Now().Format(time.RFC3339))
}
