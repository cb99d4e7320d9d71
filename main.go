package main

import (
	"context"
	"log"

	censusapi "acsward/adapters/census"
	"acsward/adapters/sink"
	"acsward/app"
	"acsward/domain/census"
	"acsward/internal/config"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase opens the optional Postgres connection for the load sink.
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client := censusapi.NewClient(censusapi.ClientConfig{
		BaseURL: appConfig.Census.BaseURL,
		Timeout: appConfig.Census.Timeout,
	})

	csvSink := sink.NewCSVSink(appConfig.Output.BaseDir, appConfig.Output.Filename)
	sinks := []app.Sink{csvSink}

	if appConfig.Output.ExcelFile != "" {
		sinks = append(sinks, sink.NewExcelSink(appConfig.Output.ExcelFile))
	}

	if appConfig.Database.URL != "" {
		db, err := initDatabase(appConfig)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		sinks = append(sinks, sink.NewPostgresSink(db))
	}

	query := census.Query{
		Year:      appConfig.Census.Year,
		Dataset:   appConfig.Census.Dataset,
		Variables: census.UnderFiveVariables(),
		Geography: census.Geography{
			ForClause: census.UpperChamberDistricts,
			StateFIPS: appConfig.Census.StateFIPS,
		},
	}

	pipeline := app.NewPipelineService(client, sinks...)
	report, err := pipeline.Run(context.Background(), query)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	log.Printf("Wrote %s (%d districts, run %s)", csvSink.Path(), report.Summary.Districts, report.RunID)
}
