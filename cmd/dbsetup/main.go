package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/repbase/workout-tracker/internal/db"

	log "github.com/sirupsen/logrus"
)

// one-shot tool, creates the workout tracking schema in a fresh database
func main() {
	host := flag.String("host", "localhost", "postgres host")
	port := flag.String("port", "5432", "postgres port")
	dbName := flag.String("dbname", "workout_tracker", "postgres database name")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         *host,
		DBPort:         *port,
		DBName:         *dbName,
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer pool.Close()

	if err := db.Setup(ctx, pool); err != nil {
		log.Fatalf("setup schema: %s", err)
	}

	fmt.Printf("workout tracking schema created in [%s]\n", *dbName)
}
