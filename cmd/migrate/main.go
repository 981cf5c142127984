package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/emretit/paftamobile-sub005/internal/config"
	"github.com/emretit/paftamobile-sub005/internal/logger"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	dir := flag.String("dir", "migrations", "Directory containing .up.sql migration files")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		logg.Fatalf("Failed to read migration directory %s: %v", *dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, filepath.Join(*dir, e.Name()))
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		logg.Fatalf("No migration files found in %s", *dir)
	}

	if *dryRun {
		for _, f := range files {
			sql, err := os.ReadFile(f)
			if err != nil {
				logg.Fatalf("Failed to read %s: %v", f, err)
			}
			fmt.Printf("-- %s\n%s\n", f, sql)
		}
		return
	}

	db, err := sqlx.Open("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		logg.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer db.Close()

	for _, f := range files {
		sql, err := os.ReadFile(f)
		if err != nil {
			logg.Fatalf("Failed to read %s: %v", f, err)
		}
		logg.Infow("applying migration", "file", f)
		if _, err := db.Exec(string(sql)); err != nil {
			logg.Fatalf("Migration %s failed: %v", f, err)
		}
	}

	logg.Infow("migrations applied", "count", len(files))
}
