package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/tenderscan/tenderscan/pkg/tenderscan/catalog"
	"github.com/tenderscan/tenderscan/pkg/tenderscan/catalog/sqlite"
)

func main() {
	var (
		dbPath     = flag.String("db", "", "Catalog SQLite database (required)")
		importPath = flag.String("import", "", "Replace the catalog with entries from this JSON file")
		exportPath = flag.String("export", "", "Write the catalog to this JSON file")
		seedPath   = flag.String("seed", "", "Load entries from this YAML file, keeping existing ones")
		list       = flag.Bool("list", false, "Print the catalog")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}

	ctx := context.Background()

	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open catalog db: %v", err)
	}
	defer st.Close()

	if *importPath != "" {
		f, err := os.Open(*importPath)
		if err != nil {
			log.Fatalf("open import file: %v", err)
		}
		managers, err := catalog.ImportJSON(f)
		f.Close()
		if err != nil {
			log.Fatalf("import: %v", err)
		}
		if err := st.ReplaceAll(ctx, managers); err != nil {
			log.Fatalf("replace catalog: %v", err)
		}
		fmt.Printf("imported %d entries\n", len(managers))
	}

	if *seedPath != "" {
		managers, err := catalog.LoadCatalog(*seedPath)
		if err != nil {
			log.Fatalf("load seed: %v", err)
		}
		for _, m := range managers {
			if err := st.Upsert(ctx, m); err != nil {
				log.Fatalf("upsert %s: %v", m.ID, err)
			}
		}
		fmt.Printf("seeded %d entries\n", len(managers))
	}

	if *exportPath != "" {
		managers, err := st.List(ctx)
		if err != nil {
			log.Fatalf("list catalog: %v", err)
		}
		f, err := os.Create(*exportPath)
		if err != nil {
			log.Fatalf("create export file: %v", err)
		}
		if err := catalog.ExportJSON(f, managers); err != nil {
			f.Close()
			log.Fatalf("export: %v", err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("close export file: %v", err)
		}
		fmt.Printf("exported %d entries\n", len(managers))
	}

	if *list {
		managers, err := st.List(ctx)
		if err != nil {
			log.Fatalf("list catalog: %v", err)
		}
		for _, m := range managers {
			state := "active"
			if !m.Active {
				state = "inactive"
			}
			fmt.Printf("%-30s %-24s %-8s synonyms: %s\n",
				m.ID, m.Name, state, strings.Join(m.Synonyms, ", "))
		}
	}
}
