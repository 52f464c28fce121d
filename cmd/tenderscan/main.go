package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tenderscan/tenderscan/internal/pagetext"
	"github.com/tenderscan/tenderscan/pkg/tenderscan"
	"github.com/tenderscan/tenderscan/pkg/tenderscan/catalog"
	"github.com/tenderscan/tenderscan/pkg/tenderscan/catalog/sqlite"
	"github.com/tenderscan/tenderscan/pkg/tenderscan/score"
)

func main() {
	var (
		input       = flag.String("input", "", "Tender document to analyze, .txt with form-feed page breaks or .html (required)")
		catalogPath = flag.String("catalog", "", "Catalog YAML file")
		dbPath      = flag.String("db", "", "Catalog SQLite database (alternative to -catalog)")
		minScore    = flag.Int("min-score", 0, "Hide positions below this relevance")
		showAll     = flag.Bool("all", false, "Show all positions regardless of -min-score")
		asJSON      = flag.Bool("json", false, "Print the full result as JSON")
		quiet       = flag.Bool("quiet", false, "Suppress per-page progress output")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}
	if *catalogPath == "" && *dbPath == "" {
		log.Fatal("--catalog or --db required")
	}

	ctx := context.Background()

	doc, err := loadDocument(*input)
	if err != nil {
		log.Fatalf("load document: %v", err)
	}

	source, closeSource, err := openCatalog(ctx, *catalogPath, *dbPath)
	if err != nil {
		log.Fatalf("open catalog: %v", err)
	}
	defer closeSource()

	var progress func(tenderscan.Progress)
	if !*quiet {
		progress = func(p tenderscan.Progress) {
			fmt.Fprintf(os.Stderr, "\rpage %d/%d", p.Current, p.Total)
			if p.Current == p.Total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}

	analyzer := tenderscan.New(tenderscan.Options{
		Catalog:  source,
		Progress: progress,
	})

	result, err := analyzer.Analyze(ctx, doc, filepath.Base(*input))
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}

	shown := score.Filter(result.Positions, *minScore, *showAll)

	if *asJSON {
		filtered := *result
		filtered.Positions = shown
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(filtered); err != nil {
			log.Fatalf("encode result: %v", err)
		}
		return
	}

	for _, line := range result.Overview {
		fmt.Println(line)
	}
	fmt.Println()
	for _, pos := range shown {
		fmt.Printf("%-10s %3d  %s %s  %s\n",
			pos.PositionNumber, pos.Relevance, pos.Quantity, pos.Unit, pos.ShortText)
		if pos.MatchedManagerName != "" {
			fmt.Printf("           -> %s (%s)\n",
				pos.MatchedManagerName, strings.Join(pos.MatchedKeywords, ", "))
		}
	}
}

func loadDocument(path string) (*pagetext.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return pagetext.LoadHTML(path)
	default:
		return pagetext.LoadPlainText(path)
	}
}

func openCatalog(ctx context.Context, yamlPath, dbPath string) (catalog.Source, func(), error) {
	if dbPath != "" {
		st, err := sqlite.Open(ctx, dbPath)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { st.Close() }, nil
	}
	managers, err := catalog.LoadCatalog(yamlPath)
	if err != nil {
		return nil, nil, err
	}
	return staticCatalog(managers), func() {}, nil
}

// staticCatalog serves a fixed manager list as a catalog source.
type staticCatalog []catalog.Manager

func (c staticCatalog) List(ctx context.Context) ([]catalog.Manager, error) {
	return c, nil
}
