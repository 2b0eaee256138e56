// Command importcatalog loads catalog products from an Excel workbook.
// The first sheet must have a header row followed by rows of
// SKU, Name, Category, Base Cost, Description.
// Usage: go run ./cmd/importcatalog [-dry-run] [-sheet NAME] catalog.xlsx
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"rfpflow/internal/config"
	"rfpflow/internal/domain"
	"rfpflow/internal/repository/sqldb"
)

// Column positions in the workbook.
const (
	colSKU = iota
	colName
	colCategory
	colBaseCost
	colDescription
)

type rowError struct {
	row int
	err error
}

func (e rowError) Error() string { return fmt.Sprintf("row %d: %v", e.row, e.err) }

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dryRun := flag.Bool("dry-run", false, "parse the workbook without writing to the database")
	sheet := flag.String("sheet", "", "sheet name (default: first sheet)")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Println("Usage: importcatalog [-dry-run] [-sheet NAME] catalog.xlsx")
		os.Exit(1)
	}

	f, err := excelize.OpenFile(flag.Arg(0))
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	name := *sheet
	if name == "" {
		name = f.GetSheetName(0)
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", name, err)
	}

	products, rowErrs := parseRows(rows)
	for _, e := range rowErrs {
		log.Printf("importcatalog: skipping %v", e)
	}
	log.Printf("importcatalog: %d products parsed from %s", len(products), name)
	if *dryRun {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := sqldb.MigrateUp(&cfg.DB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	db, err := sqldb.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	repo := sqldb.NewCatalogRepo(db)
	ctx := context.Background()
	inserted, duplicates := 0, 0
	for i := range products {
		err := repo.Create(ctx, &products[i])
		switch {
		case errors.Is(err, domain.ErrDuplicateSKU):
			duplicates++
			log.Printf("importcatalog: %s already exists, left unchanged", products[i].SKU)
		case err != nil:
			return fmt.Errorf("insert %s: %w", products[i].SKU, err)
		default:
			inserted++
		}
	}

	log.Printf("importcatalog: inserted %d, duplicates %d, invalid %d", inserted, duplicates, len(rowErrs))
	return nil
}

// parseRows converts sheet rows into products. The first row is the header.
// Blank rows are ignored; malformed rows are reported and skipped.
func parseRows(rows [][]string) ([]domain.Product, []rowError) {
	var products []domain.Product
	var errs []rowError
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}

		p := domain.Product{
			SKU:         strings.TrimSpace(cellVal(row, colSKU)),
			Name:        strings.TrimSpace(cellVal(row, colName)),
			Category:    strings.TrimSpace(cellVal(row, colCategory)),
			Description: strings.TrimSpace(cellVal(row, colDescription)),
		}
		if p.SKU == "" || p.Name == "" || p.Category == "" {
			errs = append(errs, rowError{row: i + 1, err: domain.ErrInvalidProduct})
			continue
		}
		cost, err := parseCost(cellVal(row, colBaseCost))
		if err != nil {
			errs = append(errs, rowError{row: i + 1, err: err})
			continue
		}
		p.BaseCost = cost
		products = append(products, p)
	}
	return products, errs
}

// parseCost accepts plain or formatted amounts such as "₹1,25,000.50".
func parseCost(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "₹$€£ ")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("missing base cost")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid base cost %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative base cost %v", v)
	}
	return v, nil
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
