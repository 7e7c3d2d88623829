// Command validate runs an offline data-quality report over an IRVE CSV. It
// executes the real cleaning pipeline, then verifies the invariants the
// dashboard depends on: lowercase headers, first-wins deduplication,
// coordinate completeness, the projection allow-list, and power-category
// consistency. Optionally writes the clean table to an xlsx workbook.
//
// Usage:
//
//	go run ./cmd/validate -input data/irve.csv [-export clean.xlsx]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/jonboulle/clockwork"

	"github.com/ArmandColonnaW/irve-insights/internal/chart"
	"github.com/ArmandColonnaW/irve-insights/internal/domain"
	"github.com/ArmandColonnaW/irve-insights/internal/export"
	"github.com/ArmandColonnaW/irve-insights/internal/loader"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	input := flag.String("input", "", "path or URL of the IRVE CSV to validate")
	exportPath := flag.String("export", "", "optional xlsx output path for the clean table")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*input, *exportPath); code != 0 {
		os.Exit(code)
	}
}

func run(input, exportPath string) int {
	// Freeze the clock so repeated runs produce identical reports.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	fmt.Println("=== IRVE Dataset Validation ===")
	fmt.Println()

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	raw, err := loader.New(60*time.Second, quiet).Load(context.Background(), input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load dataset: %v\n", err)
		return 1
	}
	fmt.Printf("loaded %d rows, %d columns\n", raw.Nrow(), raw.Ncol())

	clean, report := domain.Clean(raw)
	if clean.Err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: clean dataset: %v\n", clean.Err)
		return 1
	}
	fmt.Printf("clean table: %d rows (dropped %d duplicates, %d without coordinates)\n",
		report.RowsOut, report.DuplicatesDropped, report.CoordinateDrops)
	fmt.Printf("missing cells: %.1f%% -> %.1f%%\n",
		report.MissingShareBefore*100, report.MissingShareAfter*100)

	phases := []*phase{
		validateHeaders(clean),
		validateProjection(clean),
		validateCoordinates(raw, clean),
		validateIdempotence(clean),
		validateCategories(clean),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = "FAIL"
			allPassed = false
		}
		fmt.Printf("[%s] %s\n", status, p.name)
		for _, e := range p.errors {
			fmt.Printf("       - %s\n", e)
		}
	}

	if exportPath != "" {
		if err := writeExport(clean, exportPath); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: export: %v\n", err)
			return 1
		}
		fmt.Printf("\nwrote clean table to %s\n", exportPath)
	}

	if !allPassed {
		return 2
	}
	fmt.Println("\nall checks passed")
	return 0
}

func validateHeaders(clean dataframe.DataFrame) *phase {
	p := &phase{name: "headers are normalized"}
	for _, name := range clean.Names() {
		if name != strings.ToLower(strings.TrimSpace(name)) {
			p.errorf("column %q is not lowercase/trimmed", name)
		}
	}
	return p
}

func validateProjection(clean dataframe.DataFrame) *phase {
	p := &phase{name: "projection respects the allow-list"}
	allowed := make(map[string]bool)
	for _, c := range domain.KeepColumns() {
		allowed[c] = true
	}
	for _, name := range clean.Names() {
		if !allowed[name] {
			p.errorf("unexpected column %q survived projection", name)
		}
	}
	return p
}

func validateCoordinates(raw, clean dataframe.DataFrame) *phase {
	p := &phase{name: "retained rows have coordinates"}

	rawNames := make(map[string]bool)
	for _, n := range raw.Names() {
		rawNames[strings.ToLower(strings.TrimSpace(n))] = true
	}
	if !rawNames[domain.ColLatitude] || !rawNames[domain.ColLongitude] {
		// Without both source columns the filter is skipped by contract.
		return p
	}

	lat := clean.Col(domain.ColLatitude)
	lon := clean.Col(domain.ColLongitude)
	for i := 0; i < clean.Nrow(); i++ {
		if lat.Elem(i).IsNA() || lon.Elem(i).IsNA() {
			p.errorf("row %d has an undefined coordinate", i)
		}
	}
	return p
}

func validateIdempotence(clean dataframe.DataFrame) *phase {
	p := &phase{name: "cleaning an already-clean table is a no-op on rows"}
	again, _ := domain.Clean(clean)
	if again.Err != nil {
		p.errorf("second clean failed: %v", again.Err)
		return p
	}
	if again.Nrow() != clean.Nrow() {
		p.errorf("row count changed from %d to %d", clean.Nrow(), again.Nrow())
	}
	return p
}

func validateCategories(clean dataframe.DataFrame) *phase {
	p := &phase{name: "power categories are consistent"}
	names := clean.Names()
	if !containsName(names, domain.ColCategory) || !containsName(names, domain.ColPower) {
		return p
	}

	spec, err := chart.PowerMix(clean)
	if err != nil {
		p.errorf("power mix: %v", err)
		return p
	}
	if len(spec.Bars) != 4 {
		p.errorf("expected 4 categories, got %d", len(spec.Bars))
	}

	total := 0
	for _, b := range spec.Bars {
		total += b.Count
	}
	defined := 0
	col := clean.Col(domain.ColCategory)
	for i := 0; i < col.Len(); i++ {
		el := col.Elem(i)
		if !el.IsNA() && el.String() != "" {
			defined++
		}
	}
	if total != defined {
		p.errorf("category counts sum to %d, but %d rows have a category", total, defined)
	}
	return p
}

func writeExport(clean dataframe.DataFrame, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return export.WriteXLSX(clean, f)
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
