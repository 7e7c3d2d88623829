// Command genmock generates a synthetic consolidated-IRVE CSV for fixtures
// and local development. The output deliberately carries the blemishes the
// cleaning pipeline exists for: mixed-case headers, textual power values,
// duplicate identifiers, missing coordinates, and unparsable dates.
//
// Usage:
//
//	go run ./cmd/genmock -out data/irve_mock.csv -rows 500 -seed 42
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
)

var operators = []string{
	"TOTALENERGIES", "Total energies", "IONITY", "Izivia", "ELECTRA",
	"Allego", "TESLA", "Freshmile", "Power Dot France", "Bump",
}

var installers = []string{
	"TotalEnergies Charging Services", "IONITY GMBH", "COMMUNAUTE D'AGGLOMERATION",
	"SDE 18", "Electra", "", "Syndicat Départemental d'Énergie",
}

var communes = []string{
	"Paris", "LYON", "Marseille", "Bordeaux", "LILLE", "Nantes",
	"Strasbourg", "toulouse", "Dijon", "Brive-la-Gaillarde",
}

// powers mixes clean numerics, textual variants, out-of-range values, and
// blanks, roughly matching the noise observed in the real dataset.
var powers = []string{
	"3.7", "7.4", "11", "22", "22.08", "50", "150", "300", "350",
	"22 kW", "", "36000", "-1",
}

var dates = []string{
	"2020-06-15", "2021-03-01", "2021-11-30", "2022-07-12", "2022/09/05",
	"2023-01-20", "2023-08-14", "2024-02-29", "not a date", "",
}

func main() {
	out := flag.String("out", "", "output CSV path")
	rows := flag.Int("rows", 500, "number of rows to generate")
	seed := flag.Int64("seed", 42, "random seed, fixed for reproducible fixtures")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		log.Fatal("missing required flag: -out")
	}

	if err := run(*out, *rows, *seed); err != nil {
		log.Fatal(err)
	}
}

func run(path string, rows int, seed int64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	// Header casing and stray whitespace match real consolidation exports;
	// header normalization is part of what fixtures must exercise.
	header := []string{
		"ID_PDC_Itinerance", "id_pdc_local", "Nom_Amenageur", "nom_operateur",
		" Nom_Commune ", "Consolidated_Latitude", "consolidated_longitude",
		"Puissance_Nominale", "date_mise_en_service", "observations",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rng := rand.New(rand.NewSource(seed))
	var prevID, prevLocal string
	for i := 0; i < rows; i++ {
		id := fmt.Sprintf("FR*A%d*P%04d", rng.Intn(9)+1, i)
		local := fmt.Sprintf("LOCAL-%05d", i)
		// A slice of rows repeats the previous identifiers to plant duplicates.
		if i > 0 && rng.Intn(20) == 0 {
			id, local = prevID, prevLocal
		}
		prevID, prevLocal = id, local

		lat := strconv.FormatFloat(42.0+rng.Float64()*9.0, 'f', 5, 64)
		lon := strconv.FormatFloat(-2.0+rng.Float64()*9.0, 'f', 5, 64)
		switch rng.Intn(25) {
		case 0:
			lat = ""
		case 1:
			lon = "n/a"
		}

		record := []string{
			id,
			local,
			installers[rng.Intn(len(installers))],
			operators[rng.Intn(len(operators))],
			communes[rng.Intn(len(communes))],
			lat,
			lon,
			powers[rng.Intn(len(powers))],
			dates[rng.Intn(len(dates))],
			"synthetic row",
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	log.Printf("wrote %d rows to %s", rows, path)
	return nil
}
