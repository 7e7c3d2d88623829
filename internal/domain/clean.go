package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Report tallies what Clean did to a raw table. It feeds the narrative layer
// ("rows before/after, duplicates removed") and the Prometheus drop counters.
type Report struct {
	RowsIn  int
	RowsOut int

	DuplicatesDropped int
	CoordinateDrops   int

	UnparsableDates       int
	UnparsableCoordinates int
	UnparsablePower       int

	// SkippedSteps lists pipeline steps that did not run because their
	// required columns were absent from the input.
	SkippedSteps []string

	// Fraction of missing cells before and after cleaning, in [0,1].
	MissingShareBefore float64
	MissingShareAfter  float64

	GeneratedAt time.Time
}

// cleanStep is one transformation in the pipeline. A step declares the
// columns it needs up front: it is skipped, not attempted, when any column in
// requires is absent, or when anyOf is non-empty and none of its columns are
// present.
type cleanStep struct {
	name     string
	requires []string
	anyOf    []string
	apply    func(dataframe.DataFrame, *Report) dataframe.DataFrame
}

func (s cleanStep) runnable(names []string) bool {
	if !hasAll(names, s.requires...) {
		return false
	}
	if len(s.anyOf) == 0 {
		return true
	}
	for _, c := range s.anyOf {
		if hasColumn(names, c) {
			return true
		}
	}
	return false
}

// Clean transforms a raw IRVE table into the analysis-ready clean table. The
// input frame is not mutated. Missing optional columns never fail the
// pipeline; the dependent steps are recorded in Report.SkippedSteps instead.
func Clean(raw dataframe.DataFrame) (dataframe.DataFrame, Report) {
	report := Report{
		RowsIn:             raw.Nrow(),
		MissingShareBefore: MissingShare(raw),
		GeneratedAt:        clock.Now(),
	}
	if raw.Err != nil {
		return raw, report
	}

	df := normalizeHeaders(raw.Copy())

	steps := []cleanStep{
		{name: "parse_service_date", requires: []string{ColServiceDate}, apply: parseServiceDates},
		{name: "coerce_latitude", requires: []string{ColLatitude}, apply: coerceCoordinate(ColLatitude)},
		{name: "coerce_longitude", requires: []string{ColLongitude}, apply: coerceCoordinate(ColLongitude)},
		{name: "categorize_power", requires: []string{ColPower}, apply: categorizePower},
		{name: "normalize_installer", requires: []string{ColInstaller}, apply: titleCaseColumn(ColInstaller)},
		{name: "normalize_operator", requires: []string{ColOperator}, apply: titleCaseColumn(ColOperator)},
		{name: "normalize_municipality", requires: []string{ColMunicipality}, apply: titleCaseColumn(ColMunicipality)},
		// Dedup runs before the coordinate filter so duplicate rows with valid
		// coordinates are counted once, and categorization precedes projection
		// so the derived category survives into the clean table.
		{name: "drop_duplicates", anyOf: identityColumns, apply: dropDuplicates},
		{name: "drop_missing_coordinates", requires: []string{ColLatitude, ColLongitude}, apply: dropMissingCoordinates},
		{name: "project_columns", anyOf: keepColumns, apply: projectColumns},
	}

	for _, step := range steps {
		if !step.runnable(df.Names()) {
			report.SkippedSteps = append(report.SkippedSteps, step.name)
			continue
		}
		df = step.apply(df, &report)
	}

	report.RowsOut = df.Nrow()
	report.MissingShareAfter = MissingShare(df)
	return df, report
}

// normalizeHeaders trims and lowercases every column name so downstream steps
// can reference columns by exact lowercase name.
func normalizeHeaders(df dataframe.DataFrame) dataframe.DataFrame {
	for _, name := range df.Names() {
		normalized := strings.ToLower(strings.TrimSpace(name))
		if normalized != name {
			df = df.Rename(normalized, name)
		}
	}
	return df
}

// parseServiceDates normalizes date_mise_en_service to ServiceDateLayout and
// derives annee_mise_en_service. Unparsable dates become undefined, and their
// year is NA.
func parseServiceDates(df dataframe.DataFrame, report *Report) dataframe.DataFrame {
	col := df.Col(ColServiceDate)
	n := col.Len()
	dates := make([]string, n)
	years := make([]string, n)
	for i := 0; i < n; i++ {
		el := col.Elem(i)
		raw := el.String()
		if el.IsNA() {
			raw = ""
		}
		t, ok := ParseServiceDate(raw)
		if !ok {
			if strings.TrimSpace(raw) != "" {
				report.UnparsableDates++
			}
			dates[i] = ""
			years[i] = "NaN"
			continue
		}
		dates[i] = t.Format(ServiceDateLayout)
		years[i] = strconv.Itoa(t.Year())
	}
	df = df.Mutate(series.New(dates, series.String, ColServiceDate))
	return df.Mutate(series.New(years, series.Int, ColServiceYear))
}

// coerceCoordinate re-types a coordinate column as float, NA on failure.
func coerceCoordinate(name string) func(dataframe.DataFrame, *Report) dataframe.DataFrame {
	return func(df dataframe.DataFrame, report *Report) dataframe.DataFrame {
		return coerceNumeric(df, name, &report.UnparsableCoordinates)
	}
}

// coerceNumeric rebuilds a column as a float series. Values that do not parse
// become NA and bump the given counter; empty values stay NA silently.
func coerceNumeric(df dataframe.DataFrame, name string, unparsable *int) dataframe.DataFrame {
	recs := df.Col(name).Records()
	for i, r := range recs {
		r = strings.TrimSpace(r)
		recs[i] = r
		if r == "" || r == "NaN" {
			continue
		}
		if _, err := strconv.ParseFloat(r, 64); err != nil {
			*unparsable++
		}
	}
	return df.Mutate(series.New(recs, series.Float, name))
}

// categorizePower coerces puissance_nominale to float and derives the
// categorie_puissance column. Undefined power yields an undefined category.
func categorizePower(df dataframe.DataFrame, report *Report) dataframe.DataFrame {
	df = coerceNumeric(df, ColPower, &report.UnparsablePower)
	vals := df.Col(ColPower).Float()
	cats := make([]string, len(vals))
	for i, v := range vals {
		cats[i] = CategorizePower(v).Label()
	}
	return df.Mutate(series.New(cats, series.String, ColCategory))
}

// titleCaseColumn converts a free-text name column to title case and trims
// surrounding whitespace. This collapses case-only duplicates such as
// "TOTALENERGIES" vs "Total energies" into one canonical spelling; it never
// merges distinct spellings.
func titleCaseColumn(name string) func(dataframe.DataFrame, *Report) dataframe.DataFrame {
	return func(df dataframe.DataFrame, _ *Report) dataframe.DataFrame {
		caser := cases.Title(language.French)
		recs := df.Col(name).Records()
		for i, r := range recs {
			if r == "" || r == "NaN" {
				continue
			}
			recs[i] = strings.TrimSpace(caser.String(r))
		}
		return df.Mutate(series.New(recs, series.String, name))
	}
}

// dropDuplicates removes rows repeating an already-seen combination of the
// identity columns present in the table, keeping the first occurrence in
// original row order.
func dropDuplicates(df dataframe.DataFrame, report *Report) dataframe.DataFrame {
	names := df.Names()
	var keyCols []series.Series
	for _, k := range identityColumns {
		if hasColumn(names, k) {
			keyCols = append(keyCols, df.Col(k))
		}
	}

	seen := make(map[string]struct{}, df.Nrow())
	keep := make([]int, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		var sb strings.Builder
		for j, c := range keyCols {
			if j > 0 {
				sb.WriteByte(0x1f)
			}
			sb.WriteString(c.Elem(i).String())
		}
		if _, dup := seen[sb.String()]; dup {
			report.DuplicatesDropped++
			continue
		}
		seen[sb.String()] = struct{}{}
		keep = append(keep, i)
	}

	if report.DuplicatesDropped == 0 {
		return df
	}
	return df.Subset(keep)
}

// dropMissingCoordinates removes rows lacking a parsed latitude or longitude;
// they cannot be placed on a map.
func dropMissingCoordinates(df dataframe.DataFrame, report *Report) dataframe.DataFrame {
	before := df.Nrow()
	if before == 0 {
		return df
	}
	out := df.FilterAggregation(dataframe.And,
		dataframe.F{Colname: ColLatitude, Comparator: series.CompFunc, Comparando: notNA},
		dataframe.F{Colname: ColLongitude, Comparator: series.CompFunc, Comparando: notNA},
	)
	report.CoordinateDrops = before - out.Nrow()
	return out
}

func notNA(el series.Element) bool { return !el.IsNA() }

// projectColumns keeps only the allow-listed columns, in fixed order.
func projectColumns(df dataframe.DataFrame, _ *Report) dataframe.DataFrame {
	names := df.Names()
	present := make([]string, 0, len(keepColumns))
	for _, c := range keepColumns {
		if hasColumn(names, c) {
			present = append(present, c)
		}
	}
	return df.Select(present)
}

// MissingFraction returns the fraction of undefined values in a series.
// For string columns, empty and whitespace-only values count as undefined,
// matching how blank CSV cells arrive.
func MissingFraction(s series.Series) float64 {
	n := s.Len()
	if n == 0 {
		return 0
	}
	missing := 0
	for i := 0; i < n; i++ {
		if missingElement(s.Elem(i)) {
			missing++
		}
	}
	return float64(missing) / float64(n)
}

// MissingShare returns the fraction of undefined cells across the whole table.
func MissingShare(df dataframe.DataFrame) float64 {
	if df.Err != nil || df.Nrow() == 0 || df.Ncol() == 0 {
		return 0
	}
	total, missing := 0, 0
	for _, name := range df.Names() {
		col := df.Col(name)
		for i := 0; i < col.Len(); i++ {
			total++
			if missingElement(col.Elem(i)) {
				missing++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(missing) / float64(total)
}

func missingElement(el series.Element) bool {
	if el.IsNA() {
		return true
	}
	if el.Type() == series.String {
		v := strings.TrimSpace(el.String())
		return v == "" || v == "NaN"
	}
	return false
}
