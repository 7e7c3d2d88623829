// Package domain models consolidated IRVE charging-point records and the
// cleaning pipeline that turns the raw open-data CSV into an analysis-ready
// table.
//
// # Data Source
//
// Records come from the consolidated IRVE dataset published on data.gouv.fr
// (Etalab schema for public EV charging infrastructure). One row describes one
// charging point: an individual plug, not a station. A station may host
// several points, which is why the dataset carries two unique identifiers per
// point (id_pdc_itinerance for roaming networks, id_pdc_local for the site
// operator) and why the same point sometimes appears twice.
//
// # Column Conventions
//
// Consolidated columns referenced by the pipeline (lowercase after header
// normalization):
//
//	id_pdc_itinerance       roaming charge-point identifier
//	id_pdc_local            local charge-point identifier
//	nom_amenageur           installer name, free text
//	nom_operateur           operator name, free text
//	nom_commune             municipality name, free text
//	consolidated_latitude   WGS-84 latitude, sometimes textual or malformed
//	consolidated_longitude  WGS-84 longitude, sometimes textual or malformed
//	puissance_nominale      nominal power in kW, sometimes textual ("22 kW")
//	date_mise_en_service    service start date, stored as text in mixed formats
//
// Derived columns:
//
//	categorie_puissance     ordered power category, see [PowerCategory]
//	annee_mise_en_service   year of date_mise_en_service, NA when the date is NA
//
// # Power Categories
//
// Nominal power is binned into four fixed speed bands with left-closed,
// right-open intervals:
//
//	[0, 22)     Normal (<22kW)
//	[22, 50)    Fast (22–50kW)
//	[50, 150)   Very fast (50–150kW)
//	[150, 1000) Ultra-fast (>150kW)
//
// Values that are negative, at or above 1000 kW, or unparsable fall outside
// the defined range and receive no category. The 1000 kW ceiling follows the
// source dataset's declared value range; the fastest deployed hardware today
// tops out around 400 kW, so the ceiling only excludes entry errors.
//
// # Cleaning Guarantees
//
// After [Clean]:
//   - column names are lowercase and whitespace-trimmed;
//   - no two retained rows share the same identity key over whichever
//     identifier columns were present (first occurrence wins);
//   - every retained row has a parsed latitude and longitude when both
//     coordinate columns existed in the input;
//   - only the fixed allow-list of columns survives, in fixed order.
//
// Per-value failures (unparsable date, power, or coordinate) never abort the
// pipeline; they become NA and are tallied in the [Report].
package domain
