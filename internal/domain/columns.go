package domain

// Consolidated IRVE column names, as they appear after header normalization.
const (
	ColIDItinerance = "id_pdc_itinerance"
	ColIDLocal      = "id_pdc_local"
	ColInstaller    = "nom_amenageur"
	ColOperator     = "nom_operateur"
	ColMunicipality = "nom_commune"
	ColLatitude     = "consolidated_latitude"
	ColLongitude    = "consolidated_longitude"
	ColPower        = "puissance_nominale"
	ColCategory     = "categorie_puissance"
	ColServiceDate  = "date_mise_en_service"
	ColServiceYear  = "annee_mise_en_service"
)

// identityColumns are checked for duplicate charge-point records. Whichever
// subset is present in the table forms the identity key.
var identityColumns = []string{ColIDItinerance, ColIDLocal}

// keepColumns is the projection allow-list, in the order the clean table
// presents them. Entries absent from the source are skipped.
var keepColumns = []string{
	ColInstaller, ColOperator, ColMunicipality,
	ColLatitude, ColLongitude,
	ColPower, ColCategory,
	ColServiceDate, ColServiceYear,
}

// KeepColumns returns the projection allow-list in fixed order.
func KeepColumns() []string {
	out := make([]string, len(keepColumns))
	copy(out, keepColumns)
	return out
}

func hasColumn(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func hasAll(names []string, required ...string) bool {
	for _, r := range required {
		if !hasColumn(names, r) {
			return false
		}
	}
	return true
}
