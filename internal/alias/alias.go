// Package alias maps colloquial local-area names to their canonical cities.
package alias

import "strings"

// table maps lowercase local-area names to the city the weather provider
// actually knows. Loaded once at process start, read-only after that.
var table = map[string]string{
	// Andhra Pradesh
	"duvvada":        "Visakhapatnam",
	"gajuwaka":       "Visakhapatnam",
	"anakapalli":     "Visakhapatnam",
	"mvp colony":     "Visakhapatnam",
	"madhurawada":    "Visakhapatnam",
	"rajahmundry":    "Rajahmundry",
	"kakinada":       "Kakinada",
	"vizianagaram":   "Vizianagaram",
	"tirupati":       "Tirupati",
	"guntur":         "Guntur",
	"vijayawada":     "Vijayawada",
	"tenali":         "Guntur",
	"ongole":         "Ongole",
	"nellore":        "Nellore",
	"sriharikota":    "Nellore",
	"srikakulam":     "Srikakulam",
	"eluru":          "Eluru",
	"machilipatnam":  "Machilipatnam",
	"tadepalligudem": "Tadepalligudem",
	"narasaraopet":   "Guntur",
	"kadapa":         "Kadapa",
	"ananthapur":     "Anantapur",
	"chittoor":       "Chittoor",

	// Telangana
	"madhapur":     "Hyderabad",
	"gachibowli":   "Hyderabad",
	"ameerpet":     "Hyderabad",
	"kukatpally":   "Hyderabad",
	"uppal":        "Hyderabad",
	"secunderabad": "Hyderabad",
	"lb nagar":     "Hyderabad",
	"bhel":         "Hyderabad",
	"warangal":     "Warangal",
	"karimnagar":   "Karimnagar",
	"khammam":      "Khammam",
	"nizamabad":    "Nizamabad",
	"siddipet":     "Siddipet",
	"nalgonda":     "Nalgonda",
	"zaheerabad":   "Zaheerabad",
	"mahabubnagar": "Mahbubnagar",
}

// Resolve looks up a known local-area name, case-insensitively on the trimmed
// input. On a hit it returns the mapped city and true; otherwise the trimmed
// input unchanged and false.
func Resolve(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if city, ok := table[strings.ToLower(trimmed)]; ok {
		return city, true
	}
	return trimmed, false
}

// Known returns all local-area names in the table. For tests.
func Known() []string {
	out := make([]string, 0, len(table))
	for k := range table {
		out = append(out, k)
	}
	return out
}
