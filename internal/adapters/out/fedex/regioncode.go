package fedex

import "strings"

// countryCodes maps destination country names to their ISO 3166-1 alpha-2
// codes. Saved addresses usually carry the code already, but older ones may
// still hold the spelled-out name.
var countryCodes = map[string]string{
	"United States":        "US",
	"USA":                  "US",
	"Canada":               "CA",
	"United Kingdom":       "GB",
	"UK":                   "GB",
	"Australia":            "AU",
	"Germany":              "DE",
	"France":               "FR",
	"Italy":                "IT",
	"Spain":                "ES",
	"Netherlands":          "NL",
	"Belgium":              "BE",
	"Switzerland":          "CH",
	"Austria":              "AT",
	"Sweden":               "SE",
	"Norway":               "NO",
	"Denmark":              "DK",
	"Finland":              "FI",
	"Iceland":              "IS",
	"Poland":               "PL",
	"Czech Republic":       "CZ",
	"Hungary":              "HU",
	"Slovakia":             "SK",
	"Lithuania":            "LT",
	"Latvia":               "LV",
	"Estonia":              "EE",
	"Romania":              "RO",
	"Bulgaria":             "BG",
	"Serbia":               "RS",
	"Croatia":              "HR",
	"Moldova":              "MD",
	"Portugal":             "PT",
	"Greece":               "GR",
	"Ireland":              "IE",
	"New Zealand":          "NZ",
	"Singapore":            "SG",
	"Hong Kong":            "HK",
	"South Korea":          "KR",
	"Korea":                "KR",
	"Taiwan":               "TW",
	"Thailand":             "TH",
	"Malaysia":             "MY",
	"Philippines":          "PH",
	"Indonesia":            "ID",
	"Vietnam":              "VN",
	"India":                "IN",
	"China":                "CN",
	"Mexico":               "MX",
	"Brazil":               "BR",
	"Argentina":            "AR",
	"Chile":                "CL",
	"Peru":                 "PE",
	"South Africa":         "ZA",
	"United Arab Emirates": "AE",
	"UAE":                  "AE",
	"Saudi Arabia":         "SA",
	"Israel":               "IL",
	"Turkey":               "TR",
	"Georgia":              "GE",
	"Russia":               "RU",
}

// usStateCodes maps US state names to their two-letter USPS codes.
var usStateCodes = map[string]string{
	"Alabama": "AL", "Alaska": "AK", "Arizona": "AZ", "Arkansas": "AR", "California": "CA",
	"Colorado": "CO", "Connecticut": "CT", "Delaware": "DE", "Florida": "FL", "Georgia": "GA",
	"Hawaii": "HI", "Idaho": "ID", "Illinois": "IL", "Indiana": "IN", "Iowa": "IA",
	"Kansas": "KS", "Kentucky": "KY", "Louisiana": "LA", "Maine": "ME", "Maryland": "MD",
	"Massachusetts": "MA", "Michigan": "MI", "Minnesota": "MN", "Mississippi": "MS", "Missouri": "MO",
	"Montana": "MT", "Nebraska": "NE", "Nevada": "NV", "New Hampshire": "NH", "New Jersey": "NJ",
	"New Mexico": "NM", "New York": "NY", "North Carolina": "NC", "North Dakota": "ND", "Ohio": "OH",
	"Oklahoma": "OK", "Oregon": "OR", "Pennsylvania": "PA", "Rhode Island": "RI", "South Carolina": "SC",
	"South Dakota": "SD", "Tennessee": "TN", "Texas": "TX", "Utah": "UT", "Vermont": "VT",
	"Virginia": "VA", "Washington": "WA", "West Virginia": "WV", "Wisconsin": "WI", "Wyoming": "WY",
}

// isoCountryCode converts a country name or code into an ISO 3166-1 alpha-2
// code. Unknown names degrade to the first two letters uppercased, which the
// carrier then rejects with a descriptive error.
func isoCountryCode(country string) string {
	trimmed := strings.TrimSpace(country)
	if trimmed == "" {
		return ""
	}

	upper := strings.ToUpper(trimmed)
	if len(trimmed) == 2 {
		for _, code := range countryCodes {
			if code == upper {
				return upper
			}
		}
	}

	for name, code := range countryCodes {
		if strings.EqualFold(name, trimmed) {
			return code
		}
	}

	if len(upper) < 2 {
		return upper
	}
	return upper[:2]
}

// usStateCode converts a US state name or code into its two-letter code.
// Returns an empty string when the state cannot be resolved.
func usStateCode(state string) string {
	trimmed := strings.TrimSpace(state)
	if trimmed == "" {
		return ""
	}

	upper := strings.ToUpper(trimmed)
	if len(trimmed) == 2 {
		for _, code := range usStateCodes {
			if code == upper {
				return upper
			}
		}
	}

	for name, code := range usStateCodes {
		if strings.EqualFold(name, trimmed) {
			return code
		}
	}

	return ""
}

// recipientStateCode resolves the state-or-province code the carrier expects
// for the destination. US destinations must resolve to a valid state code;
// Canadian provinces pass through when already two letters; every other
// destination omits the field.
func recipientStateCode(countryCode string, state string) (string, bool) {
	switch countryCode {
	case "US":
		code := usStateCode(state)
		return code, code != ""
	case "CA":
		trimmed := strings.TrimSpace(state)
		if len(trimmed) == 2 {
			return strings.ToUpper(trimmed), true
		}
		return "", true
	default:
		return "", true
	}
}
