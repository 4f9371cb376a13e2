package producer

import "strings"

// federativeUnits are the 26 states plus the Federal District
var federativeUnits = map[string]struct{}{
	"AC": {}, "AL": {}, "AP": {}, "AM": {}, "BA": {}, "CE": {}, "DF": {},
	"ES": {}, "GO": {}, "MA": {}, "MT": {}, "MS": {}, "MG": {}, "PA": {},
	"PB": {}, "PR": {}, "PE": {}, "PI": {}, "RJ": {}, "RN": {}, "RS": {},
	"RO": {}, "RR": {}, "SC": {}, "SP": {}, "SE": {}, "TO": {},
}

// IsFederativeUnit reports whether code names a Brazilian state or the
// Federal District. Case and surrounding whitespace are ignored.
func IsFederativeUnit(code string) bool {
	_, ok := federativeUnits[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}
