// Package census declares the ACS query model: which variables are requested,
// for which geography, and how that maps onto a Census API request URL.
package census

import (
	"fmt"
	"net/url"
	"strings"
)

// Variable pairs a Census variable code with the display name it is renamed to
// after fetch (e.g. B01001_003E -> pop_under5_male).
type Variable struct {
	Code string
	Name string
}

// UnderFiveVariables is the fixed variable set for the under-5 population pull:
// male and female under-5 estimates from the B01001 (Sex by Age) table.
// Order matters: it determines request order and therefore response column order.
func UnderFiveVariables() []Variable {
	return []Variable{
		{Code: "B01001_003E", Name: "pop_under5_male"},
		{Code: "B01001_027E", Name: "pop_under5_female"},
	}
}

// UpperChamberDistricts is the "for" geography clause selecting every upper-chamber
// state legislative district.
const UpperChamberDistricts = "state legislative district (upper chamber)"

// Geography restricts a query to one geography level within one state.
type Geography struct {
	ForClause string
	StateFIPS string
}

// Query describes a single ACS API request.
type Query struct {
	Year      string
	Dataset   string
	Variables []Variable
	Geography Geography
}

// Codes returns the requested variable codes in request order.
func (q Query) Codes() []string {
	codes := make([]string, len(q.Variables))
	for i, v := range q.Variables {
		codes[i] = v.Code
	}
	return codes
}

// Renames returns the code -> display name mapping for the shaping stage.
func (q Query) Renames() map[string]string {
	renames := make(map[string]string, len(q.Variables))
	for _, v := range q.Variables {
		renames[v.Code] = v.Name
	}
	return renames
}

// URL assembles the full request URL against the given API base, e.g.
//
//	https://api.census.gov/data/2019/acs/acs5?get=B01001_003E,B01001_027E&for=state%20legislative%20district%20(upper%20chamber):*&in=state:11
//
// Pure string formatting over the query's fields; no error conditions.
func (q Query) URL(baseURL string) string {
	return fmt.Sprintf("%s/%s/%s?get=%s&for=%s:*&in=state:%s",
		strings.TrimSuffix(baseURL, "/"),
		q.Year,
		q.Dataset,
		strings.Join(q.Codes(), ","),
		escapeClause(q.Geography.ForClause),
		q.Geography.StateFIPS,
	)
}

// escapeClause percent-encodes a geography clause the way the Census API
// documents it: spaces as %20, parentheses left intact.
func escapeClause(clause string) string {
	escaped := url.QueryEscape(clause)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	escaped = strings.ReplaceAll(escaped, "%28", "(")
	escaped = strings.ReplaceAll(escaped, "%29", ")")
	return escaped
}
