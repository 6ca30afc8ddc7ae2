// Package imgwpib is a client for the IMGW-PIB public data API
// (danepubliczne.imgw.pl), the Polish Institute of Meteorology and Water
// Management. It fetches synoptic weather observations, hydrological
// observations, and active weather/hydrological warnings, and normalizes
// them into typed records.
//
// # Data Source
//
// The upstream API serves loosely-typed JSON: numeric values arrive as
// strings or numbers interchangeably, optional fields as null, and the two
// hydrological endpoints use different field names for the same concepts.
// All field names are Polish (e.g. "temperatura", "stan_wody",
// "wilgotnosc_wzgledna").
//
// Endpoints by role:
//
//	synop           weather station list and single-station observations
//	hydro           primary hydrological station list with observations
//	hydro2          secondary hydrological list (different schema, has coordinates)
//	warningsmeteo   active weather warnings, scoped by TERYT territory codes
//	warningshydro   active hydrological warnings, scoped by river basin text
//	hydro-back      per-station flood warning/alarm thresholds
//
// # Normalization Rules
//
// Sensor absence is total: a missing raw field produces a reading with nil
// value and nil unit, never one without the other.
//
// A measurement is current when it is younger than six hours at evaluation
// time (strict comparison). Stale measurements are dropped together with
// their timestamps so old values never surface under a recent-looking date.
// The water level is the one mandatory field: when it resolves to absent the
// whole hydrological request fails with [APIError].
//
// Warnings are matched newest-entry-first against the station's TERYT code
// (weather) or against river basin descriptions plus province
// (hydrological). Known Polish event names are mapped to stable English
// labels; unknown names pass through lowercased so new upstream categories
// surface without a library update. Severity degrees 1-3 map to yellow,
// orange and red.
//
// Flood booleans derive from the current water level compared against the
// station's warning/alarm thresholds and stay nil when either side is
// missing.
//
// # Reference Data
//
// Weather station coordinates and TERYT codes, and river/province lookups
// for hydro2 station codes, come from tables bundled in internal/refdata.
// They are loaded once per client and never mutated.
package imgwpib
