// Package timezones provides deterministic IANA timezone data, search helpers
// and an option source that fills enumerations with zone identifiers.
//
// Register the source and tag a field with it:
//
//	reg := sources.NewRegistry()
//	reg.MustRegister(timezones.SourceName, timezones.Provider())
//
//	"tz": {"type": "string", "x-formoptions": {"source": "timezones", "query": "europe"}}
//
// The backing data is loaded from the embedded list under
// data/iana_timezones.txt.
package timezones
