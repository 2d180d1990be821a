package value

import (
	"fmt"
	"strings"
	"time"
)

// tzRegions are the IANA region prefixes tried when resolving a
// Haystack short zone name like "Sydney" or "New_York".
var tzRegions = []string{
	"America",
	"Europe",
	"Asia",
	"Australia",
	"Africa",
	"Pacific",
	"Atlantic",
	"Indian",
	"Antarctica",
	"Etc",
}

// LoadTZ resolves a timezone name against the IANA database. Accepts
// full names ("Australia/Sydney"), Haystack short names ("Sydney"),
// and "UTC"/"GMT".
func LoadTZ(name string) (*time.Location, error) {
	if name == "" {
		return nil, newValueError("timezone name must be non-empty")
	}
	if name == "UTC" || name == "GMT" {
		return time.UTC, nil
	}
	if strings.Contains(name, "/") {
		return time.LoadLocation(name)
	}
	for _, region := range tzRegions {
		if loc, err := time.LoadLocation(region + "/" + name); err == nil {
			return loc, nil
		}
	}
	return nil, fmt.Errorf("unknown timezone name %q", name)
}

// ShortTZ converts a full IANA zone name to the Haystack short form:
// the segment after the region, e.g. "America/New_York" -> "New_York".
// Names without a region separator pass through unchanged.
func ShortTZ(full string) string {
	if full == "" || full == "Local" {
		return "UTC"
	}
	if i := strings.LastIndex(full, "/"); i >= 0 {
		return full[i+1:]
	}
	return full
}
