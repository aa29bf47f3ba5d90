// Package domain models the hourly bike-sharing dataset shown by the dashboard.
//
// # Data Source
//
// Records come from the Capital Bikeshare hourly dataset after an upstream
// preparation step that adds three derived columns: temp_category,
// casual_user and registered_user. The preparation logic is not part of this
// service; the derived columns are carried through as opaque labels.
//
// # Column Conventions
//
// Dates:
//
//	"dteday" holds a calendar date, usually "2011-01-01". A trailing
//	"00:00:00" time component is tolerated and dropped.
//
// Codes:
//
//	season:     1 Springer | 2 Summer | 3 Fall | 4 Winter
//	weathersit: 1 Clear, Few clouds, Partly cloudy
//	            2 Mist + Cloudy, Mist + Broken clouds
//	            3 Light Snow, Light Rain + Thunderstorm
//	            4 Heavy Rain + Ice Pellets + Thunderstorm
//
//	Codes outside these tables map to [UnknownLabel]. Prepared files that
//	already store the season label instead of the code are accepted.
//
// Measurements:
//
//	temp, hum and windspeed are normalized to [0, 1] upstream and are
//	plotted as-is.
//
// Counts:
//
//	cnt is expected to equal casual + registered. The invariant is not
//	enforced at load time; cmd/validate reports rows that break it.
//
// # Aggregations
//
// The hourly aggregation counts distinct cnt values per hour rather than
// summing them. See [HourlyCounts].
package domain
