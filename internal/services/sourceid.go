package services

import "strconv"

// The upstream Medula report id doubles as the local dedup key, stored as
// a string column.
func sourceID(reportID int64) string {
	return strconv.FormatInt(reportID, 10)
}

func parseSourceID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
