// Package standings provides the normalized types served by the curling standings API.
//
// The standings package holds the per-division standings rows, the upcoming game
// records built from the games page, and the snapshot that combines both. It also
// owns the text normalization rules shared by the scraper: loose date/time parsing
// into a UTC instant, team code extraction, and match status classification.
package standings
