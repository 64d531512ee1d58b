// Package scraper provides HTTP fetching and HTML parsing for World Curling live scores.
//
// The upstream site has no stable element ids, so tables are located by their text:
// the standings table is the first one mentioning rank, team, wins and losses, and
// schedule rows are any table rows linking two team detail pages. Parsing is kept
// separate from fetching so HTML fixtures can drive the parsers directly.
package scraper
