package scraper

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/curling-standings/internal/standings"
)

const teamLinkSelector = "a[href*='teamDetail']"

var standingsHeaders = []string{"rank", "team", "wins", "losses"}

// integer cells only; rejects "7.5", "-1", "3-2", "LSD 12"
var integerCell = regexp.MustCompile(`^\d+$`)

// locateStandingsTable returns the first table whose text mentions every standings
// header, or nil if there is none.
func locateStandingsTable(doc *goquery.Document) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		text := strings.ToLower(table.Text())
		for _, h := range standingsHeaders {
			if !strings.Contains(text, h) {
				return true
			}
		}
		found = table
		return false
	})
	return found
}

// parseStandingsTable reads one Row per team row. The first row is the header.
// Integer cells are taken positionally as rank, games, wins, losses.
func parseStandingsTable(table *goquery.Selection) []standings.Row {
	rows := make([]standings.Row, 0)

	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return
		}

		team := strings.TrimSpace(tr.Find(teamLinkSelector).First().Text())
		if team == "" {
			return
		}

		nums := make([]int, 0, 4)
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			text := strings.TrimSpace(td.Text())
			if !integerCell.MatchString(text) {
				return
			}
			if n, err := strconv.Atoi(text); err == nil {
				nums = append(nums, n)
			}
		})

		row := standings.Row{Team: team}
		if len(nums) >= 4 {
			row.Games, row.Wins, row.Losses = nums[1], nums[2], nums[3]
		}
		rows = append(rows, row)
	})

	return rows
}

// standingsFromDocument locates and parses the standings table of a page
func standingsFromDocument(doc *goquery.Document) ([]standings.Row, error) {
	table := locateStandingsTable(doc)
	if table == nil {
		return nil, ErrTableNotFound
	}
	return parseStandingsTable(table), nil
}

// parseStandings parses a standings page
func parseStandings(r io.Reader) ([]standings.Row, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return standingsFromDocument(doc)
}

// parseScheduleRows extracts games that have a valid start time and are not completed.
func parseScheduleRows(doc *goquery.Document, div standings.Division) []standings.Game {
	games := make([]standings.Game, 0)

	doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Find("td")
		links := tr.Find(teamLinkSelector)
		if tds.Length() < 6 || links.Length() < 2 {
			return
		}

		cells := make([]string, 0, tds.Length())
		tds.Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, collapseSpace(td.Text()))
		})

		start, ok := standings.NormalizeStartTime(cells[0], cells[1])
		if !ok {
			return
		}

		status := standings.MatchStatus(cells)
		if standings.IsCompleted(status) {
			return
		}

		teamA := collapseSpace(links.Eq(0).Text())
		teamB := collapseSpace(links.Eq(1).Text())

		games = append(games, standings.Game{
			Division:  div.Label,
			TeamA:     teamA,
			TeamB:     teamB,
			TeamACode: standings.ExtractCode(teamA),
			TeamBCode: standings.ExtractCode(teamB),
			StartTime: start,
			Status:    status,
		})
	})

	return games
}

// parseSchedule parses a games page
func parseSchedule(r io.Reader, div standings.Division) ([]standings.Game, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return parseScheduleRows(doc, div), nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
