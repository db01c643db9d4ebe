package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/equipment-tracker/internal/roster"
	"github.com/preston-bernstein/equipment-tracker/internal/timeutil"
)

const (
	csvTitle           = "AFHS FOOTBALL EQUIPMENT INVENTORY REPORT"
	filenamePrefix     = "AFHS-Equipment-Report-"
	listSeparator      = "; "
	sectionSummary     = "=== SUMMARY ==="
	sectionIncomplete  = "=== PLAYERS WITH MISSING EQUIPMENT ==="
	sectionComplete    = "=== PLAYERS WITH ALL EQUIPMENT RETURNED ==="
	sectionChecklist   = "=== DETAILED EQUIPMENT CHECKLIST ==="
	statusComplete     = "COMPLETE"
	statusMissingLabel = "MISSING"
)

// ContentType is the media type served for exports.
const ContentType = "text/csv; charset=utf-8"

var identityHeader = []string{"Name", "Student ID", "Jersey #", "Grade", "Position", "Period"}

// checklistColumns are the matrix headers, one per roster.Checklist entry.
var checklistColumns = []string{
	"Red Jersey", "Soph Red Jersey", "Black Jersey", "White Jersey",
	"Red Pants", "Black Pants", "White Pants",
	"Helmet", "Guardian", "Shoulder Pads", "Girdle", "Knee Pads",
	"Practice Pants", "Belt", "Win in the Dark",
}

// Filename is the download name for a report generated on day t.
func Filename(t time.Time) string {
	return filenamePrefix + timeutil.FormatDate(t) + ".csv"
}

// WriteCSV renders the full inventory report. Rows have varying widths, so
// the writer runs with FieldsPerRecord disabled.
func WriteCSV(w io.Writer, r Report, generatedAt time.Time) error {
	cw := csv.NewWriter(w)
	cw.FieldsPerRecord = -1

	rows := [][]string{
		{csvTitle},
		{"Generated: " + timeutil.FormatDateTime(generatedAt)},
		{},
		{sectionSummary},
		{"Total Players", strconv.Itoa(r.Total())},
		{"Complete (All Equipment Returned)", strconv.Itoa(len(r.Complete))},
		{"Incomplete (Missing Equipment)", strconv.Itoa(len(r.Incomplete))},
		{"Completion Rate", fmt.Sprintf("%d%%", r.Rate())},
		{},
		{},
		{sectionIncomplete},
		append(identityColumns(), "Missing Count", "Missing Items"),
	}
	for _, e := range r.Incomplete {
		rows = append(rows, append(identityRow(e.Player),
			strconv.Itoa(e.MissingCount()),
			joinItems(e.Missing),
		))
	}

	rows = append(rows, []string{}, []string{}, []string{sectionComplete}, identityColumns())
	for _, e := range r.Complete {
		rows = append(rows, identityRow(e.Player))
	}

	rows = append(rows, []string{}, []string{}, []string{sectionChecklist}, checklistHeader())
	for _, e := range r.Players {
		rows = append(rows, checklistRow(e))
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write report csv: %w", err)
	}
	return nil
}

func identityColumns() []string {
	return append([]string{}, identityHeader...)
}

func checklistHeader() []string {
	header := append(identityColumns(), "Status")
	header = append(header, checklistColumns...)
	return append(header, "Custom Items", "Never Received")
}

func identityRow(p roster.Player) []string {
	number := ""
	if p.HasNumber() {
		number = strconv.Itoa(*p.Number)
	}
	return []string{p.Name, p.StudentID, number, p.Grade, p.Position, p.Period}
}

func checklistRow(e Entry) []string {
	status := statusComplete
	if n := e.MissingCount(); n > 0 {
		status = statusMissingLabel + " " + strconv.Itoa(n)
	}
	row := append(identityRow(e.Player), status)
	for _, item := range roster.Checklist {
		row = append(row, yesNo(e.Player.Equipment.Has(item)))
	}
	return append(row,
		strings.Join(e.Player.Equipment.CustomItems, listSeparator),
		strings.Join(e.Player.Equipment.NeverReceived, listSeparator),
	)
}

func joinItems(items []roster.Item) string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = string(item)
	}
	return strings.Join(labels, listSeparator)
}

func yesNo(v bool) string {
	if v {
		return "YES"
	}
	return "NO"
}
