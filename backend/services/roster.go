package services

import (
	"fmt"
	"io"
	"math"
	"nanum-admin/backend/models"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	RosterSheetName = "대상자명단"

	// first row holding a recipient
	rosterDataStartRow = 9

	rosterBaseRowHeight = 20
	rosterMaxRowHeight  = 200
	rosterLineHeight    = 15
	rosterRowPadding    = 10

	reasonCharsPerLine     = 50
	directionsCharsPerLine = 30

	reasonColumn     = 9
	directionsColumn = 10
)

var rosterHeader = []string{
	"연번", "대상자명", "대상구분", "대상가구", "우편번호", "기본주소", "상세주소", "핸드폰", "집전화", "신청사유", "찾아가는길",
}

var rosterColumnWidths = []float64{8, 15, 15, 20, 12, 25, 20, 15, 15, 50, 30}

// CellStyle is the formatting applied to one populated cell.
type CellStyle struct {
	Border     string `json:"border"`
	Horizontal string `json:"horizontal"`
	Vertical   string `json:"vertical"`
	WrapText   bool   `json:"wrapText"`
}

// CellRef addresses a cell by zero-based row and column.
type CellRef struct {
	Row int
	Col int
}

// SheetModel is a spreadsheet layout independent of any file format.
type SheetModel struct {
	Name         string
	Rows         [][]any
	ColumnWidths []float64
	RowHeights   []float64
	CellStyles   map[CellRef]CellStyle
}

var rosterCellStyle = CellStyle{Border: "thin", Horizontal: "left", Vertical: "top", WrapText: true}

// BuildRosterSheet lays out the roster of a group: an organization block, a header
// row and one row per target in input order.
func BuildRosterSheet(group models.Group, targets []models.TargetView) SheetModel {
	rows := [][]any{
		{"1.단체정보"},
		{"단체명", group.Name},
		{"주소", group.FullAddress()},
		{"담당자명", group.ManagerName},
		{"핸드폰", FormatPhone(group.MobilePhone)},
		{"일반전화", FormatPhone(group.Phone)},
		{},
		{"2.추천대상정보"},
	}
	header := make([]any, len(rosterHeader))
	for i, h := range rosterHeader {
		header[i] = h
	}
	rows = append(rows, header)

	for i, t := range targets {
		zipcode, road := SplitAddress(t.Address)
		rows = append(rows, []any{
			i + 1,
			t.Name,
			t.TargetType,
			t.TargetHousehold,
			zipcode,
			road,
			t.DetailAddress,
			FormatPhone(t.MobilePhone),
			FormatPhone(t.Phone),
			t.ApplicationReason,
			t.Directions,
		})
	}

	heights := make([]float64, len(rows))
	for r := range rows {
		heights[r] = rosterBaseRowHeight
		if r >= rosterDataStartRow {
			heights[r] = RosterRowHeight(cellText(rows[r], reasonColumn), cellText(rows[r], directionsColumn))
		}
	}

	styles := make(map[CellRef]CellStyle)
	for r, row := range rows {
		for c := range row {
			styles[CellRef{Row: r, Col: c}] = rosterCellStyle
		}
	}

	widths := make([]float64, len(rosterColumnWidths))
	copy(widths, rosterColumnWidths)

	return SheetModel{
		Name:         RosterSheetName,
		Rows:         rows,
		ColumnWidths: widths,
		RowHeights:   heights,
		CellStyles:   styles,
	}
}

// RosterRowHeight estimates the height in points a recipient row needs for its
// application reason and directions.
func RosterRowHeight(reason, directions string) float64 {
	lines := max(1, estimateLines(reason, reasonCharsPerLine), estimateLines(directions, directionsCharsPerLine))
	h := lines*rosterLineHeight + rosterRowPadding
	return float64(min(rosterMaxRowHeight, max(rosterBaseRowHeight, h)))
}

func estimateLines(text string, perLine int) int {
	if text == "" {
		return 0
	}
	explicit := strings.Count(text, "\n") + 1
	wrapped := int(math.Ceil(float64(utf8.RuneCountInString(text)) / float64(perLine)))
	return max(explicit, wrapped)
}

func cellText(row []any, col int) string {
	if col >= len(row) {
		return ""
	}
	s, _ := row[col].(string)
	return s
}

// SplitAddress treats the first whitespace-separated token as the zipcode and the
// rest as the road address.
func SplitAddress(address string) (zipcode, road string) {
	fields := strings.Fields(address)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// RosterFileName names the download for a group's roster.
func RosterFileName(group models.Group, now time.Time) string {
	name := strings.TrimSpace(group.Name)
	if name == "" {
		name = "대상자"
	}
	return fmt.Sprintf("%s_명단_%s.xlsx", name, now.Format("2006-01-02"))
}

// WriteRosterXLSX serializes sheet as an xlsx workbook.
func WriteRosterXLSX(sheet SheetModel, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	name := sheet.Name
	if name == "" {
		name = RosterSheetName
	}
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	styleIDs := make(map[CellStyle]int)
	styleID := func(cs CellStyle) (int, error) {
		if id, ok := styleIDs[cs]; ok {
			return id, nil
		}
		id, err := f.NewStyle(excelStyle(cs))
		if err != nil {
			return 0, err
		}
		styleIDs[cs] = id
		return id, nil
	}

	for c, width := range sheet.ColumnWidths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(name, col, col, width); err != nil {
			return fmt.Errorf("set width of column %s: %w", col, err)
		}
	}

	for r, row := range sheet.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(name, cell, value); err != nil {
				return fmt.Errorf("set %s: %w", cell, err)
			}
			cs, ok := sheet.CellStyles[CellRef{Row: r, Col: c}]
			if !ok {
				continue
			}
			id, err := styleID(cs)
			if err != nil {
				return fmt.Errorf("create style: %w", err)
			}
			if err := f.SetCellStyle(name, cell, cell, id); err != nil {
				return fmt.Errorf("style %s: %w", cell, err)
			}
		}
	}

	for r, height := range sheet.RowHeights {
		if err := f.SetRowHeight(name, r+1, height); err != nil {
			return fmt.Errorf("set height of row %d: %w", r+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func excelStyle(cs CellStyle) *excelize.Style {
	style := &excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: cs.Horizontal,
			Vertical:   cs.Vertical,
			WrapText:   cs.WrapText,
		},
	}
	if cs.Border == "thin" {
		for _, side := range []string{"left", "top", "right", "bottom"} {
			style.Border = append(style.Border, excelize.Border{Type: side, Color: "000000", Style: 1})
		}
	}
	return style
}
