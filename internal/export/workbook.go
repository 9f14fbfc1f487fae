package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/kaigoApp/kaigo-app/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	recordsSheet   = "Records"
	handoversSheet = "Handovers"
)

// RecordHeader 记录表表头
var RecordHeader = []string{
	"Resident", "Time", "Shift", "Author", "Scene", "Scene Note",
	"Temp AM", "BP AM", "Pulse AM", "SpO2 AM",
	"Temp PM", "BP PM", "Pulse PM", "SpO2 PM",
	"Breakfast", "Lunch", "Dinner", "Medication",
	"Patrols", "Note", "Shared", "Created At",
}

var recordWidths = []float64{
	16, 8, 8, 14, 12, 20,
	9, 10, 9, 9,
	9, 10, 9, 9,
	10, 10, 10, 22,
	40, 50, 8, 20,
}

// HandoverHeader 申し送り表表头
var HandoverHeader = []string{"Created At", "Resident", "Content", "Author", "From Record"}

var handoverWidths = []float64{20, 16, 60, 14, 12}

// FileName 下载文件名
func FileName(r *DailyReport) string {
	return fmt.Sprintf("kaigo_%d_%s.xlsx", r.Unit.UnitID, r.Date)
}

// BuildWorkbook 生成 xlsx 字节流
func BuildWorkbook(r *DailyReport) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo 之前文件必须保持打开

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create wrap style: %w", err)
	}

	recordRows := make([][]any, 0, len(r.Records))
	for _, rec := range r.Records {
		recordRows = append(recordRows, recordRow(r, rec))
	}
	handoverRows := make([][]any, 0, len(r.Handovers))
	for _, h := range r.Handovers {
		handoverRows = append(handoverRows, handoverRow(r, h))
	}

	sheets := []struct {
		name    string
		headers []string
		widths  []float64
		rows    [][]any
		wrapCol string
	}{
		{recordsSheet, RecordHeader, recordWidths, recordRows, "T"},
		{handoversSheet, HandoverHeader, handoverWidths, handoverRows, "C"},
	}
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet: %w", err)
		}
		if err := writeSheet(f, s.name, s.headers, s.widths, s.rows, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
		if len(s.rows) > 0 {
			last := fmt.Sprintf("%s%d", s.wrapCol, len(s.rows)+1)
			if err := f.SetCellStyle(s.name, s.wrapCol+"2", last, wrapStyle); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set wrap style: %w", err)
			}
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, widths []float64, rows [][]any, headerStyle int) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if col < len(widths) {
			if err := f.SetColWidth(sheet, name, name, widths[col]); err != nil {
				return fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	// 冻结表头
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}
	return nil
}

func recordRow(r *DailyReport, rec *domain.Record) []any {
	timeText := ""
	if rec.Time != nil {
		timeText = rec.Time.String()
	}
	return []any{
		r.ResidentName(rec.ResidentID),
		timeText,
		rec.Shift,
		rec.AuthorName,
		rec.Scene,
		rec.SceneNote,
		temp(rec.VitalsAM.Temperature), bp(rec.VitalsAM), num(rec.VitalsAM.Pulse), num(rec.VitalsAM.SpO2),
		temp(rec.VitalsPM.Temperature), bp(rec.VitalsPM), num(rec.VitalsPM.Pulse), num(rec.VitalsPM.SpO2),
		meal(rec.Meals.Breakfast), meal(rec.Meals.Lunch), meal(rec.Meals.Dinner),
		medication(rec.Medication),
		patrols(rec.Patrols),
		rec.Note,
		yesNo(rec.Share),
		rec.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func handoverRow(r *DailyReport, h *domain.HandoverEntry) []any {
	resident := "All"
	if h.ResidentID != nil {
		resident = r.ResidentName(*h.ResidentID)
	}
	source := ""
	if h.SourceRecordID != nil {
		source = fmt.Sprintf("#%d", *h.SourceRecordID)
	}
	return []any{h.CreatedAt.Format("2006-01-02 15:04:05"), resident, h.Content, h.AuthorName, source}
}

// 未测定的单元格留空（nil 不写入）
func temp(v *float64) any {
	if v == nil {
		return nil
	}
	return fmt.Sprintf("%.1f", *v)
}

func num(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func bp(v domain.Vitals) any {
	if v.Systolic == nil && v.Diastolic == nil {
		return nil
	}
	part := func(p *int) string {
		if p == nil {
			return "-"
		}
		return fmt.Sprint(*p)
	}
	return part(v.Systolic) + "/" + part(v.Diastolic)
}

func meal(m domain.Meal) any {
	if !m.Done {
		return "-"
	}
	return fmt.Sprintf("%d/10", m.Score)
}

func medication(m domain.Medication) string {
	var slots []string
	for _, s := range []struct {
		on   bool
		name string
	}{
		{m.Morning, "morning"}, {m.Noon, "noon"}, {m.Evening, "evening"}, {m.Bedtime, "bedtime"},
	} {
		if s.on {
			slots = append(slots, s.name)
		}
	}
	return strings.Join(slots, ", ")
}

func patrols(ps []domain.Patrol) string {
	lines := make([]string, 0, len(ps))
	for _, p := range ps {
		parts := []string{fmt.Sprintf("#%d", p.PatrolNo)}
		if p.Time != nil {
			parts = append(parts, p.Time.String())
		}
		if p.Status != "" {
			parts = append(parts, p.Status)
		}
		if p.Intervened {
			parts = append(parts, "intervened")
		}
		if p.DoorOpened {
			parts = append(parts, "door opened")
		}
		if len(p.SafetyChecks) > 0 {
			parts = append(parts, "["+strings.Join(p.SafetyChecks, ", ")+"]")
		}
		if p.Memo != "" {
			parts = append(parts, p.Memo)
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
