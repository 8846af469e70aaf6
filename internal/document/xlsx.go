package document

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildBillXLSX renders the statement as a workbook: one summary sheet and
// one sheet of line items, for back-office reconciliation.
func BuildBillXLSX(data BillData) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	itemsSheet := "items"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, fmt.Errorf("create items sheet: %w", err)
	}

	_ = f.SetCellValue(summarySheet, "A1", data.Hospital.Name)
	_ = f.SetCellValue(summarySheet, "A2", "Patient Statement")
	_ = f.SetCellValue(summarySheet, "A4", "Patient")
	_ = f.SetCellValue(summarySheet, "B4", fmt.Sprintf("%s (%s)", data.Patient.Name, data.Patient.PatientID))
	_ = f.SetCellValue(summarySheet, "A5", "Generated")
	_ = f.SetCellValue(summarySheet, "B5", data.GeneratedAt)
	_ = f.SetCellValue(summarySheet, "A7", "Total Charges")
	_ = f.SetCellValue(summarySheet, "B7", data.Summary.TotalCharges)
	_ = f.SetCellValue(summarySheet, "A8", "Total Payments")
	_ = f.SetCellValue(summarySheet, "B8", data.Summary.TotalPayments)
	_ = f.SetCellValue(summarySheet, "A9", "Total Discounts")
	_ = f.SetCellValue(summarySheet, "B9", data.Summary.TotalDiscounts)
	_ = f.SetCellValue(summarySheet, "A10", "Balance")
	_ = f.SetCellValue(summarySheet, "B10", data.Summary.Balance)
	if data.Degraded {
		_ = f.SetCellValue(summarySheet, "A12", "Receipt numbers pending reconciliation (numbering service was unreachable)")
	}

	headers := []string{"Date", "Receipt No.", "Type", "Description", "Doctor", "Qty", "Rate", "Amount"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(itemsSheet, cell, h)
	}
	for i, ev := range data.Events {
		row := i + 2
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("A%d", row), ev.DisplayDate)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("B%d", row), ev.ReceiptNumber)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("C%d", row), string(ev.Type))
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("D%d", row), ev.Description)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("E%d", row), ev.DoctorName)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("F%d", row), ev.Quantity)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("G%d", row), ev.UnitRate)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("H%d", row), ev.Amount)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("build statement xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
