package document

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// BuildBillPDF renders the statement as a PDF for archival and email.
// Amounts use "Rs" because the core PDF fonts have no rupee glyph.
func BuildBillPDF(data BillData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, data.Hospital.Name)
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 5, data.Hospital.Address)
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, "Patient Statement")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Patient: %s (%s)", data.Patient.Name, data.Patient.PatientID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", data.GeneratedAt))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(28, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(34, 6, "Receipt No.", "1", 0, "C", false, 0, "")
	pdf.CellFormat(70, 6, "Description", "1", 0, "C", false, 0, "")
	pdf.CellFormat(12, 6, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(22, 6, "Rate", "1", 0, "C", false, 0, "")
	pdf.CellFormat(24, 6, "Amount", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, ev := range data.Events {
		desc := ev.Title
		if ev.Description != "" {
			desc += " - " + ev.Description
		}
		if len(desc) > 44 {
			desc = desc[:41] + "..."
		}
		pdf.CellFormat(28, 6, ev.DisplayDate, "1", 0, "L", false, 0, "")
		pdf.CellFormat(34, 6, ev.ReceiptNumber, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 6, desc, "1", 0, "L", false, 0, "")
		pdf.CellFormat(12, 6, fmt.Sprintf("%d", ev.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(22, 6, fmt.Sprintf("%.2f", ev.UnitRate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(24, 6, fmt.Sprintf("%.2f", ev.Amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total Charges: Rs %.2f", data.Summary.TotalCharges))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Payments: Rs %.2f", data.Summary.TotalPayments))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Discounts: Rs %.2f", data.Summary.TotalDiscounts))
	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 10)
	label := "Balance Due"
	if data.Summary.Balance < 0 {
		label = "Refund Due to Patient"
	}
	pdf.Cell(0, 6, fmt.Sprintf("%s: Rs %.2f", label, data.Summary.Balance))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("build statement pdf: %w", err)
	}
	return buf.Bytes(), nil
}
