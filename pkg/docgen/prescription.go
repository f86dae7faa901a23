package docgen

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
)

// PrescriptionPDF renders a prescription into a single-page PDF.
func PrescriptionPDF(clinicName string, p *entity.Prescription, patient *entity.Patient, doctor *entity.Account) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(18, 18, 18)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 10, clinicName, "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 16)
	doc.CellFormat(0, 9, "Prescription Document", "", 1, "C", false, 0, "")
	doc.Ln(8)

	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 7, fmt.Sprintf("Doctor: Dr. %s", doctor.Name), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, fmt.Sprintf("Patient: %s", patient.Name), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, fmt.Sprintf("Date: %s", p.CreatedAt.Format("02 Jan 2006")), "", 1, "L", false, 0, "")
	doc.Ln(8)

	doc.SetFont("Helvetica", "BU", 14)
	doc.CellFormat(0, 8, "Medicines:", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 12)
	for i, med := range p.Medicines {
		doc.CellFormat(0, 7, fmt.Sprintf("%d. %s - %s", i+1, med.Name, med.Dose), "", 1, "L", false, 0, "")
	}
	doc.Ln(5)

	if p.Instructions != "" {
		doc.SetFont("Helvetica", "BU", 14)
		doc.CellFormat(0, 8, "Instructions:", "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 12)
		doc.MultiCell(0, 6, p.Instructions, "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
