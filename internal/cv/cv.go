package cv

import (
	"bytes"
	"fmt"

	"github.com/frahmantamala/talento-plus/internal/employee"
	"github.com/go-pdf/fpdf"
)

const (
	pageMargin   = 15.0
	sidebarWidth = 60.0
	footerText   = "Generado automáticamente por TalentoPlus"
)

var statusLabels = map[employee.Status]string{
	employee.StatusActive:     "Activo",
	employee.StatusInactive:   "Inactivo",
	employee.StatusOnVacation: "Vacaciones",
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// Render lays out the employee's résumé as a one-page A4 PDF.
func Render(emp *employee.EmployeeResponse) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(tr(emp.FullName), false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pageMargin)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("%s - %d", footerText, pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pageMargin

	// Header band
	pdf.SetFillColor(21, 67, 140)
	pdf.Rect(0, 0, pageW, 35, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(pageMargin, 8)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(contentW, 10, tr(emp.FullName), "", 1, "L", false, 0, "")
	pdf.SetX(pageMargin)
	pdf.SetFont("Helvetica", "", 13)
	pdf.CellFormat(contentW, 8, tr(orNA(emp.JobTitle)), "", 1, "L", false, 0, "")

	top := 45.0
	pdf.SetTextColor(0, 0, 0)

	// Personal and contact data on the left
	left := []struct{ label, value string }{
		{"Documento", emp.Document},
		{"Fecha de nacimiento", emp.BirthDate.Format("02/01/2006")},
		{"Email", emp.Email},
		{"Teléfono", emp.Phone},
		{"Dirección", emp.Address},
	}
	pdf.SetXY(pageMargin, top)
	section(pdf, tr, sidebarWidth, "Datos personales")
	for _, item := range left {
		pdf.SetX(pageMargin)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(sidebarWidth, 5, tr(item.label), "", 1, "L", false, 0, "")
		pdf.SetX(pageMargin)
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(sidebarWidth, 5, tr(orNA(item.value)), "", "L", false)
		pdf.Ln(2)
	}

	// Profile and corporate data on the right
	mainX := pageMargin + sidebarWidth + 8
	mainW := contentW - sidebarWidth - 8
	pdf.SetXY(mainX, top)
	section(pdf, tr, mainW, "Perfil profesional")
	pdf.SetX(mainX)
	pdf.SetFont("Helvetica", "", 10)
	summary := emp.ProfessionalSummary
	if summary == "" {
		summary = "Sin perfil registrado."
	}
	pdf.MultiCell(mainW, 5, tr(summary), "", "J", false)
	pdf.Ln(6)

	pdf.SetX(mainX)
	section(pdf, tr, mainW, "Información corporativa")
	corporate := []struct{ label, value string }{
		{"Departamento", orNA(emp.Department)},
		{"Fecha de ingreso", emp.HireDate.Format("02/01/2006")},
		{"Salario actual", "$ " + emp.Salary.StringFixed(2)},
		{"Nivel educativo", orNA(emp.EducationLevel)},
		{"Estado", orNA(statusLabels[emp.Status])},
	}
	for _, item := range corporate {
		pdf.SetX(mainX)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(mainW*0.45, 6, tr(item.label+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(mainW*0.55, 6, tr(item.value), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("cv: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *fpdf.Fpdf, tr func(string) string, width float64, title string) {
	x := pdf.GetX()
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(21, 67, 140)
	pdf.CellFormat(width, 7, tr(title), "", 1, "L", false, 0, "")
	pdf.SetDrawColor(21, 67, 140)
	pdf.Line(x, pdf.GetY(), x+width, pdf.GetY())
	pdf.Ln(2)
	pdf.SetTextColor(0, 0, 0)
}
