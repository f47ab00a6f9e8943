package infra

// pdf.go — Resumen de aprobación en PDF con go-pdf/fpdf.
// Se adjunta al mail que recibe el vendedor cuando su operación queda
// aprobada: datos del cliente, condiciones solicitadas y condiciones
// aprobadas lado a lado.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerarResumenOperacionPDF writes the approval summary for an operación.
// storagePath is created if missing; returns the path of the generated file.
func GenerarResumenOperacionPDF(op *model.Operacion, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("operacion_%d.pdf", op.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Mundo Prendarios", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Resumen de operación", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, fmt.Sprintf("Operación N° %d", op.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, op.CreatedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	colLabel := contentW * 0.4
	colValue := contentW * 0.6

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(colLabel, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(colValue, 6, value, "", 1, "L", false, 0, "")
	}

	// ── Cliente ──────────────────────────────────────────────────────────────
	if op.Cliente != nil {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, "Cliente", "", 1, "L", false, 0, "")
		row("Nombre:", op.Cliente.Apellido+", "+op.Cliente.Nombre)
		row("DNI:", op.Cliente.Dni)
		pdf.Ln(2)
	}

	// ── Condiciones solicitadas ──────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Condiciones solicitadas", "", 1, "L", false, 0, "")
	row("Monto:", "$"+op.Monto.StringFixed(2))
	row("Plazo:", fmt.Sprintf("%d meses", op.Meses))
	row("Tasa:", op.Tasa.StringFixed(2)+" %")
	if op.Plan != nil {
		row("Plan:", op.Plan.Nombre)
	}
	pdf.Ln(2)

	// ── Condiciones aprobadas ────────────────────────────────────────────────
	if op.FechaAprobacion != nil {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, "Condiciones aprobadas", "", 1, "L", false, 0, "")
		if op.MontoAprobado != nil {
			row("Monto aprobado:", "$"+op.MontoAprobado.StringFixed(2))
		}
		if op.MontoAprobadoBanco != nil {
			row("Monto aprobado banco:", "$"+op.MontoAprobadoBanco.StringFixed(2))
		}
		if op.MesesAprobados != nil {
			row("Plazo aprobado:", fmt.Sprintf("%d meses", *op.MesesAprobados))
		}
		if op.TasaAprobada != nil {
			row("Tasa aprobada:", op.TasaAprobada.StringFixed(2)+" %")
		}
		if op.CuotaInicialAprobada != nil {
			row("Cuota inicial:", "$"+op.CuotaInicialAprobada.StringFixed(2))
		}
		if op.CuotaPromedioAprobada != nil {
			row("Cuota promedio:", "$"+op.CuotaPromedioAprobada.StringFixed(2))
		}
		if op.PlanAprobadoNombre != nil {
			row("Plan aprobado:", *op.PlanAprobadoNombre)
		}
		if op.BancoAprobado != nil {
			row("Banco:", *op.BancoAprobado)
		}
		row("Fecha de aprobación:", op.FechaAprobacion.Format("02/01/2006"))
		pdf.Ln(2)
	}

	// ── Estado ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Estado", "", 1, "L", false, 0, "")
	row("Estado:", op.Estado)
	row("Dashboard:", op.EstadoDashboard)
	if op.FechaLiquidacion != nil {
		row("Fecha de liquidación:", op.FechaLiquidacion.Format("02/01/2006"))
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Documento generado automáticamente.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
