// Package pdf gera o comprovante de entrega de EPI.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  CABEÇALHO: Comprovante de entrega │ Nº entrega + data       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COLABORADOR: nome + id                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Qtd | EPI | CA | Validade                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  OBSERVAÇÕES                                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ASSINATURA: hash + carimbo + dispositivo/IP + QR            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/epi-control/internal/application/ports"
	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/domain/signature"
)

var _ ports.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 94, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 180, Green: 20, Blue: 20}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa ports.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	company string
}

// NewMarotoReceiptGenerator constrói o gerador; company aparece no cabeçalho.
func NewMarotoReceiptGenerator(company string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{company: company}
}

// GenerateReceiptPDF gera o PDF e devolve seus bytes. verified indica se o hash
// recalculado confere com o gravado.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, iss *entity.Issuance, verified bool) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprovante de entrega de EPI", true).
		WithAuthor(nonEmpty(g.company, "Controle de EPIs"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, iss))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(employeeRow(iss))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRow(iss))

	if iss.Notes != "" {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(notesRow(iss.Notes))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(signatureRows(iss, verified)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

func headerRow(company string, iss *entity.Issuance) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(company, "Controle de EPIs"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprovante de entrega de EPI", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ENTREGA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(iss.ID, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+iss.IssueDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func employeeRow(iss *entity.Issuance) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("COLABORADOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(iss.EmployeeName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Matrícula: "+iss.EmployeeID, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd.", 1, align.Center),
		h("Equipamento", 6, align.Left),
		h("CA", 2, align.Center),
		h("Validade", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func itemRow(iss *entity.Issuance) core.Row {
	return row.New(7).Add(
		col.New(1).Add(text.New(fmt.Sprintf("%d", iss.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(6).Add(text.New(iss.EquipmentName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New(iss.EquipmentCA, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(3).Add(text.New(iss.ExpiryDate.Format("02/01/2006"), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func notesRow(notes string) core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New("OBSERVAÇÕES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(notes, props.Text{Size: 8, Top: 6, Color: colorGray}),
	))
}

// signatureRows hash partido + carimbo + QR com o hash para conferência.
func signatureRows(iss *entity.Issuance, verified bool) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("ASSINATURA ELETRÔNICA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New("Hash SHA-256:", props.Text{Style: fontstyle.Bold, Size: 7, Top: 1}),
		)),
	}
	for _, chunk := range splitEvery(iss.SignatureHash, 64) {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(chunk, props.Text{Size: 7, Color: colorGray, Top: 0.5, Left: 2}),
		)))
	}

	status, statusColor := "Assinatura conferida", colorPrimary
	if !verified {
		status, statusColor = "ATENÇÃO: o hash não confere com os dados gravados", colorAlert
	}

	rows = append(rows, row.New(3), row.New(45).Add(
		col.New(4).Add(code.NewQr(QRContent(iss), props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Carimbo: "+signature.FormatTimestamp(iss.SignatureTimestamp), props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Dispositivo: "+iss.SignatureDevice, props.Text{
				Size: 7, Top: 10, Left: 3, Color: colorGray,
			}),
			text.New("IP: "+iss.SignatureIP+"   |   Registrado por: "+iss.CreatedBy, props.Text{
				Size: 7, Top: 16, Left: 3, Color: colorGray,
			}),
			text.New(status, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 26, Left: 3, Color: statusColor,
			}),
		),
	))

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"O colaborador declara ter recebido o equipamento acima, em perfeitas condições, "+
				"e ter sido orientado sobre seu uso correto (NR-6).",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))
	return rows
}

// QRContent texto codificado no QR do comprovante.
func QRContent(iss *entity.Issuance) string {
	return "entrega:" + iss.ID + ":" + iss.SignatureHash
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// splitEvery divide s em pedaços de no máximo n caracteres.
func splitEvery(s string, n int) []string {
	var parts []string
	for len(s) > n {
		parts = append(parts, s[:n])
		s = s[n:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
