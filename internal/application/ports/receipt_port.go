package ports

import (
	"context"

	"github.com/jhoicas/epi-control/internal/domain/entity"
)

// ReceiptGenerator gera o comprovante de entrega em PDF.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, issuance *entity.Issuance, verified bool) ([]byte, error)
}
