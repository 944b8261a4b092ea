package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/epi-control/internal/domain/entity"
)

func sampleIssuance() *entity.Issuance {
	return &entity.Issuance{
		ID:                 "ent-1",
		EmployeeID:         "col-1",
		EmployeeName:       "Maria Souza",
		EquipmentID:        "epi-1",
		EquipmentName:      "Luva nitrílica",
		EquipmentCA:        "12345",
		IssueDate:          time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		ExpiryDate:         time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Quantity:           2,
		Notes:              "Troca semestral",
		SignatureHash:      "3f2a9c0d4b1e8f7a6c5d4e3f2a1b0c9d8e7f6a5b4c3d2e1f0a9b8c7d6e5f4a3b",
		SignatureDevice:    "Mozilla/5.0",
		SignatureIP:        "10.0.0.1",
		SignatureTimestamp: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		CreatedBy:          "u-1",
	}
}

func TestGenerateReceiptPDF(t *testing.T) {
	g := NewMarotoReceiptGenerator("Construtora Exemplo")

	doc, err := g.GenerateReceiptPDF(context.Background(), sampleIssuance(), true)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestGenerateReceiptPDF_Unverified(t *testing.T) {
	iss := sampleIssuance()
	iss.Notes = ""

	doc, err := NewMarotoReceiptGenerator("").GenerateReceiptPDF(context.Background(), iss, false)
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}

func TestSplitEvery(t *testing.T) {
	assert.Equal(t, []string{"abc", "def", "g"}, splitEvery("abcdefg", 3))
	assert.Nil(t, splitEvery("", 3))
	assert.Equal(t, "entrega:ent-1:"+sampleIssuance().SignatureHash, QRContent(sampleIssuance()))
}
