// Package signature calcula o hash de integridade (não-repúdio) de uma entrega de EPI.
//
// O payload canônico é um JSON com campos em ordem fixa:
//
//	confirmacao, colaboradorId, epiId, dataEntrega, quantidade, actorId,
//	assinaturaTimestamp, assinaturaDevice, assinaturaIp
//
// e o hash é SHA-256 em hexadecimal minúsculo.
package signature

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout formato das datas de calendário no payload.
const DateLayout = "2006-01-02"

// TimestampLayout formato do carimbo de tempo (UTC, milissegundos).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Payload campos canônicos assinados.
type Payload struct {
	EmployeeID    string
	EquipmentID   string
	IssueDate     time.Time
	Quantity      int
	ActorID       string
	Timestamp     time.Time
	Device        string
	SourceAddress string
}

// canonical a ordem dos campos deste struct é a ordem serializada; não reordenar.
type canonical struct {
	Confirmation  bool   `json:"confirmacao"`
	EmployeeID    string `json:"colaboradorId"`
	EquipmentID   string `json:"epiId"`
	IssueDate     string `json:"dataEntrega"`
	Quantity      int    `json:"quantidade"`
	ActorID       string `json:"actorId"`
	Timestamp     string `json:"assinaturaTimestamp"`
	Device        string `json:"assinaturaDevice"`
	SourceAddress string `json:"assinaturaIp"`
}

// Canonical serializa o payload na forma assinada.
func (p Payload) Canonical() ([]byte, error) {
	b, err := json.Marshal(canonical{
		Confirmation:  true,
		EmployeeID:    p.EmployeeID,
		EquipmentID:   p.EquipmentID,
		IssueDate:     p.IssueDate.Format(DateLayout),
		Quantity:      p.Quantity,
		ActorID:       p.ActorID,
		Timestamp:     FormatTimestamp(p.Timestamp),
		Device:        p.Device,
		SourceAddress: p.SourceAddress,
	})
	if err != nil {
		return nil, fmt.Errorf("signature: serializar payload: %w", err)
	}
	return b, nil
}

// Compute devolve o hash SHA-256 hex do payload canônico.
func Compute(p Payload) (string, error) {
	b, err := p.Canonical()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// Verify recalcula o hash e compara com o armazenado.
func Verify(p Payload, stored string) (bool, error) {
	h, err := Compute(p)
	if err != nil {
		return false, err
	}
	return h == stored, nil
}

// Now carimbo de tempo truncado em milissegundos, para que o valor persistido
// (timestamptz guarda microssegundos) reproduza o mesmo hash.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// FormatTimestamp formata em UTC com milissegundos.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
