package signature_test

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/epi-control/internal/domain/signature"
)

func basePayload() signature.Payload {
	return signature.Payload{
		EmployeeID:    "col-1",
		EquipmentID:   "epi-1",
		IssueDate:     time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		Quantity:      2,
		ActorID:       "usr-admin",
		Timestamp:     time.Date(2026, 10, 18, 13, 45, 10, 123000000, time.UTC),
		Device:        "Mozilla/5.0",
		SourceAddress: "10.0.0.7",
	}
}

func TestCanonical_FormatoEstavel(t *testing.T) {
	b, err := basePayload().Canonical()
	require.NoError(t, err)
	assert.Equal(t,
		`{"confirmacao":true,"colaboradorId":"col-1","epiId":"epi-1","dataEntrega":"2026-10-18",`+
			`"quantidade":2,"actorId":"usr-admin","assinaturaTimestamp":"2026-10-18T13:45:10.123Z",`+
			`"assinaturaDevice":"Mozilla/5.0","assinaturaIp":"10.0.0.7"}`,
		string(b))
}

func TestCompute_EhSha256DoCanonico(t *testing.T) {
	p := basePayload()
	b, err := p.Canonical()
	require.NoError(t, err)
	sum := sha256.Sum256(b)

	h, err := signature.Compute(p)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(sum[:]), h)
	assert.Len(t, h, 64)
}

func TestVerify_IdaEVolta(t *testing.T) {
	p := basePayload()
	h, err := signature.Compute(p)
	require.NoError(t, err)

	ok, err := signature.Verify(p, h)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_QualquerAdulteracaoMudaOHash(t *testing.T) {
	h, err := signature.Compute(basePayload())
	require.NoError(t, err)

	tampers := map[string]func(*signature.Payload){
		"colaborador": func(p *signature.Payload) { p.EmployeeID = "col-2" },
		"epi":         func(p *signature.Payload) { p.EquipmentID = "epi-2" },
		"data":        func(p *signature.Payload) { p.IssueDate = p.IssueDate.AddDate(0, 0, 1) },
		"quantidade":  func(p *signature.Payload) { p.Quantity = 3 },
		"ator":        func(p *signature.Payload) { p.ActorID = "usr-2" },
		"timestamp":   func(p *signature.Payload) { p.Timestamp = p.Timestamp.Add(time.Millisecond) },
		"device":      func(p *signature.Payload) { p.Device = "curl/8" },
		"ip":          func(p *signature.Payload) { p.SourceAddress = "10.0.0.8" },
	}
	for name, tamper := range tampers {
		t.Run(name, func(t *testing.T) {
			p := basePayload()
			tamper(&p)
			ok, err := signature.Verify(p, h)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestNow_TruncaEmMilissegundos(t *testing.T) {
	ts := signature.Now()
	assert.Equal(t, 0, ts.Nanosecond()%int(time.Millisecond))
	assert.Equal(t, time.UTC, ts.Location())
}
