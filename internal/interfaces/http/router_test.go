package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/epi-control/internal/application/audit"
	"github.com/jhoicas/epi-control/internal/application/auth"
	appcompliance "github.com/jhoicas/epi-control/internal/application/compliance"
	"github.com/jhoicas/epi-control/internal/application/issuance"
	"github.com/jhoicas/epi-control/internal/application/usecase"
	"github.com/jhoicas/epi-control/internal/domain/access"
	"github.com/jhoicas/epi-control/internal/domain/compliance"
	"github.com/jhoicas/epi-control/internal/infrastructure/memory"
	"github.com/jhoicas/epi-control/internal/infrastructure/metrics"
	"github.com/jhoicas/epi-control/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/epi-control/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/epi-control/pkg/jwt"
)

type server struct {
	app   *fiber.App
	store *memory.Store
	auth  *auth.AuthUseCase
}

func newServer(t *testing.T) *server {
	t.Helper()
	store := memory.New()
	policy := access.NewPolicy()
	m := metrics.New()
	clock := compliance.NewClock(time.UTC)
	trail := audit.NewTrail(store.Audit(), policy, m, nil)

	coord := issuance.NewCoordinator(issuance.Deps{
		Tx:        store,
		Employees: store.Employees(),
		Equipment: store.Equipment(),
		Issuances: store.Issuances(),
		Policy:    policy,
		Trail:     trail,
		Receipts:  pdf.NewMarotoReceiptGenerator("Construtora Teste"),
		Metrics:   m,
		Clock:     clock,
	})
	authUC := auth.NewAuthUseCase(store.Users(), policy, trail, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: 30, Issuer: testIssuer,
	})

	app := apphttp.NewApp(apphttp.ServerConfig{AppName: "epi-control-test"}, apphttp.RouterDeps{
		Employees:  usecase.NewEmployeeUseCase(store.Employees(), policy, trail, clock),
		Equipment:  usecase.NewEquipmentUseCase(store.Equipment(), policy, trail, clock),
		Reports:    usecase.NewReportUseCase(store.Reports(), store.Employees(), store.Equipment(), store.Issuances(), clock),
		Issuances:  coord,
		Compliance: appcompliance.NewScheduler(store, store.Employees(), store.Trainings(), store.Exams(), policy, trail, m, clock, nil),
		Trail:      trail,
		AuthUC:     authUC,
		Metrics:    m.Handler(),
		JWTSecret:  testJWTSecret,
	})
	return &server{app: app, store: store, auth: authUC}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *struct {
		Kind    string   `json:"kind"`
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	} `json:"error"`
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, "u-"+role, role, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (s *server) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	resp := s.raw(t, method, path, token, body)
	defer resp.Body.Close()
	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func (s *server) raw(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		buf, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", "EPI-Tablet/1.0")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func (s *server) seed(t *testing.T, stock int) {
	t.Helper()
	tec := bearer(t, "tecnico")
	status, env := s.do(t, http.MethodPost, "/api/colaboradores", tec, map[string]any{
		"id": "col-1", "nome": "Maria Souza", "funcao": "Soldadora", "setor": "Caldeiraria",
		"dataCadastro": "2026-01-10T08:00:00Z",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)

	status, env = s.do(t, http.MethodPost, "/api/epis", tec, map[string]any{
		"id": "epi-1", "nome": "Luva de raspa", "ca": "15532", "tipo": "Luva",
		"validadeCA": "2030-01-01", "estoque": stock, "estoqueMinimo": 1, "valorUnitario": "12.50",
		"dataCadastro": "2026-01-10T08:00:00Z",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
}

func issuanceBody(id string, qty int) map[string]any {
	return map[string]any{
		"id": id, "colaboradorId": "col-1", "epiId": "epi-1",
		"dataEntrega": "2026-03-10", "dataValidade": "2026-09-10",
		"quantidade": qty, "assinaturaDigital": true, "dataCadastro": "2026-03-10T12:00:00Z",
	}
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	status, env := s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"status":"ok"`)
}

func TestLoginEMe(t *testing.T) {
	s := newServer(t)
	_, err := s.auth.EnsureAdmin(context.Background(), "senha-forte-1")
	require.NoError(t, err)

	status, env := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "errada-123"})
	assert.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "AUTH_ERROR", env.Error.Kind)

	status, env = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "senha-forte-1"})
	require.Equal(t, http.StatusOK, status)
	login := decode[struct {
		Token string `json:"token"`
	}](t, env.Data)
	require.NotEmpty(t, login.Token)

	status, env = s.do(t, http.MethodGet, "/api/auth/me", "Bearer "+login.Token, nil)
	require.Equal(t, http.StatusOK, status)
	me := decode[struct {
		User struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
		Capabilities []string `json:"capabilities"`
	}](t, env.Data)
	assert.Equal(t, "admin", me.User.Username)
	assert.Equal(t, "admin", me.User.Role)
	assert.NotEmpty(t, me.Capabilities)
}

func TestRotaProtegidaSemToken(t *testing.T) {
	s := newServer(t)
	status, env := s.do(t, http.MethodGet, "/api/colaboradores", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "MISSING_TOKEN", env.Error.Code)
}

func TestFluxoDeEntrega(t *testing.T) {
	s := newServer(t)
	s.seed(t, 2)
	tec := bearer(t, "tecnico")

	status, env := s.do(t, http.MethodPost, "/api/entregas", tec, issuanceBody("ent-1", 2))
	require.Equal(t, http.StatusCreated, status, env.Error)
	receipt := decode[struct {
		ID   string `json:"id"`
		Hash string `json:"assinaturaHash"`
	}](t, env.Data)
	assert.Equal(t, "ent-1", receipt.ID)
	assert.Len(t, receipt.Hash, 64)

	status, env = s.do(t, http.MethodGet, "/api/epis/epi-1", tec, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, decode[struct {
		Stock int `json:"estoque"`
	}](t, env.Data).Stock)

	status, env = s.do(t, http.MethodPost, "/api/entregas", tec, issuanceBody("ent-2", 1))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INSUFFICIENT_STOCK", env.Error.Code)

	status, env = s.do(t, http.MethodGet, "/api/entregas/ent-1", tec, nil)
	require.Equal(t, http.StatusOK, status)
	got := decode[struct {
		Device string `json:"assinaturaDevice"`
		Name   string `json:"colaboradorNome"`
	}](t, env.Data)
	assert.Equal(t, "EPI-Tablet/1.0", got.Device)
	assert.Equal(t, "Maria Souza", got.Name)

	status, env = s.do(t, http.MethodGet, "/api/entregas/ent-1/verificacao", bearer(t, "leitura"), nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[struct {
		Valid bool `json:"valido"`
	}](t, env.Data).Valid)

	resp := s.raw(t, http.MethodGet, "/api/entregas/ent-1/comprovante", tec, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	pdfBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")))

	status, env = s.do(t, http.MethodGet, "/api/entregas?from=2026-03-01&to=2026-03-31", tec, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, env.Meta["total"])

	status, env = s.do(t, http.MethodGet, "/api/epis/estoque-baixo", tec, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, env.Meta["total"])

	metricsResp := s.raw(t, http.MethodGet, "/metrics", "", nil)
	defer metricsResp.Body.Close()
	text, err := io.ReadAll(metricsResp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(text), "epi_issuances_total 1")
	assert.Contains(t, string(text), `epi_issuances_rejected_total{kind="BUSINESS_ERROR"} 1`)
}

func TestEntrega_Validacao(t *testing.T) {
	s := newServer(t)
	s.seed(t, 5)
	tec := bearer(t, "tecnico")

	status, env := s.do(t, http.MethodPost, "/api/entregas", tec, map[string]any{"id": "ent-1"})
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Kind)
	assert.NotEmpty(t, env.Error.Details)

	status, env = s.do(t, http.MethodPost, "/api/entregas", tec, `{"id": `)
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Kind)

	body := issuanceBody("ent-1", 1)
	body["dataValidade"] = "2026-03-01"
	status, env = s.do(t, http.MethodPost, "/api/entregas", tec, body)
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_DATE_RANGE", env.Error.Code)
}

func TestPermissoesPorPapel(t *testing.T) {
	s := newServer(t)
	s.seed(t, 5)

	status, env := s.do(t, http.MethodPost, "/api/entregas", bearer(t, "leitura"), issuanceBody("ent-1", 1))
	assert.Equal(t, http.StatusForbidden, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	status, _ = s.do(t, http.MethodPost, "/api/entregas", bearer(t, "tecnico"), issuanceBody("ent-1", 1))
	require.Equal(t, http.StatusCreated, status)

	status, _ = s.do(t, http.MethodDelete, "/api/entregas/ent-1", bearer(t, "tecnico"), nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(t, http.MethodDelete, "/api/entregas/ent-1", bearer(t, "admin"), nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = s.do(t, http.MethodGet, "/api/entregas/ent-1", bearer(t, "admin"), nil)
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Kind)

	status, _ = s.do(t, http.MethodGet, "/api/audit-logs", bearer(t, "tecnico"), nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = s.do(t, http.MethodGet, "/api/audit-logs?limit=2", bearer(t, "admin"), nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, env.Meta["total"])

	status, _ = s.do(t, http.MethodGet, "/api/audit-logs?limit=dez", bearer(t, "admin"), nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestConformidadeERelatorios(t *testing.T) {
	s := newServer(t)
	s.seed(t, 4)
	tec := bearer(t, "tecnico")

	status, env := s.do(t, http.MethodPost, "/api/treinamentos", tec, map[string]any{
		"id": "tr-1", "colaboradorId": "col-1", "dataTreinamento": "2026-02-01",
		"proximoTreinamento": "2099-02-01", "tipo": "NR-35", "dataCadastro": "2026-02-01T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)

	status, env = s.do(t, http.MethodPost, "/api/exames", tec, map[string]any{
		"id": "ex-1", "colaboradorId": "col-x", "dataExame": "2026-02-01", "dataCadastro": "2026-02-01T10:00:00Z",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "EMPLOYEE_NOT_FOUND", env.Error.Code)

	status, env = s.do(t, http.MethodGet, "/api/treinamentos?colaboradorId=col-1", tec, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, env.Meta["total"])

	status, env = s.do(t, http.MethodGet, "/api/conformidade/resumo", tec, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"emDia":1`)

	status, env = s.do(t, http.MethodGet, "/api/dashboard/stats", tec, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"totalColaboradores":1`)

	status, env = s.do(t, http.MethodGet, "/api/relatorios/valorizacao", tec, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"valorTotal":"50"`)

	for _, path := range []string{"/api/relatorios/vencimentos", "/api/relatorios/por-setor", "/api/relatorios/conformidade"} {
		status, _ = s.do(t, http.MethodGet, path, tec, nil)
		assert.Equal(t, http.StatusOK, status, path)
	}
}

func TestRotaInexistente(t *testing.T) {
	s := newServer(t)
	status, env := s.do(t, http.MethodGet, "/nao-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Kind)
}
