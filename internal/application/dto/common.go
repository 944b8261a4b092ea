package dto

// Envelope corpo de toda resposta HTTP: {data, meta, error}.
type Envelope struct {
	Data  any            `json:"data"`
	Meta  map[string]any `json:"meta"`
	Error *ErrorResponse `json:"error"`
}

// ErrorResponse corpo de erro HTTP. Kind é a categoria estável; Code o motivo específico.
type ErrorResponse struct {
	Kind    string   `json:"kind"`
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// AuditListRequest parâmetros de GET /api/audit-logs.
type AuditListRequest struct {
	Limit int `query:"limit" validate:"min=0"`
}
