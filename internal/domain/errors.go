package domain

import "errors"

// Kind classifica os erros numa taxonomia fechada e estável para os clientes.
type Kind string

const (
	KindValidation   Kind = "VALIDATION_ERROR" // entrada malformada, detectada antes de tocar o store
	KindBusinessRule Kind = "BUSINESS_ERROR"   // entrada válida que viola o estado do domínio
	KindAuth         Kind = "AUTH_ERROR"       // credencial ausente/inválida ou sem capacidade
	KindNotFound     Kind = "NOT_FOUND"
	KindInternal     Kind = "INTERNAL_ERROR"
)

// Error erro de domínio: Kind, código para máquinas e mensagem para humanos.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details []string
	Err     error
}

func (e *Error) Error() string {
	var inner *Error
	if e.Err == nil || errors.As(e.Err, &inner) {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Erros de domínio (sem dependências externas).
var (
	ErrInvalidInput      = &Error{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: "entrada inválida"}
	ErrSignatureRequired = &Error{Kind: KindValidation, Code: "SIGNATURE_REQUIRED", Message: "confirmação de assinatura é obrigatória"}
	ErrInvalidDateRange  = &Error{Kind: KindValidation, Code: "INVALID_DATE_RANGE", Message: "data de validade não pode ser anterior à entrega"}

	ErrInsufficientStock = &Error{Kind: KindBusinessRule, Code: "INSUFFICIENT_STOCK", Message: "estoque insuficiente"}
	ErrEmployeeNotFound  = &Error{Kind: KindBusinessRule, Code: "EMPLOYEE_NOT_FOUND", Message: "colaborador inexistente"}
	ErrEmployeeRetired   = &Error{Kind: KindBusinessRule, Code: "EMPLOYEE_INACTIVE", Message: "colaborador inativo"}
	ErrEquipmentNotFound = &Error{Kind: KindBusinessRule, Code: "EQUIPMENT_NOT_FOUND", Message: "EPI inexistente"}
	ErrEquipmentRetired  = &Error{Kind: KindBusinessRule, Code: "EQUIPMENT_INACTIVE", Message: "EPI inativo"}
	ErrDuplicate         = &Error{Kind: KindBusinessRule, Code: "DUPLICATE", Message: "recurso duplicado"}
	ErrDuplicateIssuance = &Error{Kind: KindBusinessRule, Code: "DUPLICATE_ISSUANCE", Message: "entrega já registrada com este id"}
	ErrConcurrentUpdate  = &Error{Kind: KindBusinessRule, Code: "CONCURRENT_UPDATE", Message: "conflito de concorrência, reenvie a operação"}

	ErrUnauthorized = &Error{Kind: KindAuth, Code: "AUTH_INVALID", Message: "não autenticado"}
	ErrForbidden    = &Error{Kind: KindAuth, Code: "FORBIDDEN", Message: "usuário sem permissão para esta ação"}

	ErrInvalidCredentials = &Error{Kind: KindAuth, Code: "AUTH_INVALID", Message: "usuário ou senha inválidos", Err: ErrUnauthorized}

	ErrNotFound = &Error{Kind: KindNotFound, Code: "NOT_FOUND", Message: "recurso não encontrado"}

	ErrInternal = &Error{Kind: KindInternal, Code: "INTERNAL_ERROR", Message: "erro interno"}
)

// Validation cria um erro de validação com detalhe (ex.: campos ausentes).
// errors.Is(err, ErrInvalidInput) continua verdadeiro.
func Validation(message string, details ...string) *Error {
	return &Error{Kind: KindValidation, Code: ErrInvalidInput.Code, Message: message, Details: details, Err: ErrInvalidInput}
}

// Internal envolve uma falha de armazenamento ou transporte.
func Internal(op string, err error) *Error {
	return &Error{Kind: KindInternal, Code: ErrInternal.Code, Message: op, Err: err}
}

// NotFound cria um NOT_FOUND com mensagem específica do recurso.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Code: ErrNotFound.Code, Message: message, Err: ErrNotFound}
}

// KindOf devolve o Kind do erro; qualquer erro desconhecido é interno.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// AsError normaliza qualquer erro para *Error (desconhecidos viram INTERNAL_ERROR).
func AsError(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return Internal("falha inesperada", err)
}
