package usecase


type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}


func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}


type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}


func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}


// Códigos usados pelo store e pelo pipeline de importação.
const (
	CodeAuthRequired = "AUTH_REQUIRED"
	CodeSyncError    = "SYNC_ERROR"
	CodeParseError   = "PARSE_ERROR"
	CodeReadError    = "READ_ERROR"
)


// ErrAuthRequired: operação que exige usuário logado foi chamada sem sessão.
func ErrAuthRequired() *DomainError {
	return &DomainError{
		Code:    CodeAuthRequired,
		Message: "usuário não autenticado",
	}
}


// ErrSync embala o erro do adapter remoto preservando a mensagem original
// (o chamador enxerga exatamente o que o servidor respondeu).
func ErrSync(err error) *TechnicalError {
	return &TechnicalError{
		Code:    CodeSyncError,
		Message: err.Error(),
	}
}


func ErrParse(err error) *DomainError {
	return &DomainError{
		Code:    CodeParseError,
		Message: "falha ao processar a planilha: " + err.Error(),
	}
}


func ErrRead(err error) *TechnicalError {
	return &TechnicalError{
		Code:    CodeReadError,
		Message: "falha ao ler o arquivo: " + err.Error(),
	}
}


func ErrorCode(err error) string {
	switch e := err.(type) {
	case *DomainError:
		return e.Code
	case *TechnicalError:
		return e.Code
	}
	return ""
}
