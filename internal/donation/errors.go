package donation

// Error is a donation-flow failure carrying the fixed user-facing message for
// that condition. The underlying cause is logged, never exposed.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

var (
	// ErrCreatorNotSpecified is returned when the request names no creator.
	ErrCreatorNotSpecified = &Error{
		Code:    "creator_not_specified",
		Message: "Criador Não Encontrado",
	}

	// ErrCreatorNotFound is returned when no creator owns the given connected
	// account.
	ErrCreatorNotFound = &Error{
		Code:    "creator_not_found",
		Message: "Erro ao procurar o criador",
	}

	// ErrAccountNotVerified is returned while the creator's connected account
	// still lacks an active transfers capability. The donor can retry later.
	ErrAccountNotVerified = &Error{
		Code:    "account_not_verified",
		Message: "A conta do criador ainda não está completamente verificada. Tente novamente mais tarde.",
	}

	// ErrPaymentCreation is the catch-all for persistence or provider
	// failures during orchestration.
	ErrPaymentCreation = &Error{
		Code:    "payment_creation_failed",
		Message: "Erro ao criar o pagamento. Tente novamente.",
	}
)

func newValidationError(field, message string) *Error {
	return &Error{Code: "invalid_" + field, Message: message}
}
