package checkout

import "errors"

// Taxonomie d'erreurs de l'orchestrateur. Les handlers HTTP les traduisent
// en codes 4xx/5xx ; les implémentations de stores les retournent telles
// quelles pour que errors.Is fonctionne de bout en bout.
var (
	ErrServiceNotFound  = errors.New("service not found")
	ErrInvalidTier      = errors.New("invalid package type for this service")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrNotConfigured    = errors.New("payment gateway is not configured")
	ErrSignatureInvalid = errors.New("payment signature verification failed")
	ErrOrderNotFound    = errors.New("order not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrAlreadyProcessed = errors.New("order has already been processed")
	ErrEmailTaken       = errors.New("email already registered")
	ErrDuplicateOrderID = errors.New("order id already exists")
	ErrGateway          = errors.New("payment gateway error")
)
