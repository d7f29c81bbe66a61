package constant

// System-level codes (0/1xxx)
const (
	CodeSuccess       = 0
	CodeBadRequest    = 1000
	CodeInternalError = 1001
	CodeNotFound      = 1002
)

// Order codes (2xxx)
const (
	CodeOrderNotFound      = 2100
	CodeOrderAmountInvalid = 2103
)

// Customer codes (23xx)
const (
	CodeCustomerNotFound      = 2300
	CodeCustomerAlreadyExists = 2301
)

// Vault codes (24xx)
const (
	CodeVaultTokenNotFound = 2400
)

// Provider codes (25xx)
const (
	CodeProviderCommunication = 2500
	CodeProviderMalformed     = 2501
)
