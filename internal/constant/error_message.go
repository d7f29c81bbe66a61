package constant

// ErrorMessages maps registered codes to caller-safe messages. Internal
// detail never appears here.
var ErrorMessages = map[int]string{
	CodeSuccess:       "success",
	CodeBadRequest:    "invalid request",
	CodeInternalError: "internal server error",
	CodeNotFound:      "resource not found",

	CodeOrderNotFound:      "order not found",
	CodeOrderAmountInvalid: "order amount is invalid",

	CodeCustomerNotFound:      "customer not found",
	CodeCustomerAlreadyExists: "customer already exists",

	CodeVaultTokenNotFound: "vault payment method not found",

	CodeProviderCommunication: "payment provider communication error",
	CodeProviderMalformed:     "payment provider returned an unexpected response",
}
