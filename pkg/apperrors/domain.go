package apperrors

import (
	"net/http"
)

/*
Factories and predefined variables for the payment/subscription domain.
*/

// ErrNotFound converts a repository "record not found" into a 404
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrWalletUnavailable - the external wallet binary is missing or not
// executable. Surfaced as a configuration error with a remediation hint;
// never retried automatically.
func ErrWalletUnavailable(err error) *AppError {
	return Wrap(err, CodeWalletUnavailable, "payment",
		"Lightning wallet CLI is not available. Install and configure the wallet binary on the server.",
		http.StatusInternalServerError)
}

// ErrInvoiceCreationFailed - the wallet ran but returned unparseable or
// sentinel output. The raw process output goes into Details for diagnostics.
func ErrInvoiceCreationFailed(err error, rawOutput string) *AppError {
	return Wrap(err, CodeInvoiceCreationFailed, "payment",
		"Failed to create payment invoice",
		http.StatusInternalServerError).
		WithDetails(map[string]string{"raw_output": rawOutput})
}

// ErrMissingPaymentFields - amount or planId absent from the request
var ErrMissingPaymentFields = New(
	CodeInvalidRequest,
	"payment",
	"Amount and planId are required",
	http.StatusBadRequest,
)

// ErrMissingUserID - caller identity absent from the request
var ErrMissingUserID = New(
	CodeUnauthorized,
	"payment",
	"User identity is required to create an invoice",
	http.StatusUnauthorized,
)

// ErrUnknownPlan - planId does not match any catalog plan
var ErrUnknownPlan = New(
	CodeInvalidRequest,
	"payment",
	"Unknown subscription plan",
	http.StatusBadRequest,
)
