package panel

import (
	"errors"

	"github.com/studiowebux/metawrite/internal/executor"
)

const (
	// GenericErrorMessage is shown when the service fails without a usable detail
	GenericErrorMessage = "Errore nella generazione dell'articolo"

	// UnknownErrorMessage is shown when a failure carries no message at all
	UnknownErrorMessage = "Errore sconosciuto"
)

// FailureMessage maps a Generate error to the text shown to the user
func FailureMessage(err error) string {
	if err == nil {
		return UnknownErrorMessage
	}

	var apiErr *executor.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return GenericErrorMessage
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return UnknownErrorMessage
}
