package llm

import (
	stderrors "errors"
	"net"
	"net/url"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"github.com/benjipeng/promptrun/internal/errors"
)

// classifyProviderError maps SDK and transport errors onto the error
// classes callers dispatch on: auth (bad or missing credential), model
// (unrecognized identifier), network (transport failure). Anything else
// is wrapped as internal with the cause preserved.
func classifyProviderError(err error, message string) *errors.Error {
	if err == nil {
		return nil
	}

	if status, ok := httpStatus(err); ok {
		switch {
		case status == 401 || status == 403:
			return errors.WrapAuth(err, message)
		case status == 404:
			return errors.WrapModel(err, message)
		case status == 429 || status >= 500:
			return errors.NetworkError(err, message)
		}
	}

	var urlErr *url.Error
	if stderrors.As(err, &urlErr) {
		return errors.NetworkError(err, message)
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return errors.NetworkError(err, message)
	}

	return errors.Wrap(err, errors.ErrorTypeInternal, errors.SeverityCritical, message)
}

// httpStatus extracts the HTTP status code from provider SDK errors
func httpStatus(err error) (int, bool) {
	var gemErr genai.APIError
	if stderrors.As(err, &gemErr) {
		return gemErr.Code, true
	}
	var gemErrPtr *genai.APIError
	if stderrors.As(err, &gemErrPtr) {
		return gemErrPtr.Code, true
	}

	var oaiAPIErr *openai.APIError
	if stderrors.As(err, &oaiAPIErr) {
		return oaiAPIErr.HTTPStatusCode, true
	}
	var oaiReqErr *openai.RequestError
	if stderrors.As(err, &oaiReqErr) {
		return oaiReqErr.HTTPStatusCode, true
	}

	return 0, false
}
