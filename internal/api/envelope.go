package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/secondbrain/brain-client/internal/http/response"
)

// EnvelopeTransformer wraps successful huma bodies in the same envelope the
// hand-written JSON handlers use. Error bodies pass through untouched.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if !strings.HasPrefix(status, "2") || v == nil {
		return v, nil
	}
	if _, ok := v.(*APIError); ok {
		return v, nil
	}
	return response.Envelope{Success: true, Data: v}, nil
}
