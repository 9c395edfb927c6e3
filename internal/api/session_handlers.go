package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/secondbrain/brain-client/internal/notice"
)

func (s *Server) registerSessionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getSession",
		Method:      http.MethodGet,
		Path:        uiAPIPrefix + "/session",
		Summary:     "Session status",
		Description: "Reports whether a session token is stored",
		Tags:        []string{"Session"},
	}, s.handleGetSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "drainNotices",
		Method:      http.MethodGet,
		Path:        uiAPIPrefix + "/notices",
		Summary:     "Pending notices",
		Description: "Returns and clears the confirmations and alerts raised since the last call",
		Tags:        []string{"Session"},
	}, s.handleDrainNotices)
}

// SessionResponse describes the current session.
type SessionResponse struct {
	Authenticated bool `json:"authenticated" doc:"Whether a session token is stored"`
}

// SessionOutput wraps the session response for Huma.
type SessionOutput struct {
	Body SessionResponse
}

func (s *Server) handleGetSession(_ context.Context, _ *struct{}) (*SessionOutput, error) {
	return &SessionOutput{Body: SessionResponse{Authenticated: s.services.Session.IsAuthenticated()}}, nil
}

// NoticesResponse lists drained notices.
type NoticesResponse struct {
	Notices []notice.Notice `json:"notices" doc:"Notices in the order they were raised"`
}

// NoticesOutput wraps the notices response for Huma.
type NoticesOutput struct {
	Body NoticesResponse
}

func (s *Server) handleDrainNotices(_ context.Context, _ *struct{}) (*NoticesOutput, error) {
	notices := s.services.Notices.Drain()
	if notices == nil {
		notices = []notice.Notice{}
	}
	return &NoticesOutput{Body: NoticesResponse{Notices: notices}}, nil
}
