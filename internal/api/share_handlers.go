package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/secondbrain/brain-client/internal/share"
)

func (s *Server) registerShareRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getShare",
		Method:      http.MethodGet,
		Path:        uiAPIPrefix + "/share",
		Summary:     "Share dialog state",
		Tags:        []string{"Share"},
	}, s.handleGetShare)

	huma.Register(s.api, huma.Operation{
		OperationID: "openShare",
		Method:      http.MethodPost,
		Path:        uiAPIPrefix + "/share/open",
		Summary:     "Open the share dialog",
		Description: "Resets the dialog to its initial state",
		Tags:        []string{"Share"},
	}, s.handleOpenShare)

	huma.Register(s.api, huma.Operation{
		OperationID: "enableShare",
		Method:      http.MethodPost,
		Path:        uiAPIPrefix + "/share",
		Summary:     "Share the collection",
		Description: "Publishes the collection and returns its public link",
		Tags:        []string{"Share"},
	}, s.handleEnableShare)

	huma.Register(s.api, huma.Operation{
		OperationID: "revokeShare",
		Method:      http.MethodDelete,
		Path:        uiAPIPrefix + "/share",
		Summary:     "Revoke the public link",
		Tags:        []string{"Share"},
	}, s.handleRevokeShare)

	huma.Register(s.api, huma.Operation{
		OperationID: "copyShareLink",
		Method:      http.MethodPost,
		Path:        uiAPIPrefix + "/share/copy",
		Summary:     "Copy the public link",
		Description: "Puts the link on the clipboard of the machine running the client",
		Tags:        []string{"Share"},
	}, s.handleCopyShareLink)
}

// ShareOutput wraps the share dialog view for Huma.
type ShareOutput struct {
	Body share.DialogView
}

func (s *Server) shareView() *ShareOutput {
	return &ShareOutput{Body: s.services.Share.Snapshot()}
}

func (s *Server) handleGetShare(_ context.Context, _ *struct{}) (*ShareOutput, error) {
	return s.shareView(), nil
}

func (s *Server) handleOpenShare(_ context.Context, _ *struct{}) (*ShareOutput, error) {
	s.services.Share.Open()
	return s.shareView(), nil
}

func (s *Server) handleEnableShare(ctx context.Context, _ *struct{}) (*ShareOutput, error) {
	if _, err := s.services.Share.Share(ctx); err != nil {
		return nil, err
	}
	return s.shareView(), nil
}

func (s *Server) handleRevokeShare(ctx context.Context, _ *struct{}) (*ShareOutput, error) {
	if err := s.services.Share.Revoke(ctx); err != nil {
		return nil, err
	}
	return s.shareView(), nil
}

func (s *Server) handleCopyShareLink(_ context.Context, _ *struct{}) (*ShareOutput, error) {
	if _, err := s.services.Share.CopyLink(); err != nil {
		return nil, err
	}
	return s.shareView(), nil
}
