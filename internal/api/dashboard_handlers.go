package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/secondbrain/brain-client/internal/dashboard"
)

func (s *Server) registerDashboardRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getDashboard",
		Method:      http.MethodGet,
		Path:        uiAPIPrefix + "/dashboard",
		Summary:     "Dashboard snapshot",
		Description: "Returns the loaded items, their cards and the tag universe without fetching",
		Tags:        []string{"Dashboard"},
	}, s.handleGetDashboard)

	huma.Register(s.api, huma.Operation{
		OperationID: "reloadDashboard",
		Method:      http.MethodPost,
		Path:        uiAPIPrefix + "/dashboard/reload",
		Summary:     "Reload content",
		Description: "Fetches the collection from the backend and returns the resulting snapshot",
		Tags:        []string{"Dashboard"},
	}, s.handleReloadDashboard)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteContent",
		Method:      http.MethodDelete,
		Path:        uiAPIPrefix + "/dashboard/items/{id}",
		Summary:     "Delete content",
		Description: "Not supported by the backend; always answers 501",
		Tags:        []string{"Dashboard"},
	}, s.handleDeleteContent)
}

// DashboardOutput wraps a dashboard snapshot for Huma.
type DashboardOutput struct {
	Body dashboard.Snapshot
}

func (s *Server) handleGetDashboard(_ context.Context, _ *struct{}) (*DashboardOutput, error) {
	return &DashboardOutput{Body: s.services.Dashboard.Snapshot()}, nil
}

func (s *Server) handleReloadDashboard(ctx context.Context, _ *struct{}) (*DashboardOutput, error) {
	if err := s.services.Dashboard.Load(ctx); err != nil {
		return nil, err
	}
	return &DashboardOutput{Body: s.services.Dashboard.Snapshot()}, nil
}

// DeleteContentInput identifies the item to delete.
type DeleteContentInput struct {
	ID string `path:"id" doc:"Content item id"`
}

func (s *Server) handleDeleteContent(ctx context.Context, input *DeleteContentInput) (*struct{}, error) {
	return nil, s.services.Dashboard.Delete(ctx, input.ID)
}
