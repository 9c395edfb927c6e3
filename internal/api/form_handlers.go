package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/secondbrain/brain-client/internal/domain"
	"github.com/secondbrain/brain-client/internal/form"
)

func (s *Server) registerFormRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getForm",
		Method:      http.MethodGet,
		Path:        uiAPIPrefix + "/form",
		Summary:     "Form state",
		Tags:        []string{"Form"},
	}, s.handleGetForm)

	huma.Register(s.api, huma.Operation{
		OperationID: "openForm",
		Method:      http.MethodPost,
		Path:        uiAPIPrefix + "/form/open",
		Summary:     "Open the form",
		Description: "Starts a new draft, empty or pre-filled with the supplied values",
		Tags:        []string{"Form"},
	}, s.handleOpenForm)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateForm",
		Method:      http.MethodPatch,
		Path:        uiAPIPrefix + "/form",
		Summary:     "Edit fields",
		Description: "Applies every field present in the body",
		Tags:        []string{"Form"},
	}, s.handleUpdateForm)

	huma.Register(s.api, huma.Operation{
		OperationID: "addFormTag",
		Method:      http.MethodPost,
		Path:        uiAPIPrefix + "/form/tags",
		Summary:     "Add a tag",
		Description: "Adds a suggested or new tag and clears the tag search",
		Tags:        []string{"Form"},
	}, s.handleAddFormTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeFormTag",
		Method:      http.MethodDelete,
		Path:        uiAPIPrefix + "/form/tags/{tag}",
		Summary:     "Remove a tag",
		Tags:        []string{"Form"},
	}, s.handleRemoveFormTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "addFormListItem",
		Method:      http.MethodPost,
		Path:        uiAPIPrefix + "/form/items",
		Summary:     "Add a list item",
		Description: "Appends a blank line item",
		Tags:        []string{"Form"},
	}, s.handleAddFormListItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "setFormListItem",
		Method:      http.MethodPut,
		Path:        uiAPIPrefix + "/form/items/{index}",
		Summary:     "Edit a list item",
		Tags:        []string{"Form"},
	}, s.handleSetFormListItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeFormListItem",
		Method:      http.MethodDelete,
		Path:        uiAPIPrefix + "/form/items/{index}",
		Summary:     "Remove a list item",
		Tags:        []string{"Form"},
	}, s.handleRemoveFormListItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "submitForm",
		Method:      http.MethodPost,
		Path:        uiAPIPrefix + "/form/submit",
		Summary:     "Submit the draft",
		Description: "Posts the draft to the backend, then reloads the dashboard",
		Tags:        []string{"Form"},
	}, s.handleSubmitForm)

	huma.Register(s.api, huma.Operation{
		OperationID: "dismissForm",
		Method:      http.MethodPost,
		Path:        uiAPIPrefix + "/form/dismiss",
		Summary:     "Close the form",
		Description: "Discards the draft without posting",
		Tags:        []string{"Form"},
	}, s.handleDismissForm)
}

// FormOutput wraps the form view for Huma.
type FormOutput struct {
	Body form.View
}

func (s *Server) formView() *FormOutput {
	return &FormOutput{Body: s.services.Form.Snapshot()}
}

func (s *Server) handleGetForm(_ context.Context, _ *struct{}) (*FormOutput, error) {
	return s.formView(), nil
}

// DraftRequest carries initial draft values; every field is optional.
type DraftRequest struct {
	Title       string   `json:"title,omitempty"`
	Type        string   `json:"type,omitempty" enum:"youtube,x,other"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
	Link        string   `json:"link,omitempty"`
}

// OpenFormInput optionally pre-fills the draft.
type OpenFormInput struct {
	Body struct {
		Draft *DraftRequest `json:"draft,omitempty" doc:"Initial values when editing"`
	}
}

func (s *Server) handleOpenForm(_ context.Context, input *OpenFormInput) (*FormOutput, error) {
	var initial *domain.Draft
	if req := input.Body.Draft; req != nil {
		initial = &domain.Draft{
			Title:       req.Title,
			Type:        domain.ContentType(req.Type),
			Tags:        req.Tags,
			Description: req.Description,
			Link:        req.Link,
		}
	}
	s.services.Form.Open(initial)
	return s.formView(), nil
}

// UpdateFormRequest carries the fields to change; absent fields are kept.
type UpdateFormRequest struct {
	Title       *string `json:"title,omitempty"`
	Type        *string `json:"type,omitempty" enum:"youtube,x,other"`
	Link        *string `json:"link,omitempty"`
	Description *string `json:"description,omitempty"`
	TagQuery    *string `json:"tagQuery,omitempty" doc:"Tag search text"`
	ListMode    *bool   `json:"listMode,omitempty" doc:"Enter the description as line items"`
}

// UpdateFormInput wraps the update request for Huma.
type UpdateFormInput struct {
	Body UpdateFormRequest
}

func (s *Server) handleUpdateForm(_ context.Context, input *UpdateFormInput) (*FormOutput, error) {
	f := s.services.Form
	req := input.Body

	steps := []func() error{}
	if req.Title != nil {
		steps = append(steps, func() error { return f.SetTitle(*req.Title) })
	}
	if req.Type != nil {
		steps = append(steps, func() error { return f.SetType(domain.ContentType(*req.Type)) })
	}
	if req.Link != nil {
		steps = append(steps, func() error { return f.SetLink(*req.Link) })
	}
	if req.Description != nil {
		steps = append(steps, func() error { return f.SetDescription(*req.Description) })
	}
	if req.TagQuery != nil {
		steps = append(steps, func() error { return f.SetTagQuery(*req.TagQuery) })
	}
	if req.ListMode != nil {
		steps = append(steps, func() error { return f.SetListMode(*req.ListMode) })
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return s.formView(), nil
}

// AddTagInput names the tag to add.
type AddTagInput struct {
	Body struct {
		Tag string `json:"tag" doc:"Tag label; surrounding whitespace is trimmed"`
	}
}

func (s *Server) handleAddFormTag(_ context.Context, input *AddTagInput) (*FormOutput, error) {
	if err := s.services.Form.AddTag(input.Body.Tag); err != nil {
		return nil, err
	}
	return s.formView(), nil
}

// RemoveTagInput names the tag to remove.
type RemoveTagInput struct {
	Tag string `path:"tag"`
}

func (s *Server) handleRemoveFormTag(_ context.Context, input *RemoveTagInput) (*FormOutput, error) {
	if err := s.services.Form.RemoveTag(input.Tag); err != nil {
		return nil, err
	}
	return s.formView(), nil
}

func (s *Server) handleAddFormListItem(_ context.Context, _ *struct{}) (*FormOutput, error) {
	if err := s.services.Form.AddListItem(); err != nil {
		return nil, err
	}
	return s.formView(), nil
}

// SetListItemInput replaces one line item.
type SetListItemInput struct {
	Index int `path:"index" minimum:"0"`
	Body  struct {
		Value string `json:"value"`
	}
}

func (s *Server) handleSetFormListItem(_ context.Context, input *SetListItemInput) (*FormOutput, error) {
	if err := s.services.Form.SetListItem(input.Index, input.Body.Value); err != nil {
		return nil, err
	}
	return s.formView(), nil
}

// RemoveListItemInput identifies one line item.
type RemoveListItemInput struct {
	Index int `path:"index" minimum:"0"`
}

func (s *Server) handleRemoveFormListItem(_ context.Context, input *RemoveListItemInput) (*FormOutput, error) {
	if err := s.services.Form.RemoveListItem(input.Index); err != nil {
		return nil, err
	}
	return s.formView(), nil
}

// SubmitResponse reports an accepted draft.
type SubmitResponse struct {
	Draft   domain.Draft `json:"draft" doc:"The draft as posted, list items folded into the description"`
	Message string       `json:"message"`
}

// SubmitOutput wraps the submit response for Huma.
type SubmitOutput struct {
	Body SubmitResponse
}

func (s *Server) handleSubmitForm(ctx context.Context, _ *struct{}) (*SubmitOutput, error) {
	draft, err := s.services.Form.Submit(ctx)
	if err != nil {
		return nil, err
	}
	return &SubmitOutput{Body: SubmitResponse{Draft: draft, Message: form.SuccessMessage}}, nil
}

func (s *Server) handleDismissForm(_ context.Context, _ *struct{}) (*FormOutput, error) {
	s.services.Form.Dismiss()
	return s.formView(), nil
}
