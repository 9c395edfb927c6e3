package api

import (
	"github.com/secondbrain/brain-client/internal/dashboard"
	"github.com/secondbrain/brain-client/internal/form"
	"github.com/secondbrain/brain-client/internal/guard"
	"github.com/secondbrain/brain-client/internal/notice"
	"github.com/secondbrain/brain-client/internal/service"
	"github.com/secondbrain/brain-client/internal/share"
)

// Services groups the workflows the handlers drive.
type Services struct {
	Auth      *service.AuthService
	Session   guard.Authenticator
	Dashboard *dashboard.Dashboard
	Form      *form.Form
	Share     *share.Workflow
	Notices   *notice.Queue
}
