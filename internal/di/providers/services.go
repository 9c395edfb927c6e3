package providers

import (
	"github.com/samber/do/v2"

	"github.com/secondbrain/brain-client/internal/config"
	"github.com/secondbrain/brain-client/internal/dashboard"
	"github.com/secondbrain/brain-client/internal/form"
	"github.com/secondbrain/brain-client/internal/gateway"
	"github.com/secondbrain/brain-client/internal/logger"
	"github.com/secondbrain/brain-client/internal/notice"
	"github.com/secondbrain/brain-client/internal/service"
	"github.com/secondbrain/brain-client/internal/share"
	"github.com/secondbrain/brain-client/internal/validation"
)

// ProvideValidator provides the struct validator.
func ProvideValidator(_ do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideNotices provides the queue every workflow reports confirmations
// and alerts to.
func ProvideNotices(_ do.Injector) (*notice.Queue, error) {
	return notice.NewQueue(), nil
}

// ProvideGateway provides the REST API client.
func ProvideGateway(i do.Injector) (*gateway.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	tokens := do.MustInvoke[*AuthStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return gateway.New(cfg.API.BaseURL, tokens.Store, log.Logger), nil
}

// ProvideAuthService provides the signup/signin/logout service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	client := do.MustInvoke[*gateway.Client](i)
	tokens := do.MustInvoke[*AuthStoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	notices := do.MustInvoke[*notice.Queue](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(client, tokens.Store, validator, notices, log.Logger), nil
}

// ProvideDashboard provides the content collection view.
func ProvideDashboard(i do.Injector) (*dashboard.Dashboard, error) {
	client := do.MustInvoke[*gateway.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return dashboard.New(client, log.Logger), nil
}

// ProvideForm provides the content entry form. Accepted drafts are shown
// on the dashboard right away.
func ProvideForm(i do.Injector) (*form.Form, error) {
	client := do.MustInvoke[*gateway.Client](i)
	board := do.MustInvoke[*dashboard.Dashboard](i)
	validator := do.MustInvoke[*validation.Validator](i)
	notices := do.MustInvoke[*notice.Queue](i)
	log := do.MustInvoke[*logger.Logger](i)

	return form.New(form.Options{
		Creator:     client,
		Tags:        board,
		Validator:   validator,
		Notifier:    notices,
		OnSubmitted: board.HandleSubmitted,
		Logger:      log.Logger,
	}), nil
}

// ProvideShareWorkflow provides the share dialog workflow.
func ProvideShareWorkflow(i do.Injector) (*share.Workflow, error) {
	cfg := do.MustInvoke[*config.Config](i)
	client := do.MustInvoke[*gateway.Client](i)
	notices := do.MustInvoke[*notice.Queue](i)
	log := do.MustInvoke[*logger.Logger](i)

	return share.New(share.Options{
		Toggler:  client,
		Origin:   cfg.Client.Origin,
		Notifier: notices,
		Logger:   log.Logger,
	}), nil
}
