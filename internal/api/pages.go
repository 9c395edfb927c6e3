package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/secondbrain/brain-client/internal/dashboard"
	"github.com/secondbrain/brain-client/internal/domain"
	domainerrors "github.com/secondbrain/brain-client/internal/errors"
	"github.com/secondbrain/brain-client/internal/form"
	"github.com/secondbrain/brain-client/internal/gateway"
	"github.com/secondbrain/brain-client/internal/guard"
	"github.com/secondbrain/brain-client/internal/notice"
	"github.com/secondbrain/brain-client/internal/share"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageNames = []string{"dashboard.html", "login.html", "signup.html", "share.html"}

var pageFuncs = template.FuncMap{
	"join": strings.Join,
}

// parsePages pairs every page with the shared layout.
func parsePages() map[string]*template.Template {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		pages[name] = template.Must(template.New("layout.html").Funcs(pageFuncs).
			ParseFS(templatesFS, "templates/layout.html", "templates/"+name))
	}
	return pages
}

// pageData is what every template receives.
type pageData struct {
	Title         string
	Authenticated bool
	Notices       []notice.Notice
	Error         string
	Username      string
	Types         []domain.ContentType
	Dashboard     dashboard.Snapshot
	Form          form.View
	Share         share.DialogView
	Hash          string
}

func (s *Server) registerPageRoutes() {
	s.router.Get("/login", s.handleLoginPage)
	s.router.With(s.throttleAuth("login.html", "Sign in")).Post("/login", s.handleLogin)
	s.router.Get("/signup", s.handleSignupPage)
	s.router.With(s.throttleAuth("signup.html", "Sign up")).Post("/signup", s.handleSignup)
	s.router.Post("/logout", s.handleLogout)
	s.router.Get("/share/{hash}", s.handleSharePage)

	guarded := s.router.With(guard.Require(s.services.Session, s.opts.LoginPath))
	guarded.Get("/", s.handleDashboardPage)
	guarded.Post("/content", s.handleCreateContent)
	guarded.Post("/share", s.handleShare)
	guarded.Post("/share/revoke", s.handleRevoke)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data pageData) {
	data.Authenticated = s.services.Session.IsAuthenticated()
	data.Types = domain.ContentTypes

	var buf bytes.Buffer
	if err := s.pages[name].ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.logger.Error("Failed to render page", "page", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleLoginPage(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, "login.html", pageData{
		Title:   "Sign in",
		Notices: s.services.Notices.Drain(),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, "login.html", pageData{Title: "Sign in", Error: "Invalid form submission"})
		return
	}

	creds := domain.Credentials{Username: r.PostFormValue("username"), Password: r.PostFormValue("password")}
	if _, err := s.services.Auth.Signin(r.Context(), creds); err != nil {
		s.render(w, statusOf(err), "login.html", pageData{
			Title:    "Sign in",
			Username: creds.Username,
			Error:    domainerrors.Message(err, gateway.SigninFailureMessage),
		})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSignupPage(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, "signup.html", pageData{Title: "Sign up"})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, "signup.html", pageData{Title: "Sign up", Error: "Invalid form submission"})
		return
	}

	creds := domain.Credentials{Username: r.PostFormValue("username"), Password: r.PostFormValue("password")}
	msg, err := s.services.Auth.Signup(r.Context(), creds)
	if err != nil {
		s.render(w, statusOf(err), "signup.html", pageData{
			Title:    "Sign up",
			Username: creds.Username,
			Error:    domainerrors.Message(err, gateway.SignupFailureMessage),
		})
		return
	}
	if msg != "" {
		s.services.Notices.Notify(notice.Info(msg))
	}
	http.Redirect(w, r, s.opts.LoginPath, http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.services.Auth.Logout()
	http.Redirect(w, r, s.opts.LoginPath, http.StatusSeeOther)
}

func (s *Server) handleDashboardPage(w http.ResponseWriter, r *http.Request) {
	// Load failures land in the snapshot's error banner.
	_ = s.services.Dashboard.Load(r.Context())
	s.renderDashboard(w, http.StatusOK)
}

func (s *Server) renderDashboard(w http.ResponseWriter, status int) {
	s.render(w, status, "dashboard.html", pageData{
		Title:     "All Notes",
		Notices:   s.services.Notices.Drain(),
		Dashboard: s.services.Dashboard.Snapshot(),
		Form:      s.services.Form.Snapshot(),
		Share:     s.services.Share.Snapshot(),
	})
}

// handleCreateContent drives the entry form from a plain HTML submission.
// The page renders the open draft into its fields along with the draft's
// revision, so the post replaces that draft only if nothing else edited it
// in between.
func (s *Server) handleCreateContent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	f := s.services.Form
	seen, _ := strconv.ParseUint(r.PostFormValue("revision"), 10, 64)

	draft := domain.NewDraft()
	draft.Title = r.PostFormValue("title")
	draft.Link = strings.TrimSpace(r.PostFormValue("link"))
	draft.Description = r.PostFormValue("description")
	if t, ok := domain.ParseContentType(r.PostFormValue("type")); ok {
		draft.Type = t
	}
	if err := f.Reopen(&draft, seen); err != nil {
		s.services.Notices.Notify(notice.Error(domainerrors.Message(err, form.FailureMessage)))
		s.renderDashboard(w, statusOf(err))
		return
	}

	if err := s.applyFormFields(f, r); err != nil {
		s.renderDashboard(w, statusOf(err))
		return
	}

	if _, err := f.Submit(r.Context()); err != nil {
		s.renderDashboard(w, statusOf(err))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) applyFormFields(f *form.Form, r *http.Request) error {
	for _, tag := range strings.Split(r.PostFormValue("tags"), ",") {
		if err := f.AddTag(tag); err != nil {
			return err
		}
	}

	listMode, _ := strconv.ParseBool(r.PostFormValue("list_mode"))
	if !listMode {
		return nil
	}
	if err := f.SetListMode(true); err != nil {
		return err
	}
	for i, item := range r.PostForm["item"] {
		if err := f.AddListItem(); err != nil {
			return err
		}
		if err := f.SetListItem(i, item); err != nil {
			return err
		}
	}
	return nil
}

// handleShare and handleRevoke report failures through the notice queue.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	if _, err := s.services.Share.Share(r.Context()); err != nil {
		s.logger.Warn("share failed", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRevoke(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Share.Revoke(r.Context()); err != nil {
		s.logger.Warn("revoke failed", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSharePage(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "share.html", pageData{
		Title: "Shared brain",
		Hash:  chi.URLParam(r, "hash"),
	})
}

// statusOf picks the page status for a failed action.
func statusOf(err error) int {
	var domainErr *domainerrors.Error
	if domainerrors.As(err, &domainErr) {
		return domainErr.HTTPStatus()
	}
	return http.StatusBadGateway
}
