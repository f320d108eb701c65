package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"maslow/internal/store"
	"maslow/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

//go:embed templates static
var uiFS embed.FS
var decoder = form.NewDecoder()

type Service struct {
	logger    *logrus.Logger
	config    *types.Config
	needs     *store.NeedStore
	orgs      *store.OrganisationStore
	templates *template.Template

	cookie *securecookie.SecureCookie

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	needs *store.NeedStore,
	orgs *store.OrganisationStore,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	if len(hashKey) == 0 {
		// flash cookies only; an ephemeral key just means messages are
		// lost across restarts
		hashKey = securecookie.GenerateRandomKey(32)
	}

	s := &Service{
		logger: logger,
		config: config,
		cookie: securecookie.New(hashKey, nil),

		needs: needs,
		orgs:  orgs,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/", s.handleHome, http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.HandleFunc("/needs", s.handleListNeeds, http.MethodGet)
	r.HandleFunc("/needs", s.handleCreateNeed, http.MethodPost)
	r.HandleFunc("/needs/new", s.handleNewNeed, http.MethodGet)

	r.HandleFunc("/needs/:content_id", s.handleShowNeed, http.MethodGet)
	r.HandleFunc("/needs/:content_id", s.handleUpdateNeed, http.MethodPost)
	r.HandleFunc("/needs/:content_id/edit", s.handleEditNeed, http.MethodGet)
	r.HandleFunc("/needs/:content_id/revisions", s.handleRevisions, http.MethodGet)

	r.HandleFunc("/needs/:content_id/publish", s.handlePublish, http.MethodPost)
	r.HandleFunc("/needs/:content_id/unpublish", s.handleGetUnpublish, http.MethodGet)
	r.HandleFunc("/needs/:content_id/unpublish", s.handlePostUnpublish, http.MethodPost)
	r.HandleFunc("/needs/:content_id/discard", s.handleDiscard, http.MethodPost)

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		s.logger.WithError(err).Fatal("failed to mount static assets")
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)
}

func loadTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": func(items []string, sep string) string {
			return strings.Join(items, sep)
		},
		"deref": func(v *int) int {
			if v == nil {
				return 0
			}
			return *v
		},
		"add": func(a, b int) int {
			return a + b
		},
		"contains": func(items []string, v string) bool {
			for _, item := range items {
				if item == v {
					return true
				}
			}
			return false
		},
		"humanize": func(field string) string {
			return strings.ToUpper(field[:1]) + strings.ReplaceAll(field[1:], "_", " ")
		},
	}

	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}
