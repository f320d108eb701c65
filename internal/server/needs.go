package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"maslow/internal/publishing"
	"maslow/pkg/types"

	"github.com/alexedwards/flow"
)

const (
	requestTimeout   = 10 * time.Second
	revisionsTimeout = 60 * time.Second // one remote call per historical version
)

type NeedsPageData struct {
	Page
	Needs *types.PaginatedNeeds
	Query string
}

type NeedPageData struct {
	Page
	Need              *types.Need
	StatusLabel       string
	OrganisationNames []string
	ContentItems      []publishing.Payload
}

type NeedFormPageData struct {
	Page
	Form           *types.NeedForm
	Errors         types.ValidationErrors
	Conflict       *types.BasePathAlreadyInUseError
	Organisations  []*types.Organisation
	Impacts        []string
	Justifications []string
	Action         string
	Editing        bool
}

type RevisionsPageData struct {
	Page
	Need      *types.Need
	Revisions []*types.Revision
}

type UnpublishPageData struct {
	Page
	Need        *types.Need
	Explanation string
	Error       string
}

func (s *Service) handleListNeeds(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	needs, err := s.needs.List(ctx, page, q)
	if err != nil {
		s.logger.WithError(err).Error("failed to list needs")
		s.internalServerError(w)
		return
	}

	s.renderPage(w, r, "page.needs", &NeedsPageData{
		Page:  Page{Title: "Needs"},
		Needs: needs,
		Query: q,
	})
}

func (s *Service) handleNewNeed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	s.renderNeedForm(ctx, w, r, &NeedFormPageData{
		Page:   Page{Title: "Add a new need"},
		Form:   &types.NeedForm{},
		Action: "/needs",
	})
}

func (s *Service) handleCreateNeed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	needForm, ok := s.decodeNeedForm(w, r)
	if !ok {
		return
	}

	data := &NeedFormPageData{
		Page:   Page{Title: "Add a new need"},
		Form:   needForm,
		Action: "/needs",
	}

	if errs := needForm.Validate(); !errs.Valid() {
		data.Errors = errs
		s.renderNeedForm(ctx, w, r, data)
		return
	}

	need := types.NewNeed()
	needForm.Apply(need)

	if !s.saveNeed(ctx, w, r, need, data) {
		return
	}

	s.redirectWithNotice(w, r, "/needs/"+need.ContentID, "Need created")
}

func (s *Service) handleShowNeed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	contentID := flow.Param(r.Context(), "content_id")

	need, ok := s.findNeed(ctx, w, r, contentID)
	if !ok {
		return
	}

	orgNames, err := s.orgs.NamesFor(ctx, need.OrganisationIDs)
	if err != nil {
		s.logger.WithError(err).Warn("failed to resolve organisation names")
		orgNames = need.OrganisationIDs
	}

	// Failure here should not take down the whole page; the need is
	// still viewable without its linked content.
	contentItems, err := s.needs.ContentItemsMeetingNeed(ctx, contentID)
	if err != nil {
		s.logger.WithError(err).WithField("content_id", contentID).Error("failed to fetch content meeting need")
		contentItems = nil
	}

	s.renderPage(w, r, "page.need", &NeedPageData{
		Page:              Page{Title: need.Title()},
		Need:              need,
		StatusLabel:       string(need.Status()),
		OrganisationNames: orgNames,
		ContentItems:      contentItems,
	})
}

func (s *Service) handleEditNeed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	contentID := flow.Param(r.Context(), "content_id")

	need, ok := s.findNeed(ctx, w, r, contentID)
	if !ok {
		return
	}

	s.renderNeedForm(ctx, w, r, &NeedFormPageData{
		Page:    Page{Title: "Edit need"},
		Form:    types.FormForNeed(need),
		Action:  "/needs/" + contentID,
		Editing: true,
	})
}

func (s *Service) handleUpdateNeed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	contentID := flow.Param(r.Context(), "content_id")

	need, ok := s.findNeed(ctx, w, r, contentID)
	if !ok {
		return
	}

	needForm, ok := s.decodeNeedForm(w, r)
	if !ok {
		return
	}

	data := &NeedFormPageData{
		Page:    Page{Title: "Edit need"},
		Form:    needForm,
		Action:  "/needs/" + contentID,
		Editing: true,
	}

	if errs := needForm.Validate(); !errs.Valid() {
		data.Errors = errs
		s.renderNeedForm(ctx, w, r, data)
		return
	}

	needForm.Apply(need)

	if !s.saveNeed(ctx, w, r, need, data) {
		return
	}

	s.redirectWithNotice(w, r, "/needs/"+contentID, "Need updated")
}

func (s *Service) handleRevisions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), revisionsTimeout)
	defer cancel()

	contentID := flow.Param(r.Context(), "content_id")

	need, ok := s.findNeed(ctx, w, r, contentID)
	if !ok {
		return
	}

	revisions, err := s.needs.Revisions(ctx, contentID)
	if err != nil {
		s.logger.WithError(err).WithField("content_id", contentID).Error("failed to reconstruct revision history")
		s.internalServerError(w)
		return
	}

	s.renderPage(w, r, "page.need.revisions", &RevisionsPageData{
		Page:      Page{Title: "History of " + need.Title()},
		Need:      need,
		Revisions: revisions,
	})
}

func (s *Service) handlePublish(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	contentID := flow.Param(r.Context(), "content_id")

	need, ok := s.findNeed(ctx, w, r, contentID)
	if !ok {
		return
	}

	if err := s.needs.Publish(ctx, need); err != nil {
		s.logger.WithError(err).WithField("content_id", contentID).Error("failed to publish need")
		s.redirectWithError(w, r, "/needs/"+contentID, "Unable to publish need")
		return
	}

	s.redirectWithNotice(w, r, "/needs/"+contentID, "Need published")
}

func (s *Service) handleGetUnpublish(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	contentID := flow.Param(r.Context(), "content_id")

	need, ok := s.findNeed(ctx, w, r, contentID)
	if !ok {
		return
	}

	s.renderPage(w, r, "page.need.unpublish", &UnpublishPageData{
		Page: Page{Title: "Unpublish " + need.Title()},
		Need: need,
	})
}

func (s *Service) handlePostUnpublish(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	contentID := flow.Param(r.Context(), "content_id")

	need, ok := s.findNeed(ctx, w, r, contentID)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		s.logger.WithError(err).Error("failed to parse form")
		s.internalServerError(w)
		return
	}

	explanation := strings.TrimSpace(r.FormValue("explanation"))
	if explanation == "" {
		s.renderPage(w, r, "page.need.unpublish", &UnpublishPageData{
			Page:  Page{Title: "Unpublish " + need.Title()},
			Need:  need,
			Error: "enter an explanation for withdrawing this need",
		})
		return
	}

	if err := s.needs.Unpublish(ctx, need, explanation); err != nil {
		s.logger.WithError(err).WithField("content_id", contentID).Error("failed to unpublish need")
		s.redirectWithError(w, r, "/needs/"+contentID, "Unable to unpublish need")
		return
	}

	s.redirectWithNotice(w, r, "/needs/"+contentID, "Need unpublished")
}

func (s *Service) handleDiscard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	contentID := flow.Param(r.Context(), "content_id")

	need, ok := s.findNeed(ctx, w, r, contentID)
	if !ok {
		return
	}

	if err := s.needs.Discard(ctx, need); err != nil {
		s.logger.WithError(err).WithField("content_id", contentID).Error("failed to discard draft")
		s.redirectWithError(w, r, "/needs/"+contentID, "Unable to discard draft")
		return
	}

	s.redirectWithNotice(w, r, "/needs", "Draft discarded")
}

// findNeed fetches a need and handles the not-found case; callers bail
// out when ok is false.
func (s *Service) findNeed(ctx context.Context, w http.ResponseWriter, r *http.Request, contentID string) (*types.Need, bool) {
	need, err := s.needs.Need(ctx, contentID)
	if err != nil {
		if errors.Is(err, types.ErrNeedNotFound) {
			s.renderNotFound(w, r, contentID)
			return nil, false
		}
		s.logger.WithError(err).WithField("content_id", contentID).Error("failed to fetch need")
		s.internalServerError(w)
		return nil, false
	}
	return need, true
}

func (s *Service) decodeNeedForm(w http.ResponseWriter, r *http.Request) (*types.NeedForm, bool) {
	if err := r.ParseForm(); err != nil {
		s.logger.WithError(err).Error("failed to parse form")
		s.internalServerError(w)
		return nil, false
	}

	needForm := new(types.NeedForm)
	if err := decoder.Decode(needForm, r.Form); err != nil {
		s.logger.WithError(err).Error("failed to decode need form")
		s.internalServerError(w)
		return nil, false
	}
	return needForm, true
}

// saveNeed persists the need and re-renders the form on a base-path
// conflict, carrying the conflicting content id so editors can find the
// need that already owns the path.
func (s *Service) saveNeed(ctx context.Context, w http.ResponseWriter, r *http.Request, need *types.Need, data *NeedFormPageData) bool {
	err := s.needs.Save(ctx, need)
	if err == nil {
		return true
	}

	var conflict *types.BasePathAlreadyInUseError
	if errors.As(err, &conflict) {
		data.Conflict = conflict
		s.renderNeedForm(ctx, w, r, data)
		return false
	}

	s.logger.WithError(err).WithField("content_id", need.ContentID).Error("failed to save need")
	s.redirectWithError(w, r, "/needs", "Unable to save need")
	return false
}

func (s *Service) renderNeedForm(ctx context.Context, w http.ResponseWriter, r *http.Request, data *NeedFormPageData) {
	orgs, err := s.orgs.All(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch organisations for form")
	}

	data.Organisations = orgs
	data.Impacts = types.Impacts
	data.Justifications = types.Justifications

	s.renderPage(w, r, "page.need.form", data)
}
