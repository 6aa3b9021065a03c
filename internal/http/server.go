package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Prabesh2159/prestige-builds-locale-wise/internal/auth"
	"github.com/Prabesh2159/prestige-builds-locale-wise/internal/config"
	"github.com/Prabesh2159/prestige-builds-locale-wise/internal/i18n"
	"github.com/Prabesh2159/prestige-builds-locale-wise/internal/model"
	"github.com/Prabesh2159/prestige-builds-locale-wise/internal/session"
	"github.com/Prabesh2159/prestige-builds-locale-wise/internal/staging"
	"github.com/Prabesh2159/prestige-builds-locale-wise/internal/store"
)

const sessionCookieName = "admin_session"
const loginPath = "/admin/login"

var validate = validator.New()

var loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "admin_login_attempts_total",
	Help: "Admin login attempts by result.",
}, []string{"result"})

type Server struct {
	cfg      config.Config
	store    *store.Store
	sessions *session.Manager
	stager   *staging.Stager
	blobs    staging.BlobStore
	limiter  *session.FailureLimiter
}

func NewServer(cfg config.Config, st *store.Store, sessions *session.Manager, stager *staging.Stager, blobs staging.BlobStore) *Server {
	return &Server{
		cfg:      cfg,
		store:    st,
		sessions: sessions,
		stager:   stager,
		blobs:    blobs,
		limiter:  session.NewFailureLimiter(cfg.LoginMaxFailures, cfg.LoginWindow),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/api/auth/login", s.handleLogin)
	r.Post("/api/auth/logout", s.handleLogout)
	r.Get("/api/auth/session", s.handleSession)

	r.Get("/api/i18n", s.handleDefaultTranslations)
	r.Get("/api/i18n/{lang}", s.handleTranslations)

	// Public site surface. When the strict-exit policy is enabled, browsing
	// it while holding an admin session ends that session.
	r.Group(func(r chi.Router) {
		r.Use(s.exitGuard)
		r.Get("/api/notices", s.handleListNotices)
		r.Get("/api/notices/{noticeID}", s.handleGetNotice)
		r.Get("/api/gallery", s.handleListAlbums)
		r.Get("/api/gallery/{albumID}", s.handleGetAlbum)
		r.Post("/api/contact", s.handleSubmitContact)
		r.Post("/api/admission", s.handleSubmitAdmission)
		r.Get("/files/{blobKey}", s.handleGetFile)
	})

	// Admin surface, gated by the session guard.
	r.Group(func(r chi.Router) {
		r.Use(s.guard)

		r.Get("/api/admin/summary", s.handleSummary)

		r.Post("/api/notices", s.handleCreateNotice)
		r.Put("/api/notices/{noticeID}", s.handleUpdateNotice)
		r.Delete("/api/notices/{noticeID}", s.handleDeleteNotice)
		r.Post("/api/notices/{noticeID}/attachments", s.handleAddAttachments)
		r.Delete("/api/notices/{noticeID}/attachments/{attachmentID}", s.handleRemoveAttachment)

		r.Post("/api/gallery", s.handleCreateAlbum)
		r.Put("/api/gallery/{albumID}", s.handleRenameAlbum)
		r.Delete("/api/gallery/{albumID}", s.handleDeleteAlbum)
		r.Post("/api/gallery/{albumID}/images", s.handleAddImages)
		r.Delete("/api/gallery/{albumID}/images/{imageID}", s.handleRemoveImage)

		r.Get("/api/contact", s.handleListMessages)
		r.Get("/api/contact/{messageID}", s.handleGetMessage)
		r.Put("/api/contact/{messageID}", s.handleToggleRead)
		r.Delete("/api/contact/{messageID}", s.handleDeleteMessage)

		r.Get("/api/admission", s.handleListAdmissions)
		r.Get("/api/admission/{admissionID}", s.handleGetAdmission)
		r.Put("/api/admission/{admissionID}", s.handleSetStatus)
		r.Delete("/api/admission/{admissionID}", s.handleDeleteAdmission)

		r.Post("/api/uploads", s.handleStageUploads)
		r.Delete("/api/uploads/{uploadID}", s.handleUnstageUpload)
		r.Post("/api/uploads/drain", s.handleDrainUploads)
		r.Get("/api/uploads/{uploadID}/preview", s.handleUploadPreview)
	})

	return r
}

// ---- auth ----

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	From     string `json:"from,omitempty"`
}

type loginResponse struct {
	Status     string `json:"status"`
	Token      string `json:"token"`
	RedirectTo string `json:"redirectTo"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	limiterKey := clientKey(r, req.Email)
	if !s.limiter.Allow(limiterKey) {
		loginAttempts.WithLabelValues("throttled").Inc()
		writeError(w, http.StatusTooManyRequests, "too_many_attempts")
		return
	}

	sessionID, err := s.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.limiter.RecordFailure(limiterKey)
		loginAttempts.WithLabelValues("failure").Inc()
		status := http.StatusBadRequest
		if errors.Is(err, session.ErrInvalidCredentials) {
			status = http.StatusUnauthorized
		}
		writeError(w, status, err.Error())
		return
	}
	s.limiter.Reset(limiterKey)

	token, err := auth.NewSessionToken(s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.SessionTTL, auth.Claims{
		SessionID: sessionID,
		Email:     req.Email,
	})
	if err != nil {
		_ = s.sessions.Logout(r.Context(), sessionID)
		writeError(w, http.StatusInternalServerError, "token_error")
		return
	}

	loginAttempts.WithLabelValues("success").Inc()
	// A session cookie on purpose: no Max-Age, so it does not outlive the
	// browser session.
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	redirectTo := req.From
	if redirectTo == "" || !strings.HasPrefix(redirectTo, "/admin") {
		redirectTo = "/admin"
	}
	writeJSON(w, http.StatusOK, loginResponse{Status: "ok", Token: token, RedirectTo: redirectTo})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sessionID, ok := s.sessionID(r); ok {
		_ = s.sessions.Logout(r.Context(), sessionID)
	}
	clearSessionCookie(w)
	// Idempotent: logging out without a live session is still a success.
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	authenticated := false
	if sessionID, ok := s.sessionID(r); ok {
		authenticated = s.sessions.IsAuthenticated(r.Context(), sessionID)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": authenticated})
}

// sessionID extracts and verifies the signed token from the request and
// returns the server-side session id it names.
func (s *Server) sessionID(r *http.Request) (string, bool) {
	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			token = cookie.Value
		}
	}
	if token == "" {
		return "", false
	}
	claims, err := auth.ParseToken(s.cfg.JWTSecret, s.cfg.JWTIssuer, token)
	if err != nil {
		return "", false
	}
	return claims.SessionID, true
}

// guard admits only requests carrying a live admin session. Denials include
// a redirect instruction to the login entry point with the originally
// requested destination, so the login flow can return the user there.
func (s *Server) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := s.sessionID(r)
		if !ok || !s.sessions.IsAuthenticated(r.Context(), sessionID) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "unauthorized",
				"login": loginPath,
				"from":  r.URL.Path,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// exitGuard implements the strict policy: a request to the public site made
// while an admin session is live ends that session, so the admin area must
// be re-entered through login. Off by default; the server-verified TTL on
// sessions is the primary control.
func (s *Server) exitGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.StrictAdminExit {
			if sessionID, ok := s.sessionID(r); ok && s.sessions.IsAuthenticated(r.Context(), sessionID) {
				_ = s.sessions.Logout(r.Context(), sessionID)
				clearSessionCookie(w)
			}
		}
		next.ServeHTTP(w, r)
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ---- i18n ----

func (s *Server) handleTranslations(w http.ResponseWriter, r *http.Request) {
	lang, err := i18n.ParseLanguage(chi.URLParam(r, "lang"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_language")
		return
	}
	writeTranslations(w, lang)
}

// handleDefaultTranslations serves the configured site language; a bad
// configuration value falls back to English rather than failing the site.
func (s *Server) handleDefaultTranslations(w http.ResponseWriter, _ *http.Request) {
	lang, err := i18n.ParseLanguage(s.cfg.DefaultLanguage)
	if err != nil {
		lang = i18n.LanguageEnglish
	}
	writeTranslations(w, lang)
}

func writeTranslations(w http.ResponseWriter, lang i18n.Language) {
	provider := i18n.NewProvider(lang)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"language": provider.Language(),
		"strings":  provider.Table(),
	})
}

// ---- notices ----

type attachmentSummary struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Type string `json:"type"`
	Name string `json:"name"`
}

type noticeSummary struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	FullContent string              `json:"fullContent"`
	Date        string              `json:"date"`
	Attachments []attachmentSummary `json:"attachments,omitempty"`
	IsFeatured  bool                `json:"isFeatured"`

	// Single-attachment fields kept for clients that predate the
	// attachments list; mirrors the first attachment.
	Attachment     string `json:"attachment,omitempty"`
	AttachmentType string `json:"attachmentType,omitempty"`
	AttachmentName string `json:"attachmentName,omitempty"`
}

func mapNotice(n model.Notice) noticeSummary {
	out := noticeSummary{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		FullContent: n.FullContent,
		Date:        n.Date.Format("2006-01-02"),
		IsFeatured:  n.IsFeatured,
	}
	for _, a := range n.Attachments {
		out.Attachments = append(out.Attachments, attachmentSummary{
			ID:   a.ID,
			URL:  a.URL,
			Type: string(a.Kind),
			Name: a.DisplayName,
		})
	}
	if len(n.Attachments) > 0 {
		first := n.Attachments[0]
		out.Attachment = first.URL
		out.AttachmentType = legacyAttachmentType(first.Kind)
		out.AttachmentName = first.DisplayName
	}
	return out
}

// legacyAttachmentType maps the file kind onto the old wire vocabulary,
// which said "pdf" where the current API says "document".
func legacyAttachmentType(kind model.FileKind) string {
	if kind == model.FileKindDocument {
		return "pdf"
	}
	return string(kind)
}

func (s *Server) handleListNotices(w http.ResponseWriter, _ *http.Request) {
	notices := s.store.Notices()
	out := make([]noticeSummary, 0, len(notices))
	for _, n := range notices {
		out = append(out, mapNotice(n))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetNotice(w http.ResponseWriter, r *http.Request) {
	notice, err := s.store.GetNotice(chi.URLParam(r, "noticeID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "notice_not_found")
		return
	}
	writeJSON(w, http.StatusOK, mapNotice(notice))
}

type createNoticeRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	FullContent string   `json:"fullContent"`
	IsFeatured  bool     `json:"isFeatured"`
	UploadIDs   []string `json:"uploadIds"`
}

func (s *Server) handleCreateNotice(w http.ResponseWriter, r *http.Request) {
	var req createNoticeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	// Reject before committing uploads so a bad request leaves the user's
	// staged files intact.
	if strings.TrimSpace(req.Title) == "" {
		writeStoreError(w, store.ValidationError{Field: "title", Reason: "required"})
		return
	}

	attachments, err := s.commitUploads(r.Context(), req.UploadIDs)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_upload")
		return
	}

	notice, err := s.store.CreateNotice(store.NoticeInput{
		Title:       req.Title,
		Description: req.Description,
		FullContent: req.FullContent,
		Attachments: attachments,
		IsFeatured:  req.IsFeatured,
	})
	if err != nil {
		s.discardAttachments(r.Context(), attachments)
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapNotice(notice))
}

type updateNoticeRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	FullContent *string `json:"fullContent"`
	IsFeatured  *bool   `json:"isFeatured"`
}

func (s *Server) handleUpdateNotice(w http.ResponseWriter, r *http.Request) {
	var req updateNoticeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	notice, err := s.store.UpdateNotice(chi.URLParam(r, "noticeID"), store.NoticePatch{
		Title:       req.Title,
		Description: req.Description,
		FullContent: req.FullContent,
		IsFeatured:  req.IsFeatured,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapNotice(notice))
}

func (s *Server) handleDeleteNotice(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteNotice(chi.URLParam(r, "noticeID")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type addAttachmentsRequest struct {
	UploadIDs []string `json:"uploadIds"`
}

func (s *Server) handleAddAttachments(w http.ResponseWriter, r *http.Request) {
	var req addAttachmentsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if len(req.UploadIDs) == 0 {
		writeError(w, http.StatusBadRequest, "no_uploads")
		return
	}

	noticeID := chi.URLParam(r, "noticeID")
	if _, err := s.store.GetNotice(noticeID); err != nil {
		writeStoreError(w, err)
		return
	}

	attachments, err := s.commitUploads(r.Context(), req.UploadIDs)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_upload")
		return
	}
	notice, err := s.store.AddAttachments(noticeID, attachments)
	if err != nil {
		s.discardAttachments(r.Context(), attachments)
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapNotice(notice))
}

func (s *Server) handleRemoveAttachment(w http.ResponseWriter, r *http.Request) {
	noticeID := chi.URLParam(r, "noticeID")
	attachmentID := chi.URLParam(r, "attachmentID")

	before, err := s.store.GetNotice(noticeID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	notice, err := s.store.RemoveAttachment(noticeID, attachmentID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	for _, a := range before.Attachments {
		if a.ID == attachmentID {
			s.deleteBlobForURL(r.Context(), a.URL)
		}
	}
	writeJSON(w, http.StatusOK, mapNotice(notice))
}

// ---- gallery ----

type gallerySummary struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Images     []imageSummary `json:"images"`
	CoverImage string         `json:"coverImage"`
	Date       string         `json:"date"`
}

type imageSummary struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	Alt string `json:"alt"`
}

func mapAlbum(a model.GalleryAlbum) gallerySummary {
	out := gallerySummary{
		ID:         a.ID,
		Title:      a.Title,
		Images:     make([]imageSummary, 0, len(a.Images)),
		CoverImage: a.CoverImage,
		Date:       a.Date.Format("2006-01-02"),
	}
	for _, img := range a.Images {
		out.Images = append(out.Images, imageSummary{ID: img.ID, URL: img.URL, Alt: img.AltText})
	}
	return out
}

func (s *Server) handleListAlbums(w http.ResponseWriter, _ *http.Request) {
	albums := s.store.Albums()
	out := make([]gallerySummary, 0, len(albums))
	for _, a := range albums {
		out = append(out, mapAlbum(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetAlbum(w http.ResponseWriter, r *http.Request) {
	album, err := s.store.GetAlbum(chi.URLParam(r, "albumID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "album_not_found")
		return
	}
	writeJSON(w, http.StatusOK, mapAlbum(album))
}

type albumImageInput struct {
	UploadID string `json:"uploadId"`
	Alt      string `json:"alt"`
}

type createAlbumRequest struct {
	Title  string            `json:"title"`
	Images []albumImageInput `json:"images"`
}

func (s *Server) handleCreateAlbum(w http.ResponseWriter, r *http.Request) {
	var req createAlbumRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeStoreError(w, store.ValidationError{Field: "title", Reason: "required"})
		return
	}
	if len(req.Images) == 0 {
		writeStoreError(w, store.ValidationError{Field: "images", Reason: "at least one image required"})
		return
	}

	images, err := s.commitImages(r.Context(), req.Images)
	if err != nil {
		writeCommitError(w, err)
		return
	}
	album, err := s.store.CreateAlbum(req.Title, images)
	if err != nil {
		s.discardImages(r.Context(), images)
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapAlbum(album))
}

type renameAlbumRequest struct {
	Title string `json:"title"`
}

func (s *Server) handleRenameAlbum(w http.ResponseWriter, r *http.Request) {
	var req renameAlbumRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	album, err := s.store.RenameAlbum(chi.URLParam(r, "albumID"), req.Title)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapAlbum(album))
}

func (s *Server) handleDeleteAlbum(w http.ResponseWriter, r *http.Request) {
	albumID := chi.URLParam(r, "albumID")
	album, err := s.store.GetAlbum(albumID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if err := s.store.DeleteAlbum(albumID); err != nil {
		writeStoreError(w, err)
		return
	}
	for _, img := range album.Images {
		s.deleteBlobForURL(r.Context(), img.URL)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type addImagesRequest struct {
	Images []albumImageInput `json:"images"`
}

func (s *Server) handleAddImages(w http.ResponseWriter, r *http.Request) {
	var req addImagesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if len(req.Images) == 0 {
		writeError(w, http.StatusBadRequest, "no_images")
		return
	}

	albumID := chi.URLParam(r, "albumID")
	if _, err := s.store.GetAlbum(albumID); err != nil {
		writeStoreError(w, err)
		return
	}

	images, err := s.commitImages(r.Context(), req.Images)
	if err != nil {
		writeCommitError(w, err)
		return
	}
	album, err := s.store.AddImages(albumID, images)
	if err != nil {
		s.discardImages(r.Context(), images)
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapAlbum(album))
}

func (s *Server) handleRemoveImage(w http.ResponseWriter, r *http.Request) {
	albumID := chi.URLParam(r, "albumID")
	imageID := chi.URLParam(r, "imageID")

	before, err := s.store.GetAlbum(albumID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	album, err := s.store.RemoveImage(albumID, imageID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	for _, img := range before.Images {
		if img.ID == imageID {
			s.deleteBlobForURL(r.Context(), img.URL)
		}
	}
	writeJSON(w, http.StatusOK, mapAlbum(album))
}

// ---- contact ----

type messageSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Date    string `json:"date"`
	IsRead  bool   `json:"isRead"`
}

func mapMessage(m model.ContactMessage) messageSummary {
	return messageSummary{
		ID:      m.ID,
		Name:    m.Name,
		Email:   m.Email,
		Phone:   m.Phone,
		Message: m.Body,
		Date:    m.Received.Format("2006-01-02"),
		IsRead:  m.IsRead,
	}
}

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required"`
}

func (s *Server) handleSubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	message, err := s.store.CreateMessage(req.Name, req.Email, req.Phone, req.Message)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapMessage(message))
}

func (s *Server) handleListMessages(w http.ResponseWriter, _ *http.Request) {
	messages := s.store.Messages()
	out := make([]messageSummary, 0, len(messages))
	for _, m := range messages {
		out = append(out, mapMessage(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetMessage(w http.ResponseWriter, r *http.Request) {
	message, err := s.store.GetMessage(chi.URLParam(r, "messageID"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapMessage(message))
}

func (s *Server) handleToggleRead(w http.ResponseWriter, r *http.Request) {
	message, err := s.store.ToggleRead(chi.URLParam(r, "messageID"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapMessage(message))
}

func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteMessage(chi.URLParam(r, "messageID")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---- admissions ----

type admissionSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	ClassApplying string `json:"classApplying"`
	Message       string `json:"message"`
	Date          string `json:"date"`
	Status        string `json:"status"`
}

func mapAdmission(a model.AdmissionApplication) admissionSummary {
	return admissionSummary{
		ID:            a.ID,
		Name:          a.ApplicantName,
		Phone:         a.Phone,
		Email:         a.Email,
		Address:       a.Address,
		ClassApplying: a.ClassApplying,
		Message:       a.Body,
		Date:          a.Submitted.Format("2006-01-02"),
		Status:        string(a.Status),
	}
}

type admissionRequest struct {
	Name          string `json:"name" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address"`
	ClassApplying string `json:"classApplying" validate:"required"`
	Message       string `json:"message"`
}

func (s *Server) handleSubmitAdmission(w http.ResponseWriter, r *http.Request) {
	var req admissionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	admission, err := s.store.CreateAdmission(store.AdmissionInput{
		ApplicantName: req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		ClassApplying: req.ClassApplying,
		Body:          req.Message,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapAdmission(admission))
}

func (s *Server) handleListAdmissions(w http.ResponseWriter, _ *http.Request) {
	admissions := s.store.Admissions()
	out := make([]admissionSummary, 0, len(admissions))
	for _, a := range admissions {
		out = append(out, mapAdmission(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetAdmission(w http.ResponseWriter, r *http.Request) {
	admission, err := s.store.GetAdmission(chi.URLParam(r, "admissionID"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapAdmission(admission))
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req setStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	admission, err := s.store.SetStatus(chi.URLParam(r, "admissionID"), model.AdmissionStatus(req.Status))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapAdmission(admission))
}

func (s *Server) handleDeleteAdmission(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAdmission(chi.URLParam(r, "admissionID")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---- summary ----

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	counts := s.store.Summary()
	writeJSON(w, http.StatusOK, map[string]int{
		"notices":           counts.Notices,
		"albums":            counts.Albums,
		"messages":          counts.Messages,
		"unreadMessages":    counts.UnreadMessages,
		"admissions":        counts.Admissions,
		"pendingAdmissions": counts.PendingAdmissions,
	})
}

// ---- uploads and files ----

type uploadSummary struct {
	ID         string `json:"id"`
	PreviewURL string `json:"previewUrl"`
	Type       string `json:"type"`
	Name       string `json:"name"`
}

func (s *Server) handleStageUploads(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_multipart")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	var uploads []staging.Upload
	for _, header := range r.MultipartForm.File["files"] {
		upload, err := readUpload(header)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable_upload")
			return
		}
		uploads = append(uploads, upload)
	}
	if len(uploads) == 0 {
		writeError(w, http.StatusBadRequest, "no_files")
		return
	}

	staged := s.stager.Stage(uploads)
	out := make([]uploadSummary, 0, len(staged))
	for _, file := range staged {
		out = append(out, uploadSummary{
			ID:         file.ID,
			PreviewURL: file.PreviewHandle,
			Type:       string(file.Kind),
			Name:       file.DisplayName,
		})
	}
	// Unsupported content types were dropped silently; an empty result is
	// still a successful staging call.
	writeJSON(w, http.StatusCreated, out)
}

func readUpload(header *multipart.FileHeader) (staging.Upload, error) {
	file, err := header.Open()
	if err != nil {
		return staging.Upload{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return staging.Upload{}, err
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return staging.Upload{Name: header.Filename, ContentType: contentType, Data: data}, nil
}

func (s *Server) handleUnstageUpload(w http.ResponseWriter, r *http.Request) {
	if err := s.stager.Unstage(chi.URLParam(r, "uploadID")); err != nil {
		writeError(w, http.StatusNotFound, "upload_not_found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (s *Server) handleDrainUploads(w http.ResponseWriter, _ *http.Request) {
	s.stager.DrainAll()
	writeJSON(w, http.StatusOK, map[string]string{"status": "drained"})
}

func (s *Server) handleUploadPreview(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := s.stager.Preview(chi.URLParam(r, "uploadID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "upload_not_found")
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := s.blobs.Get(r.Context(), chi.URLParam(r, "blobKey"))
	if err != nil {
		writeError(w, http.StatusNotFound, "file_not_found")
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(data)
}

func (s *Server) commitUploads(ctx context.Context, uploadIDs []string) ([]model.Attachment, error) {
	if len(uploadIDs) == 0 {
		return nil, nil
	}
	return s.stager.Commit(ctx, uploadIDs, s.blobs)
}

var errImagesOnly = errors.New("images_only")

// commitImages commits staged uploads destined for a gallery album. Albums
// accept images only; kinds are checked up front so a rejected batch leaves
// every file staged.
func (s *Server) commitImages(ctx context.Context, inputs []albumImageInput) ([]model.GalleryImage, error) {
	ids := make([]string, 0, len(inputs))
	for _, input := range inputs {
		file, err := s.stager.Describe(input.UploadID)
		if err != nil {
			return nil, err
		}
		if file.Kind != model.FileKindImage {
			return nil, errImagesOnly
		}
		ids = append(ids, input.UploadID)
	}
	attachments, err := s.commitUploads(ctx, ids)
	if err != nil {
		return nil, err
	}

	images := make([]model.GalleryImage, 0, len(attachments))
	for i, att := range attachments {
		alt := strings.TrimSpace(inputs[i].Alt)
		if alt == "" {
			alt = staging.DefaultAltText(att.DisplayName)
		}
		images = append(images, model.GalleryImage{ID: att.ID, URL: att.URL, AltText: alt})
	}
	return images, nil
}

// discardAttachments removes durable blobs whose owning entity could not be
// created; without an owner they would be unreachable orphans.
func (s *Server) discardAttachments(ctx context.Context, attachments []model.Attachment) {
	for _, a := range attachments {
		s.deleteBlobForURL(ctx, a.URL)
	}
}

func (s *Server) discardImages(ctx context.Context, images []model.GalleryImage) {
	for _, img := range images {
		s.deleteBlobForURL(ctx, img.URL)
	}
}

func (s *Server) deleteBlobForURL(ctx context.Context, url string) {
	idx := strings.LastIndex(url, "/files/")
	if idx < 0 {
		return
	}
	key := url[idx+len("/files/"):]
	if key == "" {
		return
	}
	if err := s.blobs.Delete(ctx, key); err != nil {
		log.Printf("blob delete failed for %s: %v", key, err)
	}
}

// ---- helpers ----

// clientKey identifies a login caller for throttling: source address plus
// the identifier being tried.
func clientKey(r *http.Request, email string) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return host + "|" + email
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func writeStoreError(w http.ResponseWriter, err error) {
	var invalid store.ValidationError
	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "validation_failed",
			"field": invalid.Field,
			"hint":  invalid.Reason,
		})
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	default:
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}

func writeCommitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, staging.ErrStagedFileNotFound):
		writeError(w, http.StatusBadRequest, "unknown_upload")
	case errors.Is(err, errImagesOnly):
		writeError(w, http.StatusBadRequest, "images_only")
	default:
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}

func writeValidationError(w http.ResponseWriter, err error) {
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "validation_failed",
			"field": strings.ToLower(fields[0].Field()),
			"hint":  fields[0].Tag(),
		})
		return
	}
	writeError(w, http.StatusBadRequest, "validation_failed")
}
