// Package handler wires the favicon registry operations to HTTP routes.
package handler

import (
	"path"
	"strings"
	"time"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/iconreg/admin"
	"github.com/rise-and-shine/iconreg/favicon"
	"github.com/rise-and-shine/iconreg/filestore"
	"github.com/rise-and-shine/iconreg/formdata"
	"github.com/rise-and-shine/iconreg/logger"
	"github.com/rise-and-shine/iconreg/validation"
)

// cacheControl is the cache directive for binary asset responses. Content is
// immutable per storage key, so clients may cache for a year.
const cacheControl = "public, max-age=31536000, immutable"

// Handler exposes the registry over HTTP.
type Handler struct {
	favicons *favicon.Service
	sessions *admin.Service
	store    filestore.FileStore
	log      logger.Logger
}

func New(favicons *favicon.Service, sessions *admin.Service, store filestore.FileStore, log logger.Logger) *Handler {
	return &Handler{
		favicons: favicons,
		sessions: sessions,
		store:    store,
		log:      log.Named("http.handler"),
	}
}

// Register attaches all routes to the router.
func (h *Handler) Register(r fiber.Router) {
	api := r.Group("/api")

	api.Get("/health", h.health)

	api.Post("/favicons/upload", h.upload)
	api.Post("/favicons/canvas", h.canvas)
	api.Get("/favicons/:slug", h.getBySlug)
	api.Get("/directory", h.directory)

	api.Get("/storage/sources/:faviconId/original", h.sourceImage)
	api.Get("/storage/*", h.storedObject)

	api.Post("/admin/login", h.adminLogin)
	api.Post("/admin/logout", h.adminLogout)
	api.Get("/admin/verify", h.adminVerify)
	api.Post("/admin/favicons/delete", h.adminDelete)
}

func (h *Handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) upload(c *fiber.Ctx) error {
	boundary, err := formdata.Boundary(c.Get(fiber.HeaderContentType))
	if err != nil {
		return err
	}

	resp, err := h.favicons.IngestUpload(c.UserContext(), c.Body(), boundary)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *Handler) canvas(c *fiber.Ctx) error {
	var req favicon.CanvasRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.Wrap(err, errx.WithType(errx.T_Validation))
	}

	resp, err := h.favicons.IngestCanvas(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *Handler) getBySlug(c *fiber.Ctx) error {
	resp, err := h.favicons.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

func (h *Handler) directory(c *fiber.Ctx) error {
	var query favicon.DirectoryQuery
	if err := c.QueryParser(&query); err != nil {
		return errx.Wrap(err, errx.WithType(errx.T_Validation))
	}

	resp, err := h.favicons.Directory(c.UserContext(), query)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

func (h *Handler) sourceImage(c *fiber.Ctx) error {
	data, contentType, err := h.favicons.SourceImage(c.UserContext(), c.Params("faviconId"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, cacheControl)
	return c.Send(data)
}

func (h *Handler) storedObject(c *fiber.Ctx) error {
	key := c.Params("*")

	data, err := h.store.Get(c.UserContext(), key)
	if err != nil {
		return err
	}

	ext := strings.TrimPrefix(path.Ext(key), ".")
	contentType := filestore.ContentTypeFromExtension(ext)
	if contentType == filestore.ContentTypeOctetStream {
		contentType = filestore.DetectContentType(data)
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, cacheControl)
	return c.Send(data)
}

type loginRequest struct {
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

func (h *Handler) adminLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.Wrap(err, errx.WithType(errx.T_Validation))
	}
	if err := validation.ValidateSchema(req); err != nil {
		return err
	}

	token, expiresAt, err := h.sessions.VerifyPassword(req.Password)
	if err != nil {
		return err
	}

	return c.JSON(loginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) adminLogout(c *fiber.Ctx) error {
	token, err := bearerToken(c)
	if err != nil {
		return err
	}

	h.sessions.Logout(token)

	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) adminVerify(c *fiber.Ctx) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"valid": true})
}

type deleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

func (h *Handler) adminDelete(c *fiber.Ctx) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	var req deleteRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.Wrap(err, errx.WithType(errx.T_Validation))
	}
	if err := validation.ValidateSchema(req); err != nil {
		return err
	}

	return c.JSON(h.favicons.DeleteMany(c.UserContext(), req.IDs))
}

func (h *Handler) requireAdmin(c *fiber.Ctx) error {
	token, err := bearerToken(c)
	if err != nil {
		return err
	}

	if !h.sessions.VerifyToken(token) {
		return errx.New(
			"Invalid or expired session",
			errx.WithType(errx.T_Authentication),
			errx.WithCode(codeInvalidSession),
		)
	}

	return nil
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(c *fiber.Ctx) (string, error) {
	const prefix = "Bearer "

	auth := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(auth, prefix) {
		return "", errx.New(
			"Missing bearer token",
			errx.WithType(errx.T_Authentication),
			errx.WithCode(codeMissingToken),
		)
	}

	return strings.TrimPrefix(auth, prefix), nil
}
