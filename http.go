package assets

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

const sessionLocalsKey = "session"

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks the payload before it reaches the authenticator.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// StatusRequest is the set-status payload.
type StatusRequest struct {
	Status string `json:"status"`
}

// Validate checks the payload carries one of the lifecycle states.
func (r StatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.In(
			StatusAvailable,
			StatusInUse,
			StatusPendingApproval,
			StatusApproved,
			StatusRejected,
		)),
	)
}

// HTTPController maps the action surface onto HTTP routes. Sessions
// travel as bearer tokens; each handler rebuilds the Session from the
// token and threads it into the service.
type HTTPController struct {
	service *Service
	tokens  TokenService
	logger  Logger
}

// NewHTTPController returns a controller over the given service and
// token service.
func NewHTTPController(service *Service, tokens TokenService) *HTTPController {
	return &HTTPController{
		service: service,
		tokens:  tokens,
		logger:  defLogger{},
	}
}

func (h *HTTPController) WithLogger(logger Logger) *HTTPController {
	if logger != nil {
		h.logger = logger
	}
	return h
}

// RegisterRoutes mounts the action routes on the app.
func (h *HTTPController) RegisterRoutes(app *fiber.App) {
	app.Post("/login", h.LoginPost)

	protected := app.Group("/assets", h.RequireSession)
	protected.Get("/pending", h.PendingList)
	protected.Get("/mine", h.OwnList)
	protected.Get("/", h.OwnerSearch)
	protected.Post("/:id/approve", h.ApprovePost)
	protected.Post("/:id/reject", h.RejectPost)
	protected.Put("/:id/status", h.StatusPut)
}

// LoginPost authenticates the payload and responds with a session
// token.
func (h *HTTPController) LoginPost(c *fiber.Ctx) error {
	payload := LoginRequest{}
	if err := c.BodyParser(&payload); err != nil {
		return h.renderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse login payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return h.renderError(c, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload").
			WithCode(goerrors.CodeBadRequest))
	}

	session, err := h.service.Login(c.Context(), payload.Username, payload.Password)
	if err != nil {
		h.logger.Info("login rejected for %q", payload.Username)
		return h.renderError(c, err)
	}

	token, err := h.tokens.Generate(session)
	if err != nil {
		return h.renderError(c, err)
	}

	return c.JSON(fiber.Map{
		"token":    token,
		"username": session.Username,
		"role":     session.Role,
	})
}

// RequireSession rebuilds the session from the bearer token and
// stores it in request locals.
func (h *HTTPController) RequireSession(c *fiber.Ctx) error {
	raw := bearerToken(c.Get(fiber.HeaderAuthorization))
	if raw == "" {
		return h.renderError(c, ErrTokenInvalid)
	}

	session, err := h.tokens.Validate(raw)
	if err != nil {
		return h.renderError(c, err)
	}

	c.Locals(sessionLocalsKey, session)
	return c.Next()
}

// PendingList surfaces the approval queue.
func (h *HTTPController) PendingList(c *fiber.Ctx) error {
	records, err := h.service.ListPendingApproval(c.Context(), h.session(c))
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(fiber.Map{"assets": records})
}

// OwnList surfaces the session owner's assets.
func (h *HTTPController) OwnList(c *fiber.Ctx) error {
	records, err := h.service.ListOwn(c.Context(), h.session(c))
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(fiber.Map{"assets": records})
}

// OwnerSearch lists assets by owner query parameter.
func (h *HTTPController) OwnerSearch(c *fiber.Ctx) error {
	owner := c.Query("owner")
	records, err := h.service.SearchByOwner(c.Context(), h.session(c), owner)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(fiber.Map{"assets": records})
}

// ApprovePost approves a pending asset.
func (h *HTTPController) ApprovePost(c *fiber.Ctx) error {
	result, err := h.service.Approve(c.Context(), h.session(c), c.Params("id"))
	if err != nil {
		return h.renderError(c, err)
	}
	return h.renderResult(c, result)
}

// RejectPost rejects a pending asset.
func (h *HTTPController) RejectPost(c *fiber.Ctx) error {
	result, err := h.service.Reject(c.Context(), h.session(c), c.Params("id"))
	if err != nil {
		return h.renderError(c, err)
	}
	return h.renderResult(c, result)
}

// StatusPut writes a target status onto an asset.
func (h *HTTPController) StatusPut(c *fiber.Ctx) error {
	payload := StatusRequest{}
	if err := c.BodyParser(&payload); err != nil {
		return h.renderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse status payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return h.renderError(c, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid status payload").
			WithCode(goerrors.CodeBadRequest))
	}

	result, err := h.service.SetStatus(c.Context(), h.session(c), c.Params("id"), Status(payload.Status))
	if err != nil {
		return h.renderError(c, err)
	}
	return h.renderResult(c, result)
}

func (h *HTTPController) session(c *fiber.Ctx) *Session {
	session, _ := c.Locals(sessionLocalsKey).(*Session)
	return session
}

func (h *HTTPController) renderResult(c *fiber.Ctx, result UpdateResult) error {
	body := fiber.Map{"outcome": result.Outcome}
	if result.Asset != nil {
		body["asset"] = result.Asset
	}
	return c.JSON(body)
}

func (h *HTTPController) renderError(c *fiber.Ctx, err error) error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "an unexpected server error occurred").
			WithCode(goerrors.CodeInternal)
	}

	h.logger.Debug(
		"request error category=%s text_code=%s path=%s",
		richErr.Category, richErr.TextCode, c.OriginalURL(),
	)

	status := richErr.Code
	if status == 0 {
		status = goerrors.CodeInternal
	}

	return c.Status(int(status)).JSON(fiber.Map{
		"error":     richErr.Message,
		"text_code": richErr.TextCode,
	})
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, prefix))
	}
	return ""
}
