package handlers

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/foxxcyber/menu-board/internal/config"
	"github.com/foxxcyber/menu-board/internal/models"
	"github.com/foxxcyber/menu-board/internal/services"
)

// Error codes carried in the envelope
const (
	CodeBadRequest      = "bad_request"
	CodeValidation      = "validation_failed"
	CodeUnauthorized    = "unauthorized"
	CodeForbidden       = "forbidden"
	CodeNotFound        = "not_found"
	CodeConflict        = "conflict"
	CodeFeatureDisabled = "feature_disabled"
	CodeUnavailable     = "unavailable"
	CodeInternal        = "internal"
)

// Store is the persistence the handlers need; *database.DB implements it
type Store interface {
	services.MenuWriter

	Ping(ctx context.Context) error

	ListCategories(ctx context.Context) ([]*models.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, req *models.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ReorderCategories(ctx context.Context, ids []string) error
	InsertMissingCategories(ctx context.Context, categories []*models.Category) (int, error)

	ListItems(ctx context.Context, params *models.ItemListParams) ([]*models.Item, error)
	GetItemByID(ctx context.Context, id string) (*models.Item, error)
	CreateItem(ctx context.Context, req *models.CreateItemRequest) (*models.Item, error)
	UpdateItem(ctx context.Context, id string, req *models.UpdateItemRequest) (*models.Item, error)
	RestoreItem(ctx context.Context, id string) (*models.Item, error)
	DeleteItem(ctx context.Context, id string) error
	ReorderItems(ctx context.Context, categoryID string, ids []string) error

	ListOrders(ctx context.Context, status models.OrderStatus) ([]*models.Order, error)
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest, total float64) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, next models.OrderStatus) (*models.Order, error)

	CreateUser(ctx context.Context, email, passwordHash string, role models.Role) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserLastLogin(ctx context.Context, id int) error
	EnsureAdminUser(ctx context.Context, email, password string) (bool, error)
}

// MediaStore signs and removes objects in the media bucket
type MediaStore interface {
	PresignedUploadURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	GetPresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// MenuCache holds listing snapshots between writes
type MenuCache interface {
	Enabled() bool
	GetCategories(ctx context.Context, dst any) bool
	SetCategories(ctx context.Context, v any)
	GetItems(ctx context.Context, dst any) bool
	SetItems(ctx context.Context, v any)
	Invalidate(ctx context.Context)
}

// Options carries the optional dependencies of a Handler
type Options struct {
	Logger *zap.Logger
	Cache  MenuCache
	Media  MediaStore
}

// Handler holds all handler dependencies
type Handler struct {
	store    Store
	cfg      *config.Config
	log      *zap.Logger
	cache    MenuCache
	media    MediaStore
	dbStatus *services.Availability
	merger   *services.Merger
	validate *validator.Validate
}

// New creates a new Handler instance
func New(store Store, cfg *config.Config, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var cache MenuCache = services.NewSnapshotCache(nil, 0, logger)
	if opts.Cache != nil {
		cache = opts.Cache
	}

	return &Handler{
		store:    store,
		cfg:      cfg,
		log:      logger,
		cache:    cache,
		media:    opts.Media,
		dbStatus: services.NewAvailability(store.Ping, 10*time.Second),
		merger:   services.NewMerger(store, cfg.MergeConcurrency, logger.Named("merger")),
		validate: newValidator(),
	}
}

// APIResponse is the envelope of every response
type APIResponse struct {
	OK      bool        `json:"ok"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// FieldError describes one failed validation rule
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// requestError is returned by handlers and rendered by ErrorHandler
type requestError struct {
	status  int
	code    string
	message string
	details interface{}
}

func (e *requestError) Error() string {
	return e.message
}

// ErrorHandler is a custom error handler for Fiber
func ErrorHandler(c *fiber.Ctx, err error) error {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return c.Status(reqErr.status).JSON(APIResponse{
			Error:   reqErr.message,
			Code:    reqErr.code,
			Details: reqErr.details,
		})
	}

	status := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	}

	return Error(c, status, message)
}

// Success returns a successful response
func Success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(APIResponse{
		OK:   true,
		Data: data,
	})
}

// Created returns a 201 response
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		OK:   true,
		Data: data,
	})
}

// Message returns a successful response with a human-readable message
func Message(c *fiber.Ctx, data interface{}, message string) error {
	return c.JSON(APIResponse{
		OK:      true,
		Data:    data,
		Message: message,
	})
}

// Error returns an error response with the code implied by status
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(APIResponse{
		Error: message,
		Code:  codeFor(status),
	})
}

func codeFor(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return CodeBadRequest
	case fiber.StatusUnprocessableEntity:
		return CodeValidation
	case fiber.StatusUnauthorized:
		return CodeUnauthorized
	case fiber.StatusForbidden:
		return CodeForbidden
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusConflict:
		return CodeConflict
	case fiber.StatusServiceUnavailable:
		return CodeUnavailable
	default:
		if status >= 500 {
			return CodeInternal
		}
		return CodeBadRequest
	}
}

// bind parses the JSON body into dst and validates it
func (h *Handler) bind(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return &requestError{status: fiber.StatusBadRequest, code: CodeBadRequest, message: "invalid request body"}
	}
	return h.check(dst)
}

// check validates dst against its struct tags
func (h *Handler) check(dst interface{}) error {
	err := h.validate.Struct(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &requestError{status: fiber.StatusBadRequest, code: CodeBadRequest, message: err.Error()}
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{Field: jsonFieldPath(fe.Namespace()), Rule: fe.Tag()})
	}
	return &requestError{
		status:  fiber.StatusUnprocessableEntity,
		code:    CodeValidation,
		message: "validation failed",
		details: details,
	}
}

// jsonFieldPath drops the struct name from a validator namespace,
// "CreateItemRequest.variants[0].size" becomes "variants[0].size"
func jsonFieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// invalidateMenu drops cached listings after a write
func (h *Handler) invalidateMenu(c *fiber.Ctx) {
	h.cache.Invalidate(c.Context())
}
