package handler

import (
	"context"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mpetrov/geovault/internal/logger"
	"github.com/mpetrov/geovault/internal/model"
)

// ZoneRegistry is the safe zone surface consumed by the handlers.
type ZoneRegistry interface {
	Create(ctx context.Context, params model.CreateZoneParams) (model.SafeZone, error)
	Get(ctx context.Context, id uuid.UUID) (model.SafeZone, error)
	List(ctx context.Context) ([]model.SafeZone, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// FileVault is the encrypted file surface consumed by the handlers.
type FileVault interface {
	Store(ctx context.Context, params model.StoreFileParams) (model.EncryptedFile, error)
	Retrieve(ctx context.Context, id uuid.UUID, actor model.Actor, claimed model.Coordinate) (model.EncryptedFile, []byte, model.Decision, error)
	Check(ctx context.Context, id uuid.UUID, actor model.Actor, claimed model.Coordinate) (model.Decision, error)
	Remove(ctx context.Context, id uuid.UUID, actor model.Actor) error
	List(ctx context.Context) ([]model.EncryptedFile, error)
	Attempts(ctx context.Context, id uuid.UUID, actor model.Actor) ([]model.AccessAttempt, error)
}

type Handler struct {
	logger   *logger.Logger
	zones    ZoneRegistry
	vault    FileVault
	validate *validator.Validate
}

func New(logger *logger.Logger, zones ZoneRegistry, vault FileVault) *Handler {
	return &Handler{
		logger:   logger,
		zones:    zones,
		vault:    vault,
		validate: validator.New(),
	}
}

func (h *Handler) log(r *http.Request) *logger.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return &logger.Logger{Logger: h.logger.With(slog.String("request_id", reqID))}
}
