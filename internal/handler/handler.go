package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/northwind-labs/employee-directory/backend/internal/config"
	"github.com/northwind-labs/employee-directory/backend/internal/repository"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	translator    ut.Translator
	eventsChannel *amqp.Channel
	redisClient   *redis.Client

	Mux *chi.Mux
}

// NewHandler wires the HTTP layer. eventsCh and rdb may be nil, in which case
// lifecycle events and the employee cache are disabled.
func NewHandler(cfg *config.Config, repo *repository.Repository, eventsCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		translator:    trans,
		eventsChannel: eventsCh,
		redisClient:   rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// everything below requires a valid session
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.employeeCtx)
				r.Get("/", h.GetEmployee)
				r.Patch("/", h.UpdateEmployee)
				r.Delete("/", h.DeleteEmployee)
			})
		})
	})
}
