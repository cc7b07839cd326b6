package app

import (
	"context"
	"fmt"

	"github.com/ecoplay/game-service/internal/app/domain/game"
	"github.com/ecoplay/game-service/internal/app/services/consents"
	"github.com/ecoplay/game-service/internal/app/services/games"
	"github.com/ecoplay/game-service/internal/app/services/matches"
	"github.com/ecoplay/game-service/internal/app/services/messages"
	"github.com/ecoplay/game-service/internal/app/services/reports"
	"github.com/ecoplay/game-service/internal/app/storage"
	"github.com/ecoplay/game-service/internal/app/storage/memory"
	"github.com/ecoplay/game-service/internal/app/system"
	"github.com/ecoplay/game-service/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Games    storage.GameStore
	Matches  storage.MatchStore
	Messages storage.MessageStore
	Consents storage.ConsentStore
}

// Application ties domain services together and manages their lifecycle.
type Application struct {
	manager *system.Manager
	log     *logger.Logger

	Games    *games.Service
	Matches  *matches.Service
	Messages *messages.Service
	Consents *consents.Service
	Reports  *reports.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, log *logger.Logger) (*Application, error) {
	return NewWithRand(stores, nil, log)
}

// NewWithRand is New with an explicit random source. Tests inject a
// deterministic one.
func NewWithRand(stores Stores, rng game.Rand, log *logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}
	if rng == nil {
		rng = game.NewRand()
	}

	mem := memory.New()
	if stores.Games == nil {
		stores.Games = mem
	}
	if stores.Matches == nil {
		stores.Matches = mem
	}
	if stores.Messages == nil {
		stores.Messages = mem
	}
	if stores.Consents == nil {
		stores.Consents = mem
	}

	manager := system.NewManager()

	gamesService := games.New(stores.Games, rng, log)
	matchesService := matches.New(stores.Matches, rng, log)
	messagesService := messages.New(stores.Messages, rng, log)
	consentsService := consents.New(stores.Consents, log)
	reportsService := reports.New(stores.Games, log)

	for _, name := range []string{"games", "matches", "messages", "consents", "reports"} {
		if err := manager.Register(system.NoopService{ServiceName: name}); err != nil {
			return nil, fmt.Errorf("register %s service: %w", name, err)
		}
	}

	return &Application{
		manager:  manager,
		log:      log,
		Games:    gamesService,
		Matches:  matchesService,
		Messages: messagesService,
		Consents: consentsService,
		Reports:  reportsService,
	}, nil
}

// Attach registers an additional lifecycle-managed service. Call before Start.
func (a *Application) Attach(service system.Service) error {
	return a.manager.Register(service)
}

// Start begins all registered services.
func (a *Application) Start(ctx context.Context) error {
	return a.manager.Start(ctx)
}

// Stop stops all services.
func (a *Application) Stop(ctx context.Context) error {
	return a.manager.Stop(ctx)
}
