package propertyservice

import (
	"log/slog"

	httpadapter "estatehub/contexts/listings/property-service/adapters/http"
	"estatehub/contexts/listings/property-service/adapters/memory"
	"estatehub/contexts/listings/property-service/application/commands"
	"estatehub/contexts/listings/property-service/application/queries"
	"estatehub/contexts/listings/property-service/domain/entities"
	"estatehub/contexts/listings/property-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
	Images  *memory.ImageStore
}

type Dependencies struct {
	Repository ports.Repository
	Images     ports.ImageStore
	Notifier   ports.AdminNotifier
	Owners     ports.OwnerDirectory
	Publisher  ports.EventPublisher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			SubmitProperty: commands.SubmitPropertyUseCase{
				Repository: deps.Repository,
				Images:     deps.Images,
				Notifier:   deps.Notifier,
				Publisher:  deps.Publisher,
				Clock:      deps.Clock,
				IDGen:      deps.IDGen,
				Logger:     deps.Logger,
			},
			EditProperty: commands.EditPropertyUseCase{
				Repository: deps.Repository,
				Images:     deps.Images,
				Publisher:  deps.Publisher,
				Clock:      deps.Clock,
				IDGen:      deps.IDGen,
				Logger:     deps.Logger,
			},
			SetStatus: commands.SetStatusUseCase{
				Repository: deps.Repository,
				Publisher:  deps.Publisher,
				Clock:      deps.Clock,
				IDGen:      deps.IDGen,
				Logger:     deps.Logger,
			},
			DeleteProperty: commands.DeletePropertyUseCase{
				Repository: deps.Repository,
				Images:     deps.Images,
				Publisher:  deps.Publisher,
				Clock:      deps.Clock,
				IDGen:      deps.IDGen,
				Logger:     deps.Logger,
			},
			Queries: queries.QueryUseCase{
				Repository: deps.Repository,
				Owners:     deps.Owners,
				Images:     deps.Images,
				Logger:     deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

// NewInMemoryModule wires memory storage. notifier, owners and publisher may be nil.
func NewInMemoryModule(
	seed []entities.Property,
	notifier ports.AdminNotifier,
	owners ports.OwnerDirectory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(seed)
	images := memory.NewImageStore()
	module := NewModule(Dependencies{
		Repository: store,
		Images:     images,
		Notifier:   notifier,
		Owners:     owners,
		Publisher:  publisher,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	module.Images = images
	return module
}
