package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"shopfront/config"
	"shopfront/internal/domain/entity"
	"shopfront/internal/domain/resource"
	"shopfront/internal/observe"
	"shopfront/internal/usecase"
)

const statusBuffer = 16

// addressCoordinator sequences the search and selection flows of one user's
// address book and republishes service results as observable state.
type addressCoordinator struct {
	addressUsecase usecase.AddressUsecase
	logger         *slog.Logger

	addresses        *observe.Value[[]*entity.Address]
	selectedAddress  *observe.Value[*entity.Address]
	selectedLocation *observe.Value[entity.LatLng]
	predictions      *observe.Value[resource.Resource[[]*entity.PlacePrediction]]
	status           chan resource.Resource[string]

	debounce       time.Duration
	minQueryLength int

	// mu guards the debounce timer, the search generation and closed.
	mu        sync.Mutex
	timer     *time.Timer
	searchGen uint64
	closed    bool

	ctx       context.Context
	cancel    context.CancelFunc
	stopWatch func()
}

// NewAddressCoordinatorFactory provides per-user coordinators. Each
// coordinator subscribes to the store watch for its user on construction.
func NewAddressCoordinatorFactory(
	addressUsecase usecase.AddressUsecase,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.AddressCoordinatorFactory {
	return func(ctx context.Context, userID string) (usecase.AddressCoordinator, error) {
		return newAddressCoordinator(ctx, userID, addressUsecase, cfg, logger)
	}
}

func newAddressCoordinator(
	ctx context.Context,
	userID string,
	addressUsecase usecase.AddressUsecase,
	cfg *config.Config,
	logger *slog.Logger,
) (*addressCoordinator, error) {
	coordCtx, cancel := context.WithCancel(ctx)

	c := &addressCoordinator{
		addressUsecase:   addressUsecase,
		logger:           logger,
		addresses:        observe.NewValue[[]*entity.Address](),
		selectedAddress:  observe.NewValue[*entity.Address](),
		selectedLocation: observe.NewValue[entity.LatLng](),
		predictions:      observe.NewValue[resource.Resource[[]*entity.PlacePrediction]](),
		status:           make(chan resource.Resource[string], statusBuffer),
		debounce:         cfg.AddressSearchDebounce(),
		minQueryLength:   cfg.AddressMinQueryLength(),
		ctx:              coordCtx,
		cancel:           cancel,
	}

	updates, stop, err := addressUsecase.WatchAddresses(coordCtx, userID)
	if err != nil {
		cancel()

		return nil, err
	}
	c.stopWatch = stop

	go func() {
		for addresses := range updates {
			c.addresses.Set(addresses)
		}
	}()

	return c, nil
}

// Addresses is the live, store-backed address list.
func (c *addressCoordinator) Addresses() *observe.Value[[]*entity.Address] {
	return c.addresses
}

// SelectedAddress is the address currently chosen for map or edit flows.
func (c *addressCoordinator) SelectedAddress() *observe.Value[*entity.Address] {
	return c.selectedAddress
}

// SelectedLocation is the last resolved map coordinate.
func (c *addressCoordinator) SelectedLocation() *observe.Value[entity.LatLng] {
	return c.selectedLocation
}

// Predictions holds the last search's result, replaced on each new query.
func (c *addressCoordinator) Predictions() *observe.Value[resource.Resource[[]*entity.PlacePrediction]] {
	return c.predictions
}

// Status carries the last operation's outcome for loading/error display.
func (c *addressCoordinator) Status() <-chan resource.Resource[string] {
	return c.status
}

// SearchPlaces samples raw input. Every call supersedes the pending query:
// the timer restarts and older in-flight results are discarded when they
// arrive. Queries below the minimum length publish an empty result
// synchronously and never reach the collaborator.
func (c *addressCoordinator) SearchPlaces(query string) {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()

		return
	}

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	c.searchGen++
	gen := c.searchGen

	if len([]rune(query)) < c.minQueryLength {
		c.mu.Unlock()
		c.predictions.Set(resource.Success([]*entity.PlacePrediction{}))

		return
	}

	c.timer = time.AfterFunc(c.debounce, func() {
		c.runSearch(gen, query)
	})
	c.mu.Unlock()
}

// runSearch dispatches the debounced lookup and republishes its pipeline.
// Results of a superseded generation are dropped unpublished.
func (c *addressCoordinator) runSearch(gen uint64, query string) {
	for res := range c.addressUsecase.PlacePredictions(c.ctx, query) {
		if c.isStale(gen) {
			return
		}

		c.predictions.Set(res)
		if res.IsError() {
			c.publishStatus(resource.Error[string](res.Message(), res.Cause()))
		}
	}
}

func (c *addressCoordinator) isStale(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed || gen != c.searchGen
}

// SelectPrediction runs the fixed chain: place details, selected location,
// reverse geocode, draft address. A failing step publishes to Status and
// the chain stops without a partial draft.
func (c *addressCoordinator) SelectPrediction(ctx context.Context, placeID string) {
	c.publishStatus(resource.Loading[string]())

	details := c.addressUsecase.PlaceDetails(ctx, placeID)
	if details.IsError() {
		c.publishStatus(resource.Error[string](details.Message(), details.Cause()))

		return
	}

	location := details.Value().Location
	c.selectedLocation.Set(location)

	draft := c.addressUsecase.AddressFromLocation(ctx, location)
	if draft.IsError() {
		c.publishStatus(resource.Error[string](draft.Message(), draft.Cause()))

		return
	}

	// Carry the place identity onto the draft so a later save can be
	// matched back to the prediction.
	address := draft.Value()
	address.PlaceID = details.Value().PlaceID
	if details.Value().FormattedAddress != "" {
		address.FormattedAddress = details.Value().FormattedAddress
	}

	c.selectedAddress.Set(address)
	c.publishStatus(resource.Success("prediction_selected"))
}

// SelectAddress publishes an existing address as the selection.
func (c *addressCoordinator) SelectAddress(address *entity.Address) {
	c.selectedAddress.Set(address)
	if address != nil && address.HasCoordinates() {
		c.selectedLocation.Set(entity.LatLng{
			Latitude:  address.Latitude,
			Longitude: address.Longitude,
		})
	}
}

// Close tears down the debounce timer, the store subscription and all
// observable state. Further calls are no-ops.
func (c *addressCoordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()

		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	c.cancel()
	c.stopWatch()

	c.addresses.Close()
	c.selectedAddress.Close()
	c.selectedLocation.Close()
	c.predictions.Close()
	close(c.status)
}

// publishStatus pushes without blocking; the oldest unread status is
// dropped first so the channel always holds the most recent outcomes.
func (c *addressCoordinator) publishStatus(res resource.Resource[string]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	for {
		select {
		case c.status <- res:
			return
		default:
			select {
			case <-c.status:
			default:
			}
		}
	}
}
