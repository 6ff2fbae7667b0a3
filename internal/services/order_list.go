package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"vendorapp/internal/metrics"
	"vendorapp/internal/models"
	"vendorapp/internal/repositories"
)

// PageSize is the number of orders requested per page.
const PageSize = 10

// OrderListController owns the paginated, filtered order list of the logged-in vendor.
//
// Page requests run on the caller's goroutine without holding the lock. Every
// request carries a sequence number and only a response to the most recently
// issued request is applied; older responses are dropped.
type OrderListController struct {
	mu       sync.Mutex
	repo     repositories.OrderRepository
	logger   *zap.Logger
	now      func() time.Time
	pageSize int

	vendorID   string
	selection  models.FilterSelection
	dateRange  *models.DateRange
	items      []models.Order
	page       int
	hasMore    bool
	loaded     bool
	state      models.ListState
	refreshing bool
	lastErr    error
	seq        uint64
}

type pageRequest struct {
	seq      uint64
	vendorID string
	query    models.OrderQuery
}

// NewOrderListController creates a controller with no vendor; call Reset after login.
func NewOrderListController(repo repositories.OrderRepository, logger *zap.Logger) *OrderListController {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &OrderListController{
		repo:     repo,
		logger:   logger,
		now:      time.Now,
		pageSize: PageSize,
	}
	c.resetLocked("")
	return c
}

// Reset starts over for vendorID, dropping every loaded order and any
// request still in flight. An empty vendorID logs the list out.
func (c *OrderListController) Reset(vendorID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked(vendorID)
}

func (c *OrderListController) resetLocked(vendorID string) {
	c.vendorID = vendorID
	c.selection = models.FilterSelection{Kind: models.FilterAll}
	c.dateRange = nil
	c.items = nil
	c.page = 1
	c.hasMore = true
	c.loaded = false
	c.state = models.ListIdle
	c.refreshing = false
	c.lastErr = nil
	c.seq++
	metrics.OrderListItems.Set(0)
}

// SetFilter applies selection and loads the first page.
func (c *OrderListController) SetFilter(ctx context.Context, selection models.FilterSelection) error {
	return c.reload(ctx, &selection, false)
}

// Refresh reloads the first page with the current filter.
func (c *OrderListController) Refresh(ctx context.Context) error {
	return c.reload(ctx, nil, true)
}

// EnsureLoaded loads the first page if nothing was requested yet.
func (c *OrderListController) EnsureLoaded(ctx context.Context) error {
	c.mu.Lock()
	idle := c.state == models.ListIdle
	c.mu.Unlock()
	if !idle {
		return nil
	}
	return c.reload(ctx, nil, false)
}

func (c *OrderListController) reload(ctx context.Context, selection *models.FilterSelection, refreshing bool) error {
	c.mu.Lock()
	if c.vendorID == "" {
		c.mu.Unlock()
		return ErrNoVendor
	}
	if selection != nil {
		c.selection = *selection
	}
	dateRange, err := ResolveFilter(c.selection, c.now())
	if err != nil {
		c.logger.Warn("filter cannot be applied, showing all orders",
			zap.String("filter", string(c.selection.Kind)), zap.Error(err))
		c.selection = models.FilterSelection{Kind: models.FilterAll}
		dateRange = nil
	}
	c.dateRange = dateRange
	c.page = 1
	c.hasMore = true
	// Items stay visible until page 1 replaces them.
	c.loaded = false
	c.state = models.ListLoadingFirstPage
	c.refreshing = refreshing
	c.lastErr = nil
	kind := c.selection.Kind
	req := c.nextRequestLocked()
	c.mu.Unlock()

	if dateRange != nil {
		c.logger.Debug("date filter applied",
			zap.String("filter", string(kind)),
			zap.String("startDate", dateRange.StartISO()),
			zap.String("endDate", dateRange.EndISO()))
	}
	return c.fetch(ctx, req)
}

// LoadNextPage appends the next page. It does nothing when there is no
// more data, a request is already in flight, or the first page never loaded.
func (c *OrderListController) LoadNextPage(ctx context.Context) error {
	c.mu.Lock()
	if c.vendorID == "" || !c.hasMore || !c.loaded ||
		c.state == models.ListLoadingFirstPage || c.state == models.ListLoadingNextPage {
		c.mu.Unlock()
		return nil
	}
	c.page++
	c.state = models.ListLoadingNextPage
	req := c.nextRequestLocked()
	c.mu.Unlock()

	return c.fetch(ctx, req)
}

func (c *OrderListController) nextRequestLocked() pageRequest {
	c.seq++
	return pageRequest{
		seq:      c.seq,
		vendorID: c.vendorID,
		query:    models.OrderQuery{Page: c.page, Limit: c.pageSize, Range: c.dateRange},
	}
}

func (c *OrderListController) fetch(ctx context.Context, req pageRequest) error {
	orders, err := c.repo.ListByVendor(ctx, req.vendorID, req.query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if req.seq != c.seq {
		metrics.StaleResponsesTotal.Inc()
		c.logger.Debug("discarding stale order page",
			zap.Int("page", req.query.Page), zap.Uint64("seq", req.seq), zap.Uint64("latest", c.seq))
		return nil
	}

	c.refreshing = false
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("list_orders").Inc()
		c.logger.Error("error fetching orders", zap.Int("page", req.query.Page), zap.Error(err))
		c.state = models.ListError
		c.lastErr = err
		if req.query.Page > 1 {
			c.page = req.query.Page - 1
		}
		return err
	}

	if req.query.Page == 1 {
		c.items = appendUnique(make([]models.Order, 0, len(orders)), orders)
		c.loaded = true
	} else {
		c.items = appendUnique(c.items, orders)
	}
	c.hasMore = len(orders) == c.pageSize
	c.state = models.ListReady
	c.lastErr = nil

	metrics.PagesLoadedTotal.Inc()
	metrics.OrderListItems.Set(float64(len(c.items)))
	return nil
}

// appendUnique appends orders whose key is not already present.
func appendUnique(items, orders []models.Order) []models.Order {
	seen := make(map[models.OrderKey]struct{}, len(items)+len(orders))
	for _, o := range items {
		seen[o.Key()] = struct{}{}
	}
	for _, o := range orders {
		key := o.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, o)
	}
	return items
}

// Snapshot returns a copy of the current list state.
func (c *OrderListController) Snapshot() models.PageState {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]models.Order, len(c.items))
	copy(items, c.items)
	return models.PageState{
		VendorID:   c.vendorID,
		Selection:  c.selection,
		Items:      items,
		PageNumber: c.page,
		HasMore:    c.hasMore,
		State:      c.state,
		Refreshing: c.refreshing,
		LastError:  c.lastErr,
	}
}

// Find looks up a loaded order. An empty key.VendorID matches the first
// entry with the order id.
func (c *OrderListController) Find(key models.OrderKey) (models.Order, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexLocked(key); i >= 0 {
		return c.items[i], true
	}
	return models.Order{}, false
}

// Replace overwrites the loaded copy of order after a confirmed edit.
func (c *OrderListController) Replace(order models.Order) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexLocked(order.Key()); i >= 0 {
		c.items[i] = order
		return true
	}
	return false
}

func (c *OrderListController) indexLocked(key models.OrderKey) int {
	for i, o := range c.items {
		if o.OrderID != key.OrderID {
			continue
		}
		if key.VendorID == "" || o.Vendors.VendorID() == key.VendorID {
			return i
		}
	}
	return -1
}
