package sales

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fertipos-api/internal/application/dto"
	"github.com/jhoicas/fertipos-api/internal/application/validation"
	"github.com/jhoicas/fertipos-api/internal/domain"
	"github.com/jhoicas/fertipos-api/internal/domain/entity"
	"github.com/jhoicas/fertipos-api/internal/domain/pos"
	"github.com/jhoicas/fertipos-api/internal/domain/repository"
	"github.com/jhoicas/fertipos-api/pkg/logger"
)

const (
	// sessionIdle tiempo sin uso tras el cual se olvida el estado en memoria de una sesión.
	sessionIdle = 10 * time.Minute
	// defaultPublishTimeout tope para publicar sale.completed fuera de la petición.
	defaultPublishTimeout = 10 * time.Second
)

// POSSessionUseCase casos de uso del carrito de caja. Cada operación carga el
// carrito de la sesión, lo modifica con el motor pos y lo vuelve a guardar.
// Las operaciones de una misma sesión se serializan dentro del proceso; entre
// procesos gana la última escritura.
type POSSessionUseCase struct {
	store     CartStore
	products  repository.ProductRepository
	customers repository.CustomerRepository
	tx        SaleTxRunner
	publisher EventPublisher
	metrics   Metrics
	validate  *validation.Validator
	log       *logger.Logger
	taxRate   decimal.Decimal

	publishTimeout time.Duration
	publishing     sync.WaitGroup

	mu       sync.Mutex
	sessions map[string]*sessionEntry
	lastGC   time.Time
	now      func() time.Time
}

// sessionEntry serializa las operaciones de una sesión. consumed indica que el
// carrito guardado pertenece a una venta ya registrada y no se pudo reemplazar.
type sessionEntry struct {
	mu       sync.Mutex
	refs     int
	lastUsed time.Time
	consumed bool
}

// SessionDeps dependencias del caso de uso.
type SessionDeps struct {
	Store     CartStore
	Products  repository.ProductRepository
	Customers repository.CustomerRepository
	Tx        SaleTxRunner
	Publisher EventPublisher // opcional
	Metrics   Metrics        // opcional
	Validate  *validation.Validator
	Log       *logger.Logger // opcional
	TaxRate   decimal.Decimal
	// PublishTimeout tope de la publicación asíncrona. Cero = 10s.
	PublishTimeout time.Duration
}

// NewPOSSessionUseCase construye el caso de uso.
func NewPOSSessionUseCase(d SessionDeps) *POSSessionUseCase {
	if d.Publisher == nil {
		d.Publisher = NopPublisher{}
	}
	if d.Metrics == nil {
		d.Metrics = NopMetrics{}
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Validate == nil {
		d.Validate = validation.New()
	}
	if d.PublishTimeout <= 0 {
		d.PublishTimeout = defaultPublishTimeout
	}
	return &POSSessionUseCase{
		store:     d.Store,
		products:  d.Products,
		customers: d.Customers,
		tx:        d.Tx,
		publisher: d.Publisher,
		metrics:   d.Metrics,
		validate:  d.Validate,
		log:       d.Log.Component("pos"),
		taxRate:   d.TaxRate,

		publishTimeout: d.PublishTimeout,
		sessions:       make(map[string]*sessionEntry),
		lastGC:         time.Now(),
		now:            time.Now,
	}
}

// GetCart estado actual del carrito de la sesión.
func (uc *POSSessionUseCase) GetCart(ctx context.Context, s Session) (*dto.CartResponse, error) {
	e := uc.acquire(s)
	defer uc.release(e)
	cart, err := uc.load(ctx, s, e)
	if err != nil {
		return nil, err
	}
	return ToCartResponse(cart), nil
}

// AddItem agrega un producto del catálogo de la tienda (toma precio y stock vigentes).
func (uc *POSSessionUseCase) AddItem(ctx context.Context, s Session, in dto.AddCartItemRequest) (*dto.CartResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	product, err := uc.products.GetByID(ctx, s.TenantID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.mutate(ctx, s, "add_item", func(c *pos.Cart) error {
		return c.AddItem(ToPOSProduct(product))
	})
}

// UpdateQuantity fija la cantidad de una línea (>= 1).
func (uc *POSSessionUseCase) UpdateQuantity(ctx context.Context, s Session, productID string, in dto.UpdateCartItemRequest) (*dto.CartResponse, error) {
	return uc.mutate(ctx, s, "update_quantity", func(c *pos.Cart) error {
		return c.UpdateQuantity(productID, in.Quantity)
	})
}

// RemoveItem quita una línea.
func (uc *POSSessionUseCase) RemoveItem(ctx context.Context, s Session, productID string) (*dto.CartResponse, error) {
	return uc.mutate(ctx, s, "remove_item", func(c *pos.Cart) error {
		return c.RemoveItem(productID)
	})
}

// SelectCustomer asocia un cliente de la tienda o el cliente de mostrador.
func (uc *POSSessionUseCase) SelectCustomer(ctx context.Context, s Session, in dto.SelectCustomerRequest) (*dto.CartResponse, error) {
	var sel pos.CustomerSelection
	switch {
	case in.WalkIn || in.CustomerID == entity.WalkInCustomerID:
		sel = pos.WalkIn()
	case in.CustomerID == "":
		return nil, domain.NewFieldError("customer_id", "campo requerido")
	default:
		customer, err := uc.customers.GetByID(ctx, s.TenantID, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
		if !customer.IsActive {
			return nil, domain.NewFieldError("customer_id", "cliente inactivo")
		}
		sel = pos.CustomerSelection{
			ID:                 customer.ID,
			Name:               customer.Name,
			Phone:              customer.Phone,
			Email:              customer.Email,
			OutstandingBalance: customer.OutstandingBalance,
		}
	}
	return uc.mutate(ctx, s, "select_customer", func(c *pos.Cart) error {
		c.SelectCustomer(sel)
		return nil
	})
}

// BeginPayment pasa el carrito a listo para cobrar.
func (uc *POSSessionUseCase) BeginPayment(ctx context.Context, s Session) (*dto.CartResponse, error) {
	return uc.mutate(ctx, s, "begin_payment", func(c *pos.Cart) error {
		return c.BeginPayment()
	})
}

// CancelPayment vuelve a edición.
func (uc *POSSessionUseCase) CancelPayment(ctx context.Context, s Session) (*dto.CartResponse, error) {
	return uc.mutate(ctx, s, "cancel_payment", func(c *pos.Cart) error {
		c.CancelPayment()
		return nil
	})
}

// Clear descarta el carrito de la sesión.
func (uc *POSSessionUseCase) Clear(ctx context.Context, s Session) (*dto.CartResponse, error) {
	e := uc.acquire(s)
	defer uc.release(e)
	if err := uc.store.Delete(ctx, s.Key()); err != nil {
		return nil, fmt.Errorf("pos: borrar carrito: %w", err)
	}
	e.consumed = false
	uc.metrics.CartOperation("clear")
	return ToCartResponse(uc.newCart(s)), nil
}

// Checkout cobra el carrito: registra la venta en una transacción y, si confirma,
// vacía el carrito y publica el evento en segundo plano. Si el registro falla el
// carrito no cambia.
func (uc *POSSessionUseCase) Checkout(ctx context.Context, s Session, in dto.CheckoutRequest) (*dto.SaleResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	e := uc.acquire(s)
	defer uc.release(e)

	cart, err := uc.load(ctx, s, e)
	if err != nil {
		return nil, err
	}
	recorder := NewTxSaleRecorder(uc.tx)
	sale, err := cart.Checkout(ctx, pos.Payment{Method: pos.PaymentMethod(in.PaymentMethod), Tendered: in.AmountTendered}, recorder)
	if err != nil {
		uc.metrics.CheckoutFailed(failureReason(err))
		uc.log.Warn().Err(err).Str("tenant_id", s.TenantID).Str("user_id", s.UserID).Msg("cobro rechazado")
		return nil, err
	}
	uc.resetAfterSale(ctx, s, e, sale.ID)

	ent := recorder.Recorded()
	uc.metrics.SaleCompleted(s.TenantID, ent.PaymentMethod, ent.GrandTotal)
	uc.log.Info().Str("tenant_id", s.TenantID).Str("sale_id", ent.ID).Str("total", ent.GrandTotal.StringFixed(2)).Msg("venta registrada")
	uc.publish(ctx, ent)
	return ToSaleResponse(ent), nil
}

// Wait espera las publicaciones de ventas en curso (apagado ordenado).
func (uc *POSSessionUseCase) Wait() {
	uc.publishing.Wait()
}

// resetAfterSale deja la sesión sin el carrito vendido. Si el almacén no permite
// borrarlo ni pisarlo con uno vacío, la sesión lo ignora hasta la próxima escritura.
func (uc *POSSessionUseCase) resetAfterSale(ctx context.Context, s Session, e *sessionEntry, saleID string) {
	delErr := uc.store.Delete(ctx, s.Key())
	if delErr == nil {
		e.consumed = false
		return
	}
	saveErr := uc.store.Save(ctx, s.Key(), uc.newCart(s).Snapshot())
	if saveErr == nil {
		uc.log.Warn().Err(delErr).Str("sale_id", saleID).Msg("carrito reemplazado por uno vacío tras fallar el borrado")
		e.consumed = false
		return
	}
	uc.log.Error().Err(errors.Join(delErr, saveErr)).Str("sale_id", saleID).
		Msg("no se pudo vaciar el carrito después del cobro; queda marcado como consumido")
	e.consumed = true
}

// publish envía sale.completed sin bloquear la respuesta ni la sesión.
func (uc *POSSessionUseCase) publish(ctx context.Context, ent *entity.Sale) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.publishTimeout)
	uc.publishing.Add(1)
	go func() {
		defer uc.publishing.Done()
		defer cancel()
		if err := uc.publisher.PublishSaleCompleted(pubCtx, ent); err != nil {
			uc.log.Error().Err(err).Str("sale_id", ent.ID).Msg("no se pudo publicar sale.completed")
		}
	}()
}

func (uc *POSSessionUseCase) mutate(ctx context.Context, s Session, op string, fn func(*pos.Cart) error) (*dto.CartResponse, error) {
	e := uc.acquire(s)
	defer uc.release(e)
	cart, err := uc.load(ctx, s, e)
	if err != nil {
		return nil, err
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	if err := uc.store.Save(ctx, s.Key(), cart.Snapshot()); err != nil {
		return nil, fmt.Errorf("pos: guardar carrito: %w", err)
	}
	e.consumed = false
	uc.metrics.CartOperation(op)
	return ToCartResponse(cart), nil
}

func (uc *POSSessionUseCase) load(ctx context.Context, s Session, e *sessionEntry) (*pos.Cart, error) {
	if e.consumed {
		return uc.newCart(s), nil
	}
	st, ok, err := uc.store.Load(ctx, s.Key())
	if err != nil {
		return nil, fmt.Errorf("pos: leer carrito: %w", err)
	}
	if !ok {
		return uc.newCart(s), nil
	}
	cart, err := pos.Restore(st, uc.cartOptions(s)...)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", s.Key()).Msg("carrito guardado inválido, se descarta")
		return uc.newCart(s), nil
	}
	return cart, nil
}

func (uc *POSSessionUseCase) newCart(s Session) *pos.Cart {
	return pos.NewCart(uc.cartOptions(s)...)
}

func (uc *POSSessionUseCase) cartOptions(s Session) []pos.Option {
	return []pos.Option{pos.WithTaxRate(uc.taxRate), pos.WithOwner(s.TenantID, s.UserID)}
}

// acquire toma el lock de la sesión. Cada tanto olvida las sesiones inactivas
// que nadie usa y que no tienen un carrito consumido pendiente.
func (uc *POSSessionUseCase) acquire(s Session) *sessionEntry {
	now := uc.now()
	uc.mu.Lock()
	if now.Sub(uc.lastGC) > sessionIdle {
		for k, e := range uc.sessions {
			if e.refs == 0 && !e.consumed && now.Sub(e.lastUsed) > sessionIdle {
				delete(uc.sessions, k)
			}
		}
		uc.lastGC = now
	}
	e, ok := uc.sessions[s.Key()]
	if !ok {
		e = &sessionEntry{}
		uc.sessions[s.Key()] = e
	}
	e.refs++
	uc.mu.Unlock()

	e.mu.Lock()
	return e
}

func (uc *POSSessionUseCase) release(e *sessionEntry) {
	e.mu.Unlock()
	uc.mu.Lock()
	e.refs--
	e.lastUsed = uc.now()
	uc.mu.Unlock()
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientTender):
		return "insufficient_tender"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrPreconditionFailed):
		return "precondition"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	default:
		return "persistence"
	}
}

// ToPOSProduct copia del producto del catálogo para el carrito.
func ToPOSProduct(p *entity.Product) pos.Product {
	return pos.Product{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		UnitPrice:   p.SalePrice,
		UnitMeasure: p.Unit,
		Stock:       p.CurrentStock,
		HSNCode:     p.HSNCode,
	}
}

// ToCartResponse vista del carrito con totales y avisos de stock.
func ToCartResponse(c *pos.Cart) *dto.CartResponse {
	totals := c.ComputeTotals()
	items := c.Items()
	lines := make([]dto.CartLineResponse, 0, len(items))
	for _, it := range items {
		lines = append(lines, dto.CartLineResponse{
			ProductID:    it.Product.ID,
			SKU:          it.Product.SKU,
			Name:         it.Product.Name,
			Unit:         it.Product.UnitMeasure,
			UnitPrice:    it.Product.UnitPrice,
			Quantity:     it.Quantity,
			Subtotal:     it.Subtotal(),
			StockWarning: it.ExceedsStock(),
		})
	}
	out := &dto.CartResponse{
		Status:   string(c.Status()),
		Items:    lines,
		TaxRate:  c.TaxRate(),
		Subtotal: totals.Subtotal,
		Tax:      totals.Tax,
		Total:    totals.Total,
	}
	if sel, ok := c.Customer(); ok {
		id := sel.ID
		if sel.WalkIn {
			id = entity.WalkInCustomerID
		}
		out.Customer = &dto.CartCustomerResponse{
			ID:                 id,
			Name:               sel.Name,
			Phone:              sel.Phone,
			OutstandingBalance: sel.OutstandingBalance,
			WalkIn:             sel.WalkIn,
		}
	}
	return out
}
