package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fertipos-api/internal/application/dto"
	"github.com/jhoicas/fertipos-api/internal/application/sales"
	"github.com/jhoicas/fertipos-api/internal/application/usecase"
)

// POSHandler carrito de caja de la sesión (tienda + usuario del token).
type POSHandler struct {
	uc        *sales.POSSessionUseCase
	products  *usecase.ProductUseCase
	customers *usecase.CustomerUseCase
}

// NewPOSHandler construye el handler. products y customers alimentan la búsqueda desde caja.
func NewPOSHandler(uc *sales.POSSessionUseCase, products *usecase.ProductUseCase, customers *usecase.CustomerUseCase) *POSHandler {
	return &POSHandler{uc: uc, products: products, customers: customers}
}

func session(c *fiber.Ctx) sales.Session {
	return sales.Session{TenantID: GetTenantID(c), UserID: GetUserID(c)}
}

func cartResult(c *fiber.Ctx, out *dto.CartResponse, err error) error {
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetCart godoc
// @Summary      Carrito de la sesión
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/pos/cart [get]
func (h *POSHandler) GetCart(c *fiber.Ctx) error {
	out, err := h.uc.GetCart(c.UserContext(), session(c))
	return cartResult(c, out, err)
}

// AddItem godoc
// @Summary      Agregar producto al carrito
// @Description  Si el producto ya está en el carrito incrementa la cantidad.
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartItemRequest  true  "product_id"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pos/cart/items [post]
func (h *POSHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddItem(c.UserContext(), session(c), in)
	return cartResult(c, out, err)
}

// UpdateQuantity PUT /api/pos/cart/items/:productId
func (h *POSHandler) UpdateQuantity(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateQuantity(c.UserContext(), session(c), c.Params("productId"), in)
	return cartResult(c, out, err)
}

// RemoveItem DELETE /api/pos/cart/items/:productId
func (h *POSHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(c.UserContext(), session(c), c.Params("productId"))
	return cartResult(c, out, err)
}

// SelectCustomer PUT /api/pos/cart/customer
func (h *POSHandler) SelectCustomer(c *fiber.Ctx) error {
	var in dto.SelectCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SelectCustomer(c.UserContext(), session(c), in)
	return cartResult(c, out, err)
}

// BeginPayment POST /api/pos/cart/payment
func (h *POSHandler) BeginPayment(c *fiber.Ctx) error {
	out, err := h.uc.BeginPayment(c.UserContext(), session(c))
	return cartResult(c, out, err)
}

// CancelPayment DELETE /api/pos/cart/payment
func (h *POSHandler) CancelPayment(c *fiber.Ctx) error {
	out, err := h.uc.CancelPayment(c.UserContext(), session(c))
	return cartResult(c, out, err)
}

// Clear DELETE /api/pos/cart
func (h *POSHandler) Clear(c *fiber.Ctx) error {
	out, err := h.uc.Clear(c.UserContext(), session(c))
	return cartResult(c, out, err)
}

// Checkout godoc
// @Summary      Cobrar el carrito
// @Description  Registra la venta, descuenta stock y vacía el carrito. En efectivo devuelve el cambio.
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "payment_method, amount_tendered"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/pos/checkout [post]
func (h *POSHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Checkout(c.UserContext(), session(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SearchProducts GET /api/pos/products/search?q=
func (h *POSHandler) SearchProducts(c *fiber.Ctx) error {
	out, err := h.products.Search(c.UserContext(), GetTenantID(c), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SearchCustomers GET /api/pos/customers/search?q=
func (h *POSHandler) SearchCustomers(c *fiber.Ctx) error {
	out, err := h.customers.Search(c.UserContext(), GetTenantID(c), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
