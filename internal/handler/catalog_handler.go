package handler

import (
	"github.com/syafrud/Kasir-new-sub000/internal/model"
	"github.com/syafrud/Kasir-new-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// --- Categories ---

func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	categories, meta, err := h.service.ListCategories(c.UserContext(), paginationFrom(c))
	if err != nil {
		return respondError(c, "catalog", "GetCategories", err)
	}
	return paginated(c, categories, meta)
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req service.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	category, err := h.service.CreateCategory(c.UserContext(), &req, actorFrom(c))
	if err != nil {
		return respondError(c, "catalog", "CreateCategory", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Category created", "data": category})
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid category ID")
	}
	var req service.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	category, err := h.service.UpdateCategory(c.UserContext(), id, &req, actorFrom(c))
	if err != nil {
		return respondError(c, "catalog", "UpdateCategory", err)
	}
	return c.JSON(fiber.Map{"message": "Category updated", "data": category})
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid category ID")
	}
	if err := h.service.DeleteCategory(c.UserContext(), id, actorFrom(c)); err != nil {
		return respondError(c, "catalog", "DeleteCategory", err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}

// --- Products ---

// GetProducts lists products
// Query params: page, limit, search (name or barcode), category_id
func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	f := model.ProductFilter{
		Pagination: paginationFrom(c),
		CategoryID: uint(c.QueryInt("category_id", 0)),
	}
	products, meta, err := h.service.ListProducts(c.UserContext(), f)
	if err != nil {
		return respondError(c, "catalog", "GetProducts", err)
	}
	return paginated(c, products, meta)
}

func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}
	product, err := h.service.GetProduct(c.UserContext(), id)
	if err != nil {
		return respondError(c, "catalog", "GetProduct", err)
	}
	return c.JSON(product)
}

// GetProductByBarcode serves the POS scanner
// GET /api/v1/products/barcode/:code
func (h *CatalogHandler) GetProductByBarcode(c *fiber.Ctx) error {
	product, err := h.service.GetProductByBarcode(c.UserContext(), c.Params("code"))
	if err != nil {
		return respondError(c, "catalog", "GetProductByBarcode", err)
	}
	return c.JSON(product)
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	product, err := h.service.CreateProduct(c.UserContext(), &req, actorFrom(c))
	if err != nil {
		return respondError(c, "catalog", "CreateProduct", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}
	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, &req, actorFrom(c))
	if err != nil {
		return respondError(c, "catalog", "UpdateProduct", err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}
	if err := h.service.DeleteProduct(c.UserContext(), id, actorFrom(c)); err != nil {
		return respondError(c, "catalog", "DeleteProduct", err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
