package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/nalinda/stockroom/internal/httpx"
    "github.com/nalinda/stockroom/internal/model"
    "github.com/nalinda/stockroom/internal/presenter"
    "github.com/nalinda/stockroom/internal/repository"
    "github.com/nalinda/stockroom/internal/sanitize"
)

// AdminHandler bundles repositories for catalog and customer management.
// All routes using it sit behind the access gate plus the ADMIN role.
type AdminHandler struct {
    Products   *repository.ProductRepo
    Categories *repository.CategoryRepo
    Customers  *repository.CustomerRepo
    Users      *repository.UserRepo
    Orders     *repository.OrderRepo
}

func NewAdminHandler(p *repository.ProductRepo, cat *repository.CategoryRepo, cu *repository.CustomerRepo, u *repository.UserRepo, o *repository.OrderRepo) *AdminHandler {
    if p == nil || cat == nil || cu == nil || u == nil || o == nil {
        panic("nil repository passed to NewAdminHandler")
    }
    return &AdminHandler{Products: p, Categories: cat, Customers: cu, Users: u, Orders: o}
}

// ----- category DTOs -----

type categoryReq struct {
    Name     string `json:"name"`
    Slug     string `json:"slug"`
    ParentID string `json:"parent_id"` // public id, optional
}

type stockReq struct {
    Delta int32 `json:"delta"`
}

type productReq struct {
    CategoryID  string   `json:"category_id"` // public id
    Name        string   `json:"name"`
    SKU         string   `json:"sku"`
    Description string   `json:"description"`
    PriceCents  uint32   `json:"price_cents"`
    Currency    string   `json:"currency"`
    Stock       uint32   `json:"stock"`
    Images      []string `json:"images"`
    IsActive    *bool    `json:"is_active"`
}

// CreateCategory inserts a category; parent_id, when present, must be an
// existing category's public id.
func (h *AdminHandler) CreateCategory(c echo.Context) error {
    var req categoryReq
    if err := c.Bind(&req); err != nil {
        return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid body")
    }
    req.Name = sanitize.Text(req.Name)
    req.Slug = sanitize.Slug(req.Slug)
    if req.Slug == "" {
        req.Slug = sanitize.Slug(req.Name)
    }
    if req.Name == "" || req.Slug == "" {
        return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "name required")
    }

    ctx := c.Request().Context()
    var parentID *string
    if req.ParentID != "" {
        parent, err := h.Categories.GetByPublicID(ctx, req.ParentID)
        if err != nil {
            return repoFail(c, err, "parent category")
        }
        parentID = &parent.ID
    }

    id, err := h.Categories.Create(ctx, req.Name, req.Slug, parentID)
    if err != nil {
        return repoFail(c, err, "category")
    }
    cat, err := h.Categories.GetByID(ctx, id)
    if err != nil {
        return repoFail(c, err, "category")
    }
    return httpx.OK(c, http.StatusCreated, presenter.Category(cat, 0))
}

// UpdateCategory renames or re-parents a category.
func (h *AdminHandler) UpdateCategory(c echo.Context) error {
    id, err := publicIDParam(c)
    if err != nil {
        return err
    }
    var req categoryReq
    if err := c.Bind(&req); err != nil {
        return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid body")
    }
    ctx := c.Request().Context()
    cat, lookupErr := h.Categories.GetByPublicID(ctx, id)
    if lookupErr != nil {
        return repoFail(c, lookupErr, "category")
    }

    name := sanitize.Text(req.Name)
    if name == "" {
        name = cat.Name
    }
    slug := sanitize.Slug(req.Slug)
    if slug == "" {
        slug = cat.Slug
    }
    parentID := cat.ParentID
    if req.ParentID != "" {
        parent, err := h.Categories.GetByPublicID(ctx, req.ParentID)
        if err != nil {
            return repoFail(c, err, "parent category")
        }
        if parent.ID == cat.ID {
            return httpx.Fail(c, http.StatusConflict, httpx.CodeConflict, "category cannot be its own parent")
        }
        parentID = &parent.ID
    }

    if err := h.Categories.Update(ctx, cat.ID, name, slug, parentID); err != nil {
        return repoFail(c, err, "category")
    }
    updated, err := h.Categories.GetByID(ctx, cat.ID)
    if err != nil {
        return repoFail(c, err, "category")
    }
    n, err := h.Categories.CountProducts(ctx, cat.ID)
    if err != nil {
        return repoFail(c, err, "category")
    }
    return httpx.OK(c, http.StatusOK, presenter.Category(updated, n))
}

// DeleteCategory removes an empty category; 409 when children or
// products remain.
func (h *AdminHandler) DeleteCategory(c echo.Context) error {
    id, err := publicIDParam(c)
    if err != nil {
        return err
    }
    ctx := c.Request().Context()
    cat, lookupErr := h.Categories.GetByPublicID(ctx, id)
    if lookupErr != nil {
        return repoFail(c, lookupErr, "category")
    }
    if err := h.Categories.Delete(ctx, cat.ID); err != nil {
        return repoFail(c, err, "category")
    }
    return c.NoContent(http.StatusNoContent)
}

// CreateProduct inserts a product under an existing category.
func (h *AdminHandler) CreateProduct(c echo.Context) error {
    var req productReq
    if err := c.Bind(&req); err != nil {
        return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid body")
    }
    req.Name = sanitize.Text(req.Name)
    req.SKU = sanitize.Text(req.SKU)
    req.Description = sanitize.Text(req.Description)
    if req.Name == "" || req.SKU == "" || req.CategoryID == "" {
        return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "name, sku and category_id required")
    }
    if req.Currency == "" {
        req.Currency = "USD"
    }

    ctx := c.Request().Context()
    cat, err := h.Categories.GetByPublicID(ctx, req.CategoryID)
    if err != nil {
        return repoFail(c, err, "category")
    }

    active := true
    if req.IsActive != nil {
        active = *req.IsActive
    }
    id, err := h.Products.Create(ctx, model.Product{
        CategoryID:  cat.ID,
        Name:        req.Name,
        SKU:         req.SKU,
        Description: req.Description,
        PriceCents:  req.PriceCents,
        Currency:    req.Currency,
        Stock:       req.Stock,
        Images:      req.Images,
        IsActive:    active,
    })
    if err != nil {
        return repoFail(c, err, "product")
    }
    p, err := h.Products.GetByID(ctx, id)
    if err != nil {
        return repoFail(c, err, "product")
    }
    return httpx.OK(c, http.StatusCreated, presenter.Product(p))
}

// ListProducts returns all products including inactive ones, for the
// admin catalog view.
func (h *AdminHandler) ListProducts(c echo.Context) error {
    products, err := h.Products.List(c.Request().Context(), repository.ProductFilter{
        Query: sanitize.Text(c.QueryParam("q")),
    })
    if err != nil {
        return repoFail(c, err, "product")
    }
    return httpx.Items(c, presenter.Products(products))
}

// UpdateProduct overwrites catalog fields; absent fields keep their
// current value.  Stock moves only through UpdateStock.
func (h *AdminHandler) UpdateProduct(c echo.Context) error {
    id, err := publicIDParam(c)
    if err != nil {
        return err
    }
    var req productReq
    if err := c.Bind(&req); err != nil {
        return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid body")
    }
    ctx := c.Request().Context()
    p, lookupErr := h.Products.GetByPublicID(ctx, id)
    if lookupErr != nil {
        return repoFail(c, lookupErr, "product")
    }

    if name := sanitize.Text(req.Name); name != "" {
        p.Name = name
    }
    if sku := sanitize.Text(req.SKU); sku != "" {
        p.SKU = sku
    }
    if desc := sanitize.Text(req.Description); desc != "" {
        p.Description = desc
    }
    if req.PriceCents > 0 {
        p.PriceCents = req.PriceCents
    }
    if req.Currency != "" {
        p.Currency = req.Currency
    }
    if req.Images != nil {
        p.Images = req.Images
    }
    if req.IsActive != nil {
        p.IsActive = *req.IsActive
    }
    if req.CategoryID != "" {
        cat, err := h.Categories.GetByPublicID(ctx, req.CategoryID)
        if err != nil {
            return repoFail(c, err, "category")
        }
        p.CategoryID = cat.ID
    }

    if err := h.Products.Update(ctx, p); err != nil {
        return repoFail(c, err, "product")
    }
    updated, err := h.Products.GetByID(ctx, p.ID)
    if err != nil {
        return repoFail(c, err, "product")
    }
    return httpx.OK(c, http.StatusOK, presenter.Product(updated))
}

// UpdateStock applies a signed delta to a product's on-hand quantity.
// Driving stock below zero is a conflict, not a clamp.
func (h *AdminHandler) UpdateStock(c echo.Context) error {
    id, err := publicIDParam(c)
    if err != nil {
        return err
    }
    var req stockReq
    if err := c.Bind(&req); err != nil || req.Delta == 0 {
        return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "non-zero delta required")
    }
    ctx := c.Request().Context()
    p, lookupErr := h.Products.GetByPublicID(ctx, id)
    if lookupErr != nil {
        return repoFail(c, lookupErr, "product")
    }
    if err := h.Products.AdjustStock(ctx, p.ID, req.Delta); err != nil {
        return repoFail(c, err, "product")
    }
    updated, err := h.Products.GetByID(ctx, p.ID)
    if err != nil {
        return repoFail(c, err, "product")
    }
    return httpx.OK(c, http.StatusOK, presenter.Product(updated))
}

// DeleteProduct removes a product without order history.
func (h *AdminHandler) DeleteProduct(c echo.Context) error {
    id, err := publicIDParam(c)
    if err != nil {
        return err
    }
    ctx := c.Request().Context()
    p, lookupErr := h.Products.GetByPublicID(ctx, id)
    if lookupErr != nil {
        return repoFail(c, lookupErr, "product")
    }
    if err := h.Products.Delete(ctx, p.ID); err != nil {
        return repoFail(c, err, "product")
    }
    return c.NoContent(http.StatusNoContent)
}
