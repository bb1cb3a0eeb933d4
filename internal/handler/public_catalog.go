// Package handler exposes HTTP handlers for both authenticated and public
// endpoints.  This file defines the public catalog API: unauthenticated
// users browse categories and active products.  Responses only contain
// presenter views, so internal identifiers and inactive items never leak.
package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/nalinda/stockroom/internal/httpx"
    "github.com/nalinda/stockroom/internal/presenter"
    "github.com/nalinda/stockroom/internal/repository"
    "github.com/nalinda/stockroom/internal/sanitize"
)

// CatalogHandler aggregates repositories needed for unauthenticated
// browsing.
type CatalogHandler struct {
    Products   *repository.ProductRepo
    Categories *repository.CategoryRepo
}

func NewCatalogHandler(p *repository.ProductRepo, cat *repository.CategoryRepo) *CatalogHandler {
    return &CatalogHandler{Products: p, Categories: cat}
}

// ListProducts returns active products, optionally filtered by category
// public id (?category=cat_...), stock (?in_stock=true) and a free-text
// search (?q=).
func (h *CatalogHandler) ListProducts(c echo.Context) error {
    ctx := c.Request().Context()
    f := repository.ProductFilter{
        ActiveOnly: true,
        InStock:    c.QueryParam("in_stock") == "true",
        Query:      sanitize.Text(c.QueryParam("q")),
    }
    if cat := c.QueryParam("category"); cat != "" {
        catRec, err := h.Categories.GetByPublicID(ctx, cat)
        if err != nil {
            if err == repository.ErrNotFound {
                return httpx.Items(c, []presenter.ProductView{})
            }
            return repoFail(c, err, "category")
        }
        f.CategoryID = catRec.ID
    }
    products, err := h.Products.List(ctx, f)
    if err != nil {
        return repoFail(c, err, "product")
    }
    return httpx.Items(c, presenter.Products(products))
}

// GetProduct returns one active product by public id.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
    id, err := publicIDParam(c)
    if err != nil {
        return err
    }
    p, lookupErr := h.Products.GetByPublicID(c.Request().Context(), id)
    if lookupErr != nil {
        return repoFail(c, lookupErr, "product")
    }
    if !p.IsActive {
        return httpx.Fail(c, http.StatusNotFound, httpx.CodeNotFound, "product not found")
    }
    return httpx.OK(c, http.StatusOK, presenter.Product(p))
}

// ListCategories returns the full category tree with per-category product
// counts.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
    ctx := c.Request().Context()
    cats, err := h.Categories.ListAll(ctx)
    if err != nil {
        return repoFail(c, err, "category")
    }
    out := make([]presenter.CategoryView, 0, len(cats))
    for _, cat := range cats {
        n, err := h.Categories.CountProducts(ctx, cat.ID)
        if err != nil {
            return repoFail(c, err, "category")
        }
        out = append(out, presenter.Category(cat, n))
    }
    return httpx.Items(c, out)
}

// ListCategoryProducts returns the active products inside one category.
func (h *CatalogHandler) ListCategoryProducts(c echo.Context) error {
    id, err := publicIDParam(c)
    if err != nil {
        return err
    }
    ctx := c.Request().Context()
    cat, lookupErr := h.Categories.GetByPublicID(ctx, id)
    if lookupErr != nil {
        return repoFail(c, lookupErr, "category")
    }
    products, lookupErr := h.Products.List(ctx, repository.ProductFilter{
        CategoryID: cat.ID,
        ActiveOnly: true,
    })
    if lookupErr != nil {
        return repoFail(c, lookupErr, "product")
    }
    return httpx.Items(c, presenter.Products(products))
}
