package model

import "time"

// Category groups products into a browsable tree.  ParentID is nil for
// top-level categories.  Slugs are unique and URL-safe.
//
// Fields:
//  ID        – internal document id (CHAR(24), primary key).
//  PublicID  – derived public identifier (cat_ prefix), indexed.
//  ParentID  – internal id of the parent category (nil for roots).
//  Name      – display name.
//  Slug      – unique URL slug.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Category struct {
    ID        string    // categories.id
    PublicID  string    // categories.public_id
    ParentID  *string   // categories.parent_id (nullable)
    Name      string    // categories.name
    Slug      string    // categories.slug
    CreatedAt time.Time // categories.created_at
    UpdatedAt time.Time // categories.updated_at
}

// Product is a sellable item.  Stock is the on-hand quantity and is only
// mutated through the repository's transactional adjustment paths so that
// concurrent orders cannot oversell.  Images holds externally-hosted URLs;
// the first entry is presented as the primary image.
//
// Fields:
//  ID          – internal document id (CHAR(24), primary key).
//  PublicID    – derived public identifier (prod_ prefix), indexed.
//  CategoryID  – internal id of the owning category.
//  Name        – display name.
//  SKU         – unique stock keeping unit.
//  Description – free-form description text.
//  PriceCents  – unit price in cents.
//  Currency    – ISO 4217 code (e.g. "USD", "LKR").
//  Stock       – on-hand quantity.
//  Images      – ordered image URLs (first is primary).
//  IsActive    – whether the product is visible in the public catalog.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Product struct {
    ID          string    // products.id
    PublicID    string    // products.public_id
    CategoryID  string    // products.category_id
    Name        string    // products.name
    SKU         string    // products.sku
    Description string    // products.description
    PriceCents  uint32    // products.price_cents
    Currency    string    // products.currency
    Stock       uint32    // products.stock
    Images      []string  // products.images (JSON column)
    IsActive    bool      // products.is_active
    CreatedAt   time.Time // products.created_at
    UpdatedAt   time.Time // products.updated_at
}
