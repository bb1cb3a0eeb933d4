// Package repository implements the data-access layer over MySQL.  This
// file defines sentinel errors reused across repositories so handlers can
// translate failure scenarios to HTTP without inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist.
// Handlers translate it to 404.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers translate it to 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// dependent state, such as deleting a category that still has products or
// applying an invalid order-status transition.  Handlers translate it to
// 409.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned when registering a user with an email that
// is already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrSKUExists is returned when creating a product with a SKU or a
// category with a slug that already exists.
var ErrSKUExists = errors.New("sku or slug already exists")

// ErrOutOfStock is returned when an order or stock adjustment would drive
// a product's on-hand quantity below zero.
var ErrOutOfStock = errors.New("insufficient stock")
