package model

import "time"

// Role names for the users table.  ADMIN accounts manage the catalog and
// orders; CUSTOMER accounts shop.  The role is embedded in access tokens
// and enforced by the role middleware.
const (
    RoleAdmin    = "ADMIN"
    RoleCustomer = "CUSTOMER"
)

// User represents an authentication identity as stored in the `users`
// table.  The internal ID is a 24-character hex document id and is never
// serialized to clients; handlers expose PublicID instead.  The json tags
// are omitted because these structs are used by the repository layer;
// handlers build presenter views with the appropriate JSON shape.
//
// Fields:
//  ID           – internal document id (CHAR(24), primary key).
//  PublicID     – derived public identifier (usr_ prefix), indexed.
//  Email        – unique email address, stored lower-case.
//  PasswordHash – bcrypt hashed password.
//  Role         – ADMIN or CUSTOMER.
//  IsActive     – whether the account may authenticate.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           string    // users.id
    PublicID     string    // users.public_id
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    Role         string    // users.role
    IsActive     bool      // users.is_active
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry and
// revocation.  The plain token is not stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier (auto increment).
//  UserID    – owner of the token (internal user id).
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    string     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
