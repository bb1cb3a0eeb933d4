package model

import "time"

// Customer is the shop-facing profile attached to a CUSTOMER user.  The
// authentication identity lives in `users`; this record carries the
// personal details used for orders.  Email and phone are PII and pass
// through the masking functions before appearing in any admin view.
//
// Fields:
//  ID          – internal document id (CHAR(24), primary key).
//  PublicID    – derived public identifier (cus_ prefix), indexed.
//  UserID      – owning user account.
//  FirstName   – given name.
//  LastName    – family name.
//  Phone       – contact number, digits only.
//  AddressLine – street address.
//  City        – city name.
//  Country     – ISO country name or code as entered.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Customer struct {
    ID          string    // customers.id
    PublicID    string    // customers.public_id
    UserID      string    // customers.user_id
    FirstName   string    // customers.first_name
    LastName    string    // customers.last_name
    Phone       string    // customers.phone
    AddressLine string    // customers.address_line
    City        string    // customers.city
    Country     string    // customers.country
    CreatedAt   time.Time // customers.created_at
    UpdatedAt   time.Time // customers.updated_at
}
