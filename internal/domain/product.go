package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductKind distinguishes capacity-constrained admission tickets from food items.
type ProductKind string

const (
	ProductKindEntry ProductKind = "ENTRY"
	ProductKindFood  ProductKind = "FOOD"
)

// ProductSize is the person category a product type is priced for.
type ProductSize string

const (
	SizeAdult    ProductSize = "ADULT"
	SizeChildren ProductSize = "CHILDREN"
	SizeElder    ProductSize = "ELDER"
)

// ProductChoice is the dietary choice of a food product type.
type ProductChoice string

const (
	ChoiceVeg    ProductChoice = "VEG"
	ChoiceNonVeg ProductChoice = "NON_VEG"
	ChoiceNone   ProductChoice = "NONE"
)

// ProductPref is the protein preference of a non-veg food product type.
type ProductPref string

const (
	PrefChicken ProductPref = "CHICKEN"
	PrefMutton  ProductPref = "MUTTON"
	PrefFish    ProductPref = "FISH"
	PrefNone    ProductPref = "NONE"
)

// ProductSubtype is the serving style of a food product type. Dine-in
// quantities are constrained to match headcounts; packet quantities are not.
type ProductSubtype string

const (
	SubtypePacket ProductSubtype = "PACKET"
	SubtypeDineIn ProductSubtype = "DINE_IN"
	SubtypeNone   ProductSubtype = "NONE"
)

// Status marks a product or product type as sellable or retired.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Product represents a sellable item: an admission ticket or a food item.
// swagger:model Product
type Product struct {
	ID        string      `json:"id"`
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	Kind      ProductKind `json:"kind"`
	Status    Status      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ProductType is a priced variant of a product (size x choice x pref x subtype).
// Price is fixed per unit; orders snapshot it at creation time.
// swagger:model ProductType
type ProductType struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Size      ProductSize     `json:"size"`
	Choice    ProductChoice   `json:"choice"`
	Pref      ProductPref     `json:"pref"`
	Subtype   ProductSubtype  `json:"subtype"`
	Price     decimal.Decimal `json:"price"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductRepository defines the interface for product and product type storage.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*Product, error)
	GetProductType(ctx context.Context, id string) (*ProductType, error)
	ListTypesByProductID(ctx context.Context, productID string) ([]*ProductType, error)
}
