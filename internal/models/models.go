package models

import (
	"time"
)

const (
	RoleUser  = "USER"
	RoleOwner = "OWNER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Name         string    `gorm:"not null"                 json:"name"`
	Phone        string    `json:"phone,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	Role         string    `gorm:"not null;default:USER"    json:"role"`
	CreatedAt    time.Time `json:"created_at"`

	Stores    []Store    `gorm:"foreignKey:OwnerID" json:"stores,omitempty"`
	CartItems []CartItem `gorm:"foreignKey:UserID"  json:"cart_items,omitempty"`
	Favorites []Favorite `gorm:"foreignKey:UserID"  json:"favorites,omitempty"`
}

// Token holds sha256 of the signed refresh token, never the token itself.
type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"           json:"id"`
	Token     string `gorm:"uniqueIndex;not null" json:"-"`
	JTI       string `gorm:"uniqueIndex;not null" json:"jti"`
	UserID    uint   `gorm:"index;not null"       json:"user_id"`
	Role      string `gorm:"not null"             json:"role"`
	ExpiresAt int64  `gorm:"not null"             json:"expires_at"`
	Revoked   bool   `gorm:"default:false"        json:"revoked"`
}

type Store struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null"                 json:"name"`
	Description string    `json:"description,omitempty"`
	Logo        string    `json:"logo,omitempty"`
	Address     string    `json:"address,omitempty"`
	Region      string    `json:"region,omitempty"`
	OwnerID     uint      `gorm:"uniqueIndex;not null"     json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type Category struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"not null"                 json:"name"`
	ParentID *uint  `gorm:"index"                    json:"parent_id"`

	Parent   *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`

	ProductCount int64 `gorm:"-" json:"product_count"`
}

type Brand struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	LogoURL   string    `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Products []Product `gorm:"foreignKey:BrandID" json:"products,omitempty"`
}

type Product struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreID     uint       `gorm:"index;not null"           json:"store_id"`
	CategoryID  uint       `gorm:"index;not null"           json:"category_id"`
	BrandID     uint       `gorm:"index;not null"           json:"brand_id"`
	Title       string     `gorm:"not null"                 json:"title"`
	Description string     `gorm:"not null"                 json:"description"`
	Images      []string   `gorm:"serializer:json"          json:"images"`
	Sizes       []string   `gorm:"serializer:json"          json:"sizes"`
	Colors      []string   `gorm:"serializer:json"          json:"colors"`
	Tags        []string   `gorm:"serializer:json"          json:"tags"`
	Price       float64    `gorm:"not null"                 json:"price"`
	NewPrice    *float64   `json:"new_price,omitempty"`
	StockCount  uint       `gorm:"default:0"                json:"stock_count"`
	IsArchived  bool       `gorm:"default:false"            json:"is_archived"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	Store    *Store    `gorm:"foreignKey:StoreID"    json:"store,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Brand    *Brand    `gorm:"foreignKey:BrandID"    json:"brand,omitempty"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey"                                 json:"id"`
	UserID    uint `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"user_id"`
	ProductID uint `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"product_id"`
	Quantity  uint `gorm:"default:1;check:quantity>0"                 json:"quantity"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

type Favorite struct {
	ID        uint      `gorm:"primaryKey"                                json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_fav_user_product;not null" json:"user_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_fav_user_product;not null" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID        uint    `gorm:"primaryKey"     json:"id"`
	UserID    uint    `gorm:"index;not null" json:"user_id"`
	Total     float64 `gorm:"not null"       json:"total"`
	Status    string  `gorm:"not null"       json:"status"`
	CreatedAt int64   `json:"created_at"`
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey"     json:"id"`
	OrderID   uint `gorm:"index;not null" json:"order_id"`
	UserID    uint `gorm:"index;not null" json:"user_id"`
	ProductID uint `gorm:"not null"       json:"product_id"`
	Quantity  uint `gorm:"not null"       json:"quantity"`
}
