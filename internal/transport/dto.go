package transport

import "encoding/json"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	AdminKey string `json:"adminKey"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileUpdateRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar"`
}

type CreateStoreRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Address     string `json:"address"`
	Region      string `json:"region"`
}

type CreateCategoryRequest struct {
	Name     string `json:"name"`
	ParentID *uint  `json:"parentId"`
}

// OptionalParent distinguishes an absent parentId from an explicit null:
// null re-roots the category, absence leaves the parent untouched.
type OptionalParent struct {
	Set   bool
	Value *uint
}

func (p *OptionalParent) UnmarshalJSON(data []byte) error {
	p.Set = true
	if string(data) == "null" {
		p.Value = nil
		return nil
	}
	return json.Unmarshal(data, &p.Value)
}

type UpdateCategoryRequest struct {
	Name     *string        `json:"name"`
	ParentID OptionalParent `json:"parentId"`
}

type CreateBrandRequest struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo"`
}

type PatchBrandRequest struct {
	Name    *string `json:"name"`
	LogoURL *string `json:"logo"`
}

type CreateProductRequest struct {
	CategoryID  uint     `json:"categoryId"`
	BrandID     uint     `json:"brandId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Tags        []string `json:"tags"`
	Price       float64  `json:"price"`
	NewPrice    *float64 `json:"newPrice"`
	StockCount  uint     `json:"stockCount"`
}

type PatchProductRequest struct {
	CategoryID  *uint    `json:"categoryId"`
	BrandID     *uint    `json:"brandId"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Images      []string `json:"images"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Tags        []string `json:"tags"`
	Price       *float64 `json:"price"`
	NewPrice    *float64 `json:"newPrice"`
	StockCount  *uint    `json:"stockCount"`
}

type FavoriteRequest struct {
	ProductID uint `json:"productId"`
}

type CreateOrderRequest struct {
	ProductID uint `json:"productId"`
	Quantity  uint `json:"quantity"`
}

type SetRoleRequest struct {
	Role string `json:"role"`
}
