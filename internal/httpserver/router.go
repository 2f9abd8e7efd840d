package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mshelkov/marketplace/internal/middleware/auth"
	"github.com/mshelkov/marketplace/internal/models"
)

type Deps struct {
	AuthHandler     *AuthHTTP
	SellerHandler   *SellerHTTP
	CategoryHandler *CategoryHTTP
	BrandHandler    *BrandHTTP
	ProductHandler  *ProductHTTP
	FavoriteHandler *FavoriteHTTP
	OrderHandler    *OrderHTTP
	AdminHandler    *AdminHTTP
	JWTSecret       []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := auth.New(d.JWTSecret)
	api := e.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/sign-up", d.AuthHandler.Register)
	authGroup.POST("/sign-in", d.AuthHandler.Login)
	authGroup.POST("/refresh", d.AuthHandler.Refresh)

	authPrivate := authGroup.Group("", authMW.RequireAuth)
	authPrivate.POST("/logout", d.AuthHandler.Logout)
	authPrivate.GET("/profile", d.AuthHandler.Profile)
	authPrivate.PUT("/profile-update", d.AuthHandler.UpdateProfile)

	seller := api.Group("/seller")
	seller.POST("/sign-up", d.SellerHandler.Register)
	seller.POST("/sign-in", d.SellerHandler.Login)

	sellerPrivate := seller.Group("", authMW.RequireAuth, authMW.RequireRoles(models.RoleOwner))
	sellerPrivate.GET("/profile", d.SellerHandler.Profile)
	sellerPrivate.POST("/create-store", d.SellerHandler.CreateStore)

	category := api.Group("/category")
	category.GET("/categories", d.CategoryHandler.GetCategories)
	category.GET("/categories-tree", d.CategoryHandler.GetCategoriesTree)

	categoryAdmin := category.Group("", authMW.RequireAuth, authMW.RequireRoles(models.RoleAdmin))
	categoryAdmin.POST("/create-category", d.CategoryHandler.CreateCategory)
	categoryAdmin.PATCH("/update-category/:id", d.CategoryHandler.UpdateCategory)
	categoryAdmin.DELETE("/delete-category/:id", d.CategoryHandler.DeleteCategory)

	brand := api.Group("/brand")
	brand.GET("/get-brands", d.BrandHandler.GetBrands)
	brand.GET("/get-brand/:id", d.BrandHandler.GetBrand)

	brandAdmin := brand.Group("", authMW.RequireAuth, authMW.RequireRoles(models.RoleAdmin))
	brandAdmin.POST("/create-brand", d.BrandHandler.CreateBrand)
	brandAdmin.PATCH("/update-brand/:id", d.BrandHandler.UpdateBrand)
	brandAdmin.DELETE("/delete-brand/:id", d.BrandHandler.DeleteBrand)

	product := api.Group("/product")
	product.GET("/products-for-user", d.ProductHandler.GetProductsForUser)
	product.GET("/product-for-user/:id", d.ProductHandler.GetProductForUser)
	product.GET("/search", d.ProductHandler.SearchProducts)

	productPrivate := product.Group("", authMW.RequireAuth)
	productPrivate.POST("/create-product", d.ProductHandler.CreateProduct)
	productPrivate.GET("/products", d.ProductHandler.GetMyProducts)
	productPrivate.PATCH("/product-update/:id", d.ProductHandler.PatchProduct)
	productPrivate.DELETE("/product-delete/:id", d.ProductHandler.DeleteProduct)

	favorite := api.Group("/favorite", authMW.RequireAuth)
	favorite.POST("/create-favorite", d.FavoriteHandler.CreateFavorite)
	favorite.DELETE("/delete-favorite", d.FavoriteHandler.DeleteFavorite)

	order := api.Group("/order", authMW.RequireAuth)
	order.POST("/create-order", d.OrderHandler.CreateOrder)
	order.GET("/cart", d.OrderHandler.GetCart)
	order.DELETE("/delete-from-cart/:productId", d.OrderHandler.DeleteFromCart)
	order.DELETE("/delete-all-cart", d.OrderHandler.DeleteAllCart)
	order.POST("/checkout", d.OrderHandler.Checkout)

	admin := api.Group("/admin", authMW.RequireAuth, authMW.RequireRoles(models.RoleAdmin))
	admin.POST("/set-role/:userId", d.AdminHandler.SetRole)
}
