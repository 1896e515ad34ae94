package server

import (
	"net/http"

	"github.com/Dias221467/Storefront/internal/config"
	"github.com/Dias221467/Storefront/internal/handlers"
	"github.com/Dias221467/Storefront/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Handlers groups the resource routers mounted by NewRouter.
type Handlers struct {
	User    *handlers.UserHandler
	Product *handlers.ProductHandler
	Cart    *handlers.CartHandler
}

// NewRouter mounts the user, product and cart routers, the static product
// assets and the CORS policy.
func NewRouter(cfg *config.Config, h Handlers) http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.SignedCookies(middleware.NewCookieSigner(cfg.JWTSecret)))

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods("GET")

	router.PathPrefix(handlers.AssetsURLPrefix).Handler(
		http.StripPrefix(handlers.AssetsURLPrefix, http.FileServer(http.Dir(cfg.AssetsDir))),
	).Methods("GET", "HEAD")

	auth := middleware.AuthMiddleware(cfg.JWTSecret)

	// User routes
	userRoutes := router.PathPrefix("/user").Subrouter()
	userRoutes.HandleFunc("/signup", h.User.SignupHandler).Methods("POST")
	userRoutes.HandleFunc("/login", h.User.LoginHandler).Methods("POST")
	userRoutes.HandleFunc("/logout", h.User.LogoutHandler).Methods("POST")
	userRoutes.Handle("/me", auth(http.HandlerFunc(h.User.MeHandler))).Methods("GET")

	// Product routes
	productRoutes := router.PathPrefix("/product").Subrouter()
	productRoutes.HandleFunc("/getProducts", h.Product.GetProductsHandler).Methods("GET")
	productRoutes.HandleFunc("/getProduct/{id}", h.Product.GetProductHandler).Methods("GET")

	adminProductRoutes := productRoutes.NewRoute().Subrouter()
	adminProductRoutes.Use(auth)
	adminProductRoutes.Use(middleware.RequireRole("admin"))
	adminProductRoutes.HandleFunc("/addProduct", h.Product.AddProductHandler).Methods("POST")
	adminProductRoutes.HandleFunc("/uploadImage/{id}", h.Product.UploadImageHandler).Methods("POST")

	// Cart routes, scoped to the caller's own cart
	cartRoutes := router.PathPrefix("/cart").Subrouter()
	cartRoutes.Use(auth)
	cartRoutes.Use(middleware.RequireOwner)
	cartRoutes.HandleFunc("/getCart/{userID}", h.Cart.GetCartHandler).Methods("GET")
	cartRoutes.HandleFunc("/addItem/{userID}", h.Cart.AddItemHandler).Methods("POST")
	cartRoutes.HandleFunc("/updateQuantity/{userID}", h.Cart.UpdateQuantityHandler).Methods("PATCH")
	cartRoutes.HandleFunc("/deleteItem/{userID}", h.Cart.DeleteItemHandler).Methods("PATCH")

	c := cors.New(cors.Options{
		AllowedOrigins:       cfg.AllowedOrigins,
		AllowedMethods:       []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:       []string{"Authorization", "Content-Type"},
		AllowCredentials:     true,
		OptionsSuccessStatus: http.StatusOK,
	})

	return c.Handler(router)
}
