package router

import (
	"fmt"
	"net/http"

	"github.com/RoyceAzure/lab/bookstore/internal/api/handler"
	m "github.com/RoyceAzure/lab/bookstore/internal/api/middleware"
	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Server struct {
	BookHandler   *handler.BookHandler
	AuthorHandler *handler.AuthorHandler
	CartHandler   *handler.CartHandler
	OrderHandler  *handler.OrderHandler
	ReviewHandler *handler.ReviewHandler
	UserHandler   *handler.UserHandler
}

func NewServer(
	bookHandler *handler.BookHandler,
	authorHandler *handler.AuthorHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	reviewHandler *handler.ReviewHandler,
	userHandler *handler.UserHandler,
) *Server {
	return &Server{
		BookHandler:   bookHandler,
		AuthorHandler: authorHandler,
		CartHandler:   cartHandler,
		OrderHandler:  orderHandler,
		ReviewHandler: reviewHandler,
		UserHandler:   userHandler,
	}
}

func SetupRouter(server *Server, userService service.IUserService, permissionService service.IPermissionService, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.IdentityMiddleware(userService))
	r.Use(m.LoggerMiddleware(logger))

	requireBookManage := m.RequireCapability(permissionService, model.CapBookManage)
	requireOrderManage := m.RequireCapability(permissionService, model.CapOrderManage)
	requireOrderViewAll := m.RequireCapability(permissionService, model.CapOrderViewAll)
	requireUserManage := m.RequireCapability(permissionService, model.CapUserManage)

	r.Route("/api/v1", func(r chi.Router) {
		//公開目錄
		r.Route("/books", func(r chi.Router) {
			r.Get("/", server.BookHandler.ListBooks)
			r.Get("/new", server.BookHandler.GetNewBooks)
			r.Get("/bestsellers", server.BookHandler.GetBestsellers)
			r.Get("/highly-rated", server.BookHandler.GetHighlyRated)
			r.Get("/{id}", server.BookHandler.GetBook)
			r.Get("/{id}/pricing", server.BookHandler.GetPricing)
			r.Get("/{id}/availability", server.BookHandler.CheckAvailability)
			r.Get("/{id}/stats", server.BookHandler.GetBookStats)
			r.Get("/{id}/genres", server.BookHandler.GetBookGenres)
			r.Get("/{id}/reviews", server.ReviewHandler.GetBookReviews)

			//書籍維護
			r.With(requireBookManage).Post("/", server.BookHandler.CreateBook)
			r.With(requireBookManage).Put("/{id}", server.BookHandler.UpdateBook)
			r.With(requireBookManage).Delete("/{id}", server.BookHandler.DeleteBook)
			r.With(requireBookManage).Post("/{id}/restock", server.BookHandler.RestockBook)
			r.With(requireBookManage).Post("/{id}/genres/{genreID}", server.BookHandler.AssignGenre)
			r.With(requireBookManage).Delete("/{id}/genres/{genreID}", server.BookHandler.RemoveGenre)
		})

		r.Route("/authors", func(r chi.Router) {
			r.Get("/", server.AuthorHandler.ListAuthors)
			r.Get("/{id}", server.AuthorHandler.GetAuthor)
			r.Get("/{id}/stats", server.AuthorHandler.GetAuthorStats)
			r.With(requireBookManage).Post("/", server.AuthorHandler.CreateAuthor)
		})

		r.Route("/genres", func(r chi.Router) {
			r.Get("/", server.AuthorHandler.ListGenres)
			r.Get("/{id}/stats", server.AuthorHandler.GetGenreStats)
			r.With(requireBookManage).Post("/", server.AuthorHandler.CreateGenre)
		})

		//購物車，一律要求已識別的使用者
		r.Route("/cart", func(r chi.Router) {
			r.Use(m.RequireUser)
			r.Get("/", server.CartHandler.GetCart)
			r.Post("/items", server.CartHandler.AddItem)
			r.Put("/items/{bookID}", server.CartHandler.UpdateItem)
			r.Delete("/items/{bookID}", server.CartHandler.RemoveItem)
			r.Delete("/", server.CartHandler.ClearCart)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(m.RequireUser)
			r.Post("/", server.OrderHandler.PlaceOrder)
			r.Get("/", server.OrderHandler.ListMyOrders)
			r.Get("/{id}", server.OrderHandler.GetOrder)
			r.Post("/{id}/cancel", server.OrderHandler.CancelOrder)
			r.With(requireOrderViewAll).Get("/all", server.OrderHandler.ListAllOrders)
			r.With(requireOrderManage).Put("/{id}/status", server.OrderHandler.UpdateOrderStatus)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Use(m.RequireUser)
			r.Post("/", server.ReviewHandler.CreateReview)
			r.Get("/mine", server.ReviewHandler.GetMyReviews)
			r.Put("/{id}", server.ReviewHandler.UpdateReview)
			r.Delete("/{id}", server.ReviewHandler.DeleteReview)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Use(m.RequireUser)
			r.Get("/", server.ReviewHandler.ListFavorites)
			r.Post("/{bookID}", server.ReviewHandler.AddFavorite)
			r.Delete("/{bookID}", server.ReviewHandler.RemoveFavorite)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", server.UserHandler.Register)
			r.With(m.RequireUser).Get("/me", server.UserHandler.Me)
			r.With(requireUserManage).Get("/", server.UserHandler.ListUsers)
			r.With(requireUserManage).Post("/{id}/roles", server.UserHandler.GrantRole)
			r.With(requireUserManage).Delete("/{id}/roles", server.UserHandler.RevokeRole)
		})
	})

	// 在設置完所有路由後打印路由樹
	fmt.Println(chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		fmt.Printf("%s %s\n", method, route)
		return nil
	}))
	return r
}
