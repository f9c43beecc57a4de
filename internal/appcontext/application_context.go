package appcontext

import (
	"context"
	"fmt"
	"log"

	"github.com/RoyceAzure/lab/bookstore/internal/config"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
)

type ApplicationContext struct {
	DbDao             *db.DbDao
	Cf                *config.Config
	CatalogService    service.ICatalogService
	InventoryService  service.IInventoryService
	CartService       service.ICartService
	OrderService      service.IOrderService
	ReviewService     service.IReviewService
	FavoriteService   service.IFavoriteService
	UserService       service.IUserService
	PermissionService service.IPermissionService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	err := app.Init()
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init() error {
	err := app.setUpdbDao()
	if err != nil {
		return err
	}

	app.setUpServices()

	//啟動時確保三種角色存在
	log.Printf("seeding roles...")
	if err := app.UserService.SeedRoles(context.Background()); err != nil {
		return err
	}
	log.Printf("seeding roles completed")

	return nil
}

func (app *ApplicationContext) setUpdbDao() error {
	log.Printf("Start setup database DAO")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbDao = db.NewDbDao(conn)

	if err := app.DbDao.InitMigrate(); err != nil {
		return err
	}
	log.Printf("Finish setup database DAO")
	return nil
}

func (app *ApplicationContext) setUpServices() {
	log.Printf("Start setup services")

	bookRepo := db.NewBookRepo(app.DbDao)
	authorRepo := db.NewAuthorRepo(app.DbDao)
	cartRepo := db.NewCartRepo(app.DbDao)
	orderRepo := db.NewOrderRepo(app.DbDao)
	reviewRepo := db.NewReviewRepo(app.DbDao)
	favoriteRepo := db.NewFavoriteRepo(app.DbDao)
	userRepo := db.NewUserRepo(app.DbDao)

	app.CatalogService = service.NewCatalogService(bookRepo, authorRepo)
	app.InventoryService = service.NewInventoryService(bookRepo)
	app.CartService = service.NewCartService(cartRepo)
	app.OrderService = service.NewOrderService(orderRepo)
	app.ReviewService = service.NewReviewService(reviewRepo, bookRepo)
	app.FavoriteService = service.NewFavoriteService(favoriteRepo, bookRepo)
	app.UserService = service.NewUserService(userRepo)
	app.PermissionService = service.NewPermissionService()

	log.Printf("Finish setup services")
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error)
	go func() {
		defer close(done)

		if app.DbDao != nil {
			log.Printf("Closing database connection...")
			if sqlDB, err := app.DbDao.DB.DB(); err == nil {
				sqlDB.Close()
			}
		}

		log.Printf("Application shutdown complete")
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}
