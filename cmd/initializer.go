package main

import (
	"database/sql"
	"log"

	"github.com/redis/go-redis/v9"

	"civicBack/internal/config"
	"civicBack/internal/handlers"
	"civicBack/internal/repositories"
	"civicBack/internal/services"
	"civicBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB

	tokens *utils.Manager

	userHandler      *handlers.UserHandler
	complaintHandler *handlers.ComplaintHandler
	quotationHandler *handlers.QuotationHandler
	vendorHandler    *handlers.VendorHandler
	feedbackHandler  *handlers.FeedbackHandler
	categoryHandler  *handlers.CategoryHandler
}

func initializeApp(db *sql.DB, cache *redis.Client, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	complaintRepo := repositories.ComplaintRepository{DB: db}
	quotationRepo := repositories.QuotationRepository{DB: db}
	vendorRepo := repositories.VendorRepository{DB: db}
	feedbackRepo := repositories.FeedbackRepository{DB: db}
	jobUpdateRepo := repositories.JobUpdateRepository{DB: db}
	categoryRepo := repositories.CategoryRepository{DB: db}

	tokens, err := utils.NewManager(cfg.JWT.SigningKey, cfg.JWTTTL())
	if err != nil {
		errorLog.Fatal(err)
	}

	// Services
	userService := &services.UserService{UserRepo: &userRepo, Tokens: tokens}
	complaintService := &services.ComplaintService{
		ComplaintRepo: &complaintRepo,
		UserRepo:      &userRepo,
		VendorRepo:    &vendorRepo,
		Cache:         cache,
	}
	quotationService := &services.QuotationService{
		QuotationRepo: &quotationRepo,
		ComplaintRepo: &complaintRepo,
		VendorRepo:    &vendorRepo,
		Cache:         cache,
	}
	vendorService := &services.VendorService{
		VendorRepo:    &vendorRepo,
		ComplaintRepo: &complaintRepo,
		JobUpdateRepo: &jobUpdateRepo,
	}
	feedbackService := &services.FeedbackService{
		FeedbackRepo:  &feedbackRepo,
		ComplaintRepo: &complaintRepo,
		VendorRepo:    &vendorRepo,
	}
	categoryService := &services.CategoryService{CategoryRepo: &categoryRepo}

	return &application{
		errorLog: errorLog,
		infoLog:  infoLog,
		db:       db,
		tokens:   tokens,

		userHandler:      &handlers.UserHandler{Service: userService},
		complaintHandler: &handlers.ComplaintHandler{Service: complaintService, UploadDir: cfg.Server.UploadDir},
		quotationHandler: &handlers.QuotationHandler{Service: quotationService},
		vendorHandler:    &handlers.VendorHandler{Service: vendorService, UploadDir: cfg.Server.UploadDir},
		feedbackHandler:  &handlers.FeedbackHandler{Service: feedbackService},
		categoryHandler:  &handlers.CategoryHandler{Service: categoryService},
	}
}
