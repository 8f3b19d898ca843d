package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wrenchworks/config"
	"wrenchworks/cron"
	"wrenchworks/database"
	appointmentRepoPkg "wrenchworks/database/repository/appointment"
	clientRepoPkg "wrenchworks/database/repository/client"
	invoiceRepoPkg "wrenchworks/database/repository/invoice"
	mechanicRepoPkg "wrenchworks/database/repository/mechanic"
	partRepoPkg "wrenchworks/database/repository/part"
	repairRepoPkg "wrenchworks/database/repository/repair"
	"wrenchworks/handlers"
	"wrenchworks/middleware"
	"wrenchworks/routes"
	"wrenchworks/services/appointment"
	"wrenchworks/services/billing"
	clientSvc "wrenchworks/services/client"
	ai "wrenchworks/services/intelligence"
	"wrenchworks/services/inventory"
	"wrenchworks/services/mechanic"
	"wrenchworks/services/notification"
	"wrenchworks/services/repair"
	"wrenchworks/services/tasks"
	"wrenchworks/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	clientRepo := clientRepoPkg.NewMongoClientRepo()
	mechanicRepo := mechanicRepoPkg.NewMongoMechanicRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	repairRepo := repairRepoPkg.NewMongoRepairRepo()
	partRepo := partRepoPkg.NewMongoPartRepo()
	invoiceRepo := invoiceRepoPkg.NewMongoInvoiceRepo()

	// services.
	notificationService, err := notification.NewDefaultNotificationService(clientRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	clientService := &clientSvc.DefaultClientService{
		Repo: clientRepo,
	}

	mechanicService := &mechanic.DefaultMechanicService{
		Repo: mechanicRepo,
	}

	reminderScheduler := tasks.NewAsynqReminderScheduler()
	appointmentService := &appointment.DefaultAppointmentService{
		Appointments: appointmentRepo,
		Mechanics:    mechanicRepo,
		Notifier:     notificationService,
		Reminders:    reminderScheduler,
	}

	inventoryService := &inventory.DefaultInventoryService{
		Repo: partRepo,
	}

	repairService := &repair.DefaultRepairService{
		Repairs:      repairRepo,
		Parts:        partRepo,
		Invoices:     invoiceRepo,
		Appointments: appointmentRepo,
		Notifier:     notificationService,
	}

	billingService := billing.NewPaymentHandler(logger, invoiceRepo, notificationService)

	geminiClient, err := ai.NewGeminiClient(config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize gemini client: %v", err)
	}
	ctxStore := ai.NewRedisContextStore(utils.GetChatContextClient(), 30*time.Minute)
	aiService := &ai.WorkshopAIService{
		Logger:       logger,
		Gemini:       geminiClient,
		ContextStore: ctxStore,
		Clients:      clientRepo,
		Appointments: appointmentRepo,
		Invoices:     invoiceRepo,
	}

	// handlers.
	clientHandler := &handlers.ClientHandler{Service: clientService}
	mechanicHandler := &handlers.MechanicHandler{Service: mechanicService}
	appointmentHandler := &handlers.AppointmentHandler{Service: appointmentService}
	repairHandler := &handlers.RepairHandler{Service: repairService}
	inventoryHandler := &handlers.InventoryHandler{Service: inventoryService}
	billingHandler := &handlers.BillingHandler{Service: billingService}
	aiHandler := &handlers.AIHandler{Service: aiService}
	storageHandler := &handlers.StorageHandler{StorageSvc: storageService, Repairs: repairService}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ClientRepo: clientRepo,

		RegisterClientHandler:        clientHandler.RegisterClientHandler,
		AuthenticateClientHandler:    clientHandler.AuthenticateClientHandler,
		LogoutClientHandler:          clientHandler.LogoutClientHandler,
		ChangePasswordHandler:        clientHandler.ChangePasswordHandler,
		GetProfileHandler:            clientHandler.GetProfileHandler,
		UpdateProfileHandler:         clientHandler.UpdateProfileHandler,
		DeleteAccountHandler:         clientHandler.DeleteAccountHandler,
		ListClientsHandler:           clientHandler.ListClientsHandler,
		GetClientHandler:             clientHandler.GetClientHandler,
		UpdateFCMTokenHandler:        clientHandler.UpdateFCMTokenHandler,
		GetNotificationsHandler:      clientHandler.GetNotificationsHandler,
		MarkNotificationsReadHandler: clientHandler.MarkNotificationsReadHandler,

		ListMechanicsHandler:   mechanicHandler.ListMechanicsHandler,
		GetMechanicHandler:     mechanicHandler.GetMechanicHandler,
		CreateMechanicHandler:  mechanicHandler.CreateMechanicHandler,
		UpdateMechanicHandler:  mechanicHandler.UpdateMechanicHandler,
		DeleteMechanicHandler:  mechanicHandler.DeleteMechanicHandler,
		ReplaceScheduleHandler: mechanicHandler.ReplaceScheduleHandler,

		AvailableMechanicsHandler:     appointmentHandler.AvailableMechanicsHandler,
		UnavailableDaysHandler:        appointmentHandler.UnavailableDaysHandler,
		CreateAppointmentHandler:      appointmentHandler.CreateAppointmentHandler,
		UpdateAppointmentHandler:      appointmentHandler.UpdateAppointmentHandler,
		CompleteAppointmentHandler:    appointmentHandler.CompleteAppointmentHandler,
		CancelAppointmentHandler:      appointmentHandler.CancelAppointmentHandler,
		GetAppointmentHandler:         appointmentHandler.GetAppointmentHandler,
		ListMyAppointmentsHandler:     appointmentHandler.ListMyAppointmentsHandler,
		ListAppointmentsByDateHandler: appointmentHandler.ListAppointmentsByDateHandler,

		OpenRepairHandler:       repairHandler.OpenRepairHandler,
		GetRepairHandler:        repairHandler.GetRepairHandler,
		ListMyRepairsHandler:    repairHandler.ListMyRepairsHandler,
		UpdateRepairHandler:     repairHandler.UpdateRepairHandler,
		AddRepairPartHandler:    repairHandler.AddRepairPartHandler,
		RemoveRepairPartHandler: repairHandler.RemoveRepairPartHandler,
		CompleteRepairHandler:   repairHandler.CompleteRepairHandler,

		ListPartsHandler:         inventoryHandler.ListPartsHandler,
		ListLowStockPartsHandler: inventoryHandler.ListLowStockPartsHandler,
		GetPartHandler:           inventoryHandler.GetPartHandler,
		CreatePartHandler:        inventoryHandler.CreatePartHandler,
		UpdatePartHandler:        inventoryHandler.UpdatePartHandler,
		DeletePartHandler:        inventoryHandler.DeletePartHandler,
		AdjustStockHandler:       inventoryHandler.AdjustStockHandler,

		GetInvoiceHandler:      billingHandler.GetInvoiceHandler,
		ListMyInvoicesHandler:  billingHandler.ListMyInvoicesHandler,
		PayInvoiceHandler:      billingHandler.PayInvoiceHandler,
		MarkInvoicePaidHandler: billingHandler.MarkInvoicePaidHandler,
		VoidInvoiceHandler:     billingHandler.VoidInvoiceHandler,

		ChatHandler:      aiHandler.ChatHandler,
		ResetChatHandler: aiHandler.ResetChatHandler,

		UploadRepairPhotoHandler: storageHandler.UploadRepairPhotoHandler,
		GetPhotoURLHandler:       storageHandler.GetPhotoURLHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder worker and health monitor.
	cron.InitReminderWorker(notificationService)
	utils.StartHealthMonitor([]*redis.Client{
		utils.GetCacheClient(),
		utils.GetAuthCacheClient(),
		utils.GetChatContextClient(),
	}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
