package handlers

import (
	clientRepoPkg "wrenchworks/database/repository/client"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct for route wiring.
type HandlerBundle struct {
	ClientRepo clientRepoPkg.ClientRepository

	// Auth and account endpoints
	RegisterClientHandler        gin.HandlerFunc
	AuthenticateClientHandler    gin.HandlerFunc
	LogoutClientHandler          gin.HandlerFunc
	ChangePasswordHandler        gin.HandlerFunc
	GetProfileHandler            gin.HandlerFunc
	UpdateProfileHandler         gin.HandlerFunc
	DeleteAccountHandler         gin.HandlerFunc
	ListClientsHandler           gin.HandlerFunc
	GetClientHandler             gin.HandlerFunc
	UpdateFCMTokenHandler        gin.HandlerFunc
	GetNotificationsHandler      gin.HandlerFunc
	MarkNotificationsReadHandler gin.HandlerFunc

	// Mechanic and schedule endpoints
	ListMechanicsHandler    gin.HandlerFunc
	GetMechanicHandler      gin.HandlerFunc
	CreateMechanicHandler   gin.HandlerFunc
	UpdateMechanicHandler   gin.HandlerFunc
	DeleteMechanicHandler   gin.HandlerFunc
	ReplaceScheduleHandler  gin.HandlerFunc

	// Appointment endpoints
	AvailableMechanicsHandler   gin.HandlerFunc
	UnavailableDaysHandler      gin.HandlerFunc
	CreateAppointmentHandler    gin.HandlerFunc
	UpdateAppointmentHandler    gin.HandlerFunc
	CompleteAppointmentHandler  gin.HandlerFunc
	CancelAppointmentHandler    gin.HandlerFunc
	GetAppointmentHandler       gin.HandlerFunc
	ListMyAppointmentsHandler   gin.HandlerFunc
	ListAppointmentsByDateHandler gin.HandlerFunc

	// Repair endpoints
	OpenRepairHandler       gin.HandlerFunc
	GetRepairHandler        gin.HandlerFunc
	ListMyRepairsHandler    gin.HandlerFunc
	UpdateRepairHandler     gin.HandlerFunc
	AddRepairPartHandler    gin.HandlerFunc
	RemoveRepairPartHandler gin.HandlerFunc
	CompleteRepairHandler   gin.HandlerFunc

	// Inventory endpoints
	ListPartsHandler         gin.HandlerFunc
	ListLowStockPartsHandler gin.HandlerFunc
	GetPartHandler           gin.HandlerFunc
	CreatePartHandler        gin.HandlerFunc
	UpdatePartHandler        gin.HandlerFunc
	DeletePartHandler        gin.HandlerFunc
	AdjustStockHandler       gin.HandlerFunc

	// Billing endpoints
	GetInvoiceHandler       gin.HandlerFunc
	ListMyInvoicesHandler   gin.HandlerFunc
	PayInvoiceHandler       gin.HandlerFunc
	MarkInvoicePaidHandler  gin.HandlerFunc
	VoidInvoiceHandler      gin.HandlerFunc

	// Assistant endpoints
	ChatHandler      gin.HandlerFunc
	ResetChatHandler gin.HandlerFunc

	// Media endpoints
	UploadRepairPhotoHandler gin.HandlerFunc
	GetPhotoURLHandler       gin.HandlerFunc
}
