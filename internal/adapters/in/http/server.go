// Package http exposes the warehouse operations over a REST API. Handlers
// bind and validate the request, delegate to a command or query handler and
// translate the error taxonomy into HTTP statuses. User routes act on
// behalf of the authenticated owner; admin routes are for warehouse staff.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	payDomesticShippingHandler   commands.PayDomesticShippingCommandHandler
	payStorageHandler            commands.PayStorageCommandHandler
	configureOptionsHandler      commands.ConfigureOptionsCommandHandler
	requestDisposalHandler       commands.RequestDisposalCommandHandler
	requestShippingHandler       commands.RequestShippingCommandHandler
	createParcelHandler          commands.CreateParcelCommandHandler
	setWeightHandler             commands.SetWeightCommandHandler
	completeConsolidationHandler commands.CompleteConsolidationCommandHandler
	deconsolidateHandler         commands.DeconsolidateCommandHandler
	uploadPhotosHandler          commands.UploadPhotosCommandHandler
	completeReinforcementHandler commands.CompleteReinforcementCommandHandler
	markShippedHandler           commands.MarkShippedCommandHandler
	markDisposedHandler          commands.MarkDisposedCommandHandler
	declineDisposalHandler       commands.DeclineDisposalCommandHandler

	// Query handlers
	getUserParcelsHandler           queries.GetUserParcelsQueryHandler
	getWarehouseParcelsHandler      queries.GetWarehouseParcelsQueryHandler
	getConsolidationRequestsHandler queries.GetConsolidationRequestsQueryHandler
}

// Handlers bundles every use case the server exposes.
type Handlers struct {
	PayDomesticShipping   commands.PayDomesticShippingCommandHandler
	PayStorage            commands.PayStorageCommandHandler
	ConfigureOptions      commands.ConfigureOptionsCommandHandler
	RequestDisposal       commands.RequestDisposalCommandHandler
	RequestShipping       commands.RequestShippingCommandHandler
	CreateParcel          commands.CreateParcelCommandHandler
	SetWeight             commands.SetWeightCommandHandler
	CompleteConsolidation commands.CompleteConsolidationCommandHandler
	Deconsolidate         commands.DeconsolidateCommandHandler
	UploadPhotos          commands.UploadPhotosCommandHandler
	CompleteReinforcement commands.CompleteReinforcementCommandHandler
	MarkShipped           commands.MarkShippedCommandHandler
	MarkDisposed          commands.MarkDisposedCommandHandler
	DeclineDisposal       commands.DeclineDisposalCommandHandler

	GetUserParcels           queries.GetUserParcelsQueryHandler
	GetWarehouseParcels      queries.GetWarehouseParcelsQueryHandler
	GetConsolidationRequests queries.GetConsolidationRequestsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{
		payDomesticShippingHandler:   handlers.PayDomesticShipping,
		payStorageHandler:            handlers.PayStorage,
		configureOptionsHandler:      handlers.ConfigureOptions,
		requestDisposalHandler:       handlers.RequestDisposal,
		requestShippingHandler:       handlers.RequestShipping,
		createParcelHandler:          handlers.CreateParcel,
		setWeightHandler:             handlers.SetWeight,
		completeConsolidationHandler: handlers.CompleteConsolidation,
		deconsolidateHandler:         handlers.Deconsolidate,
		uploadPhotosHandler:          handlers.UploadPhotos,
		completeReinforcementHandler: handlers.CompleteReinforcement,
		markShippedHandler:           handlers.MarkShipped,
		markDisposedHandler:          handlers.MarkDisposed,
		declineDisposalHandler:       handlers.DeclineDisposal,

		getUserParcelsHandler:           handlers.GetUserParcels,
		getWarehouseParcelsHandler:      handlers.GetWarehouseParcels,
		getConsolidationRequestsHandler: handlers.GetConsolidationRequests,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/users/:ownerId/parcels", s.GetUserParcels)
	api.POST("/parcels/:id/pay-domestic", s.PayDomesticShipping)
	api.POST("/parcels/:id/pay-storage", s.PayStorage)
	api.POST("/parcels/:id/options", s.ConfigureOptions)
	api.POST("/parcels/:id/request-disposal", s.RequestDisposal)
	api.POST("/parcels/:id/request-shipping", s.RequestShipping)

	admin := api.Group("/admin")
	admin.GET("/parcels", s.GetWarehouseParcels)
	admin.GET("/consolidation-requests", s.GetConsolidationRequests)
	admin.POST("/parcels", s.CreateParcel)
	admin.PUT("/parcels/:id/weight", s.SetWeight)
	admin.POST("/parcels/:id/complete-consolidation", s.CompleteConsolidation)
	admin.POST("/parcels/:id/deconsolidate", s.Deconsolidate)
	admin.POST("/parcels/:id/photos", s.UploadPhotos)
	admin.POST("/parcels/:id/complete-reinforcement", s.CompleteReinforcement)
	admin.POST("/parcels/:id/mark-shipped", s.MarkShipped)
	admin.POST("/parcels/:id/mark-disposed", s.MarkDisposed)
	admin.POST("/parcels/:id/decline-disposal", s.DeclineDisposal)
}

// PayDomesticShipping handles POST /api/v1/parcels/:id/pay-domestic.
// Paying one member of a shared shipping group settles the whole group.
func (s *Server) PayDomesticShipping(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	var body struct {
		OwnerID string `json:"ownerId"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	ownerID, err := kernel.UUIDFromString(body.OwnerID)
	if err != nil {
		return badRequest(ctx, "Invalid owner id")
	}

	cmd, err := commands.NewPayDomesticShippingCommand(parcelID, ownerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.payDomesticShippingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// PayStorage handles POST /api/v1/parcels/:id/pay-storage.
func (s *Server) PayStorage(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	var body struct {
		OwnerID string `json:"ownerId"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	ownerID, err := kernel.UUIDFromString(body.OwnerID)
	if err != nil {
		return badRequest(ctx, "Invalid owner id")
	}

	cmd, err := commands.NewPayStorageCommand(parcelID, ownerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	paidYen, err := s.payStorageHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, paymentResponse{PaidYen: paidYen})
}

// ConfigureOptions handles POST /api/v1/parcels/:id/options.
func (s *Server) ConfigureOptions(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	var body struct {
		OwnerID             string   `json:"ownerId"`
		ShippingMethod      string   `json:"shippingMethod"`
		PhotoService        bool     `json:"photoService"`
		Reinforcement       bool     `json:"reinforcement"`
		InsuranceCoverYen   *int64   `json:"insuranceCoverYen"`
		ConsolidateWith     []string `json:"consolidateWith"`
		CancelConsolidation bool     `json:"cancelConsolidation"`
		CancelPurchase      bool     `json:"cancelPurchase"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	ownerID, err := kernel.UUIDFromString(body.OwnerID)
	if err != nil {
		return badRequest(ctx, "Invalid owner id")
	}
	consolidateWith, err := parseUUIDs(body.ConsolidateWith)
	if err != nil {
		return badRequest(ctx, "Invalid consolidation sibling id")
	}

	cmd, err := commands.NewConfigureOptionsCommand(
		parcelID,
		ownerID,
		body.ShippingMethod,
		body.PhotoService,
		body.Reinforcement,
		body.InsuranceCoverYen,
		consolidateWith,
		body.CancelConsolidation,
		body.CancelPurchase,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	chargedYen, err := s.configureOptionsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, chargeResponse{ChargedYen: chargedYen})
}

// RequestDisposal handles POST /api/v1/parcels/:id/request-disposal.
func (s *Server) RequestDisposal(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	var body struct {
		OwnerID string `json:"ownerId"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	ownerID, err := kernel.UUIDFromString(body.OwnerID)
	if err != nil {
		return badRequest(ctx, "Invalid owner id")
	}

	cmd, err := commands.NewRequestDisposalCommand(parcelID, ownerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	receipt, err := s.requestDisposalHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, disposalResponse{
		DisposalCostYen: receipt.DisposalCostYen,
		NewBalanceYen:   receipt.NewBalanceYen,
	})
}

// RequestShipping handles POST /api/v1/parcels/:id/request-shipping.
// Without a selected service it returns the ranked carrier options; with
// one it locks the service onto the parcel and charges the cost.
func (s *Server) RequestShipping(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	var body struct {
		OwnerID         string `json:"ownerId"`
		AddressID       string `json:"addressId"`
		SelectedService string `json:"selectedService"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	ownerID, err := kernel.UUIDFromString(body.OwnerID)
	if err != nil {
		return badRequest(ctx, "Invalid owner id")
	}
	var addressID *kernel.UUID
	if body.AddressID != "" {
		parsed, err := kernel.UUIDFromString(body.AddressID)
		if err != nil {
			return badRequest(ctx, "Invalid address id")
		}
		addressID = &parsed
	}

	cmd, err := commands.NewRequestShippingCommand(parcelID, ownerID, addressID, body.SelectedService)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	outcome, err := s.requestShippingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	if outcome.NeedsCarrierSelection {
		options := make([]shippingOption, len(outcome.Options))
		for i, option := range outcome.Options {
			options[i] = shippingOption{
				ServiceType:       option.ServiceType,
				ServiceName:       option.ServiceName,
				AmountYen:         option.AmountYen,
				BillingAmount:     option.BillingAmount.String(),
				BillingCurrency:   option.BillingCurrency,
				EstimatedDelivery: option.EstimatedDelivery,
			}
		}
		return ctx.JSON(http.StatusOK, shippingQuotesResponse{
			NeedsCarrierSelection: true,
			Options:               options,
		})
	}

	return ctx.JSON(http.StatusOK, shippingChargedResponse{
		ChargedYen:    outcome.ChargedYen,
		NewBalanceYen: outcome.NewBalanceYen,
	})
}

// GetUserParcels handles GET /api/v1/users/:ownerId/parcels.
func (s *Server) GetUserParcels(ctx echo.Context) error {
	ownerID, err := pathUUID(ctx, "ownerId")
	if err != nil {
		return badRequest(ctx, "Invalid owner id")
	}

	query, err := queries.NewGetUserParcelsQuery(ownerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	parcels, err := s.getUserParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]userParcel, len(parcels))
	for i, p := range parcels {
		response[i] = userParcel{
			ID:                     p.ID.String(),
			ItemID:                 p.ItemID.String(),
			Status:                 p.Status.String(),
			WeightKg:               p.WeightKg,
			ArrivedAt:              p.ArrivedAt,
			DomesticShippingCost:   p.DomesticShippingCost,
			DomesticShippingPaid:   p.DomesticShippingPaid,
			ConsolidationRequested: p.ConsolidationRequested,
			DisposalRequested:      p.DisposalRequested,
			ShippingMethod:         p.ShippingMethod.String(),
			ShippingRequested:      p.ShippingRequested,
			CarrierService:         p.CarrierService,
			ShippingCost:           p.ShippingCost,
			TrackingNumber:         p.TrackingNumber,
			Storage:                toStorageState(p.Storage),
		}
		if p.SharedShippingGroupID != nil {
			groupID := p.SharedShippingGroupID.String()
			response[i].SharedShippingGroupID = &groupID
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateParcel handles POST /api/v1/admin/parcels.
func (s *Server) CreateParcel(ctx echo.Context) error {
	var body struct {
		OwnerID                 string   `json:"ownerId"`
		ItemIDs                 []string `json:"itemIds"`
		WeightKg                float64  `json:"weightKg"`
		DomesticShippingCostYen int64    `json:"domesticShippingCostYen"`
		ShippingCostYen         int64    `json:"shippingCostYen"`
		ShippingMethod          string   `json:"shippingMethod"`
		ShipGroupID             *string  `json:"shipGroupId"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	ownerID, err := kernel.UUIDFromString(body.OwnerID)
	if err != nil {
		return badRequest(ctx, "Invalid owner id")
	}
	itemIDs, err := parseUUIDs(body.ItemIDs)
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	var shipGroupID *kernel.UUID
	if body.ShipGroupID != nil {
		groupID, err := kernel.UUIDFromString(*body.ShipGroupID)
		if err != nil {
			return badRequest(ctx, "Invalid ship group id")
		}
		shipGroupID = &groupID
	}

	parcelID := kernel.NewUUID()
	cmd, err := commands.NewCreateParcelCommand(
		parcelID,
		ownerID,
		itemIDs,
		body.WeightKg,
		body.DomesticShippingCostYen,
		body.ShippingCostYen,
		body.ShippingMethod,
		shipGroupID,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.createParcelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: parcelID.String()})
}

// SetWeight handles PUT /api/v1/admin/parcels/:id/weight.
func (s *Server) SetWeight(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	var body struct {
		WeightKg float64 `json:"weightKg"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetWeightCommand(parcelID, body.WeightKg)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.setWeightHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteConsolidation handles POST /api/v1/admin/parcels/:id/complete-consolidation.
func (s *Server) CompleteConsolidation(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	var body struct {
		WeightKgOverride *float64 `json:"weightKgOverride"`
		CostYenOverride  *int64   `json:"costYenOverride"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCompleteConsolidationCommand(parcelID, body.WeightKgOverride, body.CostYenOverride)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.completeConsolidationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Deconsolidate handles POST /api/v1/admin/parcels/:id/deconsolidate.
func (s *Server) Deconsolidate(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	cmd, err := commands.NewDeconsolidateCommand(parcelID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.deconsolidateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// UploadPhotos handles POST /api/v1/admin/parcels/:id/photos.
func (s *Server) UploadPhotos(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	var body struct {
		PhotoURLs []string `json:"photoUrls"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUploadPhotosCommand(parcelID, body.PhotoURLs)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.uploadPhotosHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteReinforcement handles POST /api/v1/admin/parcels/:id/complete-reinforcement.
func (s *Server) CompleteReinforcement(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	cmd, err := commands.NewCompleteReinforcementCommand(parcelID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.completeReinforcementHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// MarkShipped handles POST /api/v1/admin/parcels/:id/mark-shipped.
func (s *Server) MarkShipped(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	var body struct {
		TrackingNumber string `json:"trackingNumber"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMarkShippedCommand(parcelID, body.TrackingNumber)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.markShippedHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// MarkDisposed handles POST /api/v1/admin/parcels/:id/mark-disposed.
func (s *Server) MarkDisposed(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	cmd, err := commands.NewMarkDisposedCommand(parcelID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.markDisposedHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeclineDisposal handles POST /api/v1/admin/parcels/:id/decline-disposal.
func (s *Server) DeclineDisposal(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewDeclineDisposalCommand(parcelID, body.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.declineDisposalHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetWarehouseParcels handles GET /api/v1/admin/parcels.
func (s *Server) GetWarehouseParcels(ctx echo.Context) error {
	query := queries.NewGetWarehouseParcelsQuery()

	parcels, err := s.getWarehouseParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]warehouseParcel, len(parcels))
	for i, p := range parcels {
		response[i] = warehouseParcel{
			ID:                     p.ID.String(),
			OwnerID:                p.OwnerID.String(),
			ItemID:                 p.ItemID.String(),
			Status:                 p.Status.String(),
			WeightKg:               p.WeightKg,
			ArrivedAt:              p.ArrivedAt,
			PhotoStatus:            p.PhotoStatus.String(),
			ReinforcementStatus:    p.ReinforcementStatus.String(),
			ConsolidationRequested: p.ConsolidationRequested,
			DisposalRequested:      p.DisposalRequested,
			ShippingRequested:      p.ShippingRequested,
			Storage:                toStorageState(p.Storage),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetConsolidationRequests handles GET /api/v1/admin/consolidation-requests.
func (s *Server) GetConsolidationRequests(ctx echo.Context) error {
	query := queries.NewGetConsolidationRequestsQuery()

	requests, err := s.getConsolidationRequestsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]consolidationRequest, len(requests))
	for i, r := range requests {
		siblings := make([]string, len(r.ConsolidateWith))
		for j, sibling := range r.ConsolidateWith {
			siblings[j] = sibling.String()
		}
		response[i] = consolidationRequest{
			ParcelID:            r.ParcelID.String(),
			OwnerID:             r.OwnerID.String(),
			ConsolidateWith:     siblings,
			ReservedSuccessorID: r.ReservedSuccessorID.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func parseUUIDs(raw []string) ([]kernel.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	ids := make([]kernel.UUID, len(raw))
	for i, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// respondError maps the application error taxonomy onto HTTP statuses.
func respondError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	var notFound *errs.ObjectNotFoundError
	var authorization *errs.AuthorizationError
	var balance *errs.InsufficientBalanceError
	var precondition *errs.PreconditionError
	var expired *errs.ExpiredStateError
	var external *errs.ExternalServiceError
	var required *errs.ValueIsRequiredError
	var invalid *errs.ValueIsInvalidError
	var outOfRange *errs.ValueIsOutOfRangeError

	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &authorization):
		status = http.StatusForbidden
	case errors.As(err, &balance):
		status = http.StatusPaymentRequired
	case errors.As(err, &precondition), errors.As(err, &expired):
		status = http.StatusConflict
	case errors.As(err, &external):
		status = http.StatusBadGateway
	case errors.As(err, &required), errors.As(err, &invalid), errors.As(err, &outOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, errorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type paymentResponse struct {
	PaidYen int64 `json:"paidYen"`
}

type chargeResponse struct {
	ChargedYen int64 `json:"chargedYen"`
}

type disposalResponse struct {
	DisposalCostYen int64 `json:"disposalCostYen"`
	NewBalanceYen   int64 `json:"newBalanceYen"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type shippingOption struct {
	ServiceType       string    `json:"serviceType"`
	ServiceName       string    `json:"serviceName"`
	AmountYen         int64     `json:"amountYen"`
	BillingAmount     string    `json:"billingAmount"`
	BillingCurrency   string    `json:"billingCurrency"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
}

type shippingQuotesResponse struct {
	NeedsCarrierSelection bool             `json:"needsCarrierSelection"`
	Options               []shippingOption `json:"options"`
}

type shippingChargedResponse struct {
	ChargedYen    int64 `json:"chargedYen"`
	NewBalanceYen int64 `json:"newBalanceYen"`
}

type storageState struct {
	TotalDays         int    `json:"totalDays"`
	FreeDaysRemaining int    `json:"freeDaysRemaining"`
	UnpaidDays        int    `json:"unpaidDays"`
	DaysUntilDisposal int    `json:"daysUntilDisposal"`
	CurrentFeeYen     int64  `json:"currentFeeYen"`
	IsExpired         bool   `json:"isExpired"`
	CanShip           bool   `json:"canShip"`
	Status            string `json:"status"`
}

type userParcel struct {
	ID                     string       `json:"id"`
	ItemID                 string       `json:"itemId"`
	Status                 string       `json:"status"`
	WeightKg               float64      `json:"weightKg"`
	ArrivedAt              time.Time    `json:"arrivedAt"`
	DomesticShippingCost   int64        `json:"domesticShippingCost"`
	DomesticShippingPaid   bool         `json:"domesticShippingPaid"`
	SharedShippingGroupID  *string      `json:"sharedShippingGroupId,omitempty"`
	ConsolidationRequested bool         `json:"consolidationRequested"`
	DisposalRequested      bool         `json:"disposalRequested"`
	ShippingMethod         string       `json:"shippingMethod"`
	ShippingRequested      bool         `json:"shippingRequested"`
	CarrierService         string       `json:"carrierService,omitempty"`
	ShippingCost           int64        `json:"shippingCost"`
	TrackingNumber         string       `json:"trackingNumber,omitempty"`
	Storage                storageState `json:"storage"`
}

type warehouseParcel struct {
	ID                     string       `json:"id"`
	OwnerID                string       `json:"ownerId"`
	ItemID                 string       `json:"itemId"`
	Status                 string       `json:"status"`
	WeightKg               float64      `json:"weightKg"`
	ArrivedAt              time.Time    `json:"arrivedAt"`
	PhotoStatus            string       `json:"photoStatus"`
	ReinforcementStatus    string       `json:"reinforcementStatus"`
	ConsolidationRequested bool         `json:"consolidationRequested"`
	DisposalRequested      bool         `json:"disposalRequested"`
	ShippingRequested      bool         `json:"shippingRequested"`
	Storage                storageState `json:"storage"`
}

type consolidationRequest struct {
	ParcelID            string   `json:"parcelId"`
	OwnerID             string   `json:"ownerId"`
	ConsolidateWith     []string `json:"consolidateWith"`
	ReservedSuccessorID string   `json:"reservedSuccessorId"`
}

func toStorageState(info services.StorageInfo) storageState {
	return storageState{
		TotalDays:         info.TotalDays,
		FreeDaysRemaining: info.FreeDaysRemaining,
		UnpaidDays:        info.UnpaidDays,
		DaysUntilDisposal: info.DaysUntilDisposal,
		CurrentFeeYen:     info.CurrentFeeYen,
		IsExpired:         info.IsExpired,
		CanShip:           info.CanShip,
		Status:            info.Status.String(),
	}
}
