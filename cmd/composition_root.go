package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	"warehouse/internal/adapters/out/exchange"
	"warehouse/internal/adapters/out/fedex"
	"warehouse/internal/adapters/out/postgres"
	"warehouse/internal/adapters/out/postgres/notificationrepo"
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/ports"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	quoter     ports.RateQuoter
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	rates, err := exchange.NewRateSource(exchange.Config{}, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	quoter, err := fedex.NewClient(fedex.Config{
		APIKey:        config.FedexAPIKey,
		SecretKey:     config.FedexSecretKey,
		AccountNumber: config.FedexAccountNumber,
	}, rates, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notificationrepo.NewGormNotifier(gormDB),
		quoter:     quoter,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreatePayDomesticShippingCommandHandler() commands.PayDomesticShippingCommandHandler {
	var f commands.GroupBillingUoWFactory = FuncGroupBillingUoWFactory(func() commands.GroupBillingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPayDomesticShippingCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreatePayStorageCommandHandler() commands.PayStorageCommandHandler {
	var f commands.BillingUoWFactory = FuncBillingUoWFactory(func() commands.BillingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPayStorageCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateConfigureOptionsCommandHandler() commands.ConfigureOptionsCommandHandler {
	var f commands.GroupBillingUoWFactory = FuncGroupBillingUoWFactory(func() commands.GroupBillingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfigureOptionsCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateRequestDisposalCommandHandler() commands.RequestDisposalCommandHandler {
	var f commands.BillingUoWFactory = FuncBillingUoWFactory(func() commands.BillingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRequestDisposalCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateRequestShippingCommandHandler() commands.RequestShippingCommandHandler {
	var f commands.ShippingUoWFactory = FuncShippingUoWFactory(func() commands.ShippingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRequestShippingCommandHandler(f, c.quoter, c.notifier)
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	var f commands.IntakeUoWFactory = FuncIntakeUoWFactory(func() commands.IntakeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateParcelCommandHandler(f)
}

func (c *CompositionRoot) CreateSetWeightCommandHandler() commands.SetWeightCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetWeightCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteConsolidationCommandHandler() commands.CompleteConsolidationCommandHandler {
	var f commands.MergeUoWFactory = FuncMergeUoWFactory(func() commands.MergeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteConsolidationCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateDeconsolidateCommandHandler() commands.DeconsolidateCommandHandler {
	var f commands.MergeUoWFactory = FuncMergeUoWFactory(func() commands.MergeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeconsolidateCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateUploadPhotosCommandHandler() commands.UploadPhotosCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUploadPhotosCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteReinforcementCommandHandler() commands.CompleteReinforcementCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteReinforcementCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkShippedCommandHandler() commands.MarkShippedCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkShippedCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateMarkDisposedCommandHandler() commands.MarkDisposedCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkDisposedCommandHandler(f)
}

func (c *CompositionRoot) CreateDeclineDisposalCommandHandler() commands.DeclineDisposalCommandHandler {
	var f commands.BillingUoWFactory = FuncBillingUoWFactory(func() commands.BillingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeclineDisposalCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateSweepStorageCommandHandler() commands.SweepStorageCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSweepStorageCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateGetUserParcelsQueryHandler() queries.GetUserParcelsQueryHandler {
	return queries.NewGetUserParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWarehouseParcelsQueryHandler() queries.GetWarehouseParcelsQueryHandler {
	return queries.NewGetWarehouseParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetConsolidationRequestsQueryHandler() queries.GetConsolidationRequestsQueryHandler {
	return queries.NewGetConsolidationRequestsQueryHandler(c.gormDB)
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncBillingUoWFactory func() commands.BillingUoW

func (f FuncBillingUoWFactory) Create() commands.BillingUoW {
	return f()
}

type FuncGroupBillingUoWFactory func() commands.GroupBillingUoW

func (f FuncGroupBillingUoWFactory) Create() commands.GroupBillingUoW {
	return f()
}

type FuncIntakeUoWFactory func() commands.IntakeUoW

func (f FuncIntakeUoWFactory) Create() commands.IntakeUoW {
	return f()
}

type FuncMergeUoWFactory func() commands.MergeUoW

func (f FuncMergeUoWFactory) Create() commands.MergeUoW {
	return f()
}

type FuncShippingUoWFactory func() commands.ShippingUoW

func (f FuncShippingUoWFactory) Create() commands.ShippingUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}
