// Package parcelrepo provides data transfer objects and mapping functions
// for parcel persistence. It implements the repository pattern for the
// parcel aggregate, converting between the domain model and the relational
// representation.
package parcelrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// UUIDSlice stores a list of identifiers as a JSONB array of UUID strings.
type UUIDSlice []uuid.UUID

// Value implements driver.Valuer.
func (s UUIDSlice) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *UUIDSlice) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}
	raw, ok := value.([]byte)
	if !ok {
		str, okStr := value.(string)
		if !okStr {
			return fmt.Errorf("unsupported UUIDSlice source type %T", value)
		}
		raw = []byte(str)
	}
	return json.Unmarshal(raw, s)
}

// GormDataType tells GORM to store the slice as JSONB.
func (UUIDSlice) GormDataType() string {
	return "jsonb"
}

// StringSlice stores a list of strings as a JSONB array.
type StringSlice []string

// Value implements driver.Valuer.
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *StringSlice) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}
	raw, ok := value.([]byte)
	if !ok {
		str, okStr := value.(string)
		if !okStr {
			return fmt.Errorf("unsupported StringSlice source type %T", value)
		}
		raw = []byte(str)
	}
	return json.Unmarshal(raw, s)
}

// GormDataType tells GORM to store the slice as JSONB.
func (StringSlice) GormDataType() string {
	return "jsonb"
}

// ParcelDTO represents the database structure for persisting parcel
// aggregates. Indexed by owner for account views and by the shared group
// for atomic group payment.
type ParcelDTO struct {
	ID                     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID                uuid.UUID  `gorm:"type:uuid;index"`
	ItemID                 uuid.UUID  `gorm:"type:uuid"`
	Status                 int        `gorm:"index"`
	LifecycleMode          int        `gorm:"index"`
	SuccessorID            *uuid.UUID `gorm:"type:uuid"`
	ArrivedAt              time.Time
	LastStoragePayment     *time.Time
	LastFeeCheck           *time.Time
	WeightKg               float64
	DomesticShippingCost   int64
	DomesticShippingPaid   bool
	SharedShippingGroupID  *uuid.UUID `gorm:"type:uuid;index"`
	ConsolidationRequested bool
	ConsolidateWith        UUIDSlice `gorm:"type:jsonb"`
	ReservedSuccessorID    *uuid.UUID `gorm:"type:uuid"`
	Consolidated           bool
	SourceParcelIDs        UUIDSlice `gorm:"type:jsonb"`
	AutoConsolidated       bool
	OriginalItemIDs        UUIDSlice `gorm:"type:jsonb"`
	PhotoStatus            int
	PhotoURLs              StringSlice `gorm:"type:jsonb"`
	ReinforcementStatus    int
	InsuranceCover         int64
	InsurancePremiumPaid   int64
	DisposalRequested      bool
	DisposalCost           int64
	ShippingMethod         string
	ShippingRequested      bool
	ShippingAddressID      *uuid.UUID `gorm:"type:uuid"`
	CarrierService         string
	ShippingCost           int64
	TrackingNumber         string
	ShippedAt              *time.Time
}

// TableName specifies the database table name for parcel records.
func (ParcelDTO) TableName() string {
	return "parcels"
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalKernelUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	restored, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &restored, nil
}

func uuidSliceFromDomain(ids []kernel.UUID) UUIDSlice {
	if len(ids) == 0 {
		return nil
	}
	slice := make(UUIDSlice, 0, len(ids))
	for _, id := range ids {
		slice = append(slice, id.Bytes())
	}
	return slice
}

func uuidSliceToDomain(slice UUIDSlice) ([]kernel.UUID, error) {
	if len(slice) == 0 {
		return nil, nil
	}
	ids := make([]kernel.UUID, 0, len(slice))
	for _, raw := range slice {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// fromDomain converts a parcel aggregate to its database representation.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	return ParcelDTO{
		ID:                     aggregate.ID().Bytes(),
		OwnerID:                aggregate.OwnerID().Bytes(),
		ItemID:                 aggregate.ItemID().Bytes(),
		Status:                 int(aggregate.Status()),
		LifecycleMode:          int(aggregate.Lifecycle().Mode()),
		SuccessorID:            optionalUUID(aggregate.Lifecycle().SuccessorID()),
		ArrivedAt:              aggregate.ArrivedAt(),
		LastStoragePayment:     aggregate.LastStoragePayment(),
		LastFeeCheck:           aggregate.LastFeeCheck(),
		WeightKg:               aggregate.WeightKg(),
		DomesticShippingCost:   aggregate.DomesticShippingCost(),
		DomesticShippingPaid:   aggregate.IsDomesticShippingPaid(),
		SharedShippingGroupID:  optionalUUID(aggregate.SharedShippingGroupID()),
		ConsolidationRequested: aggregate.IsConsolidationRequested(),
		ConsolidateWith:        uuidSliceFromDomain(aggregate.ConsolidateWith()),
		ReservedSuccessorID:    optionalUUID(aggregate.ReservedSuccessorID()),
		Consolidated:           aggregate.IsConsolidated(),
		SourceParcelIDs:        uuidSliceFromDomain(aggregate.SourceParcelIDs()),
		AutoConsolidated:       aggregate.IsAutoConsolidated(),
		OriginalItemIDs:        uuidSliceFromDomain(aggregate.OriginalItemIDs()),
		PhotoStatus:            int(aggregate.PhotoStatus()),
		PhotoURLs:              StringSlice(aggregate.PhotoURLs()),
		ReinforcementStatus:    int(aggregate.ReinforcementStatus()),
		InsuranceCover:         aggregate.InsuranceCover(),
		InsurancePremiumPaid:   aggregate.InsurancePremiumPaid(),
		DisposalRequested:      aggregate.IsDisposalRequested(),
		DisposalCost:           aggregate.DisposalCost(),
		ShippingMethod:         aggregate.ShippingMethod().String(),
		ShippingRequested:      aggregate.IsShippingRequested(),
		ShippingAddressID:      optionalUUID(aggregate.ShippingAddressID()),
		CarrierService:         aggregate.CarrierService(),
		ShippingCost:           aggregate.ShippingCost(),
		TrackingNumber:         aggregate.TrackingNumber(),
		ShippedAt:              aggregate.ShippedAt(),
	}
}

// toDomain converts a database DTO to a parcel aggregate.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}

	successorID, err := optionalKernelUUID(dto.SuccessorID)
	if err != nil {
		return nil, err
	}
	lifecycle, err := parcel.RestoreLifecycle(parcel.Mode(dto.LifecycleMode), successorID)
	if err != nil {
		return nil, err
	}

	sharedGroupID, err := optionalKernelUUID(dto.SharedShippingGroupID)
	if err != nil {
		return nil, err
	}
	reservedSuccessorID, err := optionalKernelUUID(dto.ReservedSuccessorID)
	if err != nil {
		return nil, err
	}
	shippingAddressID, err := optionalKernelUUID(dto.ShippingAddressID)
	if err != nil {
		return nil, err
	}

	consolidateWith, err := uuidSliceToDomain(dto.ConsolidateWith)
	if err != nil {
		return nil, err
	}
	sourceParcelIDs, err := uuidSliceToDomain(dto.SourceParcelIDs)
	if err != nil {
		return nil, err
	}
	originalItemIDs, err := uuidSliceToDomain(dto.OriginalItemIDs)
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(parcel.RestoreParcelParams{
		ID:                     id,
		OwnerID:                ownerID,
		ItemID:                 itemID,
		WeightKg:               dto.WeightKg,
		ArrivedAt:              dto.ArrivedAt,
		LastStoragePayment:     dto.LastStoragePayment,
		LastFeeCheck:           dto.LastFeeCheck,
		Status:                 parcel.Status(dto.Status),
		Lifecycle:              lifecycle,
		DomesticShippingCost:   dto.DomesticShippingCost,
		DomesticShippingPaid:   dto.DomesticShippingPaid,
		SharedShippingGroupID:  sharedGroupID,
		ConsolidationRequested: dto.ConsolidationRequested,
		ConsolidateWith:        consolidateWith,
		ReservedSuccessorID:    reservedSuccessorID,
		Consolidated:           dto.Consolidated,
		SourceParcelIDs:        sourceParcelIDs,
		AutoConsolidated:       dto.AutoConsolidated,
		OriginalItemIDs:        originalItemIDs,
		PhotoStatus:            parcel.ServiceStatus(dto.PhotoStatus),
		PhotoURLs:              dto.PhotoURLs,
		ReinforcementStatus:    parcel.ServiceStatus(dto.ReinforcementStatus),
		InsuranceCover:         dto.InsuranceCover,
		InsurancePremiumPaid:   dto.InsurancePremiumPaid,
		DisposalRequested:      dto.DisposalRequested,
		DisposalCost:           dto.DisposalCost,
		ShippingMethod:         parcel.ShippingMethod(dto.ShippingMethod),
		ShippingRequested:      dto.ShippingRequested,
		ShippingAddressID:      shippingAddressID,
		CarrierService:         dto.CarrierService,
		ShippingCost:           dto.ShippingCost,
		TrackingNumber:         dto.TrackingNumber,
		ShippedAt:              dto.ShippedAt,
	})
}
