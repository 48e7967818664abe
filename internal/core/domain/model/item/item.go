package item

import (
	"errors"
	"fmt"
	"strings"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created
	// through a factory method. This ensures all items are properly validated.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
)

// Item represents a purchased product held in a parcel at the warehouse.
// Aggregate items describe the combined contents of a consolidated parcel.
//
// Item follows these invariants:
//   - Must have a valid unique identifier and a non-empty name
//   - Price is never negative, quantity is always positive
//   - Can only be created through NewItem, NewAggregateItem, or RestoreItem
type Item struct {
	// id is the unique identifier for the item
	id kernel.UUID

	// purchaseOrderID links the item to the purchase order it came from.
	// It is nil for aggregate items combining several orders.
	purchaseOrderID *kernel.UUID

	// name is the product name shown to the owner
	name string

	// priceYen is the purchase price in yen
	priceYen int64

	// quantity is the number of units in the parcel
	quantity int

	// productURL points at the product page on the proxied shop
	productURL string

	// componentItemIDs lists the items combined into an aggregate item
	componentItemIDs []kernel.UUID

	// isConstructed ensures the item was created via a constructor
	isConstructed bool
}

// NewItem creates a new Item instance with validation.
//
// Parameters:
//   - id: Unique identifier for the item
//   - purchaseOrderID: Purchase order the item belongs to
//   - name: Product name (required)
//   - priceYen: Purchase price in yen
//   - quantity: Number of units (must be positive)
//   - productURL: Product page address (optional)
func NewItem(
	id kernel.UUID,
	purchaseOrderID kernel.UUID,
	name string,
	priceYen int64,
	quantity int,
	productURL string,
) (*Item, error) {
	if err := purchaseOrderID.Validate(); err != nil {
		return nil, err
	}

	item := &Item{
		purchaseOrderID: &purchaseOrderID,
		productURL:      productURL,
		isConstructed:   true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setName(name),
		item.setPrice(priceYen),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// NewAggregateItem creates the item describing the combined contents of a
// consolidated parcel. Its name joins the component names, and its price and
// quantity sum the components. Aggregate items carry no purchase order link
// since components may span several orders.
func NewAggregateItem(id kernel.UUID, components []*Item) (*Item, error) {
	if len(components) < 2 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"components is invalid",
			fmt.Errorf("an aggregate item needs at least 2 components, got %d", len(components)),
		)
	}

	names := make([]string, 0, len(components))
	componentIDs := make([]kernel.UUID, 0, len(components))
	var totalPrice int64
	var totalQuantity int
	for _, component := range components {
		if err := component.Validate(); err != nil {
			return nil, err
		}
		names = append(names, component.Name())
		componentIDs = append(componentIDs, component.ID())
		totalPrice += component.PriceYen()
		totalQuantity += component.Quantity()
	}

	item := &Item{
		componentItemIDs: componentIDs,
		isConstructed:    true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setName(strings.Join(names, " + ")),
		item.setPrice(totalPrice),
		item.setQuantity(totalQuantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// NewVariantAggregateItem creates the synthetic item anchoring a parcel
// auto-consolidated at arrival. Unlike a merge aggregate its name counts the
// variants instead of joining them, and its quantity is the variant count.
func NewVariantAggregateItem(id kernel.UUID, components []*Item) (*Item, error) {
	if len(components) < 2 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"components is invalid",
			fmt.Errorf("an aggregate item needs at least 2 components, got %d", len(components)),
		)
	}

	componentIDs := make([]kernel.UUID, 0, len(components))
	var totalPrice int64
	for _, component := range components {
		if err := component.Validate(); err != nil {
			return nil, err
		}
		componentIDs = append(componentIDs, component.ID())
		totalPrice += component.PriceYen()
	}

	item := &Item{
		componentItemIDs: componentIDs,
		isConstructed:    true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setName(fmt.Sprintf("%d variants", len(components))),
		item.setPrice(totalPrice),
		item.setQuantity(len(components)),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs an Item from persistent storage.
func RestoreItem(
	id kernel.UUID,
	purchaseOrderID *kernel.UUID,
	name string,
	priceYen int64,
	quantity int,
	productURL string,
	componentItemIDs []kernel.UUID,
) (*Item, error) {
	item := &Item{
		purchaseOrderID:  purchaseOrderID,
		productURL:       productURL,
		componentItemIDs: componentItemIDs,
		isConstructed:    true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setName(name),
		item.setPrice(priceYen),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate ensures the Item instance was properly constructed.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}

	return nil
}

// IsEqual compares two items by their unique identifiers.
func (i *Item) IsEqual(other *Item) bool {
	return other != nil && i.id.IsEqual(other.id)
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// PurchaseOrderID returns the linked purchase order, nil for aggregate items.
func (i *Item) PurchaseOrderID() *kernel.UUID {
	return i.purchaseOrderID
}

// Name returns the product name.
func (i *Item) Name() string {
	return i.name
}

// PriceYen returns the purchase price in yen.
func (i *Item) PriceYen() int64 {
	return i.priceYen
}

// Quantity returns the number of units.
func (i *Item) Quantity() int {
	return i.quantity
}

// ProductURL returns the product page address.
func (i *Item) ProductURL() string {
	return i.productURL
}

// ComponentItemIDs returns the items combined into an aggregate item.
// It is empty for regular items.
func (i *Item) ComponentItemIDs() []kernel.UUID {
	return i.componentItemIDs
}

// IsAggregate reports whether the item describes consolidated contents.
func (i *Item) IsAggregate() bool {
	return len(i.componentItemIDs) > 0
}

// setID validates and sets the item's unique identifier.
func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

// setName validates and sets the product name.
func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

// setPrice validates and sets the purchase price.
func (i *Item) setPrice(priceYen int64) error {
	if priceYen < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"priceYen is invalid",
			fmt.Errorf("%d is negative", priceYen),
		)
	}
	i.priceYen = priceYen
	return nil
}

// setQuantity validates and sets the unit count.
func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	i.quantity = quantity
	return nil
}
