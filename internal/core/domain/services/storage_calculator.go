package services

import (
	"time"
)

const (
	// StorageFreeDays is the free storage window granted after arrival.
	StorageFreeDays = 60

	// StorageDailyFeeYen is the fee in yen charged per day after the free window.
	StorageDailyFeeYen = 30

	// StorageGraceDays is the maximum number of unpaid days before a parcel
	// is forcibly disposed.
	StorageGraceDays = 10
)

// StorageStatus classifies a parcel's storage billing state.
type StorageStatus int

const (
	// StorageFree means the parcel is still within the free window.
	StorageFree StorageStatus = iota

	// StoragePaid means the free window elapsed and per-day fees apply.
	StoragePaid

	// StorageExpired means unpaid fees exceeded the grace period and the
	// parcel is eligible for forced disposal.
	StorageExpired
)

func getStorageStatusStrings() map[StorageStatus]string {
	return map[StorageStatus]string{
		StorageFree:    "free",
		StoragePaid:    "paid",
		StorageExpired: "expired",
	}
}

// String returns the wire name of the storage status.
func (s StorageStatus) String() string {
	if str, ok := getStorageStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StorageInfo is the derived storage billing snapshot for a parcel.
// It is computed on demand and never stored.
type StorageInfo struct {
	// TotalDays is the number of whole days since arrival
	TotalDays int

	// FreeDaysRemaining is how many free days are left (0 once fees apply)
	FreeDaysRemaining int

	// UnpaidDays is the number of whole unpaid fee days
	UnpaidDays int

	// DaysUntilDisposal is how many grace days remain before forced disposal
	DaysUntilDisposal int

	// CurrentFeeYen is the outstanding storage fee in yen
	CurrentFeeYen int64

	// IsExpired reports that unpaid days exhausted the grace period
	IsExpired bool

	// CanShip reports that storage state does not block shipping
	CanShip bool

	// Status classifies the billing state
	Status StorageStatus
}

// StorageCalculator is a domain service computing storage billing snapshots.
//
// Billing rules:
//   - The first StorageFreeDays days after arrival are free
//   - After that, each whole day costs StorageDailyFeeYen, counted from the
//     last storage payment, or from the end of the free window if storage
//     was never paid
//   - Once UnpaidDays reaches StorageGraceDays the parcel is expired and
//     eligible for forced disposal
//   - A parcel can ship only with zero unpaid days and an unexpired state
//
// Paying storage resets the fee period to the payment time itself, not the
// computed period boundary. That is the only way UnpaidDays returns to 0.
type StorageCalculator struct{}

// NewStorageCalculator creates a new StorageCalculator instance.
func NewStorageCalculator() StorageCalculator {
	return StorageCalculator{}
}

// Calculate derives the storage billing snapshot for a parcel.
//
// Parameters:
//   - arrivedAt: Warehouse registration time
//   - lastStoragePayment: Last storage fee settlement, nil if never paid
//   - now: Evaluation time
func (c StorageCalculator) Calculate(arrivedAt time.Time, lastStoragePayment *time.Time, now time.Time) StorageInfo {
	totalDays := wholeDaysBetween(arrivedAt, now)

	if totalDays <= StorageFreeDays {
		return StorageInfo{
			TotalDays:         totalDays,
			FreeDaysRemaining: StorageFreeDays - totalDays,
			DaysUntilDisposal: StorageGraceDays,
			CanShip:           true,
			Status:            StorageFree,
		}
	}

	periodStart := arrivedAt.Add(StorageFreeDays * 24 * time.Hour)
	if lastStoragePayment != nil {
		periodStart = *lastStoragePayment
	}

	unpaidDays := wholeDaysBetween(periodStart, now)
	if unpaidDays < 0 {
		unpaidDays = 0
	}

	daysUntilDisposal := StorageGraceDays - unpaidDays
	if daysUntilDisposal < 0 {
		daysUntilDisposal = 0
	}

	info := StorageInfo{
		TotalDays:         totalDays,
		UnpaidDays:        unpaidDays,
		DaysUntilDisposal: daysUntilDisposal,
		CurrentFeeYen:     int64(unpaidDays) * StorageDailyFeeYen,
		Status:            StoragePaid,
	}

	if unpaidDays >= StorageGraceDays {
		info.Status = StorageExpired
		info.IsExpired = true
	}

	info.CanShip = !info.IsExpired && info.UnpaidDays == 0
	return info
}

// wholeDaysBetween returns the number of whole 24h days from start to end,
// negative when end precedes start.
func wholeDaysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
