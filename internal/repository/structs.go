package repository

import (
	"errors"
	"time"
)

var ErrObjectNotFound = errors.New("not found")

type UnitStatus string

const (
	UnitAvailable UnitStatus = "available"
	UnitRented    UnitStatus = "rented"
	UnitRepair    UnitStatus = "repair"
)

type Customer struct {
	ID             int64     `db:"id"`
	TelegramID     int64     `db:"telegram_id"`
	Name           string    `db:"name"`
	Email          string    `db:"email"`
	Phone          string    `db:"phone"`
	HashedPassword string    `db:"hashed_password"`
	CreatedAt      time.Time `db:"created_at"`
}

type InventoryUnit struct {
	ID              int64      `db:"id"`
	SizeID          int64      `db:"size_id"`
	Size            int        `db:"size"`
	Brand           string     `db:"brand"`
	ModelName       string     `db:"model_name"`
	Status          UnitStatus `db:"status"`
	LastMaintenance *time.Time `db:"last_maintenance"`
}

type SizeOption struct {
	Size int `db:"size"`
}

type Rental struct {
	ID           int64      `db:"id"`
	ClientID     int64      `db:"client_id"`
	InventoryID  int64      `db:"inventory_id"`
	PricePerHour float64    `db:"price_per_hour"`
	StartTime    time.Time  `db:"start_time"`
	EndTime      *time.Time `db:"end_time"`
	TotalCost    *float64   `db:"total_cost"`
	IsActive     bool       `db:"is_active"`
}

// ActiveRental is a rental joined with the unit it holds, as listed to its
// customer.
type ActiveRental struct {
	ID           int64     `db:"id"`
	Brand        string    `db:"brand"`
	ModelName    string    `db:"model_name"`
	Size         int       `db:"size"`
	StartTime    time.Time `db:"start_time"`
	PricePerHour float64   `db:"price_per_hour"`
	TotalCost    *float64  `db:"total_cost"`
}

type RentalHistoryRow struct {
	StartTime time.Time  `db:"start_time"`
	EndTime   *time.Time `db:"end_time"`
	Brand     string     `db:"brand"`
	Size      int        `db:"size"`
	TotalCost *float64   `db:"total_cost"`
}

type SizePopularity struct {
	Size         int   `db:"size"`
	RentalsCount int64 `db:"rentals_count"`
}

type DailyIncome struct {
	Day               time.Time `db:"day"`
	TotalIncome       float64   `db:"total_income"`
	TransactionsCount int64     `db:"transactions_count"`
}

type ActionLogEntry struct {
	ID         int64     `db:"id"`
	ClientID   *int64    `db:"user_id"`
	ActionType string    `db:"action_type"`
	Details    string    `db:"details"`
	EventTime  time.Time `db:"event_time"`
}

// Action types written to the action log.
const (
	ActionRegister      = "register"
	ActionRentStart     = "rent_start"
	ActionRentEnd       = "rent_end"
	ActionUnitStatus    = "inventory_status"
	ActionProfileUpdate = "profile_update"
)
