package repository

// Customers.
const (
	GetCustomerByTelegramID = `
        SELECT id, telegram_id, name, email, phone, hashed_password, created_at
        FROM clients
        WHERE telegram_id = $1
        LIMIT 1
    `

	CheckEmailExists = `SELECT EXISTS (SELECT 1 FROM clients WHERE email = $1)`

	RegisterCustomer = `
        INSERT INTO clients (telegram_id, name, email, phone, hashed_password)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `

	UpdateCustomerProfile = `
        UPDATE clients SET
            name = COALESCE($2, name),
            phone = COALESCE($3, phone)
        WHERE id = $1
    `
)

// Inventory.
const (
	GetAvailableSizes = `
        SELECT DISTINCT s.size
        FROM sizes s
        JOIN inventory i ON s.id = i.size_id
        WHERE i.status = 'available'
        ORDER BY s.size
    `

	GetFirstAvailableUnit = `
        SELECT i.id, i.size_id, s.size, sm.brand, sm.model_name, i.status, i.last_maintenance
        FROM inventory i
        JOIN sizes s ON i.size_id = s.id
        JOIN skate_models sm ON s.skate_model_id = sm.id
        WHERE s.size = $1 AND i.status = 'available'
        ORDER BY i.id
        LIMIT 1
    `

	GetInventoryUnit = `
        SELECT i.id, i.size_id, s.size, sm.brand, sm.model_name, i.status, i.last_maintenance
        FROM inventory i
        JOIN sizes s ON i.size_id = s.id
        JOIN skate_models sm ON s.skate_model_id = sm.id
        WHERE i.id = $1
    `

	// MarkUnitRented affects no rows when the unit was taken in between.
	MarkUnitRented = `UPDATE inventory SET status = 'rented' WHERE id = $1 AND status = 'available'`

	ReleaseRentalUnit = `
        UPDATE inventory SET status = 'available'
        WHERE id = (SELECT inventory_id FROM rentals WHERE id = $1) AND status = 'rented'
    `

	// UpdateInventoryStatus moves a unit from $3 to $2 only.
	UpdateInventoryStatus = `
        UPDATE inventory SET
            status = $2,
            last_maintenance = CASE WHEN $2::text = 'repair' THEN NOW() ELSE last_maintenance END
        WHERE id = $1 AND status = $3
    `
)

// Rentals.
const (
	CountActiveRentals = `SELECT COUNT(*) FROM rentals WHERE client_id = $1 AND is_active`

	CreateRental = `
        INSERT INTO rentals (client_id, inventory_id, price_per_hour, start_time)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `

	// CompleteRental charges fractional hours at the snapshotted rate,
	// rounded to kopecks. It returns no row unless the rental was active.
	CompleteRental = `
        UPDATE rentals SET
            end_time = $2::timestamptz,
            is_active = FALSE,
            total_cost = ROUND(price_per_hour * EXTRACT(EPOCH FROM ($2::timestamptz - start_time))::numeric / 3600, 2)
        WHERE id = $1 AND client_id = $3 AND is_active AND total_cost IS NULL
        RETURNING id, client_id, inventory_id, price_per_hour, start_time, end_time, total_cost, is_active
    `

	RecordPayment = `
        INSERT INTO payments (rental_id, amount, payment_time)
        SELECT id, total_cost, end_time FROM rentals
        WHERE id = $1 AND total_cost IS NOT NULL
    `

	GetActiveRentals = `
        SELECT r.id, sm.brand, sm.model_name, s.size, r.start_time, r.price_per_hour, r.total_cost
        FROM rentals r
        JOIN inventory i ON r.inventory_id = i.id
        JOIN sizes s ON i.size_id = s.id
        JOIN skate_models sm ON s.skate_model_id = sm.id
        WHERE r.client_id = $1 AND r.is_active
        ORDER BY r.start_time
    `
)

// Reports.
const (
	GetRentalHistory = `
        SELECT r.start_time, r.end_time, sm.brand, s.size, r.total_cost
        FROM rentals r
        JOIN inventory i ON r.inventory_id = i.id
        JOIN sizes s ON i.size_id = s.id
        JOIN skate_models sm ON s.skate_model_id = sm.id
        WHERE r.client_id = $1
        ORDER BY r.start_time DESC
    `

	GetPopularSizes = `
        SELECT s.size, COUNT(*) AS rentals_count
        FROM rentals r
        JOIN inventory i ON r.inventory_id = i.id
        JOIN sizes s ON i.size_id = s.id
        GROUP BY s.size
        ORDER BY rentals_count DESC, s.size ASC
        LIMIT $1
    `

	GetFinancialReport = `
        SELECT
            DATE_TRUNC('day', payment_time) AS day,
            SUM(amount) AS total_income,
            COUNT(*) AS transactions_count
        FROM payments
        GROUP BY day
        ORDER BY day DESC
    `
)

// Action log.
const (
	LogAction = `
        INSERT INTO action_log (user_id, action_type, details, event_time)
        VALUES ($1, $2, $3, $4)
    `

	CleanupOldLogs = `DELETE FROM action_log WHERE event_time < $1`
)

// Outbox.
const (
	CreateOutboxTask = `
        INSERT INTO outbox_tasks (id, status, payload, topic, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $5)
    `

	// ClaimOutboxTasks moves up to $4 deliverable tasks to PROCESSING. Failed
	// tasks are retried below $3 attempts, and PROCESSING tasks whose lease of
	// $5 seconds ran out are taken over.
	ClaimOutboxTasks = `
        UPDATE outbox_tasks SET status = $2, updated_at = NOW()
        WHERE id IN (
            SELECT id FROM outbox_tasks
            WHERE status = $1
               OR (status = 'FAILED' AND attempts < $3)
               OR (status = $2 AND updated_at < NOW() - $5::double precision * INTERVAL '1 second')
            ORDER BY created_at
            LIMIT $4
            FOR UPDATE SKIP LOCKED
        )
        RETURNING id, status, payload, topic, attempts, last_error, created_at, updated_at, completed_at
    `

	UpdateOutboxTaskStatus = `
        UPDATE outbox_tasks SET
            status = $2,
            attempts = $3,
            last_error = $4,
            completed_at = $5,
            updated_at = NOW()
        WHERE id = $1
    `

	CleanupDoneOutboxTasks = `DELETE FROM outbox_tasks WHERE status = 'DONE' AND completed_at < $1`
)
