package audithook

// Action constants for audit events.
const (
	// Vesting actions
	ActionScheduleCreated = "schedule.created"
	ActionTrancheReleased = "schedule.released"

	// Timelock actions
	ActionLockCreated   = "lock.created"
	ActionLockWithdrawn = "lock.withdrawn"

	// Sale actions
	ActionSaleInitialized = "sale.initialized"
	ActionSalePurchase    = "sale.purchase"
	ActionSaleClosed      = "sale.closed"
)

// Resource constants for audit events.
const (
	ResourceSchedule = "schedule"
	ResourceLock     = "lock"
	ResourceSale     = "sale"
)

// Category constants for audit events.
const (
	CategoryVesting  = "vesting"
	CategoryTimelock = "timelock"
	CategorySale     = "sale"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
