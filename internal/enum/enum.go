package enum

// ── Group A: State machines (CHECK constrained in DB) ──

const (
	OrderStatusPending        = "PENDING"
	OrderStatusConfirmed      = "CONFIRMED"
	OrderStatusOutForDelivery = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      = "DELIVERED"
	OrderStatusCancelled      = "CANCELLED"
)

const (
	RegisterStatusOpen   = "OPEN"
	RegisterStatusClosed = "CLOSED"
)

// ── Group B: Borderline (CHECK constrained in DB) ──

const (
	UserRoleAdmin   = "ADMIN"
	UserRoleManager = "MANAGER"
	UserRoleCashier = "CASHIER"
)

const (
	OrderChannelWhatsApp = "whatsapp"
	OrderChannelIfood    = "ifood"
	OrderChannelPhone    = "phone"
	OrderChannelCounter  = "counter"
)

// ── Group C: Ledger vocabulary ──
// Lowercase values match the rows the original point-of-sale wrote;
// changing casing here would break existing data.

const (
	EntryTypeIncome  = "income"
	EntryTypeExpense = "expense"
)

const (
	EntrySourcePDV      = "pdv"
	EntrySourceDelivery = "delivery"
	EntrySourceManual   = "manual"
)

// Payment methods are labels, not an enum the aggregator validates:
// unknown values pass through reports as opaque keys.
const (
	PaymentMethodCash    = "dinheiro"
	PaymentMethodPix     = "pix"
	PaymentMethodCredit  = "cartao_credito"
	PaymentMethodDebit   = "cartao_debito"
	PaymentMethodVoucher = "vale"
	PaymentMethodMixed   = "misto"
)
