package handlers

import (
	userRepo "asumo/database/repository/user"
)

// HandlerBundle gathers every handler plus the user repository the auth
// middleware needs, so route registration takes a single argument.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	User    *UserHandler
	Invoice *InvoiceHandler
	Payment *PaymentHandler
	Records *RecordsHandler
}
