package application

import "errors"

var (
	// ErrPersistence signals the order could not be stored. Raised before
	// any stock change commits: reservations taken for the attempt are
	// released again.
	ErrPersistence = errors.New("failed to persist order")
	// ErrNotification signals the confirmation could not be rendered or
	// delivered. The order and its stock changes remain committed.
	ErrNotification = errors.New("failed to send order notification")
)
