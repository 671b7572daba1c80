package server

import "errors"

var (
	// ErrUnknownLever marks a request for a lever name that is not hosted.
	ErrUnknownLever = errors.New("unknown lever")

	// ErrLeverExists marks an attempt to create a lever under a taken name.
	ErrLeverExists = errors.New("lever already exists")

	// ErrAlreadyHeld marks a grab on a lever somebody else is holding.
	ErrAlreadyHeld = errors.New("lever already held")
)
