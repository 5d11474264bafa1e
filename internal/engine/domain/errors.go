package domain

import "errors"

var (
	errNoResources    = errors.New("tile has no resources to consume")
	errAlreadyFlipped = errors.New("tile has already flipped")
	errMarketDrained  = errors.New("market cannot go below zero")
	errOccupied       = errors.New("location already occupied")
)
