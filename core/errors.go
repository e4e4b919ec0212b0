package core

import "errors"

// ErrInvalidID is returned when an identifier cannot be cast to the datastore id type
var ErrInvalidID = errors.New("invalid identifier")

// ErrNotConnected is returned when the datastore client has not been established
var ErrNotConnected = errors.New("datastore is not connected")

// ErrClosed is returned when connecting after the datastore connection was closed
var ErrClosed = errors.New("datastore connection is closed")
