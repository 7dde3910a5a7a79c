package repository

import (
	"github.com/mhrabal/tally/internal/domain/checkin"
)

var (
	// ErrNotFound is returned when no persisted state exists. Same value
	// as checkin.ErrNotFound so errors.Is matches across both packages.
	ErrNotFound = checkin.ErrNotFound
)
