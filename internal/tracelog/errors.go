package tracelog

import "codeberg.org/mutker/thermostatd/internal/errors"

const (
	// Configuration errors
	ErrInvalidConfig = errors.ErrorCode("tracelog_invalid_config")
	ErrInvalidDir    = errors.ErrorCode("tracelog_invalid_dir")

	// Storage errors
	ErrFileCreate = errors.ErrorCode("tracelog_file_create_failed")
	ErrFileClose  = errors.ErrorCode("tracelog_file_close_failed")
)
