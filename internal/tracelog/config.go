package tracelog

import "codeberg.org/mutker/thermostatd/internal/errors"

const (
	defaultDirPerm = 0o755
	defaultDir     = "."

	filePrefix        = "log_"
	fileSuffix        = ".txt"
	fileNameTimestamp = "2006_01_02_15_04_05"
)

type Config struct {
	Dir string
}

func DefaultConfig() Config {
	return Config{
		Dir: defaultDir,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()
	if c.Dir == "" {
		return errFactory.New(ErrInvalidDir)
	}
	return nil
}
