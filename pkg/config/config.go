package config

// DB configures the SQLite store. Variables are read as DATABASE_PATH and
// DATABASE_FOREIGN_KEYS; leaf fields carry no envconfig tag so envconfig never
// falls back to an unprefixed name such as PATH.
type DB struct {
	Path        string `default:"bank_system.db" validate:"required"`
	ForeignKeys bool   `split_words:"true" default:"true"`
}

// Log configures the process logger, read from LOG_LEVEL, LOG_FORMAT,
// LOG_TIME_FORMAT and LOG_PREFIX.
type Log struct {
	Level      int    `default:"0" validate:"min=-4,max=12"`
	Format     string `default:"text" validate:"oneof=json text"`
	TimeFormat string `split_words:"true" default:"2006-01-02 15:04:05"`
	Prefix     string `default:"[banksystem]"`
}

type App struct {
	Env string `envconfig:"APP_ENV" default:"development" validate:"oneof=development test production"`
	Log *Log   `envconfig:"LOG" validate:"required"`
	DB  *DB    `envconfig:"DATABASE" validate:"required"`
}
