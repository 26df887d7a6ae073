package util

import (
	"errors"
	"fmt"
	_ "github.com/joho/godotenv/autoload"
	"log"
	"os"
	"strconv"
	"time"
)

type configValue struct {
	envVarName   string
	required     bool
	errorMessage string
	defaultValue string
	Value        string
}

// Int returns the value as an integer, falling back to the default
// when the value is not a number.
func (v configValue) Int() int {
	n, err := strconv.Atoi(v.Value)
	if err != nil {
		n, _ = strconv.Atoi(v.defaultValue)
	}

	return n
}

type Config struct {
	DbConnectionString      configValue
	SeqUrl                  configValue
	SeqToken                configValue
	Environment             configValue
	LogLevel                configValue
	Timezone                configValue
	BootstrapTrials         configValue
	WindowDays              configValue
	MinNeighborhoodListings configValue
}

func NewConfig() *Config {
	const dbConnectionStringName = "DB_CONNECTION_STRING"
	const seqUrlName = "SEQ_URL"
	const seqTokenName = "SEQ_TOKEN"
	const environmentName = "ENVIRONMENT"
	const logLevelName = "LOG_LEVEL"
	const timezoneName = "TIMEZONE"
	const bootstrapTrialsName = "BOOTSTRAP_TRIALS"
	const windowDaysName = "WINDOW_DAYS"
	const minNeighborhoodListingsName = "MIN_NEIGHBORHOOD_LISTINGS"

	return &Config{
		DbConnectionString: configValue{
			envVarName:   dbConnectionStringName,
			required:     true,
			errorMessage: fmt.Sprintf("make sure that environment variable %s is set and in DSN format", dbConnectionStringName),
		},
		SeqUrl: configValue{
			envVarName: seqUrlName,
			required:   false,
		},
		SeqToken: configValue{
			envVarName: seqTokenName,
			required:   false,
		},
		Environment: configValue{
			envVarName:   environmentName,
			required:     false,
			defaultValue: "development",
		},
		LogLevel: configValue{
			envVarName:   logLevelName,
			required:     false,
			defaultValue: "debug",
		},
		// listings source publishes posting times in local time without an offset
		Timezone: configValue{
			envVarName:   timezoneName,
			required:     false,
			defaultValue: "America/Los_Angeles",
		},
		BootstrapTrials: configValue{
			envVarName:   bootstrapTrialsName,
			required:     false,
			defaultValue: "1000",
		},
		WindowDays: configValue{
			envVarName:   windowDaysName,
			required:     false,
			defaultValue: "28",
		},
		MinNeighborhoodListings: configValue{
			envVarName:   minNeighborhoodListingsName,
			required:     false,
			defaultValue: "100",
		},
	}
}

var config *Config

func GetConfig() *Config {
	if config == nil {
		config = load()
	}

	return config
}

func load() *Config {
	config := NewConfig()

	values := []*configValue{
		&config.DbConnectionString,
		&config.SeqUrl,
		&config.SeqToken,
		&config.Environment,
		&config.LogLevel,
		&config.Timezone,
		&config.BootstrapTrials,
		&config.WindowDays,
		&config.MinNeighborhoodListings,
	}

	for _, v := range values {
		if err := populateEnv(v); err != nil {
			log.Fatal(err)
		}
	}

	return config
}

func populateEnv(m *configValue) (err error) {
	v := os.Getenv(m.envVarName)

	if v == "" && m.required {
		if m.errorMessage != "" {
			return errors.New(m.errorMessage)
		}

		return fmt.Errorf("environment variable %s is not set", m.envVarName)
	}

	if v == "" {
		v = m.defaultValue
	}

	m.Value = v
	return nil
}

// Location resolves the configured timezone. Falls back to UTC
// if the zone database does not know the name.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone.Value)
	if err != nil {
		return time.UTC
	}

	return loc
}
