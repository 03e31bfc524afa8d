// Package cfgloader loads and validates application configuration at process start.
package cfgloader

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvProduction = "production"
	EnvStaging    = "staging"
	EnvDev        = "dev"
	EnvLocal      = "local"
	EnvTest       = "test"
)

// MustLoad loads and validates configuration from a YAML file selected by the
// ENVIRONMENT variable. Files are named ${ENVIRONMENT}.yaml and live in the
// config directory at the project root.
//
// Fields map via `yaml` struct tags; `default` tags are applied for fields the
// file leaves unset, and `validate` tags are enforced with the
// go-playground/validator package. ${VAR} references inside the file are
// expanded from the process environment (a .env file is loaded first if
// present). Any failure is fatal.
func MustLoad[T any](opts ...Option) T {
	config, err := Load[T](opts...)
	if err != nil {
		slog.Error(fmt.Sprintf("[cfgloader]: %v", err))
		os.Exit(1)
	}
	return config
}

// Load behaves like MustLoad but reports failures to the caller instead of exiting.
func Load[T any](opts ...Option) (T, error) {
	var config T

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if reflect.ValueOf(config).Kind() == reflect.Ptr {
		return config, errx.New("config type must not be a pointer")
	}

	_ = godotenv.Load()

	env, err := defineEnvironment()
	if err != nil {
		return config, errx.Wrap(err)
	}

	data, err := readConfigFile(buildConfigPath(env))
	if err != nil {
		return config, errx.Wrap(err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, errx.New(fmt.Sprintf("failed to unmarshal %s config file: %v", env, err))
	}

	if err = defaults.Set(&config); err != nil {
		return config, errx.New(fmt.Sprintf("failed to set default values for config: %v", err))
	}

	if err = validateConfig(&config, env); err != nil {
		return config, errx.Wrap(err)
	}

	if !o.Silent {
		printConfig(config)
	}

	return config, nil
}

func defineEnvironment() (string, error) {
	env := os.Getenv("ENVIRONMENT")
	if !slices.Contains([]string{EnvProduction, EnvStaging, EnvDev, EnvLocal, EnvTest}, env) {
		return "", errx.New(
			"ENVIRONMENT env variable is not set or invalid. Choices are: production, staging, dev, local, test",
		)
	}
	return env, nil
}

func buildConfigPath(env string) string {
	return fmt.Sprintf("./config/%s.yaml", env)
}

func readConfigFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errx.New(fmt.Sprintf(
			"config file not found in the path %s - make sure the yaml file exists for each environment", path,
		))
	}
	if err != nil {
		return nil, errx.New(fmt.Sprintf("failed to read config file %s: %v", path, err))
	}
	return data, nil
}

func validateConfig(config any, env string) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(config)

	failedFields := make([]string, 0)
	if errs, ok := err.(validator.ValidationErrors); ok { //nolint: errorlint // type assertion is how validator exposes field errors
		for _, fieldErr := range errs {
			tagErr := fieldErr.Tag()
			if fieldErr.Param() != "" {
				tagErr += fmt.Sprintf("=%s", fieldErr.Param())
			}
			failedFields = append(failedFields, fmt.Sprintf("%s: %s", fieldErr.Namespace(), tagErr))
		}
	}

	if len(failedFields) > 0 {
		return errx.New(
			fmt.Sprintf("invalid fields in %s config -> %s", env, strings.Join(failedFields, ",  ")),
		)
	}

	return nil
}
