package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/xy-planning-network/safespace"
	"github.com/xy-planning-network/safespace/logger"
	"gopkg.in/yaml.v2"
)

const (
	DefaultAddr         = ":3000"
	DefaultHTTPStatus   = http.StatusNotAcceptable
	DefaultLogLevel     = "INFO"
	DefaultTemplateName = "safespace/problem.html"

	AddrEnvVar           = "SAFESPACE_ADDR"
	EnvEnvVar            = "SAFESPACE_ENV"
	ExceptionKindsEnvVar = "SAFESPACE_EXCEPTION_KINDS"
	HTTPStatusEnvVar     = "SAFESPACE_HTTP_STATUS"
	LogLevelEnvVar       = "SAFESPACE_LOG_LEVEL"
	TemplateEngineEnvVar = "SAFESPACE_TEMPLATE_ENGINE"
	TemplateNamesEnvVar  = "SAFESPACE_TEMPLATE_NAMES"
)

// Config holds every setting read at startup or on reload.
type Config struct {
	// Addr is the address the web server listens on.
	Addr string `yaml:"addr"`

	// Env is the environment the application runs in.
	Env safespace.Environment `yaml:"env"`

	// ExceptionKinds names the kinds of failure presented to end users.
	// Names resolve against a registry.Catalog.
	ExceptionKinds []string `yaml:"exception_kinds"`

	// HTTPStatus is the status code responses to presented failures carry.
	HTTPStatus int `yaml:"http_status"`

	// LogLevel is one of DEBUG, INFO, WARN, ERROR, FATAL.
	LogLevel string `yaml:"log_level"`

	// TemplateEngine names an alternate template engine to render documents with.
	// Empty uses the default engine.
	TemplateEngine string `yaml:"template_engine"`

	// TemplateNames are the candidate templates for document responses, in order of preference.
	// Each may hold placeholders like {code} or {exc_type}.
	TemplateNames []string `yaml:"template_names"`
}

// Default returns a Config holding the default of every setting.
//
// ExceptionKinds is left empty; a registry.Registry configured with no kinds
// uses registry.DefaultKinds.
func Default() Config {
	return Config{
		Addr:          DefaultAddr,
		Env:           safespace.Development,
		HTTPStatus:    DefaultHTTPStatus,
		LogLevel:      DefaultLogLevel,
		TemplateNames: []string{DefaultTemplateName},
	}
}

// FromEnv reads a Config from SAFESPACE_ environment variables,
// after loading the env files named into the environment.
// Variables already set are never overwritten by env files.
//
// With no files named, FromEnv tries .env, skipping it when missing.
//
// Lists, like SAFESPACE_EXCEPTION_KINDS, are comma separated.
func FromEnv(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if len(files) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: cannot load env files: %s", safespace.ErrBadConfig, err)
		}
	}

	def := Default()
	c := Config{
		Addr:           safespace.EnvVarOrString(AddrEnvVar, def.Addr),
		Env:            safespace.EnvVarOrEnv(EnvEnvVar, def.Env),
		ExceptionKinds: safespace.EnvVarOrStrings(ExceptionKindsEnvVar, def.ExceptionKinds),
		HTTPStatus:     safespace.EnvVarOrInt(HTTPStatusEnvVar, def.HTTPStatus),
		LogLevel:       safespace.EnvVarOrString(LogLevelEnvVar, def.LogLevel),
		TemplateEngine: safespace.EnvVarOrString(TemplateEngineEnvVar, def.TemplateEngine),
		TemplateNames:  safespace.EnvVarOrStrings(TemplateNamesEnvVar, def.TemplateNames),
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Load reads a Config from the YAML file at path.
// Unknown keys are an error.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: cannot read %s: %s", safespace.ErrBadConfig, path, err)
	}

	return Parse(b)
}

// Parse reads a Config from YAML.
func Parse(b []byte) (Config, error) {
	c := Default()
	if err := yaml.UnmarshalStrict([]byte(os.ExpandEnv(string(b))), &c); err != nil {
		return Config{}, fmt.Errorf("%w: cannot parse: %s", safespace.ErrBadConfig, err)
	}

	if len(c.TemplateNames) == 0 {
		c.TemplateNames = Default().TemplateNames
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate asserts c holds usable settings.
// Validate does not resolve ExceptionKinds or TemplateNames;
// the components using them do.
func (c Config) Validate() error {
	if c.HTTPStatus < 100 || c.HTTPStatus > 599 {
		return fmt.Errorf("%w: http_status %d is not an HTTP status code", safespace.ErrBadConfig, c.HTTPStatus)
	}

	if err := c.Env.Valid(); err != nil {
		return fmt.Errorf("%w: env: %s", safespace.ErrBadConfig, err)
	}

	if c.LogLevel != "" && logger.NewLogLevel(c.LogLevel) == logger.LogLevelUnk {
		return fmt.Errorf("%w: unknown log_level %q", safespace.ErrBadConfig, c.LogLevel)
	}

	for _, name := range c.TemplateNames {
		if name == "" {
			return fmt.Errorf("%w: empty template name", safespace.ErrBadConfig)
		}
	}

	return nil
}
