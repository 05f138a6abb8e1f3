package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Calendar CalendarConfig    `yaml:"calendar"`
	Booking  BookingConfig     `yaml:"booking"`
	Auth     AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Calendar.Validate(); err != nil {
		return err
	}
	if err := c.Booking.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// CalendarConfig holds the week grid's visible day window and rendering
// geometry. RowUnit is the height of one hour in rem.
type CalendarConfig struct {
	DayStartHour int     `yaml:"day_start_hour"`
	DayEndHour   int     `yaml:"day_end_hour"`
	SlotMinutes  int     `yaml:"slot_minutes"`
	RowUnit      float64 `yaml:"row_unit"`
}

// Validate validates the calendar configuration.
func (c *CalendarConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.DayStartHour, validation.Min(0), validation.Max(23)),
		validation.Field(&c.DayEndHour, validation.Required, validation.Min(1), validation.Max(24)),
		validation.Field(&c.SlotMinutes, validation.Required, validation.In(5, 10, 15, 20, 30, 60)),
		validation.Field(&c.RowUnit, validation.Required, validation.Min(0.5)),
	); err != nil {
		return err
	}
	if c.DayEndHour <= c.DayStartHour {
		return fmt.Errorf("calendar: day_end_hour %d must be after day_start_hour %d", c.DayEndHour, c.DayStartHour)
	}
	return nil
}

// BookingConfig holds the bookable window and the allowed durations.
type BookingConfig struct {
	HorizonMonths int   `yaml:"horizon_months"`
	Durations     []int `yaml:"durations"`
}

// Validate validates the booking configuration.
func (c *BookingConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.HorizonMonths, validation.Required, validation.Min(1), validation.Max(24)),
		validation.Field(&c.Durations, validation.Required, validation.Length(1, 0)),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Calendar: CalendarConfig{
			DayStartHour: 9,
			DayEndHour:   17,
			SlotMinutes:  15,
			RowUnit:      4,
		},
		Booking: BookingConfig{
			HorizonMonths: 3,
			Durations:     []int{30, 45, 60, 90},
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
