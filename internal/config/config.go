// Package config holds the configuration of the standalone mock
// daemon: listen address, the OAuth client and callback URLs the mock
// accepts, extra seed users, and logging.
package config

import (
	"errors"
	"fmt"

	"github.com/hackry/mymlhmock/internal/store"
)

// Default listen address for the daemon.
const DefaultListen = "127.0.0.1:9181"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// LogConfig configures daemon logging.
type LogConfig struct {
	Level         string `mapstructure:"level" json:"level"`
	EnableFile    bool   `mapstructure:"enable_file" json:"enable_file"`
	EnableConsole bool   `mapstructure:"enable_console" json:"enable_console"`
	Filename      string `mapstructure:"filename" json:"filename"`
	LogDir        string `mapstructure:"log_dir" json:"log_dir"`
	MaxSize       int    `mapstructure:"max_size" json:"max_size"` // megabytes
	MaxBackups    int    `mapstructure:"max_backups" json:"max_backups"`
	MaxAge        int    `mapstructure:"max_age" json:"max_age"` // days
	Compress      bool   `mapstructure:"compress" json:"compress"`
	JSONFormat    bool   `mapstructure:"json_format" json:"json_format"`
}

// School mirrors the nested school record in seed user configuration.
type School struct {
	ID   int    `mapstructure:"id" json:"id"`
	Name string `mapstructure:"name" json:"name"`
}

// User is one seed user in the daemon configuration.
type User struct {
	ID                  int      `mapstructure:"id" json:"id"`
	FirstName           string   `mapstructure:"first_name" json:"first_name"`
	LastName            string   `mapstructure:"last_name" json:"last_name"`
	CreatedAt           string   `mapstructure:"created_at" json:"created_at"`
	UpdatedAt           string   `mapstructure:"updated_at" json:"updated_at"`
	Email               string   `mapstructure:"email" json:"email"`
	PhoneNumber         string   `mapstructure:"phone_number" json:"phone_number"`
	Gender              string   `mapstructure:"gender" json:"gender"`
	Birthday            string   `mapstructure:"birthday" json:"birthday"`
	LevelOfStudy        string   `mapstructure:"level_of_study" json:"level_of_study"`
	Major               string   `mapstructure:"major" json:"major"`
	School              *School  `mapstructure:"school" json:"school,omitempty"`
	ShirtSize           string   `mapstructure:"shirt_size" json:"shirt_size"`
	DietaryRestrictions string   `mapstructure:"dietary_restrictions" json:"dietary_restrictions"`
	SpecialNeeds        *string  `mapstructure:"special_needs" json:"special_needs"`
	DidPermitScopes     []string `mapstructure:"did_permit_scopes" json:"did_permit_scopes,omitempty"`
	WillPermitScopes    []string `mapstructure:"will_permit_scopes" json:"will_permit_scopes,omitempty"`
}

// ToStoreUser converts a configured seed user into a store record.
func (u User) ToStoreUser() store.User {
	out := store.User{
		ID:                  u.ID,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
		Email:               u.Email,
		PhoneNumber:         u.PhoneNumber,
		Gender:              u.Gender,
		Birthday:            u.Birthday,
		LevelOfStudy:        u.LevelOfStudy,
		Major:               u.Major,
		ShirtSize:           u.ShirtSize,
		DietaryRestrictions: u.DietaryRestrictions,
		SpecialNeeds:        u.SpecialNeeds,
		DidPermitScopes:     u.DidPermitScopes,
		WillPermitScopes:    u.WillPermitScopes,
	}
	if u.School != nil {
		out.School = &store.School{ID: u.School.ID, Name: u.School.Name}
	}
	return out
}

// Config is the daemon configuration.
type Config struct {
	Listen               string     `mapstructure:"listen" json:"listen"`
	ClientID             string     `mapstructure:"client-id" json:"client-id"`
	ClientSecret         string     `mapstructure:"client-secret" json:"client-secret"`
	CallbackURLs         []string   `mapstructure:"callback-urls" json:"callback-urls"`
	AuthenticatedUsers   []User     `mapstructure:"authenticated-users" json:"authenticated-users,omitempty"`
	UnauthenticatedUsers []User     `mapstructure:"unauthenticated-users" json:"unauthenticated-users,omitempty"`
	Logging              *LogConfig `mapstructure:"logging" json:"logging,omitempty"`
}

// Default returns the daemon defaults. Client credentials and
// callback URLs have no defaults; they must be configured.
func Default() *Config {
	return &Config{
		Listen: DefaultListen,
		Logging: &LogConfig{
			Level:         "info",
			EnableConsole: true,
			Filename:      "mymlhmockd.log",
			MaxSize:       10,
			MaxBackups:    5,
			MaxAge:        30,
			Compress:      true,
		},
	}
}

// Validate checks the daemon-level required fields. User-record
// validation happens when the store is seeded.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("%w: listen address is required", ErrInvalidConfig)
	}
	if c.ClientID == "" {
		return fmt.Errorf("%w: client-id is required", ErrInvalidConfig)
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("%w: client-secret is required", ErrInvalidConfig)
	}
	if len(c.CallbackURLs) == 0 {
		return fmt.Errorf("%w: at least one callback URL is required", ErrInvalidConfig)
	}
	return nil
}
