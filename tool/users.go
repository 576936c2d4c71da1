package tool

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xufanglin/rimmich/types"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrIncompleteInput = errors.New("user name and api key are required")
)

// AddUser stores an account. If the name already exists, the api key will be updated.
// The first account added becomes the current user.
func AddUser(name, apiKey string) error {
	name = strings.TrimSpace(name)
	apiKey = strings.TrimSpace(apiKey)
	if name == "" || apiKey == "" {
		return ErrIncompleteInput
	}
	return updateConfig(func(cfg *types.AppConfig) error {
		cfg.Users[name] = types.UserConfig{APIKey: apiKey}
		if cfg.CurrentUser == "" {
			cfg.CurrentUser = name
		}
		return nil
	})
}

// RemoveUser deletes an account. When it was the current user another remaining
// account (lowest name first) takes its place.
func RemoveUser(name string) error {
	return updateConfig(func(cfg *types.AppConfig) error {
		if _, ok := cfg.Users[name]; !ok {
			return fmt.Errorf("%w: %s", ErrUserNotFound, name)
		}
		delete(cfg.Users, name)
		if cfg.CurrentUser == name {
			cfg.CurrentUser = ""
			if names := sortedUserNames(cfg.Users); len(names) > 0 {
				cfg.CurrentUser = names[0]
			}
		}
		return nil
	})
}

// SetDefaultUser marks name as the account used when none is given.
func SetDefaultUser(name string) error {
	return updateConfig(func(cfg *types.AppConfig) error {
		if _, ok := cfg.Users[name]; !ok {
			return fmt.Errorf("%w: %s", ErrUserNotFound, name)
		}
		cfg.CurrentUser = name
		return nil
	})
}

// ListUsers returns the account names sorted.
func ListUsers() []string {
	cfg := GetCurrentConfig()
	return sortedUserNames(cfg.Users)
}

// LookupAPIKey resolves the api key for name, or for the current user when name is empty.
// It returns the resolved user name as well.
func LookupAPIKey(name string) (string, string, bool) {
	cfg := GetCurrentConfig()
	if name == "" {
		name = cfg.CurrentUser
	}
	user, ok := cfg.Users[name]
	if !ok || user.APIKey == "" {
		return name, "", false
	}
	return name, user.APIKey, true
}

// MaskAPIKey keeps the last four characters of key visible.
func MaskAPIKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

func sortedUserNames(users map[string]types.UserConfig) []string {
	names := make([]string, 0, len(users))
	for name := range users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
