// Package config reads the identity tables a run resolves against from
// Viper: the persisted ids of every dependency type, URL type and package
// manager. Keys may come from a config file or the environment
// (DEPENDENCY_TYPES_RUNTIME, URL_TYPES_HOMEPAGE, PACKAGE_MANAGERS_CRATES).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/agentstation/pkgsync/pkg/errors"
	"github.com/agentstation/pkgsync/pkg/packages"
	"github.com/agentstation/pkgsync/pkg/reconcile"
	"github.com/agentstation/pkgsync/pkg/sources"
)

// Key prefixes of the identity tables.
const (
	DependencyTypesKey = "dependency_types"
	URLTypesKey        = "url_types"
	PackageManagersKey = "package_managers"
)

// Identities holds the configured identity tables.
type Identities struct {
	DependencyTypes reconcile.DependencyTypeIDs
	URLTypes        reconcile.URLTypeIDs
	PackageManagers map[sources.ID]uuid.UUID
}

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(v *viper.Viper, key string) string {
	value := v.GetString(key)
	if value != "" {
		return value
	}
	return os.Getenv(strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key)))
}

// Load reads every identity table from v, or from the global Viper
// instance when v is nil. Malformed ids are rejected; missing ids are left
// for Validate to report.
func Load(v *viper.Viper) (*Identities, error) {
	if v == nil {
		v = viper.GetViper()
	}

	ids := &Identities{
		DependencyTypes: reconcile.DependencyTypeIDs{},
		URLTypes:        reconcile.URLTypeIDs{},
		PackageManagers: map[sources.ID]uuid.UUID{},
	}

	for _, t := range packages.DependencyTypes() {
		id, ok, err := lookup(v, DependencyTypesKey, t.String())
		if err != nil {
			return nil, err
		}
		if ok {
			ids.DependencyTypes[t] = id
		}
	}
	for _, t := range packages.URLTypes() {
		id, ok, err := lookup(v, URLTypesKey, t.String())
		if err != nil {
			return nil, err
		}
		if ok {
			ids.URLTypes[t] = id
		}
	}
	for _, s := range sources.IDs() {
		id, ok, err := lookup(v, PackageManagersKey, s.String())
		if err != nil {
			return nil, err
		}
		if ok {
			ids.PackageManagers[s] = id
		}
	}

	return ids, nil
}

// Validate checks that both type tables are total and injective.
func (i *Identities) Validate() error {
	if err := i.DependencyTypes.Validate(); err != nil {
		return err
	}
	return i.URLTypes.Validate()
}

// For returns the run configuration for one source.
func (i *Identities) For(source sources.ID) (reconcile.Config, error) {
	pm, ok := i.PackageManagers[source]
	if !ok {
		return reconcile.Config{}, errors.NewConfigError(PackageManagersKey,
			fmt.Sprintf("no package manager id configured for %s", source), nil)
	}
	cfg := reconcile.Config{
		PackageManagerID: pm,
		DependencyTypes:  i.DependencyTypes,
		URLTypes:         i.URLTypes,
	}
	if err := cfg.Validate(); err != nil {
		return reconcile.Config{}, err
	}
	return cfg, nil
}

func lookup(v *viper.Viper, table, name string) (uuid.UUID, bool, error) {
	key := table + "." + name
	raw := strings.TrimSpace(GetString(v, key))
	if raw == "" {
		return uuid.Nil, false, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false, errors.NewConfigError(table,
			fmt.Sprintf("invalid id for %s", name),
			errors.NewValidationError(key, raw, err.Error()))
	}
	return id, true, nil
}
