package validate_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pkgsync/cmd/pkgsync/cmd/validate"
	"github.com/agentstation/pkgsync/internal/appcontext"
	"github.com/agentstation/pkgsync/internal/config"
	"github.com/agentstation/pkgsync/pkg/errors"
	"github.com/agentstation/pkgsync/pkg/packages"
	"github.com/agentstation/pkgsync/pkg/reconcile"
	"github.com/agentstation/pkgsync/pkg/sources"
)

func identities() *config.Identities {
	ids := &config.Identities{
		DependencyTypes: reconcile.DependencyTypeIDs{},
		URLTypes:        reconcile.URLTypeIDs{},
		PackageManagers: map[sources.ID]uuid.UUID{sources.DebianID: uuid.New()},
	}
	for _, t := range packages.DependencyTypes() {
		ids.DependencyTypes[t] = uuid.New()
	}
	for _, t := range packages.URLTypes() {
		ids.URLTypes[t] = uuid.New()
	}
	return ids
}

func TestExecuteValidate(t *testing.T) {
	ids := identities()
	app := &appcontext.Mock{
		IdentitiesFunc:   func() (*config.Identities, error) { return ids, nil },
		OutputFormatFunc: func() string { return "json" },
	}

	var out bytes.Buffer
	require.NoError(t, validate.ExecuteValidate(app, &out))

	var rows []validate.Row
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	assert.Len(t, rows, len(packages.DependencyTypes())+len(packages.URLTypes())+len(sources.IDs()))

	status := map[string]string{}
	for _, r := range rows {
		if r.Table == "package_managers" {
			status[r.Name] = r.Status
		}
	}
	assert.Equal(t, "ok", status["debian"])
	assert.Equal(t, "not configured", status["crates"])
}

func TestExecuteValidateErrors(t *testing.T) {
	incomplete := identities()
	delete(incomplete.URLTypes, packages.URLTypeSource)

	shared := identities()
	shared.DependencyTypes[packages.Build] = shared.DependencyTypes[packages.Runtime]

	tests := []struct {
		name  string
		ids   *config.Identities
		check func(t *testing.T, err error)
	}{
		{"missing url type", incomplete, func(t *testing.T, err error) { assert.True(t, errors.IsUnknownType(err)) }},
		{"shared id", shared, func(t *testing.T, err error) { assert.Error(t, err) }},
		{"nothing configured", nil, func(t *testing.T, err error) { assert.Error(t, err) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &appcontext.Mock{IdentitiesFunc: func() (*config.Identities, error) { return tt.ids, nil }}
			err := validate.ExecuteValidate(app, &bytes.Buffer{})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}
