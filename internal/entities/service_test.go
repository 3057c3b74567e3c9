package entities

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger-dev/splitledger/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func fleet() []model.Entity {
	return []model.Entity{
		{ID: "ops", Name: "Operations LLC", Cash: dec("120000.00"), MonthlyBurn: dec("10000.00"), TargetRunway: dec("6")},
		{ID: "labs", Name: "Labs Inc", Cash: dec("15000.00"), MonthlyBurn: dec("8000.00")},
	}
}

func TestRoundTripEntities(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEntities(&buf, fleet()))

	got, err := ReadEntities(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ops", got[0].ID)
	assert.True(t, dec("120000.00").Equal(got[0].Cash))
	assert.True(t, dec("6").Equal(got[0].TargetRunway))
	assert.True(t, got[1].TargetRunway.IsZero())
}

func TestUnmarshalEntity_Errors(t *testing.T) {
	_, err := UnmarshalEntity([]string{"ops", "Operations LLC", "not-cash", "10000.00", ""})
	assert.Error(t, err)

	_, err = UnmarshalEntity([]string{"ops", "Operations LLC"})
	assert.Error(t, err)
}

func TestService_Lookup(t *testing.T) {
	svc := NewService(fleet())

	assert.Len(t, svc.All(), 2)
	assert.True(t, svc.Exists("labs"))
	assert.False(t, svc.Exists("ghost"))

	e, ok := svc.Get("ops")
	require.True(t, ok)
	assert.Equal(t, "Operations LLC", e.Name)
}

func TestService_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewService(fleet()).Save(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, loaded.All(), 2)
	assert.True(t, loaded.Exists("ops"))
}

func TestLoad_MissingFileIsEmptyFleet(t *testing.T) {
	svc, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, svc.All())
}
