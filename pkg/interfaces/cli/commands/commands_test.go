package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/schc/pkg/application/dto"
	"github.com/vsinha/schc/pkg/application/services/estimation"
	"github.com/vsinha/schc/pkg/infrastructure/config"
	"github.com/vsinha/schc/pkg/infrastructure/reference"
	"github.com/vsinha/schc/pkg/infrastructure/repositories/csv"
	testhelpers "github.com/vsinha/schc/pkg/infrastructure/testing"
)

func referenceSettings(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, csv.WriteShipments(filepath.Join(dir, reference.ShipmentsFile), testhelpers.ReferenceShipments()))
	require.NoError(t, csv.WriteDemandRecords(filepath.Join(dir, reference.DemandFile), testhelpers.ReferenceDemand()))

	cfg := config.Defaults()
	cfg.DataDir = dir
	return cfg
}

func TestGenerateCommand_CSV(t *testing.T) {
	dir := t.TempDir()
	cfg := GenerateConfig{Shipments: 200, Hospitals: 3, Medicines: 2, OutputDir: dir, Seed: 42, Out: &bytes.Buffer{}}

	require.NoError(t, NewGenerateCommand(cfg).Execute(context.Background()))

	data, err := reference.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, reference.SourceCSV, data.Source)
	assert.Len(t, data.Shipments, 200)
	assert.Len(t, data.Demand, 3*2*12)

	for _, s := range data.Shipments {
		assert.NotEqual(t, s.Origin, s.Destination)
		assert.GreaterOrEqual(t, s.Stops, 1)
		assert.LessOrEqual(t, s.Stops, 3)
		assert.Greater(t, s.ShipmentCost, 0.0)
	}
}

func TestGenerateCommand_Reproducible(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	for _, dir := range []string{first, second} {
		cfg := GenerateConfig{Shipments: 50, Hospitals: 2, Medicines: 3, OutputDir: dir, Seed: 7, Out: &bytes.Buffer{}}
		require.NoError(t, NewGenerateCommand(cfg).Execute(context.Background()))
	}

	for _, name := range []string{reference.ShipmentsFile, reference.DemandFile} {
		a, err := os.ReadFile(filepath.Join(first, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(second, name))
		require.NoError(t, err)
		assert.Equal(t, a, b, name)
	}
}

func TestGenerateCommand_Workbook(t *testing.T) {
	dir := t.TempDir()
	out := &bytes.Buffer{}
	cfg := GenerateConfig{Shipments: 20, Hospitals: 1, Medicines: 1, Carriers: 2, Format: "xlsx", OutputDir: dir, Seed: 1, Verbose: true, Out: out}

	require.NoError(t, NewGenerateCommand(cfg).Execute(context.Background()))
	assert.Contains(t, out.String(), reference.WorkbookFile)

	data, err := reference.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, reference.SourceWorkbook, data.Source)
	assert.Len(t, data.Shipments, 20)
	assert.Len(t, data.Demand, 12)
	for _, s := range data.Shipments {
		assert.Contains(t, []string{"FastFreight", "PrimeLogix"}, s.Carrier)
	}
}

func TestGenerateCommand_Validation(t *testing.T) {
	tests := []struct {
		name        string
		config      GenerateConfig
		expectError string
	}{
		{name: "no output", config: GenerateConfig{Shipments: 1, Hospitals: 1, Medicines: 1}, expectError: "output directory is required"},
		{name: "no shipments", config: GenerateConfig{Hospitals: 1, Medicines: 1, OutputDir: "x"}, expectError: "shipments must be at least 1"},
		{name: "too many medicines", config: GenerateConfig{Shipments: 1, Hospitals: 1, Medicines: 11, OutputDir: "x"}, expectError: "medicines must be within 1-10"},
		{name: "carriers", config: GenerateConfig{Shipments: 1, Hospitals: 1, Medicines: 1, Carriers: 9, OutputDir: "x"}, expectError: "carriers must be within 1-4"},
		{name: "format", config: GenerateConfig{Shipments: 1, Hospitals: 1, Medicines: 1, OutputDir: "x", Format: "parquet"}, expectError: "unsupported format"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := NewGenerateCommand(tc.config).Execute(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectError)
		})
	}
}

func TestMergeRequest(t *testing.T) {
	defaults := dto.RecommendationRequest{
		Hospital: "GenHosp", Medicine: "Amoxi", Month: 3, CurrentInventory: 150, LeadTimeDays: 7,
		Origin: "ATL", Destination: "DAL", Carrier: "FastFreight", ServiceLevel: "Express",
		Weight: 35000, Stops: 1,
	}
	flags := dto.RecommendationRequest{Medicine: "InsulinX", Month: 6, Stops: 2}

	merged := MergeRequest(defaults, flags, []string{FlagMedicine, FlagMonth, FlagStops})

	expected := defaults
	expected.Medicine = "InsulinX"
	expected.Month = 6
	expected.Stops = 2
	assert.Equal(t, expected, merged)

	assert.Equal(t, defaults, MergeRequest(defaults, flags, nil))
}

func TestRecommendCommand_Text(t *testing.T) {
	out := &bytes.Buffer{}
	cfg := RecommendConfig{
		Settings: referenceSettings(t),
		Request: dto.RecommendationRequest{
			Hospital: "GenHosp", Medicine: "InsulinX", Month: 6, CurrentInventory: 50,
			Origin: "CHI", Destination: "DAL", Carrier: "FastFreight", ServiceLevel: "Standard",
		},
		Overrides: []string{FlagHospital, FlagMedicine, FlagMonth, FlagCurrentInventory, FlagOrigin, FlagDestination, FlagCarrier, FlagServiceLevel},
		Format:    "text",
		Verbose:   true,
		Out:       out,
	}

	require.NoError(t, NewRecommendCommand(cfg).Execute(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Healthcare Supply Chain Advisor")
	assert.Contains(t, text, "Decision:      "+estimation.LabelOrderNow)
	assert.Contains(t, text, "Compare Carriers (Same Lane/Inputs)")
}

func TestRecommendCommand_JSON(t *testing.T) {
	out := &bytes.Buffer{}
	cfg := RecommendConfig{
		Settings:  referenceSettings(t),
		Request:   dto.RecommendationRequest{Hospital: "Nowhere", Origin: "CHI", Destination: "DAL", Carrier: "SlowBoat", ServiceLevel: "Standard"},
		Overrides: []string{FlagHospital, FlagOrigin, FlagDestination, FlagCarrier, FlagServiceLevel},
		Format:    "json",
		Out:       out,
	}

	require.NoError(t, NewRecommendCommand(cfg).Execute(context.Background()))

	var rec dto.Recommendation
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.True(t, rec.Demand.RegionDefaulted)
	assert.Equal(t, "MW", rec.Demand.Region)
	assert.True(t, rec.RiskFlag)
	assert.Equal(t, estimation.NoteRiskHigh, rec.LogisticsNote)
}

func TestRecommendCommand_InvalidRequest(t *testing.T) {
	cfg := RecommendConfig{
		Settings:  referenceSettings(t),
		Request:   dto.RecommendationRequest{Stops: 5},
		Overrides: []string{FlagStops},
		Format:    "text",
		Out:       &bytes.Buffer{},
	}

	err := NewRecommendCommand(cfg).Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, estimation.ErrInvalidRequest)
}

func TestRecommendCommand_InfiniteDistance(t *testing.T) {
	cfg := RecommendConfig{
		Settings:  referenceSettings(t),
		Request:   dto.RecommendationRequest{DistanceOverride: math.Inf(1)},
		Overrides: []string{FlagDistanceOverride},
		Format:    "text",
		Out:       &bytes.Buffer{},
	}

	err := NewRecommendCommand(cfg).Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, estimation.ErrInvalidRequest)
	assert.Contains(t, err.Error(), "distance_override must be a finite number")
}

func TestRecommendCommand_MissingData(t *testing.T) {
	cfg := config.Defaults()
	cfg.DataDir = t.TempDir()

	err := NewRecommendCommand(RecommendConfig{Settings: cfg, Format: "text", Out: &bytes.Buffer{}}).Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, reference.ErrReferenceFileMissing)
}

func TestStatusCommand(t *testing.T) {
	settings := referenceSettings(t)

	out := &bytes.Buffer{}
	require.NoError(t, NewStatusCommand(StatusConfig{Settings: settings, Out: out}).Execute(context.Background()))
	text := out.String()
	assert.Contains(t, text, "✅ "+reference.ShipmentsFile)
	assert.Contains(t, text, "❌ "+reference.LaneStatsFile+" (optional)")
	assert.Contains(t, text, "statistics fallback")
	assert.Contains(t, text, "Shipments: 9, demand records: 5, lanes: 4")

	out.Reset()
	require.NoError(t, NewStatusCommand(StatusConfig{Settings: settings, Format: "json", Out: out}).Execute(context.Background()))
	var readiness dto.Readiness
	require.NoError(t, json.Unmarshal(out.Bytes(), &readiness))
	assert.Equal(t, 4, readiness.Lanes)

	err := NewStatusCommand(StatusConfig{Settings: settings, Format: "yaml", Out: out}).Execute(context.Background())
	assert.EqualError(t, err, "unsupported output format: yaml")
}

func TestLaneStatsCommand(t *testing.T) {
	settings := referenceSettings(t)
	out := &bytes.Buffer{}

	require.NoError(t, NewLaneStatsCommand(LaneStatsConfig{Settings: settings, Out: out}).Execute(context.Background()))
	assert.Contains(t, out.String(), "Wrote 4 lane statistics from 9 shipments")

	data, err := reference.Load(settings.DataDir)
	require.NoError(t, err)
	require.Len(t, data.LaneStatistics, 4)
	assert.Equal(t, []dto.FileStatus{
		{Name: reference.ShipmentsFile, Required: true, Present: true},
		{Name: reference.DemandFile, Required: true, Present: true},
		{Name: reference.LaneStatsFile, Required: false, Present: true},
	}, data.Files)
}

func TestServeCommand(t *testing.T) {
	settings := referenceSettings(t)
	settings.Server.ShutdownTimeout = time.Second
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- NewServeCommand(ServeConfig{Settings: settings, Listener: listener}).Execute(ctx)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + listener.Addr().String() + "/api/v1/status")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}
