package reference

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/vsinha/schc/pkg/application/dto"
	"github.com/vsinha/schc/pkg/application/services/estimation"
	"github.com/vsinha/schc/pkg/domain/entities"
	"github.com/vsinha/schc/pkg/infrastructure/config"
	"github.com/vsinha/schc/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/schc/pkg/infrastructure/repositories/memory"
	testhelpers "github.com/vsinha/schc/pkg/infrastructure/testing"
)

func writeReferenceCSV(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, csv.WriteShipments(filepath.Join(dir, ShipmentsFile), testhelpers.ReferenceShipments()))
	require.NoError(t, csv.WriteDemandRecords(filepath.Join(dir, DemandFile), testhelpers.ReferenceDemand()))
}

func testConfig(dir string) *config.Config {
	cfg := config.Defaults()
	cfg.DataDir = dir
	return cfg
}

func TestLoad_CSV(t *testing.T) {
	dir := t.TempDir()
	writeReferenceCSV(t, dir)

	data, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, SourceCSV, data.Source)
	assert.Len(t, data.Shipments, len(testhelpers.ReferenceShipments()))
	assert.Len(t, data.Demand, len(testhelpers.ReferenceDemand()))
	assert.Nil(t, data.LaneStatistics)
	assert.Equal(t, []dto.FileStatus{
		{Name: ShipmentsFile, Required: true, Present: true},
		{Name: DemandFile, Required: true, Present: true},
		{Name: LaneStatsFile, Required: false, Present: false},
	}, data.Files)
}

func TestLoad_PrecomputedLaneStatistics(t *testing.T) {
	dir := t.TempDir()
	writeReferenceCSV(t, dir)

	derived := memory.ComputeLaneStatistics(derefShipments())
	derived[0].OnTimeProb = 0.123
	require.NoError(t, csv.WriteLaneStatistics(filepath.Join(dir, LaneStatsFile), derived))

	session, err := Build(context.Background(), testConfig(dir), zap.NewNop().Sugar())
	require.NoError(t, err)

	stat, ok := session.Shipments.GetLaneStatistic(derived[0].Key)
	require.True(t, ok)
	assert.Equal(t, 0.123, stat.OnTimeProb, "precomputed table wins over derived statistics")
	assert.True(t, session.Readiness.Files[2].Present)
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, csv.WriteShipments(filepath.Join(dir, ShipmentsFile), testhelpers.ReferenceShipments()))

	_, err := Load(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReferenceFileMissing))
	assert.Contains(t, err.Error(), DemandFile)
}

func TestLoad_WorkbookTakesPrecedence(t *testing.T) {
	dir := t.TempDir()

	f := excelize.NewFile()
	defer f.Close()
	sheets := map[string][][]any{
		"shipments": {
			toRow(csv.ShipmentColumns),
			{"SEA", "BOS", "Rail", "Standard", 2900, 35000, 2, 900, 1},
		},
		"demand": {
			toRow(csv.DemandColumns),
			{"Harbor", "NW", "Saline", 3, 40, 5, 120},
		},
	}
	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	require.NoError(t, f.DeleteSheet("Sheet1"))
	require.NoError(t, f.SaveAs(filepath.Join(dir, WorkbookFile)))

	data, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, SourceWorkbook, data.Source)
	require.Len(t, data.Shipments, 1)
	assert.Equal(t, "SEA", data.Shipments[0].Origin)
	assert.Equal(t, "Harbor", data.Demand[0].Hospital)
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	writeReferenceCSV(t, dir)

	session, err := Build(context.Background(), testConfig(dir), zap.NewNop().Sugar())
	require.NoError(t, err)

	assert.Equal(t, 9, session.Readiness.Shipments)
	assert.Equal(t, 5, session.Readiness.Demand)
	assert.Equal(t, 4, session.Readiness.Lanes)
	require.Len(t, session.Readiness.Predictors, 4)
	for _, p := range session.Readiness.Predictors {
		assert.False(t, p.Available, p.Slot)
	}

	rec, err := session.Advisor.Evaluate(context.Background(), dto.RecommendationRequest{
		Hospital: "GenHosp", Medicine: "InsulinX", Month: 6, CurrentInventory: 50, LeadTimeDays: 7,
		Origin: "CHI", Destination: "DAL", Carrier: "FastFreight", ServiceLevel: "Standard",
		Weight: 35000, Stops: 1,
	})
	require.NoError(t, err)
	assert.True(t, rec.OrderNow)
	assert.Equal(t, estimation.LabelOrderNow, rec.Decision)
}

func TestHolder_Reload(t *testing.T) {
	dir := t.TempDir()
	writeReferenceCSV(t, dir)
	cfg := testConfig(dir)
	logger := zap.NewNop().Sugar()

	session, err := Build(context.Background(), cfg, logger)
	require.NoError(t, err)
	holder := NewHolder(session)

	require.NoError(t, holder.Reload(context.Background(), cfg, logger))
	assert.NotSame(t, session, holder.Current())

	reloaded := holder.Current()
	require.NoError(t, os.Remove(filepath.Join(dir, DemandFile)))

	err = holder.Reload(context.Background(), cfg, logger)
	require.Error(t, err)
	assert.Same(t, reloaded, holder.Current(), "failed reload keeps the previous session")
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	writeReferenceCSV(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, 20*time.Millisecond, func() { calls.Add(1) }, zap.NewNop().Sugar())
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	writeReferenceCSV(t, dir)

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestIsReferenceFile(t *testing.T) {
	assert.True(t, IsReferenceFile("/data/"+ShipmentsFile))
	assert.True(t, IsReferenceFile(WorkbookFile))
	assert.False(t, IsReferenceFile("/data/notes.txt"))
}

func toRow(columns []string) []any {
	row := make([]any, len(columns))
	for i, c := range columns {
		row[i] = c
	}
	return row
}

func derefShipments() []entities.ShipmentRecord {
	records := testhelpers.ReferenceShipments()
	out := make([]entities.ShipmentRecord, len(records))
	for i, r := range records {
		out[i] = *r
	}
	return out
}
