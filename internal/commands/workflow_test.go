package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger-dev/splitledger/internal/planfile"
)

func TestExpenseAdd_EqualSplit(t *testing.T) {
	dir := initGroup(t)

	out, err := runSplitledger(t, "expense", "add",
		"--dir", dir,
		"--amount", "100.00",
		"--payer", "alice",
		"--participants", "alice,bob,carol",
		"--date", "2026-08-01",
		"--desc", "groceries")
	require.NoError(t, err, out)
	assert.Contains(t, out, "2026-08-001")

	data, err := os.ReadFile(filepath.Join(dir, "expenses.csv"))
	require.NoError(t, err)
	contents := string(data)
	assert.Contains(t, contents, "groceries")
	// 100/3: the first participant absorbs the extra cent.
	assert.Contains(t, contents, "alice=33.34;bob=33.33;carol=33.33")
}

func TestExpenseAdd_SequencePerMonth(t *testing.T) {
	dir := initGroup(t)

	for i := 0; i < 2; i++ {
		out, err := runSplitledger(t, "expense", "add",
			"--dir", dir,
			"--amount", "10.00",
			"--payer", "bob",
			"--participants", "alice,bob",
			"--date", "2026-08-05")
		require.NoError(t, err, out)
	}
	out, err := runSplitledger(t, "expense", "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2026-08-001")
	assert.Contains(t, out, "2026-08-002")
}

func TestExpenseAdd_RejectsUnknownPayer(t *testing.T) {
	dir := initGroup(t)

	out, err := runSplitledger(t, "expense", "add",
		"--dir", dir,
		"--amount", "10.00",
		"--payer", "mallory",
		"--participants", "alice,bob")
	require.Error(t, err)
	assert.Contains(t, out, "not a member")
}

func TestExpenseAdd_RejectsBadPercentages(t *testing.T) {
	dir := initGroup(t)

	out, err := runSplitledger(t, "expense", "add",
		"--dir", dir,
		"--amount", "100.00",
		"--payer", "alice",
		"--method", "percentage",
		"--participants", "alice=60,bob=60")
	require.Error(t, err)
	assert.Contains(t, out, "percentages must sum to 100")
}

func TestBalances_AfterExpense(t *testing.T) {
	dir := initGroup(t)

	_, err := runSplitledger(t, "expense", "add",
		"--dir", dir,
		"--amount", "90.00",
		"--payer", "alice",
		"--participants", "alice,bob,carol",
		"--date", "2026-08-01")
	require.NoError(t, err)

	out, err := runSplitledger(t, "balances", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "is owed 60.00 USD")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "owes 30.00 USD")
}

func TestSettle_PlanAndRecord(t *testing.T) {
	dir := initGroup(t)

	_, err := runSplitledger(t, "expense", "add",
		"--dir", dir,
		"--amount", "90.00",
		"--payer", "alice",
		"--participants", "alice,bob,carol",
		"--date", "2026-08-01")
	require.NoError(t, err)

	out, err := runSplitledger(t, "settle", "plan", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "pays Alice 30.00 USD")

	// Record one of the suggested payments; the plan shrinks.
	out, err = runSplitledger(t, "settle", "record",
		"--dir", dir,
		"--from", "bob",
		"--to", "alice",
		"--amount", "30.00",
		"--date", "2026-08-02",
		"--note", "venmo")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Recorded settlement")

	out, err = runSplitledger(t, "settle", "plan", "--dir", dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "Bob pays")
	assert.Contains(t, out, "Carol pays Alice 30.00 USD")
}

func TestSettle_PlanWhenSettledUp(t *testing.T) {
	dir := initGroup(t)

	out, err := runSplitledger(t, "settle", "plan", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Everyone is settled up.")
}

func TestSettle_PlanExport(t *testing.T) {
	dir := initGroup(t)

	_, err := runSplitledger(t, "expense", "add",
		"--dir", dir,
		"--amount", "40.00",
		"--payer", "alice",
		"--participants", "alice,bob",
		"--date", "2026-08-01")
	require.NoError(t, err)

	planPath := filepath.Join(dir, "plan.csv")
	_, err = runSplitledger(t, "settle", "plan", "--dir", dir, "--out", planPath)
	require.NoError(t, err)

	f, err := os.Open(planPath)
	require.NoError(t, err)
	defer f.Close()

	entries, err := planfile.Read(f)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bob", entries[0].FromID)
	assert.Equal(t, "alice", entries[0].ToID)
	assert.Equal(t, "20.00", entries[0].Amount.StringFixed(2))
	assert.NotEmpty(t, entries[0].ID)
}

func TestSettle_RecordRejectsSelfSettlement(t *testing.T) {
	dir := initGroup(t)

	out, err := runSplitledger(t, "settle", "record",
		"--dir", dir,
		"--from", "alice",
		"--to", "alice",
		"--amount", "10.00")
	require.Error(t, err)
	assert.Contains(t, out, "cannot settle with themselves")
}

func TestAllocate_ProposesRescue(t *testing.T) {
	dir := initGroup(t)

	fleet := "id,name,cash,monthly_burn,target_runway\n" +
		"ops,Ops LLC,20000.00,1000.00,6\n" +
		"studio,Studio LLC,2000.00,1000.00,6\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "entities.csv"), []byte(fleet), 0o644))

	out, err := runSplitledger(t, "allocate", "--dir", dir, "--goal", "maximize_runway")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Ops LLC -> Studio LLC")
	assert.Contains(t, out, "4000.00 USD")
	assert.Contains(t, out, "critical-runway")
}

func TestAllocate_RejectsUnknownGoal(t *testing.T) {
	dir := initGroup(t)

	fleet := "id,name,cash,monthly_burn,target_runway\n" +
		"ops,Ops LLC,20000.00,1000.00,6\n" +
		"studio,Studio LLC,2000.00,1000.00,6\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "entities.csv"), []byte(fleet), 0o644))

	out, err := runSplitledger(t, "allocate", "--dir", dir, "--goal", "yolo")
	require.Error(t, err)
	assert.Contains(t, out, "unknown allocation goal")
}
