package postgres

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const migrationsDir = "../../../db/migrations"

var correlativeType = regexp.MustCompile(`(?i)correlative\s+(?:TYPE\s+)?VARCHAR\((\d+)\)`)

// TestMigrations_CorrelativeHoldsAnyCounterValue replays the up migrations in
// order and checks the final width of invoices.correlative.
func TestMigrations_CorrelativeHoldsAnyCounterValue(t *testing.T) {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	sort.Strings(files)

	width := 0
	for _, f := range files {
		raw, err := os.ReadFile(f)
		require.NoError(t, err)
		for _, m := range correlativeType.FindAllStringSubmatch(string(raw), -1) {
			width, err = strconv.Atoi(m[1])
			require.NoError(t, err)
		}
	}

	maxCounter := strconv.FormatInt(int64(^uint64(0)>>1), 10)
	assert.GreaterOrEqual(t, width, len(maxCounter))
}

func TestMigrations_Paired(t *testing.T) {
	ups, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	require.NoError(t, err)
	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		_, err := os.Stat(down)
		assert.NoError(t, err, filepath.Base(down))
	}
}
