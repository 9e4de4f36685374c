package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	names, err := fs.Glob(files, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	ups, downs := 0, 0
	for _, name := range names {
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups++
			_, err := fs.Stat(files, strings.TrimSuffix(name, ".up.sql")+".down.sql")
			assert.NoError(t, err, "missing down migration for %s", name)
		case strings.HasSuffix(name, ".down.sql"):
			downs++
		}
	}
	assert.Equal(t, ups, downs)
}

func TestEmbeddedSourceReadsFirstVersion(t *testing.T) {
	source, err := iofs.New(files, ".")
	require.NoError(t, err)
	defer source.Close()

	version, err := source.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	body, _, err := source.ReadUp(version)
	require.NoError(t, err)
	defer body.Close()
}

func TestSchemaMatchesTaskColumns(t *testing.T) {
	up, err := fs.ReadFile(files, "000001_init.up.sql")
	require.NoError(t, err)

	schema := string(up)
	for _, column := range []string{
		"completion_percent", "end_time", "grace_time", "completed_date", "earned_points", "is_active",
	} {
		assert.Contains(t, schema, column)
	}
}
