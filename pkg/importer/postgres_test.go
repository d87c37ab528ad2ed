package importer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectQueryQuotesTable(t *testing.T) {
	q := selectQuery("inventory")
	assert.Contains(t, q, `FROM "inventory"`)
	assert.Contains(t, q, "ORDER BY id")

	q = selectQuery(`stock"; DROP TABLE inventory; --`)
	assert.Contains(t, q, `FROM "stock""; DROP TABLE inventory; --"`)
}

func TestOpen(t *testing.T) {
	src, closeFn, err := Open(context.Background(), Options{Kind: KindCSV, Path: "inventory.csv"})
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &CSVSource{}, src)

	src, closeFn, err = Open(context.Background(), Options{Kind: KindXLSX, Path: "inventory.xlsx"})
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &XLSXSource{}, src)

	_, closeFn, err = Open(context.Background(), Options{Kind: "mongo"})
	require.Error(t, err)
	closeFn()
}

func TestOpenPostgresBadDSN(t *testing.T) {
	_, closeFn, err := Open(context.Background(), Options{Kind: KindPostgres, DatabaseURL: "postgres://%zz@localhost/inventory"})
	require.Error(t, err)
	closeFn()
}
