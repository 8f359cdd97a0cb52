package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyEntities_EmptyRows(t *testing.T) {
	n, err := CopyEntities(context.TODO(), nil, "entities", []string{"a"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCopyEntities_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"entities"}, []string{"name", "phone"}).WillReturnResult(2)

	rows := [][]any{{"Luminalt", "4156414000"}, {"Bay Solar", "4155550100"}}
	n, err := CopyEntities(context.Background(), mock, "entities", []string{"name", "phone"}, rows)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyEntities_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"entities"}, []string{"name"}).
		WillReturnError(fmt.Errorf("copy failed"))

	_, err = CopyEntities(context.Background(), mock, "entities", []string{"name"}, [][]any{{"x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY INTO entities")
	assert.NoError(t, mock.ExpectationsWereMet())
}
