// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildSelectChangedSessionsQuery_NoWatermark(t *testing.T) {
	ctx := context.Background()
	userID := int64(42)

	query, args, err := buildSelectChangedSessionsQuery(ctx, userID, nil, 100)
	require.NoError(t, err)

	// args checks: user filter and tombstone exclusion, no watermark
	require.Len(t, args, 2)
	require.Contains(t, args, userID)
	require.Contains(t, args, false)

	// query checks (contains parts)
	q := strings.ToLower(query)

	require.Contains(t, q, "select")
	require.Contains(t, q, "from sessions")
	require.Contains(t, q, "where")
	require.Contains(t, q, "user_id")
	require.Contains(t, q, "deleted")
	require.Contains(t, q, "order by last_modified_at, id")
	require.Contains(t, q, "limit 100")

	// placeholder format should be $1 (Postgres style)
	require.Contains(t, query, "$1")

	// watermark must not appear without a since value
	require.NotContains(t, q, ">")
}

func Test_buildSelectChangedSessionsQuery_WithWatermark(t *testing.T) {
	ctx := context.Background()
	since := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	query, args, err := buildSelectChangedSessionsQuery(ctx, 42, &since, 100)
	require.NoError(t, err)

	require.Len(t, args, 3)
	assert.Contains(t, args, int64(42))
	assert.Contains(t, args, false)
	assert.Equal(t, since, args[2])

	q := strings.ToLower(query)
	require.Contains(t, q, "last_modified_at >")
	require.Contains(t, query, "$2")
}

func Test_buildSelectChangedSessionsQuery_SelectsAllExpectedColumns(t *testing.T) {
	ctx := context.Background()

	query, _, err := buildSelectChangedSessionsQuery(ctx, 1, nil, 100)
	require.NoError(t, err)

	q := strings.ToLower(query)

	// Check that all expected columns are present in the SELECT section.
	// This is a "contains" check; it does not enforce order but catches regressions quickly.
	cols := []string{
		"id",
		"user_id",
		"started_at",
		"ended_at",
		"title",
		"notes",
		"deleted",
		"last_modified_at",
	}
	for _, c := range cols {
		require.Contains(t, q, c)
	}
}

func Test_buildSelectChildrenQuery(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		columns []string
	}{
		{"track points", "track_points", trackPointColumns},
		{"catches", "catches", catchColumns},
		{"photos", "photos", photoColumns},
	}

	sessionIDs := []string{"s1", "s2", "s3"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildSelectChildrenQuery(context.Background(), tt.table, tt.columns, 42, sessionIDs)
			require.NoError(t, err)

			q := strings.ToLower(query)

			assert.Contains(t, q, "from "+tt.table)
			assert.Contains(t, q, "user_id")
			assert.Contains(t, q, "session_id in")
			assert.Contains(t, q, "deleted")
			assert.Contains(t, q, "order by session_id, ts, id")

			for _, c := range tt.columns {
				assert.Contains(t, q, c)
			}

			// user_id + three session ids + deleted flag
			require.Len(t, args, 5)
			assert.Contains(t, args, int64(42))
			assert.Contains(t, args, "s1")
			assert.Contains(t, args, "s2")
			assert.Contains(t, args, "s3")
			assert.Contains(t, args, false)
		})
	}
}
