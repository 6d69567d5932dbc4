package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/contentdex/internal/db"
)

// Aggregate runs FT.AGGREGATE and returns one property map per result row.
// List-valued reductions (TOLIST) are flattened to comma-joined strings.
func (s *Store) Aggregate(ctx context.Context, q *db.AggregateQuery) ([]map[string]string, error) {
	if q.Index == "" {
		return nil, fmt.Errorf("index name is required")
	}

	queryStr := buildQueryString("", q.Tags, q.Ranges, nil)
	args := []string{q.Index, queryStr}

	if len(q.Load) > 0 {
		args = append(args, "LOAD", strconv.Itoa(len(q.Load)))
		for _, f := range q.Load {
			args = append(args, "@"+f)
		}
	}

	for _, a := range q.Apply {
		args = append(args, "APPLY", a.Expression, "AS", a.As)
	}

	if len(q.GroupBy) > 0 {
		args = append(args, "GROUPBY", strconv.Itoa(len(q.GroupBy)))
		for _, f := range q.GroupBy {
			args = append(args, "@"+f)
		}
		for _, r := range q.Reducers {
			args = append(args, reducerArgs(r)...)
		}
	}

	if q.SortBy != nil {
		dir := "DESC"
		if q.SortBy.Ascending {
			dir = "ASC"
		}
		args = append(args, "SORTBY", "2", "@"+q.SortBy.Property, dir)
	}

	if q.Limit > 0 {
		args = append(args, "LIMIT", "0", strconv.Itoa(q.Limit))
	}

	args = append(args, "DIALECT", "2")

	cmd := s.b().Arbitrary("FT.AGGREGATE").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}

	return parseAggregateRows(raw), nil
}

func reducerArgs(r db.Reducer) []string {
	if r.Arg == "" {
		return []string{"REDUCE", r.Func, "0", "AS", r.As}
	}
	return []string{"REDUCE", r.Func, "1", "@" + r.Arg, "AS", r.As}
}

// parseAggregateRows converts the RESP2 reply [total, row, row, ...] where
// each row is a flat array of property/value pairs.
func parseAggregateRows(raw []rueidis.RedisMessage) []map[string]string {
	if len(raw) < 2 {
		return nil
	}

	rows := make([]map[string]string, 0, len(raw)-1)
	for _, rowMsg := range raw[1:] {
		pairs, err := rowMsg.ToArray()
		if err != nil {
			continue
		}
		row := make(map[string]string, len(pairs)/2)
		for j := 0; j+1 < len(pairs); j += 2 {
			name, err := pairs[j].ToString()
			if err != nil {
				continue
			}
			row[name] = messageToString(pairs[j+1])
		}
		rows = append(rows, row)
	}
	return rows
}

// messageToString renders a scalar as-is and joins array values with commas.
func messageToString(m rueidis.RedisMessage) string {
	if items, err := m.ToArray(); err == nil {
		parts := make([]string, 0, len(items))
		for _, item := range items {
			if s, err := item.ToString(); err == nil {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ",")
	}
	s, _ := m.ToString()
	return s
}
