package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/contentdex/internal/db"
	"github.com/kailas-cloud/contentdex/internal/domain/search/query"
)

// Search runs FT.SEARCH with structured predicates, optional free text,
// sorting, and pagination.
func (s *Store) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	if q.Index == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Limit < 0 || q.Offset < 0 {
		return nil, fmt.Errorf("limit and offset must not be negative")
	}

	queryStr := buildQueryString(q.Text, q.Tags, q.Ranges, q.Prefixes)
	args := []string{q.Index, queryStr}

	withScores := q.WithScores || q.SortBy == ""
	if withScores {
		args = append(args, "WITHSCORES")
	}
	if q.SortBy != "" {
		dir := "DESC"
		if q.SortAsc {
			dir = "ASC"
		}
		args = append(args, "SORTBY", q.SortBy, dir)
	}

	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}

	args = append(args,
		"LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(q.Limit),
		"DIALECT", "2",
	)

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return parseSearchResult(raw, withScores)
}

// --- Result parsing ---

func parseSearchResult(raw []rueidis.RedisMessage, withScores bool) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{Total: 0}, nil
	}

	stride := 2
	if withScores {
		stride = 3
	}

	entries := make([]db.SearchEntry, 0, (len(raw)-1)/stride)
	for i := 1; i+stride-1 < len(raw); i += stride {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		entry := db.SearchEntry{Key: key}

		fieldsIdx := i + 1
		if withScores {
			scoreStr, err := raw[i+1].ToString()
			if err != nil {
				continue
			}
			score, err := strconv.ParseFloat(scoreStr, 64)
			if err != nil {
				continue
			}
			entry.Score = score
			fieldsIdx = i + 2
		}

		fields, err := raw[fieldsIdx].ToArray()
		if err != nil {
			continue
		}
		entry.Fields = parseFieldPairs(fields)

		entries = append(entries, entry)
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// --- Query building ---

// buildQueryString assembles the FT.SEARCH query: tag and numeric predicates
// joined by implicit AND, with an optional escaped free-text clause.
func buildQueryString(
	text string,
	tags []query.TagPredicate,
	ranges []query.RangePredicate,
	prefixes []query.PrefixPredicate,
) string {
	var parts []string

	for _, t := range tags {
		parts = append(parts, buildTagFilter(t))
	}
	for _, r := range ranges {
		parts = append(parts, buildNumericFilter(r))
	}
	if group := buildPrefixGroup(prefixes); group != "" {
		parts = append(parts, group)
	}
	if text != "" {
		parts = append(parts, "("+escapeQuery(text)+")")
	}

	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " ")
}

// buildPrefixGroup renders OR-joined prefix clauses:
// (@title:(foo*) | @tags:{foo*}).
func buildPrefixGroup(prefixes []query.PrefixPredicate) string {
	if len(prefixes) == 0 {
		return ""
	}
	parts := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if p.IsTag {
			parts = append(parts, fmt.Sprintf("@%s:{%s*}", p.Field, tagEscaper.Replace(p.Value)))
		} else {
			parts = append(parts, fmt.Sprintf("@%s:(%s*)", p.Field, escapeQuery(p.Value)))
		}
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

// buildTagFilter renders an any-of membership predicate: @field:{a|b}.
func buildTagFilter(t query.TagPredicate) string {
	escaped := make([]string, len(t.Values))
	for i, v := range t.Values {
		escaped[i] = tagEscaper.Replace(v)
	}
	return fmt.Sprintf("@%s:{%s}", t.Field, strings.Join(escaped, "|"))
}

// buildNumericFilter renders an inclusive range predicate: @field:[min max].
func buildNumericFilter(r query.RangePredicate) string {
	minBound := "-inf"
	maxBound := "+inf"
	if r.Min != nil {
		minBound = strconv.FormatFloat(*r.Min, 'g', -1, 64)
	}
	if r.Max != nil {
		maxBound = strconv.FormatFloat(*r.Max, 'g', -1, 64)
	}
	return fmt.Sprintf("@%s:[%s %s]", r.Field, minBound, maxBound)
}

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	" ", "\\ ",
)

func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
)
