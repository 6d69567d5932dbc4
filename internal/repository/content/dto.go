package content

import (
	"encoding/json"
	"strconv"
	"strings"

	domcontent "github.com/kailas-cloud/contentdex/internal/domain/content"
)

// listSeparator joins tag and category sequences into single hash fields.
// It matches the TAG separator declared in the FT index schema.
const listSeparator = ","

// buildHashFields converts a Record into a flat map[string]string for HSET.
// Every field is always written so an overwrite fully replaces the record.
func buildHashFields(rec *domcontent.Record) map[string]string {
	meta := rec.Meta()
	m := map[string]string{
		domcontent.FieldBusinessID:  rec.BusinessID(),
		domcontent.FieldFranchiseID: rec.FranchiseID(),
		domcontent.FieldContentType: string(rec.ContentType()),
		domcontent.FieldContentID:   rec.ContentID(),
		domcontent.FieldTitle:       rec.Title(),
		domcontent.FieldBody:        rec.Body(),
		domcontent.FieldTags:        strings.Join(rec.Tags(), listSeparator),
		domcontent.FieldCategories:  strings.Join(rec.Categories(), listSeparator),
		domcontent.FieldRating:      strconv.Itoa(meta.Rating),
		domcontent.FieldSentiment:   string(meta.Sentiment),
		domcontent.FieldLanguage:    meta.Language,
		domcontent.FieldSource:      meta.Source,
		domcontent.FieldAuthor:      meta.Author,
		domcontent.FieldIsActive:    strconv.FormatBool(rec.IsActive()),
		domcontent.FieldIndexedAt:   strconv.FormatInt(rec.IndexedAt(), 10),
		domcontent.FieldCreatedAt:   strconv.FormatInt(rec.CreatedAt(), 10),
		domcontent.FieldUpdatedAt:   strconv.FormatInt(rec.UpdatedAt(), 10),
	}

	if len(meta.Custom) > 0 {
		if data, err := json.Marshal(meta.Custom); err == nil {
			m[domcontent.FieldCustom] = string(data)
		}
	} else {
		m[domcontent.FieldCustom] = ""
	}

	return m
}

// FromHash converts a flat hash map back into a Record. Shared with the
// search and analytics repositories, which read the same hashes.
func FromHash(id string, m map[string]string) domcontent.Record {
	meta := domcontent.Metadata{
		Rating:    parseInt(m[domcontent.FieldRating]),
		Sentiment: domcontent.Sentiment(m[domcontent.FieldSentiment]),
		Language:  m[domcontent.FieldLanguage],
		Source:    m[domcontent.FieldSource],
		Author:    m[domcontent.FieldAuthor],
	}
	if raw := m[domcontent.FieldCustom]; raw != "" {
		var custom map[string]string
		if err := json.Unmarshal([]byte(raw), &custom); err == nil {
			meta.Custom = custom
		}
	}

	return domcontent.Reconstruct(
		id,
		m[domcontent.FieldBusinessID],
		m[domcontent.FieldFranchiseID],
		domcontent.Type(m[domcontent.FieldContentType]),
		m[domcontent.FieldContentID],
		m[domcontent.FieldTitle],
		m[domcontent.FieldBody],
		splitList(m[domcontent.FieldTags]),
		splitList(m[domcontent.FieldCategories]),
		meta,
		m[domcontent.FieldIsActive] == "true",
		parseInt64(m[domcontent.FieldIndexedAt]),
		parseInt64(m[domcontent.FieldCreatedAt]),
		parseInt64(m[domcontent.FieldUpdatedAt]),
	)
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, listSeparator)
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
