package content

// Canonical indexed field names. The FT index schema, the query composer,
// and the hash DTOs all share this vocabulary.
const (
	FieldBusinessID  = "business_id"
	FieldFranchiseID = "franchise_id"
	FieldContentType = "content_type"
	FieldContentID   = "content_id"
	FieldTitle       = "title"
	FieldBody        = "body"
	FieldTags        = "tags"
	FieldCategories  = "categories"
	FieldRating      = "rating"
	FieldSentiment   = "sentiment"
	FieldLanguage    = "language"
	FieldSource      = "source"
	FieldAuthor      = "author"
	FieldCustom      = "custom"
	FieldIsActive    = "is_active"
	FieldIndexedAt   = "indexed_at"
	FieldCreatedAt   = "created_at"
	FieldUpdatedAt   = "updated_at"
)
