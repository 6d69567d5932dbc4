package domain

// KeyPrefix is the namespace prefix for all keys this service owns or reads.
const KeyPrefix = "contentdex:"

// Ref is a denormalized projection of a referenced record (franchise or
// original source). Reference hashes are maintained by the owning services;
// contentdex only reads them.
type Ref struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
