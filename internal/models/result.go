package models

// InsertResult mirrors the acknowledgement of a single insert.
type InsertResult struct {
	Acknowledged bool    `json:"acknowledged,omitempty"`
	InsertedID   *string `json:"insertedId"`
	Message      string  `json:"message,omitempty"`
}

// UpdateResult mirrors the acknowledgement of a single update.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult mirrors the acknowledgement of a single delete.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// CountResult wraps a document count.
type CountResult struct {
	Count int64 `json:"count"`
}

// Inserted builds an acknowledged insert result for id.
func Inserted(id string) InsertResult {
	return InsertResult{Acknowledged: true, InsertedID: &id}
}
