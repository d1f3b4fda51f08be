package core

import "fmt"

// Normalize maps a raw API item to a Record without an embedding.
//
// The identifier is the item's fullname when present, otherwise its short id.
// The text is the title, followed by a newline and the body when the body is
// non-empty. Metadata fields missing from the item keep their zero values.
func Normalize(item *RawItem) (*Record, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: item is nil", ErrInvalidRecord)
	}

	id := item.Name
	if id == "" {
		id = item.ID
	}
	if id == "" {
		return nil, ErrMissingIdentifier
	}

	text := item.Title
	if item.Selftext != "" {
		text = item.Title + "\n" + item.Selftext
	}

	return &Record{
		ID:   id,
		Text: text,
		Metadata: Metadata{
			Title:       item.Title,
			Subreddit:   item.Subreddit,
			Author:      item.Author,
			Timestamp:   item.CreatedUTC,
			Upvotes:     item.Ups,
			NumComments: item.NumComments,
			Flair:       item.Flair,
		},
	}, nil
}
