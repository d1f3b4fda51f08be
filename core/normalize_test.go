package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_FullItem(t *testing.T) {
	item := &RawItem{
		Name:        "t3_abc",
		ID:          "abc",
		Title:       "Bitcoin hits new high",
		Selftext:    "Discussion thread",
		Subreddit:   "crypto",
		Author:      "satoshi",
		CreatedUTC:  1700000000.5,
		Ups:         42,
		NumComments: 7,
		Flair:       "NEWS",
	}

	record, err := Normalize(item)
	require.NoError(t, err)

	assert.Equal(t, "t3_abc", record.ID)
	assert.Equal(t, "Bitcoin hits new high\nDiscussion thread", record.Text)
	assert.Equal(t, Metadata{
		Title:       "Bitcoin hits new high",
		Subreddit:   "crypto",
		Author:      "satoshi",
		Timestamp:   1700000000.5,
		Upvotes:     42,
		NumComments: 7,
		Flair:       "NEWS",
	}, record.Metadata)
	assert.Nil(t, record.Embedding)
}

func TestNormalize_FallsBackToShortID(t *testing.T) {
	record, err := Normalize(&RawItem{ID: "abc", Title: "title"})
	require.NoError(t, err)
	assert.Equal(t, "abc", record.ID)
}

func TestNormalize_TitleOnlyWhenBodyEmpty(t *testing.T) {
	record, err := Normalize(&RawItem{Name: "t3_x", Title: "just a link"})
	require.NoError(t, err)
	assert.Equal(t, "just a link", record.Text)
}

func TestNormalize_MissingFieldsGetDefaults(t *testing.T) {
	record, err := Normalize(&RawItem{Name: "t3_x"})
	require.NoError(t, err)

	m := record.Metadata.Map()
	assert.Equal(t, "", m[MetaTitle])
	assert.Equal(t, "", m[MetaSubreddit])
	assert.Equal(t, "", m[MetaAuthor])
	assert.Equal(t, "", m[MetaFlair])
	assert.Equal(t, float64(0), m[MetaTimestamp])
	assert.Equal(t, int64(0), m[MetaUpvotes])
	assert.Equal(t, int64(0), m[MetaNumComments])
	for key, v := range m {
		assert.NotNil(t, v, "metadata key %q must not be nil", key)
	}
}

func TestNormalize_MissingIdentifier(t *testing.T) {
	record, err := Normalize(&RawItem{Title: "orphan"})
	assert.Nil(t, record)
	assert.True(t, errors.Is(err, ErrMissingIdentifier))
}

func TestNormalize_NilItem(t *testing.T) {
	_, err := Normalize(nil)
	assert.ErrorIs(t, err, ErrInvalidRecord)
}
