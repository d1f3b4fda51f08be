package chromem

import (
	"fmt"
	"strconv"

	"github.com/poiesic/harvest/core"
)

// stringifyMetadata converts typed metadata to the string map chromem stores.
func stringifyMetadata(metadata map[string]any) map[string]string {
	if metadata == nil {
		return nil
	}

	result := make(map[string]string, len(metadata))
	for k, v := range metadata {
		switch val := v.(type) {
		case string:
			result[k] = val
		case int:
			result[k] = strconv.Itoa(val)
		case int64:
			result[k] = strconv.FormatInt(val, 10)
		case float64:
			result[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			result[k] = strconv.FormatBool(val)
		default:
			result[k] = fmt.Sprintf("%v", val)
		}
	}
	return result
}

// parseMetadata restores typed metadata. Unparseable numbers become zero.
func parseMetadata(metadata map[string]string) core.Metadata {
	ts, _ := strconv.ParseFloat(metadata[core.MetaTimestamp], 64)
	return core.Metadata{
		Title:       metadata[core.MetaTitle],
		Subreddit:   metadata[core.MetaSubreddit],
		Author:      metadata[core.MetaAuthor],
		Timestamp:   ts,
		Upvotes:     parseInt(metadata[core.MetaUpvotes]),
		NumComments: parseInt(metadata[core.MetaNumComments]),
		Flair:       metadata[core.MetaFlair],
	}
}

func parseInt(s string) int64 {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	// tolerate values written as floats
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}
