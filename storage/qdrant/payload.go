package qdrant

import (
	"fmt"

	"github.com/poiesic/harvest/core"
	"github.com/qdrant/go-client/qdrant"
)

// Payload keys besides the metadata keys.
const (
	payloadID       = "id"
	payloadDocument = "document"
)

func stringValue(s string) *qdrant.Value {
	return &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: s}}
}

func toValue(v any) *qdrant.Value {
	switch val := v.(type) {
	case string:
		return stringValue(val)
	case int:
		return &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: int64(val)}}
	case int64:
		return &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: val}}
	case float64:
		return &qdrant.Value{Kind: &qdrant.Value_DoubleValue{DoubleValue: val}}
	case bool:
		return &qdrant.Value{Kind: &qdrant.Value_BoolValue{BoolValue: val}}
	default:
		return stringValue(fmt.Sprintf("%v", val))
	}
}

// toPoints converts a batch to points. The record id is kept in the payload
// since the point id is its hash.
func toPoints(batch *core.Batch) []*qdrant.PointStruct {
	points := make([]*qdrant.PointStruct, batch.Len())
	for i, id := range batch.IDs {
		payload := make(map[string]*qdrant.Value, len(batch.Metadatas[i])+2)
		for k, v := range batch.Metadatas[i] {
			payload[k] = toValue(v)
		}
		payload[payloadID] = stringValue(id)
		payload[payloadDocument] = stringValue(batch.Documents[i])

		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(core.PointID(id)),
			Vectors: qdrant.NewVectors(batch.Embeddings[i]...),
			Payload: payload,
		}
	}
	return points
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if v, ok := payload[key]; ok {
		if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
			return s.StringValue
		}
	}
	return ""
}

func payloadInt(payload map[string]*qdrant.Value, key string) int64 {
	if v, ok := payload[key]; ok {
		switch val := v.GetKind().(type) {
		case *qdrant.Value_IntegerValue:
			return val.IntegerValue
		case *qdrant.Value_DoubleValue:
			return int64(val.DoubleValue)
		}
	}
	return 0
}

func payloadFloat(payload map[string]*qdrant.Value, key string) float64 {
	if v, ok := payload[key]; ok {
		switch val := v.GetKind().(type) {
		case *qdrant.Value_DoubleValue:
			return val.DoubleValue
		case *qdrant.Value_IntegerValue:
			return float64(val.IntegerValue)
		}
	}
	return 0
}

func toHit(p *qdrant.ScoredPoint) core.Hit {
	payload := p.GetPayload()
	return core.Hit{
		ID:   payloadString(payload, payloadID),
		Text: payloadString(payload, payloadDocument),
		Metadata: core.Metadata{
			Title:       payloadString(payload, core.MetaTitle),
			Subreddit:   payloadString(payload, core.MetaSubreddit),
			Author:      payloadString(payload, core.MetaAuthor),
			Timestamp:   payloadFloat(payload, core.MetaTimestamp),
			Upvotes:     payloadInt(payload, core.MetaUpvotes),
			NumComments: payloadInt(payload, core.MetaNumComments),
			Flair:       payloadString(payload, core.MetaFlair),
		},
		Score: p.GetScore(),
	}
}
