package content

import (
	"encoding/json"
	"fmt"
)

// envelope tags each encoded item with its variant so a cached batch can be
// decoded back into the right concrete types.
type envelope struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type encodedBatch struct {
	Items        []envelope `json:"items"`
	Continuation string     `json:"continuation,omitempty"`
}

// Kind returns the variant name of an item.
func Kind(it Item) string {
	switch it.(type) {
	case Header:
		return "header"
	case Video:
		return "video"
	case Transcript:
		return "transcript"
	case Caption:
		return "caption"
	case CommentSection:
		return "comment_section"
	case Comment:
		return "comment"
	case Channel:
		return "channel"
	case Playlist:
		return "playlist"
	case Search:
		return "search"
	case Notice:
		return "notice"
	}
	return ""
}

// MarshalBatch encodes a batch for storage.
func MarshalBatch(b Batch) ([]byte, error) {
	out := encodedBatch{
		Items:        make([]envelope, 0, len(b.Items)),
		Continuation: b.Continuation,
	}
	for _, it := range b.Items {
		data, err := json.Marshal(it)
		if err != nil {
			return nil, fmt.Errorf("encode %s item: %w", Kind(it), err)
		}
		out.Items = append(out.Items, envelope{Kind: Kind(it), Data: data})
	}
	return json.Marshal(out)
}

// UnmarshalBatch decodes a batch produced by MarshalBatch.
func UnmarshalBatch(data []byte) (Batch, error) {
	var in encodedBatch
	if err := json.Unmarshal(data, &in); err != nil {
		return Batch{}, fmt.Errorf("decode batch: %w", err)
	}
	b := Batch{
		Items:        make([]Item, 0, len(in.Items)),
		Continuation: in.Continuation,
	}
	for _, env := range in.Items {
		it, err := decodeItem(env)
		if err != nil {
			return Batch{}, err
		}
		b.Items = append(b.Items, it)
	}
	return b, nil
}

func decodeItem(env envelope) (Item, error) {
	var (
		it  Item
		err error
	)
	switch env.Kind {
	case "header":
		var v Header
		err = json.Unmarshal(env.Data, &v)
		it = v
	case "video":
		var v Video
		err = json.Unmarshal(env.Data, &v)
		it = v
	case "transcript":
		var v Transcript
		err = json.Unmarshal(env.Data, &v)
		it = v
	case "caption":
		var v Caption
		err = json.Unmarshal(env.Data, &v)
		it = v
	case "comment_section":
		var v CommentSection
		err = json.Unmarshal(env.Data, &v)
		it = v
	case "comment":
		var v Comment
		err = json.Unmarshal(env.Data, &v)
		it = v
	case "channel":
		var v Channel
		err = json.Unmarshal(env.Data, &v)
		it = v
	case "playlist":
		var v Playlist
		err = json.Unmarshal(env.Data, &v)
		it = v
	case "search":
		var v Search
		err = json.Unmarshal(env.Data, &v)
		it = v
	case "notice":
		var v Notice
		err = json.Unmarshal(env.Data, &v)
		it = v
	default:
		return nil, fmt.Errorf("decode item: unknown kind %q", env.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s item: %w", env.Kind, err)
	}
	return it, nil
}
