package content

import (
	"errors"
	"fmt"
	"strings"
)

// Key identifies a page of content. It is opaque to the navigation layer and
// only interpreted by backends.
type Key string

// Schemes understood by ParseKey.
const (
	SchemeHome       = "home"
	SchemeCategory   = "category"
	SchemeSearch     = "search"
	SchemeNext       = "next"
	SchemeTranscript = "transcript"
	SchemeComments   = "comments"
	SchemeReplies    = "replies"
	SchemeChannel    = "channel"
	SchemePlaylist   = "playlist"
)

// HomeKey is the root of the content tree.
const HomeKey Key = SchemeHome

// ErrUnknownKey is returned by ParseKey for keys with an unrecognised scheme.
var ErrUnknownKey = errors.New("content: unknown key")

// arity is the number of ':'-separated arguments each scheme carries. The
// last argument absorbs any remaining colons.
var arity = map[string]int{
	SchemeHome:       0,
	SchemeCategory:   1,
	SchemeSearch:     1,
	SchemeNext:       1,
	SchemeTranscript: 2,
	SchemeComments:   2,
	SchemeReplies:    1,
	SchemeChannel:    1,
	SchemePlaylist:   1,
}

func CategoryKey(token string) Key { return Key(SchemeCategory + ":" + token) }
func SearchKey(query string) Key   { return Key(SchemeSearch + ":" + query) }
func NextKey(videoID string) Key   { return Key(SchemeNext + ":" + videoID) }
func RepliesKey(token string) Key  { return Key(SchemeReplies + ":" + token) }
func ChannelKey(id string) Key     { return Key(SchemeChannel + ":" + id) }
func PlaylistKey(id string) Key    { return Key(SchemePlaylist + ":" + id) }

func TranscriptKey(videoID, params string) Key {
	return Key(SchemeTranscript + ":" + videoID + ":" + params)
}

func CommentsKey(videoID, token string) Key {
	return Key(SchemeComments + ":" + videoID + ":" + token)
}

// ParseKey splits a key into its scheme and arguments.
func ParseKey(k Key) (scheme string, args []string, err error) {
	s := string(k)
	scheme, rest, hasRest := strings.Cut(s, ":")
	n, ok := arity[scheme]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownKey, s)
	}
	if n == 0 {
		if hasRest {
			return "", nil, fmt.Errorf("%w: %q takes no arguments", ErrUnknownKey, s)
		}
		return scheme, nil, nil
	}
	if !hasRest {
		return "", nil, fmt.Errorf("%w: %q is missing arguments", ErrUnknownKey, s)
	}
	args = strings.SplitN(rest, ":", n)
	if len(args) != n {
		return "", nil, fmt.Errorf("%w: %q is missing arguments", ErrUnknownKey, s)
	}
	return scheme, args, nil
}

// Title is a short human label for the page a key produces.
func (k Key) Title() string {
	scheme, args, err := ParseKey(k)
	if err != nil {
		return string(k)
	}
	switch scheme {
	case SchemeHome:
		return "Home"
	case SchemeCategory:
		return "Category"
	case SchemeSearch:
		return args[0]
	case SchemeNext:
		return "Recommendations"
	case SchemeTranscript:
		return "Transcript"
	case SchemeComments:
		return "Comments"
	case SchemeReplies:
		return "Replies"
	case SchemeChannel:
		return "Channel"
	case SchemePlaylist:
		return "Playlist"
	}
	return string(k)
}
