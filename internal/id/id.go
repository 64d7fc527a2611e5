package id

import (
	"strings"

	"github.com/google/uuid"
)

// messageNamespace scopes message refs so they never collide with other
// name-based UUIDs derived from the same text.
var messageNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://cleared.dev/smsparse/message"))

// MessageRef returns a deterministic ref for a message body. Surrounding
// whitespace and line-ending differences do not change the ref.
func MessageRef(text string) string {
	norm := strings.Join(strings.Fields(text), " ")
	return uuid.NewSHA1(messageNamespace, []byte(norm)).String()
}

// NewRunID returns a random ID for one scan or batch run.
func NewRunID() string {
	return uuid.NewString()
}

// Short returns the first 8 characters of a ref, for display.
// "3f2a9c1e-...." -> "3f2a9c1e"
func Short(ref string) string {
	if len(ref) < 8 {
		return ref
	}
	return ref[:8]
}
