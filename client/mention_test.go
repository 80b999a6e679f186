package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMentionQuery(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cursor int
		query  string
		ok     bool
	}{
		{"partial mention", "hello @ali", 10, "ali", true},
		{"just the at sign", "hello @", 7, "", true},
		{"start of text", "@bob", 4, "bob", true},
		{"cursor mid query", "hello @alice", 10, "ali", true},
		{"no at sign", "hello world", 11, "", false},
		{"email is not a mention", "mail me at foo@bar.com", 18, "", false},
		{"space ends the query", "hello @alice how", 16, "", false},
		{"cursor before the at", "hello @alice", 5, "", false},
		{"cursor out of range", "hi", 10, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, ok := MentionQuery(tt.text, tt.cursor)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.query, query)
		})
	}
}

func TestInsertMention(t *testing.T) {
	text, cursor := InsertMention("hello @ali", 10, "alice")
	assert.Equal(t, "hello @alice ", text)
	assert.Equal(t, 13, cursor)

	// 光标在中间时只替换光标左侧的部分
	text, cursor = InsertMention("hey @bo, nice", 7, "bob")
	assert.Equal(t, "hey @bob , nice", text)
	assert.Equal(t, 9, cursor)

	// 不在提及上下文时原样返回
	text, cursor = InsertMention("hello world", 11, "alice")
	assert.Equal(t, "hello world", text)
	assert.Equal(t, 11, cursor)
}

func TestNormalizeTags(t *testing.T) {
	tags := NormalizeTags([]string{"#GoLang", "golang", " News ", "", "#", "news"})
	assert.Equal(t, []string{"golang", "news"}, tags)

	assert.Empty(t, NormalizeTags(nil))
}
