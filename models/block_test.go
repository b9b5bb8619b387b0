package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ahmet-ozay-website/locale"
)

const portableText = `[
  {"_type":"block","style":"h2","children":[{"_type":"span","text":"Einleitung","marks":[]}],"markDefs":[]},
  {"_type":"block","style":"normal","children":[
     {"_type":"span","text":"Siehe ","marks":[]},
     {"_type":"span","text":"hier","marks":["strong","lnk1"]}
  ],"markDefs":[{"_key":"lnk1","_type":"link","href":"/artikel/krim"}]},
  {"_type":"block","style":"normal","listItem":"bullet","children":[{"_type":"span","text":"eins"}]},
  {"_type":"block","style":"normal","listItem":"bullet","children":[{"_type":"span","text":"zwei"}]},
  {"_type":"block","style":"normal","listItem":"number","children":[{"_type":"span","text":"erstens"}]},
  {"_type":"image","asset":{"_ref":"image-abc-1200x800-jpg"},"alt":"Bild","caption":"Unterschrift"},
  {"_type":"image","alt":"ohne Asset"},
  {"_type":"youtube","url":"https://youtube.com/x"},
  {"_type":"block","style":"blockquote","children":[{"_type":"span","text":"Zitat"}]}
]`

func TestDecodePortableText(t *testing.T) {
	blocks, err := DecodePortableText([]byte(portableText))
	require.NoError(t, err)
	require.Len(t, blocks, 8)

	assert.Equal(t, Block{Kind: KindHeading, Level: 2, Spans: []Span{{Text: "Einleitung"}}}, blocks[0])

	assert.Equal(t, KindParagraph, blocks[1].Kind)
	assert.Equal(t, Span{Text: "hier", Marks: []string{MarkStrong}, Href: "/artikel/krim"}, blocks[1].Spans[1])

	t.Run("groups consecutive list items", func(t *testing.T) {
		assert.Equal(t, KindList, blocks[2].Kind)
		assert.False(t, blocks[2].Ordered)
		assert.Len(t, blocks[2].Items, 2)

		assert.Equal(t, KindList, blocks[3].Kind)
		assert.True(t, blocks[3].Ordered)
		assert.Len(t, blocks[3].Items, 1)
	})

	t.Run("images keep missing assets as empty refs", func(t *testing.T) {
		assert.Equal(t, "image-abc-1200x800-jpg", blocks[4].Image.AssetRef)
		assert.Equal(t, "Unterschrift", blocks[4].Image.Caption)
		assert.Equal(t, "", blocks[5].Image.AssetRef)
	})

	t.Run("unknown types are kept as unknown", func(t *testing.T) {
		assert.Equal(t, Block{Kind: KindUnknown, Type: "youtube"}, blocks[6])
	})

	assert.Equal(t, KindBlockquote, blocks[7].Kind)
}

func TestLocalizedUnmarshal(t *testing.T) {
	var a Article
	raw := `{
	  "_id":"a1","slug":"krim",
	  "title":{"_type":"localeString","de":"Titel","en":"Title","fr":"Titre"},
	  "excerpt":null,
	  "content":{"de":[{"_type":"block","children":[{"_type":"span","text":"Hallo"}]}],"tr":"kaputt"},
	  "publishedAt":"2024-05-01T10:00:00Z","readTime":null
	}`
	require.NoError(t, json.Unmarshal([]byte(raw), &a))

	assert.Equal(t, LocalizedText{locale.DE: "Titel", locale.EN: "Title"}, a.Title)
	assert.Nil(t, a.Excerpt)
	assert.Len(t, a.Content[locale.DE], 1)
	_, hasTR := a.Content[locale.TR]
	assert.False(t, hasTR)
	assert.Equal(t, 0, a.ReadTime)
	assert.Equal(t, 2024, a.PublishedAt.Year())
}

func TestTopicOverlap(t *testing.T) {
	a := Article{Category: CategoryPolitics, Tags: []string{"krim", "ukraine"}}
	assert.Equal(t, 0, a.TopicOverlap(CategoryHistory, []string{"istanbul"}))
	assert.Equal(t, 1, a.TopicOverlap(CategoryPolitics, nil))
	assert.Equal(t, 3, a.TopicOverlap(CategoryPolitics, []string{"krim", "ukraine"}))
}
