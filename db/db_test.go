package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/chordsheet/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSidecarStore(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "standards"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "standards", "autumn_leaves.toml"),
		[]byte("title = \"Autumn Leaves\"\ncomposer = \"Joseph Kosma\"\nyear = 1945\n"), 0644))

	store := &SidecarStore{Root: root}
	res, err := store.GetSongMetadatas([]string{"standards/autumn_leaves.txt", "missing.txt"})
	require.NoError(t, err)
	assert.Equal(t, map[string]model.SongMetadata{
		"standards/autumn_leaves.txt": {Title: "Autumn Leaves", Composer: "Joseph Kosma", Year: 1945},
	}, res)
}

func TestSidecarStoreBadToml(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.toml"), []byte("title = "), 0644))

	store := &SidecarStore{Root: root}
	_, err := store.GetSongMetadatas([]string{"a.txt"})
	assert.Error(t, err)
}

type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI
	items   map[string]map[string]*dynamodb.AttributeValue
	batches [][]string
}

func (f *fakeDynamo) BatchGetItem(in *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error) {
	out := &dynamodb.BatchGetItemOutput{Responses: map[string][]map[string]*dynamodb.AttributeValue{}}
	var batch []string
	for table, ka := range in.RequestItems {
		for _, key := range ka.Keys {
			pk := *key["PK"].S
			batch = append(batch, pk)
			if item, ok := f.items[pk]; ok {
				out.Responses[table] = append(out.Responses[table], item)
			}
		}
	}
	f.batches = append(f.batches, batch)
	return out, nil
}

func TestDynamoStore(t *testing.T) {
	fake := &fakeDynamo{items: map[string]map[string]*dynamodb.AttributeValue{
		"a.txt": {
			"PK":       {S: aws.String("a.txt")},
			"Title":    {S: aws.String("Blue Bossa")},
			"Composer": {S: aws.String("Kenny Dorham")},
			"Year":     {N: aws.String("1963")},
		},
		"b.txt": {
			"PK":    {S: aws.String("b.txt")},
			"Title": {S: aws.String("Untitled")},
		},
	}}
	store := NewDynamoStoreWithClient(fake, "chordsheet-metadata")

	var names []string
	for i := 0; i < 12; i++ {
		names = append(names, "x.txt")
	}
	names = append(names, "a.txt", "b.txt")

	res, err := store.GetSongMetadatas(names)
	require.NoError(t, err)
	assert.Len(t, fake.batches, 2)
	assert.Equal(t, model.SongMetadata{Title: "Blue Bossa", Composer: "Kenny Dorham", Year: 1963}, res["a.txt"])
	assert.Equal(t, model.SongMetadata{Title: "Untitled"}, res["b.txt"])
	assert.Len(t, res, 2)
}
