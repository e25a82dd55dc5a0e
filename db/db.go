package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/chordsheet/model"
	"github.com/jsphweid/chordsheet/util"
)

// Store looks up song metadata by lead-sheet path relative to the sheet root. Songs
// without metadata are simply missing from the result.
type Store interface {
	GetSongMetadatas(filenames []string) (map[string]model.SongMetadata, error)
}

const maxBatch = 10

type DynamoStore struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewDynamoStore(endpoint, region, table string) (*DynamoStore, error) {
	cfg := &aws.Config{Region: aws.String(region)}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create a new DynamoDB session: %w", err)
	}
	return &DynamoStore{client: dynamodb.New(sess), table: table}, nil
}

func NewDynamoStoreWithClient(client dynamodbiface.DynamoDBAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

func stringAttr(item map[string]*dynamodb.AttributeValue, name string) string {
	if v, ok := item[name]; ok && v.S != nil {
		return *v.S
	}
	return ""
}

func (d *DynamoStore) getBatch(filenames []string, res map[string]model.SongMetadata) error {
	var keys []map[string]*dynamodb.AttributeValue
	for _, filename := range filenames {
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(filename)},
		})
	}

	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			d.table: {Keys: keys},
		},
	}
	out, err := d.client.BatchGetItem(input)
	if err != nil {
		return fmt.Errorf("error from DynamoDB: %w", err)
	}

	for _, item := range out.Responses[d.table] {
		pk := stringAttr(item, "PK")
		if pk == "" {
			continue
		}
		var s model.SongMetadata
		if v, ok := item["Year"]; ok && v.N != nil {
			year, err := strconv.ParseUint(*v.N, 10, 32)
			if err == nil {
				s.Year = uint(year)
			}
		}
		s.Title = stringAttr(item, "Title")
		s.Composer = stringAttr(item, "Composer")
		res[pk] = s
	}
	return nil
}

func (d *DynamoStore) GetSongMetadatas(filenames []string) (map[string]model.SongMetadata, error) {
	res := make(map[string]model.SongMetadata)
	for start := 0; start < len(filenames); start += maxBatch {
		end := util.Min(start+maxBatch, len(filenames))
		if err := d.getBatch(filenames[start:end], res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// SidecarStore reads metadata from a TOML file next to each lead sheet, so
// standards/autumn_leaves.txt is described by standards/autumn_leaves.toml.
type SidecarStore struct {
	Root string
}

func SidecarPath(root, filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return filepath.Join(root, base+".toml")
}

func (s *SidecarStore) GetSongMetadatas(filenames []string) (map[string]model.SongMetadata, error) {
	res := make(map[string]model.SongMetadata)
	for _, filename := range filenames {
		var meta model.SongMetadata
		path := SidecarPath(s.Root, filename)
		if _, err := toml.DecodeFile(path, &meta); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		res[filename] = meta
	}
	return res, nil
}
