package db

import (
	"strconv"

	"github.com/jsphweid/setscan/model"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

const tableName = "setscan-metadata"

// GetMidiMetadatas pulls artist/title info for up to 10 midi filenames,
// keyed by filename. Missing entries just don't come back.
func GetMidiMetadatas(filenames []string) map[string]model.MidiMetadata {
	if len(filenames) > 10 {
		panic("Not supposed to pass in more than 10 filenames!")
	}

	res := make(map[string]model.MidiMetadata)

	if len(filenames) == 0 {
		return res
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, filename := range filenames {
		key := make(map[string]*dynamodb.AttributeValue)
		key["PK"] = &dynamodb.AttributeValue{
			S: aws.String(filename),
		}
		keys = append(keys, key)
	}

	endpoint := "http://localhost:8000"
	session, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		panic("Could not create a new DynamoDB session because " + err.Error())
	}

	client := dynamodb.New(session)
	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			tableName: {Keys: keys},
		},
	}
	dbres, err := client.BatchGetItem(input)
	if err != nil {
		panic("Error from DynamoDB: " + err.Error())
	}

	str := func(v *dynamodb.AttributeValue) string {
		if v == nil || v.S == nil {
			return ""
		}
		return *v.S
	}
	for _, v := range dbres.Responses[tableName] {
		var m model.MidiMetadata
		if v["Year"] != nil && v["Year"].N != nil {
			year, _ := strconv.ParseUint(*v["Year"].N, 10, 32)
			m.Year = uint(year)
		}
		m.Artist = str(v["Artist"])
		m.Release = str(v["Release"])
		m.Title = str(v["Title"])
		res[str(v["PK"])] = m
	}

	return res
}
