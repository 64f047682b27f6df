package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/iliyamo/court-metrics/internal/model"
	"github.com/iliyamo/court-metrics/internal/utils"
)

// DynamoAPI is the subset of *dynamodb.Client the stores use.
type DynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// DynamoUserRepo stores users in a table with partition key "email".
type DynamoUserRepo struct {
	Client DynamoAPI
	Table  string
	Now    func() time.Time
}

func NewDynamoUserRepo(client DynamoAPI, table string) *DynamoUserRepo {
	return &DynamoUserRepo{Client: client, Table: table, Now: time.Now}
}

// Create writes the user only if no item with the same email exists.
func (r *DynamoUserRepo) Create(ctx context.Context, email, hashedPassword string) (model.User, error) {
	u := model.User{
		Email:          utils.NormalizeEmail(email),
		HashedPassword: hashedPassword,
		CreatedAt:      stamp(r.Now),
	}
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return model.User{}, fmt.Errorf("marshal user: %w", err)
	}
	_, err = r.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.Table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(email)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return u, nil
}

func (r *DynamoUserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	out, err := r.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.Table),
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: utils.NormalizeEmail(email)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return model.User{}, err
	}
	if len(out.Item) == 0 {
		return model.User{}, ErrUserNotFound
	}
	var u model.User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return model.User{}, fmt.Errorf("unmarshal user: %w", err)
	}
	return u, nil
}

// DynamoMatchRepo stores matches in a table keyed by (userEmail, matchId).
type DynamoMatchRepo struct {
	Client DynamoAPI
	Table  string
	Now    func() time.Time
}

func NewDynamoMatchRepo(client DynamoAPI, table string) *DynamoMatchRepo {
	return &DynamoMatchRepo{Client: client, Table: table, Now: time.Now}
}

func (r *DynamoMatchRepo) CreateForUser(ctx context.Context, email string, m model.Match) (model.MatchRecord, error) {
	rec := newRecord(email, m, stamp(r.Now))
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return model.MatchRecord{}, fmt.Errorf("marshal match: %w", err)
	}
	_, err = r.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.Table),
		Item:      item,
	})
	if err != nil {
		return model.MatchRecord{}, err
	}
	return rec, nil
}

// ListForUser pages through the user's partition and orders the result by
// createdAt, since the sort key is the random match id.
func (r *DynamoMatchRepo) ListForUser(ctx context.Context, email string) ([]model.MatchRecord, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.Table),
		KeyConditionExpression: aws.String("userEmail = :e"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: utils.NormalizeEmail(email)},
		},
	}
	out := []model.MatchRecord{}
	for {
		page, err := r.Client.Query(ctx, in)
		if err != nil {
			return nil, err
		}
		var recs []model.MatchRecord
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &recs); err != nil {
			return nil, fmt.Errorf("unmarshal matches: %w", err)
		}
		out = append(out, recs...)
		if len(page.LastEvaluatedKey) == 0 {
			break
		}
		in.ExclusiveStartKey = page.LastEvaluatedKey
	}
	sortByCreated(out)
	return out, nil
}
