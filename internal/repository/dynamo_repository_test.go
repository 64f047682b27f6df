package repository

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo keeps items in memory and understands just enough of the
// expressions the stores send.
type fakeDynamo struct {
	mu       sync.Mutex
	items    map[string][]map[string]types.AttributeValue
	pageSize int
	failPut  error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: map[string][]map[string]types.AttributeValue{}, pageSize: 1}
}

func str(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := str(in.Key["email"])
	for _, it := range f.items[aws.ToString(in.TableName)] {
		if str(it["email"]) == want {
			return &dynamodb.GetItemOutput{Item: it}, nil
		}
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPut != nil {
		return nil, f.failPut
	}
	table := aws.ToString(in.TableName)
	if aws.ToString(in.ConditionExpression) == "attribute_not_exists(email)" {
		for _, it := range f.items[table] {
			if str(it["email"]) == str(in.Item["email"]) {
				return nil, &types.ConditionalCheckFailedException{Message: aws.String("exists")}
			}
		}
	}
	f.items[table] = append(f.items[table], in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := str(in.ExpressionAttributeValues[":e"])
	var matched []map[string]types.AttributeValue
	for _, it := range f.items[aws.ToString(in.TableName)] {
		if str(it["userEmail"]) == want {
			matched = append(matched, it)
		}
	}
	// sort key order, like the real service
	sort.Slice(matched, func(i, j int) bool { return str(matched[i]["matchId"]) < str(matched[j]["matchId"]) })

	start := 0
	if in.ExclusiveStartKey != nil {
		start, _ = strconv.Atoi(str(in.ExclusiveStartKey["offset"]))
	}
	end := start + f.pageSize
	out := &dynamodb.QueryOutput{}
	if end < len(matched) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"offset": &types.AttributeValueMemberS{Value: strconv.Itoa(end)},
		}
	} else {
		end = len(matched)
	}
	if start < end {
		out.Items = matched[start:end]
	}
	return out, nil
}

func TestDynamoUserRepo(t *testing.T) {
	fake := newFakeDynamo()
	users := NewDynamoUserRepo(fake, "users")
	ctx := context.Background()

	u, err := users.Create(ctx, " Carol@Example.com", "bcrypt-hash")
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", u.Email)

	got, err := users.GetByEmail(ctx, "CAROL@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bcrypt-hash", got.HashedPassword)
	assert.True(t, u.CreatedAt.Equal(got.CreatedAt))

	_, err = users.Create(ctx, "carol@example.com", "x")
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = users.GetByEmail(ctx, "dave@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDynamoUserRepo_PutFailure(t *testing.T) {
	fake := newFakeDynamo()
	fake.failPut = errors.New("throttled")
	_, err := NewDynamoUserRepo(fake, "users").Create(context.Background(), "a@b.c", "h")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailExists)
}

func TestDynamoMatchRepo_PagesAndSortsByCreated(t *testing.T) {
	fake := newFakeDynamo()
	matches := NewDynamoMatchRepo(fake, "matches")
	matches.Now = tick(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	var ids []string
	for _, d := range []string{"2024-05-01", "2024-05-02", "2024-05-03"} {
		rec, err := matches.CreateForUser(ctx, "eve@example.com", sampleMatch(d))
		require.NoError(t, err)
		ids = append(ids, rec.MatchID)
	}
	_, err := matches.CreateForUser(ctx, "frank@example.com", sampleMatch("2024-05-04"))
	require.NoError(t, err)

	list, err := matches.ListForUser(ctx, "EVE@example.com")
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, rec := range list {
		assert.Equal(t, ids[i], rec.MatchID)
		assert.Equal(t, "eve@example.com", rec.UserEmail)
	}
	assert.Equal(t, "2024-05-01", list[0].Match.Date)
	require.NotNil(t, list[0].Match.SetsPlayed)
	assert.Equal(t, 3.0, *list[0].Match.SetsPlayed)
	assert.Equal(t, 4.0, list[0].Match.BreakPointsTotal)
}
