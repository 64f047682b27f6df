package database

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// NewDynamoClient builds a DynamoDB client from the default credential
// chain.  When endpoint is set (DynamoDB Local) the client talks to it and
// falls back to static dummy credentials if none are configured.
func NewDynamoClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if endpoint != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(localCredentials()))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// localCredentials prefers the usual env keys and otherwise uses the fixed
// pair DynamoDB Local accepts.
func localCredentials() aws.CredentialsProvider {
	return aws.NewCredentialsCache(credentials.StaticCredentialsProvider{
		Value: aws.Credentials{
			AccessKeyID:     envOr("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey: envOr("AWS_SECRET_ACCESS_KEY", "local"),
			Source:          "court-metrics-local",
		},
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
